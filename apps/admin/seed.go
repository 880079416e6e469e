package main

import "context"

func (cli *commandLine) seed() error {
	return cli.seeder.Seed(context.Background())
}
