package main

import (
	"database/sql"

	"github.com/trezcool/goose"

	appfs "github.com/trezcool/classdesk/fs"
	"github.com/trezcool/classdesk/storage/database"
)

// mockable
var gooseRunFunc = func(command string, db *sql.DB, args ...string) error {
	return goose.RunFS(command, db, appfs.FS, database.MigrationsDir(), args...)
}

func (cli *commandLine) migrate(args []string) error {
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	var db *sql.DB
	if cli.db != nil {
		db = cli.db.DB
	}
	return gooseRunFunc(args[0], db, arguments...)
}
