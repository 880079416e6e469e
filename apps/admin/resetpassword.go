package main

import (
	"context"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/user"
)

func (cli *commandLine) resetPassword(email, pwd string) error {
	if err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(core.CleanString(email), "email"),
		vala.StringNotEmpty(pwd, "password"),
	).Check(); err != nil {
		return err
	}

	data := user.SetUserPassword{Password: pwd, PasswordConfirm: pwd}
	if err := cli.validate.Struct(data); err != nil {
		if msg, ok := core.ValidationMessage(err, cli.translator); ok {
			return errors.New(msg)
		}
		return err
	}

	ctx := context.Background()
	usr, err := cli.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if _, err := cli.users.SetPassword(ctx, usr, pwd); err != nil {
		return err
	}
	return nil
}
