package main

import (
	"context"
	"fmt"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/user"
)

func roleIsValid(role user.Role) vala.Checker {
	return func() (bool, string) {
		return role.IsValid(), "role must be TEACHER or STUDENT"
	}
}

// addUser creates a user.User; the password goes through the same rules as any new user.
func (cli *commandLine) addUser(name, email, role, pwd string) error {
	nu := user.NewUser{
		Name:            name,
		Email:           email,
		Role:            user.Role(core.CleanString(role)),
		Password:        pwd,
		PasswordConfirm: pwd,
	}
	if err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(core.CleanString(nu.Name), "name"),
		vala.StringNotEmpty(core.CleanString(nu.Email), "email"),
		roleIsValid(nu.Role),
	).Check(); err != nil {
		return err
	}

	if err := nu.Validate(cli.validate, cli.users); err != nil {
		if msg, ok := core.ValidationMessage(err, cli.translator); ok {
			return errors.New(msg)
		}
		return err
	}
	usr, err := cli.users.Create(context.Background(), nu)
	if err != nil {
		return errors.Wrap(err, "creating user")
	}
	fmt.Printf("created %s %s (%s)\n", usr.Role, usr.Email, usr.ID)
	return nil
}
