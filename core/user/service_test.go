package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/user"
	testutil "github.com/trezcool/classdesk/tests"
)

func TestNewUser_Validate(t *testing.T) {
	svcs := testutil.NewServices(t)
	testutil.CreateUser(t, svcs.Users, "John Smith", "john@example.com", "Passw0rd!", user.RoleTeacher)

	valid := func(mod func(nu *user.NewUser)) user.NewUser {
		nu := user.NewUser{
			Name:            "Dana Scully",
			Email:           " Dana@Example.com ",
			Role:            user.RoleStudent,
			Password:        "Str0ng!Pass#",
			PasswordConfirm: "Str0ng!Pass#",
		}
		if mod != nil {
			mod(&nu)
		}
		return nu
	}
	setPwd := func(pwd string) func(nu *user.NewUser) {
		return func(nu *user.NewUser) {
			nu.Password, nu.PasswordConfirm = pwd, pwd
		}
	}

	tests := []struct {
		name    string
		nu      user.NewUser
		wantMsg string
	}{
		{name: "valid", nu: valid(nil)},
		{name: "blank name", nu: valid(func(nu *user.NewUser) { nu.Name = "  " }), wantMsg: "Name is required"},
		{name: "bad role", nu: valid(func(nu *user.NewUser) { nu.Role = "ADMIN" }), wantMsg: "role must be one of TEACHER, STUDENT"},
		{name: "confirm mismatch", nu: valid(func(nu *user.NewUser) { nu.PasswordConfirm = "nope" }), wantMsg: "password_confirm"},
		{name: "too short", nu: valid(setPwd("S0!rt")), wantMsg: "password must contain at least 8 characters"},
		{name: "whitespace", nu: valid(setPwd("Str0ng! Pass")), wantMsg: "password must not contain whitespace"},
		{name: "all numeric", nu: valid(setPwd("1234567890")), wantMsg: "password cannot be entirely numeric"},
		{name: "no special", nu: valid(setPwd("Str0ngPass")), wantMsg: "password must contain at least 1 uppercase"},
		{name: "similar to name", nu: valid(setPwd("DanaScully1!")), wantMsg: "password cannot be similar to user attributes"},
		{name: "email taken", nu: valid(func(nu *user.NewUser) { nu.Email = "JOHN@example.com" }), wantMsg: user.ErrEmailExists.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nu := tt.nu
			err := nu.Validate(svcs.Validate, svcs.Users)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				assert.Equal(t, "dana@example.com", nu.Email)
				return
			}
			require.Error(t, err)
			msg, ok := core.ValidationMessage(err, svcs.Translator)
			assert.True(t, ok)
			assert.Contains(t, msg, tt.wantMsg)
		})
	}
}

func TestService_Authenticate(t *testing.T) {
	svcs := testutil.NewServices(t)
	john := testutil.CreateUser(t, svcs.Users, "John Smith", "john@example.com", "Passw0rd!", user.RoleTeacher)

	tests := []struct {
		name    string
		creds   user.LoginCredentials
		wantErr error
	}{
		{name: "unknown email", creds: user.LoginCredentials{Email: "nobody@example.com", Password: "Passw0rd!"}, wantErr: user.ErrInvalidCredentials},
		{name: "wrong password", creds: user.LoginCredentials{Email: "john@example.com", Password: "passw0rd!"}, wantErr: user.ErrInvalidCredentials},
		{name: "email case ignored", creds: user.LoginCredentials{Email: "John@Example.com", Password: "Passw0rd!"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr, err := svcs.Users.Authenticate(context.Background(), tt.creds)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, john.ID, usr.ID)
		})
	}
}

func TestService_SetPassword(t *testing.T) {
	svcs := testutil.NewServices(t)
	alice := testutil.CreateUser(t, svcs.Users, "Alice Johnson", "alice@example.com", "Passw0rd!", user.RoleStudent)

	_, err := svcs.Users.SetPassword(context.Background(), alice, "N3w!Secret")
	require.NoError(t, err)

	_, err = svcs.Users.Authenticate(context.Background(), user.LoginCredentials{Email: "alice@example.com", Password: "Passw0rd!"})
	assert.Equal(t, user.ErrInvalidCredentials, err)
	_, err = svcs.Users.Authenticate(context.Background(), user.LoginCredentials{Email: "alice@example.com", Password: "N3w!Secret"})
	assert.NoError(t, err)
}

func TestService_Query(t *testing.T) {
	svcs := testutil.NewServices(t)
	testutil.CreateUser(t, svcs.Users, "John Smith", "john@example.com", "Passw0rd!", user.RoleTeacher)
	testutil.CreateUser(t, svcs.Users, "Alice Johnson", "alice@example.com", "Passw0rd!", user.RoleStudent)
	testutil.CreateUser(t, svcs.Users, "Bob Williams", "bob@example.com", "Passw0rd!", user.RoleStudent)

	all, err := svcs.Users.Query(context.Background(), user.QueryFilter{})
	require.NoError(t, err)
	if assert.Len(t, all, 3) {
		assert.Equal(t, "Alice Johnson", all[0].Name, "ordered by name")
	}

	students, err := svcs.Users.Query(context.Background(), user.QueryFilter{Role: user.RoleStudent})
	require.NoError(t, err)
	assert.Len(t, students, 2)
}
