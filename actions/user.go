package actions

import (
	"context"

	"github.com/trezcool/classdesk/core/session"
	"github.com/trezcool/classdesk/core/user"
)

func (a *Actions) GetUsers(ctx context.Context) Result[[]user.User] {
	return a.queryUsers(ctx, "getUsers", user.QueryFilter{})
}

func (a *Actions) GetTeachers(ctx context.Context) Result[[]user.User] {
	return a.queryUsers(ctx, "getTeachers", user.QueryFilter{Role: user.RoleTeacher})
}

func (a *Actions) GetStudents(ctx context.Context) Result[[]user.User] {
	return a.queryUsers(ctx, "getStudents", user.QueryFilter{Role: user.RoleStudent})
}

func (a *Actions) queryUsers(ctx context.Context, action string, filter user.QueryFilter) Result[[]user.User] {
	const generic = "Failed to fetch users"

	if _, err := session.Require(ctx); err != nil {
		return fail[[]user.User](ctx, a, action, generic, err)
	}
	users, err := a.users.Query(ctx, filter)
	if err != nil {
		return fail[[]user.User](ctx, a, action, generic, err)
	}
	return succeed(action, users)
}

func (a *Actions) GetUserByID(ctx context.Context, id string) Result[user.User] {
	const action, generic = "getUserById", "Failed to fetch user"

	if _, err := session.Require(ctx); err != nil {
		return fail[user.User](ctx, a, action, generic, err)
	}
	usr, err := a.users.GetByID(ctx, id)
	if err != nil {
		return fail[user.User](ctx, a, action, generic, err)
	}
	return succeed(action, usr)
}
