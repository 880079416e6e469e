package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/classdesk/actions"
	"github.com/trezcool/classdesk/core/user"
)

type userApi struct {
	acts *actions.Actions
}

func registerUserAPI(g *echo.Group, acts *actions.Actions) {
	api := userApi{acts: acts}

	ug := g.Group("/users")
	ug.GET("", api.query)
	ug.GET("/:id", api.retrieve)
}

func (api *userApi) query(ctx echo.Context) error {
	filter := new(listFilter)
	filter.Bind(ctx)

	reqCtx := ctx.Request().Context()
	switch filter.Role {
	case user.RoleTeacher:
		return respond(ctx, api.acts.GetTeachers(reqCtx))
	case user.RoleStudent:
		return respond(ctx, api.acts.GetStudents(reqCtx))
	default:
		return respond(ctx, api.acts.GetUsers(reqCtx))
	}
}

func (api *userApi) retrieve(ctx echo.Context) error {
	return respond(ctx, api.acts.GetUserByID(ctx.Request().Context(), ctx.Param("id")))
}
