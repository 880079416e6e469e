package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/classdesk/actions"
	"github.com/trezcool/classdesk/core/schedule"
)

type scheduleApi struct {
	acts *actions.Actions
}

func registerScheduleAPI(g *echo.Group, acts *actions.Actions) {
	api := scheduleApi{acts: acts}

	sg := g.Group("/schedules")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update)
}

func (api *scheduleApi) query(ctx echo.Context) error {
	filter := new(listFilter)
	filter.Bind(ctx)

	if filter.TeacherID != "" {
		return respond(ctx, api.acts.GetSchedulesByTeacher(ctx.Request().Context(), filter.TeacherID))
	}
	return respond(ctx, api.acts.GetSchedules(ctx.Request().Context()))
}

func (api *scheduleApi) create(ctx echo.Context) error {
	var data schedule.NewSchedule
	if ok, err := bindBody(ctx, &data); !ok {
		return err
	}
	return respondCreated(ctx, api.acts.CreateSchedule(ctx.Request().Context(), data))
}

func (api *scheduleApi) retrieve(ctx echo.Context) error {
	return respond(ctx, api.acts.GetScheduleByID(ctx.Request().Context(), ctx.Param("id")))
}

func (api *scheduleApi) update(ctx echo.Context) error {
	var data schedule.UpdateSchedule
	if ok, err := bindBody(ctx, &data); !ok {
		return err
	}
	return respond(ctx, api.acts.UpdateSchedule(ctx.Request().Context(), ctx.Param("id"), data))
}
