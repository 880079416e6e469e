package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/classdesk/pages"
)

type pagesApi struct {
	pages *pages.Service
}

// registerPagesAPI serves the route views. The index is open to anonymous visitors.
func registerPagesAPI(g *echo.Group, svc *pages.Service, optionalSession echo.MiddlewareFunc, authed []echo.MiddlewareFunc) {
	api := pagesApi{pages: svc}

	g.GET("/index", api.index, optionalSession)

	ag := g.Group("", authed...)
	ag.GET("/dashboard", api.dashboard)
	ag.GET("/assignments", api.assignments)
	ag.GET("/assignments/:id", api.assignmentDetail)
	ag.GET("/schedules", api.schedules)
	ag.GET("/leave-requests", api.leaveRequests)
}

func (api *pagesApi) index(ctx echo.Context) error {
	return respond(ctx, api.pages.Index(ctx.Request().Context()))
}

func (api *pagesApi) dashboard(ctx echo.Context) error {
	return respond(ctx, api.pages.Dashboard(ctx.Request().Context()))
}

func (api *pagesApi) assignments(ctx echo.Context) error {
	return respond(ctx, api.pages.Assignments(ctx.Request().Context()))
}

func (api *pagesApi) assignmentDetail(ctx echo.Context) error {
	return respond(ctx, api.pages.AssignmentDetail(ctx.Request().Context(), ctx.Param("id")))
}

func (api *pagesApi) schedules(ctx echo.Context) error {
	return respond(ctx, api.pages.Schedules(ctx.Request().Context()))
}

func (api *pagesApi) leaveRequests(ctx echo.Context) error {
	return respond(ctx, api.pages.LeaveRequests(ctx.Request().Context()))
}
