package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/classdesk/actions"
	"github.com/trezcool/classdesk/core/leave"
	"github.com/trezcool/classdesk/core/session"
)

type leaveApi struct {
	acts *actions.Actions
}

func registerLeaveAPI(g *echo.Group, acts *actions.Actions) {
	api := leaveApi{acts: acts}

	lg := g.Group("/leave-requests")
	lg.GET("", api.query)
	lg.POST("", api.create)
	lg.GET("/:id", api.retrieve)
	lg.PUT("/:id", api.review)
}

// query lists every request (teachers, optionally by status) or the requests of one student.
// Students without a student_id get their own requests.
func (api *leaveApi) query(ctx echo.Context) error {
	filter := new(listFilter)
	filter.Bind(ctx)

	reqCtx := ctx.Request().Context()
	if filter.StudentID == "" {
		if sess, ok := session.FromContext(reqCtx); ok && sess.User.IsStudent() {
			filter.StudentID = sess.User.ID
		}
	}
	if filter.StudentID != "" {
		return respond(ctx, api.acts.GetLeaveRequestsByStudent(reqCtx, filter.StudentID))
	}
	return respond(ctx, api.acts.GetLeaveRequests(reqCtx, filter.Status))
}

func (api *leaveApi) create(ctx echo.Context) error {
	var data leave.NewRequest
	if ok, err := bindBody(ctx, &data); !ok {
		return err
	}
	return respondCreated(ctx, api.acts.CreateLeaveRequest(ctx.Request().Context(), data))
}

func (api *leaveApi) retrieve(ctx echo.Context) error {
	return respond(ctx, api.acts.GetLeaveRequestByID(ctx.Request().Context(), ctx.Param("id")))
}

func (api *leaveApi) review(ctx echo.Context) error {
	var data leave.Review
	if ok, err := bindBody(ctx, &data); !ok {
		return err
	}
	return respond(ctx, api.acts.ReviewLeaveRequest(ctx.Request().Context(), ctx.Param("id"), data))
}
