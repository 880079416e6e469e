package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/classdesk/actions"
	"github.com/trezcool/classdesk/core/assignment"
	"github.com/trezcool/classdesk/core/submission"
)

type assignmentApi struct {
	acts *actions.Actions
}

func registerAssignmentAPI(g *echo.Group, acts *actions.Actions) {
	api := assignmentApi{acts: acts}

	ag := g.Group("/assignments")
	ag.GET("", api.query)
	ag.POST("", api.create)
	ag.GET("/:id", api.retrieve)
	ag.GET("/:id/submissions", api.querySubmissions)
	ag.POST("/:id/submissions", api.submit)
}

func (api *assignmentApi) query(ctx echo.Context) error {
	filter := new(listFilter)
	filter.Bind(ctx)

	if filter.TeacherID != "" {
		return respond(ctx, api.acts.GetAssignmentsByTeacher(ctx.Request().Context(), filter.TeacherID))
	}
	return respond(ctx, api.acts.GetAssignments(ctx.Request().Context()))
}

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if ok, err := bindBody(ctx, &data); !ok {
		return err
	}
	return respondCreated(ctx, api.acts.CreateAssignment(ctx.Request().Context(), data))
}

func (api *assignmentApi) retrieve(ctx echo.Context) error {
	return respond(ctx, api.acts.GetAssignmentByID(ctx.Request().Context(), ctx.Param("id")))
}

func (api *assignmentApi) querySubmissions(ctx echo.Context) error {
	return respond(ctx, api.acts.GetSubmissionsByAssignment(ctx.Request().Context(), ctx.Param("id")))
}

// submit takes the assignment from the path, whatever the body says.
func (api *assignmentApi) submit(ctx echo.Context) error {
	var data submission.NewSubmission
	if ok, err := bindBody(ctx, &data); !ok {
		return err
	}
	data.AssignmentID = ctx.Param("id")
	return respondCreated(ctx, api.acts.CreateSubmission(ctx.Request().Context(), data))
}
