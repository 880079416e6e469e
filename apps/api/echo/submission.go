package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/classdesk/actions"
	"github.com/trezcool/classdesk/core/session"
	"github.com/trezcool/classdesk/core/submission"
)

type submissionApi struct {
	acts *actions.Actions
}

func registerSubmissionAPI(g *echo.Group, acts *actions.Actions) {
	api := submissionApi{acts: acts}

	sg := g.Group("/submissions")
	sg.GET("", api.query)
	sg.PUT("/:id", api.grade)
}

// query lists the submissions of a student, the caller by default.
func (api *submissionApi) query(ctx echo.Context) error {
	filter := new(listFilter)
	filter.Bind(ctx)

	reqCtx := ctx.Request().Context()
	if filter.StudentID == "" {
		if sess, ok := session.FromContext(reqCtx); ok {
			filter.StudentID = sess.User.ID
		}
	}
	return respond(ctx, api.acts.GetSubmissionsByStudent(reqCtx, filter.StudentID))
}

func (api *submissionApi) grade(ctx echo.Context) error {
	var data submission.GradeSubmission
	if ok, err := bindBody(ctx, &data); !ok {
		return err
	}
	return respond(ctx, api.acts.GradeSubmission(ctx.Request().Context(), ctx.Param("id"), data))
}
