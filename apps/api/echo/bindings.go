package echoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/classdesk/actions"
	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/leave"
	"github.com/trezcool/classdesk/core/user"
)

// listFilter holds the query parameters understood by the list endpoints.
type listFilter struct {
	Role      user.Role
	TeacherID string
	StudentID string
	Status    leave.Status
}

func (f *listFilter) Bind(ctx echo.Context) {
	data := ctx.QueryParams()
	if len(data) == 0 {
		return
	}
	f.Role = user.Role(strings.ToUpper(core.CleanString(data.Get("role"))))
	f.TeacherID = core.CleanString(data.Get("teacher_id"))
	f.StudentID = core.CleanString(data.Get("student_id"))
	f.Status = leave.Status(strings.ToUpper(core.CleanString(data.Get("status"))))
}

// statusOf maps the kind of an action result to an HTTP status.
func statusOf(kind actions.Kind, success int) int {
	switch kind {
	case actions.KindOK:
		return success
	case actions.KindValidation:
		return http.StatusBadRequest
	case actions.KindUnauthenticated:
		return http.StatusUnauthorized
	case actions.KindForbidden:
		return http.StatusForbidden
	case actions.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respond[T any](ctx echo.Context, res actions.Result[T]) error {
	return ctx.JSON(statusOf(res.Kind, http.StatusOK), res)
}

func respondCreated[T any](ctx echo.Context, res actions.Result[T]) error {
	return ctx.JSON(statusOf(res.Kind, http.StatusCreated), res)
}

// bindBody decodes the JSON body into dst. Malformed bodies are answered like validation failures.
func bindBody[T any](ctx echo.Context, dst *T) (bool, error) {
	if err := ctx.Bind(dst); err != nil {
		msg := "invalid request body"
		if herr, ok := err.(*echo.HTTPError); ok {
			if m, ok := herr.Message.(string); ok {
				msg = m
			}
		}
		return false, ctx.JSON(http.StatusBadRequest, actions.Result[T]{Error: msg, Kind: actions.KindValidation})
	}
	return true, nil
}
