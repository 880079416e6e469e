package actions

import (
	"context"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/assignment"
	"github.com/trezcool/classdesk/core/session"
	"github.com/trezcool/classdesk/core/user"
)

// CreateAssignment stores an assignment owned by the calling teacher.
// A TeacherID other than the caller's is rejected.
func (a *Actions) CreateAssignment(ctx context.Context, na assignment.NewAssignment) Result[assignment.Assignment] {
	const action, generic = "createAssignment", "Failed to create assignment"

	sess, err := session.Require(ctx, user.RoleTeacher)
	if err != nil {
		return fail[assignment.Assignment](ctx, a, action, generic, err)
	}
	if na.TeacherID != "" && core.CleanString(na.TeacherID) != sess.User.ID {
		return fail[assignment.Assignment](ctx, a, action, generic, core.ErrPermissionDenied)
	}
	na.TeacherID = sess.User.ID

	if err = na.Validate(a.validate); err != nil {
		return fail[assignment.Assignment](ctx, a, action, generic, err)
	}
	asg, err := a.assignments.Create(ctx, na)
	if err != nil {
		return fail[assignment.Assignment](ctx, a, action, generic, err)
	}

	a.revalidate(ctx, core.PathAssignments, core.PathDashboard)
	return succeed(action, asg)
}

func (a *Actions) GetAssignments(ctx context.Context) Result[[]assignment.Assignment] {
	const action, generic = "getAssignments", "Failed to fetch assignments"

	if _, err := session.Require(ctx); err != nil {
		return fail[[]assignment.Assignment](ctx, a, action, generic, err)
	}
	asgs, err := a.assignments.Query(ctx, assignment.QueryFilter{})
	if err != nil {
		return fail[[]assignment.Assignment](ctx, a, action, generic, err)
	}
	return succeed(action, asgs)
}

// GetAssignmentsByTeacher lists the assignments of a teacher, soonest due first.
func (a *Actions) GetAssignmentsByTeacher(ctx context.Context, teacherID string) Result[[]assignment.Assignment] {
	const action, generic = "getAssignmentsByTeacher", "Failed to fetch assignments"

	if _, err := session.Require(ctx); err != nil {
		return fail[[]assignment.Assignment](ctx, a, action, generic, err)
	}
	asgs, err := a.assignments.Query(ctx, assignment.QueryFilter{TeacherID: teacherID})
	if err != nil {
		return fail[[]assignment.Assignment](ctx, a, action, generic, err)
	}
	return succeed(action, asgs)
}

func (a *Actions) GetAssignmentByID(ctx context.Context, id string) Result[assignment.Assignment] {
	const action, generic = "getAssignmentById", "Failed to fetch assignment"

	if _, err := session.Require(ctx); err != nil {
		return fail[assignment.Assignment](ctx, a, action, generic, err)
	}
	asg, err := a.assignments.GetByID(ctx, id)
	if err != nil {
		return fail[assignment.Assignment](ctx, a, action, generic, err)
	}
	return succeed(action, asg)
}
