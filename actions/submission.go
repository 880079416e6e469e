package actions

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/session"
	"github.com/trezcool/classdesk/core/submission"
	"github.com/trezcool/classdesk/core/user"
)

// CreateSubmission submits the calling student's work for an existing assignment.
// A student may submit only once per assignment.
func (a *Actions) CreateSubmission(ctx context.Context, ns submission.NewSubmission) Result[submission.Submission] {
	const action, generic = "createSubmission", "Failed to submit assignment"

	sess, err := session.Require(ctx, user.RoleStudent)
	if err != nil {
		return fail[submission.Submission](ctx, a, action, generic, err)
	}
	if ns.StudentID != "" && core.CleanString(ns.StudentID) != sess.User.ID {
		return fail[submission.Submission](ctx, a, action, generic, core.ErrPermissionDenied)
	}
	ns.StudentID = sess.User.ID

	if err = ns.Validate(a.validate); err != nil {
		return fail[submission.Submission](ctx, a, action, generic, err)
	}
	if _, err = a.assignments.GetByID(ctx, ns.AssignmentID); err != nil {
		return fail[submission.Submission](ctx, a, action, generic, err)
	}
	sub, err := a.submissions.Create(ctx, ns)
	if err != nil {
		return fail[submission.Submission](ctx, a, action, generic, err)
	}

	a.revalidate(ctx, core.PathAssignments, core.AssignmentPath(ns.AssignmentID), core.PathDashboard)
	return succeed(action, sub)
}

// GradeSubmission sets the grade and feedback of a submission and notifies its student.
// Only the teacher owning the assignment may grade it; the last grade wins.
func (a *Actions) GradeSubmission(ctx context.Context, id string, gs submission.GradeSubmission) Result[submission.Submission] {
	const action, generic = "updateSubmission", "Failed to update submission"

	sess, err := session.Require(ctx, user.RoleTeacher)
	if err != nil {
		return fail[submission.Submission](ctx, a, action, generic, err)
	}
	sub, err := a.submissions.GetByID(ctx, id)
	if err != nil {
		return fail[submission.Submission](ctx, a, action, generic, err)
	}
	asg, err := a.assignments.GetByID(ctx, sub.AssignmentID)
	if err != nil {
		return fail[submission.Submission](ctx, a, action, generic, errors.Wrap(err, "loading submission assignment"))
	}
	if asg.TeacherID != sess.User.ID {
		return fail[submission.Submission](ctx, a, action, generic, core.ErrPermissionDenied)
	}

	if err = gs.Validate(a.validate); err != nil {
		return fail[submission.Submission](ctx, a, action, generic, err)
	}
	sub, err = a.submissions.Grade(ctx, sub, gs)
	if err != nil {
		return fail[submission.Submission](ctx, a, action, generic, err)
	}

	a.sendGradedMail(ctx, sub, asg)
	a.revalidate(ctx, core.PathAssignments, core.AssignmentPath(asg.ID), core.PathDashboard)
	return succeed(action, sub)
}

// GetSubmissionsByAssignment lists the submissions of an assignment, newest first.
// Students only see their own.
func (a *Actions) GetSubmissionsByAssignment(ctx context.Context, assignmentID string) Result[[]submission.Submission] {
	const action, generic = "getSubmissionsByAssignment", "Failed to fetch submissions"

	sess, err := session.Require(ctx)
	if err != nil {
		return fail[[]submission.Submission](ctx, a, action, generic, err)
	}
	if _, err = a.assignments.GetByID(ctx, assignmentID); err != nil {
		return fail[[]submission.Submission](ctx, a, action, generic, err)
	}

	filter := submission.QueryFilter{AssignmentID: assignmentID}
	if !sess.User.IsTeacher() {
		filter.StudentID = sess.User.ID
	}
	subs, err := a.submissions.Query(ctx, filter)
	if err != nil {
		return fail[[]submission.Submission](ctx, a, action, generic, err)
	}
	return succeed(action, subs)
}

func (a *Actions) GetSubmissionsByStudent(ctx context.Context, studentID string) Result[[]submission.Submission] {
	const action, generic = "getSubmissionsByStudent", "Failed to fetch submissions"

	sess, err := session.Require(ctx)
	if err != nil {
		return fail[[]submission.Submission](ctx, a, action, generic, err)
	}
	if studentID == "" {
		studentID = sess.User.ID
	}
	if err = requireSelfOrTeacher(sess, studentID); err != nil {
		return fail[[]submission.Submission](ctx, a, action, generic, err)
	}
	subs, err := a.submissions.Query(ctx, submission.QueryFilter{StudentID: studentID})
	if err != nil {
		return fail[[]submission.Submission](ctx, a, action, generic, err)
	}
	return succeed(action, subs)
}
