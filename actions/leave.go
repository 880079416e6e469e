package actions

import (
	"context"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/leave"
	"github.com/trezcool/classdesk/core/session"
	"github.com/trezcool/classdesk/core/user"
)

// CreateLeaveRequest files a PENDING request for the calling student.
func (a *Actions) CreateLeaveRequest(ctx context.Context, nr leave.NewRequest) Result[leave.Request] {
	const action, generic = "createLeaveRequest", "Failed to create leave request"

	sess, err := session.Require(ctx, user.RoleStudent)
	if err != nil {
		return fail[leave.Request](ctx, a, action, generic, err)
	}
	if nr.StudentID != "" && core.CleanString(nr.StudentID) != sess.User.ID {
		return fail[leave.Request](ctx, a, action, generic, core.ErrPermissionDenied)
	}
	nr.StudentID = sess.User.ID

	if err = nr.Validate(a.validate); err != nil {
		return fail[leave.Request](ctx, a, action, generic, err)
	}
	req, err := a.leaves.Create(ctx, nr)
	if err != nil {
		return fail[leave.Request](ctx, a, action, generic, err)
	}

	a.revalidate(ctx, core.PathLeaveRequests, core.PathDashboard)
	return succeed(action, req)
}

// ReviewLeaveRequest approves or rejects a PENDING request and notifies its student.
func (a *Actions) ReviewLeaveRequest(ctx context.Context, id string, rv leave.Review) Result[leave.Request] {
	const action, generic = "updateLeaveRequest", "Failed to update leave request"

	sess, err := session.Require(ctx, user.RoleTeacher)
	if err != nil {
		return fail[leave.Request](ctx, a, action, generic, err)
	}
	if err = rv.Validate(a.validate); err != nil {
		return fail[leave.Request](ctx, a, action, generic, err)
	}
	req, err := a.leaves.GetByID(ctx, id)
	if err != nil {
		return fail[leave.Request](ctx, a, action, generic, err)
	}
	req, err = a.leaves.Review(ctx, req, sess.User.ID, rv)
	if err != nil {
		return fail[leave.Request](ctx, a, action, generic, err)
	}

	a.sendReviewedMail(ctx, req)
	a.revalidate(ctx, core.PathLeaveRequests, core.PathDashboard)
	return succeed(action, req)
}

// GetLeaveRequests lists every request, newest first. Teachers only.
func (a *Actions) GetLeaveRequests(ctx context.Context, status leave.Status) Result[[]leave.Request] {
	const action, generic = "getLeaveRequests", "Failed to fetch leave requests"

	if _, err := session.Require(ctx, user.RoleTeacher); err != nil {
		return fail[[]leave.Request](ctx, a, action, generic, err)
	}
	requests, err := a.leaves.Query(ctx, leave.QueryFilter{Status: status})
	if err != nil {
		return fail[[]leave.Request](ctx, a, action, generic, err)
	}
	return succeed(action, requests)
}

func (a *Actions) GetLeaveRequestsByStudent(ctx context.Context, studentID string) Result[[]leave.Request] {
	const action, generic = "getLeaveRequestsByStudent", "Failed to fetch leave requests"

	sess, err := session.Require(ctx)
	if err != nil {
		return fail[[]leave.Request](ctx, a, action, generic, err)
	}
	if studentID == "" {
		studentID = sess.User.ID
	}
	if err = requireSelfOrTeacher(sess, studentID); err != nil {
		return fail[[]leave.Request](ctx, a, action, generic, err)
	}
	requests, err := a.leaves.Query(ctx, leave.QueryFilter{StudentID: studentID})
	if err != nil {
		return fail[[]leave.Request](ctx, a, action, generic, err)
	}
	return succeed(action, requests)
}

func (a *Actions) GetLeaveRequestByID(ctx context.Context, id string) Result[leave.Request] {
	const action, generic = "getLeaveRequestById", "Failed to fetch leave request"

	sess, err := session.Require(ctx)
	if err != nil {
		return fail[leave.Request](ctx, a, action, generic, err)
	}
	req, err := a.leaves.GetByID(ctx, id)
	if err != nil {
		return fail[leave.Request](ctx, a, action, generic, err)
	}
	if err = requireSelfOrTeacher(sess, req.StudentID); err != nil {
		return fail[leave.Request](ctx, a, action, generic, err)
	}
	return succeed(action, req)
}
