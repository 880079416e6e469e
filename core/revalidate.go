package core

import (
	"context"
	"strings"
)

// Routes whose views are invalidated by mutations.
const (
	PathIndex         = "/Index"
	PathDashboard     = "/Dashboard"
	PathAssignments   = "/Assignments"
	PathSchedules     = "/Schedules"
	PathLeaveRequests = "/LeaveRequests"
)

// AssignmentPath returns the route of an assignment detail view.
func AssignmentPath(id string) string {
	return PathAssignments + "/" + id
}

// Revalidator is told which routes display stale data after a mutation.
type Revalidator interface {
	Revalidate(ctx context.Context, paths ...string) error
}

// Revalidators fans a revalidation out to every member, returning the errors it met.
type Revalidators []Revalidator

var _ Revalidator = (Revalidators)(nil)

func (rs Revalidators) Revalidate(ctx context.Context, paths ...string) error {
	var msgs []string
	for _, r := range rs {
		if r == nil {
			continue
		}
		if err := r.Revalidate(ctx, paths...); err != nil {
			msgs = append(msgs, err.Error())
		}
	}
	if len(msgs) > 0 {
		return &revalidationError{msgs: msgs}
	}
	return nil
}

type revalidationError struct {
	msgs []string
}

func (e revalidationError) Error() string {
	return "revalidating: " + strings.Join(e.msgs, "; ")
}
