package pages

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/trezcool/classdesk/actions"
	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/assignment"
	"github.com/trezcool/classdesk/core/leave"
	"github.com/trezcool/classdesk/core/schedule"
	"github.com/trezcool/classdesk/core/session"
	"github.com/trezcool/classdesk/core/submission"
	"github.com/trezcool/classdesk/core/user"
)

type (
	IndexView struct {
		Redirect string `json:"redirect"`
	}

	DashboardView struct {
		Role user.Role `json:"role"`

		// teacher
		Assignments          []assignment.Assignment `json:"assignments,omitempty"`
		PendingLeaveRequests []leave.Request         `json:"pending_leave_requests,omitempty"`

		// student
		PendingAssignments []assignment.Assignment `json:"pending_assignments,omitempty"`
		Submissions        []submission.Submission `json:"submissions,omitempty"`
		LeaveRequests      []leave.Request         `json:"leave_requests,omitempty"`

		Schedules []schedule.Schedule `json:"schedules"`
	}

	// AssignmentRow is an assignment with the status of the viewing student's submission.
	AssignmentRow struct {
		assignment.Assignment
		Status string `json:"status,omitempty"`
	}

	AssignmentsView struct {
		Role        user.Role       `json:"role"`
		Assignments []AssignmentRow `json:"assignments"`
		CanCreate   bool            `json:"can_create"`
	}

	AssignmentDetailView struct {
		Assignment  assignment.Assignment   `json:"assignment"`
		Submissions []submission.Submission `json:"submissions"`
		Status      string                  `json:"status,omitempty"`
		CanSubmit   bool                    `json:"can_submit"`
		CanGrade    bool                    `json:"can_grade"`
	}

	SchedulesView struct {
		Schedules []schedule.Schedule `json:"schedules"`
		CanCreate bool                `json:"can_create"`
	}

	LeaveRequestsView struct {
		LeaveRequests []leave.Request `json:"leave_requests"`
		CanReview     bool            `json:"can_review"`
		CanCreate     bool            `json:"can_create"`
	}
)

// Index sends visitors to the dashboard, or to the login page without a session.
func (s *Service) Index(ctx context.Context) actions.Result[IndexView] {
	if _, err := session.Require(ctx); err != nil {
		return ok(IndexView{Redirect: PathLogin})
	}
	return ok(IndexView{Redirect: core.PathDashboard})
}

func (s *Service) Dashboard(ctx context.Context) actions.Result[DashboardView] {
	return render(ctx, s, core.PathDashboard, func(ctx context.Context, g *errgroup.Group, sess session.Session) func() DashboardView {
		view := DashboardView{Role: sess.User.Role}

		if sess.User.IsTeacher() {
			g.Go(func() error { return load(s.acts.GetAssignmentsByTeacher(ctx, sess.User.ID), &view.Assignments) })
			g.Go(func() error { return load(s.acts.GetSchedulesByTeacher(ctx, sess.User.ID), &view.Schedules) })
			g.Go(func() error {
				return load(s.acts.GetLeaveRequests(ctx, leave.StatusPending), &view.PendingLeaveRequests)
			})
			return func() DashboardView { return view }
		}

		var all []assignment.Assignment
		g.Go(func() error { return load(s.acts.GetAssignments(ctx), &all) })
		g.Go(func() error { return load(s.acts.GetSchedules(ctx), &view.Schedules) })
		g.Go(func() error { return load(s.acts.GetSubmissionsByStudent(ctx, sess.User.ID), &view.Submissions) })
		g.Go(func() error { return load(s.acts.GetLeaveRequestsByStudent(ctx, sess.User.ID), &view.LeaveRequests) })

		return func() DashboardView {
			submitted := make(map[string]bool, len(view.Submissions))
			for _, sub := range view.Submissions {
				submitted[sub.AssignmentID] = true
			}
			view.PendingAssignments = make([]assignment.Assignment, 0, len(all))
			for _, asg := range all {
				if !submitted[asg.ID] {
					view.PendingAssignments = append(view.PendingAssignments, asg)
				}
			}
			return view
		}
	})
}

// Assignments lists a teacher's own assignments, or every assignment with its status for a student.
func (s *Service) Assignments(ctx context.Context) actions.Result[AssignmentsView] {
	return render(ctx, s, core.PathAssignments, func(ctx context.Context, g *errgroup.Group, sess session.Session) func() AssignmentsView {
		var asgs []assignment.Assignment
		var subs []submission.Submission

		if sess.User.IsTeacher() {
			g.Go(func() error { return load(s.acts.GetAssignmentsByTeacher(ctx, sess.User.ID), &asgs) })
		} else {
			g.Go(func() error { return load(s.acts.GetAssignments(ctx), &asgs) })
			g.Go(func() error { return load(s.acts.GetSubmissionsByStudent(ctx, sess.User.ID), &subs) })
		}

		return func() AssignmentsView {
			byAssignment := make(map[string]*submission.Submission, len(subs))
			for i := range subs {
				byAssignment[subs[i].AssignmentID] = &subs[i]
			}

			rows := make([]AssignmentRow, 0, len(asgs))
			for _, asg := range asgs {
				row := AssignmentRow{Assignment: asg}
				if sess.User.IsStudent() {
					row.Status = submission.Status(byAssignment[asg.ID])
				}
				rows = append(rows, row)
			}
			return AssignmentsView{Role: sess.User.Role, Assignments: rows, CanCreate: sess.User.IsTeacher()}
		}
	})
}

func (s *Service) AssignmentDetail(ctx context.Context, id string) actions.Result[AssignmentDetailView] {
	return render(ctx, s, core.AssignmentPath(id), func(ctx context.Context, g *errgroup.Group, sess session.Session) func() AssignmentDetailView {
		var view AssignmentDetailView

		g.Go(func() error { return load(s.acts.GetAssignmentByID(ctx, id), &view.Assignment) })
		g.Go(func() error { return load(s.acts.GetSubmissionsByAssignment(ctx, id), &view.Submissions) })

		return func() AssignmentDetailView {
			if view.Submissions == nil {
				view.Submissions = []submission.Submission{}
			}
			if sess.User.IsStudent() {
				var own *submission.Submission
				if len(view.Submissions) > 0 {
					own = &view.Submissions[0]
				}
				view.Status = submission.Status(own)
				view.CanSubmit = own == nil
			}
			view.CanGrade = sess.User.IsTeacher() && view.Assignment.TeacherID == sess.User.ID
			return view
		}
	})
}

// Schedules lists a teacher's own schedules, or every schedule for a student.
func (s *Service) Schedules(ctx context.Context) actions.Result[SchedulesView] {
	return render(ctx, s, core.PathSchedules, func(ctx context.Context, g *errgroup.Group, sess session.Session) func() SchedulesView {
		view := SchedulesView{CanCreate: sess.User.IsTeacher()}

		if sess.User.IsTeacher() {
			g.Go(func() error { return load(s.acts.GetSchedulesByTeacher(ctx, sess.User.ID), &view.Schedules) })
		} else {
			g.Go(func() error { return load(s.acts.GetSchedules(ctx), &view.Schedules) })
		}
		return func() SchedulesView { return view }
	})
}

// LeaveRequests lists every request for a teacher, or the student's own requests.
func (s *Service) LeaveRequests(ctx context.Context) actions.Result[LeaveRequestsView] {
	return render(ctx, s, core.PathLeaveRequests, func(ctx context.Context, g *errgroup.Group, sess session.Session) func() LeaveRequestsView {
		view := LeaveRequestsView{CanReview: sess.User.IsTeacher(), CanCreate: sess.User.IsStudent()}

		if sess.User.IsTeacher() {
			g.Go(func() error { return load(s.acts.GetLeaveRequests(ctx, ""), &view.LeaveRequests) })
		} else {
			g.Go(func() error { return load(s.acts.GetLeaveRequestsByStudent(ctx, sess.User.ID), &view.LeaveRequests) })
		}
		return func() LeaveRequestsView { return view }
	})
}
