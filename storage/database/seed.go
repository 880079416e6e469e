package database

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/assignment"
	"github.com/trezcool/classdesk/core/leave"
	"github.com/trezcool/classdesk/core/schedule"
	"github.com/trezcool/classdesk/core/submission"
	"github.com/trezcool/classdesk/core/user"
)

// DemoPassword is the password of every seeded user.
const DemoPassword = "Passw0rd!"

// Seeder loads the demo dataset through the domain services.
type Seeder struct {
	Users       *user.Service
	Assignments *assignment.Service
	Submissions *submission.Service
	Schedules   *schedule.Service
	Leaves      *leave.Service
	Logger      core.Logger
}

type seededUser struct {
	name, email string
	role        user.Role
}

var demoUsers = []seededUser{
	{"John Smith", "john@example.com", user.RoleTeacher},
	{"Emma Davis", "emma@example.com", user.RoleTeacher},
	{"Alice Johnson", "alice@example.com", user.RoleStudent},
	{"Bob Wilson", "bob@example.com", user.RoleStudent},
	{"Charlie Brown", "charlie@example.com", user.RoleStudent},
}

// Seed is a no-op when the demo users already exist.
func (s Seeder) Seed(ctx context.Context) error {
	if _, err := s.Users.GetByEmail(ctx, demoUsers[0].email); err == nil {
		s.Logger.Info("seed: demo data already present")
		return nil
	} else if !core.IsNotFound(err) {
		return errors.Wrap(err, "checking demo data")
	}

	users := make(map[string]user.User, len(demoUsers))
	for _, du := range demoUsers {
		usr, err := s.Users.Create(ctx, user.NewUser{
			Name:     du.name,
			Email:    du.email,
			Role:     du.role,
			Password: DemoPassword,
		})
		if err != nil {
			return errors.Wrapf(err, "creating %s", du.email)
		}
		users[du.email] = usr
	}
	john, emma := users["john@example.com"], users["emma@example.com"]
	alice, bob := users["alice@example.com"], users["bob@example.com"]

	react, err := s.Assignments.Create(ctx, assignment.NewAssignment{
		Title:       "Introduction to React",
		Description: "Create a simple React application with components, props, and state.",
		DueDate:     "2023-04-15",
		TeacherID:   john.ID,
	})
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	css, err := s.Assignments.Create(ctx, assignment.NewAssignment{
		Title:       "Advanced CSS Techniques",
		Description: "Implement responsive design using CSS Grid and Flexbox.",
		DueDate:     "2023-04-20",
		TeacherID:   emma.ID,
	})
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}

	graded := []struct {
		ns submission.NewSubmission
		gs *submission.GradeSubmission
	}{
		{
			ns: submission.NewSubmission{AssignmentID: react.ID, StudentID: alice.ID, Content: "https://github.com/alice/react-project"},
			gs: &submission.GradeSubmission{Grade: "A", Feedback: "Excellent work! You've demonstrated a good understanding of React components."},
		},
		{
			ns: submission.NewSubmission{AssignmentID: react.ID, StudentID: bob.ID, Content: "https://github.com/bob/react-assignment"},
			gs: &submission.GradeSubmission{Grade: "B", Feedback: "Good job! Consider implementing error handling in your components."},
		},
		{
			ns: submission.NewSubmission{AssignmentID: css.ID, StudentID: alice.ID, Content: "https://codepen.io/alice/css-project"},
		},
	}
	for _, g := range graded {
		sub, err := s.Submissions.Create(ctx, g.ns)
		if err != nil {
			return errors.Wrap(err, "creating submission")
		}
		if g.gs != nil {
			if _, err = s.Submissions.Grade(ctx, sub, *g.gs); err != nil {
				return errors.Wrap(err, "grading submission")
			}
		}
	}

	for _, ns := range []schedule.NewSchedule{
		{
			Title:       "Web Development Basics",
			Description: "Introduction to HTML, CSS, and JavaScript",
			StartTime:   "2023-04-10T09:00",
			EndTime:     "2023-04-10T11:00",
			TeacherID:   john.ID,
		},
		{
			Title:       "React Workshop",
			Description: "Hands-on session with React hooks and context",
			StartTime:   "2023-04-12T13:00",
			EndTime:     "2023-04-12T16:00",
			TeacherID:   john.ID,
		},
		{
			Title:       "CSS Masterclass",
			Description: "Advanced CSS techniques and best practices",
			StartTime:   "2023-04-14T10:00",
			EndTime:     "2023-04-14T12:00",
			TeacherID:   emma.ID,
		},
	} {
		if _, err := s.Schedules.Create(ctx, ns); err != nil {
			return errors.Wrap(err, "creating schedule")
		}
	}

	family, err := s.Leaves.Create(ctx, leave.NewRequest{
		Reason:    "Family event",
		StartDate: "2023-04-22",
		EndDate:   "2023-04-23",
		StudentID: alice.ID,
	})
	if err != nil {
		return errors.Wrap(err, "creating leave request")
	}
	if _, err = s.Leaves.Review(ctx, family, john.ID, leave.Review{Status: leave.StatusApproved}); err != nil {
		return errors.Wrap(err, "reviewing leave request")
	}
	if _, err = s.Leaves.Create(ctx, leave.NewRequest{
		Reason:    "Medical appointment",
		StartDate: "2023-04-25",
		EndDate:   "2023-04-25",
		StudentID: bob.ID,
	}); err != nil {
		return errors.Wrap(err, "creating leave request")
	}

	s.Logger.Info("seed: demo data loaded", map[string]interface{}{"users": len(users)})
	return nil
}
