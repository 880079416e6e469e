// Package testutil builds in-memory fixtures shared by the package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/assignment"
	"github.com/trezcool/classdesk/core/leave"
	"github.com/trezcool/classdesk/core/schedule"
	"github.com/trezcool/classdesk/core/submission"
	"github.com/trezcool/classdesk/core/user"
	dummydb "github.com/trezcool/classdesk/storage/database/dummy"
)

// Services wires every domain service on a fresh in-memory store.
type Services struct {
	DB          *dummydb.DB
	Validate    *validator.Validate
	Translator  ut.Translator
	Users       *user.Service
	Assignments *assignment.Service
	Submissions *submission.Service
	Schedules   *schedule.Service
	Leaves      *leave.Service
}

func NewValidator(t *testing.T) (*validator.Validate, ut.Translator) {
	t.Helper()

	english := en.New()
	translator, _ := ut.New(english, english).GetTranslator("en")
	validate := validator.New()

	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	schedule.InitValidators(validate, translator)
	leave.InitValidators(validate, translator)
	return validate, translator
}

func NewServices(t *testing.T) *Services {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	validate, translator := NewValidator(t)
	return &Services{
		DB:          db,
		Validate:    validate,
		Translator:  translator,
		Users:       user.NewService(dummydb.NewUserRepository(db)),
		Assignments: assignment.NewService(dummydb.NewAssignmentRepository(db)),
		Submissions: submission.NewService(dummydb.NewSubmissionRepository(db)),
		Schedules:   schedule.NewService(dummydb.NewScheduleRepository(db)),
		Leaves:      leave.NewService(dummydb.NewLeaveRepository(db)),
	}
}

func CreateUser(t *testing.T, svc *user.Service, name, email, pwd string, role user.Role) user.User {
	t.Helper()

	usr, err := svc.Create(context.Background(), user.NewUser{Name: name, Email: email, Role: role, Password: pwd})
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

func CreateAssignment(t *testing.T, svc *assignment.Service, teacher user.User, title string, due time.Time) assignment.Assignment {
	t.Helper()

	asg, err := svc.Create(context.Background(), assignment.NewAssignment{
		Title:       title,
		Description: title + " description",
		DueDate:     due.UTC().Format(time.RFC3339),
		TeacherID:   teacher.ID,
	})
	if err != nil {
		t.Fatalf("createAssignment() failed: %v", err)
	}
	return asg
}

func CreateSubmission(t *testing.T, svc *submission.Service, student user.User, asg assignment.Assignment, content string) submission.Submission {
	t.Helper()

	sub, err := svc.Create(context.Background(), submission.NewSubmission{
		AssignmentID: asg.ID,
		StudentID:    student.ID,
		Content:      content,
	})
	if err != nil {
		t.Fatalf("createSubmission() failed: %v", err)
	}
	return sub
}

func CreateSchedule(t *testing.T, svc *schedule.Service, teacher user.User, title string, start time.Time, dur time.Duration) schedule.Schedule {
	t.Helper()

	sch, err := svc.Create(context.Background(), schedule.NewSchedule{
		Title:       title,
		Description: title + " description",
		StartTime:   start.UTC().Format(time.RFC3339),
		EndTime:     start.Add(dur).UTC().Format(time.RFC3339),
		TeacherID:   teacher.ID,
	})
	if err != nil {
		t.Fatalf("createSchedule() failed: %v", err)
	}
	return sch
}

func CreateLeaveRequest(t *testing.T, svc *leave.Service, student user.User, reason, start, end string) leave.Request {
	t.Helper()

	req, err := svc.Create(context.Background(), leave.NewRequest{
		Reason:    reason,
		StartDate: start,
		EndDate:   end,
		StudentID: student.ID,
	})
	if err != nil {
		t.Fatalf("createLeaveRequest() failed: %v", err)
	}
	return req
}
