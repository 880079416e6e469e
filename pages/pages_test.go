package pages

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classdesk/actions"
	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/leave"
	"github.com/trezcool/classdesk/core/session"
	"github.com/trezcool/classdesk/core/submission"
	"github.com/trezcool/classdesk/core/user"
	appfs "github.com/trezcool/classdesk/fs"
	cachesvc "github.com/trezcool/classdesk/services/cache"
	emailsvc "github.com/trezcool/classdesk/services/email"
	logsvc "github.com/trezcool/classdesk/services/logger"
	testutil "github.com/trezcool/classdesk/tests"
)

const pwd = "Passw0rd!"

type fixture struct {
	pages   *Service
	acts    *actions.Actions
	svcs    *testutil.Services
	cache   *cachesvc.MemoryCache
	teacher user.User
	student user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conf := core.NewTestConfig()
	logger := logsvc.NewNopLogger()
	core.ParseEmailTemplates(appfs.FS, true, logger)

	svcs := testutil.NewServices(t)
	cache := cachesvc.NewMemoryCache()
	acts := actions.New(actions.Deps{
		Validate:    svcs.Validate,
		Translator:  svcs.Translator,
		Users:       svcs.Users,
		Assignments: svcs.Assignments,
		Submissions: svcs.Submissions,
		Schedules:   svcs.Schedules,
		Leaves:      svcs.Leaves,
		Mail:        emailsvc.NewConsoleServiceMock(conf, logger),
		Revalidator: cache,
		Logger:      logger,
	})

	return &fixture{
		pages:   NewService(acts, cache, cachesvc.Key, conf, logger),
		acts:    acts,
		svcs:    svcs,
		cache:   cache,
		teacher: testutil.CreateUser(t, svcs.Users, "John Smith", "john@example.com", pwd, user.RoleTeacher),
		student: testutil.CreateUser(t, svcs.Users, "Alice Johnson", "alice@example.com", pwd, user.RoleStudent),
	}
}

func as(usr user.User) context.Context {
	return session.NewContext(context.Background(), session.Session{User: usr, IssuedAt: time.Now()})
}

func TestIndex(t *testing.T) {
	f := newFixture(t)

	anon := f.pages.Index(context.Background())
	require.True(t, anon.Success)
	assert.Equal(t, PathLogin, anon.Data.Redirect)

	signedIn := f.pages.Index(as(f.student))
	require.True(t, signedIn.Success)
	assert.Equal(t, core.PathDashboard, signedIn.Data.Redirect)
}

func TestViewsRequireSession(t *testing.T) {
	f := newFixture(t)

	res := f.pages.Dashboard(context.Background())
	assert.False(t, res.Success)
	assert.Equal(t, actions.KindUnauthenticated, res.Kind)
}

func TestStudentDashboard_PendingAssignments(t *testing.T) {
	f := newFixture(t)
	react := testutil.CreateAssignment(t, f.svcs.Assignments, f.teacher, "Introduction to React", time.Now().Add(24*time.Hour))
	css := testutil.CreateAssignment(t, f.svcs.Assignments, f.teacher, "Advanced CSS Techniques", time.Now().Add(48*time.Hour))

	before := f.pages.Dashboard(as(f.student))
	require.True(t, before.Success, before.Error)
	assert.Len(t, before.Data.PendingAssignments, 2)

	sub := f.acts.CreateSubmission(as(f.student), submission.NewSubmission{AssignmentID: react.ID, Content: "https://github.com/alice/react-project"})
	require.True(t, sub.Success, sub.Error)

	after := f.pages.Dashboard(as(f.student))
	require.True(t, after.Success, after.Error)
	require.Len(t, after.Data.PendingAssignments, 1)
	assert.Equal(t, css.ID, after.Data.PendingAssignments[0].ID)
	require.Len(t, after.Data.Submissions, 1)
	assert.Equal(t, user.RoleStudent, after.Data.Role)
}

func TestTeacherDashboard(t *testing.T) {
	f := newFixture(t)
	testutil.CreateAssignment(t, f.svcs.Assignments, f.teacher, "Introduction to React", time.Now().Add(24*time.Hour))
	testutil.CreateSchedule(t, f.svcs.Schedules, f.teacher, "React Workshop", time.Now(), 3*time.Hour)
	testutil.CreateLeaveRequest(t, f.svcs.Leaves, f.student, "Family event", "2023-04-22", "2023-04-23")

	res := f.pages.Dashboard(as(f.teacher))
	require.True(t, res.Success, res.Error)
	assert.Len(t, res.Data.Assignments, 1)
	assert.Len(t, res.Data.Schedules, 1)
	assert.Len(t, res.Data.PendingLeaveRequests, 1)
	assert.Empty(t, res.Data.PendingAssignments)
}

func TestAssignmentsView_Status(t *testing.T) {
	f := newFixture(t)
	react := testutil.CreateAssignment(t, f.svcs.Assignments, f.teacher, "Introduction to React", time.Now().Add(24*time.Hour))
	css := testutil.CreateAssignment(t, f.svcs.Assignments, f.teacher, "Advanced CSS Techniques", time.Now().Add(48*time.Hour))
	html := testutil.CreateAssignment(t, f.svcs.Assignments, f.teacher, "HTML Basics", time.Now().Add(72*time.Hour))

	sub := testutil.CreateSubmission(t, f.svcs.Submissions, f.student, react, "react")
	testutil.CreateSubmission(t, f.svcs.Submissions, f.student, css, "css")
	graded := f.acts.GradeSubmission(as(f.teacher), sub.ID, submission.GradeSubmission{Grade: "A"})
	require.True(t, graded.Success, graded.Error)

	res := f.pages.Assignments(as(f.student))
	require.True(t, res.Success, res.Error)
	statuses := make(map[string]string)
	for _, row := range res.Data.Assignments {
		statuses[row.ID] = row.Status
	}
	assert.Equal(t, map[string]string{
		react.ID: "Graded: A",
		css.ID:   submission.StatusSubmitted,
		html.ID:  submission.StatusNotSubmitted,
	}, statuses)
	assert.False(t, res.Data.CanCreate)

	teacherView := f.pages.Assignments(as(f.teacher))
	require.True(t, teacherView.Success)
	assert.True(t, teacherView.Data.CanCreate)
	for _, row := range teacherView.Data.Assignments {
		assert.Empty(t, row.Status)
	}
}

func TestAssignmentDetail(t *testing.T) {
	f := newFixture(t)
	asg := testutil.CreateAssignment(t, f.svcs.Assignments, f.teacher, "Introduction to React", time.Now().Add(24*time.Hour))

	studentView := f.pages.AssignmentDetail(as(f.student), asg.ID)
	require.True(t, studentView.Success, studentView.Error)
	assert.True(t, studentView.Data.CanSubmit)
	assert.False(t, studentView.Data.CanGrade)
	assert.Equal(t, submission.StatusNotSubmitted, studentView.Data.Status)

	sub := f.acts.CreateSubmission(as(f.student), submission.NewSubmission{AssignmentID: asg.ID, Content: "react"})
	require.True(t, sub.Success, sub.Error)

	studentView = f.pages.AssignmentDetail(as(f.student), asg.ID)
	require.True(t, studentView.Success)
	assert.False(t, studentView.Data.CanSubmit)
	assert.Len(t, studentView.Data.Submissions, 1)

	teacherView := f.pages.AssignmentDetail(as(f.teacher), asg.ID)
	require.True(t, teacherView.Success)
	assert.True(t, teacherView.Data.CanGrade)
	assert.False(t, teacherView.Data.CanSubmit)

	missing := f.pages.AssignmentDetail(as(f.teacher), "missing")
	assert.False(t, missing.Success)
	assert.Equal(t, actions.KindNotFound, missing.Kind)
}

func TestLeaveRequests_ApprovalIsReflected(t *testing.T) {
	f := newFixture(t)
	req := testutil.CreateLeaveRequest(t, f.svcs.Leaves, f.student, "Family event", "2023-04-22", "2023-04-23")

	before := f.pages.LeaveRequests(as(f.student))
	require.True(t, before.Success, before.Error)
	require.Len(t, before.Data.LeaveRequests, 1)
	assert.Equal(t, leave.StatusPending, before.Data.LeaveRequests[0].Status)
	assert.True(t, before.Data.CanCreate)
	assert.False(t, before.Data.CanReview)

	reviewed := f.acts.ReviewLeaveRequest(as(f.teacher), req.ID, leave.Review{Status: leave.StatusApproved})
	require.True(t, reviewed.Success, reviewed.Error)

	after := f.pages.LeaveRequests(as(f.student))
	require.True(t, after.Success, after.Error)
	require.Len(t, after.Data.LeaveRequests, 1)
	assert.Equal(t, leave.StatusApproved, after.Data.LeaveRequests[0].Status)
}

func TestViewsAreCached(t *testing.T) {
	f := newFixture(t)
	testutil.CreateSchedule(t, f.svcs.Schedules, f.teacher, "React Workshop", time.Now(), time.Hour)

	first := f.pages.Schedules(as(f.student))
	require.True(t, first.Success)
	require.Len(t, first.Data.Schedules, 1)

	// written behind the actions' back: no revalidation
	testutil.CreateSchedule(t, f.svcs.Schedules, f.teacher, "CSS Masterclass", time.Now().Add(time.Hour), time.Hour)
	cached := f.pages.Schedules(as(f.student))
	require.True(t, cached.Success)
	assert.Len(t, cached.Data.Schedules, 1)

	require.NoError(t, f.cache.Revalidate(context.Background(), core.PathSchedules))
	fresh := f.pages.Schedules(as(f.student))
	require.True(t, fresh.Success)
	assert.Len(t, fresh.Data.Schedules, 2)
}
