package submission_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/submission"
	"github.com/trezcool/classdesk/core/user"
	testutil "github.com/trezcool/classdesk/tests"
)

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svcs := testutil.NewServices(t)
	john := testutil.CreateUser(t, svcs.Users, "John Smith", "john@example.com", "Passw0rd!", user.RoleTeacher)
	alice := testutil.CreateUser(t, svcs.Users, "Alice Johnson", "alice@example.com", "Passw0rd!", user.RoleStudent)
	bob := testutil.CreateUser(t, svcs.Users, "Bob Williams", "bob@example.com", "Passw0rd!", user.RoleStudent)
	asg := testutil.CreateAssignment(t, svcs.Assignments, john, "Essay", time.Now().Add(48*time.Hour))

	sub := testutil.CreateSubmission(t, svcs.Submissions, alice, asg, "My essay")
	assert.NotEmpty(t, sub.ID)
	assert.False(t, sub.SubmissionDate.IsZero())
	assert.Equal(t, submission.StatusSubmitted, submission.Status(&sub))

	_, err := svcs.Submissions.Create(ctx, submission.NewSubmission{AssignmentID: asg.ID, StudentID: alice.ID, Content: "Again"})
	if assert.Error(t, err) {
		msg, ok := core.ValidationMessage(err, svcs.Translator)
		assert.True(t, ok)
		assert.Equal(t, submission.ErrAlreadySubmitted.Error(), msg)
	}

	testutil.CreateSubmission(t, svcs.Submissions, bob, asg, "Bob's essay")
	subs, err := svcs.Submissions.Query(ctx, submission.QueryFilter{AssignmentID: asg.ID})
	require.NoError(t, err)
	assert.Len(t, subs, 2)

	own, err := svcs.Submissions.Query(ctx, submission.QueryFilter{StudentID: alice.ID})
	require.NoError(t, err)
	if assert.Len(t, own, 1) {
		assert.Equal(t, sub.ID, own[0].ID)
	}
}

func TestService_Grade(t *testing.T) {
	ctx := context.Background()
	svcs := testutil.NewServices(t)
	john := testutil.CreateUser(t, svcs.Users, "John Smith", "john@example.com", "Passw0rd!", user.RoleTeacher)
	alice := testutil.CreateUser(t, svcs.Users, "Alice Johnson", "alice@example.com", "Passw0rd!", user.RoleStudent)
	asg := testutil.CreateAssignment(t, svcs.Assignments, john, "Essay", time.Now().Add(48*time.Hour))
	sub := testutil.CreateSubmission(t, svcs.Submissions, alice, asg, "My essay")

	graded, err := svcs.Submissions.Grade(ctx, sub, submission.GradeSubmission{Grade: "A", Feedback: "Great work"})
	require.NoError(t, err)
	assert.True(t, graded.IsGraded())
	assert.Equal(t, "Graded: A", submission.Status(&graded))
	if assert.NotNil(t, graded.Feedback) {
		assert.Equal(t, "Great work", *graded.Feedback)
	}

	// regrading overwrites; no feedback clears it
	regraded, err := svcs.Submissions.Grade(ctx, graded, submission.GradeSubmission{Grade: "B"})
	require.NoError(t, err)
	assert.Equal(t, "B", *regraded.Grade)
	assert.Nil(t, regraded.Feedback)

	got, err := svcs.Submissions.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", *got.Grade)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, submission.StatusNotSubmitted, submission.Status(nil))
	empty := ""
	assert.Equal(t, submission.StatusSubmitted, submission.Status(&submission.Submission{Grade: &empty}))
}
