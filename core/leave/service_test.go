package leave_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/leave"
	"github.com/trezcool/classdesk/core/user"
	testutil "github.com/trezcool/classdesk/tests"
)

func TestNewRequest_Validate(t *testing.T) {
	svcs := testutil.NewServices(t)

	tests := []struct {
		name    string
		nr      leave.NewRequest
		wantMsg string
	}{
		{name: "valid", nr: leave.NewRequest{Reason: "Family event", StartDate: "2025-03-01", EndDate: "2025-03-03"}},
		{name: "single day", nr: leave.NewRequest{Reason: "Dentist", StartDate: "2025-03-01", EndDate: "2025-03-01"}},
		{name: "blank reason", nr: leave.NewRequest{Reason: " ", StartDate: "2025-03-01", EndDate: "2025-03-03"}, wantMsg: "Reason is required"},
		{name: "bad date", nr: leave.NewRequest{Reason: "Trip", StartDate: "March 1st", EndDate: "2025-03-03"}, wantMsg: "Start date must be a valid date"},
		{name: "end before start", nr: leave.NewRequest{Reason: "Trip", StartDate: "2025-03-03", EndDate: "2025-03-01"}, wantMsg: "End date must be after or equal to start date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nr := tt.nr
			err := nr.Validate(svcs.Validate)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			msg, ok := core.ValidationMessage(err, svcs.Translator)
			assert.True(t, ok)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestReview_Validate(t *testing.T) {
	svcs := testutil.NewServices(t)

	for _, status := range []leave.Status{"approved", " REJECTED "} {
		rv := leave.Review{Status: status}
		assert.NoError(t, rv.Validate(svcs.Validate), status)
	}
	for _, status := range []leave.Status{"", "PENDING", "maybe"} {
		rv := leave.Review{Status: status}
		assert.Error(t, rv.Validate(svcs.Validate), status)
	}
}

func TestService_Review(t *testing.T) {
	ctx := context.Background()
	svcs := testutil.NewServices(t)
	john := testutil.CreateUser(t, svcs.Users, "John Smith", "john@example.com", "Passw0rd!", user.RoleTeacher)
	alice := testutil.CreateUser(t, svcs.Users, "Alice Johnson", "alice@example.com", "Passw0rd!", user.RoleStudent)

	req := testutil.CreateLeaveRequest(t, svcs.Leaves, alice, "Family event", "2025-03-01", "2025-03-03")
	assert.Equal(t, leave.StatusPending, req.Status)
	assert.Nil(t, req.ReviewedByID)

	reviewed, err := svcs.Leaves.Review(ctx, req, john.ID, leave.Review{Status: leave.StatusApproved})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, reviewed.Status)
	if assert.NotNil(t, reviewed.ReviewedByID) {
		assert.Equal(t, john.ID, *reviewed.ReviewedByID)
	}
	assert.NotNil(t, reviewed.ReviewedAt)

	_, err = svcs.Leaves.Review(ctx, reviewed, john.ID, leave.Review{Status: leave.StatusRejected})
	if assert.Error(t, err) {
		verr, ok := err.(*core.ValidationError)
		if assert.True(t, ok) {
			assert.Equal(t, leave.ErrAlreadyReviewed, verr.Err)
		}
	}

	pending, err := svcs.Leaves.Query(ctx, leave.QueryFilter{Status: leave.StatusPending})
	require.NoError(t, err)
	assert.Empty(t, pending)

	got, err := svcs.Leaves.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, got.Status)

	_, err = svcs.Leaves.GetByID(ctx, "")
	assert.True(t, core.IsNotFound(err))
}
