package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/schedule"
	"github.com/trezcool/classdesk/core/user"
	testutil "github.com/trezcool/classdesk/tests"
)

func TestNewSchedule_Validate(t *testing.T) {
	svcs := testutil.NewServices(t)

	tests := []struct {
		name    string
		ns      schedule.NewSchedule
		wantMsg string
	}{
		{name: "valid", ns: schedule.NewSchedule{Title: "Math", Description: "Algebra", StartTime: "2025-01-06T09:00", EndTime: "2025-01-06T10:00"}},
		{name: "no description", ns: schedule.NewSchedule{Title: "Math", StartTime: "2025-01-06T09:00", EndTime: "2025-01-06T10:00"}, wantMsg: "Description is required"},
		{name: "bad end", ns: schedule.NewSchedule{Title: "Math", Description: "Algebra", StartTime: "2025-01-06T09:00", EndTime: "10am"}, wantMsg: "End time must be a valid date"},
		{name: "empty range", ns: schedule.NewSchedule{Title: "Math", Description: "Algebra", StartTime: "2025-01-06T09:00", EndTime: "2025-01-06T09:00"}, wantMsg: "End time must be after start time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns := tt.ns
			err := ns.Validate(svcs.Validate)
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

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svcs := testutil.NewServices(t)
	john := testutil.CreateUser(t, svcs.Users, "John Smith", "john@example.com", "Passw0rd!", user.RoleTeacher)
	start := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	sch := testutil.CreateSchedule(t, svcs.Schedules, john, "Math", start, time.Hour)
	assert.True(t, start.Equal(sch.StartTime))

	updated, err := svcs.Schedules.Update(ctx, sch, schedule.UpdateSchedule{
		Title:       "Math II",
		Description: "Geometry",
		StartTime:   "2025-01-06T10:00",
		EndTime:     "2025-01-06T11:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "Math II", updated.Title)
	assert.Equal(t, 90*time.Minute, updated.EndTime.Sub(updated.StartTime))
	assert.Equal(t, john.ID, updated.TeacherID)

	list, err := svcs.Schedules.Query(ctx, schedule.QueryFilter{TeacherID: john.ID})
	require.NoError(t, err)
	if assert.Len(t, list, 1) {
		assert.Equal(t, "Math II", list[0].Title)
	}
}
