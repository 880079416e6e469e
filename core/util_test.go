package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2025-01-01", want: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{in: " 2025-01-01T09:30 ", want: time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC)},
		{in: "2025-01-01T09:30:15", want: time.Date(2025, 1, 1, 9, 30, 15, 0, time.UTC)},
		{in: "2025-01-01T09:30:00+02:00", want: time.Date(2025, 1, 1, 7, 30, 0, 0, time.UTC)},
		{in: "01/01/2025", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTime(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestFieldLabel(t *testing.T) {
	assert.Equal(t, "Teacher ID", FieldLabel("teacher_id"))
	assert.Equal(t, "Due date", FieldLabel("due_date"))
	assert.Equal(t, "Title", FieldLabel("title"))
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "John@Example.com", CleanString("  John@Example.com\n"))
	assert.Equal(t, "john@example.com", CleanString("  John@Example.com\n", true))
}

func TestIsNotFound(t *testing.T) {
	err := NewNotFoundError("assignment")
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "assignment not found", err.Error())
	assert.False(t, IsNotFound(NewShutdownError("bye")))
}
