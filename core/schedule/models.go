package schedule

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/user"
)

type Schedule struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	TeacherID   string    `json:"teacher_id"`
	Teacher     *user.Ref `json:"teacher,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewSchedule contains information needed to create a new Schedule.
// TeacherID is optional: the creating teacher owns the schedule.
type NewSchedule struct {
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
	StartTime   string `json:"start_time" validate:"notblank,date"`
	EndTime     string `json:"end_time" validate:"notblank,date"`
	TeacherID   string `json:"teacher_id"`
}

func (ns *NewSchedule) Validate(validate *validator.Validate) error {
	ns.Title = core.CleanString(ns.Title)
	ns.Description = core.CleanString(ns.Description)
	ns.TeacherID = core.CleanString(ns.TeacherID)
	return validate.Struct(ns)
}

// UpdateSchedule replaces every editable field of a Schedule: all of them are required.
type UpdateSchedule struct {
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
	StartTime   string `json:"start_time" validate:"notblank,date"`
	EndTime     string `json:"end_time" validate:"notblank,date"`
}

func (us *UpdateSchedule) Validate(validate *validator.Validate) error {
	us.Title = core.CleanString(us.Title)
	us.Description = core.CleanString(us.Description)
	return validate.Struct(us)
}

type QueryFilter struct {
	TeacherID string `query:"teacher_id"`
}
