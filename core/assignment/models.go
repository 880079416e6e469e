package assignment

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/user"
)

type Assignment struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"` // UTC
	TeacherID   string    `json:"teacher_id"`
	Teacher     *user.Ref `json:"teacher,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewAssignment contains information needed to create a new Assignment.
// TeacherID is optional: the creating teacher owns the assignment.
type NewAssignment struct {
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
	DueDate     string `json:"due_date" validate:"notblank,date"`
	TeacherID   string `json:"teacher_id"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	na.TeacherID = core.CleanString(na.TeacherID)
	return validate.Struct(na)
}

type QueryFilter struct {
	TeacherID string `query:"teacher_id"`
}
