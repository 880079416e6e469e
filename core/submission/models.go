package submission

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/user"
)

// Statuses shown to students next to an assignment.
const (
	StatusNotSubmitted = "Not Submitted"
	StatusSubmitted    = "Submitted"
	statusGradedPrefix = "Graded: "
)

type Submission struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	SubmissionDate time.Time `json:"submission_date"`
	StudentID      string    `json:"student_id"`
	AssignmentID   string    `json:"assignment_id"`
	Grade          *string   `json:"grade"`
	Feedback       *string   `json:"feedback"`
	Student        *user.Ref `json:"student,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (s Submission) IsGraded() bool {
	return s.Grade != nil && *s.Grade != ""
}

// Status returns the label of the submission as seen by its student.
func Status(sub *Submission) string {
	switch {
	case sub == nil:
		return StatusNotSubmitted
	case sub.IsGraded():
		return statusGradedPrefix + *sub.Grade
	default:
		return StatusSubmitted
	}
}

// NewSubmission contains information needed to submit work for an assignment.
// StudentID is optional: the submitting student owns the submission.
type NewSubmission struct {
	AssignmentID string `json:"assignment_id" validate:"notblank"`
	StudentID    string `json:"student_id"`
	Content      string `json:"content" validate:"notblank"`
}

func (ns *NewSubmission) Validate(validate *validator.Validate) error {
	ns.AssignmentID = core.CleanString(ns.AssignmentID)
	ns.StudentID = core.CleanString(ns.StudentID)
	ns.Content = core.CleanString(ns.Content)
	return validate.Struct(ns)
}

// GradeSubmission defines what a teacher provides when grading a Submission.
type GradeSubmission struct {
	Grade    string `json:"grade" validate:"notblank"`
	Feedback string `json:"feedback"`
}

func (gs *GradeSubmission) Validate(validate *validator.Validate) error {
	gs.Grade = core.CleanString(gs.Grade)
	gs.Feedback = core.CleanString(gs.Feedback)
	return validate.Struct(gs)
}

type QueryFilter struct {
	AssignmentID string
	StudentID    string `query:"student_id"`
}
