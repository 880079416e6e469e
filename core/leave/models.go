package leave

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/user"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsReviewed reports whether s is a final status.
func (s Status) IsReviewed() bool {
	return s == StatusApproved || s == StatusRejected
}

// Request is a student's request for an approved absence.
type Request struct {
	ID           string     `json:"id"`
	Reason       string     `json:"reason"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      time.Time  `json:"end_date"`
	Status       Status     `json:"status"`
	StudentID    string     `json:"student_id"`
	Student      *user.Ref  `json:"student,omitempty"`
	ReviewedByID *string    `json:"reviewed_by_id"`
	ReviewedAt   *time.Time `json:"reviewed_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewRequest contains information needed to file a leave Request.
// StudentID is optional: the filing student owns the request.
type NewRequest struct {
	Reason    string `json:"reason" validate:"notblank"`
	StartDate string `json:"start_date" validate:"notblank,date"`
	EndDate   string `json:"end_date" validate:"notblank,date"`
	StudentID string `json:"student_id"`
}

func (nr *NewRequest) Validate(validate *validator.Validate) error {
	nr.Reason = core.CleanString(nr.Reason)
	nr.StudentID = core.CleanString(nr.StudentID)
	return validate.Struct(nr)
}

// Review is the decision of a teacher on a pending Request.
type Review struct {
	Status Status `json:"status" validate:"notblank,review_status"`
}

func (rv *Review) Validate(validate *validator.Validate) error {
	rv.Status = Status(strings.ToUpper(core.CleanString(string(rv.Status))))
	return validate.Struct(rv)
}

type QueryFilter struct {
	StudentID string `query:"student_id"`
	Status    Status `query:"status"`
}
