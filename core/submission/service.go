package submission

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/classdesk/core"
)

var (
	ErrNotFound         = core.NewNotFoundError("submission")
	ErrAlreadySubmitted = errors.New("you have already submitted this assignment")
)

type (
	Repository interface {
		// CreateSubmission returns ErrAlreadySubmitted when the student already has a submission for the assignment.
		CreateSubmission(ctx context.Context, sub Submission, exec ...core.DBExecutor) (Submission, error)
		GetSubmission(ctx context.Context, id string, exec ...core.DBExecutor) (Submission, error)
		// QuerySubmissions returns the submissions matching filter, newest first.
		QuerySubmissions(ctx context.Context, filter QueryFilter, exec ...core.DBExecutor) ([]Submission, error)
		UpdateSubmission(ctx context.Context, sub Submission, exec ...core.DBExecutor) (Submission, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func alreadySubmitted() error {
	return core.NewValidationError(ErrAlreadySubmitted, core.FieldError{Field: "assignment_id", Error: ErrAlreadySubmitted.Error()})
}

// Create stores a validated NewSubmission; ns.StudentID must be set.
func (svc *Service) Create(ctx context.Context, ns NewSubmission) (Submission, error) {
	existing, err := svc.repo.QuerySubmissions(ctx, QueryFilter{AssignmentID: ns.AssignmentID, StudentID: ns.StudentID})
	if err != nil {
		return Submission{}, errors.Wrap(err, "checking existing submissions")
	}
	if len(existing) > 0 {
		return Submission{}, alreadySubmitted()
	}

	now := time.Now().UTC()
	sub, err := svc.repo.CreateSubmission(ctx, Submission{
		Content:        ns.Content,
		SubmissionDate: now,
		StudentID:      ns.StudentID,
		AssignmentID:   ns.AssignmentID,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if errors.Cause(err) == ErrAlreadySubmitted {
		return Submission{}, alreadySubmitted()
	}
	return sub, err
}

func (svc *Service) GetByID(ctx context.Context, id string) (Submission, error) {
	if id == "" {
		return Submission{}, ErrNotFound
	}
	return svc.repo.GetSubmission(ctx, id)
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Submission, error) {
	return svc.repo.QuerySubmissions(ctx, filter)
}

// Grade sets the grade and feedback of sub. An empty feedback clears it.
func (svc *Service) Grade(ctx context.Context, sub Submission, gs GradeSubmission) (Submission, error) {
	grade := gs.Grade
	sub.Grade = &grade
	sub.Feedback = nil
	if gs.Feedback != "" {
		feedback := gs.Feedback
		sub.Feedback = &feedback
	}
	sub.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateSubmission(ctx, sub)
}
