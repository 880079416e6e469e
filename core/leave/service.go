package leave

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/classdesk/core"
)

var (
	ErrNotFound        = core.NewNotFoundError("leave request")
	ErrAlreadyReviewed = errors.New("this leave request has already been reviewed")
)

type (
	Repository interface {
		CreateRequest(ctx context.Context, req Request, exec ...core.DBExecutor) (Request, error)
		GetRequest(ctx context.Context, id string, exec ...core.DBExecutor) (Request, error)
		// QueryRequests returns the requests matching filter, newest first.
		QueryRequests(ctx context.Context, filter QueryFilter, exec ...core.DBExecutor) ([]Request, error)
		UpdateRequest(ctx context.Context, req Request, exec ...core.DBExecutor) (Request, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a validated NewRequest as PENDING; nr.StudentID must be set.
func (svc *Service) Create(ctx context.Context, nr NewRequest) (Request, error) {
	start, err := core.ParseTime(nr.StartDate)
	if err != nil {
		return Request{}, errors.Wrap(err, "parsing start date")
	}
	end, err := core.ParseTime(nr.EndDate)
	if err != nil {
		return Request{}, errors.Wrap(err, "parsing end date")
	}
	now := time.Now().UTC()
	return svc.repo.CreateRequest(ctx, Request{
		Reason:    nr.Reason,
		StartDate: start,
		EndDate:   end,
		Status:    StatusPending,
		StudentID: nr.StudentID,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (svc *Service) GetByID(ctx context.Context, id string) (Request, error) {
	if id == "" {
		return Request{}, ErrNotFound
	}
	return svc.repo.GetRequest(ctx, id)
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Request, error) {
	return svc.repo.QueryRequests(ctx, filter)
}

// Review moves a PENDING request to the reviewed status and records the reviewer.
func (svc *Service) Review(ctx context.Context, req Request, reviewerID string, rv Review) (Request, error) {
	if req.Status != StatusPending {
		return Request{}, core.NewValidationError(ErrAlreadyReviewed, core.FieldError{Field: "status", Error: ErrAlreadyReviewed.Error()})
	}
	now := time.Now().UTC()
	req.Status = rv.Status
	req.ReviewedByID = &reviewerID
	req.ReviewedAt = &now
	req.UpdatedAt = now
	return svc.repo.UpdateRequest(ctx, req)
}
