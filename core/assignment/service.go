package assignment

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/classdesk/core"
)

var ErrNotFound = core.NewNotFoundError("assignment")

type (
	Repository interface {
		CreateAssignment(ctx context.Context, asg Assignment, exec ...core.DBExecutor) (Assignment, error)
		GetAssignment(ctx context.Context, id string, exec ...core.DBExecutor) (Assignment, error)
		// QueryAssignments returns the assignments matching filter ordered by due date (soonest first).
		QueryAssignments(ctx context.Context, filter QueryFilter, exec ...core.DBExecutor) ([]Assignment, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a validated NewAssignment; na.TeacherID must be set.
func (svc *Service) Create(ctx context.Context, na NewAssignment) (Assignment, error) {
	due, err := core.ParseTime(na.DueDate)
	if err != nil {
		return Assignment{}, errors.Wrap(err, "parsing due date")
	}
	now := time.Now().UTC()
	return svc.repo.CreateAssignment(ctx, Assignment{
		Title:       na.Title,
		Description: na.Description,
		DueDate:     due,
		TeacherID:   na.TeacherID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (svc *Service) GetByID(ctx context.Context, id string) (Assignment, error) {
	if id == "" {
		return Assignment{}, ErrNotFound
	}
	return svc.repo.GetAssignment(ctx, id)
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Assignment, error) {
	return svc.repo.QueryAssignments(ctx, filter)
}
