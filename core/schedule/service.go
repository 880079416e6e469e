package schedule

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/classdesk/core"
)

var ErrNotFound = core.NewNotFoundError("schedule")

type (
	Repository interface {
		CreateSchedule(ctx context.Context, sch Schedule, exec ...core.DBExecutor) (Schedule, error)
		GetSchedule(ctx context.Context, id string, exec ...core.DBExecutor) (Schedule, error)
		// QuerySchedules returns the schedules matching filter ordered by start time.
		QuerySchedules(ctx context.Context, filter QueryFilter, exec ...core.DBExecutor) ([]Schedule, error)
		UpdateSchedule(ctx context.Context, sch Schedule, exec ...core.DBExecutor) (Schedule, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	st, err := core.ParseTime(start)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(err, "parsing start time")
	}
	et, err := core.ParseTime(end)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(err, "parsing end time")
	}
	return st, et, nil
}

// Create stores a validated NewSchedule; ns.TeacherID must be set.
func (svc *Service) Create(ctx context.Context, ns NewSchedule) (Schedule, error) {
	st, et, err := parseRange(ns.StartTime, ns.EndTime)
	if err != nil {
		return Schedule{}, err
	}
	now := time.Now().UTC()
	return svc.repo.CreateSchedule(ctx, Schedule{
		Title:       ns.Title,
		Description: ns.Description,
		StartTime:   st,
		EndTime:     et,
		TeacherID:   ns.TeacherID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (svc *Service) GetByID(ctx context.Context, id string) (Schedule, error) {
	if id == "" {
		return Schedule{}, ErrNotFound
	}
	return svc.repo.GetSchedule(ctx, id)
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Schedule, error) {
	return svc.repo.QuerySchedules(ctx, filter)
}

// Update applies a validated UpdateSchedule to sch.
func (svc *Service) Update(ctx context.Context, sch Schedule, us UpdateSchedule) (Schedule, error) {
	st, et, err := parseRange(us.StartTime, us.EndTime)
	if err != nil {
		return Schedule{}, err
	}
	sch.Title = us.Title
	sch.Description = us.Description
	sch.StartTime = st
	sch.EndTime = et
	sch.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateSchedule(ctx, sch)
}
