package boiledrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
	"github.com/volatiletech/sqlboiler/v4/queries"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/leave"
	"github.com/trezcool/classdesk/core/user"
)

const leaveSelect = `
SELECT lr.id, lr.reason, lr.start_date, lr.end_date, lr.status, lr.student_id, lr.reviewed_by_id, lr.reviewed_at,
	lr.created_at, lr.updated_at, u.name AS student_name
FROM leave_requests lr
LEFT JOIN users u ON u.id = lr.student_id`

type leaveRow struct {
	ID           string      `boil:"id"`
	Reason       string      `boil:"reason"`
	StartDate    time.Time   `boil:"start_date"`
	EndDate      time.Time   `boil:"end_date"`
	Status       string      `boil:"status"`
	StudentID    string      `boil:"student_id"`
	ReviewedByID null.String `boil:"reviewed_by_id"`
	ReviewedAt   null.Time   `boil:"reviewed_at"`
	CreatedAt    time.Time   `boil:"created_at"`
	UpdatedAt    time.Time   `boil:"updated_at"`
	StudentName  null.String `boil:"student_name"`
}

type leaveRepository struct {
	baseRepository
}

var _ leave.Repository = (*leaveRepository)(nil) // interface compliance check

func NewLeaveRepository(exec core.DBExecutor) leave.Repository {
	return &leaveRepository{baseRepository{exec: exec}}
}

func (repo leaveRepository) unboil(row leaveRow) leave.Request {
	req := leave.Request{
		ID:           row.ID,
		Reason:       row.Reason,
		StartDate:    row.StartDate.UTC(),
		EndDate:      row.EndDate.UTC(),
		Status:       leave.Status(row.Status),
		StudentID:    row.StudentID,
		ReviewedByID: row.ReviewedByID.Ptr(),
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
	}
	if row.ReviewedAt.Valid {
		at := row.ReviewedAt.Time.UTC()
		req.ReviewedAt = &at
	}
	if row.StudentName.Valid {
		req.Student = &user.Ref{ID: row.StudentID, Name: row.StudentName.String}
	}
	return req
}

func (repo leaveRepository) CreateRequest(ctx context.Context, req leave.Request, exec ...core.DBExecutor) (leave.Request, error) {
	req.ID = uuid.New().String()
	exe := repo.getExec(exec)
	_, err := queries.Raw(
		`INSERT INTO leave_requests (id, reason, start_date, end_date, status, student_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		req.ID, req.Reason, req.StartDate.UTC(), req.EndDate.UTC(), string(req.Status), req.StudentID,
		req.CreatedAt.UTC(), req.UpdatedAt.UTC(),
	).ExecContext(ctx, exe)
	if err != nil {
		return leave.Request{}, errors.Wrap(err, "inserting leave request")
	}
	return repo.GetRequest(ctx, req.ID, exe)
}

func (repo leaveRepository) GetRequest(ctx context.Context, id string, exec ...core.DBExecutor) (leave.Request, error) {
	if _, err := uuid.Parse(id); err != nil {
		return leave.Request{}, leave.ErrNotFound
	}
	var row leaveRow
	if err := queries.Raw(leaveSelect+` WHERE lr.id = $1`, id).Bind(ctx, repo.getExec(exec), &row); err != nil {
		return leave.Request{}, trapNoRowsErr(err, leave.ErrNotFound, "finding leave request")
	}
	return repo.unboil(row), nil
}

func (repo leaveRepository) QueryRequests(ctx context.Context, filter leave.QueryFilter, exec ...core.DBExecutor) ([]leave.Request, error) {
	var rows []leaveRow
	err := queries.Raw(
		leaveSelect+`
		WHERE ($1::text = '' OR lr.student_id::text = $1::text)
		AND ($2::text = '' OR lr.status = $2::text)
		ORDER BY lr.created_at DESC`,
		filter.StudentID, string(filter.Status),
	).Bind(ctx, repo.getExec(exec), &rows)
	if err != nil {
		return nil, errors.Wrap(err, "querying leave requests")
	}

	requests := make([]leave.Request, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, repo.unboil(row))
	}
	return requests, nil
}

func (repo leaveRepository) UpdateRequest(ctx context.Context, req leave.Request, exec ...core.DBExecutor) (leave.Request, error) {
	var reviewedAt null.Time
	if req.ReviewedAt != nil {
		reviewedAt = null.TimeFrom(req.ReviewedAt.UTC())
	}

	exe := repo.getExec(exec)
	res, err := queries.Raw(
		`UPDATE leave_requests SET reason = $2, status = $3, reviewed_by_id = $4, reviewed_at = $5, updated_at = $6
		WHERE id = $1`,
		req.ID, req.Reason, string(req.Status), null.StringFromPtr(req.ReviewedByID), reviewedAt, req.UpdatedAt.UTC(),
	).ExecContext(ctx, exe)
	if err != nil {
		return leave.Request{}, errors.Wrap(err, "updating leave request")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return leave.Request{}, leave.ErrNotFound
	}
	return repo.GetRequest(ctx, req.ID, exe)
}
