package boiledrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
	"github.com/volatiletech/sqlboiler/v4/queries"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/schedule"
	"github.com/trezcool/classdesk/core/user"
)

const scheduleSelect = `
SELECT sc.id, sc.title, sc.description, sc.start_time, sc.end_time, sc.teacher_id, sc.created_at, sc.updated_at,
	u.name AS teacher_name
FROM schedules sc
LEFT JOIN users u ON u.id = sc.teacher_id`

type scheduleRow struct {
	ID          string      `boil:"id"`
	Title       string      `boil:"title"`
	Description string      `boil:"description"`
	StartTime   time.Time   `boil:"start_time"`
	EndTime     time.Time   `boil:"end_time"`
	TeacherID   string      `boil:"teacher_id"`
	CreatedAt   time.Time   `boil:"created_at"`
	UpdatedAt   time.Time   `boil:"updated_at"`
	TeacherName null.String `boil:"teacher_name"`
}

type scheduleRepository struct {
	baseRepository
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(exec core.DBExecutor) schedule.Repository {
	return &scheduleRepository{baseRepository{exec: exec}}
}

func (repo scheduleRepository) unboil(row scheduleRow) schedule.Schedule {
	sch := schedule.Schedule{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		StartTime:   row.StartTime.UTC(),
		EndTime:     row.EndTime.UTC(),
		TeacherID:   row.TeacherID,
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
	if row.TeacherName.Valid {
		sch.Teacher = &user.Ref{ID: row.TeacherID, Name: row.TeacherName.String}
	}
	return sch
}

func (repo scheduleRepository) CreateSchedule(ctx context.Context, sch schedule.Schedule, exec ...core.DBExecutor) (schedule.Schedule, error) {
	sch.ID = uuid.New().String()
	exe := repo.getExec(exec)
	_, err := queries.Raw(
		`INSERT INTO schedules (id, title, description, start_time, end_time, teacher_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		sch.ID, sch.Title, sch.Description, sch.StartTime.UTC(), sch.EndTime.UTC(), sch.TeacherID,
		sch.CreatedAt.UTC(), sch.UpdatedAt.UTC(),
	).ExecContext(ctx, exe)
	if err != nil {
		return schedule.Schedule{}, errors.Wrap(err, "inserting schedule")
	}
	return repo.GetSchedule(ctx, sch.ID, exe)
}

func (repo scheduleRepository) GetSchedule(ctx context.Context, id string, exec ...core.DBExecutor) (schedule.Schedule, error) {
	if _, err := uuid.Parse(id); err != nil {
		return schedule.Schedule{}, schedule.ErrNotFound
	}
	var row scheduleRow
	if err := queries.Raw(scheduleSelect+` WHERE sc.id = $1`, id).Bind(ctx, repo.getExec(exec), &row); err != nil {
		return schedule.Schedule{}, trapNoRowsErr(err, schedule.ErrNotFound, "finding schedule")
	}
	return repo.unboil(row), nil
}

func (repo scheduleRepository) QuerySchedules(ctx context.Context, filter schedule.QueryFilter, exec ...core.DBExecutor) ([]schedule.Schedule, error) {
	var rows []scheduleRow
	err := queries.Raw(
		scheduleSelect+` WHERE ($1::text = '' OR sc.teacher_id::text = $1::text) ORDER BY sc.start_time ASC`,
		filter.TeacherID,
	).Bind(ctx, repo.getExec(exec), &rows)
	if err != nil {
		return nil, errors.Wrap(err, "querying schedules")
	}

	schedules := make([]schedule.Schedule, 0, len(rows))
	for _, row := range rows {
		schedules = append(schedules, repo.unboil(row))
	}
	return schedules, nil
}

func (repo scheduleRepository) UpdateSchedule(ctx context.Context, sch schedule.Schedule, exec ...core.DBExecutor) (schedule.Schedule, error) {
	exe := repo.getExec(exec)
	res, err := queries.Raw(
		`UPDATE schedules SET title = $2, description = $3, start_time = $4, end_time = $5, updated_at = $6 WHERE id = $1`,
		sch.ID, sch.Title, sch.Description, sch.StartTime.UTC(), sch.EndTime.UTC(), sch.UpdatedAt.UTC(),
	).ExecContext(ctx, exe)
	if err != nil {
		return schedule.Schedule{}, errors.Wrap(err, "updating schedule")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return schedule.Schedule{}, schedule.ErrNotFound
	}
	return repo.GetSchedule(ctx, sch.ID, exe)
}
