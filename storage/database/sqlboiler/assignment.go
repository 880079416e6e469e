package boiledrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
	"github.com/volatiletech/sqlboiler/v4/queries"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/assignment"
	"github.com/trezcool/classdesk/core/user"
)

const assignmentSelect = `
SELECT a.id, a.title, a.description, a.due_date, a.teacher_id, a.created_at, a.updated_at, u.name AS teacher_name
FROM assignments a
LEFT JOIN users u ON u.id = a.teacher_id`

type assignmentRow struct {
	ID          string      `boil:"id"`
	Title       string      `boil:"title"`
	Description string      `boil:"description"`
	DueDate     time.Time   `boil:"due_date"`
	TeacherID   string      `boil:"teacher_id"`
	CreatedAt   time.Time   `boil:"created_at"`
	UpdatedAt   time.Time   `boil:"updated_at"`
	TeacherName null.String `boil:"teacher_name"`
}

type assignmentRepository struct {
	baseRepository
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(exec core.DBExecutor) assignment.Repository {
	return &assignmentRepository{baseRepository{exec: exec}}
}

func (repo assignmentRepository) unboil(row assignmentRow) assignment.Assignment {
	asg := assignment.Assignment{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		DueDate:     row.DueDate.UTC(),
		TeacherID:   row.TeacherID,
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
	if row.TeacherName.Valid {
		asg.Teacher = &user.Ref{ID: row.TeacherID, Name: row.TeacherName.String}
	}
	return asg
}

func (repo assignmentRepository) CreateAssignment(ctx context.Context, asg assignment.Assignment, exec ...core.DBExecutor) (assignment.Assignment, error) {
	asg.ID = uuid.New().String()
	exe := repo.getExec(exec)
	_, err := queries.Raw(
		`INSERT INTO assignments (id, title, description, due_date, teacher_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		asg.ID, asg.Title, asg.Description, asg.DueDate.UTC(), asg.TeacherID, asg.CreatedAt.UTC(), asg.UpdatedAt.UTC(),
	).ExecContext(ctx, exe)
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	return repo.GetAssignment(ctx, asg.ID, exe)
}

func (repo assignmentRepository) GetAssignment(ctx context.Context, id string, exec ...core.DBExecutor) (assignment.Assignment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	var row assignmentRow
	if err := queries.Raw(assignmentSelect+` WHERE a.id = $1`, id).Bind(ctx, repo.getExec(exec), &row); err != nil {
		return assignment.Assignment{}, trapNoRowsErr(err, assignment.ErrNotFound, "finding assignment")
	}
	return repo.unboil(row), nil
}

func (repo assignmentRepository) QueryAssignments(ctx context.Context, filter assignment.QueryFilter, exec ...core.DBExecutor) ([]assignment.Assignment, error) {
	var rows []assignmentRow
	err := queries.Raw(
		assignmentSelect+` WHERE ($1::text = '' OR a.teacher_id::text = $1::text) ORDER BY a.due_date ASC, a.created_at ASC`,
		filter.TeacherID,
	).Bind(ctx, repo.getExec(exec), &rows)
	if err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}

	assignments := make([]assignment.Assignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, repo.unboil(row))
	}
	return assignments, nil
}
