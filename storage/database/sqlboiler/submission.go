package boiledrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
	"github.com/volatiletech/sqlboiler/v4/queries"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/submission"
	"github.com/trezcool/classdesk/core/user"
)

const (
	submissionSelect = `
SELECT s.id, s.content, s.submission_date, s.student_id, s.assignment_id, s.grade, s.feedback,
	s.created_at, s.updated_at, u.name AS student_name
FROM submissions s
LEFT JOIN users u ON u.id = s.student_id`

	submissionUniqueConstraint = "submissions_student_assignment_key"
)

type submissionRow struct {
	ID             string      `boil:"id"`
	Content        string      `boil:"content"`
	SubmissionDate time.Time   `boil:"submission_date"`
	StudentID      string      `boil:"student_id"`
	AssignmentID   string      `boil:"assignment_id"`
	Grade          null.String `boil:"grade"`
	Feedback       null.String `boil:"feedback"`
	CreatedAt      time.Time   `boil:"created_at"`
	UpdatedAt      time.Time   `boil:"updated_at"`
	StudentName    null.String `boil:"student_name"`
}

type submissionRepository struct {
	baseRepository
}

var _ submission.Repository = (*submissionRepository)(nil) // interface compliance check

func NewSubmissionRepository(exec core.DBExecutor) submission.Repository {
	return &submissionRepository{baseRepository{exec: exec}}
}

func (repo submissionRepository) unboil(row submissionRow) submission.Submission {
	sub := submission.Submission{
		ID:             row.ID,
		Content:        row.Content,
		SubmissionDate: row.SubmissionDate.UTC(),
		StudentID:      row.StudentID,
		AssignmentID:   row.AssignmentID,
		Grade:          row.Grade.Ptr(),
		Feedback:       row.Feedback.Ptr(),
		CreatedAt:      row.CreatedAt.UTC(),
		UpdatedAt:      row.UpdatedAt.UTC(),
	}
	if row.StudentName.Valid {
		sub.Student = &user.Ref{ID: row.StudentID, Name: row.StudentName.String}
	}
	return sub
}

func (repo submissionRepository) CreateSubmission(ctx context.Context, sub submission.Submission, exec ...core.DBExecutor) (submission.Submission, error) {
	sub.ID = uuid.New().String()
	exe := repo.getExec(exec)
	_, err := queries.Raw(
		`INSERT INTO submissions (id, content, submission_date, student_id, assignment_id, grade, feedback, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		sub.ID, sub.Content, sub.SubmissionDate.UTC(), sub.StudentID, sub.AssignmentID,
		null.StringFromPtr(sub.Grade), null.StringFromPtr(sub.Feedback), sub.CreatedAt.UTC(), sub.UpdatedAt.UTC(),
	).ExecContext(ctx, exe)
	if err != nil {
		if isUniqueViolation(err, submissionUniqueConstraint) {
			return submission.Submission{}, submission.ErrAlreadySubmitted
		}
		return submission.Submission{}, errors.Wrap(err, "inserting submission")
	}
	return repo.GetSubmission(ctx, sub.ID, exe)
}

func (repo submissionRepository) GetSubmission(ctx context.Context, id string, exec ...core.DBExecutor) (submission.Submission, error) {
	if _, err := uuid.Parse(id); err != nil {
		return submission.Submission{}, submission.ErrNotFound
	}
	var row submissionRow
	if err := queries.Raw(submissionSelect+` WHERE s.id = $1`, id).Bind(ctx, repo.getExec(exec), &row); err != nil {
		return submission.Submission{}, trapNoRowsErr(err, submission.ErrNotFound, "finding submission")
	}
	return repo.unboil(row), nil
}

func (repo submissionRepository) QuerySubmissions(ctx context.Context, filter submission.QueryFilter, exec ...core.DBExecutor) ([]submission.Submission, error) {
	var rows []submissionRow
	err := queries.Raw(
		submissionSelect+`
		WHERE ($1::text = '' OR s.assignment_id::text = $1::text)
		AND ($2::text = '' OR s.student_id::text = $2::text)
		ORDER BY s.created_at DESC`,
		filter.AssignmentID, filter.StudentID,
	).Bind(ctx, repo.getExec(exec), &rows)
	if err != nil {
		return nil, errors.Wrap(err, "querying submissions")
	}

	subs := make([]submission.Submission, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, repo.unboil(row))
	}
	return subs, nil
}

func (repo submissionRepository) UpdateSubmission(ctx context.Context, sub submission.Submission, exec ...core.DBExecutor) (submission.Submission, error) {
	exe := repo.getExec(exec)
	res, err := queries.Raw(
		`UPDATE submissions SET content = $2, grade = $3, feedback = $4, updated_at = $5 WHERE id = $1`,
		sub.ID, sub.Content, null.StringFromPtr(sub.Grade), null.StringFromPtr(sub.Feedback), sub.UpdatedAt.UTC(),
	).ExecContext(ctx, exe)
	if err != nil {
		return submission.Submission{}, errors.Wrap(err, "updating submission")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return submission.Submission{}, submission.ErrNotFound
	}
	return repo.GetSubmission(ctx, sub.ID, exe)
}
