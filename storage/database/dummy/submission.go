package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/submission"
)

type submissionRepository struct {
	db *DB
}

var _ submission.Repository = (*submissionRepository)(nil) // interface compliance check

func NewSubmissionRepository(db *DB) submission.Repository {
	return &submissionRepository{db: db}
}

func (repo *submissionRepository) withStudent(sub submission.Submission) submission.Submission {
	sub.Student = repo.db.userRef(sub.StudentID)
	return sub
}

func (repo *submissionRepository) CreateSubmission(_ context.Context, sub submission.Submission, _ ...core.DBExecutor) (submission.Submission, error) {
	tbl := repo.db.submission
	tbl.Lock()
	defer tbl.Unlock()

	// UNIQUE (student_id, assignment_id)
	for _, s := range tbl.table {
		if s.StudentID == sub.StudentID && s.AssignmentID == sub.AssignmentID {
			return submission.Submission{}, submission.ErrAlreadySubmitted
		}
	}
	sub.ID = uuid.New().String()
	sub.Student = nil
	tbl.table[sub.ID] = &sub
	return repo.withStudent(sub), nil
}

func (repo *submissionRepository) GetSubmission(_ context.Context, id string, _ ...core.DBExecutor) (submission.Submission, error) {
	tbl := repo.db.submission
	tbl.RLock()
	defer tbl.RUnlock()

	if sub, ok := tbl.table[id]; ok {
		return repo.withStudent(*sub), nil
	}
	return submission.Submission{}, submission.ErrNotFound
}

func (repo *submissionRepository) QuerySubmissions(_ context.Context, filter submission.QueryFilter, _ ...core.DBExecutor) ([]submission.Submission, error) {
	tbl := repo.db.submission
	tbl.RLock()
	defer tbl.RUnlock()

	subs := make([]submission.Submission, 0)
	for _, sub := range tbl.table {
		if filter.AssignmentID != "" && sub.AssignmentID != filter.AssignmentID {
			continue
		}
		if filter.StudentID != "" && sub.StudentID != filter.StudentID {
			continue
		}
		subs = append(subs, repo.withStudent(*sub))
	}
	sort.SliceStable(subs, func(i, j int) bool { return subs[i].CreatedAt.After(subs[j].CreatedAt) })
	return subs, nil
}

func (repo *submissionRepository) UpdateSubmission(_ context.Context, sub submission.Submission, _ ...core.DBExecutor) (submission.Submission, error) {
	tbl := repo.db.submission
	tbl.Lock()
	defer tbl.Unlock()

	if _, ok := tbl.table[sub.ID]; !ok {
		return submission.Submission{}, submission.ErrNotFound
	}
	sub.Student = nil
	tbl.table[sub.ID] = &sub
	return repo.withStudent(sub), nil
}
