package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/assignment"
)

type assignmentRepository struct {
	db *DB
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{db: db}
}

func (repo *assignmentRepository) withTeacher(asg assignment.Assignment) assignment.Assignment {
	asg.Teacher = repo.db.userRef(asg.TeacherID)
	return asg
}

func (repo *assignmentRepository) CreateAssignment(_ context.Context, asg assignment.Assignment, _ ...core.DBExecutor) (assignment.Assignment, error) {
	tbl := repo.db.assignment
	tbl.Lock()
	defer tbl.Unlock()

	asg.ID = uuid.New().String()
	asg.Teacher = nil
	tbl.table[asg.ID] = &asg
	return repo.withTeacher(asg), nil
}

func (repo *assignmentRepository) GetAssignment(_ context.Context, id string, _ ...core.DBExecutor) (assignment.Assignment, error) {
	tbl := repo.db.assignment
	tbl.RLock()
	defer tbl.RUnlock()

	if asg, ok := tbl.table[id]; ok {
		return repo.withTeacher(*asg), nil
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (repo *assignmentRepository) QueryAssignments(_ context.Context, filter assignment.QueryFilter, _ ...core.DBExecutor) ([]assignment.Assignment, error) {
	tbl := repo.db.assignment
	tbl.RLock()
	defer tbl.RUnlock()

	assignments := make([]assignment.Assignment, 0, len(tbl.table))
	for _, asg := range tbl.table {
		if filter.TeacherID != "" && asg.TeacherID != filter.TeacherID {
			continue
		}
		assignments = append(assignments, repo.withTeacher(*asg))
	}
	sort.SliceStable(assignments, func(i, j int) bool {
		if assignments[i].DueDate.Equal(assignments[j].DueDate) {
			return assignments[i].CreatedAt.Before(assignments[j].CreatedAt)
		}
		return assignments[i].DueDate.Before(assignments[j].DueDate)
	})
	return assignments, nil
}
