package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/leave"
)

type leaveRepository struct {
	db *DB
}

var _ leave.Repository = (*leaveRepository)(nil) // interface compliance check

func NewLeaveRepository(db *DB) leave.Repository {
	return &leaveRepository{db: db}
}

func (repo *leaveRepository) withStudent(req leave.Request) leave.Request {
	req.Student = repo.db.userRef(req.StudentID)
	return req
}

func (repo *leaveRepository) CreateRequest(_ context.Context, req leave.Request, _ ...core.DBExecutor) (leave.Request, error) {
	tbl := repo.db.leave
	tbl.Lock()
	defer tbl.Unlock()

	req.ID = uuid.New().String()
	req.Student = nil
	tbl.table[req.ID] = &req
	return repo.withStudent(req), nil
}

func (repo *leaveRepository) GetRequest(_ context.Context, id string, _ ...core.DBExecutor) (leave.Request, error) {
	tbl := repo.db.leave
	tbl.RLock()
	defer tbl.RUnlock()

	if req, ok := tbl.table[id]; ok {
		return repo.withStudent(*req), nil
	}
	return leave.Request{}, leave.ErrNotFound
}

func (repo *leaveRepository) QueryRequests(_ context.Context, filter leave.QueryFilter, _ ...core.DBExecutor) ([]leave.Request, error) {
	tbl := repo.db.leave
	tbl.RLock()
	defer tbl.RUnlock()

	requests := make([]leave.Request, 0, len(tbl.table))
	for _, req := range tbl.table {
		if filter.StudentID != "" && req.StudentID != filter.StudentID {
			continue
		}
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		requests = append(requests, repo.withStudent(*req))
	}
	sort.SliceStable(requests, func(i, j int) bool { return requests[i].CreatedAt.After(requests[j].CreatedAt) })
	return requests, nil
}

func (repo *leaveRepository) UpdateRequest(_ context.Context, req leave.Request, _ ...core.DBExecutor) (leave.Request, error) {
	tbl := repo.db.leave
	tbl.Lock()
	defer tbl.Unlock()

	if _, ok := tbl.table[req.ID]; !ok {
		return leave.Request{}, leave.ErrNotFound
	}
	req.Student = nil
	tbl.table[req.ID] = &req
	return repo.withStudent(req), nil
}
