// Package dummydb is an in-memory store used by tests and by the "memory" database engine.
package dummydb

import (
	"sync"

	"github.com/trezcool/classdesk/core/assignment"
	"github.com/trezcool/classdesk/core/leave"
	"github.com/trezcool/classdesk/core/schedule"
	"github.com/trezcool/classdesk/core/submission"
	"github.com/trezcool/classdesk/core/user"
)

type (
	DB struct {
		user       *userTable
		assignment *assignmentTable
		submission *submissionTable
		schedule   *scheduleTable
		leave      *leaveTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	assignmentTable struct {
		sync.RWMutex
		table map[string]*assignment.Assignment
	}

	submissionTable struct {
		sync.RWMutex
		table map[string]*submission.Submission
	}

	scheduleTable struct {
		sync.RWMutex
		table map[string]*schedule.Schedule
	}

	leaveTable struct {
		sync.RWMutex
		table map[string]*leave.Request
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:       &userTable{table: make(map[string]*user.User)},
		assignment: &assignmentTable{table: make(map[string]*assignment.Assignment)},
		submission: &submissionTable{table: make(map[string]*submission.Submission)},
		schedule:   &scheduleTable{table: make(map[string]*schedule.Schedule)},
		leave:      &leaveTable{table: make(map[string]*leave.Request)},
	}
	return db, nil
}

// userRef returns the short form of the user `id`, nil if unknown.
// Only the user table is locked here: callers may hold the lock of another table.
func (db *DB) userRef(id string) *user.Ref {
	db.user.RLock()
	defer db.user.RUnlock()

	if usr, ok := db.user.table[id]; ok {
		return usr.Ref()
	}
	return nil
}
