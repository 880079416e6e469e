package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/schedule"
)

type scheduleRepository struct {
	db *DB
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db *DB) schedule.Repository {
	return &scheduleRepository{db: db}
}

func (repo *scheduleRepository) withTeacher(sch schedule.Schedule) schedule.Schedule {
	sch.Teacher = repo.db.userRef(sch.TeacherID)
	return sch
}

func (repo *scheduleRepository) CreateSchedule(_ context.Context, sch schedule.Schedule, _ ...core.DBExecutor) (schedule.Schedule, error) {
	tbl := repo.db.schedule
	tbl.Lock()
	defer tbl.Unlock()

	sch.ID = uuid.New().String()
	sch.Teacher = nil
	tbl.table[sch.ID] = &sch
	return repo.withTeacher(sch), nil
}

func (repo *scheduleRepository) GetSchedule(_ context.Context, id string, _ ...core.DBExecutor) (schedule.Schedule, error) {
	tbl := repo.db.schedule
	tbl.RLock()
	defer tbl.RUnlock()

	if sch, ok := tbl.table[id]; ok {
		return repo.withTeacher(*sch), nil
	}
	return schedule.Schedule{}, schedule.ErrNotFound
}

func (repo *scheduleRepository) QuerySchedules(_ context.Context, filter schedule.QueryFilter, _ ...core.DBExecutor) ([]schedule.Schedule, error) {
	tbl := repo.db.schedule
	tbl.RLock()
	defer tbl.RUnlock()

	schedules := make([]schedule.Schedule, 0, len(tbl.table))
	for _, sch := range tbl.table {
		if filter.TeacherID != "" && sch.TeacherID != filter.TeacherID {
			continue
		}
		schedules = append(schedules, repo.withTeacher(*sch))
	}
	sort.SliceStable(schedules, func(i, j int) bool { return schedules[i].StartTime.Before(schedules[j].StartTime) })
	return schedules, nil
}

func (repo *scheduleRepository) UpdateSchedule(_ context.Context, sch schedule.Schedule, _ ...core.DBExecutor) (schedule.Schedule, error) {
	tbl := repo.db.schedule
	tbl.Lock()
	defer tbl.Unlock()

	if _, ok := tbl.table[sch.ID]; !ok {
		return schedule.Schedule{}, schedule.ErrNotFound
	}
	sch.Teacher = nil
	tbl.table[sch.ID] = &sch
	return repo.withTeacher(sch), nil
}
