package actions

import (
	"context"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/schedule"
	"github.com/trezcool/classdesk/core/session"
	"github.com/trezcool/classdesk/core/user"
)

func (a *Actions) CreateSchedule(ctx context.Context, ns schedule.NewSchedule) Result[schedule.Schedule] {
	const action, generic = "createSchedule", "Failed to create schedule"

	sess, err := session.Require(ctx, user.RoleTeacher)
	if err != nil {
		return fail[schedule.Schedule](ctx, a, action, generic, err)
	}
	if ns.TeacherID != "" && core.CleanString(ns.TeacherID) != sess.User.ID {
		return fail[schedule.Schedule](ctx, a, action, generic, core.ErrPermissionDenied)
	}
	ns.TeacherID = sess.User.ID

	if err = ns.Validate(a.validate); err != nil {
		return fail[schedule.Schedule](ctx, a, action, generic, err)
	}
	sch, err := a.schedules.Create(ctx, ns)
	if err != nil {
		return fail[schedule.Schedule](ctx, a, action, generic, err)
	}

	a.revalidate(ctx, core.PathSchedules, core.PathDashboard)
	return succeed(action, sch)
}

// UpdateSchedule replaces the fields of a schedule owned by the calling teacher.
func (a *Actions) UpdateSchedule(ctx context.Context, id string, us schedule.UpdateSchedule) Result[schedule.Schedule] {
	const action, generic = "updateSchedule", "Failed to update schedule"

	sess, err := session.Require(ctx, user.RoleTeacher)
	if err != nil {
		return fail[schedule.Schedule](ctx, a, action, generic, err)
	}
	sch, err := a.schedules.GetByID(ctx, id)
	if err != nil {
		return fail[schedule.Schedule](ctx, a, action, generic, err)
	}
	if sch.TeacherID != sess.User.ID {
		return fail[schedule.Schedule](ctx, a, action, generic, core.ErrPermissionDenied)
	}

	if err = us.Validate(a.validate); err != nil {
		return fail[schedule.Schedule](ctx, a, action, generic, err)
	}
	sch, err = a.schedules.Update(ctx, sch, us)
	if err != nil {
		return fail[schedule.Schedule](ctx, a, action, generic, err)
	}

	a.revalidate(ctx, core.PathSchedules, core.PathDashboard)
	return succeed(action, sch)
}

func (a *Actions) GetSchedules(ctx context.Context) Result[[]schedule.Schedule] {
	return a.querySchedules(ctx, "getSchedules", schedule.QueryFilter{})
}

func (a *Actions) GetSchedulesByTeacher(ctx context.Context, teacherID string) Result[[]schedule.Schedule] {
	return a.querySchedules(ctx, "getSchedulesByTeacher", schedule.QueryFilter{TeacherID: teacherID})
}

func (a *Actions) querySchedules(ctx context.Context, action string, filter schedule.QueryFilter) Result[[]schedule.Schedule] {
	const generic = "Failed to fetch schedules"

	if _, err := session.Require(ctx); err != nil {
		return fail[[]schedule.Schedule](ctx, a, action, generic, err)
	}
	schedules, err := a.schedules.Query(ctx, filter)
	if err != nil {
		return fail[[]schedule.Schedule](ctx, a, action, generic, err)
	}
	return succeed(action, schedules)
}

func (a *Actions) GetScheduleByID(ctx context.Context, id string) Result[schedule.Schedule] {
	const action, generic = "getScheduleById", "Failed to fetch schedule"

	if _, err := session.Require(ctx); err != nil {
		return fail[schedule.Schedule](ctx, a, action, generic, err)
	}
	sch, err := a.schedules.GetByID(ctx, id)
	if err != nil {
		return fail[schedule.Schedule](ctx, a, action, generic, err)
	}
	return succeed(action, sch)
}
