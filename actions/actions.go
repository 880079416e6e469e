// Package actions holds the mutations and reads callable by signed-in users.
//
// Every action resolves the caller from the session of its context, checks the caller may
// run it, validates its input, performs a single store operation and reports the outcome as
// a Result. Mutations then revalidate the views that display the changed records.
package actions

import (
	"context"
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/assignment"
	"github.com/trezcool/classdesk/core/leave"
	"github.com/trezcool/classdesk/core/schedule"
	"github.com/trezcool/classdesk/core/session"
	"github.com/trezcool/classdesk/core/submission"
	"github.com/trezcool/classdesk/core/user"
)

// Kind classifies the outcome of an action.
type Kind string

const (
	KindOK              Kind = "ok"
	KindValidation      Kind = "validation"
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindFailure         Kind = "failure"
)

// Result is the envelope returned by every action: Data on success, Error otherwise.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Kind    Kind   `json:"-"`
}

var actionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "classdesk",
	Name:      "actions_total",
	Help:      "Number of actions run, by action and outcome.",
}, []string{"action", "outcome"})

type (
	Deps struct {
		Validate    *validator.Validate
		Translator  ut.Translator
		Users       *user.Service
		Assignments *assignment.Service
		Submissions *submission.Service
		Schedules   *schedule.Service
		Leaves      *leave.Service
		Mail        core.EmailService
		Revalidator core.Revalidator
		Logger      core.Logger
	}

	Actions struct {
		validate    *validator.Validate
		translator  ut.Translator
		users       *user.Service
		assignments *assignment.Service
		submissions *submission.Service
		schedules   *schedule.Service
		leaves      *leave.Service
		mail        core.EmailService
		revalidator core.Revalidator
		logger      core.Logger
	}
)

func New(deps Deps) *Actions {
	return &Actions{
		validate:    deps.Validate,
		translator:  deps.Translator,
		users:       deps.Users,
		assignments: deps.Assignments,
		submissions: deps.Submissions,
		schedules:   deps.Schedules,
		leaves:      deps.Leaves,
		mail:        deps.Mail,
		revalidator: deps.Revalidator,
		logger:      deps.Logger,
	}
}

func succeed[T any](action string, data T) Result[T] {
	actionsTotal.WithLabelValues(action, string(KindOK)).Inc()
	return Result[T]{Success: true, Data: &data, Kind: KindOK}
}

// fail maps err to a Result. Unexpected errors are logged and reported with the generic message.
func fail[T any](ctx context.Context, a *Actions, action, generic string, err error) Result[T] {
	kind, msg := a.classify(err)
	if kind == KindFailure {
		msg = generic
		args := []interface{}{err, map[string]interface{}{"action": action}}
		if sess, ok := session.FromContext(ctx); ok {
			args = append(args, sess.User)
		}
		a.logger.Error(fmt.Sprintf("%s: %v", action, err), args...)
	}
	actionsTotal.WithLabelValues(action, string(kind)).Inc()
	return Result[T]{Success: false, Error: msg, Kind: kind}
}

func (a *Actions) classify(err error) (Kind, string) {
	cause := errors.Cause(err)
	switch {
	case cause == core.ErrUnauthenticated:
		return KindUnauthenticated, cause.Error()
	case cause == core.ErrPermissionDenied:
		return KindForbidden, cause.Error()
	case core.IsNotFound(err):
		return KindNotFound, cause.Error()
	}
	if msg, ok := core.ValidationMessage(err, a.translator); ok {
		return KindValidation, msg
	}
	return KindFailure, ""
}

// revalidate never fails the action: errors are logged.
func (a *Actions) revalidate(ctx context.Context, paths ...string) {
	if a.revalidator == nil {
		return
	}
	if err := a.revalidator.Revalidate(ctx, paths...); err != nil {
		a.logger.Warn("revalidation failed", err, map[string]interface{}{"paths": paths})
	}
}

// requireSelfOrTeacher returns core.ErrPermissionDenied unless the caller is a teacher or the user `userID`.
func requireSelfOrTeacher(sess session.Session, userID string) error {
	if !sess.IsSelfOrTeacher(userID) {
		return core.ErrPermissionDenied
	}
	return nil
}
