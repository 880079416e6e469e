// Package session carries the authenticated caller through request contexts.
package session

import (
	"context"
	"time"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/user"
)

type ctxKey int

const sessionKey ctxKey = 1

// Session is the server-side view of an authenticated request.
// User is always loaded from the store, never taken from token claims.
type Session struct {
	User     user.User
	IssuedAt time.Time
}

func NewContext(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

func FromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(sessionKey).(Session)
	return sess, ok
}

// Require returns the context Session, or core.ErrUnauthenticated.
// When roles are given, the session user must have one of them or core.ErrPermissionDenied is returned.
func Require(ctx context.Context, roles ...user.Role) (Session, error) {
	sess, ok := FromContext(ctx)
	if !ok || sess.User.ID == "" {
		return Session{}, core.ErrUnauthenticated
	}
	if len(roles) == 0 {
		return sess, nil
	}
	for _, r := range roles {
		if sess.User.Role == r {
			return sess, nil
		}
	}
	return Session{}, core.ErrPermissionDenied
}

// IsSelfOrTeacher reports whether the session may read the records owned by userID.
func (s Session) IsSelfOrTeacher(userID string) bool {
	return s.User.ID == userID || s.User.IsTeacher()
}
