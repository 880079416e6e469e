// Package pages composes the views of the application routes from actions.
//
// A view loads its data concurrently and fails as a whole when one of its reads fails.
// Successful views are cached per route and viewer until a mutation revalidates the route.
package pages

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/trezcool/classdesk/actions"
	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/session"
)

// Login is where anonymous visitors are sent.
const PathLogin = "/Login"

// Cache stores serialized views.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration)
}

// KeyFunc builds the cache key of a route for a viewer.
type KeyFunc func(path, userID string) string

type Service struct {
	acts   *actions.Actions
	cache  Cache
	key    KeyFunc
	ttl    time.Duration
	logger core.Logger
}

func NewService(acts *actions.Actions, cache Cache, key KeyFunc, conf *core.Config, logger core.Logger) *Service {
	return &Service{acts: acts, cache: cache, key: key, ttl: conf.Cache.TTL, logger: logger}
}

// viewError carries a failed action result through an errgroup.
type viewError struct {
	kind actions.Kind
	msg  string
}

func (e viewError) Error() string { return e.msg }

// load stores the data of a successful result into dst, or returns the failure as a viewError.
func load[T any](res actions.Result[T], dst *T) error {
	if !res.Success {
		return viewError{kind: res.Kind, msg: res.Error}
	}
	if res.Data != nil {
		*dst = *res.Data
	}
	return nil
}

func ok[T any](view T) actions.Result[T] {
	return actions.Result[T]{Success: true, Data: &view, Kind: actions.KindOK}
}

func failed[T any](err error) actions.Result[T] {
	if verr, is := err.(viewError); is {
		return actions.Result[T]{Error: verr.msg, Kind: verr.kind}
	}
	return actions.Result[T]{Error: "Failed to load page", Kind: actions.KindFailure}
}

// render returns the cached view of path for the session user, building and caching it on a miss.
func render[T any](ctx context.Context, s *Service, path string, build func(ctx context.Context, g *errgroup.Group, sess session.Session) func() T) actions.Result[T] {
	sess, err := session.Require(ctx)
	if err != nil {
		return actions.Result[T]{Error: err.Error(), Kind: actions.KindUnauthenticated}
	}

	key := s.key(path, sess.User.ID)
	if data, hit := s.cache.Get(ctx, key); hit {
		var view T
		if err = json.Unmarshal(data, &view); err == nil {
			return ok(view)
		}
		s.logger.Warn("pages: dropping undecodable cached view", err, map[string]interface{}{"key": key})
	}

	g, gctx := errgroup.WithContext(ctx)
	assemble := build(gctx, g, sess)
	if err = g.Wait(); err != nil {
		return failed[T](err)
	}
	view := assemble()

	if data, err := json.Marshal(view); err == nil {
		s.cache.Set(ctx, key, data, s.ttl)
	} else {
		s.logger.Warn("pages: view not cached", err, map[string]interface{}{"key": key})
	}
	return ok(view)
}
