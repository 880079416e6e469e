// Package cachesvc stores rendered page views, keyed by route and viewer.
package cachesvc

import (
	"context"
	"time"
)

const keyPrefix = "view:"

// Key returns the cache key of the view `path` as seen by the user `userID`.
func Key(path, userID string) string {
	return pathPrefix(path) + userID
}

func pathPrefix(path string) string {
	return keyPrefix + path + ":"
}

// Cache is implemented by the memory and Redis view caches.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration)
	// Revalidate drops the views of every viewer of the given routes.
	Revalidate(ctx context.Context, paths ...string) error
}
