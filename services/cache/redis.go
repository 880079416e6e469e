package cachesvc

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/trezcool/classdesk/core"
)

const scanCount = 100

type RedisCache struct {
	rdb    *redis.Client
	logger core.Logger
}

var (
	_ Cache            = (*RedisCache)(nil)
	_ core.Revalidator = (*RedisCache)(nil)
)

// NewRedisClient connects to the redis:// url.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parsing redis url")
	}
	return redis.NewClient(opts), nil
}

func NewRedisCache(rdb *redis.Client, logger core.Logger) *RedisCache {
	return &RedisCache{rdb: rdb, logger: logger}
}

// Get reports a miss on any redis error: the view is then rebuilt from the store.
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("cache: get failed", err, map[string]interface{}{"key": key})
		}
		return nil, false
	}
	return val, true
}

func (r *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if err := r.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		r.logger.Warn("cache: set failed", err, map[string]interface{}{"key": key})
	}
}

func (r *RedisCache) Revalidate(ctx context.Context, paths ...string) error {
	for _, p := range paths {
		var keys []string
		iter := r.rdb.Scan(ctx, 0, pathPrefix(p)+"*", scanCount).Iterator()
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return errors.Wrapf(err, "scanning views of %s", p)
		}
		if len(keys) == 0 {
			continue
		}
		if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
			return errors.Wrapf(err, "deleting views of %s", p)
		}
	}
	return nil
}

func (r *RedisCache) Close() error {
	return r.rdb.Close()
}
