package cachesvc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	c.Set(ctx, Key("/Assignments", "u1"), []byte("a-u1"), time.Minute)
	c.Set(ctx, Key("/Assignments", "u2"), []byte("a-u2"), time.Minute)
	c.Set(ctx, Key("/Assignments/42", "u1"), []byte("detail"), time.Minute)
	c.Set(ctx, Key("/Dashboard", "u1"), []byte("dash"), 0)

	data, ok := c.Get(ctx, Key("/Assignments", "u1"))
	assert.True(t, ok)
	assert.Equal(t, []byte("a-u1"), data)

	assert.NoError(t, c.Revalidate(ctx, "/Assignments"))

	_, ok = c.Get(ctx, Key("/Assignments", "u1"))
	assert.False(t, ok)
	_, ok = c.Get(ctx, Key("/Assignments", "u2"))
	assert.False(t, ok)
	_, ok = c.Get(ctx, Key("/Assignments/42", "u1"))
	assert.True(t, ok, "detail views are revalidated by their own path")
	_, ok = c.Get(ctx, Key("/Dashboard", "u1"))
	assert.True(t, ok)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2023, 4, 10, 9, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	c.Set(ctx, "k", []byte("v"), time.Minute)
	_, ok := c.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
}
