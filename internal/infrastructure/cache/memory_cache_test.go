package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time           { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCache(maxItems int, maxMemory int64) (*MemoryCache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemoryCache(maxItems, maxMemory, nil)
	c.now = clock.Now
	return c, clock
}

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(10, 1024)

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []byte("value"), time.Minute))
	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("value"), got)

	// returned slice is a copy
	got[0] = 'X'
	again, _, _ := c.Get(ctx, "k")
	assert.Equal(t, []byte("value"), again)

	stats := c.GetStats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Items)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestCache(10, 1024)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Hour))
	clock.Advance(59 * time.Minute)
	_, ok, _ := c.Get(ctx, "k")
	assert.True(t, ok)

	clock.Advance(time.Minute)
	_, ok, _ = c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.GetStats().Items)
}

func TestMemoryCache_LRUEviction(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(2, 1024)

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Hour))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Hour))
	_, _, _ = c.Get(ctx, "a")
	require.NoError(t, c.Set(ctx, "c", []byte("3"), time.Hour))

	_, ok, _ := c.Get(ctx, "b")
	assert.False(t, ok, "least recently used entry is evicted")
	_, ok, _ = c.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, int64(1), c.GetStats().Evictions)
}

func TestMemoryCache_TooLarge(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(10, 8)

	require.NoError(t, c.Set(ctx, "key", []byte("way too large"), time.Hour))
	_, ok, _ := c.Get(ctx, "key")
	assert.False(t, ok)
}

func TestMemoryCache_DeleteAndPurge(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(10, 1024)

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Hour))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Hour))
	require.NoError(t, c.Delete(ctx, "a"))
	assert.Equal(t, 1, c.GetStats().Items)

	assert.Equal(t, 1, c.Purge())
	stats := c.GetStats()
	assert.Equal(t, 0, stats.Items)
	assert.Equal(t, int64(0), stats.Size)
}

func TestMemoryCache_CleanupExpired(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestCache(10, 1024)

	require.NoError(t, c.Set(ctx, "short", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "long", []byte("2"), time.Hour))
	clock.Advance(2 * time.Minute)

	assert.Equal(t, 1, c.cleanupExpired())
	assert.Equal(t, 1, c.GetStats().Items)
}
