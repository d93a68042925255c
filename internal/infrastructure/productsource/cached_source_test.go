package productsource

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"giftguru-backend/internal/domain/recommendation"
	"giftguru-backend/internal/infrastructure/cache"
	"giftguru-backend/internal/infrastructure/observability"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu      sync.Mutex
	calls   []recommendation.SearchQuery
	results map[string][]recommendation.ExternalProduct
	err     error
}

func (f *fakeSource) Search(ctx context.Context, q recommendation.SearchQuery) ([]recommendation.ExternalProduct, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[q.Keywords], nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "gaming|30|80.5|10", CacheKey(recommendation.SearchQuery{
		Keywords: "gaming", MinPrice: 30, MaxPrice: 80.5, MaxResults: 10,
	}))
}

func TestCachedSource_CachesSuccess(t *testing.T) {
	src := &fakeSource{results: map[string][]recommendation.ExternalProduct{
		"gaming": {{ID: "B1", Title: "Keyboard", Price: 50}},
	}}
	metrics := observability.NewCollector("cached")
	cs := NewCachedSource(src, cache.NewMemoryCache(10, 1<<20, nil), time.Hour, DefaultBreakerConfig(), metrics, nil)
	q := recommendation.SearchQuery{Keywords: "gaming", MinPrice: 10, MaxPrice: 100, MaxResults: 5}

	first, err := cs.Search(context.Background(), q)
	require.NoError(t, err)
	second, err := cs.Search(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.callCount())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheHits))

	// different parameters are a different key
	_, err = cs.Search(context.Background(), recommendation.SearchQuery{Keywords: "gaming", MinPrice: 10, MaxPrice: 100, MaxResults: 6})
	require.NoError(t, err)
	assert.Equal(t, 2, src.callCount())

	assert.Equal(t, 2, cs.Purge())
}

func TestCachedSource_EmptyResultIsCached(t *testing.T) {
	src := &fakeSource{}
	cs := NewCachedSource(src, nil, time.Hour, DefaultBreakerConfig(), nil, nil)
	q := recommendation.SearchQuery{Keywords: "nothing"}

	got, err := cs.Search(context.Background(), q)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = cs.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 1, src.callCount())
}

func TestCachedSource_ErrorsAreNotCached(t *testing.T) {
	src := &fakeSource{err: errors.New("remote down")}
	cs := NewCachedSource(src, nil, time.Hour, DefaultBreakerConfig(), nil, nil)
	q := recommendation.SearchQuery{Keywords: "x"}

	_, err := cs.Search(context.Background(), q)
	require.Error(t, err)
	_, err = cs.Search(context.Background(), q)
	require.Error(t, err)
	assert.Equal(t, 2, src.callCount())
}

func TestCachedSource_BreakerOpens(t *testing.T) {
	src := &fakeSource{err: errors.New("remote down")}
	bc := BreakerConfig{MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, FailureThreshold: 0.5, MinRequests: 2}
	cs := NewCachedSource(src, nil, time.Hour, bc, nil, nil)

	for i := 0; i < 2; i++ {
		_, _ = cs.Search(context.Background(), recommendation.SearchQuery{Keywords: "x"})
	}
	assert.Equal(t, "open", cs.Status().BreakerState)

	_, err := cs.Search(context.Background(), recommendation.SearchQuery{Keywords: "y"})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 2, src.callCount())
}

func TestCachedSource_UnavailableDoesNotTrip(t *testing.T) {
	src := &fakeSource{err: ErrUnavailable}
	bc := BreakerConfig{MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, FailureThreshold: 0.5, MinRequests: 1}
	cs := NewCachedSource(src, nil, time.Hour, bc, nil, nil)

	for i := 0; i < 3; i++ {
		_, err := cs.Search(context.Background(), recommendation.SearchQuery{Keywords: "x"})
		assert.ErrorIs(t, err, ErrUnavailable)
	}
	assert.Equal(t, "closed", cs.Status().BreakerState)
}

func TestCachedSource_CallerErrorsDoNotTrip(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		outcome string
	}{
		{name: "caller canceled", err: fmt.Errorf("product search: %w", context.Canceled), outcome: "canceled"},
		{name: "throttle wait", err: fmt.Errorf("%w: %w", ErrThrottled, errors.New("rate: Wait(n=1) would exceed context deadline")), outcome: "throttled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{err: tt.err}
			metrics := observability.NewCollector("caller_errors")
			cs := NewCachedSource(src, nil, time.Hour, DefaultBreakerConfig(), metrics, nil)

			for i := 0; i < 10; i++ {
				_, err := cs.Search(context.Background(), recommendation.SearchQuery{Keywords: "x"})
				assert.ErrorIs(t, err, tt.err)
			}

			assert.Equal(t, "closed", cs.Status().BreakerState)
			assert.Equal(t, 10, src.callCount())
			assert.Equal(t, 10.0, testutil.ToFloat64(metrics.ExternalCalls.WithLabelValues(tt.outcome)))
		})
	}
}

func TestCachedSource_StatusWithClient(t *testing.T) {
	client := NewClient(ClientConfig{}, &stubHTTP{}, nil, nil)
	cs := NewCachedSource(client, nil, 30*time.Minute, DefaultBreakerConfig(), nil, nil)

	st := cs.Status()
	assert.False(t, st.Available)
	assert.Equal(t, "30m0s", st.CacheTTL)
	assert.Equal(t, "1.5s", st.MinInterval)
	assert.Nil(t, st.LastRequest)
}
