package productsource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"giftguru-backend/internal/domain/recommendation"
	"giftguru-backend/internal/infrastructure/cache"
	"giftguru-backend/internal/infrastructure/observability"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerConfig configures the circuit breaker around remote calls.
type BreakerConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig trips after 80% failures over at least 5 calls.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      1,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// CachedSource decorates a ProductSource with a TTL cache keyed by the search
// parameters and a circuit breaker. Only successful responses are cached.
type CachedSource struct {
	next    recommendation.ProductSource
	cache   *cache.MemoryCache
	ttl     time.Duration
	breaker *gobreaker.CircuitBreaker
	metrics *observability.Collector
	logger  *zap.Logger
}

// NewCachedSource wraps next.
func NewCachedSource(next recommendation.ProductSource, c *cache.MemoryCache, ttl time.Duration, bc BreakerConfig, metrics *observability.Collector, logger *zap.Logger) *CachedSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	if c == nil {
		c = cache.NewMemoryCache(0, 0, logger)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "product-source",
		MaxRequests: bc.MaxRequests,
		Interval:    bc.Interval,
		Timeout:     bc.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < bc.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= bc.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			return !isRemoteFailure(err)
		},
	})

	return &CachedSource{
		next:    next,
		cache:   c,
		ttl:     ttl,
		breaker: breaker,
		metrics: metrics,
		logger:  logger,
	}
}

// CacheKey renders the search parameters as the cache key.
func CacheKey(q recommendation.SearchQuery) string {
	return fmt.Sprintf("%s|%g|%g|%d", q.Keywords, q.MinPrice, q.MaxPrice, q.MaxResults)
}

// Search serves from cache when possible, otherwise calls the wrapped source
// through the breaker.
func (s *CachedSource) Search(ctx context.Context, query recommendation.SearchQuery) ([]recommendation.ExternalProduct, error) {
	key := CacheKey(query)

	if data, ok, _ := s.cache.Get(ctx, key); ok {
		var cached []recommendation.ExternalProduct
		if err := json.Unmarshal(data, &cached); err == nil {
			s.metrics.ObserveCache(true)
			s.logger.Debug("Returning cached external results", zap.String("keywords", query.Keywords))
			return cached, nil
		}
		_ = s.cache.Delete(ctx, key)
	}
	s.metrics.ObserveCache(false)

	start := time.Now()
	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.next.Search(ctx, query)
	})
	elapsed := time.Since(start)

	if err != nil {
		s.metrics.ObserveExternalCall(outcomeOf(err), elapsed)
		return nil, err
	}
	s.metrics.ObserveExternalCall("ok", elapsed)

	products, _ := result.([]recommendation.ExternalProduct)
	if products == nil {
		products = []recommendation.ExternalProduct{}
	}

	if data, err := json.Marshal(products); err == nil {
		_ = s.cache.Set(ctx, key, data, s.ttl)
	}
	return products, nil
}

// isRemoteFailure reports whether err says something about the remote API.
// Missing configuration, throttling and callers that stopped waiting do not.
func isRemoteFailure(err error) bool {
	switch {
	case err == nil,
		errors.Is(err, ErrUnavailable),
		errors.Is(err, ErrThrottled),
		errors.Is(err, context.Canceled):
		return false
	default:
		return true
	}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "rejected"
	case errors.Is(err, ErrThrottled):
		return "throttled"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}

// Status describes the adapter for the status endpoint.
type Status struct {
	Available    bool        `json:"available"`
	BreakerState string      `json:"breakerState"`
	Cache        cache.Stats `json:"cache"`
	CacheTTL     string      `json:"cacheTtl"`
	MinInterval  string      `json:"throttleInterval,omitempty"`
	LastRequest  *time.Time  `json:"lastRequestAt,omitempty"`
}

// Status reports cache, breaker and client state.
func (s *CachedSource) Status() Status {
	st := Status{
		Available:    true,
		BreakerState: s.breaker.State().String(),
		Cache:        s.cache.GetStats(),
		CacheTTL:     s.ttl.String(),
	}
	if c, ok := s.next.(*Client); ok {
		st.Available = c.Available()
		st.MinInterval = c.MinInterval().String()
		if last := c.LastRequest(); !last.IsZero() {
			st.LastRequest = &last
		}
	}
	return st
}

// Purge drops every cached response.
func (s *CachedSource) Purge() int {
	return s.cache.Purge()
}

// StartCleanup evicts expired responses every interval until ctx is done.
func (s *CachedSource) StartCleanup(ctx context.Context, interval time.Duration) {
	s.cache.StartCleanup(ctx, interval)
}
