package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds all Prometheus metrics for the application. Every method is
// safe to call on a nil *Collector so components can run without metrics.
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Recommendation metrics
	Recommendations       *prometheus.CounterVec
	RecommendationLatency prometheus.Histogram
	ResultsReturned       prometheus.Histogram
	BudgetWidened         prometheus.Counter

	// External product source metrics
	ExternalCalls    *prometheus.CounterVec
	ExternalDuration prometheus.Histogram
	ExternalSkipped  prometheus.Counter
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter

	// Catalog metrics
	CatalogItems   prometheus.Gauge
	CatalogReloads *prometheus.CounterVec

	// Feedback metrics
	FeedbackSubmitted *prometheus.CounterVec
}

// NewCollector creates a collector with its own registry.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Recommendations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recommendations_total",
				Help:      "Recommendation requests by data source",
			},
			[]string{"data_source"},
		),
		RecommendationLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "recommendation_duration_seconds",
				Help:      "Time spent producing a recommendation list",
				Buckets:   prometheus.DefBuckets,
			},
		),
		ResultsReturned: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "recommendation_results",
				Help:      "Number of results returned per request",
				Buckets:   []float64{0, 1, 2, 3, 5, 8, 10, 20},
			},
		),
		BudgetWidened: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "budget_widened_total",
				Help:      "Requests that fell back to the widened budget window",
			},
		),
		ExternalCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "external_search_total",
				Help:      "Calls to the external product source by outcome",
			},
			[]string{"outcome"},
		),
		ExternalDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "external_search_duration_seconds",
				Help:      "External product search latency",
				Buckets:   prometheus.DefBuckets,
			},
		),
		ExternalSkipped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "external_items_skipped_total",
				Help:      "External items dropped by the response parser",
			},
		),
		CacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Total number of cache hits",
			},
		),
		CacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Total number of cache misses",
			},
		),
		CatalogItems: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "catalog_items",
				Help:      "Items in the active catalog",
			},
		),
		CatalogReloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_reloads_total",
				Help:      "Catalog reload attempts by result",
			},
			[]string{"result"},
		),
		FeedbackSubmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "feedback_submitted_total",
				Help:      "Feedback records by sink and result",
			},
			[]string{"sink", "result"},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.Recommendations,
		c.RecommendationLatency,
		c.ResultsReturned,
		c.BudgetWidened,
		c.ExternalCalls,
		c.ExternalDuration,
		c.ExternalSkipped,
		c.CacheHits,
		c.CacheMisses,
		c.CatalogItems,
		c.CatalogReloads,
		c.FeedbackSubmitted,
	)

	return c
}

// GetRegistry returns the Prometheus registry for this collector.
func (c *Collector) GetRegistry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// ObserveRecommendation records one completed recommendation request.
func (c *Collector) ObserveRecommendation(dataSource string, results int, widened bool, d time.Duration) {
	if c == nil {
		return
	}
	c.Recommendations.WithLabelValues(dataSource).Inc()
	c.ResultsReturned.Observe(float64(results))
	c.RecommendationLatency.Observe(d.Seconds())
	if widened {
		c.BudgetWidened.Inc()
	}
}

// ObserveExternalCall records a call to the external product source.
// outcome is one of "ok", "error", "rejected", "timeout", "throttled" or
// "canceled".
func (c *Collector) ObserveExternalCall(outcome string, d time.Duration) {
	if c == nil {
		return
	}
	c.ExternalCalls.WithLabelValues(outcome).Inc()
	c.ExternalDuration.Observe(d.Seconds())
}

// AddExternalSkipped counts parser-skipped items.
func (c *Collector) AddExternalSkipped(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.ExternalSkipped.Add(float64(n))
}

// ObserveCache records a cache lookup.
func (c *Collector) ObserveCache(hit bool) {
	if c == nil {
		return
	}
	if hit {
		c.CacheHits.Inc()
	} else {
		c.CacheMisses.Inc()
	}
}

// ObserveCatalogReload records a reload attempt and the resulting size.
func (c *Collector) ObserveCatalogReload(ok bool, items int) {
	if c == nil {
		return
	}
	if !ok {
		c.CatalogReloads.WithLabelValues("error").Inc()
		return
	}
	c.CatalogReloads.WithLabelValues("ok").Inc()
	c.CatalogItems.Set(float64(items))
}

// ObserveFeedback records one feedback write.
func (c *Collector) ObserveFeedback(sink string, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.FeedbackSubmitted.WithLabelValues(sink, result).Inc()
}
