// Package observability provides the process logger, the Prometheus
// collector and the HTTP middleware that feeds it.
//
// # Metrics
//
// NewCollector registers every series on its own registry, so tests and
// multiple servers in one process never collide. All Observe helpers accept a
// nil *Collector, which is how metrics are switched off.
//
// Series (prefixed with the configured namespace):
//
//	http_requests_total{method,route,status}
//	http_request_duration_seconds{method,route}
//	recommendations_total{data_source}
//	recommendation_duration_seconds
//	recommendation_results
//	budget_widened_total
//	external_search_total{outcome}
//	external_search_duration_seconds
//	external_items_skipped_total
//	cache_hits_total, cache_misses_total
//	catalog_items, catalog_reloads_total{result}
//	feedback_submitted_total{sink,result}
//
// # Tracing
//
// TracingMiddleware starts a server span per request using the global tracer
// provider installed by the tracing package.
package observability
