package di

import (
	"net/http"
	"time"

	"giftguru-backend/internal/config"
	"giftguru-backend/internal/infrastructure/observability"
	"giftguru-backend/internal/interfaces/http/handlers"
	"giftguru-backend/internal/middleware"
	"giftguru-backend/pkg/api"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const requestTimeout = 30 * time.Second

// SetupRouter creates and configures the HTTP router with all routes and middleware.
func SetupRouter(
	cfg *config.Config,
	recommendationHandler *handlers.RecommendationHandler,
	feedbackHandler *handlers.FeedbackHandler,
	healthHandler *handlers.HealthHandler,
	metrics *observability.Collector,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(observability.TracingMiddleware(cfg.Tracing.ServiceName))
	r.Use(observability.MetricsMiddleware(metrics))
	r.Use(middleware.Timeout(requestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	if metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if cfg.Server.RateLimit > 0 {
				r.Use(httprate.Limit(
					cfg.Server.RateLimit,
					time.Minute,
					httprate.WithKeyFuncs(httprate.KeyByIP),
					httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
						api.Error(w, http.StatusTooManyRequests, "Too many requests, slow down")
					}),
				))
			}
			r.Post("/recommendations", recommendationHandler.Recommend)
		})

		r.Post("/feedback", feedbackHandler.Submit)
		r.Get("/stats", recommendationHandler.Stats)
		r.Get("/product-source/status", healthHandler.ProductSourceStatus)
		r.Get("/openapi.json", handlers.OpenAPI)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Error(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.Error(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
