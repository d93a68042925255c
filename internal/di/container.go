package di

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"giftguru-backend/internal/application/services"
	"giftguru-backend/internal/config"
	"giftguru-backend/internal/infrastructure/observability"
	"giftguru-backend/internal/infrastructure/productsource"
	"giftguru-backend/internal/infrastructure/tracing"
	"giftguru-backend/internal/infrastructure/watcher"

	"go.uber.org/zap"
)

const cacheCleanupInterval = 5 * time.Minute

// Container holds the wired application.
type Container struct {
	Config          *config.Config
	Logger          *zap.Logger
	Metrics         *observability.Collector
	Tracer          *tracing.TracerProvider
	Recommendations *services.RecommendationService
	Feedback        *services.FeedbackService
	ProductSource   *productsource.CachedSource
	Router          http.Handler

	watcher *watcher.CatalogWatcher
}

func provideContainer(
	cfg *config.Config,
	logger *zap.Logger,
	metrics *observability.Collector,
	tracer *tracing.TracerProvider,
	recs *services.RecommendationService,
	fb *services.FeedbackService,
	source *productsource.CachedSource,
	router http.Handler,
) *Container {
	return &Container{
		Config:          cfg,
		Logger:          logger,
		Metrics:         metrics,
		Tracer:          tracer,
		Recommendations: recs,
		Feedback:        fb,
		ProductSource:   source,
		Router:          router,
	}
}

// Start loads the catalog and starts the background workers: the catalog
// watcher when enabled and the response cache janitor. A catalog that fails
// to load is fatal; the service cannot answer without one.
func (c *Container) Start(ctx context.Context) error {
	if err := c.Recommendations.Reload(ctx, c.Config.Catalog.Path); err != nil {
		return fmt.Errorf("initial catalog load: %w", err)
	}

	if c.ProductSource != nil {
		c.ProductSource.StartCleanup(ctx, cacheCleanupInterval)
	}

	if c.Config.Catalog.Watch {
		w, err := watcher.New(c.Config.Catalog.Path, c.Recommendations.Reload, watcher.DefaultDebounce, c.Logger)
		if err != nil {
			return fmt.Errorf("start catalog watcher: %w", err)
		}
		w.Start(ctx)
		c.watcher = w
	}

	c.Logger.Info("Container started",
		zap.String("environment", string(c.Config.Environment)),
		zap.String("catalog", c.Config.Catalog.Path),
		zap.Bool("catalog_watch", c.Config.Catalog.Watch),
		zap.Bool("external_source", c.ProductSource != nil),
		zap.String("feedback_sink", c.Feedback.SinkName()),
	)
	return nil
}

// Stop halts background workers.
func (c *Container) Stop() {
	if c.watcher != nil {
		c.watcher.Stop()
	}
}
