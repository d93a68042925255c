// Package di wires the service graph. Providers are composed into Wire sets in
// wire.go; wire_gen.go holds the generated injector.
package di

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"giftguru-backend/internal/application/services"
	"giftguru-backend/internal/config"
	"giftguru-backend/internal/domain/feedback"
	"giftguru-backend/internal/domain/recommendation"
	domainServices "giftguru-backend/internal/domain/services"
	"giftguru-backend/internal/infrastructure/cache"
	feedbackSinks "giftguru-backend/internal/infrastructure/feedback"
	"giftguru-backend/internal/infrastructure/observability"
	"giftguru-backend/internal/infrastructure/productsource"
	"giftguru-backend/internal/infrastructure/tracing"
	"giftguru-backend/internal/interfaces/http/handlers"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	awsDynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsEventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// Version is reported by the health endpoints.
var Version = "1.0.0"

func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	logger, err := observability.NewLogger(cfg.LogLevel, string(cfg.Environment))
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = logger.Sync() }
	return logger, cleanup, nil
}

func provideTracerProvider(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*tracing.TracerProvider, func(), error) {
	tp, err := tracing.InitTracing(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Environment: string(cfg.Environment),
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init tracing: %w", err)
	}
	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Tracer shutdown failed", zap.Error(err))
		}
	}
	return tp, cleanup, nil
}

// provideMetrics returns nil when metrics are disabled; every collector method
// is nil-safe.
func provideMetrics(cfg *config.Config) *observability.Collector {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return observability.NewCollector(cfg.Metrics.Namespace)
}

func provideIndexConfig(cfg *config.Config) recommendation.IndexConfig {
	return recommendation.IndexConfig{
		Corpus: recommendation.CorpusMode(cfg.Catalog.Corpus),
		Vectorizer: domainServices.VectorizerConfig{
			MaxFeatures: cfg.Catalog.MaxFeatures,
			MaxNGram:    cfg.Catalog.MaxNGram,
		},
	}
}

func provideMatcher(cfg *config.Config, logger *zap.Logger) *recommendation.Matcher {
	return recommendation.NewMatcher(recommendation.MatcherConfig{
		DefaultK:    cfg.Matching.DefaultK,
		BudgetSlack: cfg.Matching.BudgetSlack,
	}, domainServices.NewCosineCalculator(), logger)
}

func providePicker() recommendation.Picker {
	return recommendation.NewRandomPicker()
}

func provideEnricher(picker recommendation.Picker) *recommendation.Enricher {
	return recommendation.NewEnricher(recommendation.DefaultEnrichmentConfig(), picker)
}

// provideProductSource returns nil when the external source is disabled.
func provideProductSource(cfg *config.Config, metrics *observability.Collector, logger *zap.Logger) *productsource.CachedSource {
	ps := cfg.ProductSource
	if !ps.Enabled {
		logger.Info("External product source disabled")
		return nil
	}

	client := productsource.NewClient(productsource.ClientConfig{
		Endpoint:    ps.Endpoint,
		APIKey:      ps.APIKey,
		PartnerTag:  ps.PartnerTag,
		Marketplace: ps.Marketplace,
		MinInterval: ps.Throttle,
		Timeout:     ps.Timeout,
	}, nil, metrics, logger)

	responseCache := cache.NewMemoryCache(ps.CacheItems, 0, logger)
	return productsource.NewCachedSource(client, responseCache, ps.CacheTTL, productsource.DefaultBreakerConfig(), metrics, logger)
}

// provideExternalSearcher keeps a disabled source as a nil interface rather
// than an interface holding a nil pointer.
func provideExternalSearcher(source *productsource.CachedSource, logger *zap.Logger) services.ExternalSearcher {
	if source == nil {
		return nil
	}
	return productsource.NewProfileSearcher(source, logger)
}

func provideSourceStatus(source *productsource.CachedSource) handlers.SourceStatus {
	if source == nil {
		return nil
	}
	return source
}

func provideRecommendationService(
	cfg *config.Config,
	indexConfig recommendation.IndexConfig,
	matcher *recommendation.Matcher,
	enricher *recommendation.Enricher,
	external services.ExternalSearcher,
	picker recommendation.Picker,
	metrics *observability.Collector,
	logger *zap.Logger,
) *services.RecommendationService {
	return services.NewRecommendationService(services.RecommendationConfig{
		Index:              indexConfig,
		MaxK:               cfg.Matching.MaxK,
		ExternalTimeout:    cfg.ProductSource.Timeout,
		ExternalMaxResults: cfg.ProductSource.MaxResults,
	}, matcher, enricher, external, picker, metrics, logger)
}

func provideFeedbackSink(ctx context.Context, cfg *config.Config, logger *zap.Logger) (feedback.Sink, error) {
	switch cfg.Feedback.Sink {
	case config.SinkDynamoDB:
		awsCfg, err := loadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		client := awsDynamodb.NewFromConfig(awsCfg, func(o *awsDynamodb.Options) {
			o.HTTPClient = &http.Client{Timeout: 10 * time.Second}
		})
		return feedbackSinks.NewDynamoDBSink(client, cfg.Feedback.TableName, logger), nil
	case config.SinkEventBridge:
		awsCfg, err := loadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		client := awsEventbridge.NewFromConfig(awsCfg, func(o *awsEventbridge.Options) {
			o.HTTPClient = &http.Client{Timeout: 10 * time.Second}
		})
		return feedbackSinks.NewEventBridgeSink(client, cfg.Feedback.EventBus, cfg.Feedback.Source, logger), nil
	default:
		return feedbackSinks.NewLogSink(logger), nil
	}
}

func loadAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := []func(*awsConfig.LoadOptions) error{}
	if cfg.Feedback.Region != "" {
		opts = append(opts, awsConfig.WithRegion(cfg.Feedback.Region))
	}
	awsCfg, err := awsConfig.LoadDefaultConfig(loadCtx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return awsCfg, nil
}

func provideFeedbackService(sink feedback.Sink, metrics *observability.Collector, logger *zap.Logger) *services.FeedbackService {
	return services.NewFeedbackService(sink, metrics, logger)
}

func provideHealthHandler(recs *services.RecommendationService, source handlers.SourceStatus) *handlers.HealthHandler {
	return handlers.NewHealthHandler(recs, source, Version)
}
