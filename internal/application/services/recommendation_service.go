// Package services contains the application services that orchestrate the
// recommendation and feedback use cases. They own the active catalog index,
// the remote search timeout and the observability around each request.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"giftguru-backend/internal/domain/catalog"
	"giftguru-backend/internal/domain/recommendation"
	domainServices "giftguru-backend/internal/domain/services"
	"giftguru-backend/internal/infrastructure/observability"
	appErrors "giftguru-backend/pkg/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ExternalSearcher fetches candidates from the secondary product source.
type ExternalSearcher interface {
	Search(ctx context.Context, profile recommendation.Profile, window recommendation.BudgetWindow, maxResults int) ([]recommendation.ExternalProduct, error)
}

// RecommendationConfig tunes the service.
type RecommendationConfig struct {
	Index              recommendation.IndexConfig
	MaxK               int
	ExternalTimeout    time.Duration
	ExternalMaxResults int
}

// RecommendRequest is one recommendation use case invocation.
type RecommendRequest struct {
	Profile       recommendation.Profile
	Count         int
	IncludeFlavor bool
	UseExternal   bool
}

// RecommendResult is the response envelope.
type RecommendResult struct {
	Recommendations []recommendation.Recommendation `json:"recommendations"`
	TotalFound      int                             `json:"totalFound"`
	ResponseTime    string                          `json:"responseTime"`
	DataSource      recommendation.Source           `json:"dataSource"`
	BudgetWidened   bool                            `json:"budgetWidened"`
	BudgetWindow    recommendation.BudgetWindow     `json:"budgetWindow"`
	FlavorText      string                          `json:"flavorText,omitempty"`
}

// CatalogStats summarises the active catalog.
type CatalogStats struct {
	catalog.Stats
	Corpus        string `json:"corpus"`
	Vocabulary    int    `json:"vocabularySize"`
	FlavorPhrases int    `json:"flavorPhrases"`
}

// RecommendationService ranks the active catalog for a profile and fuses in
// external candidates when the catalog alone is too thin.
type RecommendationService struct {
	index    atomic.Pointer[recommendation.CatalogIndex]
	reloadMu sync.Mutex

	config   RecommendationConfig
	matcher  *recommendation.Matcher
	enricher *recommendation.Enricher
	external ExternalSearcher
	picker   recommendation.Picker
	metrics  *observability.Collector
	logger   *zap.Logger
	tracer   trace.Tracer
}

// NewRecommendationService wires the service. external may be nil.
func NewRecommendationService(
	config RecommendationConfig,
	matcher *recommendation.Matcher,
	enricher *recommendation.Enricher,
	external ExternalSearcher,
	picker recommendation.Picker,
	metrics *observability.Collector,
	logger *zap.Logger,
) *RecommendationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.ExternalTimeout <= 0 {
		config.ExternalTimeout = 3 * time.Second
	}
	if config.ExternalMaxResults <= 0 {
		config.ExternalMaxResults = 10
	}
	if matcher == nil {
		matcher = recommendation.NewMatcher(recommendation.DefaultMatcherConfig(), nil, logger)
	}
	if enricher == nil {
		enricher = recommendation.NewEnricher(recommendation.DefaultEnrichmentConfig(), picker)
	}

	return &RecommendationService{
		config:   config,
		matcher:  matcher,
		enricher: enricher,
		external: external,
		picker:   picker,
		metrics:  metrics,
		logger:   logger,
		tracer:   otel.Tracer("giftguru-backend.application.recommendation_service"),
	}
}

// Reload loads the catalog at path, fits a new vectorizer and swaps the pair
// in one step. On failure the previous index stays active.
func (s *RecommendationService) Reload(ctx context.Context, path string) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	_, span := s.tracer.Start(ctx, "RecommendationService.Reload",
		trace.WithAttributes(attribute.String("catalog.path", path)))
	defer span.End()

	cat, report, err := catalog.LoadFile(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog load failed")
		s.metrics.ObserveCatalogReload(false, 0)
		return fmt.Errorf("load catalog: %w", err)
	}
	for _, skipped := range report.Skipped {
		s.logger.Warn("Skipped catalog row",
			zap.Int("row", skipped.Row),
			zap.String("reason", skipped.Reason),
		)
	}

	idx, err := recommendation.BuildIndex(cat, s.config.Index)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveCatalogReload(false, 0)
		return fmt.Errorf("build index: %w", err)
	}

	s.SetIndex(idx)
	s.metrics.ObserveCatalogReload(true, idx.Len())
	s.logger.Info("Catalog index ready",
		zap.String("path", path),
		zap.Int("items", idx.Len()),
		zap.Int("skipped_rows", len(report.Skipped)),
		zap.Int("vocabulary", idx.Dimension()),
	)
	return nil
}

// SetIndex replaces the active index.
func (s *RecommendationService) SetIndex(idx *recommendation.CatalogIndex) {
	s.index.Store(idx)
}

// Index returns the active index, or nil before the first load.
func (s *RecommendationService) Index() *recommendation.CatalogIndex {
	return s.index.Load()
}

// Ready reports whether an index is loaded.
func (s *RecommendationService) Ready() bool {
	return s.index.Load() != nil
}

// HasExternalSource reports whether a secondary source is wired.
func (s *RecommendationService) HasExternalSource() bool {
	return s.external != nil
}

type externalResult struct {
	products []recommendation.ExternalProduct
	err      error
}

// Recommend runs the full pipeline: budget check, local ranking, optional
// fusion with external candidates and enrichment.
func (s *RecommendationService) Recommend(ctx context.Context, req RecommendRequest) (*RecommendResult, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "RecommendationService.Recommend",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("profile.age_group", req.Profile.AgeGroup),
			attribute.Float64("profile.budget_min", req.Profile.BudgetMin),
			attribute.Float64("profile.budget_max", req.Profile.BudgetMax),
			attribute.Bool("use_external", req.UseExternal),
		),
	)
	defer span.End()

	if err := req.Profile.Validate(); err != nil {
		span.SetStatus(codes.Error, "invalid budget")
		return nil, appErrors.NewValidation("invalid budget", err)
	}

	idx := s.index.Load()
	if idx == nil {
		span.SetStatus(codes.Error, "catalog not loaded")
		return nil, appErrors.NewUnavailable("catalog not loaded", domainServices.ErrNotFitted)
	}

	k := s.matcher.ResolveK(req.Count)
	if s.config.MaxK > 0 && k > s.config.MaxK {
		k = s.config.MaxK
	}

	var externalCh chan externalResult
	cancelExternal := func() {}
	if req.UseExternal && s.external != nil {
		externalCh, cancelExternal = s.startExternal(ctx, req.Profile)
	}
	defer cancelExternal()

	matched, err := s.matcher.Match(idx, req.Profile, k)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "match failed")
		var budgetErr *recommendation.BudgetError
		if errors.As(err, &budgetErr) {
			return nil, appErrors.NewValidation("invalid budget", err)
		}
		return nil, appErrors.NewInternal("failed to rank catalog", err)
	}

	var secondary []recommendation.Scored
	if externalCh != nil && recommendation.NeedsSecondary(len(matched.Items), k) {
		res := <-externalCh
		if res.err != nil {
			s.logger.Warn("External product search failed, using local catalog only", zap.Error(res.err))
			span.AddEvent("external_search_failed", trace.WithAttributes(attribute.String("error", res.err.Error())))
		} else {
			secondary = s.matcher.ScoreExternal(idx, req.Profile, res.products, matched.Window)
		}
	}

	fused, source := recommendation.Fuse(matched.Items, secondary, k)
	// price scoring is relative to what the caller asked for, even after widening
	requested := recommendation.BudgetWindow{Min: req.Profile.BudgetMin, Max: req.Profile.BudgetMax}
	recs := s.enricher.Enrich(fused, req.Profile, requested, req.IncludeFlavor)

	result := &RecommendResult{
		Recommendations: recs,
		TotalFound:      len(recs),
		DataSource:      source,
		BudgetWidened:   matched.Widened,
		BudgetWindow:    matched.Window,
	}
	if req.IncludeFlavor {
		result.FlavorText = recommendation.PickFlavor(s.picker)
	}

	elapsed := time.Since(start)
	result.ResponseTime = elapsed.Round(time.Microsecond).String()

	span.SetAttributes(
		attribute.Int("results.count", len(recs)),
		attribute.String("results.data_source", string(source)),
		attribute.Bool("budget.widened", matched.Widened),
	)
	s.metrics.ObserveRecommendation(string(source), len(recs), matched.Widened, elapsed)
	s.logger.Info("Recommendations generated",
		zap.Int("requested", k),
		zap.Int("returned", len(recs)),
		zap.String("data_source", string(source)),
		zap.Bool("budget_widened", matched.Widened),
		zap.Duration("duration", elapsed),
	)

	return result, nil
}

// startExternal runs the remote search under the configured timeout. The
// returned channel always receives exactly one result.
func (s *RecommendationService) startExternal(ctx context.Context, profile recommendation.Profile) (chan externalResult, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, s.config.ExternalTimeout)
	ch := make(chan externalResult, 1)
	window := recommendation.BudgetWindow{Min: profile.BudgetMin, Max: profile.BudgetMax}

	go func() {
		ctx, span := s.tracer.Start(ctx, "RecommendationService.ExternalSearch")
		defer span.End()

		products, err := s.external.Search(ctx, profile, window, s.config.ExternalMaxResults)
		if err != nil {
			span.RecordError(err)
		}
		ch <- externalResult{products: products, err: err}
	}()

	return ch, cancel
}

// Stats describes the active catalog.
func (s *RecommendationService) Stats() (CatalogStats, error) {
	idx := s.index.Load()
	if idx == nil {
		return CatalogStats{}, appErrors.NewUnavailable("catalog not loaded", domainServices.ErrNotFitted)
	}
	return CatalogStats{
		Stats:         idx.Catalog().Stats(),
		Corpus:        string(idx.Corpus()),
		Vocabulary:    idx.Dimension(),
		FlavorPhrases: len(recommendation.FlavorPhrases),
	}, nil
}
