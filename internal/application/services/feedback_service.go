package services

import (
	"context"
	"errors"
	"time"

	"giftguru-backend/internal/domain/feedback"
	"giftguru-backend/internal/domain/recommendation"
	"giftguru-backend/internal/infrastructure/observability"
	appErrors "giftguru-backend/pkg/errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// SubmitFeedbackRequest carries one user's ratings of a recommendation list.
type SubmitFeedbackRequest struct {
	Profile        recommendation.Profile
	RecommendedIDs []string
	Ratings        []int
}

// FeedbackService validates feedback and emits it to the configured sink.
type FeedbackService struct {
	sink    feedback.Sink
	metrics *observability.Collector
	logger  *zap.Logger
	tracer  trace.Tracer
	now     func() time.Time
	newID   func() string
}

// NewFeedbackService creates a feedback service writing to sink.
func NewFeedbackService(sink feedback.Sink, metrics *observability.Collector, logger *zap.Logger) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackService{
		sink:    sink,
		metrics: metrics,
		logger:  logger,
		tracer:  otel.Tracer("giftguru-backend.application.feedback_service"),
		now:     func() time.Time { return time.Now().UTC() },
		newID:   func() string { return uuid.New().String() },
	}
}

// SinkName returns the name of the active sink.
func (s *FeedbackService) SinkName() string {
	return s.sink.Name()
}

// Submit builds a record from the request and writes it to the sink.
func (s *FeedbackService) Submit(ctx context.Context, req SubmitFeedbackRequest) (*feedback.Record, error) {
	ctx, span := s.tracer.Start(ctx, "FeedbackService.Submit",
		trace.WithAttributes(
			attribute.String("feedback.sink", s.sink.Name()),
			attribute.Int("feedback.ratings", len(req.Ratings)),
		),
	)
	defer span.End()

	record := feedback.Record{
		ID:             s.newID(),
		Timestamp:      s.now(),
		Profile:        req.Profile,
		RecommendedIDs: req.RecommendedIDs,
		Ratings:        req.Ratings,
		AverageRating:  feedback.Average(req.Ratings),
	}
	if err := record.Validate(); err != nil {
		span.SetStatus(codes.Error, "invalid feedback")
		return nil, appErrors.NewValidation(err.Error(), err)
	}

	if err := s.sink.Write(ctx, record); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "sink write failed")
		s.metrics.ObserveFeedback(s.sink.Name(), err)
		s.logger.Error("Failed to write feedback",
			zap.String("feedback_id", record.ID),
			zap.String("sink", s.sink.Name()),
			zap.Error(err),
		)
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, appErrors.NewUnavailable("feedback could not be recorded", err)
	}

	s.metrics.ObserveFeedback(s.sink.Name(), nil)
	span.SetAttributes(attribute.String("feedback.id", record.ID))
	s.logger.Info("Feedback recorded",
		zap.String("feedback_id", record.ID),
		zap.String("sink", s.sink.Name()),
		zap.Float64("average_rating", record.AverageRating),
	)
	return &record, nil
}
