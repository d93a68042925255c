// Package feedback implements the sinks feedback records are emitted to.
package feedback

import (
	"context"

	"giftguru-backend/internal/domain/feedback"

	"go.uber.org/zap"
)

// LogSink writes feedback as structured log lines.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a log sink.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Write(ctx context.Context, record feedback.Record) error {
	s.logger.Info("Feedback received",
		zap.String("feedback_id", record.ID),
		zap.Time("timestamp", record.Timestamp),
		zap.String("age_group", record.Profile.AgeGroup),
		zap.String("interests", record.Profile.Interests),
		zap.Strings("recommended_ids", record.RecommendedIDs),
		zap.Ints("ratings", record.Ratings),
		zap.Float64("average_rating", record.AverageRating),
	)
	return nil
}
