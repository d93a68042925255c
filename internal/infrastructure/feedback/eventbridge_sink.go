package feedback

import (
	"context"
	"errors"
	"fmt"

	"giftguru-backend/internal/domain/feedback"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/aws/smithy-go"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// DetailType is the EventBridge detail-type of feedback events.
const DetailType = "FeedbackSubmitted"

// EventPutter is the subset of the EventBridge client the sink needs.
type EventPutter interface {
	PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error)
}

// EventBridgeSink publishes each record as one event.
type EventBridgeSink struct {
	client   EventPutter
	eventBus string
	source   string
	logger   *zap.Logger
}

// NewEventBridgeSink creates an EventBridge sink.
func NewEventBridgeSink(client EventPutter, eventBus, source string, logger *zap.Logger) *EventBridgeSink {
	if eventBus == "" {
		eventBus = "default"
	}
	if source == "" {
		source = "giftguru-backend"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventBridgeSink{client: client, eventBus: eventBus, source: source, logger: logger}
}

func (s *EventBridgeSink) Name() string { return "eventbridge" }

func (s *EventBridgeSink) Write(ctx context.Context, record feedback.Record) error {
	detail, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal feedback: %w", err)
	}

	output, err := s.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{{
			EventBusName: aws.String(s.eventBus),
			Source:       aws.String(s.source),
			DetailType:   aws.String(DetailType),
			Detail:       aws.String(string(detail)),
			Time:         aws.Time(record.Timestamp),
			Resources:    []string{record.ID},
		}},
	})
	if err != nil {
		fields := []zap.Field{zap.String("feedback_id", record.ID), zap.Error(err)}
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			fields = append(fields, zap.String("aws_error_code", apiErr.ErrorCode()))
		}
		s.logger.Error("EventBridge PutEvents failed", fields...)
		return fmt.Errorf("put events: %w", err)
	}

	if output.FailedEntryCount > 0 {
		code, msg := "", ""
		if len(output.Entries) > 0 {
			code = aws.ToString(output.Entries[0].ErrorCode)
			msg = aws.ToString(output.Entries[0].ErrorMessage)
		}
		return fmt.Errorf("feedback event rejected: %s: %s", code, msg)
	}
	return nil
}
