package feedback

import (
	"context"
	"errors"
	"fmt"

	"giftguru-backend/internal/domain/feedback"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// ErrDuplicate is returned when a record with the same ID already exists.
var ErrDuplicate = errors.New("feedback already recorded")

// DynamoDBPutter is the subset of the DynamoDB client the sink needs.
type DynamoDBPutter interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoDBSink stores each record as one item keyed by its ID.
type DynamoDBSink struct {
	client    DynamoDBPutter
	tableName string
	logger    *zap.Logger
}

// NewDynamoDBSink creates a DynamoDB sink.
func NewDynamoDBSink(client DynamoDBPutter, tableName string, logger *zap.Logger) *DynamoDBSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DynamoDBSink{client: client, tableName: tableName, logger: logger}
}

func (s *DynamoDBSink) Name() string { return "dynamodb" }

// Write puts the record, refusing to overwrite an existing ID.
func (s *DynamoDBSink) Write(ctx context.Context, record feedback.Record) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("marshal feedback: %w", err)
	}
	item["SK"] = &types.AttributeValueMemberS{Value: "FEEDBACK#" + record.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z")}
	item["EntityType"] = &types.AttributeValueMemberS{Value: "Feedback"}

	cond := expression.AttributeNotExists(expression.Name("PK"))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("build condition: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(s.tableName),
		Item:                      item,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("%w: %s", ErrDuplicate, record.ID)
		}

		fields := []zap.Field{zap.String("feedback_id", record.ID), zap.Error(err)}
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			fields = append(fields, zap.String("aws_error_code", apiErr.ErrorCode()))
		}
		s.logger.Error("Failed to store feedback", fields...)
		return fmt.Errorf("put feedback: %w", err)
	}

	s.logger.Debug("Stored feedback", zap.String("feedback_id", record.ID))
	return nil
}
