// Package feedback defines the rating record users send back about a list of
// recommendations and the sink it is emitted to.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"giftguru-backend/internal/domain/recommendation"
)

// MaxRating is the top of the rating scale. A rating of 0 means "not rated".
const MaxRating = 5

// ErrInvalidRecord is wrapped by every validation failure.
var ErrInvalidRecord = errors.New("invalid feedback")

// Record is one feedback submission.
type Record struct {
	ID             string                 `json:"id" dynamodbav:"PK"`
	Timestamp      time.Time              `json:"timestamp" dynamodbav:"timestamp"`
	Profile        recommendation.Profile `json:"profile" dynamodbav:"profile"`
	RecommendedIDs []string               `json:"recommendedIds" dynamodbav:"recommendedIds"`
	Ratings        []int                  `json:"ratings" dynamodbav:"ratings"`
	AverageRating  float64                `json:"averageRating" dynamodbav:"averageRating"`
}

// Validate checks the ratings against the recommended IDs.
func (r Record) Validate() error {
	if len(r.RecommendedIDs) == 0 {
		return fmt.Errorf("%w: no recommended ids", ErrInvalidRecord)
	}
	if len(r.Ratings) != len(r.RecommendedIDs) {
		return fmt.Errorf("%w: %d ratings for %d recommendations", ErrInvalidRecord, len(r.Ratings), len(r.RecommendedIDs))
	}
	for i, rating := range r.Ratings {
		if rating < 0 || rating > MaxRating {
			return fmt.Errorf("%w: rating %d at position %d out of range 0..%d", ErrInvalidRecord, rating, i, MaxRating)
		}
	}
	return nil
}

// Average returns the mean of the positive ratings, or 0 when nothing was rated.
func Average(ratings []int) float64 {
	sum, n := 0, 0
	for _, r := range ratings {
		if r > 0 {
			sum += r
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// Sink stores or forwards feedback records.
type Sink interface {
	Name() string
	Write(ctx context.Context, record Record) error
}
