package services

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch is returned when two vectors come from different
// vocabularies.
var ErrDimensionMismatch = errors.New("vector dimensions differ")

// SimilarityCalculator scores how close two embeddings are (0.0 to 1.0 for
// non-negative TF-IDF vectors).
type SimilarityCalculator interface {
	// Calculate compares two vectors of the same dimension.
	Calculate(a, b Vector) (float64, error)
}

// CosineCalculator implements SimilarityCalculator with cosine similarity.
type CosineCalculator struct{}

// NewCosineCalculator creates a cosine similarity calculator.
func NewCosineCalculator() *CosineCalculator {
	return &CosineCalculator{}
}

// Calculate returns the cosine similarity of a and b. A zero vector on either
// side scores 0 rather than the undefined 0/0.
func (CosineCalculator) Calculate(a, b Vector) (float64, error) {
	return CosineSimilarity(a, b)
}

// CosineSimilarity is the cosine of the angle between a and b, clamped to
// [-1, 1] against rounding drift.
func CosineSimilarity(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return math.Max(-1, math.Min(1, sim)), nil
}
