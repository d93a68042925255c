package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	analyzer := NewDefaultTextAnalyzer()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"lowercases and splits", "Gaming RGB-Keyboard!", []string{"gaming", "rgb", "keyboard"}},
		{"drops stop words", "a gift for the reader", []string{"gift", "reader"}},
		{"drops single characters", "x y zz", []string{"zz"}},
		{"keeps digits", "18-25 male", []string{"18", "25", "male"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analyzer.Tokenize(tt.text))
		})
	}
}

func TestTermsBuildsBigramsAfterStopWordRemoval(t *testing.T) {
	analyzer := NewDefaultTextAnalyzer()

	terms := analyzer.Terms("coffee and tea lover", 2)
	assert.Equal(t, []string{"coffee", "tea", "lover", "coffee tea", "tea lover"}, terms)
}

func TestEmbedBeforeFit(t *testing.T) {
	v := NewTFIDFVectorizer(DefaultVectorizerConfig(), nil)

	_, err := v.Embed("anything")
	assert.True(t, errors.Is(err, ErrNotFitted))
	assert.False(t, v.IsFitted())
	assert.Equal(t, 0, v.Dimension())
}

func TestFitDoesNotMutateReceiver(t *testing.T) {
	v := NewTFIDFVectorizer(DefaultVectorizerConfig(), nil)

	fitted, err := v.Fit([]string{"gaming keyboard"})
	require.NoError(t, err)

	assert.True(t, fitted.IsFitted())
	assert.False(t, v.IsFitted())
}

func TestFitVocabulary(t *testing.T) {
	v := NewTFIDFVectorizer(DefaultVectorizerConfig(), nil)

	fitted, err := v.Fit([]string{"gaming rgb keyboard", "yoga wellness"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"gaming", "gaming rgb", "keyboard", "rgb", "rgb keyboard", "wellness", "yoga", "yoga wellness",
	}, fitted.Vocabulary())
	assert.Equal(t, 8, fitted.Dimension())
}

func TestFitCapsVocabularyByFrequency(t *testing.T) {
	v := NewTFIDFVectorizer(VectorizerConfig{MaxFeatures: 2, MaxNGram: 1}, nil)

	fitted, err := v.Fit([]string{"tea tea coffee", "tea mug", "coffee"})
	require.NoError(t, err)

	assert.Equal(t, []string{"coffee", "tea"}, fitted.Vocabulary())
}

func TestEmbedIsDeterministicAndNormalised(t *testing.T) {
	fitted, err := NewTFIDFVectorizer(DefaultVectorizerConfig(), nil).
		Fit([]string{"gaming rgb keyboard", "yoga wellness mat", "coffee mug"})
	require.NoError(t, err)

	a, err := fitted.Embed("gaming keyboard for a teen")
	require.NoError(t, err)
	b, err := fitted.Embed("gaming keyboard for a teen")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.InDelta(t, 1.0, a.Norm(), 1e-9)
}

func TestEmbedIgnoresUnknownTerms(t *testing.T) {
	fitted, err := NewTFIDFVectorizer(DefaultVectorizerConfig(), nil).Fit([]string{"gaming keyboard"})
	require.NoError(t, err)

	vec, err := fitted.Embed("completely unrelated words")
	require.NoError(t, err)
	assert.Len(t, vec, fitted.Dimension())
	assert.True(t, vec.IsZero())

	known, err := fitted.Embed("gaming")
	require.NoError(t, err)
	withNoise, err := fitted.Embed("gaming zebra")
	require.NoError(t, err)
	assert.Equal(t, known, withNoise)
}

func TestEmptyCorpusFitsEmptyVocabulary(t *testing.T) {
	fitted, err := NewTFIDFVectorizer(DefaultVectorizerConfig(), nil).Fit(nil)
	require.NoError(t, err)

	vec, err := fitted.Embed("gaming")
	require.NoError(t, err)
	assert.Empty(t, vec)
}

func TestIdenticalTextHasMaximalSimilarity(t *testing.T) {
	corpus := []string{"Tech gaming rgb keyboard", "Wellness yoga mat", "Kitchen coffee grinder"}
	fitted, err := NewTFIDFVectorizer(DefaultVectorizerConfig(), nil).Fit(corpus)
	require.NoError(t, err)

	for _, doc := range corpus {
		a, err := fitted.Embed(doc)
		require.NoError(t, err)
		sim, err := CosineSimilarity(a, a)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, sim, 1e-9)
	}
}

func TestCosineSimilarity(t *testing.T) {
	sim, err := CosineSimilarity(Vector{1, 0}, Vector{0, 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, sim)

	sim, err = CosineSimilarity(Vector{0, 0}, Vector{0, 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, sim)

	sim, err = NewCosineCalculator().Calculate(Vector{2, 2}, Vector{1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-12)

	_, err = CosineSimilarity(Vector{1}, Vector{1, 2})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}
