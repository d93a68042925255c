package services

import (
	"errors"
	"math"
	"sort"
)

// ErrNotFitted is returned when a vectorizer is queried before Fit.
var ErrNotFitted = errors.New("vectorizer has not been fitted")

// Vector is a dense TF-IDF embedding. All vectors produced by one fitted
// vectorizer share its vocabulary and dimension.
type Vector []float64

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// IsZero reports whether every component is zero.
func (v Vector) IsZero() bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// VectorizerConfig configures vocabulary construction.
type VectorizerConfig struct {
	MaxFeatures int // vocabulary cap, terms ranked by corpus frequency
	MaxNGram    int // 1 = unigrams, 2 = unigrams + bigrams
}

// DefaultVectorizerConfig returns unigrams + bigrams capped at 1000 terms.
func DefaultVectorizerConfig() VectorizerConfig {
	return VectorizerConfig{
		MaxFeatures: 1000,
		MaxNGram:    2,
	}
}

// TFIDFVectorizer projects text into a term-frequency / inverse-document-
// frequency space. The zero value and the result of NewTFIDFVectorizer are
// unfitted; Fit returns a new, fitted and immutable vectorizer, so a fitted
// value is safe for concurrent use.
type TFIDFVectorizer struct {
	config     VectorizerConfig
	analyzer   TextAnalyzer
	vocabulary map[string]int
	terms      []string
	idf        []float64
	fitted     bool
}

// NewTFIDFVectorizer creates an unfitted vectorizer.
func NewTFIDFVectorizer(config VectorizerConfig, analyzer TextAnalyzer) *TFIDFVectorizer {
	if config.MaxFeatures <= 0 {
		config.MaxFeatures = DefaultVectorizerConfig().MaxFeatures
	}
	if config.MaxNGram <= 0 {
		config.MaxNGram = DefaultVectorizerConfig().MaxNGram
	}
	if analyzer == nil {
		analyzer = NewDefaultTextAnalyzer()
	}

	return &TFIDFVectorizer{
		config:   config,
		analyzer: analyzer,
	}
}

// Fit learns the vocabulary and IDF weights from corpus. The vocabulary keeps
// the MaxFeatures most frequent terms (ties broken alphabetically); indices are
// assigned in alphabetical order. IDF is smoothed: ln((1+n)/(1+df)) + 1.
// An empty corpus yields an empty vocabulary, against which every text embeds
// to a zero-length vector.
func (v *TFIDFVectorizer) Fit(corpus []string) (*TFIDFVectorizer, error) {
	if v == nil || v.analyzer == nil {
		return nil, errors.New("vectorizer is not initialised")
	}

	totalCount := make(map[string]int)
	docFreq := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, term := range v.analyzer.Terms(doc, v.config.MaxNGram) {
			totalCount[term]++
			if !seen[term] {
				seen[term] = true
				docFreq[term]++
			}
		}
	}

	candidates := make([]string, 0, len(totalCount))
	for term := range totalCount {
		candidates = append(candidates, term)
	}
	sort.Slice(candidates, func(i, j int) bool {
		ci, cj := totalCount[candidates[i]], totalCount[candidates[j]]
		if ci != cj {
			return ci > cj
		}
		return candidates[i] < candidates[j]
	})
	if len(candidates) > v.config.MaxFeatures {
		candidates = candidates[:v.config.MaxFeatures]
	}
	sort.Strings(candidates)

	n := float64(len(corpus))
	fitted := &TFIDFVectorizer{
		config:     v.config,
		analyzer:   v.analyzer,
		vocabulary: make(map[string]int, len(candidates)),
		terms:      candidates,
		idf:        make([]float64, len(candidates)),
		fitted:     true,
	}
	for i, term := range candidates {
		fitted.vocabulary[term] = i
		fitted.idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	return fitted, nil
}

// IsFitted reports whether Fit produced this vectorizer.
func (v *TFIDFVectorizer) IsFitted() bool {
	return v != nil && v.fitted
}

// Dimension returns the vocabulary size.
func (v *TFIDFVectorizer) Dimension() int {
	if !v.IsFitted() {
		return 0
	}
	return len(v.terms)
}

// Vocabulary returns the fitted terms in index order.
func (v *TFIDFVectorizer) Vocabulary() []string {
	if !v.IsFitted() {
		return nil
	}
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Embed projects text into the fitted space: raw term counts weighted by IDF,
// then L2-normalised. Terms outside the vocabulary are ignored, so text made
// only of unknown words embeds to the zero vector.
func (v *TFIDFVectorizer) Embed(text string) (Vector, error) {
	if !v.IsFitted() {
		return nil, ErrNotFitted
	}

	vec := make(Vector, len(v.terms))
	for _, term := range v.analyzer.Terms(text, v.config.MaxNGram) {
		if idx, ok := v.vocabulary[term]; ok {
			vec[idx]++
		}
	}
	for i := range vec {
		vec[i] *= v.idf[i]
	}

	if norm := vec.Norm(); norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}

	return vec, nil
}

// EmbedAll embeds every text in order.
func (v *TFIDFVectorizer) EmbedAll(texts []string) ([]Vector, error) {
	out := make([]Vector, len(texts))
	for i, text := range texts {
		vec, err := v.Embed(text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}
