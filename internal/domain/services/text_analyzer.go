package services

import (
	"strings"
	"unicode"
)

// TextAnalyzer turns free text into the ordered term stream used for
// vectorization.
type TextAnalyzer interface {
	// Tokenize lowercases text, splits it into words and drops stop words.
	// Order and duplicates are preserved.
	Tokenize(text string) []string

	// Terms returns the unigrams and n-grams (up to maxN) of the tokens.
	Terms(text string, maxN int) []string
}

// DefaultTextAnalyzer provides a default implementation of TextAnalyzer
type DefaultTextAnalyzer struct {
	stopWords map[string]bool
}

// NewDefaultTextAnalyzer creates a new text analyzer with the English stop
// word list.
func NewDefaultTextAnalyzer() *DefaultTextAnalyzer {
	return &DefaultTextAnalyzer{
		stopWords: englishStopWords,
	}
}

// NewTextAnalyzerWithStopWords creates an analyzer with a custom stop list.
// A nil list disables stop word removal.
func NewTextAnalyzerWithStopWords(words []string) *DefaultTextAnalyzer {
	stop := make(map[string]bool, len(words))
	for _, w := range words {
		stop[strings.ToLower(w)] = true
	}
	return &DefaultTextAnalyzer{stopWords: stop}
}

// IsStopWord reports whether word is ignored by the analyzer.
func (ta *DefaultTextAnalyzer) IsStopWord(word string) bool {
	return ta.stopWords[strings.ToLower(word)]
}

// Tokenize splits text on anything that is not a letter or digit.
// Single-character tokens are dropped.
func (ta *DefaultTextAnalyzer) Tokenize(text string) []string {
	text = strings.ToLower(text)
	tokens := make([]string, 0)

	var currentWord strings.Builder
	flush := func() {
		if currentWord.Len() == 0 {
			return
		}
		word := currentWord.String()
		currentWord.Reset()
		if len([]rune(word)) < 2 || ta.stopWords[word] {
			return
		}
		tokens = append(tokens, word)
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			currentWord.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// Terms builds n-grams from 1 to maxN over the stop-word-free tokens, so a
// bigram may join two words that had a stop word between them.
func (ta *DefaultTextAnalyzer) Terms(text string, maxN int) []string {
	tokens := ta.Tokenize(text)
	if maxN < 1 {
		maxN = 1
	}

	terms := make([]string, 0, len(tokens)*maxN)
	terms = append(terms, tokens...)
	for n := 2; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}

	return terms
}
