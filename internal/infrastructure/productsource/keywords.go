package productsource

import (
	"context"
	"strings"

	"giftguru-backend/internal/domain/recommendation"

	"go.uber.org/zap"
)

// ageKeywords steer the remote search towards products suited to an age group.
var ageKeywords = map[string][]string{
	"13-17": {"teen", "student", "gaming", "trendy", "tech"},
	"18-25": {"college", "young adult", "lifestyle", "gadgets", "fashion"},
	"26-35": {"professional", "home", "fitness", "premium", "quality"},
	"36-50": {"family", "luxury", "practical", "wellness", "hobby"},
	"50+":   {"comfort", "classic", "health", "traditional", "relaxation"},
}

const (
	broaderWords      = 3
	broaderMaxResults = 3
)

// Keywords combines the interests with the age group's keywords.
func Keywords(interests, ageGroup string) string {
	parts := []string{strings.TrimSpace(interests)}
	parts = append(parts, ageKeywords[ageGroup]...)
	return strings.TrimSpace(strings.Join(parts, " "))
}

// ProfileSearcher turns a profile into one or more remote searches.
type ProfileSearcher struct {
	source recommendation.ProductSource
	logger *zap.Logger
}

// NewProfileSearcher creates a searcher over source.
func NewProfileSearcher(source recommendation.ProductSource, logger *zap.Logger) *ProfileSearcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileSearcher{source: source, logger: logger}
}

// Search runs the primary keyword search. If it yields fewer than half of
// maxResults, up to three interest words are searched as "<word> gift".
// Results are deduplicated by ID and truncated to maxResults. Only the
// primary search error is returned; broader search failures are logged.
func (s *ProfileSearcher) Search(ctx context.Context, profile recommendation.Profile, window recommendation.BudgetWindow, maxResults int) ([]recommendation.ExternalProduct, error) {
	if s.source == nil || maxResults <= 0 {
		return []recommendation.ExternalProduct{}, nil
	}

	products, err := s.source.Search(ctx, recommendation.SearchQuery{
		Keywords:   Keywords(profile.Interests, profile.AgeGroup),
		MinPrice:   window.Min,
		MaxPrice:   window.Max,
		MaxResults: maxResults,
	})
	if err != nil {
		return nil, err
	}

	if len(products) < maxResults/2 {
		words := strings.Fields(strings.ToLower(profile.Interests))
		if len(words) > broaderWords {
			words = words[:broaderWords]
		}
		for _, word := range words {
			word = strings.Trim(word, ",.;:!?")
			if len(word) <= 3 {
				continue
			}

			more, err := s.source.Search(ctx, recommendation.SearchQuery{
				Keywords:   word + " gift",
				MinPrice:   window.Min,
				MaxPrice:   window.Max,
				MaxResults: broaderMaxResults,
			})
			if err != nil {
				s.logger.Warn("Broader external search failed", zap.String("word", word), zap.Error(err))
				if ctx.Err() != nil {
					break
				}
				continue
			}
			products = append(products, more...)
			if len(products) >= maxResults {
				break
			}
		}
	}

	return dedupe(products, maxResults), nil
}

func dedupe(products []recommendation.ExternalProduct, max int) []recommendation.ExternalProduct {
	seen := make(map[string]struct{}, len(products))
	out := make([]recommendation.ExternalProduct, 0, len(products))
	for _, p := range products {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
		if len(out) == max {
			break
		}
	}
	return out
}
