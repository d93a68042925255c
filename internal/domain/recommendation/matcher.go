package recommendation

import (
	"fmt"
	"sort"

	"giftguru-backend/internal/domain/services"

	"go.uber.org/zap"
)

// MatcherConfig configures budget filtering and result size.
type MatcherConfig struct {
	DefaultK int
	// BudgetSlack is the absolute amount, in catalog currency units, added to
	// the budget maximum when nothing fits the requested window.
	BudgetSlack float64
}

// DefaultMatcherConfig returns K=5 and a slack of 20.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		DefaultK:    5,
		BudgetSlack: 20,
	}
}

// MatchResult is the ranked output of Match.
type MatchResult struct {
	Items   []Scored
	Window  BudgetWindow
	Widened bool
}

// Matcher filters the catalog by budget and ranks what remains by similarity
// to the profile.
type Matcher struct {
	config     MatcherConfig
	calculator services.SimilarityCalculator
	logger     *zap.Logger
}

// NewMatcher creates a matcher. A nil calculator means cosine similarity.
func NewMatcher(config MatcherConfig, calculator services.SimilarityCalculator, logger *zap.Logger) *Matcher {
	if config.DefaultK <= 0 {
		config.DefaultK = DefaultMatcherConfig().DefaultK
	}
	if config.BudgetSlack < 0 {
		config.BudgetSlack = 0
	}
	if calculator == nil {
		calculator = services.NewCosineCalculator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Matcher{config: config, calculator: calculator, logger: logger}
}

// Config returns the matcher configuration.
func (m *Matcher) Config() MatcherConfig { return m.config }

// ResolveK applies the default to non-positive counts.
func (m *Matcher) ResolveK(k int) int {
	if k <= 0 {
		return m.config.DefaultK
	}
	return k
}

// Match returns at most k in-budget items ordered by similarity. When no item
// fits [min, max] the window is widened to [0, max+slack]; if that is still
// empty the result is empty, which is a valid "no match" outcome. Ties keep
// catalog order.
func (m *Matcher) Match(idx *CatalogIndex, profile Profile, k int) (MatchResult, error) {
	if err := profile.Validate(); err != nil {
		return MatchResult{}, err
	}
	if idx == nil {
		return MatchResult{}, fmt.Errorf("match: %w", services.ErrNotFitted)
	}
	k = m.ResolveK(k)

	window := BudgetWindow{Min: profile.BudgetMin, Max: profile.BudgetMax}
	positions := m.filter(idx, window)
	widened := false
	if len(positions) == 0 {
		window = BudgetWindow{Min: 0, Max: profile.BudgetMax + m.config.BudgetSlack}
		positions = m.filter(idx, window)
		widened = true
	}

	result := MatchResult{Window: window, Widened: widened, Items: []Scored{}}
	if len(positions) == 0 {
		return result, nil
	}

	profileVec, err := idx.vectorizer.Embed(profile.Text())
	if err != nil {
		return MatchResult{}, fmt.Errorf("embed profile: %w", err)
	}

	scored := make([]Scored, 0, len(positions))
	for _, pos := range positions {
		sim, err := m.calculator.Calculate(profileVec, idx.vectors[pos])
		if err != nil {
			m.logger.Warn("Skipping catalog item that could not be scored",
				zap.String("item_id", idx.candidates[pos].ID),
				zap.Error(err),
			)
			continue
		}
		scored = append(scored, Scored{Candidate: idx.candidates[pos], Similarity: sim})
	}

	result.Items = topK(scored, k)
	return result, nil
}

func (m *Matcher) filter(idx *CatalogIndex, window BudgetWindow) []int {
	positions := make([]int, 0)
	for i, c := range idx.candidates {
		if window.Contains(c.Price) {
			positions = append(positions, i)
		}
	}
	return positions
}

// ScoreExternal embeds external product titles with the index's vectorizer
// and scores them against the profile. Products outside the window or without
// an ID are dropped.
func (m *Matcher) ScoreExternal(idx *CatalogIndex, profile Profile, products []ExternalProduct, window BudgetWindow) []Scored {
	if idx == nil || len(products) == 0 {
		return nil
	}

	profileVec, err := idx.vectorizer.Embed(profile.Text())
	if err != nil {
		m.logger.Warn("Could not embed profile for external scoring", zap.Error(err))
		return nil
	}

	scored := make([]Scored, 0, len(products))
	for _, p := range products {
		if p.ID == "" || !window.Contains(p.Price) {
			continue
		}

		vec, err := idx.vectorizer.Embed(p.Title)
		if err != nil {
			m.logger.Warn("Skipping external product that could not be embedded",
				zap.String("product_id", p.ID),
				zap.Error(err),
			)
			continue
		}

		sim, err := m.calculator.Calculate(profileVec, vec)
		if err != nil {
			m.logger.Warn("Skipping external product that could not be scored",
				zap.String("product_id", p.ID),
				zap.Error(err),
			)
			continue
		}
		scored = append(scored, Scored{Candidate: p.Candidate(), Similarity: sim})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	return scored
}

func topK(scored []Scored, k int) []Scored {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}
