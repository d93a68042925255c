package recommendation

import (
	"math"
	"strings"
	"unicode"
)

// Rationale strings.
const (
	RationaleHighlyRated = "highly rated"
	RationalePopular     = "popular choice"
	RationaleGoodValue   = "good value"
	RationalePremium     = "premium option"
)

// Price positions.
const (
	PositionBudgetFriendly = "budget-friendly"
	PositionPremium        = "premium"
)

// EnrichmentConfig holds the thresholds used by the Enricher.
type EnrichmentConfig struct {
	DefaultAgeFactor  float64
	MinPriceFactor    float64
	RatingThreshold   float64
	ReviewThreshold   int
	PremiumMultiplier float64
	PremiumKeywords   []string
	// AgeMismatches lowers the age factor when an item mentions a keyword
	// that is a poor fit for an age group.
	AgeMismatches []AgeMismatch
}

// AgeMismatch is a coarse keyword heuristic for one age group.
type AgeMismatch struct {
	AgeGroup string
	Keyword  string
	Factor   float64
}

// DefaultEnrichmentConfig returns the standard thresholds.
func DefaultEnrichmentConfig() EnrichmentConfig {
	return EnrichmentConfig{
		DefaultAgeFactor:  0.8,
		MinPriceFactor:    0.2,
		RatingThreshold:   4.0,
		ReviewThreshold:   100,
		PremiumMultiplier: 1.5,
		PremiumKeywords:   []string{"premium"},
		AgeMismatches: []AgeMismatch{
			{AgeGroup: "13-17", Keyword: "mature", Factor: 0.3},
			{AgeGroup: "50+", Keyword: "gaming", Factor: 0.5},
		},
	}
}

// Enricher decorates ranked candidates with compatibility, rationale and
// optional flavor text.
type Enricher struct {
	config EnrichmentConfig
	picker Picker
}

// NewEnricher creates an enricher. A nil picker disables flavor text.
func NewEnricher(config EnrichmentConfig, picker Picker) *Enricher {
	return &Enricher{config: config, picker: picker}
}

// Enrich converts scored candidates into recommendations, preserving order.
// window is the budget the price factor and price position are measured
// against.
func (e *Enricher) Enrich(items []Scored, profile Profile, window BudgetWindow, withFlavor bool) []Recommendation {
	out := make([]Recommendation, 0, len(items))
	for _, s := range items {
		out = append(out, e.enrichOne(s, profile, window, withFlavor))
	}
	return out
}

func (e *Enricher) enrichOne(s Scored, profile Profile, window BudgetWindow, withFlavor bool) Recommendation {
	c := s.Candidate
	mid := (window.Min + window.Max) / 2

	ageFactor := e.AgeFactor(profile.AgeGroup, c)
	priceFactor := e.PriceFactor(c.Price, window)
	compatibility := math.Round((ageFactor+priceFactor)/2*100*10) / 10

	rec := Recommendation{
		Candidate:     c,
		Similarity:    clamp(s.Similarity, 0, 1),
		Compatibility: compatibility,
		Rationale:     e.rationale(c, mid),
		PricePosition: PositionPremium,
		Reason:        reason(profile),
	}
	if c.Price < mid {
		rec.PricePosition = PositionBudgetFriendly
	}
	if withFlavor {
		rec.FlavorText = PickFlavor(e.picker)
	}
	return rec
}

// AgeFactor returns the age-appropriateness factor for a candidate.
func (e *Enricher) AgeFactor(ageGroup string, c Candidate) float64 {
	text := strings.ToLower(c.Name + " " + c.Tags)
	for _, m := range e.config.AgeMismatches {
		if ageGroup == m.AgeGroup && strings.Contains(text, m.Keyword) {
			return m.Factor
		}
	}
	return e.config.DefaultAgeFactor
}

// PriceFactor peaks at the window midpoint and decays linearly to the edges,
// clamped to [MinPriceFactor, 1].
func (e *Enricher) PriceFactor(price float64, window BudgetWindow) float64 {
	width := window.Max - window.Min
	if width <= 0 {
		if price == window.Max {
			return 1
		}
		return e.config.MinPriceFactor
	}
	mid := (window.Min + window.Max) / 2
	return clamp(1-math.Abs(price-mid)/width, e.config.MinPriceFactor, 1)
}

func (e *Enricher) rationale(c Candidate, mid float64) []string {
	out := make([]string, 0, 4)
	if c.Rating > e.config.RatingThreshold {
		out = append(out, RationaleHighlyRated)
	}
	if c.ReviewCount > e.config.ReviewThreshold {
		out = append(out, RationalePopular)
	}
	if c.Price < mid {
		out = append(out, RationaleGoodValue)
	}
	if c.Price > mid*e.config.PremiumMultiplier || hasKeyword(c.Name, e.config.PremiumKeywords) {
		out = append(out, RationalePremium)
	}
	return out
}

func hasKeyword(title string, keywords []string) bool {
	lower := strings.ToLower(title)
	for _, k := range keywords {
		if k != "" && strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

func reason(profile Profile) string {
	word := strings.TrimFunc(profile.FirstInterest(), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if word == "" {
		word = "gifts"
	}
	return "Matches your interest in " + word
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
