package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sequencePicker struct {
	seq []int
	pos int
}

func (s *sequencePicker) Intn(n int) int {
	v := s.seq[s.pos%len(s.seq)] % n
	s.pos++
	return v
}

func TestEnricher_PriceFactor(t *testing.T) {
	e := NewEnricher(DefaultEnrichmentConfig(), nil)
	window := BudgetWindow{Min: 20, Max: 100}

	tests := []struct {
		name  string
		price float64
		want  float64
	}{
		{"midpoint", 60, 1.0},
		{"quarter", 40, 0.75},
		{"edge", 20, 0.5},
		{"far outside clamps", 500, 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, e.PriceFactor(tt.price, window), 1e-9)
		})
	}

	t.Run("zero width window", func(t *testing.T) {
		assert.Equal(t, 1.0, e.PriceFactor(50, BudgetWindow{Min: 50, Max: 50}))
		assert.Equal(t, 0.2, e.PriceFactor(40, BudgetWindow{Min: 50, Max: 50}))
	})
}

func TestEnricher_AgeFactor(t *testing.T) {
	e := NewEnricher(DefaultEnrichmentConfig(), nil)

	assert.Equal(t, 0.8, e.AgeFactor("26-35", Candidate{Name: "Mature Whisky Set"}))
	assert.Equal(t, 0.3, e.AgeFactor("13-17", Candidate{Name: "Mature Whisky Set"}))
	assert.Equal(t, 0.5, e.AgeFactor("50+", Candidate{Name: "Headset", Tags: "gaming audio"}))
	assert.Equal(t, 0.8, e.AgeFactor("13-17", Candidate{Name: "Gaming Mouse"}))
}

func TestEnricher_Enrich(t *testing.T) {
	e := NewEnricher(DefaultEnrichmentConfig(), &sequencePicker{seq: []int{1}})
	profile := Profile{AgeGroup: "18-25", Interests: "gaming, rgb", BudgetMin: 20, BudgetMax: 100}
	window := BudgetWindow{Min: 20, Max: 100}

	recs := e.Enrich([]Scored{
		{Candidate: Candidate{ID: "a", Name: "Premium Headset", Price: 95, Rating: 4.6, ReviewCount: 250}, Similarity: 0.7},
		{Candidate: Candidate{ID: "b", Name: "Mouse Pad", Price: 30}, Similarity: 0.4},
	}, profile, window, true)

	require.Len(t, recs, 2)

	a := recs[0]
	assert.Equal(t, "a", a.ID)
	assert.Equal(t, 0.7, a.Similarity)
	// age 0.8, price 1 - 35/80 = 0.5625 -> 68.125 -> 68.1
	assert.InDelta(t, 68.1, a.Compatibility, 1e-9)
	assert.Equal(t, []string{RationaleHighlyRated, RationalePopular, RationalePremium}, a.Rationale)
	assert.Equal(t, PositionPremium, a.PricePosition)
	assert.Equal(t, "Matches your interest in gaming", a.Reason)
	assert.Equal(t, FlavorPhrases[1], a.FlavorText)

	b := recs[1]
	assert.Equal(t, []string{RationaleGoodValue}, b.Rationale)
	assert.Equal(t, PositionBudgetFriendly, b.PricePosition)
	assert.GreaterOrEqual(t, b.Compatibility, 0.0)
	assert.LessOrEqual(t, b.Compatibility, 100.0)
}

func TestEnricher_PremiumByPrice(t *testing.T) {
	e := NewEnricher(DefaultEnrichmentConfig(), nil)
	// widened window [0, 120], midpoint 60, 1.5x = 90
	recs := e.Enrich([]Scored{{Candidate: Candidate{ID: "x", Name: "Watch", Price: 100}}},
		Profile{BudgetMin: 50, BudgetMax: 100}, BudgetWindow{Min: 0, Max: 120}, false)

	require.Len(t, recs, 1)
	assert.Contains(t, recs[0].Rationale, RationalePremium)
	assert.Empty(t, recs[0].FlavorText)
	assert.Equal(t, "Matches your interest in gifts", recs[0].Reason)
}

func TestEnricher_NoRationale(t *testing.T) {
	e := NewEnricher(DefaultEnrichmentConfig(), nil)
	recs := e.Enrich([]Scored{{Candidate: Candidate{ID: "x", Name: "Lamp", Price: 60}}},
		Profile{BudgetMin: 20, BudgetMax: 100}, BudgetWindow{Min: 20, Max: 100}, false)

	require.Len(t, recs, 1)
	assert.Empty(t, recs[0].Rationale)
	assert.Equal(t, 90.0, recs[0].Compatibility)
}

func TestPickFlavor(t *testing.T) {
	assert.Empty(t, PickFlavor(nil))
	assert.Equal(t, FlavorPhrases[0], PickFlavor(&sequencePicker{seq: []int{0}}))

	p := NewSeededPicker(42)
	for i := 0; i < 20; i++ {
		assert.Contains(t, FlavorPhrases, PickFlavor(p))
	}
}

func TestProfile(t *testing.T) {
	p := Profile{AgeGroup: "18-25", Gender: " Female ", Interests: "Gaming RGB", Occasion: "Birthday", BudgetMin: 10, BudgetMax: 50}
	assert.Equal(t, "18-25 female gaming rgb birthday", p.Text())
	assert.Equal(t, 30.0, p.Midpoint())
	assert.Equal(t, "Gaming", p.FirstInterest())
	assert.NoError(t, p.Validate())

	assert.Equal(t, "", Profile{}.Text())
	assert.Equal(t, "", Profile{Interests: "   "}.FirstInterest())
}
