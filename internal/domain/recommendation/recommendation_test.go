package recommendation

import (
	"errors"
	"testing"

	"giftguru-backend/internal/domain/catalog"
	"giftguru-backend/internal/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestIndex(t *testing.T, items ...catalog.Item) *CatalogIndex {
	t.Helper()
	idx, err := BuildIndex(catalog.New(items), DefaultIndexConfig())
	require.NoError(t, err)
	return idx
}

func keyboardAndMat() []catalog.Item {
	return []catalog.Item{
		{ID: "kb", Name: "RGB Keyboard", Price: 60, Tags: "gaming rgb keyboard"},
		{ID: "mat", Name: "Yoga Mat", Price: 40, Tags: "yoga wellness"},
	}
}

func TestMatcher_RanksClosestItemFirst(t *testing.T) {
	idx := buildTestIndex(t, keyboardAndMat()...)
	m := NewMatcher(DefaultMatcherConfig(), nil, nil)

	res, err := m.Match(idx, Profile{Interests: "gaming rgb keyboard", BudgetMin: 30, BudgetMax: 80}, 5)
	require.NoError(t, err)
	require.Len(t, res.Items, 2)

	assert.Equal(t, "RGB Keyboard", res.Items[0].Candidate.Name)
	assert.InDelta(t, 1.0, res.Items[0].Similarity, 1e-9)
	assert.Equal(t, "Yoga Mat", res.Items[1].Candidate.Name)
	assert.Less(t, res.Items[1].Similarity, res.Items[0].Similarity)
	assert.False(t, res.Widened)
	assert.Equal(t, BudgetWindow{Min: 30, Max: 80}, res.Window)
}

func TestMatcher_EmptyWhenWideningFindsNothing(t *testing.T) {
	idx := buildTestIndex(t, keyboardAndMat()...)
	m := NewMatcher(DefaultMatcherConfig(), nil, nil)

	res, err := m.Match(idx, Profile{Interests: "gaming", BudgetMin: 5, BudgetMax: 15}, 5)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.True(t, res.Widened)
	assert.Equal(t, BudgetWindow{Min: 0, Max: 35}, res.Window)
}

func TestMatcher_WidensToSlack(t *testing.T) {
	idx := buildTestIndex(t, keyboardAndMat()...)
	m := NewMatcher(DefaultMatcherConfig(), nil, nil)

	res, err := m.Match(idx, Profile{Interests: "yoga", BudgetMin: 10, BudgetMax: 25}, 5)
	require.NoError(t, err)
	assert.True(t, res.Widened)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "mat", res.Items[0].Candidate.ID)
}

func TestMatcher_SlackIsConfigurable(t *testing.T) {
	idx := buildTestIndex(t, keyboardAndMat()...)
	m := NewMatcher(MatcherConfig{DefaultK: 5, BudgetSlack: 5}, nil, nil)

	res, err := m.Match(idx, Profile{Interests: "yoga", BudgetMin: 10, BudgetMax: 25}, 5)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 30.0, res.Window.Max)
}

func TestMatcher_InvalidBudget(t *testing.T) {
	m := NewMatcher(DefaultMatcherConfig(), nil, nil)

	tests := []struct {
		name    string
		profile Profile
	}{
		{"min exceeds max", Profile{BudgetMin: 50, BudgetMax: 10}},
		{"negative min", Profile{BudgetMin: -1, BudgetMax: 10}},
		{"negative max", Profile{BudgetMin: 0, BudgetMax: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// nil index: the budget check must fail before the index is touched
			_, err := m.Match(nil, tt.profile, 5)
			var budgetErr *BudgetError
			require.ErrorAs(t, err, &budgetErr)
		})
	}
}

func TestMatcher_NilIndexIsNotFitted(t *testing.T) {
	m := NewMatcher(DefaultMatcherConfig(), nil, nil)
	_, err := m.Match(nil, Profile{BudgetMin: 0, BudgetMax: 10}, 5)
	assert.ErrorIs(t, err, services.ErrNotFitted)
}

func TestMatcher_EmptyInterestsScoresZero(t *testing.T) {
	idx := buildTestIndex(t, keyboardAndMat()...)
	m := NewMatcher(DefaultMatcherConfig(), nil, nil)

	res, err := m.Match(idx, Profile{BudgetMin: 0, BudgetMax: 100}, 5)
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	for _, s := range res.Items {
		assert.Equal(t, 0.0, s.Similarity)
	}
	// ties keep catalog order
	assert.Equal(t, "kb", res.Items[0].Candidate.ID)
	assert.Equal(t, "mat", res.Items[1].Candidate.ID)
}

func TestMatcher_TopKAndDefault(t *testing.T) {
	items := make([]catalog.Item, 0, 8)
	for i, tag := range []string{"a1", "b2", "c3", "d4", "e5", "f6", "g7", "h8"} {
		items = append(items, catalog.Item{ID: tag, Name: tag, Price: float64(10 + i), Tags: "gift " + tag})
	}
	idx := buildTestIndex(t, items...)
	m := NewMatcher(DefaultMatcherConfig(), nil, nil)

	res, err := m.Match(idx, Profile{Interests: "gift", BudgetMin: 0, BudgetMax: 100}, 3)
	require.NoError(t, err)
	assert.Len(t, res.Items, 3)

	res, err = m.Match(idx, Profile{Interests: "gift", BudgetMin: 0, BudgetMax: 100}, 0)
	require.NoError(t, err)
	assert.Len(t, res.Items, 5)
}

func TestMatcher_Deterministic(t *testing.T) {
	idx := buildTestIndex(t,
		catalog.Item{ID: "1", Name: "Board Game", Price: 30, Category: "games", Tags: "board game family"},
		catalog.Item{ID: "2", Name: "Puzzle", Price: 20, Category: "games", Tags: "puzzle family fun"},
		catalog.Item{ID: "3", Name: "Chess Set", Price: 45, Category: "games", Tags: "chess strategy board"},
	)
	m := NewMatcher(DefaultMatcherConfig(), nil, nil)
	p := Profile{Interests: "family board games", BudgetMin: 0, BudgetMax: 50}

	first, err := m.Match(idx, p, 3)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := m.Match(idx, p, 3)
		require.NoError(t, err)
		assert.Equal(t, first.Items, again.Items)
	}
}

type flakyCalculator struct {
	calls  int
	failOn int
	inner  services.SimilarityCalculator
}

func (f *flakyCalculator) Calculate(a, b services.Vector) (float64, error) {
	f.calls++
	if f.calls == f.failOn {
		return 0, errors.New("boom")
	}
	return f.inner.Calculate(a, b)
}

func TestMatcher_SkipsItemsThatFailToScore(t *testing.T) {
	idx := buildTestIndex(t, keyboardAndMat()...)
	calc := &flakyCalculator{failOn: 1, inner: services.NewCosineCalculator()}
	m := NewMatcher(DefaultMatcherConfig(), calc, nil)

	res, err := m.Match(idx, Profile{Interests: "gaming", BudgetMin: 0, BudgetMax: 100}, 5)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "mat", res.Items[0].Candidate.ID)
}

func TestBuildIndex_TagsCorpus(t *testing.T) {
	idx, err := BuildIndex(catalog.New([]catalog.Item{
		{ID: "1", Name: "Mug", Price: 10, Category: "kitchen", Tags: "coffee mug", Description: "ceramic"},
	}), IndexConfig{Corpus: CorpusTags})
	require.NoError(t, err)
	assert.Equal(t, CorpusTags, idx.Corpus())
	assert.NotContains(t, idx.Vectorizer().Vocabulary(), "kitchen")
	assert.Contains(t, idx.Vectorizer().Vocabulary(), "coffee")

	_, err = BuildIndex(catalog.New(nil), IndexConfig{Corpus: "bogus"})
	assert.Error(t, err)
}

func TestBuildIndex_EmptyCatalog(t *testing.T) {
	idx, err := BuildIndex(nil, DefaultIndexConfig())
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())

	m := NewMatcher(DefaultMatcherConfig(), nil, nil)
	res, err := m.Match(idx, Profile{Interests: "anything", BudgetMin: 0, BudgetMax: 10}, 5)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestScoreExternal(t *testing.T) {
	idx := buildTestIndex(t, keyboardAndMat()...)
	m := NewMatcher(DefaultMatcherConfig(), nil, nil)
	profile := Profile{Interests: "gaming keyboard", BudgetMin: 30, BudgetMax: 80}
	res, err := m.Match(idx, profile, 5)
	require.NoError(t, err)

	scored := m.ScoreExternal(idx, profile, []ExternalProduct{
		{ID: "B1", Title: "Cat Toy", Price: 50},
		{ID: "B2", Title: "Mechanical Gaming Keyboard", Price: 70},
		{ID: "B3", Title: "Gaming Keyboard Deluxe", Price: 500},
		{ID: "", Title: "No ID", Price: 50},
	}, res.Window)

	require.Len(t, scored, 2)
	assert.Equal(t, "B2", scored[0].Candidate.ID)
	assert.Equal(t, SourceExternal, scored[0].Candidate.Source)
	assert.Greater(t, scored[0].Similarity, 0.0)
	assert.Equal(t, 0.0, scored[1].Similarity)
}

func TestFuse(t *testing.T) {
	local := func(id string) Scored { return Scored{Candidate: Candidate{ID: id, Source: SourceLocal}} }
	ext := func(id string) Scored { return Scored{Candidate: Candidate{ID: id, Source: SourceExternal}} }

	tests := []struct {
		name      string
		primary   []Scored
		secondary []Scored
		k         int
		wantIDs   []string
		wantSrc   Source
	}{
		{"primary only", []Scored{local("a"), local("b")}, nil, 5, []string{"a", "b"}, SourceLocal},
		{"mixed and deduped", []Scored{local("a")}, []Scored{ext("a"), ext("x")}, 5, []string{"a", "x"}, SourceMixed},
		{"truncated", []Scored{local("a")}, []Scored{ext("x"), ext("y"), ext("z")}, 2, []string{"a", "x"}, SourceMixed},
		{"secondary only", nil, []Scored{ext("x")}, 5, []string{"x"}, SourceExternal},
		{"nothing", nil, nil, 5, []string{}, SourceNone},
		{"duplicate inside secondary", nil, []Scored{ext("x"), ext("x")}, 5, []string{"x"}, SourceExternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, src := Fuse(tt.primary, tt.secondary, tt.k)
			ids := make([]string, 0, len(got))
			for _, s := range got {
				ids = append(ids, s.Candidate.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantSrc, src)
		})
	}
}

func TestNeedsSecondary(t *testing.T) {
	tests := []struct {
		primary, k int
		want       bool
	}{
		{primary: 0, k: 5, want: true},
		{primary: 1, k: 5, want: true},
		{primary: 2, k: 5, want: false},
		{primary: 3, k: 5, want: false},
		{primary: 1, k: 4, want: true},
		{primary: 2, k: 4, want: false},
		{primary: 0, k: 1, want: false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NeedsSecondary(tt.primary, tt.k), "primary=%d k=%d", tt.primary, tt.k)
	}
}
