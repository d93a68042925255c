package productsource

import (
	"context"
	"errors"
	"testing"

	"giftguru-backend/internal/domain/recommendation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywords(t *testing.T) {
	assert.Equal(t, "gaming teen student gaming trendy tech", Keywords("gaming", "13-17"))
	assert.Equal(t, "cooking", Keywords(" cooking ", "unknown"))
}

func TestProfileSearcher_PrimaryEnough(t *testing.T) {
	primary := Keywords("gaming keyboards", "18-25")
	src := &fakeSource{results: map[string][]recommendation.ExternalProduct{
		primary: {{ID: "A"}, {ID: "B"}, {ID: "C"}},
	}}
	s := NewProfileSearcher(src, nil)

	got, err := s.Search(context.Background(),
		recommendation.Profile{AgeGroup: "18-25", Interests: "gaming keyboards"},
		recommendation.BudgetWindow{Min: 10, Max: 50}, 4)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	require.Equal(t, 1, src.callCount())
	assert.Equal(t, 10.0, src.calls[0].MinPrice)
	assert.Equal(t, 50.0, src.calls[0].MaxPrice)
	assert.Equal(t, 4, src.calls[0].MaxResults)
}

func TestProfileSearcher_Broadens(t *testing.T) {
	interests := "art, cooking fun travel hiking"
	src := &fakeSource{results: map[string][]recommendation.ExternalProduct{
		Keywords(interests, ""): {{ID: "A"}},
		"cooking gift":          {{ID: "A"}, {ID: "C1"}},
		"hiking gift":           {{ID: "H1"}},
	}}
	s := NewProfileSearcher(src, nil)

	got, err := s.Search(context.Background(), recommendation.Profile{Interests: interests},
		recommendation.BudgetWindow{Max: 100}, 10)
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"A", "C1"}, ids)

	keywords := make([]string, 0, len(src.calls))
	for _, q := range src.calls {
		keywords = append(keywords, q.Keywords)
	}
	// only the first three words are considered and "art," is too short
	assert.Equal(t, []string{interests, "cooking gift"}, keywords)
	assert.Equal(t, 3, src.calls[1].MaxResults)
}

func TestProfileSearcher_PrimaryError(t *testing.T) {
	src := &fakeSource{err: errors.New("down")}
	s := NewProfileSearcher(src, nil)

	_, err := s.Search(context.Background(), recommendation.Profile{Interests: "gaming"}, recommendation.BudgetWindow{Max: 10}, 5)
	assert.Error(t, err)
}

func TestProfileSearcher_Truncates(t *testing.T) {
	src := &fakeSource{results: map[string][]recommendation.ExternalProduct{
		"gaming": {{ID: "A"}, {ID: "A"}, {ID: "B"}, {ID: "C"}},
	}}
	s := NewProfileSearcher(src, nil)

	got, err := s.Search(context.Background(), recommendation.Profile{Interests: "gaming"}, recommendation.BudgetWindow{Max: 10}, 2)
	require.NoError(t, err)
	assert.Equal(t, []recommendation.ExternalProduct{{ID: "A"}, {ID: "B"}}, got)
}
