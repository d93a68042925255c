package recommendation

import (
	"context"

	"giftguru-backend/internal/domain/catalog"
)

// Source names where a candidate came from.
type Source string

const (
	SourceLocal    Source = "local_catalog"
	SourceExternal Source = "external"
	SourceMixed    Source = "mixed"
	SourceNone     Source = "none"
)

// Candidate is a rankable product from either the local catalog or the
// external product source. Rating and ReviewCount are zero for local items.
type Candidate struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency,omitempty"`
	Category    string  `json:"category,omitempty"`
	Tags        string  `json:"-"`
	Description string  `json:"description,omitempty"`
	Link        string  `json:"link"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	ReviewCount int     `json:"reviewCount,omitempty"`
	Source      Source  `json:"source"`
}

// CandidateFromItem wraps a catalog item.
func CandidateFromItem(item catalog.Item) Candidate {
	return Candidate{
		ID:          item.ID,
		Name:        item.Name,
		Price:       item.Price,
		Category:    item.Category,
		Tags:        item.Tags,
		Description: item.Description,
		Link:        item.Link,
		Source:      SourceLocal,
	}
}

// ExternalProduct is one result of the remote product search. The ID is the
// remote catalog's opaque identifier (an ASIN) and is only used for
// deduplication.
type ExternalProduct struct {
	ID          string  `json:"asin"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
	ImageURL    string  `json:"imageUrl"`
	Link        string  `json:"link"`
}

// Candidate converts the product into a rankable candidate.
func (p ExternalProduct) Candidate() Candidate {
	return Candidate{
		ID:          p.ID,
		Name:        p.Title,
		Price:       p.Price,
		Currency:    p.Currency,
		Link:        p.Link,
		ImageURL:    p.ImageURL,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		Source:      SourceExternal,
	}
}

// SearchQuery is the request sent to a ProductSource.
type SearchQuery struct {
	Keywords   string
	MinPrice   float64
	MaxPrice   float64
	MaxResults int
}

// ProductSource is the external collaborator that searches a remote catalog.
// Implementations may return an empty list; results are never authoritative.
type ProductSource interface {
	Search(ctx context.Context, query SearchQuery) ([]ExternalProduct, error)
}

// Scored is a candidate with its raw similarity to the profile.
type Scored struct {
	Candidate  Candidate
	Similarity float64
}

// Recommendation is the enriched, caller-facing result.
type Recommendation struct {
	Candidate
	Similarity    float64  `json:"similarityScore"`
	Compatibility float64  `json:"compatibilityScore"`
	Rationale     []string `json:"rationale"`
	PricePosition string   `json:"pricePosition"`
	Reason        string   `json:"reason,omitempty"`
	FlavorText    string   `json:"flavorText,omitempty"`
}

// BudgetWindow is the price range candidates were filtered against.
type BudgetWindow struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether price lies within the window.
func (w BudgetWindow) Contains(price float64) bool {
	return price >= w.Min && price <= w.Max
}
