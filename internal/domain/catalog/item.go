// Package catalog holds the gift catalog: a fixed table of items loaded once
// and shared read-only by every recommendation request.
package catalog

import "strings"

// Item is one row of the gift catalog. Items are values and are never
// mutated after the catalog is loaded.
type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Tags        string  `json:"tags"`
	Description string  `json:"description"`
	Link        string  `json:"link"`
}

// CombinedText joins category, tags and description, the corpus used for
// full-text matching.
func (i Item) CombinedText() string {
	return strings.Join([]string{i.Category, i.Tags, i.Description}, " ")
}

// InBudget reports whether the item's price lies inside [min, max].
func (i Item) InBudget(min, max float64) bool {
	return i.Price >= min && i.Price <= max
}
