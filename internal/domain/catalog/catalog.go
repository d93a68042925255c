package catalog

import "sort"

// Catalog is the immutable in-memory gift table.
type Catalog struct {
	items []Item
	byID  map[string]int
}

// New builds a catalog from items. The slice is copied; later changes made by
// the caller are not visible through the catalog.
func New(items []Item) *Catalog {
	owned := make([]Item, len(items))
	copy(owned, items)

	byID := make(map[string]int, len(owned))
	for i, item := range owned {
		byID[item.ID] = i
	}

	return &Catalog{items: owned, byID: byID}
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Items returns a copy of the items in insertion order.
func (c *Catalog) Items() []Item {
	if c == nil {
		return nil
	}
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// At returns the item at position i in insertion order.
func (c *Catalog) At(i int) Item {
	return c.items[i]
}

// Get looks an item up by ID.
func (c *Catalog) Get(id string) (Item, bool) {
	if c == nil {
		return Item{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Stats summarises the catalog for the stats endpoint.
type Stats struct {
	TotalItems int      `json:"totalItems"`
	MinPrice   float64  `json:"minPrice"`
	MaxPrice   float64  `json:"maxPrice"`
	Categories []string `json:"categories"`
}

// Stats computes price range and the sorted set of categories.
func (c *Catalog) Stats() Stats {
	stats := Stats{TotalItems: c.Len(), Categories: []string{}}
	if c.Len() == 0 {
		return stats
	}

	seen := make(map[string]bool)
	stats.MinPrice = c.items[0].Price
	stats.MaxPrice = c.items[0].Price
	for _, item := range c.items {
		if item.Price < stats.MinPrice {
			stats.MinPrice = item.Price
		}
		if item.Price > stats.MaxPrice {
			stats.MaxPrice = item.Price
		}
		if item.Category != "" && !seen[item.Category] {
			seen[item.Category] = true
			stats.Categories = append(stats.Categories, item.Category)
		}
	}
	sort.Strings(stats.Categories)

	return stats
}
