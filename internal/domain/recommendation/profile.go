// Package recommendation ranks catalog items against a recipient profile and
// decorates the ranking with compatibility scores and rationale.
package recommendation

import (
	"strings"
)

// Profile describes the gift recipient for a single request. It lives only
// for the duration of that request.
type Profile struct {
	AgeGroup  string  `json:"ageGroup"`
	Gender    string  `json:"gender,omitempty"`
	Interests string  `json:"interests"`
	Occasion  string  `json:"occasion"`
	BudgetMin float64 `json:"budgetMin"`
	BudgetMax float64 `json:"budgetMax"`
}

// Validate checks the budget window.
func (p Profile) Validate() error {
	if p.BudgetMin < 0 || p.BudgetMax < 0 {
		return &BudgetError{Min: p.BudgetMin, Max: p.BudgetMax, Reason: "budget cannot be negative"}
	}
	if p.BudgetMin > p.BudgetMax {
		return &BudgetError{Min: p.BudgetMin, Max: p.BudgetMax, Reason: "minimum exceeds maximum"}
	}
	return nil
}

// Text is the lowercased string embedded for matching.
func (p Profile) Text() string {
	parts := make([]string, 0, 4)
	for _, s := range []string{p.AgeGroup, p.Gender, p.Interests, p.Occasion} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Midpoint returns the centre of the budget window.
func (p Profile) Midpoint() float64 {
	return (p.BudgetMin + p.BudgetMax) / 2
}

// FirstInterest returns the first word of the interests text, or "" when the
// text is blank.
func (p Profile) FirstInterest() string {
	fields := strings.Fields(p.Interests)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
