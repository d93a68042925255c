// Package dto contains the request and response shapes of the HTTP API. DTOs
// are validated at the edge and converted into application requests; they
// carry no business logic.
package dto

import (
	"strings"

	"giftguru-backend/internal/application/services"
	"giftguru-backend/internal/domain/recommendation"
)

// Limits applied to request bodies.
const (
	MaxInterestsLength = 500
	MaxFieldLength     = 100
	MaxResultCount     = 50
	MaxFeedbackItems   = 50
)

// RecommendationRequest is the body of POST /api/v1/recommendations.
type RecommendationRequest struct {
	AgeGroup      string  `json:"ageGroup" validate:"notblank,max=100"`
	Gender        string  `json:"gender" validate:"max=100"`
	Interests     string  `json:"interests" validate:"max=500"`
	Occasion      string  `json:"occasion" validate:"max=100"`
	BudgetMin     float64 `json:"budgetMin" validate:"gte=0"`
	BudgetMax     float64 `json:"budgetMax" validate:"gte=0"`
	ResultCount   int     `json:"resultCount,omitempty" validate:"omitempty,gte=1,lte=50"`
	IncludeFlavor *bool   `json:"includeFlavor,omitempty"`
	UseExternal   *bool   `json:"useExternal,omitempty"`
}

// Profile converts the request into a recipient profile.
func (r RecommendationRequest) Profile() recommendation.Profile {
	return recommendation.Profile{
		AgeGroup:  strings.TrimSpace(r.AgeGroup),
		Gender:    strings.TrimSpace(r.Gender),
		Interests: strings.TrimSpace(r.Interests),
		Occasion:  strings.TrimSpace(r.Occasion),
		BudgetMin: r.BudgetMin,
		BudgetMax: r.BudgetMax,
	}
}

// ToCommand builds the application request. Flavor text is only attached when
// the caller asks for it; the external source is used when available unless
// the caller opts out.
func (r RecommendationRequest) ToCommand(externalAvailable bool) services.RecommendRequest {
	includeFlavor := r.IncludeFlavor != nil && *r.IncludeFlavor
	useExternal := externalAvailable
	if r.UseExternal != nil {
		useExternal = externalAvailable && *r.UseExternal
	}
	return services.RecommendRequest{
		Profile:       r.Profile(),
		Count:         r.ResultCount,
		IncludeFlavor: includeFlavor,
		UseExternal:   useExternal,
	}
}

// FeedbackRequest is the body of POST /api/v1/feedback.
type FeedbackRequest struct {
	Profile        recommendation.Profile `json:"profile"`
	RecommendedIDs []string               `json:"recommendedIds" validate:"notblank,max=50,dive,notblank,max=200"`
	Ratings        []int                  `json:"ratings" validate:"max=50,dive,gte=0,lte=5"`
}

// ToCommand builds the application request.
func (r FeedbackRequest) ToCommand() services.SubmitFeedbackRequest {
	return services.SubmitFeedbackRequest{
		Profile:        r.Profile,
		RecommendedIDs: r.RecommendedIDs,
		Ratings:        r.Ratings,
	}
}

// ValidationError is one field-level validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidationErrors collects field failures.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(v.Errors))
	for i, e := range v.Errors {
		parts[i] = e.Field + ": " + e.Message
	}
	return strings.Join(parts, "; ")
}
