// Package validation validates HTTP request DTOs with struct tags and a few
// cross-field rules, and renders failures as field-level errors.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"giftguru-backend/internal/interfaces/http/dto"

	"github.com/go-playground/validator/v10"
)

// Validator wraps a configured validator.Validate.
type Validator struct {
	validate *validator.Validate
}

var (
	instance *Validator
	once     sync.Once
)

// GetValidator returns the shared validator instance.
func GetValidator() *Validator {
	once.Do(func() {
		instance = NewValidator()
	})
	return instance
}

// NewValidator creates a validator that reports JSON field names.
func NewValidator() *Validator {
	v := &Validator{validate: validator.New()}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.validate.RegisterValidation("notblank", notBlank)
	v.validate.RegisterStructValidation(budgetStructLevel, dto.RecommendationRequest{})
	v.validate.RegisterStructValidation(feedbackStructLevel, dto.FeedbackRequest{})

	return v
}

// Validate checks i and returns dto.ValidationErrors on failure.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var out dto.ValidationErrors
	for _, e := range validationErrors {
		out.Errors = append(out.Errors, dto.ValidationError{
			Field:   e.Field(),
			Message: errorMessage(e.Tag(), e.Param()),
			Code:    strings.ToUpper(e.Tag()),
		})
	}
	return out
}

func errorMessage(tag, param string) string {
	switch tag {
	case "required", "notblank":
		return "This field is required"
	case "max":
		return fmt.Sprintf("Must be at most %s", param)
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", param)
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", param)
	case "budgetorder":
		return "budgetMin must not exceed budgetMax"
	case "ratingcount":
		return "Must have one rating per recommended id"
	default:
		return fmt.Sprintf("Failed %s validation", tag)
	}
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return strings.TrimSpace(field.String()) != ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return field.Len() > 0
	default:
		return !field.IsZero()
	}
}

func budgetStructLevel(sl validator.StructLevel) {
	req := sl.Current().Interface().(dto.RecommendationRequest)
	if req.BudgetMin > req.BudgetMax {
		sl.ReportError(req.BudgetMax, "budgetMax", "BudgetMax", "budgetorder", "")
	}
}

func feedbackStructLevel(sl validator.StructLevel) {
	req := sl.Current().Interface().(dto.FeedbackRequest)
	if len(req.Ratings) != len(req.RecommendedIDs) {
		sl.ReportError(req.Ratings, "ratings", "Ratings", "ratingcount", "")
	}
}
