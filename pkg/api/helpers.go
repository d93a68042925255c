// Package api provides standardized helper functions for HTTP API responses.
package api

import (
	"net/http"

	appErrors "giftguru-backend/pkg/errors"

	"github.com/goccy/go-json"
)

// ErrorResponse is the body written by Error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Success sends a standardized successful HTTP response with optional JSON data.
func Success(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error sends a standardized error response with consistent JSON format.
func Error(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// FromError writes err using the status and message of its AppError.
func FromError(w http.ResponseWriter, err error) {
	Error(w, appErrors.StatusCode(err), appErrors.PublicMessage(err))
}
