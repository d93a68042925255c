// Package handlers implements the HTTP endpoints of the recommendation API.
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"giftguru-backend/internal/interfaces/http/dto"
	"giftguru-backend/internal/middleware"
	"giftguru-backend/pkg/api"
	appErrors "giftguru-backend/pkg/errors"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type validationResponse struct {
	Error  string                `json:"error"`
	Errors []dto.ValidationError `json:"errors"`
}

// decodeJSON reads a single JSON document from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return appErrors.NewValidation("request body is empty", nil)
	}
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return appErrors.NewValidation("request body is empty", nil)
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return appErrors.NewValidation(fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit), nil)
		}
		return appErrors.NewValidation("invalid JSON body", err)
	}
	return nil
}

// handleServiceError converts service errors to appropriate HTTP responses
func handleServiceError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var verrs dto.ValidationErrors
	if errors.As(err, &verrs) {
		api.Success(w, http.StatusBadRequest, validationResponse{Error: "validation failed", Errors: verrs.Errors})
		return
	}

	status := appErrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("request_id", middleware.GetRequestIDFromRequest(r)),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	api.FromError(w, err)
}
