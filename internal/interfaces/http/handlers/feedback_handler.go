package handlers

import (
	"net/http"

	"giftguru-backend/internal/application/services"
	"giftguru-backend/internal/interfaces/http/dto"
	"giftguru-backend/internal/interfaces/http/validation"
	"giftguru-backend/pkg/api"

	"go.uber.org/zap"
)

// FeedbackHandler accepts ratings of a recommendation list.
type FeedbackHandler struct {
	service   *services.FeedbackService
	validator *validation.Validator
	logger    *zap.Logger
}

// NewFeedbackHandler creates the handler.
func NewFeedbackHandler(service *services.FeedbackService, logger *zap.Logger) *FeedbackHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackHandler{
		service:   service,
		validator: validation.GetValidator(),
		logger:    logger,
	}
}

// Submit handles POST /api/v1/feedback.
// @Summary Submit feedback
// @Description Records ratings for a set of recommended items
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body dto.FeedbackRequest true "Ratings, one per recommended id"
// @Success 201 {object} dto.FeedbackResponse
// @Failure 400 {object} api.ErrorResponse "Invalid feedback"
// @Failure 503 {object} api.ErrorResponse "Feedback sink unavailable"
// @Router /feedback [post]
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.FeedbackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}
	if err := h.validator.Validate(req); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	record, err := h.service.Submit(r.Context(), req.ToCommand())
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	api.Success(w, http.StatusCreated, dto.FeedbackResponse{
		Success:       true,
		Message:       "Thank you for your feedback!",
		ID:            record.ID,
		AverageRating: record.AverageRating,
	})
}
