package handlers

import (
	"net/http"

	"giftguru-backend/internal/application/services"
	"giftguru-backend/internal/interfaces/http/dto"
	"giftguru-backend/internal/interfaces/http/validation"
	"giftguru-backend/pkg/api"

	"go.uber.org/zap"
)

// RecommendationHandler serves recommendations and catalog statistics.
type RecommendationHandler struct {
	service   *services.RecommendationService
	validator *validation.Validator
	logger    *zap.Logger
}

// NewRecommendationHandler creates the handler.
func NewRecommendationHandler(service *services.RecommendationService, logger *zap.Logger) *RecommendationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecommendationHandler{
		service:   service,
		validator: validation.GetValidator(),
		logger:    logger,
	}
}

// Recommend handles POST /api/v1/recommendations.
// @Summary Recommend gifts
// @Description Ranks catalog items against the recipient profile within the budget, widening the budget when nothing fits
// @Tags recommendations
// @Accept json
// @Produce json
// @Param request body dto.RecommendationRequest true "Recipient profile and budget"
// @Success 200 {object} services.RecommendResult
// @Failure 400 {object} api.ErrorResponse "Invalid profile or budget"
// @Failure 429 {object} api.ErrorResponse "Rate limited"
// @Failure 503 {object} api.ErrorResponse "Catalog not loaded"
// @Router /recommendations [post]
func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req dto.RecommendationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}
	if err := h.validator.Validate(req); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	result, err := h.service.Recommend(r.Context(), req.ToCommand(h.service.HasExternalSource()))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	api.Success(w, http.StatusOK, result)
}

// Stats handles GET /api/v1/stats.
// @Summary Catalog statistics
// @Tags catalog
// @Produce json
// @Success 200 {object} services.CatalogStats
// @Failure 503 {object} api.ErrorResponse "Catalog not loaded"
// @Router /stats [get]
func (h *RecommendationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats()
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}
	api.Success(w, http.StatusOK, stats)
}
