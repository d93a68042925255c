package handlers

import (
	"net/http"
	"time"

	"giftguru-backend/internal/application/services"
	"giftguru-backend/internal/infrastructure/productsource"
	"giftguru-backend/internal/interfaces/http/dto"
	"giftguru-backend/pkg/api"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDegraded  = "degraded"
)

// SourceStatus reports the state of the external product adapter.
type SourceStatus interface {
	Status() productsource.Status
}

// HealthHandler provides liveness, readiness and adapter status endpoints.
type HealthHandler struct {
	recommendations *services.RecommendationService
	source          SourceStatus
	version         string
	startTime       time.Time
}

// NewHealthHandler creates the handler. source is nil when the external
// product source is disabled.
func NewHealthHandler(recommendations *services.RecommendationService, source SourceStatus, version string) *HealthHandler {
	return &HealthHandler{
		recommendations: recommendations,
		source:          source,
		version:         version,
		startTime:       time.Now(),
	}
}

func (h *HealthHandler) snapshot() dto.HealthResponse {
	resp := dto.HealthResponse{
		Status:         StatusHealthy,
		Timestamp:      time.Now().UTC(),
		Version:        h.version,
		Uptime:         time.Since(h.startTime).Round(time.Second).String(),
		ExternalSource: "disabled",
	}

	if idx := h.recommendations.Index(); idx != nil {
		resp.CatalogLoaded = true
		resp.TotalItems = idx.Len()
	} else {
		resp.Status = StatusUnhealthy
	}

	if h.source != nil {
		resp.ExternalSource = "available"
		st := h.source.Status()
		if !st.Available || st.BreakerState == "open" {
			resp.ExternalSource = "unavailable"
			if resp.Status == StatusHealthy {
				resp.Status = StatusDegraded
			}
		}
	}
	return resp
}

// Health handles GET /health. It always answers 200 while the process runs.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	api.Success(w, http.StatusOK, h.snapshot())
}

// Ready handles GET /ready. It answers 503 until a catalog is loaded; a
// degraded external source does not make the service unready.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	resp := h.snapshot()
	status := http.StatusOK
	if !resp.CatalogLoaded {
		status = http.StatusServiceUnavailable
	}
	api.Success(w, status, resp)
}

// ProductSourceStatus handles GET /api/v1/product-source/status.
// @Summary External product source status
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.ProductSourceStatusResponse
// @Router /product-source/status [get]
func (h *HealthHandler) ProductSourceStatus(w http.ResponseWriter, r *http.Request) {
	if h.source == nil {
		api.Success(w, http.StatusOK, dto.ProductSourceStatusResponse{Enabled: false})
		return
	}
	st := h.source.Status()
	api.Success(w, http.StatusOK, dto.ProductSourceStatusResponse{Enabled: true, Status: &st})
}
