package dto

import (
	"time"

	"giftguru-backend/internal/infrastructure/productsource"
)

// FeedbackResponse acknowledges a stored feedback record.
type FeedbackResponse struct {
	Success       bool    `json:"success"`
	Message       string  `json:"message"`
	ID            string  `json:"id"`
	AverageRating float64 `json:"averageRating"`
}

// HealthResponse is returned by /health and /ready.
type HealthResponse struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	Version        string    `json:"version,omitempty"`
	Uptime         string    `json:"uptime,omitempty"`
	CatalogLoaded  bool      `json:"catalogLoaded"`
	TotalItems     int       `json:"totalItems"`
	ExternalSource string    `json:"externalSource"`
}

// ProductSourceStatusResponse reports the external adapter state.
type ProductSourceStatusResponse struct {
	Enabled bool                  `json:"enabled"`
	Status  *productsource.Status `json:"status,omitempty"`
}
