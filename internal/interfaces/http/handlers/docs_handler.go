package handlers

import (
	"net/http"

	_ "giftguru-backend/internal/interfaces/http/docs"
	"giftguru-backend/pkg/api"

	"github.com/swaggo/swag"
)

// OpenAPI handles GET /api/v1/openapi.json with the registered Swagger document.
func OpenAPI(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		api.Error(w, http.StatusNotFound, "API documentation not registered")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}
