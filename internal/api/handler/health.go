package handler

import (
	"net/http"

	"github.com/kiranshivaraju/chaosplan/internal/api/response"
	"github.com/kiranshivaraju/chaosplan/pkg/models"
)

// NewHealthHandler returns the handler for GET / and GET /health.
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, models.HealthResponse{
			Status:  "healthy",
			Message: "Chaos Plan Generator API is running",
		})
	}
}
