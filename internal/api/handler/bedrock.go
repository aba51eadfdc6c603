package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kiranshivaraju/chaosplan/internal/api/response"
	"github.com/kiranshivaraju/chaosplan/pkg/models"
)

// Pinger probes the inference endpoint and reports the resolved model id.
type Pinger interface {
	Ping(ctx context.Context, overrides models.BedrockConfig) (string, error)
}

// NewBedrockTestHandler returns the handler for
// POST /api/bedrock/test-connection. Body fields are optional overrides; an
// empty body probes the configured defaults.
func NewBedrockTestHandler(gateway Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.BedrockTestRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				response.Error(w, http.StatusBadRequest, "Invalid JSON body")
				return
			}
		}

		overrides := models.BedrockConfig{Model: req.Model, Region: req.Region}
		model, err := gateway.Ping(r.Context(), overrides)
		if err != nil {
			response.JSON(w, http.StatusOK, models.TestConnectionResponse{
				Success: false,
				Message: err.Error(),
			})
			return
		}

		response.JSON(w, http.StatusOK, models.TestConnectionResponse{
			Success: true,
			Message: fmt.Sprintf("Connected to AWS Bedrock with model '%s'", model),
		})
	}
}
