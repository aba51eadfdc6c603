package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kiranshivaraju/chaosplan/internal/api/response"
	"github.com/kiranshivaraju/chaosplan/pkg/models"
)

// Searcher defines the cluster operations the handlers depend on.
type Searcher interface {
	Ping(ctx context.Context, cfg models.OpenSearchConfig) (string, error)
	Indices(ctx context.Context, cfg models.OpenSearchConfig) ([]models.IndexInfo, error)
	FetchIndexData(ctx context.Context, cfg models.OpenSearchConfig, index string) (*models.SampleBundle, error)
}

// NewTestConnectionHandler returns the handler for
// POST /api/opensearch/test-connection. A failed probe is a 200 with
// success=false: the request itself succeeded, the cluster is the problem.
func NewTestConnectionHandler(search Searcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.TestConnectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if req.Endpoint == "" {
			response.Error(w, http.StatusBadRequest, "endpoint is required")
			return
		}

		cfg := models.OpenSearchConfig{Endpoint: req.Endpoint, Username: req.Username, Password: req.Password}
		version, err := search.Ping(r.Context(), cfg)
		if err != nil {
			response.JSON(w, http.StatusOK, models.TestConnectionResponse{
				Success: false,
				Message: err.Error(),
			})
			return
		}

		msg := "Connected to OpenSearch"
		if version != "" {
			msg = fmt.Sprintf("Connected to OpenSearch %s", version)
		}
		response.JSON(w, http.StatusOK, models.TestConnectionResponse{Success: true, Message: msg})
	}
}

// NewGetIndicesHandler returns the handler for POST /api/opensearch/indices.
func NewGetIndicesHandler(search Searcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.TestConnectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if req.Endpoint == "" {
			response.Error(w, http.StatusBadRequest, "endpoint is required")
			return
		}

		cfg := models.OpenSearchConfig{Endpoint: req.Endpoint, Username: req.Username, Password: req.Password}
		indices, err := search.Indices(r.Context(), cfg)
		if err != nil {
			response.JSON(w, http.StatusOK, models.GetIndicesResponse{Success: false, Error: err.Error()})
			return
		}

		response.JSON(w, http.StatusOK, models.GetIndicesResponse{Success: true, Indices: indices})
	}
}

// NewFetchIndexDataHandler returns the handler for
// POST /api/opensearch/fetch-data.
func NewFetchIndexDataHandler(search Searcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.FetchIndexDataRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if req.Endpoint == "" {
			response.Error(w, http.StatusBadRequest, "endpoint is required")
			return
		}
		if req.IndexName == "" {
			response.Error(w, http.StatusBadRequest, "index_name is required")
			return
		}

		cfg := models.OpenSearchConfig{Endpoint: req.Endpoint, Username: req.Username, Password: req.Password}
		bundle, err := search.FetchIndexData(r.Context(), cfg, req.IndexName)
		if err != nil {
			response.JSON(w, http.StatusOK, models.FetchIndexDataResponse{Success: false, Error: err.Error()})
			return
		}

		response.JSON(w, http.StatusOK, models.FetchIndexDataResponse{
			Success:    true,
			Mapping:    bundle.Mapping,
			Documents:  bundle.Documents,
			SampleSize: bundle.SampleSize,
			TotalHits:  bundle.TotalHits,
			TookMS:     bundle.TookMS,
		})
	}
}
