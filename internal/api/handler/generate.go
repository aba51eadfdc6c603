package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kiranshivaraju/chaosplan/internal/api/response"
	"github.com/kiranshivaraju/chaosplan/internal/planner"
	"github.com/kiranshivaraju/chaosplan/pkg/models"
)

// PlanService runs the two plan-generation flows.
type PlanService interface {
	GeneratePlan(ctx context.Context, req models.GeneratePlanRequest) models.GeneratePlanResponse
	GeneratePlanStream(ctx context.Context, req models.GeneratePlanRequest) <-chan planner.StreamEvent
}

func decodeGenerateRequest(w http.ResponseWriter, r *http.Request) (models.GeneratePlanRequest, bool) {
	var req models.GeneratePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return req, false
	}
	if req.IndexName == "" {
		response.Error(w, http.StatusBadRequest, "index_name is required")
		return req, false
	}
	if req.OpenSearchConfig.Endpoint == "" {
		response.Error(w, http.StatusBadRequest, "opensearch_config.endpoint is required")
		return req, false
	}
	return req, true
}

// NewGeneratePlanHandler returns the handler for POST /api/chaos/generate.
// Past request validation every outcome is a 200 envelope; upstream failure
// is reported in the body with its metrics, not as an HTTP error.
func NewGeneratePlanHandler(svc PlanService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeGenerateRequest(w, r)
		if !ok {
			return
		}
		response.JSON(w, http.StatusOK, svc.GeneratePlan(r.Context(), req))
	}
}

// NewGeneratePlanStreamHandler returns the handler for
// POST /api/chaos/generate-stream. Fragments go out as server-sent events; a
// terminal failure after streaming has begun is delivered as a final
// {"error": ...} data chunk since the 200 status is already committed.
func NewGeneratePlanStreamHandler(svc PlanService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeGenerateRequest(w, r)
		if !ok {
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			response.Error(w, http.StatusInternalServerError, "Streaming unsupported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		for ev := range svc.GeneratePlanStream(r.Context(), req) {
			if ev.Err != nil {
				writeSSE(w, errorChunk(ev.Err))
				flusher.Flush()
				return
			}
			writeSSE(w, ev.Fragment)
			flusher.Flush()
		}
	}
}

// writeSSE frames one event. A fragment with embedded newlines becomes
// multiple data: lines of the same event, which reassemble losslessly on the
// client.
func writeSSE(w http.ResponseWriter, payload string) {
	for _, line := range strings.Split(payload, "\n") {
		w.Write([]byte("data: " + line + "\n"))
	}
	w.Write([]byte("\n"))
}

func errorChunk(err error) string {
	raw, marshalErr := json.Marshal(map[string]string{"error": err.Error()})
	if marshalErr != nil {
		return `{"error": "plan generation failed"}`
	}
	return string(raw)
}
