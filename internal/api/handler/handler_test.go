package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranshivaraju/chaosplan/internal/planner"
	"github.com/kiranshivaraju/chaosplan/pkg/models"
)

type mockSearcher struct {
	pingFn    func(ctx context.Context, cfg models.OpenSearchConfig) (string, error)
	indicesFn func(ctx context.Context, cfg models.OpenSearchConfig) ([]models.IndexInfo, error)
	fetchFn   func(ctx context.Context, cfg models.OpenSearchConfig, index string) (*models.SampleBundle, error)
}

func (m *mockSearcher) Ping(ctx context.Context, cfg models.OpenSearchConfig) (string, error) {
	return m.pingFn(ctx, cfg)
}

func (m *mockSearcher) Indices(ctx context.Context, cfg models.OpenSearchConfig) ([]models.IndexInfo, error) {
	return m.indicesFn(ctx, cfg)
}

func (m *mockSearcher) FetchIndexData(ctx context.Context, cfg models.OpenSearchConfig, index string) (*models.SampleBundle, error) {
	return m.fetchFn(ctx, cfg, index)
}

type mockPinger struct {
	pingFn func(ctx context.Context, overrides models.BedrockConfig) (string, error)
}

func (m *mockPinger) Ping(ctx context.Context, overrides models.BedrockConfig) (string, error) {
	return m.pingFn(ctx, overrides)
}

type mockPlanService struct {
	generateFn func(ctx context.Context, req models.GeneratePlanRequest) models.GeneratePlanResponse
	streamFn   func(ctx context.Context, req models.GeneratePlanRequest) <-chan planner.StreamEvent
}

func (m *mockPlanService) GeneratePlan(ctx context.Context, req models.GeneratePlanRequest) models.GeneratePlanResponse {
	return m.generateFn(ctx, req)
}

func (m *mockPlanService) GeneratePlanStream(ctx context.Context, req models.GeneratePlanRequest) <-chan planner.StreamEvent {
	return m.streamFn(ctx, req)
}

func postJSON(t *testing.T, h http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body models.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
}

func TestTestConnectionHandlerSuccess(t *testing.T) {
	search := &mockSearcher{
		pingFn: func(ctx context.Context, cfg models.OpenSearchConfig) (string, error) {
			assert.Equal(t, "https://search.example.com:9200", cfg.Endpoint)
			assert.Equal(t, "admin", cfg.Username)
			return "2.11.0", nil
		},
	}
	rec := postJSON(t, NewTestConnectionHandler(search), "/api/opensearch/test-connection",
		`{"endpoint":"https://search.example.com:9200","username":"admin","password":"secret"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body models.TestConnectionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Contains(t, body.Message, "2.11.0")
}

func TestTestConnectionHandlerProbeFailureIs200(t *testing.T) {
	search := &mockSearcher{
		pingFn: func(ctx context.Context, cfg models.OpenSearchConfig) (string, error) {
			return "", errors.New("cluster unreachable")
		},
	}
	rec := postJSON(t, NewTestConnectionHandler(search), "/api/opensearch/test-connection",
		`{"endpoint":"https://down.example.com"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body models.TestConnectionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Message, "cluster unreachable")
}

func TestTestConnectionHandlerValidation(t *testing.T) {
	h := NewTestConnectionHandler(&mockSearcher{})

	rec := postJSON(t, h, "/api/opensearch/test-connection", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h, "/api/opensearch/test-connection", `{"username":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "endpoint is required")
}

func TestGetIndicesHandler(t *testing.T) {
	search := &mockSearcher{
		indicesFn: func(ctx context.Context, cfg models.OpenSearchConfig) ([]models.IndexInfo, error) {
			return []models.IndexInfo{
				{Index: "app-logs", Health: "green", Status: "open", DocsCount: "1042"},
			}, nil
		},
	}
	rec := postJSON(t, NewGetIndicesHandler(search), "/api/opensearch/indices",
		`{"endpoint":"https://search.example.com:9200"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body models.GetIndicesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Indices, 1)
	assert.Equal(t, "app-logs", body.Indices[0].Index)
}

func TestFetchIndexDataHandler(t *testing.T) {
	search := &mockSearcher{
		fetchFn: func(ctx context.Context, cfg models.OpenSearchConfig, index string) (*models.SampleBundle, error) {
			assert.Equal(t, "app-logs", index)
			return &models.SampleBundle{
				Documents:  []models.Document{{"message": "ok"}},
				Mapping:    json.RawMessage(`{"properties":{}}`),
				SampleSize: 1,
				TotalHits:  1,
			}, nil
		},
	}
	rec := postJSON(t, NewFetchIndexDataHandler(search), "/api/opensearch/fetch-data",
		`{"endpoint":"https://search.example.com:9200","index_name":"app-logs"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body models.FetchIndexDataResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.SampleSize)
	require.Len(t, body.Documents, 1)
}

func TestFetchIndexDataHandlerValidation(t *testing.T) {
	h := NewFetchIndexDataHandler(&mockSearcher{})

	rec := postJSON(t, h, "/api/opensearch/fetch-data", `{"endpoint":"https://x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "index_name is required")
}

func TestBedrockTestHandler(t *testing.T) {
	gateway := &mockPinger{
		pingFn: func(ctx context.Context, overrides models.BedrockConfig) (string, error) {
			assert.Equal(t, "custom-model", overrides.Model)
			return "custom-model", nil
		},
	}
	rec := postJSON(t, NewBedrockTestHandler(gateway), "/api/bedrock/test-connection",
		`{"model":"custom-model","region":"us-east-1"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body models.TestConnectionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Contains(t, body.Message, "custom-model")
}

func TestBedrockTestHandlerEmptyBodyUsesDefaults(t *testing.T) {
	gateway := &mockPinger{
		pingFn: func(ctx context.Context, overrides models.BedrockConfig) (string, error) {
			assert.Empty(t, overrides.Model)
			return "default-model", nil
		},
	}
	rec := postJSON(t, NewBedrockTestHandler(gateway), "/api/bedrock/test-connection", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "default-model")
}

func TestGeneratePlanHandlerUpstreamFailureIs200(t *testing.T) {
	svc := &mockPlanService{
		generateFn: func(ctx context.Context, req models.GeneratePlanRequest) models.GeneratePlanResponse {
			return models.GeneratePlanResponse{
				Error:   "failed to fetch index data: connection refused",
				Metrics: models.Metrics{StartTime: 1700000000},
			}
		},
	}
	rec := postJSON(t, NewGeneratePlanHandler(svc), "/api/chaos/generate",
		`{"index_name":"app-logs","opensearch_config":{"endpoint":"https://x"}}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body models.GeneratePlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Error, "failed to fetch index data")
	assert.Equal(t, float64(1700000000), body.Metrics.StartTime)
}

func TestGeneratePlanHandlerValidation(t *testing.T) {
	h := NewGeneratePlanHandler(&mockPlanService{})

	rec := postJSON(t, h, "/api/chaos/generate", `{"opensearch_config":{"endpoint":"https://x"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "index_name is required")

	rec = postJSON(t, h, "/api/chaos/generate", `{"index_name":"app-logs"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "endpoint is required")
}

func streamOf(events ...planner.StreamEvent) <-chan planner.StreamEvent {
	ch := make(chan planner.StreamEvent, len(events))
	for _, ev := range events {
		ch <- ev
	}
	close(ch)
	return ch
}

func TestGeneratePlanStreamHandlerFramesSSE(t *testing.T) {
	svc := &mockPlanService{
		streamFn: func(ctx context.Context, req models.GeneratePlanRequest) <-chan planner.StreamEvent {
			return streamOf(
				planner.StreamEvent{Fragment: "## Plan"},
				planner.StreamEvent{Fragment: "Scenario 1\nScenario 2"},
			)
		},
	}
	rec := postJSON(t, NewGeneratePlanStreamHandler(svc), "/api/chaos/generate-stream",
		`{"index_name":"app-logs","opensearch_config":{"endpoint":"https://x"}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	want := "data: ## Plan\n\n" +
		"data: Scenario 1\ndata: Scenario 2\n\n"
	assert.Equal(t, want, rec.Body.String())
}

func TestGeneratePlanStreamHandlerErrorChunkIsLast(t *testing.T) {
	svc := &mockPlanService{
		streamFn: func(ctx context.Context, req models.GeneratePlanRequest) <-chan planner.StreamEvent {
			return streamOf(
				planner.StreamEvent{Fragment: "partial"},
				planner.StreamEvent{Err: errors.New("stream interrupted: stream cut")},
			)
		},
	}
	rec := postJSON(t, NewGeneratePlanStreamHandler(svc), "/api/chaos/generate-stream",
		`{"index_name":"app-logs","opensearch_config":{"endpoint":"https://x"}}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "data: partial\n\n"))

	lastEvent := body[strings.Index(body, "data: {"):]
	var chunk map[string]string
	raw := strings.TrimSuffix(strings.TrimPrefix(lastEvent, "data: "), "\n\n")
	require.NoError(t, json.Unmarshal([]byte(raw), &chunk))
	assert.Contains(t, chunk["error"], "stream cut")
}

func TestGeneratePlanStreamHandlerValidatesBeforeStreaming(t *testing.T) {
	svc := &mockPlanService{
		streamFn: func(ctx context.Context, req models.GeneratePlanRequest) <-chan planner.StreamEvent {
			t.Fatal("service must not be called for an invalid request")
			return nil
		},
	}
	rec := postJSON(t, NewGeneratePlanStreamHandler(svc), "/api/chaos/generate-stream", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEqual(t, "text/event-stream", rec.Header().Get("Content-Type"))
}
