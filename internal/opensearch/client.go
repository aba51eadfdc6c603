// Package opensearch is a thin authenticated HTTP wrapper over the OpenSearch
// REST API, scoped to what plan generation needs: a connectivity check, index
// listing, and a capped document sample with its field mapping.
package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kiranshivaraju/chaosplan/pkg/models"
)

// Sentinel errors for OpenSearch client failures.
var (
	ErrUnreachable = errors.New("opensearch unreachable")
	ErrQueryFailed = errors.New("opensearch query failed")
	ErrTimeout     = errors.New("opensearch request timeout")
)

// Client is the interface for sampling documents from an OpenSearch cluster.
// Credentials travel with each call; the client itself holds no per-request
// state.
type Client interface {
	Ping(ctx context.Context, cfg models.OpenSearchConfig) (string, error)
	Indices(ctx context.Context, cfg models.OpenSearchConfig) ([]models.IndexInfo, error)
	FetchIndexData(ctx context.Context, cfg models.OpenSearchConfig, index string) (*models.SampleBundle, error)
}

// HTTPClient implements Client over the OpenSearch REST API.
type HTTPClient struct {
	client     *http.Client
	sampleSize int
}

// NewHTTPClient creates an OpenSearch HTTP client. sampleSize caps how many
// documents FetchIndexData requests per index.
func NewHTTPClient(timeout time.Duration, sampleSize int) *HTTPClient {
	return &HTTPClient{
		client:     &http.Client{Timeout: timeout},
		sampleSize: sampleSize,
	}
}

// Ping checks connectivity and returns the cluster's version number.
func (c *HTTPClient) Ping(ctx context.Context, cfg models.OpenSearchConfig) (string, error) {
	body, err := c.get(ctx, cfg, "/")
	if err != nil {
		return "", err
	}

	var root struct {
		Version struct {
			Number string `json:"number"`
		} `json:"version"`
	}
	if err := json.Unmarshal(body, &root); err != nil {
		return "", fmt.Errorf("decoding cluster info: %w", err)
	}
	if root.Version.Number == "" {
		return "unknown", nil
	}
	return root.Version.Number, nil
}

// Indices lists the cluster's indices via _cat/indices.
func (c *HTTPClient) Indices(ctx context.Context, cfg models.OpenSearchConfig) ([]models.IndexInfo, error) {
	body, err := c.get(ctx, cfg, "/_cat/indices?format=json&h=index,health,status,docs.count,store.size,pri,rep")
	if err != nil {
		return nil, err
	}

	var indices []models.IndexInfo
	if err := json.Unmarshal(body, &indices); err != nil {
		return nil, fmt.Errorf("decoding indices response: %w", err)
	}
	if indices == nil {
		indices = []models.IndexInfo{}
	}
	return indices, nil
}

// FetchIndexData retrieves the field mapping and up to sampleSize documents
// from one index. Documents keep the order the cluster returned them in. A
// mapping fetch failure is tolerated; a search failure is not.
func (c *HTTPClient) FetchIndexData(ctx context.Context, cfg models.OpenSearchConfig, index string) (*models.SampleBundle, error) {
	bundle := &models.SampleBundle{}

	// Mapping first. The prompt can survive without it.
	if mapping, err := c.get(ctx, cfg, "/"+url.PathEscape(index)+"/_mapping"); err == nil {
		bundle.Mapping = mapping
	}

	// A plain match_all keeps the query valid on indices without sortable
	// timestamp fields.
	searchBody, err := json.Marshal(map[string]any{
		"size":  c.sampleSize,
		"query": map[string]any{"match_all": map[string]any{}},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding search body: %w", err)
	}

	body, err := c.post(ctx, cfg, "/"+url.PathEscape(index)+"/_search", searchBody)
	if err != nil {
		return nil, err
	}

	var search searchResponse
	if err := json.Unmarshal(body, &search); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	docs := make([]models.Document, 0, len(search.Hits.Hits))
	for _, hit := range search.Hits.Hits {
		docs = append(docs, hit.Source)
	}

	bundle.Documents = docs
	bundle.SampleSize = len(docs)
	bundle.TotalHits = search.Hits.Total.Value
	bundle.TookMS = search.Took
	return bundle, nil
}

func (c *HTTPClient) get(ctx context.Context, cfg models.OpenSearchConfig, path string) ([]byte, error) {
	return c.do(ctx, cfg, http.MethodGet, path, nil)
}

func (c *HTTPClient) post(ctx context.Context, cfg models.OpenSearchConfig, path string, body []byte) ([]byte, error) {
	return c.do(ctx, cfg, http.MethodPost, path, body)
}

func (c *HTTPClient) do(ctx context.Context, cfg models.OpenSearchConfig, method, path string, body []byte) ([]byte, error) {
	u := strings.TrimRight(cfg.Endpoint, "/") + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cfg.Username != "" || cfg.Password != "" {
		req.SetBasicAuth(cfg.Username, cfg.Password)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyError(err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrQueryFailed, errorReason(resp.StatusCode, respBody))
	}

	return respBody, nil
}

// classifyError maps transport-level errors to sentinel errors.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}

// errorReason extracts the error type and reason from an OpenSearch error
// body, falling back to the raw status.
func errorReason(status int, body []byte) string {
	var parsed struct {
		Error struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Type != "" {
		if parsed.Error.Reason != "" {
			return fmt.Sprintf("%s: %s", parsed.Error.Type, parsed.Error.Reason)
		}
		return parsed.Error.Type
	}
	return fmt.Sprintf("status %d", status)
}

// --- OpenSearch response types ---

type searchResponse struct {
	Took int `json:"took"`
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source models.Document `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Compile-time check that HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)
