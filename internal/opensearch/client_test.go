package opensearch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kiranshivaraju/chaosplan/pkg/models"
)

// --- helpers ---

func opensearchServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(handler)
}

func newTestClient(t *testing.T) *HTTPClient {
	t.Helper()
	return NewHTTPClient(5*time.Second, 100)
}

func configFor(ts *httptest.Server) models.OpenSearchConfig {
	return models.OpenSearchConfig{Endpoint: ts.URL, Username: "admin", Password: "secret"}
}

// --- Ping tests ---

func TestPing_ValidResponse(t *testing.T) {
	ts := opensearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "secret" {
			t.Errorf("missing or wrong basic auth")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"version": map[string]any{"number": "2.11.0"},
		})
	})
	defer ts.Close()

	version, err := newTestClient(t).Ping(context.Background(), configFor(ts))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != "2.11.0" {
		t.Errorf("version = %q, want 2.11.0", version)
	}
}

func TestPing_ServerDown(t *testing.T) {
	ts := opensearchServer(t, func(w http.ResponseWriter, r *http.Request) {})
	ts.Close() // connection refused

	_, err := newTestClient(t).Ping(context.Background(), configFor(ts))
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("error = %v, want ErrUnreachable", err)
	}
}

func TestPing_TrailingSlashEndpoint(t *testing.T) {
	ts := opensearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"version": map[string]any{"number": "2.11.0"}})
	})
	defer ts.Close()

	cfg := configFor(ts)
	cfg.Endpoint = ts.URL + "/"
	if _, err := newTestClient(t).Ping(context.Background(), cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// --- Indices tests ---

func TestIndices_ValidResponse(t *testing.T) {
	ts := opensearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/_cat/indices" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("format") != "json" {
			t.Errorf("format = %q, want json", q.Get("format"))
		}
		if q.Get("h") != "index,health,status,docs.count,store.size,pri,rep" {
			t.Errorf("unexpected h param: %s", q.Get("h"))
		}
		w.Write([]byte(`[
			{"index":"app-logs","health":"green","status":"open","docs.count":"1042","store.size":"2.1mb","pri":"1","rep":"1"},
			{"index":"audit","health":"yellow","status":"open","docs.count":"7","store.size":"12kb","pri":"1","rep":"1"}
		]`))
	})
	defer ts.Close()

	indices, err := newTestClient(t).Indices(context.Background(), configFor(ts))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(indices) != 2 {
		t.Fatalf("len(indices) = %d, want 2", len(indices))
	}
	if indices[0].Index != "app-logs" || indices[0].DocsCount != "1042" {
		t.Errorf("unexpected first index: %+v", indices[0])
	}
}

func TestIndices_EmptyCluster(t *testing.T) {
	ts := opensearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	defer ts.Close()

	indices, err := newTestClient(t).Indices(context.Background(), configFor(ts))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if indices == nil || len(indices) != 0 {
		t.Errorf("indices = %v, want empty non-nil slice", indices)
	}
}

// --- FetchIndexData tests ---

func TestFetchIndexData_ValidResponse(t *testing.T) {
	ts := opensearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/app-logs/_mapping":
			w.Write([]byte(`{"app-logs":{"mappings":{"properties":{"message":{"type":"text"}}}}}`))
		case "/app-logs/_search":
			if r.Method != http.MethodPost {
				t.Errorf("unexpected method: %s", r.Method)
			}
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decoding search body: %v", err)
			}
			if body["size"] != float64(100) {
				t.Errorf("size = %v, want 100", body["size"])
			}
			if _, ok := body["query"].(map[string]any)["match_all"]; !ok {
				t.Errorf("query is not match_all: %v", body["query"])
			}
			w.Write([]byte(`{
				"took": 12,
				"hits": {
					"total": {"value": 2},
					"hits": [
						{"_source": {"message": "first", "level": "error"}},
						{"_source": {"message": "second", "level": "info"}}
					]
				}
			}`))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
	defer ts.Close()

	bundle, err := newTestClient(t).FetchIndexData(context.Background(), configFor(ts), "app-logs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bundle.Documents) != 2 {
		t.Fatalf("len(documents) = %d, want 2", len(bundle.Documents))
	}
	// Order must match the cluster's response.
	if bundle.Documents[0]["message"] != "first" || bundle.Documents[1]["message"] != "second" {
		t.Errorf("documents out of order: %v", bundle.Documents)
	}
	if bundle.SampleSize != 2 || bundle.TotalHits != 2 || bundle.TookMS != 12 {
		t.Errorf("unexpected bundle stats: %+v", bundle)
	}
	if !strings.Contains(string(bundle.Mapping), "properties") {
		t.Errorf("mapping not captured: %s", bundle.Mapping)
	}
}

func TestFetchIndexData_MappingFailureTolerated(t *testing.T) {
	ts := opensearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/_mapping") {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte(`{"took":1,"hits":{"total":{"value":0},"hits":[]}}`))
	})
	defer ts.Close()

	bundle, err := newTestClient(t).FetchIndexData(context.Background(), configFor(ts), "app-logs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bundle.Mapping != nil {
		t.Errorf("mapping = %s, want nil", bundle.Mapping)
	}
	if len(bundle.Documents) != 0 {
		t.Errorf("documents = %v, want empty", bundle.Documents)
	}
}

func TestFetchIndexData_MissingIndex(t *testing.T) {
	ts := opensearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/_mapping") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"type":"index_not_found_exception","reason":"no such index [missing]"}}`))
	})
	defer ts.Close()

	_, err := newTestClient(t).FetchIndexData(context.Background(), configFor(ts), "missing")
	if !errors.Is(err, ErrQueryFailed) {
		t.Fatalf("error = %v, want ErrQueryFailed", err)
	}
	if !strings.Contains(err.Error(), "index_not_found_exception") {
		t.Errorf("error %q does not carry the cluster reason", err)
	}
	if !strings.Contains(err.Error(), "no such index") {
		t.Errorf("error %q does not carry the cluster reason detail", err)
	}
}

func TestFetchIndexData_Timeout(t *testing.T) {
	ts := opensearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	defer ts.Close()

	client := NewHTTPClient(50*time.Millisecond, 100)
	_, err := client.FetchIndexData(context.Background(), configFor(ts), "app-logs")
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("error = %v, want ErrTimeout", err)
	}
}

func TestDo_NoAuthHeaderWhenCredentialsEmpty(t *testing.T) {
	ts := opensearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		if _, _, ok := r.BasicAuth(); ok {
			t.Errorf("auth header present for empty credentials")
		}
		json.NewEncoder(w).Encode(map[string]any{"version": map[string]any{"number": "2.11.0"}})
	})
	defer ts.Close()

	cfg := models.OpenSearchConfig{Endpoint: ts.URL}
	if _, err := newTestClient(t).Ping(context.Background(), cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
