package models

import "encoding/json"

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// TestConnectionRequest carries cluster credentials for a connectivity probe.
type TestConnectionRequest struct {
	Endpoint string `json:"endpoint"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// TestConnectionResponse reports a connectivity probe. A failed probe is a
// successful HTTP response with Success=false.
type TestConnectionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// BedrockTestRequest probes the inference endpoint with optional overrides.
type BedrockTestRequest struct {
	Model  string `json:"model,omitempty"`
	Region string `json:"region,omitempty"`
}

// IndexInfo describes one index as reported by _cat/indices.
type IndexInfo struct {
	Index     string `json:"index"`
	Health    string `json:"health"`
	Status    string `json:"status"`
	DocsCount string `json:"docs.count,omitempty"`
	StoreSize string `json:"store.size,omitempty"`
	Pri       string `json:"pri,omitempty"`
	Rep       string `json:"rep,omitempty"`
}

// GetIndicesResponse lists the cluster's indices.
type GetIndicesResponse struct {
	Success bool        `json:"success"`
	Indices []IndexInfo `json:"indices,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// FetchIndexDataRequest asks for a capped sample from one index.
type FetchIndexDataRequest struct {
	Endpoint  string `json:"endpoint"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	IndexName string `json:"index_name"`
}

// FetchIndexDataResponse returns the sample bundle for one index.
type FetchIndexDataResponse struct {
	Success    bool            `json:"success"`
	Mapping    json.RawMessage `json:"mapping,omitempty"`
	Documents  []Document      `json:"documents,omitempty"`
	SampleSize int             `json:"sample_size,omitempty"`
	TotalHits  int             `json:"total_hits,omitempty"`
	TookMS     int             `json:"took_ms,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// GeneratePlanRequest is the envelope both generation endpoints accept.
type GeneratePlanRequest struct {
	IndexName        string           `json:"index_name"`
	OpenSearchConfig OpenSearchConfig `json:"opensearch_config"`
	AWSConfig        BedrockConfig    `json:"aws_config"`
	AnalysisOptions  AnalysisOptions  `json:"analysis_options,omitempty"`
}

// GeneratePlanResponse is the non-streaming result envelope. Exactly one of
// Plan or Error is populated; Metrics is always present.
type GeneratePlanResponse struct {
	Success bool    `json:"success"`
	Plan    string  `json:"plan,omitempty"`
	Error   string  `json:"error,omitempty"`
	Metrics Metrics `json:"metrics"`
}
