// Package models contains the wire-contract types shared across the chaosplan codebase.
package models

import "encoding/json"

// OpenSearchConfig carries per-request cluster credentials.
// It is supplied on every request and never persisted.
type OpenSearchConfig struct {
	Endpoint string `json:"endpoint"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// BedrockConfig selects the inference model and region for one request.
// Empty fields fall back to the process defaults.
type BedrockConfig struct {
	Model  string `json:"model,omitempty"`
	Region string `json:"region,omitempty"`
}

// Focus areas accepted by AnalysisOptions.Focus.
const (
	FocusAll          = "All"
	FocusNetwork      = "Network"
	FocusDatabase     = "Database"
	FocusStorage      = "Storage"
	FocusExternalAPIs = "External APIs"
	FocusSecurity     = "Security"
)

// AnalysisOptions tune which reference-table sections the prompt emphasizes.
// They are advisory only: they reorder emphasis, never control flow.
// Pointer fields distinguish "absent" from an explicit false.
type AnalysisOptions struct {
	Focus           string `json:"focus,omitempty"`
	Security        *bool  `json:"security,omitempty"`
	IncludeExternal *bool  `json:"include_external,omitempty"`
}

// ResolvedOptions is AnalysisOptions with defaults applied. Resolution
// happens once at the request boundary; everything downstream consumes
// the resolved form.
type ResolvedOptions struct {
	Focus           string
	Security        bool
	IncludeExternal bool
}

// Resolved applies the documented defaults: focus All, security analysis on,
// external dependencies on.
func (o AnalysisOptions) Resolved() ResolvedOptions {
	r := ResolvedOptions{Focus: FocusAll, Security: true, IncludeExternal: true}
	if o.Focus != "" {
		r.Focus = o.Focus
	}
	if o.Security != nil {
		r.Security = *o.Security
	}
	if o.IncludeExternal != nil {
		r.IncludeExternal = *o.IncludeExternal
	}
	return r
}

// Document is a single retrieved log record (the _source of one search hit).
type Document map[string]any

// SampleBundle is one capped fetch from an index: documents in the order the
// cluster returned them, plus the field mapping the model uses to
// disambiguate types. Produced once per request and consumed exactly once.
type SampleBundle struct {
	Documents  []Document      `json:"documents"`
	Mapping    json.RawMessage `json:"mapping,omitempty"`
	SampleSize int             `json:"sample_size"`
	TotalHits  int             `json:"total_hits"`
	TookMS     int             `json:"took_ms"`
}

// Metrics times one plan generation. StartTime is recorded before any
// downstream call. EndTime and DurationSeconds are set on every terminal
// state, success or failure; PlanLength only on success.
type Metrics struct {
	StartTime       float64  `json:"start_time"`
	EndTime         *float64 `json:"end_time,omitempty"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
	PlanLength      *int     `json:"plan_length,omitempty"`
	Success         bool     `json:"success"`
	Error           string   `json:"error,omitempty"`
}
