package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	mw "github.com/kiranshivaraju/chaosplan/internal/api/middleware"
	"github.com/kiranshivaraju/chaosplan/internal/api/response"
)

// Dependencies holds all handler dependencies for the router.
type Dependencies struct {
	CORSOrigins []string

	HealthHandler         http.HandlerFunc
	TestConnectionHandler http.HandlerFunc
	GetIndicesHandler     http.HandlerFunc
	FetchDataHandler      http.HandlerFunc
	BedrockTestHandler    http.HandlerFunc
	GenerateHandler       http.HandlerFunc
	GenerateStreamHandler http.HandlerFunc
}

// NewRouter builds the Chi router with the middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", orNotImplemented(deps.HealthHandler))
	r.Get("/health", orNotImplemented(deps.HealthHandler))

	r.Post("/api/opensearch/test-connection", orNotImplemented(deps.TestConnectionHandler))
	r.Post("/api/opensearch/indices", orNotImplemented(deps.GetIndicesHandler))
	r.Post("/api/opensearch/fetch-data", orNotImplemented(deps.FetchDataHandler))

	r.Post("/api/bedrock/test-connection", orNotImplemented(deps.BedrockTestHandler))

	r.Post("/api/chaos/generate", orNotImplemented(deps.GenerateHandler))
	r.Post("/api/chaos/generate-stream", orNotImplemented(deps.GenerateStreamHandler))

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "Endpoint not yet implemented")
	}
}
