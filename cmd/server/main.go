// Package main is the entrypoint for the Chaos Plan Generator API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kiranshivaraju/chaosplan/internal/api"
	"github.com/kiranshivaraju/chaosplan/internal/api/handler"
	"github.com/kiranshivaraju/chaosplan/internal/config"
	"github.com/kiranshivaraju/chaosplan/internal/inference"
	"github.com/kiranshivaraju/chaosplan/internal/inference/bedrock"
	"github.com/kiranshivaraju/chaosplan/internal/inference/mock"
	"github.com/kiranshivaraju/chaosplan/internal/opensearch"
	"github.com/kiranshivaraju/chaosplan/internal/planner"
	"github.com/kiranshivaraju/chaosplan/internal/prompt"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config — fail fast on invalid config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded",
		"inference_provider", cfg.Inference.Provider,
		"model", cfg.Bedrock.Model,
		"region", cfg.Bedrock.Region,
		"env", cfg.Server.Env,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Create the OpenSearch sampler
	search := opensearch.NewHTTPClient(cfg.OpenSearch.Timeout, cfg.OpenSearch.SampleSize)

	// 3. Create the inference runtime and gateway
	runtime, err := newRuntime(cfg.Inference.Provider)
	if err != nil {
		return fmt.Errorf("create inference runtime: %w", err)
	}
	slog.Info("inference runtime initialized", "runtime", runtime.Name())

	gateway := inference.NewGateway(runtime, inference.Config{
		Model:       cfg.Bedrock.Model,
		Region:      cfg.Bedrock.Region,
		MaxTokens:   cfg.Inference.MaxTokens,
		Temperature: cfg.Inference.Temperature,
		MaxAttempts: cfg.Inference.MaxAttempts,
		BaseDelay:   cfg.Inference.BaseDelay,
	})

	// 4. Wire the planner
	builder := prompt.NewBuilder(cfg.Prompt.MaxDocs, cfg.Prompt.MaxBytes)
	svc := planner.NewService(search, gateway, builder)

	// 5. Build router with dependencies
	deps := api.Dependencies{
		CORSOrigins: cfg.CORS.AllowedOrigins,

		HealthHandler:         handler.NewHealthHandler(),
		TestConnectionHandler: handler.NewTestConnectionHandler(search),
		GetIndicesHandler:     handler.NewGetIndicesHandler(search),
		FetchDataHandler:      handler.NewFetchIndexDataHandler(search),
		BedrockTestHandler:    handler.NewBedrockTestHandler(gateway),
		GenerateHandler:       handler.NewGeneratePlanHandler(svc),
		GenerateStreamHandler: handler.NewGeneratePlanStreamHandler(svc),
	}

	router := api.NewRouter(deps)

	// 6. Start HTTP server. WriteTimeout stays 0: a streamed generation can
	// legitimately run for minutes and must not be cut mid-flight.
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// newRuntime selects the inference runtime. The mock runtime serves local
// development without AWS credentials.
func newRuntime(provider string) (inference.Runtime, error) {
	switch provider {
	case "bedrock":
		return bedrock.NewRuntime(), nil
	case "mock":
		return mock.NewRuntime(), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}
