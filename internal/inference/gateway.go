// Package inference issues text-generation requests to a hosted model,
// buffered or incremental, behind one request-shaping step and one
// retry/backoff policy.
package inference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kiranshivaraju/chaosplan/pkg/models"
)

// Request is one shaped generation request handed to a runtime.
type Request struct {
	Prompt      string
	Model       string
	Region      string
	MaxTokens   int
	Temperature float64
}

// Stream is a finite, ordered sequence of text fragments from one
// generation. Recv returns io.EOF after the final fragment; any other error
// is terminal. Close releases the underlying connection and is safe to call
// at any point, including concurrently with Recv.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// Runtime is the transport-level contract a provider implements. Errors
// returned from any call must wrap ErrTransient or ErrFatal.
type Runtime interface {
	Name() string
	Ping(ctx context.Context, req Request) error
	Invoke(ctx context.Context, req Request) (string, error)
	InvokeStream(ctx context.Context, req Request) (Stream, error)
}

// Config carries the gateway's fixed request shaping and retry policy.
type Config struct {
	Model       string // default model id
	Region      string // default region
	MaxTokens   int
	Temperature float64
	MaxAttempts int
	BaseDelay   time.Duration
}

// Gateway wraps a Runtime with defaulting and retries. It holds no
// per-request state and is safe for concurrent use.
type Gateway struct {
	runtime Runtime
	cfg     Config
}

// NewGateway creates a gateway over the given runtime. Zero-valued policy
// fields fall back to 3 attempts with a 1s backoff base.
func NewGateway(runtime Runtime, cfg Config) *Gateway {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = time.Second
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 16384
	}
	return &Gateway{runtime: runtime, cfg: cfg}
}

// Ping verifies the upstream model is reachable, applying the gateway's
// defaults to empty overrides. It returns the resolved model id so callers
// can report which model answered. No retries: a probe should reflect the
// current state of the dependency.
func (g *Gateway) Ping(ctx context.Context, overrides models.BedrockConfig) (string, error) {
	req := g.shape("Hi", overrides)
	req.MaxTokens = 10
	req.Temperature = 0
	if err := g.runtime.Ping(ctx, req); err != nil {
		return req.Model, err
	}
	return req.Model, nil
}

// Generate runs the buffered call and returns the full generated text,
// retrying transient failures.
func (g *Gateway) Generate(ctx context.Context, prompt string, overrides models.BedrockConfig) (string, error) {
	req := g.shape(prompt, overrides)

	var text string
	err := g.withRetry(ctx, func() error {
		var err error
		text, err = g.runtime.Invoke(ctx, req)
		return err
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// GenerateStream opens an incremental generation. Retries cover stream setup
// only; once fragments are flowing, failures surface through Recv and are
// not retried.
func (g *Gateway) GenerateStream(ctx context.Context, prompt string, overrides models.BedrockConfig) (Stream, error) {
	req := g.shape(prompt, overrides)

	var st Stream
	err := g.withRetry(ctx, func() error {
		var err error
		st, err = g.runtime.InvokeStream(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// shape applies per-request overrides on top of the gateway defaults. Token
// budget and temperature are fixed policy, not request-configurable.
func (g *Gateway) shape(prompt string, overrides models.BedrockConfig) Request {
	req := Request{
		Prompt:      prompt,
		Model:       g.cfg.Model,
		Region:      g.cfg.Region,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}
	if overrides.Model != "" {
		req.Model = overrides.Model
	}
	if overrides.Region != "" {
		req.Region = overrides.Region
	}
	return req
}

// withRetry runs attempt up to MaxAttempts times, sleeping BaseDelay,
// 2*BaseDelay, ... between tries. Only errors wrapping ErrTransient are
// retried; anything else short-circuits. The sleep observes ctx so a caller
// deadline cuts the backoff short.
func (g *Gateway) withRetry(ctx context.Context, attempt func() error) error {
	var lastErr error
	delay := g.cfg.BaseDelay

	for i := 0; i < g.cfg.MaxAttempts; i++ {
		if i > 0 {
			slog.Warn("retrying inference call",
				"runtime", g.runtime.Name(),
				"attempt", i+1,
				"delay", delay.String(),
				"error", lastErr,
			)
			select {
			case <-ctx.Done():
				return fmt.Errorf("inference aborted during backoff: %w", ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
		}

		err := attempt()
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrTransient) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("inference failed after %d attempts: %w", g.cfg.MaxAttempts, lastErr)
}
