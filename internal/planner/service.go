// Package planner orchestrates one plan generation: sample the index, build
// the prompt, call the model, and wrap the outcome in a metrics envelope.
package planner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/kiranshivaraju/chaosplan/internal/inference"
	"github.com/kiranshivaraju/chaosplan/internal/prompt"
	"github.com/kiranshivaraju/chaosplan/pkg/models"
)

// Sampler fetches a capped document sample from one index.
type Sampler interface {
	FetchIndexData(ctx context.Context, cfg models.OpenSearchConfig, index string) (*models.SampleBundle, error)
}

// Generator produces model output for a rendered prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, overrides models.BedrockConfig) (string, error)
	GenerateStream(ctx context.Context, prompt string, overrides models.BedrockConfig) (inference.Stream, error)
}

// StreamEvent is one item on a streaming generation channel. Exactly one of
// Fragment or Err is set; an Err event is always the last one.
type StreamEvent struct {
	Fragment string
	Err      error
}

// Service wires the sampler, prompt builder and inference gateway into the
// two generation flows. Stateless and safe for concurrent use.
type Service struct {
	sampler Sampler
	gateway Generator
	builder *prompt.Builder
}

func NewService(sampler Sampler, gateway Generator, builder *prompt.Builder) *Service {
	return &Service{sampler: sampler, gateway: gateway, builder: builder}
}

// GeneratePlan runs the buffered flow. It never returns an error: every
// outcome, including upstream failure, is a response envelope with metrics
// covering the full span.
func (s *Service) GeneratePlan(ctx context.Context, req models.GeneratePlanRequest) models.GeneratePlanResponse {
	metrics := startMetrics()

	p, err := s.preparePrompt(ctx, req)
	if err != nil {
		return failure(metrics, err)
	}

	plan, err := s.gateway.Generate(ctx, p.Text, req.AWSConfig)
	if err != nil {
		return failure(metrics, fmt.Errorf("failed to generate chaos plan: %w", err))
	}
	if plan == "" {
		return failure(metrics, fmt.Errorf("failed to generate chaos plan: empty response from model"))
	}

	finish(&metrics)
	metrics.Success = true
	length := len(plan)
	metrics.PlanLength = &length

	return models.GeneratePlanResponse{Success: true, Plan: plan, Metrics: metrics}
}

// GeneratePlanStream runs the incremental flow. The returned channel carries
// plan fragments in order and is closed when the stream ends; a terminal
// failure is delivered as a final Err event. The goroutine exits on context
// cancellation even if the consumer stops reading.
func (s *Service) GeneratePlanStream(ctx context.Context, req models.GeneratePlanRequest) <-chan StreamEvent {
	out := make(chan StreamEvent)

	go func() {
		defer close(out)

		p, err := s.preparePrompt(ctx, req)
		if err != nil {
			emit(ctx, out, StreamEvent{Err: err})
			return
		}

		st, err := s.gateway.GenerateStream(ctx, p.Text, req.AWSConfig)
		if err != nil {
			emit(ctx, out, StreamEvent{Err: fmt.Errorf("failed to generate chaos plan: %w", err)})
			return
		}
		defer st.Close()

		for {
			frag, err := st.Recv()
			if err == io.EOF {
				return
			}
			if err != nil {
				emit(ctx, out, StreamEvent{Err: fmt.Errorf("stream interrupted: %w", err)})
				return
			}
			if !emit(ctx, out, StreamEvent{Fragment: frag}) {
				return
			}
		}
	}()

	return out
}

// preparePrompt samples the index and renders the prompt. Shared by both
// flows up to the point they diverge.
func (s *Service) preparePrompt(ctx context.Context, req models.GeneratePlanRequest) (prompt.Prompt, error) {
	bundle, err := s.sampler.FetchIndexData(ctx, req.OpenSearchConfig, req.IndexName)
	if err != nil {
		return prompt.Prompt{}, fmt.Errorf("failed to fetch index data: %w", err)
	}

	p := s.builder.Build(req.IndexName, *bundle, req.AnalysisOptions.Resolved())
	if p.Truncated {
		slog.Info("prompt truncated to byte budget",
			"index", req.IndexName,
			"docs_sampled", len(bundle.Documents),
			"docs_included", p.DocsIncluded,
		)
	}
	return p, nil
}

// emit sends an event unless the context is done. Returns false when the
// consumer is gone.
func emit(ctx context.Context, out chan<- StreamEvent, ev StreamEvent) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func startMetrics() models.Metrics {
	return models.Metrics{StartTime: epoch(time.Now())}
}

// finish stamps the terminal timing fields. Called on every exit path so
// end_time and duration_seconds are present for failures too.
func finish(m *models.Metrics) {
	end := epoch(time.Now())
	dur := end - m.StartTime
	m.EndTime = &end
	m.DurationSeconds = &dur
}

func failure(m models.Metrics, err error) models.GeneratePlanResponse {
	finish(&m)
	m.Error = err.Error()
	return models.GeneratePlanResponse{Error: err.Error(), Metrics: m}
}

func epoch(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
