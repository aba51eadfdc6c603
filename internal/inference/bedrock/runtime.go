// Package bedrock implements the inference runtime on AWS Bedrock using the
// Anthropic messages payload.
package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/smithy-go"

	"github.com/kiranshivaraju/chaosplan/internal/inference"
)

const anthropicVersion = "bedrock-2023-05-31"

// Runtime calls Bedrock's InvokeModel APIs. It resolves an SDK client per
// request region, so it carries no mutable state and is safe for concurrent
// use.
type Runtime struct{}

func NewRuntime() *Runtime { return &Runtime{} }

func (r *Runtime) Name() string { return "bedrock" }

// Ping issues a minimal generation to verify credentials, model access and
// region routing in one shot.
func (r *Runtime) Ping(ctx context.Context, req inference.Request) error {
	_, err := r.Invoke(ctx, req)
	return err
}

func (r *Runtime) Invoke(ctx context.Context, req inference.Request) (string, error) {
	client, err := r.clientFor(ctx, req.Region)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(payload(req))
	if err != nil {
		return "", fmt.Errorf("%w: encoding request: %v", inference.ErrFatal, err)
	}

	out, err := client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(req.Model),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", classify(err)
	}

	var resp anthropicResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", inference.ErrFatal, err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return text, nil
}

func (r *Runtime) InvokeStream(ctx context.Context, req inference.Request) (inference.Stream, error) {
	client, err := r.clientFor(ctx, req.Region)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload(req))
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %v", inference.ErrFatal, err)
	}

	out, err := client.InvokeModelWithResponseStream(ctx, &bedrockruntime.InvokeModelWithResponseStreamInput{
		ModelId:     aws.String(req.Model),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, classify(err)
	}

	return &eventStream{events: out.GetStream()}, nil
}

// clientFor builds a Bedrock runtime client for the request's region.
// Requests may target different regions, so resolution happens per call
// rather than at startup.
func (r *Runtime) clientFor(ctx context.Context, region string) (*bedrockruntime.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("%w: loading aws config: %v", inference.ErrFatal, err)
	}
	return bedrockruntime.NewFromConfig(awsCfg), nil
}

// --- request/response payloads ---

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	Temperature      float64            `json:"temperature"`
	Messages         []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

type streamChunk struct {
	Type  string `json:"type"`
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
}

func payload(req inference.Request) anthropicRequest {
	return anthropicRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        req.MaxTokens,
		Temperature:      req.Temperature,
		Messages: []anthropicMessage{
			{
				Role:    "user",
				Content: []anthropicContent{{Type: "text", Text: req.Prompt}},
			},
		},
	}
}

// --- streaming ---

// eventStream adapts the SDK's event stream to inference.Stream, surfacing
// only content_block_delta text fragments.
type eventStream struct {
	events *bedrockruntime.InvokeModelWithResponseStreamEventStream
}

func (s *eventStream) Recv() (string, error) {
	for {
		event, ok := <-s.events.Events()
		if !ok {
			if err := s.events.Err(); err != nil {
				return "", classify(err)
			}
			return "", io.EOF
		}

		chunk, ok := event.(*types.ResponseStreamMemberChunk)
		if !ok {
			continue
		}

		var parsed streamChunk
		if err := json.Unmarshal(chunk.Value.Bytes, &parsed); err != nil {
			return "", fmt.Errorf("%w: decoding stream chunk: %v", inference.ErrFatal, err)
		}
		if parsed.Type == "content_block_delta" && parsed.Delta.Text != "" {
			return parsed.Delta.Text, nil
		}
	}
}

func (s *eventStream) Close() error {
	return s.events.Close()
}

// classify maps AWS errors onto the gateway's retry taxonomy.
func classify(err error) error {
	var (
		throttled  *types.ThrottlingException
		timeout    *types.ModelTimeoutException
		notReady   *types.ModelNotReadyException
		internal   *types.InternalServerException
		quota      *types.ServiceQuotaExceededException
		denied     *types.AccessDeniedException
		invalid    *types.ValidationException
		notFound   *types.ResourceNotFoundException
		modelError *types.ModelErrorException
	)

	switch {
	case errors.As(err, &throttled),
		errors.As(err, &timeout),
		errors.As(err, &notReady),
		errors.As(err, &internal),
		errors.As(err, &quota),
		errors.As(err, &modelError):
		return fmt.Errorf("%w: %v", inference.ErrTransient, err)
	case errors.As(err, &denied),
		errors.As(err, &invalid),
		errors.As(err, &notFound):
		return fmt.Errorf("%w: %v", inference.ErrFatal, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "UnrecognizedClientException", "InvalidSignatureException", "ExpiredTokenException":
			return fmt.Errorf("%w: %v", inference.ErrFatal, err)
		}
	}

	// Connection-level failures and anything unrecognized are worth another
	// attempt.
	return fmt.Errorf("%w: %v", inference.ErrTransient, err)
}
