package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the chaosplan server. It is loaded once
// at startup and treated as read-only afterwards.
type Config struct {
	Server     ServerConfig
	OpenSearch OpenSearchConfig
	Bedrock    BedrockConfig
	Prompt     PromptConfig
	Inference  InferenceConfig
	CORS       CORSConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

// OpenSearchConfig holds sampler tuning plus optional default credentials.
// Credentials may also arrive per request, in which case the request values
// win.
type OpenSearchConfig struct {
	Endpoint   string
	Username   string
	Password   string
	Timeout    time.Duration
	SampleSize int
}

// BedrockConfig holds the default model and region applied when a request
// leaves them blank.
type BedrockConfig struct {
	Model  string
	Region string
}

// PromptConfig bounds the rendered prompt.
type PromptConfig struct {
	MaxDocs  int
	MaxBytes int
}

// InferenceConfig tunes the gateway's retry policy and request shaping.
type InferenceConfig struct {
	Provider    string
	MaxAttempts int
	BaseDelay   time.Duration
	MaxTokens   int
	Temperature float64
}

type CORSConfig struct {
	AllowedOrigins []string
}

var validProviders = map[string]bool{
	"bedrock": true,
	"mock":    true,
}

// Load reads configuration from environment variables and returns a validated
// Config. Returns an error with a descriptive message if any value is invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("CHAOSPLAN_PORT", 8000),
			Env:  envString("CHAOSPLAN_ENV", "development"),
		},
		OpenSearch: OpenSearchConfig{
			Endpoint:   os.Getenv("DEFAULT_OPENSEARCH_ENDPOINT"),
			Username:   os.Getenv("DEFAULT_OPENSEARCH_USERNAME"),
			Password:   os.Getenv("DEFAULT_OPENSEARCH_PASSWORD"),
			Timeout:    envDuration("OPENSEARCH_TIMEOUT", 30*time.Second),
			SampleSize: envInt("OPENSEARCH_SAMPLE_SIZE", 10000),
		},
		Bedrock: BedrockConfig{
			Model:  envString("BEDROCK_MODEL_ID", "global.anthropic.claude-sonnet-4-5-20250929-v1:0"),
			Region: envString("AWS_REGION", "ap-south-1"),
		},
		Prompt: PromptConfig{
			MaxDocs:  envInt("PROMPT_MAX_DOCS", 1000),
			MaxBytes: envInt("PROMPT_MAX_BYTES", 262144),
		},
		Inference: InferenceConfig{
			Provider:    envString("INFERENCE_PROVIDER", "bedrock"),
			MaxAttempts: envInt("INFERENCE_MAX_ATTEMPTS", 3),
			BaseDelay:   envDuration("INFERENCE_RETRY_BASE_DELAY", time.Second),
			MaxTokens:   envInt("INFERENCE_MAX_TOKENS", 16384),
			Temperature: envFloat("INFERENCE_TEMPERATURE", 0.2),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitAndTrim(envString("CORS_ORIGINS", "*")),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("CHAOSPLAN_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.OpenSearch.Endpoint != "" &&
		!strings.HasPrefix(c.OpenSearch.Endpoint, "http://") &&
		!strings.HasPrefix(c.OpenSearch.Endpoint, "https://") {
		return fmt.Errorf("DEFAULT_OPENSEARCH_ENDPOINT must start with http:// or https://, got %q", c.OpenSearch.Endpoint)
	}
	if c.OpenSearch.SampleSize < 1 || c.OpenSearch.SampleSize > 10000 {
		return fmt.Errorf("OPENSEARCH_SAMPLE_SIZE must be between 1 and 10000, got %d", c.OpenSearch.SampleSize)
	}

	if c.Bedrock.Model == "" {
		return fmt.Errorf("BEDROCK_MODEL_ID must not be empty")
	}
	if c.Bedrock.Region == "" {
		return fmt.Errorf("AWS_REGION must not be empty")
	}

	if c.Prompt.MaxDocs < 1 {
		return fmt.Errorf("PROMPT_MAX_DOCS must be at least 1, got %d", c.Prompt.MaxDocs)
	}
	if c.Prompt.MaxBytes < 4096 {
		return fmt.Errorf("PROMPT_MAX_BYTES must be at least 4096, got %d", c.Prompt.MaxBytes)
	}

	if !validProviders[c.Inference.Provider] {
		return fmt.Errorf("INFERENCE_PROVIDER must be one of bedrock, mock; got %q", c.Inference.Provider)
	}
	if c.Inference.MaxAttempts < 1 {
		return fmt.Errorf("INFERENCE_MAX_ATTEMPTS must be at least 1, got %d", c.Inference.MaxAttempts)
	}
	if c.Inference.Temperature < 0 || c.Inference.Temperature > 1 {
		return fmt.Errorf("INFERENCE_TEMPERATURE must be between 0 and 1, got %v", c.Inference.Temperature)
	}

	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envFloat(key string, defaultVal float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
