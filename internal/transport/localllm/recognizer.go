// Package localllm recognizes entities with a self-hosted OpenAI-compatible
// chat model (Ollama, llama.cpp server, vLLM) through langchaingo.
package localllm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	lcopenai "github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/qbet/internal/domain"
	"github.com/kailas-cloud/qbet/internal/metrics"
	"github.com/kailas-cloud/qbet/internal/transport/openai"
)

// ProviderName labels metrics emitted by this recognizer.
const ProviderName = "local"

// maxAttempts bounds retries on replies that are not valid JSON.
const maxAttempts = 3

// noToken is sent to local servers that do not check authentication.
const noToken = "none"

// Config holds the local model settings. BaseURL and Model are required.
type Config struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Recognizer asks a local chat model for the entities of a query.
type Recognizer struct {
	model   llms.Model
	name    string
	timeout time.Duration
	logger  *zap.Logger
}

// NewRecognizer connects a langchaingo OpenAI-compatible client to cfg.BaseURL.
func NewRecognizer(cfg *Config) (*Recognizer, error) {
	if cfg.BaseURL == "" || cfg.Model == "" {
		return nil, errors.New("local recognizer needs base url and model")
	}
	token := cfg.APIKey
	if token == "" {
		token = noToken
	}
	client, err := lcopenai.New(
		lcopenai.WithBaseURL(cfg.BaseURL),
		lcopenai.WithToken(token),
		lcopenai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create langchaingo client: %w", err)
	}
	return NewWithModel(client, cfg), nil
}

// NewWithModel wraps an existing langchaingo model.
func NewWithModel(model llms.Model, cfg *Config) *Recognizer {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recognizer{model: model, name: cfg.Model, timeout: cfg.Timeout, logger: logger}
}

// ResolveEntities implements domain.EntityRecognizer. A reply that does not
// decode is retried; transport errors are not.
func (r *Recognizer) ResolveEntities(ctx context.Context, text string) ([]domain.Entity, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, openai.SystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, text),
	}

	start := time.Now()
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := r.model.GenerateContent(ctx, content, llms.WithTemperature(0), llms.WithJSONMode())
		if err != nil {
			metrics.RecognizerRequestsTotal.WithLabelValues(ProviderName, "error").Inc()
			return nil, fmt.Errorf("generate content: %v: %w", err, domain.ErrRecognizerUnavailable)
		}
		if len(resp.Choices) == 0 {
			metrics.RecognizerRequestsTotal.WithLabelValues(ProviderName, "error").Inc()
			return nil, fmt.Errorf("empty model response: %w", domain.ErrRecognizerUnavailable)
		}

		entities, err := openai.ParseEntities(resp.Choices[0].Content)
		if err != nil {
			lastErr = err
			r.logger.Debug("Malformed entity reply, retrying", zap.Int("attempt", attempt), zap.Error(err))
			continue
		}

		metrics.RecognizerRequestDuration.WithLabelValues(ProviderName).Observe(time.Since(start).Seconds())
		metrics.RecognizerRequestsTotal.WithLabelValues(ProviderName, "success").Inc()
		r.logger.Debug("Entities recognized",
			zap.String("model", r.name),
			zap.Int("attempts", attempt),
			zap.Int("entities", len(entities)),
		)
		return entities, nil
	}

	metrics.RecognizerRequestsTotal.WithLabelValues(ProviderName, "malformed").Inc()
	return nil, lastErr
}

// HealthCheck runs one recognition on a fixed query.
func (r *Recognizer) HealthCheck(ctx context.Context) error {
	if _, err := r.ResolveEntities(ctx, "Paris"); err != nil {
		return fmt.Errorf("local model: %w", err)
	}
	return nil
}
