package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/qbet/internal/domain"
	"github.com/kailas-cloud/qbet/internal/metrics"
)

// ProviderName labels metrics emitted by this recognizer.
const ProviderName = "openai"

// SystemPrompt asks a chat model for the entities of one query as JSON.
const SystemPrompt = `You extract named entities from short freelancer search queries, often in French.
Reply with a JSON object {"entities":[{"type":"...","name":"..."}]}.
Use type "location" for cities, districts, regions and countries, "person" for people,
"organization" for companies. Keep names as written in the query. Reply {"entities":[]} when there are none.`

// Recognizer is an entity recognizer backed by an OpenAI-compatible chat completion API.
type Recognizer struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// Config holds the recognizer provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewRecognizer creates an OpenAI-compatible entity recognizer.
func NewRecognizer(cfg *Config) *Recognizer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	return &Recognizer{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   model,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

type entitiesPayload struct {
	Entities []domain.Entity `json:"entities"`
}

// ResolveEntities implements domain.EntityRecognizer.
func (r *Recognizer) ResolveEntities(ctx context.Context, text string) ([]domain.Entity, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0,
	}

	start := time.Now()
	resp, err := r.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.RecognizerRequestsTotal.WithLabelValues(ProviderName, "error").Inc()
		return nil, parseAPIError(err)
	}
	metrics.RecognizerRequestDuration.WithLabelValues(ProviderName).Observe(duration.Seconds())

	if len(resp.Choices) == 0 {
		metrics.RecognizerRequestsTotal.WithLabelValues(ProviderName, "error").Inc()
		return nil, fmt.Errorf("empty completion response: %w", domain.ErrRecognizerUnavailable)
	}

	entities, err := ParseEntities(resp.Choices[0].Message.Content)
	if err != nil {
		metrics.RecognizerRequestsTotal.WithLabelValues(ProviderName, "malformed").Inc()
		return nil, err
	}

	metrics.RecognizerRequestsTotal.WithLabelValues(ProviderName, "success").Inc()
	r.logger.Debug("Entities recognized",
		zap.String("model", r.model),
		zap.Duration("duration", duration),
		zap.Int("entities", len(entities)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)
	return entities, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (r *Recognizer) HealthCheck(ctx context.Context) error {
	if _, err := r.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// ParseEntities decodes a model reply to SystemPrompt. Code fences around the
// JSON are tolerated; entries without type or name are dropped.
func ParseEntities(content string) ([]domain.Entity, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var payload entitiesPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("decode entities: %v: %w", err, domain.ErrRecognizerUnavailable)
	}

	out := make([]domain.Entity, 0, len(payload.Entities))
	for _, e := range payload.Entities {
		e.Type = strings.ToLower(strings.TrimSpace(e.Type))
		e.Name = strings.TrimSpace(e.Name)
		if e.Type == "" || e.Name == "" {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors wrap domain.ErrRecognizerUnavailable.
func parseAPIError(err error) error {
	wrap := domain.ErrRecognizerUnavailable

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("recognizer API error %d: %s: %w", reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("recognizer API error %d: %s: %w", reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("recognizer API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("recognizer request failed: %v: %w", err, wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
