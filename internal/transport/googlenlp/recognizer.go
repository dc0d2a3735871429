// Package googlenlp is an entity recognizer backed by the Google Cloud Natural Language REST API.
package googlenlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/qbet/internal/domain"
	"github.com/kailas-cloud/qbet/internal/metrics"
)

// ProviderName labels metrics emitted by this recognizer.
const ProviderName = "google"

// DefaultBaseURL is the public Natural Language API endpoint.
const DefaultBaseURL = "https://language.googleapis.com/v1"

const maxErrorBody = 4 << 10

// Config holds the recognizer provider settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Language string
	Timeout  time.Duration
	Logger   *zap.Logger
}

// Recognizer calls documents:analyzeEntities and maps Google entity types to domain ones.
type Recognizer struct {
	http     *http.Client
	baseURL  string
	apiKey   string
	language string
	logger   *zap.Logger
}

// NewRecognizer creates a Google Natural Language recognizer.
func NewRecognizer(cfg *Config) *Recognizer {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	lang := cfg.Language
	if lang == "" {
		lang = "fr"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recognizer{
		http:     &http.Client{Timeout: cfg.Timeout},
		baseURL:  base,
		apiKey:   cfg.APIKey,
		language: lang,
		logger:   logger,
	}
}

type document struct {
	Type     string `json:"type"`
	Content  string `json:"content"`
	Language string `json:"language,omitempty"`
}

type analyzeRequest struct {
	Document     document `json:"document"`
	EncodingType string   `json:"encodingType"`
}

type analyzeResponse struct {
	Entities []struct {
		Name     string  `json:"name"`
		Type     string  `json:"type"`
		Salience float64 `json:"salience"`
	} `json:"entities"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// ResolveEntities implements domain.EntityRecognizer.
func (r *Recognizer) ResolveEntities(ctx context.Context, text string) ([]domain.Entity, error) {
	body, err := json.Marshal(analyzeRequest{
		Document:     document{Type: "PLAIN_TEXT", Content: text, Language: r.language},
		EncodingType: "UTF8",
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	endpoint := r.baseURL + "/documents:analyzeEntities?key=" + url.QueryEscape(r.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := r.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		metrics.RecognizerRequestsTotal.WithLabelValues(ProviderName, "error").Inc()
		return nil, fmt.Errorf("analyze entities: %v: %w", err, domain.ErrRecognizerUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()
	metrics.RecognizerRequestDuration.WithLabelValues(ProviderName).Observe(duration.Seconds())

	if resp.StatusCode != http.StatusOK {
		metrics.RecognizerRequestsTotal.WithLabelValues(ProviderName, "error").Inc()
		return nil, parseAPIError(resp)
	}

	var parsed analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.RecognizerRequestsTotal.WithLabelValues(ProviderName, "malformed").Inc()
		return nil, fmt.Errorf("decode response: %v: %w", err, domain.ErrRecognizerUnavailable)
	}

	out := make([]domain.Entity, 0, len(parsed.Entities))
	for _, e := range parsed.Entities {
		if strings.TrimSpace(e.Name) == "" {
			continue
		}
		out = append(out, domain.Entity{Type: mapType(e.Type), Name: e.Name})
	}

	metrics.RecognizerRequestsTotal.WithLabelValues(ProviderName, "success").Inc()
	r.logger.Debug("Entities recognized",
		zap.Duration("duration", duration),
		zap.Int("entities", len(out)),
	)
	return out, nil
}

// HealthCheck sends a one-word document; any 2xx means the key and endpoint work.
func (r *Recognizer) HealthCheck(ctx context.Context) error {
	if _, err := r.ResolveEntities(ctx, "Paris"); err != nil {
		return fmt.Errorf("analyze entities probe: %w", err)
	}
	return nil
}

// mapType lowercases Google entity types; LOCATION and ADDRESS both mean a place.
func mapType(t string) string {
	switch strings.ToUpper(t) {
	case "LOCATION", "ADDRESS":
		return domain.EntityTypeLocation
	default:
		return strings.ToLower(t)
	}
}

func parseAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var parsed apiError
	if json.Unmarshal(data, &parsed) == nil && parsed.Error.Message != "" {
		return fmt.Errorf("recognizer API error %d: %s: %w",
			resp.StatusCode, parsed.Error.Message, domain.ErrRecognizerUnavailable)
	}
	return fmt.Errorf("recognizer API error %d: %s: %w",
		resp.StatusCode, strings.TrimSpace(string(data)), domain.ErrRecognizerUnavailable)
}
