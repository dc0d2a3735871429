// Package location turns a free-text query into a canonical place name.
package location

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/qbet/internal/domain"
	"github.com/kailas-cloud/qbet/internal/domain/text"
)

// Landmark is a place name matched as a whole word, with its accepted spellings.
type Landmark struct {
	Canonical string   `yaml:"canonical"`
	Variants  []string `yaml:"variants"`
}

// Config holds the local lookup tables. Keys and variants are normalized by New.
type Config struct {
	Corrections map[string]string
	Landmarks   []Landmark
}

// DefaultCorrections returns the built-in misspelling table.
func DefaultCorrections() map[string]string {
	return map[string]string{
		"torkyo":    "tokyo",
		"tokio":     "tokyo",
		"toukyou":   "tokyo",
		"tokyou":    "tokyo",
		"manhatan":  "manhattan",
		"manathan":  "manhattan",
		"manhathan": "manhattan",
	}
}

// DefaultLandmarks returns the built-in landmark list.
func DefaultLandmarks() []Landmark {
	return []Landmark{{Canonical: "manhattan", Variants: []string{"manhattan", "manhatan"}}}
}

// DefaultConfig returns the built-in tables.
func DefaultConfig() Config {
	return Config{Corrections: DefaultCorrections(), Landmarks: DefaultLandmarks()}
}

type landmark struct {
	canonical string
	variants  map[string]struct{}
}

// Resolver looks a location up in the correction table, then the landmark list,
// then the optional recognizer. It never fails: every miss resolves to "".
type Resolver struct {
	corrections map[string]string
	landmarks   []landmark
	recognizer  Recognizer
	logger      *zap.Logger
}

// New creates a Resolver. recognizer can be nil.
func New(cfg Config, recognizer Recognizer, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Resolver{
		corrections: make(map[string]string, len(cfg.Corrections)),
		recognizer:  recognizer,
		logger:      logger,
	}
	for from, to := range cfg.Corrections {
		key, val := text.Normalize(from), text.Normalize(to)
		if key == "" || val == "" {
			continue
		}
		r.corrections[key] = val
	}
	for _, lm := range cfg.Landmarks {
		canonical := text.Normalize(lm.Canonical)
		if canonical == "" {
			continue
		}
		l := landmark{canonical: canonical, variants: map[string]struct{}{canonical: {}}}
		for _, v := range lm.Variants {
			if n := text.Normalize(v); n != "" {
				l.variants[n] = struct{}{}
			}
		}
		r.landmarks = append(r.landmarks, l)
	}
	return r
}

// Resolve returns the normalized canonical location named in query, or "".
func (r *Resolver) Resolve(ctx context.Context, query string) string {
	words := text.Words(query)

	for _, w := range words {
		if canonical, ok := r.corrections[w]; ok {
			return canonical
		}
	}

	for _, lm := range r.landmarks {
		for _, w := range words {
			if _, ok := lm.variants[w]; ok {
				return lm.canonical
			}
		}
	}

	if r.recognizer == nil || len(words) == 0 {
		return ""
	}

	name, err := r.recognize(ctx, query)
	if err != nil {
		r.logger.Warn("Location recognition failed, continuing without location",
			zap.Int("query_len", len(query)),
			zap.Error(err),
		)
		return ""
	}
	return r.correct(name)
}

func (r *Resolver) recognize(ctx context.Context, query string) (name string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: recognizer panic: %v", domain.ErrRecognizerUnavailable, p)
		}
	}()

	entities, err := r.recognizer.ResolveEntities(ctx, query)
	if err != nil {
		return "", fmt.Errorf("resolve entities: %w", err)
	}
	name, _ = domain.FirstLocation(entities)
	return name, nil
}

func (r *Resolver) correct(name string) string {
	n := text.Normalize(name)
	if canonical, ok := r.corrections[n]; ok {
		return canonical
	}
	return n
}
