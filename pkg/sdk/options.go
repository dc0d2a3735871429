package qbet

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	recognizer Recognizer

	weights      *Weights
	optimalPrice float64
	skills       []string
	corrections  map[string]string
	landmarks    map[string][]string
	topSkills    int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRecognizer sets the named-entity recognizer used as the last location
// lookup. Recognizer failures never fail a ranking call.
func WithRecognizer(r Recognizer) Option {
	return optionFunc(func(c *clientConfig) {
		c.recognizer = r
	})
}

// WithWeights replaces the relevance weights.
// Defaults: skill 0.4, rating 0.2, availability 0.2, location 0.1, price 0.1.
func WithWeights(w Weights) Option {
	return optionFunc(func(c *clientConfig) {
		c.weights = &w
	})
}

// WithOptimalPrice sets the hourly rate that earns the full price score.
// Default: 100.
func WithOptimalPrice(p float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.optimalPrice = p
	})
}

// WithSkills adds skill-introducing keywords to the built-in list.
func WithSkills(keywords ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.skills = append(c.skills, keywords...)
	})
}

// WithCorrection maps a misspelled location to its canonical form.
// The built-in corrections stay active.
func WithCorrection(from, to string) Option {
	return optionFunc(func(c *clientConfig) {
		if c.corrections == nil {
			c.corrections = make(map[string]string)
		}
		c.corrections[from] = to
	})
}

// WithLandmark registers a place that resolves to canonical when the query
// names it or one of its variants.
func WithLandmark(canonical string, variants ...string) Option {
	return optionFunc(func(c *clientConfig) {
		if c.landmarks == nil {
			c.landmarks = make(map[string][]string)
		}
		c.landmarks[canonical] = append(c.landmarks[canonical], variants...)
	})
}

// WithTopSkills bounds the skill list returned by Stats. Default: 5.
func WithTopSkills(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.topSkills = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
