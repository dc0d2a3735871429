package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/qbet/internal/domain/search/vocabulary"
	"github.com/kailas-cloud/qbet/internal/usecase/location"
	"github.com/kailas-cloud/qbet/internal/usecase/ranking"
	searchuc "github.com/kailas-cloud/qbet/internal/usecase/search"
)

// Database drivers.
const (
	DriverMemory = "memory"
	DriverBadger = "badger"
	DriverRedis  = "redis"
)

// Catalog sources.
const (
	SourceSeed  = "seed"
	SourceStore = "store"
)

// Recognizer providers.
const (
	ProviderNone   = "none"
	ProviderOpenAI = "openai"
	ProviderGoogle = "google"
	ProviderLocal  = "local"
)

// Config holds the qbet service configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
	Database   DatabaseConfig   `yaml:"database"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Search     SearchConfig     `yaml:"search"`
	Recognizer RecognizerConfig `yaml:"recognizer"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds KV store settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // memory, badger, redis (default: memory)
	Path             string   `yaml:"path"`   // badger directory; empty keeps badger in memory
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	Standalone       bool     `yaml:"standalone"` // redis: skip cluster discovery
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	KeyPrefix        string   `yaml:"key_prefix"`
}

// CatalogConfig holds candidate catalog settings.
type CatalogConfig struct {
	Source      string `yaml:"source"`        // seed (file or embedded) or store (KV snapshot)
	SeedFile    string `yaml:"seed_file"`     // empty uses the embedded seed
	Refresh     string `yaml:"refresh"`       // cron spec, empty disables refresh
	SeedIfEmpty bool   `yaml:"seed_if_empty"` // store source: write the seed when no snapshot exists
}

// SearchConfig tunes the ranking pipeline.
type SearchConfig struct {
	MaxQueryLength int                 `yaml:"max_query_length"`
	TopSkills      int                 `yaml:"top_skills"`
	Weights        *ranking.Weights    `yaml:"weights"`
	OptimalPrice   float64             `yaml:"optimal_price"`
	PriceDivisor   float64             `yaml:"price_divisor"`
	Vocabulary     vocabulary.Lists    `yaml:"vocabulary"` // non-empty lists replace the built-in ones
	Corrections    map[string]string   `yaml:"corrections"`
	Landmarks      []location.Landmark `yaml:"landmarks"`
	BatchWorkers   int                 `yaml:"batch_workers"`  // 0 means searchuc.DefaultBatchWorkers
	MaxBatchSize   int                 `yaml:"max_batch_size"` // 0 means searchuc.DefaultMaxBatchSize
}

// RecognizerConfig holds the optional entity recognizer settings.
type RecognizerConfig struct {
	Provider    string `yaml:"provider"` // none, openai, google, local (default: none)
	APIKey      string `yaml:"api_key"`
	BaseURL     string `yaml:"base_url"`
	Model       string `yaml:"model"`
	Language    string `yaml:"language"`
	TimeoutSec  int    `yaml:"timeout_sec"`
	CacheTTLSec int    `yaml:"cache_ttl_sec"` // 0 disables the entity cache
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse decodes YAML, expands ${VAR} references, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverMemory
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Database.KeyPrefix == "" {
		c.Database.KeyPrefix = "qbet:"
	}
	if c.Catalog.Source == "" {
		c.Catalog.Source = SourceSeed
	}
	if c.Search.MaxQueryLength <= 0 {
		c.Search.MaxQueryLength = 500
	}
	if c.Search.TopSkills <= 0 {
		c.Search.TopSkills = 5
	}
	if c.Search.Weights == nil {
		w := ranking.DefaultWeights()
		c.Search.Weights = &w
	}
	if c.Search.OptimalPrice <= 0 {
		c.Search.OptimalPrice = ranking.DefaultConfig().OptimalPrice
	}
	if c.Search.PriceDivisor <= 0 {
		c.Search.PriceDivisor = ranking.DefaultConfig().PriceDivisor
	}
	if c.Search.BatchWorkers == 0 {
		c.Search.BatchWorkers = searchuc.DefaultBatchWorkers
	}
	if c.Search.MaxBatchSize == 0 {
		c.Search.MaxBatchSize = searchuc.DefaultMaxBatchSize
	}
	if c.Search.Corrections == nil {
		c.Search.Corrections = location.DefaultCorrections()
	}
	if c.Search.Landmarks == nil {
		c.Search.Landmarks = location.DefaultLandmarks()
	}
	if c.Recognizer.Provider == "" {
		c.Recognizer.Provider = ProviderNone
	}
	if c.Recognizer.TimeoutSec <= 0 {
		c.Recognizer.TimeoutSec = 5
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}

	switch c.Database.Driver {
	case DriverMemory, DriverBadger:
	case DriverRedis:
		if len(c.Database.Addrs) == 0 {
			return errors.New("database.addrs is required for the redis driver")
		}
	default:
		return fmt.Errorf("database.driver must be %q, %q or %q, got %q",
			DriverMemory, DriverBadger, DriverRedis, c.Database.Driver)
	}

	switch c.Catalog.Source {
	case SourceSeed, SourceStore:
	default:
		return fmt.Errorf("catalog.source must be %q or %q, got %q", SourceSeed, SourceStore, c.Catalog.Source)
	}
	if c.Catalog.Refresh != "" {
		if _, err := cron.ParseStandard(c.Catalog.Refresh); err != nil {
			return fmt.Errorf("catalog.refresh: %w", err)
		}
	}

	w := c.Search.Weights
	if w.Skill < 0 || w.Rating < 0 || w.Availability < 0 || w.Location < 0 || w.Price < 0 {
		return errors.New("search.weights must be non-negative")
	}
	if w.Sum() == 0 {
		return errors.New("search.weights must not all be zero")
	}
	if c.Search.BatchWorkers < 0 || c.Search.MaxBatchSize < 0 {
		return errors.New("search.batch_workers and search.max_batch_size must be non-negative")
	}
	for i, lm := range c.Search.Landmarks {
		if strings.TrimSpace(lm.Canonical) == "" {
			return fmt.Errorf("search.landmarks[%d].canonical is required", i)
		}
	}

	switch c.Recognizer.Provider {
	case ProviderNone:
	case ProviderOpenAI:
		if c.Recognizer.APIKey == "" && c.Recognizer.BaseURL == "" {
			return errors.New("recognizer.api_key or recognizer.base_url is required for openai")
		}
	case ProviderGoogle:
		if c.Recognizer.APIKey == "" {
			return errors.New("recognizer.api_key is required for google")
		}
	case ProviderLocal:
		if c.Recognizer.BaseURL == "" || c.Recognizer.Model == "" {
			return errors.New("recognizer.base_url and recognizer.model are required for local")
		}
	default:
		return fmt.Errorf("recognizer.provider must be one of %q, %q, %q, %q, got %q",
			ProviderNone, ProviderOpenAI, ProviderGoogle, ProviderLocal, c.Recognizer.Provider)
	}
	if c.Recognizer.CacheTTLSec < 0 {
		return errors.New("recognizer.cache_ttl_sec must be non-negative")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
