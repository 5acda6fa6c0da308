// Package config loads the marketlens configuration from
// ~/.marketlens/config.yaml, layering environment-variable overrides on top
// of built-in defaults. Missing files are not an error: the tool runs with
// defaults out of the box.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables recognized as overrides.
const (
	EnvBackendURL    = "MARKETLENS_BACKEND_URL"
	EnvScreenerToken = "MARKETLENS_SCREENER_TOKEN"
	EnvCacheDir      = "MARKETLENS_CACHE_DIR"
	EnvCacheEnabled  = "MARKETLENS_CACHE_ENABLED"
	EnvLogLevel      = "MARKETLENS_LOG_LEVEL"
	EnvLogFormat     = "MARKETLENS_LOG_FORMAT"
)

// Defaults applied when the config file and environment are silent.
const (
	DefaultBackendURL    = "http://localhost:8000"
	DefaultTimeout       = 30 * time.Second
	DefaultStockTTL      = 10 * time.Minute
	DefaultAITTL         = 10 * time.Minute
	DefaultScreenerTTL   = 15 * time.Minute
	DefaultSweepInterval = 60 * time.Second
)

// appDirName is the per-user directory holding config and cache state.
const appDirName = ".marketlens"

// Config is the root configuration document.
type Config struct {
	Backend   BackendConfig `yaml:"backend"`
	Cache     CacheConfig   `yaml:"cache"`
	Logging   LoggingConfig `yaml:"logging"`
	Watchlist []string      `yaml:"watchlist"`
}

// BackendConfig locates the Market Lens backend.
type BackendConfig struct {
	BaseURL string   `yaml:"base_url"`
	Timeout Duration `yaml:"timeout"`

	// MinVersion is the oldest backend release this client is known to work
	// with; the health check warns when the server reports something older.
	MinVersion string `yaml:"min_version"`

	// ScreenerToken is the bearer token forwarded on screener requests.
	ScreenerToken string `yaml:"screener_token"`
}

// CacheConfig controls the persistent caches. Disabling the cache turns off
// persistence only; in-memory caching still applies for the session.
type CacheConfig struct {
	Dir           string   `yaml:"dir"`
	Enabled       *bool    `yaml:"enabled"`
	StockTTL      Duration `yaml:"stock_ttl"`
	AITTL         Duration `yaml:"ai_ttl"`
	ScreenerTTL   Duration `yaml:"screener_ttl"`
	SweepInterval Duration `yaml:"sweep_interval"`
}

// IsEnabled reports whether cache persistence is on. Unset means enabled.
func (c CacheConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns the built-in configuration, with the cache directory
// rooted under the user's home directory.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		Backend: BackendConfig{
			BaseURL: DefaultBackendURL,
			Timeout: Duration(DefaultTimeout),
		},
		Cache: CacheConfig{
			Dir:           filepath.Join(home, appDirName, "cache"),
			StockTTL:      Duration(DefaultStockTTL),
			AITTL:         Duration(DefaultAITTL),
			ScreenerTTL:   Duration(DefaultScreenerTTL),
			SweepInterval: Duration(DefaultSweepInterval),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultPath returns the expected config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, appDirName, "config.yaml")
}

// Load reads configuration from path (DefaultPath when empty), merges it over
// the defaults, applies environment overrides, and validates the result. A
// missing default file is fine; a missing explicit file or a malformed one is
// an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, unmarshalErr)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file, run with defaults.
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv layers environment-variable overrides onto the config.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvBackendURL); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv(EnvScreenerToken); v != "" {
		c.Backend.ScreenerToken = v
	}
	if v := os.Getenv(EnvCacheDir); v != "" {
		c.Cache.Dir = v
	}
	if v := os.Getenv(EnvCacheEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Cache.Enabled = &enabled
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
}

// validate rejects configurations the rest of the program cannot work with.
func (c *Config) validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url cannot be empty")
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive, got %s", c.Backend.Timeout)
	}
	for name, d := range map[string]Duration{
		"cache.stock_ttl":      c.Cache.StockTTL,
		"cache.ai_ttl":         c.Cache.AITTL,
		"cache.screener_ttl":   c.Cache.ScreenerTTL,
		"cache.sweep_interval": c.Cache.SweepInterval,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}
	return nil
}
