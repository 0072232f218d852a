// Package common provides shared utilities for twmarket
package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for twmarket. Every upstream endpoint is
// configuration, not code: each source carries its base URL, a request
// limit per time window, and an HTTP timeout.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Sources SourcesConfig `toml:"sources"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// SourcesConfig holds per-source client configuration
type SourcesConfig struct {
	ISIN      SourceConfig `toml:"isin"`
	TWSE      SourceConfig `toml:"twse"`
	TPEx      SourceConfig `toml:"tpex"`
	TAIFEX    SourceConfig `toml:"taifex"`
	TDCC      SourceConfig `toml:"tdcc"`
	MOPS      SourceConfig `toml:"mops"`
	MisTWSE   SourceConfig `toml:"mis_twse"`
	MisTAIFEX SourceConfig `toml:"mis_taifex"`
}

// SourceConfig configures one upstream source client.
type SourceConfig struct {
	BaseURL string `toml:"base_url"`
	// RateLimit is the maximum number of requests per window.
	RateLimit int `toml:"rate_limit"`
	// RateWindow is the sliding window the limit applies to, as a
	// duration string. Defaults to one second.
	RateWindow string `toml:"rate_window"`
	Timeout    string `toml:"timeout"`
}

// GetRateWindow parses and returns the rate window duration
func (c *SourceConfig) GetRateWindow() time.Duration {
	d, err := time.ParseDuration(c.RateWindow)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}

// GetTimeout parses and returns the timeout duration
func (c *SourceConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// NewDefaultConfig returns the default configuration with the public
// production endpoints.
func NewDefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Sources: SourcesConfig{
			ISIN:      SourceConfig{BaseURL: "https://isin.twse.com.tw/isin", RateLimit: 3},
			TWSE:      SourceConfig{BaseURL: "https://www.twse.com.tw/rwd/zh", RateLimit: 5},
			TPEx:      SourceConfig{BaseURL: "https://www.tpex.org.tw/web", RateLimit: 5},
			TAIFEX:    SourceConfig{BaseURL: "https://www.taifex.com.tw/cht", RateLimit: 5},
			TDCC:      SourceConfig{BaseURL: "https://www.tdcc.com.tw", RateLimit: 3},
			MOPS:      SourceConfig{BaseURL: "https://mops.twse.com.tw", RateLimit: 3},
			MisTWSE:   SourceConfig{BaseURL: "https://mis.twse.com.tw/stock/api", RateLimit: 5},
			MisTAIFEX: SourceConfig{BaseURL: "https://mis.taifex.com.tw/futures/api", RateLimit: 5},
		},
	}
}

// LoadConfig loads configuration from TOML files, merged in order, with
// environment overrides applied last.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

func applyEnvOverrides(config *Config) {
	if v := os.Getenv("TWMARKET_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	overrides := []struct {
		prefix string
		cfg    *SourceConfig
	}{
		{"TWMARKET_ISIN", &config.Sources.ISIN},
		{"TWMARKET_TWSE", &config.Sources.TWSE},
		{"TWMARKET_TPEX", &config.Sources.TPEx},
		{"TWMARKET_TAIFEX", &config.Sources.TAIFEX},
		{"TWMARKET_TDCC", &config.Sources.TDCC},
		{"TWMARKET_MOPS", &config.Sources.MOPS},
		{"TWMARKET_MIS_TWSE", &config.Sources.MisTWSE},
		{"TWMARKET_MIS_TAIFEX", &config.Sources.MisTAIFEX},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.prefix + "_BASE_URL"); v != "" {
			o.cfg.BaseURL = v
		}
		if v := os.Getenv(o.prefix + "_RATE_LIMIT"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				o.cfg.RateLimit = n
			}
		}
	}
}
