package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://www.twse.com.tw/rwd/zh", config.Sources.TWSE.BaseURL)
	assert.Equal(t, 5, config.Sources.TWSE.RateLimit)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestLoadConfigMergesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twmarket.toml")
	content := `
[logging]
level = "debug"

[sources.twse]
base_url = "http://localhost:8080"
rate_limit = 2
rate_window = "2s"
timeout = "5s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, "http://localhost:8080", config.Sources.TWSE.BaseURL)
	assert.Equal(t, 2, config.Sources.TWSE.RateLimit)
	assert.Equal(t, 2*time.Second, config.Sources.TWSE.GetRateWindow())
	assert.Equal(t, 5*time.Second, config.Sources.TWSE.GetTimeout())

	// Sources the file does not mention keep their defaults.
	assert.Equal(t, "https://www.tpex.org.tw/web", config.Sources.TPEx.BaseURL)
}

func TestLoadConfigSkipsMissingFile(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "https://www.tdcc.com.tw", config.Sources.TDCC.BaseURL)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("TWMARKET_LOG_LEVEL", "warn")
	t.Setenv("TWMARKET_TPEX_BASE_URL", "http://localhost:9090")
	t.Setenv("TWMARKET_TPEX_RATE_LIMIT", "1")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Logging.Level)
	assert.Equal(t, "http://localhost:9090", config.Sources.TPEx.BaseURL)
	assert.Equal(t, 1, config.Sources.TPEx.RateLimit)
}

func TestSourceConfigDurationFallbacks(t *testing.T) {
	var cfg SourceConfig
	assert.Equal(t, time.Second, cfg.GetRateWindow())
	assert.Equal(t, 30*time.Second, cfg.GetTimeout())

	cfg = SourceConfig{RateWindow: "garbage", Timeout: "-1s"}
	assert.Equal(t, time.Second, cfg.GetRateWindow())
	assert.Equal(t, 30*time.Second, cfg.GetTimeout())
}
