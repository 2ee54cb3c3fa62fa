package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	assert.Equal(t, 8082, c.Server.Port)
	assert.Equal(t, "release", c.Server.Mode)
	assert.Equal(t, 70.0, c.Gate.SEOPassScore)
	assert.Equal(t, 75.0, c.Gate.QualityPassScore)
	assert.Equal(t, 95.0, c.Gate.OriginalityThreshold)
	assert.Equal(t, AppName, filepath.Base(c.Storage.DataDir))
	assert.NoError(t, c.Validate())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contentgate.yaml")
	data := []byte(`server:
  port: 9000
  rate_limit: 10
gate:
  originality_threshold: 80
storage:
  data_dir: ` + dir + `
log:
  format: json
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, c.Server.Port)
	assert.Equal(t, 10.0, c.Server.RateLimit)
	assert.Equal(t, 5.0, c.Server.RateBurst)
	assert.Equal(t, 80.0, c.Gate.OriginalityThreshold)
	assert.Equal(t, 70.0, c.Gate.SEOPassScore)
	assert.Equal(t, dir, c.Storage.DataDir)
	assert.Equal(t, "json", c.Log.Format)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("CONTENTGATE_GATE_ORIGINALITY_THRESHOLD", "80")
	t.Setenv("CONTENTGATE_LOG_LEVEL", "debug")
	t.Setenv("PORT", "9191")
	t.Setenv("GIN_MODE", "debug")

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 80.0, c.Gate.OriginalityThreshold)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 9191, c.Server.Port)
	assert.Equal(t, "debug", c.Server.Mode)

	thresholds := c.Gate.Thresholds()
	assert.Equal(t, 80.0, thresholds.OriginalityThreshold)
}

func TestLoad_PrefixedPortWins(t *testing.T) {
	t.Setenv("CONTENTGATE_SERVER_PORT", "7000")
	t.Setenv("PORT", "9191")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7000, c.Server.Port)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	t.Setenv("CONTENTGATE_GATE_SEO_PASS_SCORE", "150")
	_, err = Load("")
	assert.ErrorContains(t, err, "gate.seo_pass_score")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"mode", func(c *Config) { c.Server.Mode = "prod" }, "server.mode"},
		{"rate", func(c *Config) { c.Server.RateLimit = 0 }, "server.rate_limit"},
		{"burst", func(c *Config) { c.Server.RateBurst = 0.5 }, "server.rate_burst"},
		{"quality", func(c *Config) { c.Gate.QualityPassScore = -1 }, "gate.quality_pass_score"},
		{"originality", func(c *Config) { c.Gate.OriginalityThreshold = 101 }, "gate.originality_threshold"},
		{"data dir", func(c *Config) { c.Storage.DataDir = " " }, "storage.data_dir"},
		{"log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			assert.ErrorContains(t, c.Validate(), tt.want)
		})
	}
}
