// Package config loads the contentgate configuration from env files, an
// optional config file and CONTENTGATE_* environment variables.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/seo-optimizer/contentgate/analyzer"
)

// AppName is used for the data directory and the env prefix
const AppName = "contentgate"

const envPrefix = "CONTENTGATE"

// Config is the complete runtime configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server" json:"server" yaml:"server"`
	Gate    GateConfig    `mapstructure:"gate" json:"gate" yaml:"gate"`
	Storage StorageConfig `mapstructure:"storage" json:"storage" yaml:"storage"`
	Log     LogConfig     `mapstructure:"log" json:"log" yaml:"log"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Port int `mapstructure:"port" json:"port" yaml:"port"`
	// Mode is the gin mode: debug, release or test.
	Mode string `mapstructure:"mode" json:"mode" yaml:"mode"`
	// RateLimit is the sustained requests per second allowed per client IP.
	RateLimit float64 `mapstructure:"rate_limit" json:"rate_limit" yaml:"rate_limit"`
	RateBurst float64 `mapstructure:"rate_burst" json:"rate_burst" yaml:"rate_burst"`
}

// GateConfig holds the publishing thresholds
type GateConfig struct {
	SEOPassScore         float64 `mapstructure:"seo_pass_score" json:"seo_pass_score" yaml:"seo_pass_score"`
	QualityPassScore     float64 `mapstructure:"quality_pass_score" json:"quality_pass_score" yaml:"quality_pass_score"`
	OriginalityThreshold float64 `mapstructure:"originality_threshold" json:"originality_threshold" yaml:"originality_threshold"`
}

// Thresholds converts the gate settings for the analyzer
func (g GateConfig) Thresholds() analyzer.Thresholds {
	return analyzer.Thresholds{
		SEOPassScore:         g.SEOPassScore,
		QualityPassScore:     g.QualityPassScore,
		OriginalityThreshold: g.OriginalityThreshold,
	}
}

// StorageConfig configures where statistics are persisted
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir" json:"data_dir" yaml:"data_dir"`
}

// LogConfig configures the structured logger
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level" yaml:"level"`
	Format string `mapstructure:"format" json:"format" yaml:"format"`
}

// DefaultDataDir returns $XDG_DATA_HOME/contentgate
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() *Config {
	thresholds := analyzer.DefaultThresholds()
	return &Config{
		Server: ServerConfig{
			Port:      8082,
			Mode:      "release",
			RateLimit: 2,
			RateBurst: 5,
		},
		Gate: GateConfig{
			SEOPassScore:         thresholds.SEOPassScore,
			QualityPassScore:     thresholds.QualityPassScore,
			OriginalityThreshold: thresholds.OriginalityThreshold,
		},
		Storage: StorageConfig{
			DataDir: DefaultDataDir(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// loadEnvFiles loads .env.development, falling back to .env. Missing files
// are not an error and variables already set in the environment win.
func loadEnvFiles() {
	if err := godotenv.Load(".env.development"); err != nil {
		_ = godotenv.Load()
	}
}

// Load reads the configuration. configPath may be empty, in which case only
// defaults and the environment are used.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	config := DefaultConfig()
	setDefaults(v, config)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// PORT and GIN_MODE are honoured for hosting platforms that set them
	if err := v.BindEnv("server.port", envPrefix+"_SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind server.port: %w", err)
	}
	if err := v.BindEnv("server.mode", envPrefix+"_SERVER_MODE", "GIN_MODE"); err != nil {
		return nil, fmt.Errorf("failed to bind server.mode: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it on Unmarshal.
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("server.port", c.Server.Port)
	v.SetDefault("server.mode", c.Server.Mode)
	v.SetDefault("server.rate_limit", c.Server.RateLimit)
	v.SetDefault("server.rate_burst", c.Server.RateBurst)
	v.SetDefault("gate.seo_pass_score", c.Gate.SEOPassScore)
	v.SetDefault("gate.quality_pass_score", c.Gate.QualityPassScore)
	v.SetDefault("gate.originality_threshold", c.Gate.OriginalityThreshold)
	v.SetDefault("storage.data_dir", c.Storage.DataDir)
	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.format", c.Log.Format)
}

// Validate checks that every gate score lies in [0, 100]
func (g GateConfig) Validate() error {
	scores := []struct {
		key   string
		value float64
	}{
		{"gate.seo_pass_score", g.SEOPassScore},
		{"gate.quality_pass_score", g.QualityPassScore},
		{"gate.originality_threshold", g.OriginalityThreshold},
	}
	for _, s := range scores {
		if s.value < 0 || s.value > 100 {
			return fmt.Errorf("%s must be between 0 and 100, got %g", s.key, s.value)
		}
	}
	return nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return fmt.Errorf("invalid server.mode '%s', must be one of: debug, release, test", c.Server.Mode)
	}

	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("server.rate_limit must be > 0, got %g", c.Server.RateLimit)
	}
	if c.Server.RateBurst < 1 {
		return fmt.Errorf("server.rate_burst must be >= 1, got %g", c.Server.RateBurst)
	}

	if err := c.Gate.Validate(); err != nil {
		return err
	}

	if strings.TrimSpace(c.Storage.DataDir) == "" {
		return fmt.Errorf("storage.data_dir must not be empty")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log.level '%s', must be one of: debug, info, warn, error", c.Log.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Log.Format)] {
		return fmt.Errorf("invalid log.format '%s', must be one of: text, json", c.Log.Format)
	}

	return nil
}
