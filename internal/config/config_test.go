package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shenikar/city_safety_map/internal/models"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("RANDOM_SEED", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "")
	t.Setenv("REDIS_ENABLED", "")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("REFRESH_INTERVAL", "5s")
	t.Setenv("ALERT_RETENTION", "2h")
	t.Setenv("RATE_LIMIT_RPS", "20")
	t.Setenv("WEBHOOK_MIN_SEVERITY", "warning")
	t.Setenv("WEBHOOK_MAX_RETRIES", "3")
	t.Setenv("SERVICE_NAME", "city-safety-map")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 5*time.Second, cfg.RefreshInterval)
	assert.Equal(t, 2*time.Hour, cfg.AlertRetention)
	assert.Equal(t, uint64(0), cfg.RandomSeed)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.False(t, cfg.RedisEnabled)
	assert.Equal(t, models.SeverityWarning, cfg.WebhookMinSeverity)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REFRESH_INTERVAL", "10s")
	t.Setenv("ALERT_RETENTION", "30m")
	t.Setenv("RANDOM_SEED", "42")
	t.Setenv("RATE_LIMIT_RPS", "5")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:3000, https://map.example.com")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("WEBHOOK_MIN_SEVERITY", "CRITICAL")
	t.Setenv("WEBHOOK_MAX_RETRIES", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 10*time.Second, cfg.RefreshInterval)
	assert.Equal(t, 30*time.Minute, cfg.AlertRetention)
	assert.Equal(t, uint64(42), cfg.RandomSeed)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.Equal(t, []string{"http://localhost:3000", "https://map.example.com"}, cfg.CORSAllowOrigins)
	assert.True(t, cfg.RedisEnabled)
	assert.Equal(t, models.SeverityCritical, cfg.WebhookMinSeverity)
	assert.Equal(t, 5, cfg.WebhookMaxRetries)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			HTTPPort:           "8080",
			LogLevel:           "info",
			RefreshInterval:    5 * time.Second,
			AlertRetention:     2 * time.Hour,
			RateLimitRPS:       20,
			WebhookMaxRetries:  3,
			WebhookMinSeverity: models.SeverityWarning,
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad port", func(c *Config) { c.HTTPPort = "http" }},
		{"port out of range", func(c *Config) { c.HTTPPort = "70000" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"refresh too fast", func(c *Config) { c.RefreshInterval = 500 * time.Millisecond }},
		{"zero retention", func(c *Config) { c.AlertRetention = 0 }},
		{"zero rate", func(c *Config) { c.RateLimitRPS = 0 }},
		{"unknown severity", func(c *Config) { c.WebhookMinSeverity = "panic" }},
		{"no retries", func(c *Config) { c.WebhookMaxRetries = 0 }},
	}

	require.NoError(t, valid().validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.validate())
		})
	}
}
