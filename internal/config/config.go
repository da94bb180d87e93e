package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/shenikar/city_safety_map/internal/models"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Simulation Config
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"5s"`
	AlertRetention  time.Duration `env:"ALERT_RETENTION" envDefault:"2h"`
	RandomSeed      uint64        `env:"RANDOM_SEED" envDefault:"0"`

	// HTTP Config
	RateLimitRPS     float64  `env:"RATE_LIMIT_RPS" envDefault:"20"`
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`

	// Redis Config
	RedisEnabled bool   `env:"REDIS_ENABLED" envDefault:"false"`
	RedisAddr    string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass    string `env:"REDIS_PASSWORD"`
	RedisDB      int    `env:"REDIS_DB" envDefault:"0"`

	// Webhook Config
	WebhookURL         string          `env:"WEBHOOK_URL"`
	WebhookSecret      string          `env:"WEBHOOK_SECRET"`
	WebhookTimeout     time.Duration   `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries  int             `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay   time.Duration   `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`
	WebhookMinSeverity models.Severity `env:"WEBHOOK_MIN_SEVERITY" envDefault:"warning"`

	// Telemetry Config
	OTLPMetricsEndpoint string `env:"OTEL_EXPORTER_OTLP_METRICS_ENDPOINT"`
	OTLPTracesEndpoint  string `env:"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"`
	ServiceName         string `env:"SERVICE_NAME" envDefault:"city-safety-map"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		RefreshInterval:     getEnvAsDuration("REFRESH_INTERVAL", 5*time.Second),
		AlertRetention:      getEnvAsDuration("ALERT_RETENTION", 2*time.Hour),
		RandomSeed:          getEnvAsUint64("RANDOM_SEED", 0),
		RateLimitRPS:        getEnvAsFloat("RATE_LIMIT_RPS", 20),
		CORSAllowOrigins:    getEnvAsList("CORS_ALLOW_ORIGINS", []string{"*"}),
		RedisEnabled:        getEnvAsBool("REDIS_ENABLED", false),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:           os.Getenv("REDIS_PASSWORD"),
		RedisDB:             getEnvAsInt("REDIS_DB", 0),
		WebhookURL:          os.Getenv("WEBHOOK_URL"),
		WebhookSecret:       os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:      getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:   getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:    getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		WebhookMinSeverity:  models.Severity(strings.ToLower(getEnv("WEBHOOK_MIN_SEVERITY", string(models.SeverityWarning)))),
		OTLPMetricsEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT"),
		OTLPTracesEndpoint:  os.Getenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"),
		ServiceName:         getEnv("SERVICE_NAME", "city-safety-map"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	port, err := strconv.Atoi(c.HTTPPort)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid HTTP port: %s", c.HTTPPort)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	if c.RefreshInterval < time.Second {
		return fmt.Errorf("refresh interval must be at least 1 second, got %v", c.RefreshInterval)
	}
	if c.AlertRetention <= 0 {
		return fmt.Errorf("alert retention must be positive, got %v", c.AlertRetention)
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit must be positive, got %v", c.RateLimitRPS)
	}
	if !c.WebhookMinSeverity.Valid() {
		return fmt.Errorf("invalid webhook min severity: %s", c.WebhookMinSeverity)
	}
	if c.WebhookMaxRetries < 1 {
		return fmt.Errorf("webhook max retries must be at least 1, got %d", c.WebhookMaxRetries)
	}

	return nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := strconv.ParseUint(value, 10, 64); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

// getEnvAsList разбирает список через запятую
func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
