package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// CasdoorConfig holds identity provider settings
type CasdoorConfig struct {
	Endpoint     string `mapstructure:"CASDOOR_ENDPOINT"`
	ClientID     string `mapstructure:"CASDOOR_CLIENT_ID"`
	ClientSecret string `mapstructure:"CASDOOR_CLIENT_SECRET"`
	Cert         string `mapstructure:"CASDOOR_CERT"`
	Organization string `mapstructure:"CASDOOR_ORGANIZATION"`
	Application  string `mapstructure:"CASDOOR_APPLICATION"`
}

// AIConfig holds generative content service settings
type AIConfig struct {
	APIKey    string `mapstructure:"ANTHROPIC_API_KEY"`
	Model     string `mapstructure:"AI_MODEL"`
	MaxTokens int64  `mapstructure:"AI_MAX_TOKENS"`
}

// EventsConfig holds domain event publishing settings
type EventsConfig struct {
	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	TopicPrefix  string `mapstructure:"EVENTS_TOPIC_PREFIX"`
}

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`
	RawLogLevel string `mapstructure:"LOG_LEVEL"`
	LogLevel    slog.Level

	DatabaseURL string `mapstructure:"DATABASE_URL"`
	RedisURL    string `mapstructure:"REDIS_URL"`

	QuoteAPIURL        string `mapstructure:"QUOTE_API_URL"`
	CORSOrigins        string `mapstructure:"CORS_ORIGINS"`
	AIRateLimitPerMin  int    `mapstructure:"RATE_LIMIT_AI_PER_MINUTE"`
	TracingEnabled     bool   `mapstructure:"TRACING_ENABLED"`
	ProfileTxTimeoutMS int    `mapstructure:"PROFILE_TX_TIMEOUT_MS"`

	Casdoor CasdoorConfig `mapstructure:",squash"`
	AI      AIConfig      `mapstructure:",squash"`
	Events  EventsConfig  `mapstructure:",squash"`
}

var envKeys = []string{
	"PORT", "ENVIRONMENT", "LOG_LEVEL",
	"DATABASE_URL", "REDIS_URL",
	"QUOTE_API_URL", "CORS_ORIGINS", "RATE_LIMIT_AI_PER_MINUTE", "TRACING_ENABLED", "PROFILE_TX_TIMEOUT_MS",
	"CASDOOR_ENDPOINT", "CASDOOR_CLIENT_ID", "CASDOOR_CLIENT_SECRET", "CASDOOR_CERT", "CASDOOR_ORGANIZATION", "CASDOOR_APPLICATION",
	"ANTHROPIC_API_KEY", "AI_MODEL", "AI_MAX_TOKENS",
	"KAFKA_BROKERS", "EVENTS_TOPIC_PREFIX",
}

// LoadConfig reads configuration from .env (if present) and the environment
func LoadConfig() (*Config, error) {
	// .env is optional; real deployments inject env vars directly
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("QUOTE_API_URL", "https://zenquotes.io/api/today")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_AI_PER_MINUTE", 10)
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("PROFILE_TX_TIMEOUT_MS", 25000)
	v.SetDefault("AI_MODEL", "claude-3-5-haiku-latest")
	v.SetDefault("AI_MAX_TOKENS", 2048)
	v.SetDefault("EVENTS_TOPIC_PREFIX", "careerkit")

	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.LogLevel = ParseLogLevel(cfg.RawLogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks required settings
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	return nil
}

// KafkaBrokerList splits the comma separated broker list
func (c *Config) KafkaBrokerList() []string {
	return splitList(c.Events.KafkaBrokers)
}

// AllowedOrigins splits the comma separated CORS origin list
func (c *Config) AllowedOrigins() []string {
	return splitList(c.CORSOrigins)
}

func ParseLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
