package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	DatabaseURL       string
	RedisURL          string
	NATSUrl           string
	JWTSecret         string
	AIProvider        string
	OpenAIAPIKey      string
	OpenAIModel       string
	AnthropicAPIKey   string
	GenerationTimeout time.Duration
	ResultCacheTTL    time.Duration
	AssessRateLimit   int
	BatchConcurrency  int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// GenerationConfigured reports whether a generation provider can be built
// from this configuration.
func (c Config) GenerationConfigured() bool {
	switch c.AIProvider {
	case "anthropic":
		return c.AnthropicAPIKey != ""
	default:
		return c.OpenAIAPIKey != ""
	}
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ESSAYMARK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "EssayMark API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("ai.provider", "openai")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("generation_timeout_ms", 30000)
	v.SetDefault("result_cache_ttl", "10m")
	v.SetDefault("assess_rate_limit", 10)
	v.SetDefault("batch_concurrency", 4)

	ttlString := v.GetString("result_cache_ttl")
	if ttlString == "" {
		ttlString = "10m"
	}
	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid result cache ttl: %w", err)
	}

	timeoutMs := v.GetInt("generation_timeout_ms")
	if timeoutMs <= 0 {
		timeoutMs = 30000
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		DatabaseURL:       v.GetString("database.url"),
		RedisURL:          v.GetString("redis.url"),
		NATSUrl:           v.GetString("nats.url"),
		JWTSecret:         v.GetString("jwt.secret"),
		AIProvider:        strings.ToLower(v.GetString("ai.provider")),
		OpenAIAPIKey:      v.GetString("openai_api_key"),
		OpenAIModel:       v.GetString("openai.model"),
		AnthropicAPIKey:   v.GetString("anthropic_api_key"),
		GenerationTimeout: time.Duration(timeoutMs) * time.Millisecond,
		ResultCacheTTL:    ttl,
		AssessRateLimit:   v.GetInt("assess_rate_limit"),
		BatchConcurrency:  v.GetInt("batch_concurrency"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.AssessRateLimit <= 0 {
		cfg.AssessRateLimit = 10
	}
	if cfg.BatchConcurrency <= 0 {
		cfg.BatchConcurrency = 4
	}

	return cfg, nil
}
