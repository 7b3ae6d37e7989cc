package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	EntityBackendRules  = "rules"
	EntityBackendOpenAI = "openai"
)

type Config struct {
	OpenAIAPIKey            string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL           string        `env:"OPENAI_BASE_URL"`
	OpenAIModel             string        `env:"OPENAI_MODEL"               envDefault:"gpt-4o-mini"`
	OpenAITimeout           time.Duration `env:"OPENAI_TIMEOUT"             envDefault:"60s"`
	OpenAIRequestsPerMinute int           `env:"OPENAI_REQUESTS_PER_MINUTE" envDefault:"60"`
	EntityBackend           string        `env:"ENTITY_BACKEND"             envDefault:"rules"`
	CacheDBPath             string        `env:"CACHE_DB_PATH"`
	SummaryCacheSize        int           `env:"SUMMARY_CACHE_SIZE"         envDefault:"256"`
	SummaryCacheTTL         time.Duration `env:"SUMMARY_CACHE_TTL"          envDefault:"24h"`
	DocumentTimeout         time.Duration `env:"DOCUMENT_TIMEOUT"`
	LogLevel                string        `env:"LOG_LEVEL"                  envDefault:"info"`
}

func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.OpenAIAPIKey = strings.TrimSpace(cfg.OpenAIAPIKey)
	cfg.EntityBackend = strings.ToLower(strings.TrimSpace(cfg.EntityBackend))

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.EntityBackend {
	case EntityBackendRules, EntityBackendOpenAI:
	default:
		return fmt.Errorf("unknown ENTITY_BACKEND %q (want %q or %q)",
			c.EntityBackend, EntityBackendRules, EntityBackendOpenAI)
	}

	if c.OpenAIRequestsPerMinute < 0 {
		return fmt.Errorf("OPENAI_REQUESTS_PER_MINUTE must not be negative, got %d", c.OpenAIRequestsPerMinute)
	}

	if c.DocumentTimeout < 0 {
		return fmt.Errorf("DOCUMENT_TIMEOUT must not be negative, got %s", c.DocumentTimeout)
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

func ParseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}

	return level, nil
}
