package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	// DocStore selects the document backend: file, sqlite, or redis.
	DocStore string `env:"DOC_STORE" envDefault:"file"`
	DataDir  string `env:"DATA_DIR" envDefault:"data"`
	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	// BaseURL is the externally reachable address used in QR join links.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	SeedDemo bool   `env:"SEED_DEMO" envDefault:"false"`
	SPADir   string `env:"SPA_DIR" envDefault:"../web/dist"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	switch cfg.DocStore {
	case "file", "sqlite", "redis":
	default:
		return nil, fmt.Errorf("unknown DOC_STORE %q (want file, sqlite, or redis)", cfg.DocStore)
	}
	return &cfg, nil
}
