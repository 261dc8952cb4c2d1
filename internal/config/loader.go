package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SONGRANK_CONFIG is set
//  3. env (prefix SONGRANK_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SONGRANK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SONGRANK_ADDR, SONGRANK_DB_PATH, ...
	// Keys map to the flat koanf tags on the struct; underscores are kept.
	envProvider := env.Provider("SONGRANK_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "songrank_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("%w: db_path must not be empty", ErrInvalidConfig)
	}
	if cfg.MaxListLimit < 1 {
		return nil, fmt.Errorf("%w: max_list_limit must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
