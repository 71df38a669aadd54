package config

import (
	"errors"
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
//  2. file (YAML) if XRPLACE_CONFIG is set
//  3. env (prefix XRPLACE_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("XRPLACE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: XRPLACE_WINDOW_WIDTH, XRPLACE_LOG_LEVEL, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("XRPLACE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "xrplace_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.WindowWidth <= 0 || cfg.WindowHeight <= 0 {
		return nil, errors.New("window size must be positive")
	}
	if cfg.FloorExtent <= 0 {
		return nil, errors.New("floor_extent must be positive")
	}
	return &cfg, nil
}
