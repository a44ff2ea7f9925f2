package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env carries process-level settings read from the environment. Command-line
// flags use these as defaults, so explicit flags still win.
type Env struct {
	DBPath     string `env:"MINIGAMES_DB"`
	ConfigPath string `env:"MINIGAMES_CONFIG"`
	Seed       int64  `env:"MINIGAMES_SEED"`
}

// ParseEnv loads process settings from MINIGAMES_* environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("config: parse env: %w", err)
	}
	return e, nil
}
