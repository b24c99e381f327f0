// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/dg-does/Drag-Library/internal/lending"
)

// Prefix is prepended to every environment variable name.
const Prefix = "DRAGLIB"

// Config holds server settings. Command-line flags override these values.
type Config struct {
	DB                string `envconfig:"DB" default:"draglibrary.sqlite3"`
	Addr              string `envconfig:"ADDR" default:":8080"`
	Log               string `envconfig:"LOG"`
	IdentityMatch     string `envconfig:"IDENTITY_MATCH" default:"user_id"`
	ConditionalWrites bool   `envconfig:"CONDITIONAL_WRITES" default:"true"`
}

// Load reads envFile into the environment if it exists, then fills a
// Config from DRAGLIB_* variables. Variables already set in the
// environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	if _, err := cfg.Identity(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Identity returns the configured borrower matching mode.
func (c *Config) Identity() (lending.IdentityMatch, error) {
	m, err := lending.ParseIdentityMatch(c.IdentityMatch)
	if err != nil {
		return 0, fmt.Errorf("%s_IDENTITY_MATCH: %w", Prefix, err)
	}
	return m, nil
}
