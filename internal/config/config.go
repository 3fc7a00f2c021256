// Package config reads process settings for the duel binaries from the
// environment. Command-line flags override these values.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/peterkuimelis/duelcore/internal/catalog"
	"github.com/peterkuimelis/duelcore/internal/session"
)

// Config holds the settings shared by the CLI, web and MCP binaries.
type Config struct {
	Port    string `env:"DUEL_PORT"     envDefault:"9999"`
	WebPort string `env:"DUEL_WEB_PORT" envDefault:"8080"`
	// Decks and Catalog are YAML files; empty means the built-in lists.
	Decks   string `env:"DUEL_DECKS"`
	Catalog string `env:"DUEL_CATALOG"`
	Seed    int64  `env:"DUEL_SEED"`

	AIDelay             time.Duration `env:"DUEL_AI_DELAY"              envDefault:"600ms"`
	AutoAdvanceDelay    time.Duration `env:"DUEL_AUTO_ADVANCE_DELAY"    envDefault:"400ms"`
	AttackResponseDelay time.Duration `env:"DUEL_ATTACK_RESPONSE_DELAY" envDefault:"1500ms"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// SessionOptions returns the session timing settings.
func (c Config) SessionOptions() session.Options {
	return session.Options{
		AIDelay:             c.AIDelay,
		AutoAdvanceDelay:    c.AutoAdvanceDelay,
		AttackResponseDelay: c.AttackResponseDelay,
	}
}

// LoadCards reads the catalog and deck lists, falling back to the
// built-in ones.
func (c Config) LoadCards() (*catalog.Catalog, *catalog.DeckFile, error) {
	cat := catalog.Default()
	if c.Catalog != "" {
		var err error
		if cat, err = catalog.Load(c.Catalog); err != nil {
			return nil, nil, fmt.Errorf("load catalog: %w", err)
		}
	}
	decks, err := catalog.LoadDecks(c.Decks, cat)
	if err != nil {
		return nil, nil, fmt.Errorf("load decks: %w", err)
	}
	return cat, decks, nil
}

// DuelSeed returns the configured seed, or a fresh one when unset.
func (c Config) DuelSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
