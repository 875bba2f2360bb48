package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// defaultSeed keeps bot runs reproducible unless a seed is configured.
const defaultSeed = 0x77697463

// Config holds the turn policy tuning parameters. Adjust these to trade
// planning depth for safety margin against the referee's time limit.
type Config struct {
	// TurnBudget is the search time allowed on every turn but the first.
	TurnBudget time.Duration `yaml:"turn_budget"`
	// FirstTurnBudget is the search time allowed on the first turn.
	FirstTurnBudget time.Duration `yaml:"first_turn_budget"`
	// LearnTurns is how many opening turns may be spent learning before planning.
	LearnTurns int `yaml:"learn_turns"`
	// MinLearnScore is the lowest learnScore worth spending an opening turn on.
	MinLearnScore int `yaml:"min_learn_score"`
	// Seed feeds the random fallback used when a search times out.
	Seed int64 `yaml:"seed"`
	// MetricsAddr, when set, serves Prometheus metrics while playing.
	MetricsAddr string `yaml:"metrics_addr"`
}

// DefaultConfig returns the tuning used when no config file is given.
func DefaultConfig() Config {
	return Config{
		TurnBudget:      40 * time.Millisecond,
		FirstTurnBudget: 800 * time.Millisecond,
		LearnTurns:      4,
		MinLearnScore:   1,
		Seed:            defaultSeed,
	}
}

// LoadConfig merges defaults, the optional YAML file at path and WITCH_*
// environment overrides, in that order.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("WITCH_TURN_BUDGET"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("WITCH_TURN_BUDGET: %w", err)
		}
		cfg.TurnBudget = d
	}
	if v := os.Getenv("WITCH_FIRST_TURN_BUDGET"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("WITCH_FIRST_TURN_BUDGET: %w", err)
		}
		cfg.FirstTurnBudget = d
	}
	if v := os.Getenv("WITCH_LEARN_TURNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WITCH_LEARN_TURNS: %w", err)
		}
		cfg.LearnTurns = n
	}
	if v := os.Getenv("WITCH_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("WITCH_SEED: %w", err)
		}
		cfg.Seed = n
	}
	if v := os.Getenv("WITCH_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	return nil
}

// Validate rejects settings the policy cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.TurnBudget <= 0 {
		errs = append(errs, fmt.Errorf("turn_budget must be positive, got %v", c.TurnBudget))
	}
	if c.FirstTurnBudget <= 0 {
		errs = append(errs, fmt.Errorf("first_turn_budget must be positive, got %v", c.FirstTurnBudget))
	}
	if c.LearnTurns < 0 {
		errs = append(errs, fmt.Errorf("learn_turns must not be negative, got %d", c.LearnTurns))
	}
	return errors.Join(errs...)
}

// budget returns the search time for the given 1-based turn number.
func (c Config) budget(turnNo int) time.Duration {
	if turnNo <= 1 {
		return c.FirstTurnBudget
	}
	return c.TurnBudget
}
