package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a YAML configuration file.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// Default returns the configuration a CLI invocation uses when no config
// file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func validate(cfg *Config) error {
	if cfg.Output != "" && !validOutputs[cfg.Output] {
		return fmt.Errorf("output must be %q or %q, got %q", "compact", "pretty", cfg.Output)
	}
	if cfg.MaxRecursionDepth < 0 {
		return fmt.Errorf("max_recursion_depth must not be negative")
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Output == "" {
		cfg.Output = "pretty"
	}
	if cfg.MaxRecursionDepth == 0 {
		cfg.MaxRecursionDepth = defaultMaxRecursionDepth
	}
}
