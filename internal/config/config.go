// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package config loads the configuration file of the robdd command.
//
// Config file locations (priority order):
//  1. the --config flag
//  2. $ROBDD_CONFIG
//  3. ./robdd.yaml
//
// A missing file is not an error: every field has a default value.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dalzilio/robdd"
)

// Config is the content of a configuration file.
type Config struct {
	BDD    BDDConfig    `yaml:"bdd"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// BDDConfig holds the parameters of the sessions built by the command. Zero
// values keep the defaults of the robdd package.
type BDDConfig struct {
	Nodesize        int `yaml:"nodesize"`
	Maxnodesize     int `yaml:"maxnodesize"`
	Maxnodeincrease int `yaml:"maxnodeincrease"`
	Itebudget       int `yaml:"itebudget"`
}

// OutputConfig describes how DOT files are rendered.
type OutputConfig struct {
	Formats []string `yaml:"formats,omitempty"` // Image formats passed to dot -T
	Dot     string   `yaml:"dot"`               // Name or path of the dot binary
}

// LogConfig holds the logging options.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
}

// Load finds and loads the config file, or returns defaults if none found. It
// also returns the path of the file that was read, if any.
func Load(path string) (*Config, string, error) {
	if path == "" {
		path = FindConfigPath()
	}
	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// FindConfigPath returns the first config file found, or the empty string.
func FindConfigPath() string {
	if p := os.Getenv("ROBDD_CONFIG"); p != "" {
		return p
	}
	if _, err := os.Stat("robdd.yaml"); err == nil {
		return "robdd.yaml"
	}
	return ""
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return &cfg, path, nil
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Output.Dot == "" {
		c.Output.Dot = "dot"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks that numeric limits are not negative.
func (c *Config) Validate() error {
	b := c.BDD
	for name, v := range map[string]int{
		"nodesize":        b.Nodesize,
		"maxnodesize":     b.Maxnodesize,
		"maxnodeincrease": b.Maxnodeincrease,
		"itebudget":       b.Itebudget,
	} {
		if v < 0 {
			return fmt.Errorf("config: bdd.%s must not be negative (%d)", name, v)
		}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	return nil
}

// Options returns the session options corresponding to the bdd section.
func (c *Config) Options() []robdd.Option {
	var opts []robdd.Option
	if c.BDD.Nodesize > 0 {
		opts = append(opts, robdd.Nodesize(c.BDD.Nodesize))
	}
	if c.BDD.Maxnodesize > 0 {
		opts = append(opts, robdd.Maxnodesize(c.BDD.Maxnodesize))
	}
	if c.BDD.Maxnodeincrease > 0 {
		opts = append(opts, robdd.Maxnodeincrease(c.BDD.Maxnodeincrease))
	}
	if c.BDD.Itebudget > 0 {
		opts = append(opts, robdd.Itebudget(c.BDD.Itebudget))
	}
	return opts
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
