// Package config loads and validates the chartd configuration. Broker
// credentials land here, at startup, and are passed into the OANDA
// client explicitly; nothing deeper in the stack touches process
// environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/chartd/indicators"
)

// Config represents the complete service configuration.
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Oanda   OandaConfig   `json:"oanda" yaml:"oanda"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Engine  EngineConfig  `json:"engine" yaml:"engine"`
}

// ServerConfig contains the HTTP listener parameters.
type ServerConfig struct {
	Addr           string   `json:"addr" yaml:"addr"`
	APIKey         string   `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
}

// OandaConfig contains the broker endpoint and credentials.
type OandaConfig struct {
	Env       string `json:"env" yaml:"env"` // practice or live
	BaseURL   string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Token     string `json:"token,omitempty" yaml:"token,omitempty"`
	AccountID string `json:"account_id,omitempty" yaml:"account_id,omitempty"`
}

// JournalConfig contains journaling parameters.
type JournalConfig struct {
	Type string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// EngineConfig contains indicator engine parameters.
type EngineConfig struct {
	// Variant selects the default RSI/ADX formulation; requests can
	// still override it per call.
	Variant string `json:"variant" yaml:"variant"`
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the config to a file, YAML or JSON by extension.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// ApplyEnv overlays environment variables onto the config. This is the
// one sanctioned place ambient state enters: the CLI calls it once at
// startup, after the optional .env load.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("OANDA_TOKEN"); v != "" {
		c.Oanda.Token = v
	}
	if v := os.Getenv("OANDA_ACCOUNT_ID"); v != "" {
		c.Oanda.AccountID = v
	}
	if v := os.Getenv("OANDA_ENV"); v != "" {
		c.Oanda.Env = v
	}
	if v := os.Getenv("OANDA_BASE_URL"); v != "" {
		c.Oanda.BaseURL = v
	}
	if v := os.Getenv("CHARTD_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("CHARTD_API_KEY"); v != "" {
		c.Server.APIKey = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	switch strings.ToLower(c.Oanda.Env) {
	case "", "practice", "demo", "live":
	default:
		return fmt.Errorf("oanda.env must be practice or live, got %q", c.Oanda.Env)
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv", "sqlite":
		if c.Journal.Path == "" {
			return fmt.Errorf("journal.path required for %s journal", c.Journal.Type)
		}
	default:
		return fmt.Errorf("journal.type must be none, csv or sqlite, got %q", c.Journal.Type)
	}
	if _, err := indicators.ParseVariant(c.Engine.Variant); err != nil {
		return fmt.Errorf("engine.variant: %w", err)
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8443",
			AllowedOrigins: []string{"*"},
		},
		Oanda: OandaConfig{
			Env: "practice",
		},
		Journal: JournalConfig{
			Type: "none",
		},
		Engine: EngineConfig{
			Variant: string(indicators.Standard),
		},
	}
}
