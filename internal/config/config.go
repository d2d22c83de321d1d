// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for Lunaa.
//
// Configuration sources, in order of precedence:
//   - environment variables (OLLAMA_MODEL, SYSTEM_PROMPT, LUNAA_OLLAMA_URL)
//   - ~/.lunaa/config.toml
//   - built-in defaults
//
// The rest of the application receives a Config by value and never
// touches the environment itself.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultModel is used when neither config file nor environment names one.
const DefaultModel = "llama3.1"

// DefaultSystemPrompt matches the assistant's stock instruction.
const DefaultSystemPrompt = "You are a helpful, concise assistant. Answer clearly and directly."

// DefaultOllamaURL is the daemon's standard local address.
const DefaultOllamaURL = "http://127.0.0.1:11434"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete Lunaa configuration.
type Config struct {
	// Model is the Ollama model identifier sent with every request.
	Model string `toml:"model"`

	// SystemPrompt seeds each conversation; empty disables the system turn.
	SystemPrompt string `toml:"system_prompt"`

	// OllamaURL is the daemon base URL.
	OllamaURL string `toml:"ollama_url"`

	// UI holds presentation settings.
	UI UIConfig `toml:"ui"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// ShowTimestamps renders a timestamp next to each transcript entry.
	ShowTimestamps bool `toml:"show_timestamps"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Model:        DefaultModel,
		SystemPrompt: DefaultSystemPrompt,
		OllamaURL:    DefaultOllamaURL,
		UI: UIConfig{
			ShowTimestamps: false,
		},
	}
}

// =============================================================================
// LOADING
// =============================================================================

// Dir returns the Lunaa configuration directory (~/.lunaa).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".lunaa"), nil
}

// Path returns the configuration file path (~/.lunaa/config.toml).
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the configuration: defaults, then the config file if present,
// then environment overrides. A missing file is not an error.
func Load() (Config, error) {
	cfg := Default()

	path, err := Path()
	if err == nil {
		if loadErr := loadFile(&cfg, path); loadErr != nil {
			return cfg, loadErr
		}
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFromPath reads defaults, the named TOML file, and env overrides.
func LoadFromPath(path string) (Config, error) {
	cfg := Default()
	if err := loadFile(&cfg, path); err != nil {
		return cfg, err
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadFile decodes a TOML file over cfg. A missing file leaves cfg as is.
func loadFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// ApplyEnvOverrides applies environment variables over the current values.
func (c *Config) ApplyEnvOverrides() {
	// OLLAMA_MODEL
	if model := os.Getenv("OLLAMA_MODEL"); model != "" {
		c.Model = model
	}

	// SYSTEM_PROMPT
	if prompt, ok := os.LookupEnv("SYSTEM_PROMPT"); ok {
		c.SystemPrompt = prompt
	}

	// LUNAA_OLLAMA_URL
	if u := os.Getenv("LUNAA_OLLAMA_URL"); u != "" {
		c.OllamaURL = u
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	u, err := url.Parse(c.OllamaURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("ollama_url %q is not a valid URL", c.OllamaURL)
	}
	return nil
}
