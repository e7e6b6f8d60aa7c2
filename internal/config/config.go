// Package config loads tool configuration and the locally stored API
// credential. Configuration is layered: built-in defaults, then the JSON
// config file under the user's home directory, then MENSAJERO_-prefixed
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	dirName        = ".mensajero"
	configFileName = "config.json"
	envPrefix      = "MENSAJERO_"
)

// Config holds the user-tunable settings.
type Config struct {
	Model             string  `koanf:"model"`
	Temperature       float64 `koanf:"temperature"`
	MaxResponseTokens int     `koanf:"max_response_tokens"`
	TimeoutSeconds    int     `koanf:"timeout_seconds"`
	ChunkThreshold    int     `koanf:"chunk_threshold"`
	MaxTokensPerChunk int     `koanf:"max_tokens_per_chunk"`
	OverlapLines      int     `koanf:"overlap_lines"`
	MaxAttempts       int     `koanf:"max_attempts"`
	LanguageAttempts  int     `koanf:"language_attempts"`
	EnforceLanguage   bool    `koanf:"enforce_language"`
	CallDelaySeconds  int     `koanf:"call_delay_seconds"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Model:             "gpt-4o-mini",
		Temperature:       0.3,
		MaxResponseTokens: 1000,
		TimeoutSeconds:    45,
		ChunkThreshold:    4000,
		MaxTokensPerChunk: 2000,
		OverlapLines:      5,
		MaxAttempts:       3,
		LanguageAttempts:  5,
		EnforceLanguage:   true,
		CallDelaySeconds:  1,
	}
}

// Dir returns the tool's directory under the user's home.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// Load builds the effective configuration: defaults, overridden by the
// config file when present, overridden by environment variables.
func Load() (Config, error) {
	cfg := Default()

	k := koanf.New(".")

	dir, err := Dir()
	if err != nil {
		return cfg, err
	}
	path := filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return cfg, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return cfg, fmt.Errorf("failed to load environment config: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
