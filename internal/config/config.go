package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings GameTrackr reads at start-up.
type Config struct {
	APIKey      string
	BaseURL     string
	LogFile     string
	SessionFile string
	LogLevel    string
}

// APIKeyEnv names the environment variable that overrides api_key.
const APIKeyEnv = "RAWG_API_KEY"

const (
	defaultConfigPath  = "~/.config/gametrackr/config.toml"
	defaultBaseURL     = "https://api.rawg.io/api"
	defaultLogFile     = "~/.local/state/gametrackr/gametrackr.log"
	defaultSessionFile = "~/.config/gametrackr/session.toml"
	defaultLogLevel    = "info"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the config file, falling back to defaults when
// missing. The RAWG_API_KEY environment variable wins over api_key.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw struct {
		APIKey      string `toml:"api_key"`
		BaseURL     string `toml:"base_url"`
		LogFile     string `toml:"log_file"`
		SessionFile string `toml:"session_file"`
		LogLevel    string `toml:"log_level"`
	}

	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer func() { _ = file.Close() }()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	cfg := Config{
		APIKey:      strings.TrimSpace(raw.APIKey),
		BaseURL:     valueOr(raw.BaseURL, defaultBaseURL),
		LogFile:     mustExpand(valueOr(raw.LogFile, defaultLogFile)),
		SessionFile: mustExpand(valueOr(raw.SessionFile, defaultSessionFile)),
		LogLevel:    strings.ToLower(valueOr(raw.LogLevel, defaultLogLevel)),
	}
	if key := strings.TrimSpace(os.Getenv(APIKeyEnv)); key != "" {
		cfg.APIKey = key
	}
	return cfg, nil
}

// HasAPIKey reports whether catalog requests can be made.
func (c Config) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

func valueOr(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
