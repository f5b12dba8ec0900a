// Package config persists cassa settings and the session token as TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all cassa configuration.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Session    SessionConfig    `toml:"session"`
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// ServerConfig holds the SpeseCasa API endpoint settings.
type ServerConfig struct {
	BaseURL string `toml:"base_url,omitempty"`
}

// SessionConfig holds the persisted bearer token. An empty token means
// logged out.
type SessionConfig struct {
	Token string `toml:"token,omitempty"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	IncludePlanned bool `toml:"include_planned"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			BaseURL: "http://localhost:8000/api",
		},
		General: GeneralConfig{
			IncludePlanned: true,
		},
		Appearance: AppearanceConfig{
			Theme: "smeraldo",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cassa")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "cassa")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// StateDir returns the XDG-compliant state directory (log file, snapshot db).
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "cassa")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "cassa")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk. The file is 0600 because it carries the
// session token.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// GetToken returns the bearer token from env var or config, in that order.
func GetToken(cfg Config) string {
	if tok := os.Getenv("CASSA_TOKEN"); tok != "" {
		return tok
	}
	return cfg.Session.Token
}

// GetServerURL returns the API base URL from env var or config, in that order.
func GetServerURL(cfg Config) string {
	if url := os.Getenv("CASSA_SERVER"); url != "" {
		return url
	}
	return cfg.Server.BaseURL
}

// SaveToken stores the bearer token, preserving the rest of the config.
// Load errors are ignored so a corrupt config never blocks login.
func SaveToken(token string) error {
	cfg, _ := Load()
	cfg.Session.Token = token
	return Save(cfg)
}

// ClearToken removes the persisted token.
func ClearToken() error {
	cfg, _ := Load()
	cfg.Session.Token = ""
	return Save(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
