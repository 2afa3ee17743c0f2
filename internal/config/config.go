// ABOUTME: Arete configuration management with backend selection.
// ABOUTME: Handles settings, preferences, and storage backend factory function.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/arete/internal/charm"
	"github.com/harperreed/arete/internal/storage"
)

// Config stores arete tool configuration.
type Config struct {
	// Backend selects the storage backend: "charm" (default) or "sqlite".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage when using the
	// sqlite backend; arete.db lives here. Supports ~ expansion.
	// Defaults to ~/.local/share/arete.
	DataDir string `json:"data_dir,omitempty"`

	// DefaultUser is the user ID used when no --user flag is given.
	DefaultUser string `json:"default_user,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "charm".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "charm"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetDefaultUser returns the configured default user ID.
func (c *Config) GetDefaultUser() string {
	if c.DefaultUser == "" {
		return "default"
	}
	return c.DefaultUser
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	switch backend := c.GetBackend(); backend {
	case "charm":
		return charm.GetClient()
	case "sqlite":
		dbPath := filepath.Join(c.GetDataDir(), "arete.db")
		return storage.Open(dbPath)
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "arete", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
