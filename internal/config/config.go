// Package config loads and saves the vibe-sync configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Default values.
const (
	DefaultAPIURL          = "http://localhost:3000"
	DefaultIntervalSeconds = 60
	DefaultIssueLimit      = 100
)

// ProjectMapping pairs one GitHub repository with one Vibe Kanban project.
type ProjectMapping struct {
	GitHubRepo    string `json:"github_repo"`
	VibeProjectID string `json:"vibe_project_id"`
}

// Config holds the full configuration for vibe-sync.
type Config struct {
	VibeAPIURL          string           `json:"vibe_api_url"`
	SyncIntervalSeconds int              `json:"sync_interval_seconds"`
	IssueLimit          int              `json:"issue_limit"`
	Projects            []ProjectMapping `json:"projects"`
}

// Default returns a Config with sensible defaults and no mappings.
func Default() *Config {
	return &Config{
		VibeAPIURL:          DefaultAPIURL,
		SyncIntervalSeconds: DefaultIntervalSeconds,
		IssueLimit:          DefaultIssueLimit,
	}
}

// DefaultPath returns the per-user config location
// (~/.config/vibe-sync/config.json).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "vibe-sync", "config.json"), nil
}

// ResolvePath picks the config file to use: the explicit flag value if given,
// otherwise the per-user path if it exists, otherwise ./config.json if it
// exists, otherwise the per-user path (as the target for setup to create).
func ResolvePath(flagPath string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	userPath, err := DefaultPath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		return userPath, nil
	}
	if _, err := os.Stat("config.json"); err == nil {
		return "config.json", nil
	}
	return userPath, nil
}

// Load reads the config file at path and applies environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file %s not found", path)
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	applyEnv(cfg)

	if cfg.SyncIntervalSeconds <= 0 {
		cfg.SyncIntervalSeconds = DefaultIntervalSeconds
	}
	if cfg.IssueLimit <= 0 {
		cfg.IssueLimit = DefaultIssueLimit
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories as needed.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides individual fields from VIBESYNC_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("VIBESYNC_API_URL"); v != "" {
		cfg.VibeAPIURL = v
	}
	if v := os.Getenv("VIBESYNC_INTERVAL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SyncIntervalSeconds = n
		}
	}
	if v := os.Getenv("VIBESYNC_ISSUE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.IssueLimit = n
		}
	}
}
