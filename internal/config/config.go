// Package config loads reporef's optional YAML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// DefaultConfigDir is where reporef looks for config.yaml when
// REPOREF_CONFIG is not set.
const DefaultConfigDir = "~/.config/reporef"

const configFileName = "config.yaml"

// Config holds reporef's runtime configuration. Every field has a usable
// default so a missing or partial config file is never an error.
type Config struct {
	// HTTPTimeout bounds every resolver/fetcher's own http.Client.
	HTTPTimeout time.Duration `yaml:"httpTimeout"`

	// GitHubAPIBaseURL overrides https://api.github.com for GitHub
	// Enterprise installations.
	GitHubAPIBaseURL string `yaml:"githubAPIBaseURL,omitempty"`
	// GitLabBaseURL overrides https://gitlab.com for self-hosted GitLab.
	GitLabBaseURL string `yaml:"gitlabBaseURL,omitempty"`

	// ExtraDataverseInstallations, ExtraZenodoInstallations and
	// ExtraFigshareInstallations are merged on top of the embedded
	// built-in catalogs (see internal/catalog), keyed by hostname.
	ExtraDataverseInstallations []string `yaml:"extraDataverseInstallations,omitempty"`
	ExtraZenodoInstallations    []string `yaml:"extraZenodoInstallations,omitempty"`
	ExtraFigshareInstallations  []string `yaml:"extraFigshareInstallations,omitempty"`

	// LogLevel mirrors --log-level; the flag wins when both are set.
	LogLevel string `yaml:"logLevel,omitempty"`
}

// DefaultConfig returns reporef's built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTPTimeout: 30 * time.Second,
		LogLevel:    "warn",
	}
}

// Load resolves the config file path (REPOREF_CONFIG env var, else
// DefaultConfigDir/config.yaml), reads it if present and merges it onto
// DefaultConfig. A missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(resolvePath())
}

// LoadFrom reads and parses the YAML config file at path, merging it onto
// DefaultConfig. A missing file returns the defaults unchanged.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = DefaultConfig().HTTPTimeout
	}
	return cfg, nil
}

func resolvePath() string {
	if p := os.Getenv("REPOREF_CONFIG"); p != "" {
		return expandTilde(p)
	}
	return filepath.Join(expandTilde(DefaultConfigDir), configFileName)
}

// expandTilde replaces a leading ~/ with the user's home directory.
func expandTilde(p string) string {
	if strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, p[2:])
	}
	return p
}
