package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// EnvHome overrides the phonelens home directory.
	EnvHome = "PHONELENS_HOME"

	dirName      = ".phonelens"
	fileName     = "config.yaml"
	cacheDirName = "cache"
)

// Dir returns the phonelens configuration directory, honoring the
// PHONELENS_HOME override.
func Dir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(homeDir, dirName), nil
}

// DefaultFile returns the default config file path under Dir.
func DefaultFile() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// EnsureDir creates the configuration directory if needed.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// CacheDir returns the cache directory: the configured one, or the
// "cache" subdirectory of Dir.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, cacheDirName), nil
}
