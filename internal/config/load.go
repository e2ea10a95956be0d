package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/phonelens/phonelens/internal/cache"
)

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
//
// An empty path loads the default config file (missing file is not an
// error); an explicit path must exist. Outside production a local .env
// file is loaded first so provider credentials can live there during
// development.
func Load(path string) (*Config, error) {
	loadDotenv()

	cfg := Defaults()

	if err := loadYAML(&cfg, path); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadDotenv loads a .env file from the working directory unless running
// in production. Missing files are fine.
func loadDotenv() {
	if os.Getenv("PHONELENS_ENV") != "production" {
		_ = godotenv.Load()
	}
}

// loadYAML reads the YAML file at path (or the default file when path is
// empty) and unmarshals it over cfg.
func loadYAML(cfg *Config, path string) error {
	explicit := path != ""
	if !explicit {
		defaultPath, err := DefaultFile()
		if err != nil {
			// No resolvable home directory; run on defaults and env.
			return nil
		}
		path = defaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// validate checks field combinations and resolves the duration strings.
func (c *Config) validate() error {
	var err error

	if c.Cache.TTLDuration, err = resolveBound(c.Cache.TTL); err != nil {
		return fmt.Errorf("cache.ttl: %w", err)
	}
	if c.Cache.MaxAgeDuration, err = resolveBound(c.Cache.MaxAge); err != nil {
		return fmt.Errorf("cache.max_age: %w", err)
	}

	if err = c.Providers.Carrier.resolve("providers.carrier"); err != nil {
		return err
	}
	if err = c.Providers.Fraud.resolve("providers.fraud"); err != nil {
		return err
	}

	if c.Social.TimeoutDuration, err = resolveBound(c.Social.Timeout); err != nil {
		return fmt.Errorf("social.timeout: %w", err)
	}
	if c.Social.RequestIntervalDuration, err = resolveBound(c.Social.RequestInterval); err != nil {
		return fmt.Errorf("social.request_interval: %w", err)
	}

	return nil
}

func (pc *ProviderConfig) resolve(section string) error {
	if pc.Enabled && pc.BaseURL == "" {
		return fmt.Errorf("%s: base_url is required when enabled", section)
	}
	var err error
	if pc.TimeoutDuration, err = resolveBound(pc.Timeout); err != nil {
		return fmt.Errorf("%s.timeout: %w", section, err)
	}
	return nil
}

// resolveBound parses a duration bound. Empty and "0" mean "no bound"
// and resolve to zero.
func resolveBound(s string) (time.Duration, error) {
	if s == "" || s == "0" {
		return 0, nil
	}
	return cache.ParseTTL(s)
}
