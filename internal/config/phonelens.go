// Package config loads phonelens configuration from defaults, an optional
// YAML file and environment overrides, in that order.
package config

import (
	"time"

	"github.com/phonelens/phonelens/internal/logging"
	"github.com/phonelens/phonelens/internal/provider"
	"github.com/phonelens/phonelens/internal/social"
)

// Config is the full phonelens configuration.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Cache     CacheConfig     `yaml:"cache"`
	Providers ProvidersConfig `yaml:"providers"`
	Social    SocialConfig    `yaml:"social"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	// Env names the runtime environment. Anything other than
	// "production" loads a local .env file when present.
	Env string `yaml:"env" env:"PHONELENS_ENV"`
}

// CacheConfig controls the two-tier result cache. TTL and MaxAge accept
// Go duration strings or integer seconds; empty or "0" disables the
// corresponding bound.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled" env:"PHONELENS_CACHE_ENABLED"`
	Dir     string `yaml:"dir" env:"PHONELENS_CACHE_DIR"`
	TTL     string `yaml:"ttl" env:"PHONELENS_CACHE_TTL"`
	MaxAge  string `yaml:"max_age" env:"PHONELENS_CACHE_MAX_AGE"`

	// Resolved from the string forms during Load.
	TTLDuration    time.Duration `yaml:"-" env:"-"`
	MaxAgeDuration time.Duration `yaml:"-" env:"-"`
}

// ProvidersConfig names the external data providers.
type ProvidersConfig struct {
	Carrier ProviderConfig `yaml:"carrier" envPrefix:"PHONELENS_CARRIER_"`
	Fraud   ProviderConfig `yaml:"fraud" envPrefix:"PHONELENS_FRAUD_"`
}

// ProviderConfig configures one external data provider. API credentials
// normally arrive through the environment (or a .env file) rather than
// the YAML file.
type ProviderConfig struct {
	Enabled   bool   `yaml:"enabled" env:"ENABLED"`
	BaseURL   string `yaml:"base_url" env:"BASE_URL"`
	APIKey    string `yaml:"api_key" env:"API_KEY"`
	APISecret string `yaml:"api_secret" env:"API_SECRET"`
	Timeout   string `yaml:"timeout" env:"TIMEOUT"`
	RateLimit int    `yaml:"rate_limit" env:"RATE_LIMIT"`

	TimeoutDuration time.Duration `yaml:"-" env:"-"`
}

// ToProvider converts the section into the provider package's Config.
func (pc ProviderConfig) ToProvider(name string) provider.Config {
	return provider.Config{
		Name:      name,
		BaseURL:   pc.BaseURL,
		APIKey:    pc.APIKey,
		APISecret: pc.APISecret,
		Timeout:   pc.TimeoutDuration,
		RateLimit: pc.RateLimit,
	}
}

// SocialConfig controls the social platform checker.
type SocialConfig struct {
	Enabled         bool   `yaml:"enabled" env:"PHONELENS_SOCIAL_ENABLED"`
	Timeout         string `yaml:"timeout" env:"PHONELENS_SOCIAL_TIMEOUT"`
	RequestInterval string `yaml:"request_interval" env:"PHONELENS_SOCIAL_REQUEST_INTERVAL"`
	UserAgent       string `yaml:"user_agent" env:"PHONELENS_SOCIAL_USER_AGENT"`

	TimeoutDuration         time.Duration `yaml:"-" env:"-"`
	RequestIntervalDuration time.Duration `yaml:"-" env:"-"`
}

// ToSocial converts the section into the social package's Config.
func (sc SocialConfig) ToSocial() social.Config {
	return social.Config{
		Timeout:         sc.TimeoutDuration,
		RequestInterval: sc.RequestIntervalDuration,
		UserAgent:       sc.UserAgent,
	}
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"PHONELENS_LOG_LEVEL"`
	Format string `yaml:"format" env:"PHONELENS_LOG_FORMAT"`
	File   string `yaml:"file" env:"PHONELENS_LOG_FILE"`
}

// ToLogging converts the section into the logging package's Config.
// A configured file path selects file output; otherwise logs go to
// stderr.
func (lc LoggingConfig) ToLogging() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// Defaults returns the built-in configuration: cache on with a 24h TTL
// and a 24h staleness bound, social checks on, providers off until
// configured.
func Defaults() Config {
	return Config{
		Cache: CacheConfig{
			Enabled: true,
			TTL:     "24h",
			MaxAge:  "24h",
		},
		Providers: ProvidersConfig{
			Carrier: ProviderConfig{Timeout: "10s", RateLimit: 60},
			Fraud:   ProviderConfig{Timeout: "10s", RateLimit: 60},
		},
		Social: SocialConfig{
			Enabled:         true,
			Timeout:         "5s",
			RequestInterval: "1s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
