// Package provider fetches phone intelligence from external data APIs and
// aggregates the per-provider results into one merged view.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Kind identifies the class of data a provider serves.
type Kind string

// Provider kinds.
const (
	KindCarrier  Kind = "carrier"
	KindFraud    Kind = "fraud"
	KindIdentity Kind = "identity"
	KindLocation Kind = "location"
	KindSocial   Kind = "social"
)

// Default request settings applied when a Config leaves them zero.
const (
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 60
)

// Config describes one external data provider endpoint.
type Config struct {
	// Name labels the provider in logs and metadata.
	Name string

	// BaseURL is the API root, without a trailing slash.
	BaseURL string

	// APIKey authenticates requests. When empty, requests are sent
	// unauthenticated with no auth headers at all.
	APIKey string

	// APISecret enables request signing on top of the API key.
	APISecret string

	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration

	// RateLimit is the provider's advertised requests-per-minute budget.
	// Informational; enforcement is the provider operator's side.
	RateLimit int
}

// withDefaults fills the zero-valued settings.
func (c Config) withDefaults() Config {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RateLimit == 0 {
		c.RateLimit = DefaultRateLimit
	}
	return c
}

// Provider is one external data source for a phone number.
type Provider interface {
	// Kind reports which aggregate section this provider fills.
	Kind() Kind

	// Fetch returns the provider's data for a phone number. The concrete
	// providers degrade to fallback data on API failures; an error
	// indicates the provider could not produce anything at all.
	Fetch(ctx context.Context, phone string) (map[string]any, error)
}

// New builds a provider of the given kind. Kinds without an implementation
// return an error.
func New(kind Kind, cfg Config, logger zerolog.Logger) (Provider, error) {
	client := newClient(cfg, logger)
	switch kind {
	case KindCarrier:
		return &CarrierProvider{client: client}, nil
	case KindFraud:
		return &FraudProvider{client: client}, nil
	default:
		return nil, fmt.Errorf("unknown provider kind: %s", kind)
	}
}
