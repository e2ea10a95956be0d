// Package engine composes the analyzer, the social checker and the
// external providers into phone intelligence reports, with the result
// cache in front.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/phonelens/phonelens/internal/analyzer"
	"github.com/phonelens/phonelens/internal/cache"
	"github.com/phonelens/phonelens/internal/number"
	"github.com/phonelens/phonelens/internal/provider"
	"github.com/phonelens/phonelens/internal/social"
)

// ReportNumber is the parsed-number summary embedded in a Report.
type ReportNumber struct {
	E164          string `json:"e164"`
	International string `json:"international"`
	National      string `json:"national"`
	Region        string `json:"region"`
	CountryCode   int    `json:"country_code"`
	Type          string `json:"type"`
}

// Report is one full analysis of a phone number.
type Report struct {
	Number      ReportNumber             `json:"number"`
	ScanID      string                   `json:"scan_id"`
	GeneratedAt time.Time                `json:"generated_at"`
	Carrier     *analyzer.CarrierDetails `json:"carrier,omitempty"`
	Social      []social.Result          `json:"social,omitempty"`
	Providers   *provider.Aggregate      `json:"providers,omitempty"`

	// Cached is true when the report was served from the cache rather
	// than generated for this call.
	Cached bool `json:"cached"`
}

// SocialChecker is the slice of the social package the engine needs.
type SocialChecker interface {
	CheckAll(ctx context.Context, n *number.Number) ([]social.Result, error)
}

// ProviderSource is the slice of the provider package the engine needs.
type ProviderSource interface {
	Aggregate(ctx context.Context, phone string) *provider.Aggregate
	Len() int
}

// Params collects the engine's collaborators. Analyzer is required; the
// rest are optional and nil disables the corresponding report section.
type Params struct {
	Analyzer  *analyzer.Analyzer
	Social    SocialChecker
	Providers ProviderSource
	Cache     *cache.Cache

	// CacheTTL is attached to every cached report. Zero stores records
	// without an expiry.
	CacheTTL time.Duration

	// CacheMaxAge bounds how stale a cached report may be served. Zero
	// accepts any age (TTL-carrying records still honor their TTL).
	CacheMaxAge time.Duration

	Logger zerolog.Logger
}

// Options selects the report sections and cache behavior for one call.
type Options struct {
	// Social includes the platform presence scan.
	Social bool

	// Providers includes the external provider aggregate.
	Providers bool

	// MaxAge overrides the engine's staleness bound when positive.
	MaxAge time.Duration

	// Refresh bypasses the cache read. The regenerated report is still
	// written back.
	Refresh bool
}

// Engine builds phone reports.
type Engine struct {
	analyzer  *analyzer.Analyzer
	social    SocialChecker
	providers ProviderSource
	cache     *cache.Cache
	ttl       time.Duration
	maxAge    time.Duration
	log       zerolog.Logger

	now func() time.Time // for testing
}

// New builds an Engine from p.
func New(p Params) (*Engine, error) {
	if p.Analyzer == nil {
		return nil, errors.New("engine requires an analyzer")
	}
	return &Engine{
		analyzer:  p.Analyzer,
		social:    p.Social,
		providers: p.Providers,
		cache:     p.Cache,
		ttl:       p.CacheTTL,
		maxAge:    p.CacheMaxAge,
		log:       p.Logger.With().Str("component", "engine").Logger(),
		now:       time.Now,
	}, nil
}

// Analyze parses raw and returns its report, served from the cache when a
// fresh-enough one exists. Parse failures are errors; a failed social scan
// degrades to a partial report with a logged warning.
func (e *Engine) Analyze(ctx context.Context, raw string, opts Options) (*Report, error) {
	n, err := number.Parse(raw)
	if err != nil {
		return nil, err
	}

	key := n.E164
	maxAge := e.maxAge
	if opts.MaxAge > 0 {
		maxAge = opts.MaxAge
	}

	if e.cache != nil && !opts.Refresh {
		if payload, ok := e.cache.Get(key, maxAge); ok {
			report, decErr := decodeReport(payload)
			if decErr == nil {
				report.Cached = true
				e.log.Debug().Str("number", key).Str("scan_id", report.ScanID).Msg("serving cached report")
				return report, nil
			}
			e.log.Warn().Err(decErr).Str("number", key).Msg("cached payload unusable, regenerating")
		}
	}

	report := &Report{
		Number:      reportNumber(n),
		ScanID:      ulid.Make().String(),
		GeneratedAt: e.now().UTC(),
		Carrier:     e.analyzer.CarrierDetails(ctx, n),
	}

	if opts.Social && e.social != nil {
		results, socialErr := e.social.CheckAll(ctx, n)
		report.Social = results
		if socialErr != nil {
			e.log.Warn().Err(socialErr).Str("number", key).Msg("social scan incomplete")
		}
	}

	if opts.Providers && e.providers != nil && e.providers.Len() > 0 {
		report.Providers = e.providers.Aggregate(ctx, key)
	}

	if e.cache != nil {
		e.cache.Set(key, report, e.ttl)
	}

	e.log.Info().
		Str("number", key).
		Str("scan_id", report.ScanID).
		Bool("social", report.Social != nil).
		Bool("providers", report.Providers != nil).
		Msg("report generated")
	return report, nil
}

func reportNumber(n *number.Number) ReportNumber {
	return ReportNumber{
		E164:          n.E164,
		International: n.International,
		National:      n.National,
		Region:        n.Region,
		CountryCode:   n.CountryCode,
		Type:          n.Type,
	}
}

// decodeReport rebuilds a Report from a cached payload. Memory hits hand
// back the stored *Report and disk hits a decoded map; round-tripping
// through JSON covers both and always yields a fresh copy.
func decodeReport(v any) (*Report, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding cached payload: %w", err)
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decoding cached report: %w", err)
	}
	if report.Number.E164 == "" {
		return nil, errors.New("cached payload is not a report")
	}
	return &report, nil
}
