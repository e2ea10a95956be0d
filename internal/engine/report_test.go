package engine

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phonelens/phonelens/internal/analyzer"
	"github.com/phonelens/phonelens/internal/cache"
	"github.com/phonelens/phonelens/internal/number"
	"github.com/phonelens/phonelens/internal/provider"
	"github.com/phonelens/phonelens/internal/social"
)

type fakeSocial struct {
	results []social.Result
	err     error
	calls   int
}

func (f *fakeSocial) CheckAll(ctx context.Context, n *number.Number) ([]social.Result, error) {
	f.calls++
	return f.results, f.err
}

type fakeProviders struct {
	agg   *provider.Aggregate
	n     int
	calls int
}

func (f *fakeProviders) Aggregate(ctx context.Context, phone string) *provider.Aggregate {
	f.calls++
	return f.agg
}

func (f *fakeProviders) Len() int { return f.n }

// newTestEngine builds an engine with a real analyzer and a frozen clock.
// mutate adjusts the Params before construction.
func newTestEngine(t *testing.T, mutate func(*Params)) (*Engine, time.Time) {
	t.Helper()

	an, err := analyzer.New(zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(an.Close)

	p := Params{Analyzer: an, Logger: zerolog.Nop()}
	if mutate != nil {
		mutate(&p)
	}

	eng, err := New(p)
	require.NoError(t, err)

	frozen := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	eng.now = func() time.Time { return frozen }
	return eng, frozen
}

func newTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	c, err := cache.New(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return c
}

func TestNewRequiresAnalyzer(t *testing.T) {
	_, err := New(Params{Logger: zerolog.Nop()})
	require.Error(t, err)
}

func TestAnalyzeBuildsReport(t *testing.T) {
	eng, frozen := newTestEngine(t, nil)

	report, err := eng.Analyze(context.Background(), "+34 600 000 000", Options{})
	require.NoError(t, err)

	assert.Equal(t, "+34600000000", report.Number.E164)
	assert.Equal(t, "ES", report.Number.Region)
	assert.Equal(t, "mobile", report.Number.Type)
	assert.Equal(t, 34, report.Number.CountryCode)
	assert.Len(t, report.ScanID, 26)
	assert.Equal(t, frozen, report.GeneratedAt)
	assert.False(t, report.Cached)

	require.NotNil(t, report.Carrier)
	assert.Equal(t, 75, report.Carrier.Carrier.VerificationScore)

	assert.Nil(t, report.Social)
	assert.Nil(t, report.Providers)
}

func TestAnalyzeInvalidNumber(t *testing.T) {
	eng, _ := newTestEngine(t, nil)

	report, err := eng.Analyze(context.Background(), "not a number", Options{})
	require.ErrorIs(t, err, number.ErrInvalidNumber)
	assert.Nil(t, report)
}

func TestAnalyzeServesCachedReport(t *testing.T) {
	eng, _ := newTestEngine(t, func(p *Params) {
		p.Cache = newTestCache(t)
	})

	first, err := eng.Analyze(context.Background(), "+34600000000", Options{})
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := eng.Analyze(context.Background(), "+34600000000", Options{})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.ScanID, second.ScanID)
	assert.True(t, first.GeneratedAt.Equal(second.GeneratedAt))

	// The cached copy is a fresh instance; the first report is untouched.
	assert.NotSame(t, first, second)
	assert.False(t, first.Cached)
}

func TestAnalyzeRefreshBypassesRead(t *testing.T) {
	eng, _ := newTestEngine(t, func(p *Params) {
		p.Cache = newTestCache(t)
	})

	first, err := eng.Analyze(context.Background(), "+34600000000", Options{})
	require.NoError(t, err)

	second, err := eng.Analyze(context.Background(), "+34600000000", Options{Refresh: true})
	require.NoError(t, err)
	assert.False(t, second.Cached)
	assert.NotEqual(t, first.ScanID, second.ScanID)

	// Refresh still writes back: the next read serves the regenerated scan.
	third, err := eng.Analyze(context.Background(), "+34600000000", Options{})
	require.NoError(t, err)
	assert.True(t, third.Cached)
	assert.Equal(t, second.ScanID, third.ScanID)
}

func TestAnalyzeStaleCacheRecomputes(t *testing.T) {
	eng, _ := newTestEngine(t, func(p *Params) {
		p.Cache = newTestCache(t)
		p.CacheTTL = 40 * time.Millisecond
		p.CacheMaxAge = time.Hour
	})

	first, err := eng.Analyze(context.Background(), "+34600000000", Options{})
	require.NoError(t, err)

	time.Sleep(80 * time.Millisecond)

	second, err := eng.Analyze(context.Background(), "+34600000000", Options{})
	require.NoError(t, err)
	assert.False(t, second.Cached)
	assert.NotEqual(t, first.ScanID, second.ScanID)
}

func TestAnalyzeUnboundedAgeKeepsExpiredEntry(t *testing.T) {
	eng, _ := newTestEngine(t, func(p *Params) {
		p.Cache = newTestCache(t)
		p.CacheTTL = 10 * time.Millisecond
	})

	first, err := eng.Analyze(context.Background(), "+34600000000", Options{})
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	// Without a staleness bound anywhere, even a TTL-expired record is
	// served rather than recomputed.
	second, err := eng.Analyze(context.Background(), "+34600000000", Options{})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.ScanID, second.ScanID)
}

func TestAnalyzeMaxAgeOverride(t *testing.T) {
	eng, _ := newTestEngine(t, func(p *Params) {
		p.Cache = newTestCache(t)
	})

	_, err := eng.Analyze(context.Background(), "+34600000000", Options{})
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	// A tight staleness bound rejects the cached report.
	second, err := eng.Analyze(context.Background(), "+34600000000", Options{MaxAge: 10 * time.Millisecond})
	require.NoError(t, err)
	assert.False(t, second.Cached)

	// Without a bound the rewritten record is served again.
	third, err := eng.Analyze(context.Background(), "+34600000000", Options{})
	require.NoError(t, err)
	assert.True(t, third.Cached)
	assert.Equal(t, second.ScanID, third.ScanID)
}

func TestAnalyzeSocialSection(t *testing.T) {
	fake := &fakeSocial{results: []social.Result{
		{Platform: social.PlatformWhatsApp, Presence: social.PresenceRegistered},
	}}
	eng, _ := newTestEngine(t, func(p *Params) {
		p.Social = fake
	})

	report, err := eng.Analyze(context.Background(), "+34600000000", Options{Social: true})
	require.NoError(t, err)
	require.Len(t, report.Social, 1)
	assert.Equal(t, social.PresenceRegistered, report.Social[0].Presence)
	assert.Equal(t, 1, fake.calls)

	// Without the option the checker is not consulted.
	_, err = eng.Analyze(context.Background(), "+34600000001", Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, fake.calls)
}

func TestAnalyzeSocialFailureDegrades(t *testing.T) {
	fake := &fakeSocial{
		results: []social.Result{{Platform: social.PlatformWhatsApp, Presence: social.PresenceCheckFailed}},
		err:     context.DeadlineExceeded,
	}
	eng, _ := newTestEngine(t, func(p *Params) {
		p.Social = fake
	})

	report, err := eng.Analyze(context.Background(), "+34600000000", Options{Social: true})
	require.NoError(t, err)
	require.Len(t, report.Social, 1)
}

func TestAnalyzeProvidersSection(t *testing.T) {
	agg := &provider.Aggregate{
		CarrierInfo: map[string]any{"carrier": map[string]any{"name": "Movistar"}},
		Metadata:    provider.Metadata{Timestamp: "2025-06-01T12:00:00Z", Providers: []string{"carrier"}},
	}
	fake := &fakeProviders{agg: agg, n: 1}
	eng, _ := newTestEngine(t, func(p *Params) {
		p.Providers = fake
	})

	report, err := eng.Analyze(context.Background(), "+34600000000", Options{Providers: true})
	require.NoError(t, err)
	assert.Same(t, agg, report.Providers)
	assert.Equal(t, 1, fake.calls)
}

func TestAnalyzeSkipsEmptyProviderSet(t *testing.T) {
	fake := &fakeProviders{n: 0}
	eng, _ := newTestEngine(t, func(p *Params) {
		p.Providers = fake
	})

	report, err := eng.Analyze(context.Background(), "+34600000000", Options{Providers: true})
	require.NoError(t, err)
	assert.Nil(t, report.Providers)
	assert.Equal(t, 0, fake.calls)
}

func TestAnalyzeCachesSocialResults(t *testing.T) {
	fake := &fakeSocial{results: []social.Result{
		{Platform: social.PlatformTelegram, Presence: social.PresencePossible, Detail: "username lookup is private"},
	}}
	eng, _ := newTestEngine(t, func(p *Params) {
		p.Cache = newTestCache(t)
		p.Social = fake
	})

	_, err := eng.Analyze(context.Background(), "+34600000000", Options{Social: true})
	require.NoError(t, err)

	cached, err := eng.Analyze(context.Background(), "+34600000000", Options{Social: true})
	require.NoError(t, err)
	assert.True(t, cached.Cached)
	require.Len(t, cached.Social, 1)
	assert.Equal(t, social.PlatformTelegram, cached.Social[0].Platform)
	assert.Equal(t, "username lookup is private", cached.Social[0].Detail)

	// The cached report satisfied the call; no second scan ran.
	assert.Equal(t, 1, fake.calls)
}

func TestDecodeReportRejectsForeignPayload(t *testing.T) {
	_, err := decodeReport(map[string]any{"unrelated": true})
	require.Error(t, err)

	_, err = decodeReport(func() {})
	require.Error(t, err)
}
