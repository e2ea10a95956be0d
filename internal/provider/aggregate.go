package provider

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// aggregateConcurrency bounds how many providers are queried at once.
const aggregateConcurrency = 4

// Metadata records when an aggregate was assembled and from which
// providers.
type Metadata struct {
	Timestamp string   `json:"timestamp"`
	Providers []string `json:"providers"`
}

// Aggregate is the merged view across all registered providers. Sections
// without a registered provider stay as empty maps; a provider that failed
// outright contributes an "error" entry in its section.
type Aggregate struct {
	CarrierInfo          map[string]any `json:"carrier_info"`
	FraudDetection       map[string]any `json:"fraud_detection"`
	IdentityVerification map[string]any `json:"identity_verification"`
	LocationData         map[string]any `json:"location_data"`
	SocialPresence       map[string]any `json:"social_presence"`
	Metadata             Metadata       `json:"metadata"`
}

// Aggregator fans a lookup out to registered providers and merges the
// results.
type Aggregator struct {
	providers map[Kind]Provider
	log       zerolog.Logger

	now func() time.Time // for testing
}

// NewAggregator creates an aggregator with no providers registered.
func NewAggregator(logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		providers: make(map[Kind]Provider),
		log:       logger.With().Str("component", "aggregator").Logger(),
		now:       time.Now,
	}
}

// Register adds a provider, replacing any previous provider of the same
// kind.
func (a *Aggregator) Register(p Provider) {
	a.providers[p.Kind()] = p
}

// Len reports how many providers are registered.
func (a *Aggregator) Len() int {
	return len(a.providers)
}

// Aggregate queries every registered provider concurrently and merges the
// results. A failing provider is isolated: its section carries the error
// and the other providers still contribute.
func (a *Aggregator) Aggregate(ctx context.Context, phone string) *Aggregate {
	var mu sync.Mutex
	results := make(map[Kind]map[string]any, len(a.providers))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(aggregateConcurrency)

	for kind, p := range a.providers {
		kind, p := kind, p
		g.Go(func() error {
			data, err := p.Fetch(gCtx, phone)
			if err != nil {
				a.log.Error().Ctx(ctx).Err(err).Str("kind", string(kind)).
					Msg("provider failed")
				data = map[string]any{"error": err.Error()}
			}
			mu.Lock()
			results[kind] = data
			mu.Unlock()
			// Always nil: one provider failing must not cancel the rest.
			return nil
		})
	}
	_ = g.Wait()

	return a.merge(results)
}

func (a *Aggregator) merge(results map[Kind]map[string]any) *Aggregate {
	names := make([]string, 0, len(a.providers))
	for kind := range a.providers {
		names = append(names, string(kind))
	}
	sort.Strings(names)

	return &Aggregate{
		CarrierInfo:          sectionOrEmpty(results, KindCarrier),
		FraudDetection:       sectionOrEmpty(results, KindFraud),
		IdentityVerification: sectionOrEmpty(results, KindIdentity),
		LocationData:         sectionOrEmpty(results, KindLocation),
		SocialPresence:       sectionOrEmpty(results, KindSocial),
		Metadata: Metadata{
			Timestamp: a.now().Format(time.RFC3339Nano),
			Providers: names,
		},
	}
}

func sectionOrEmpty(results map[Kind]map[string]any, kind Kind) map[string]any {
	if data, ok := results[kind]; ok {
		return data
	}
	return map[string]any{}
}
