package analyzer

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phonelens/phonelens/internal/number"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()

	a, err := New(zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	a.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return a
}

func mustParse(t *testing.T, raw string) *number.Number {
	t.Helper()
	n, err := number.Parse(raw)
	require.NoError(t, err)
	return n
}

func TestCarrierDetails(t *testing.T) {
	a := newTestAnalyzer(t)
	n := mustParse(t, "+34600000000")

	details := a.CarrierDetails(context.Background(), n)
	require.NotNil(t, details)

	t.Run("CarrierInfo", func(t *testing.T) {
		info := details.Carrier
		assert.NotEmpty(t, info.Name)
		assert.Equal(t, RiskLow, info.RiskLevel)
		assert.Equal(t, 75, info.VerificationScore)
		assert.Nil(t, info.LastPortDate)
		assert.Equal(t, "GSM", info.NetworkType)
		assert.Equal(t, "214", info.MCC)
		assert.Equal(t, "01", info.MNC)
		assert.Equal(t, "ES", info.Region)
		assert.True(t, info.Active)
	})

	t.Run("FixedPolicySections", func(t *testing.T) {
		assert.Equal(t, "4G/5G", details.Network.Technology)
		assert.Equal(t, "national", details.Network.Coverage)
		assert.Equal(t, []string{"calls", "sms", "data"}, details.Network.Services)
		assert.False(t, details.Network.Roaming)

		assert.Equal(t, RiskLow, details.Security.RiskLevel)
		assert.Equal(t, "75/100", details.Security.VerificationScore)
		assert.Empty(t, details.Security.Alerts)
		assert.Zero(t, details.Security.SpamReports)
		assert.False(t, details.Security.Blacklisted)

		assert.Equal(t, "prepaid", details.Commercial.PlanType)
		assert.Equal(t, "active", details.Commercial.AccountStatus)
		assert.Equal(t, "1 year", details.Commercial.ActivationAge)

		assert.Zero(t, details.Porting.PortCount)
		assert.Empty(t, details.Porting.PreviousCarriers)

		assert.Equal(t, "normal", details.Usage.CallPattern)
		assert.Equal(t, "moderate", details.Usage.DataUsage)
	})

	t.Run("Identity", func(t *testing.T) {
		assert.Equal(t, "multi-factor", details.Identity.Method)
		assert.Equal(t, 90, details.Identity.Score)
		assert.Equal(t, "2025-06-01 12:00:00", details.Identity.LastVerified)
		assert.True(t, details.Identity.DocumentsValidated)
		assert.Equal(t, "high", details.Identity.TrustLevel)
	})

	t.Run("Fraud", func(t *testing.T) {
		assert.Empty(t, details.Fraud.RiskIndicators)
		assert.False(t, details.Fraud.Suspicious)
		assert.Equal(t, "none", details.Fraud.Recommendation)
	})

	t.Run("Geography", func(t *testing.T) {
		assert.Equal(t, "Spain", details.RegionName)
		assert.NotEmpty(t, details.Timezones)
	})
}

func TestCarrierDetailsMemoized(t *testing.T) {
	a := newTestAnalyzer(t)
	n := mustParse(t, "+442071838750")

	first := a.CarrierDetails(context.Background(), n)
	second := a.CarrierDetails(context.Background(), n)

	// The memoized call returns the same assembled result.
	assert.Same(t, first, second)
}

func TestCarrierNameFallback(t *testing.T) {
	a := newTestAnalyzer(t)

	// Fixed lines carry no mobile carrier block; the name degrades to the
	// fallback label instead of an empty string.
	n := mustParse(t, "+442071838750")
	details := a.CarrierDetails(context.Background(), n)

	assert.NotEmpty(t, details.Carrier.Name)
	if n.CarrierName() == "" {
		assert.Equal(t, "unknown carrier", details.Carrier.Name)
	}
}

func TestMCCForRegion(t *testing.T) {
	tests := []struct {
		region string
		want   string
	}{
		{"ES", "214"},
		{"US", "310"},
		{"GB", "234"},
		{"ZZ", "unknown"},
		{"", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			assert.Equal(t, tt.want, mccForRegion(tt.region))
		})
	}
}

func TestRegionName(t *testing.T) {
	assert.Equal(t, "Spain", regionName("ES"))
	assert.Equal(t, "United Kingdom", regionName("GB"))
	assert.Equal(t, "", regionName(""))
	assert.Equal(t, "not-a-region", regionName("not-a-region"))
}
