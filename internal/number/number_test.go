package number

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("SpanishMobile", func(t *testing.T) {
		n, err := Parse("+34 600 000 000")
		require.NoError(t, err)

		assert.Equal(t, "+34600000000", n.E164)
		assert.Equal(t, "34600000000", n.Clean)
		assert.Equal(t, "ES", n.Region)
		assert.Equal(t, 34, n.CountryCode)
		assert.Equal(t, "mobile", n.Type)
		assert.Equal(t, "+34 600 000 000", n.Raw)
	})

	t.Run("UKFixedLine", func(t *testing.T) {
		n, err := Parse("+442071838750")
		require.NoError(t, err)

		assert.Equal(t, "+442071838750", n.E164)
		assert.Equal(t, "GB", n.Region)
		assert.Equal(t, 44, n.CountryCode)
		assert.Equal(t, "fixed_line", n.Type)
	})

	t.Run("PunctuationTolerated", func(t *testing.T) {
		n, err := Parse("+1 (202) 555-0142")
		require.NoError(t, err)
		assert.Equal(t, "+12025550142", n.E164)
		assert.Equal(t, "12025550142", n.Clean)
	})

	t.Run("WhitespaceTrimmed", func(t *testing.T) {
		n, err := Parse("  +442071838750  ")
		require.NoError(t, err)
		assert.Equal(t, "+442071838750", n.E164)
	})
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"no country code", "600000000"},
		{"too short", "+34 12"},
		{"not a number", "call me maybe"},
		{"invalid for region", "+34 100 000 000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidNumber)
		})
	}
}

func TestString(t *testing.T) {
	n, err := Parse("+442071838750")
	require.NoError(t, err)
	assert.Equal(t, n.International, n.String())
	assert.NotEmpty(t, n.National)
}

func TestGeoAccessors(t *testing.T) {
	n, err := Parse("+442071838750")
	require.NoError(t, err)

	assert.Equal(t, "London", n.Location())
	assert.Contains(t, n.Timezones(), "Europe/London")

	// Carrier data covers mobile blocks; a fixed line typically has none.
	// The accessor must degrade to empty rather than fail.
	assert.NotPanics(t, func() { _ = n.CarrierName() })
}
