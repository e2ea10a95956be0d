package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTTL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Duration
	}{
		{name: "integer seconds", input: "3600", want: time.Hour},
		{name: "duration hours", input: "24h", want: 24 * time.Hour},
		{name: "duration composite", input: "1h30m", want: 90 * time.Minute},
		{name: "duration seconds", input: "45s", want: 45 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTTL(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTTLRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "zero seconds", input: "0"},
		{name: "negative seconds", input: "-60"},
		{name: "zero duration", input: "0s"},
		{name: "negative duration", input: "-1h"},
		{name: "garbage", input: "soon"},
		{name: "empty", input: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTTL(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input time.Duration
		want  string
	}{
		{input: 45 * time.Second, want: "45s"},
		{input: 30 * time.Minute, want: "30m"},
		{input: time.Hour, want: "1h"},
		{input: 90 * time.Minute, want: "1h30m"},
		{input: 24 * time.Hour, want: "1d"},
		{input: 51 * time.Hour, want: "2d3h"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.input))
		})
	}
}
