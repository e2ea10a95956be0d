package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithPathFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "phonelens.log")

	result := NewWithPath(Config{Level: "debug", Output: OutputFile, File: path})
	require.True(t, result.UsingFile)
	require.False(t, result.FallbackUsed)
	assert.Equal(t, path, result.FilePath)

	result.Logger.Info().Str("key", "value").Msg("hello")
	require.NoError(t, result.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// File output is JSON, one object per line.
	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &line))
	assert.Equal(t, "hello", line["message"])
	assert.Equal(t, "value", line["key"])
}

func TestNewWithPathFallsBackToStderr(t *testing.T) {
	// A directory cannot be opened as a file, forcing the fallback.
	dir := t.TempDir()

	result := NewWithPath(Config{Level: "info", Output: OutputFile, File: dir})
	assert.False(t, result.UsingFile)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)

	// The fallback logger must be usable.
	result.Logger.Info().Msg("still alive")
	require.NoError(t, result.Close())
}

func TestNewRejectsUnopenableFile(t *testing.T) {
	_, err := New(Config{Output: OutputFile, File: t.TempDir()})
	assert.Error(t, err)
}

func TestLevelParsing(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.level))
		})
	}
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	logger := ComponentLogger(base, "cache")
	logger.Info().Msg("tagged")

	assert.Contains(t, buf.String(), `"component":"cache"`)
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	ctx := WithContext(context.Background(), logger)
	FromContext(ctx).Info().Msg("via context")

	assert.Contains(t, buf.String(), "via context")

	// A bare context yields a usable no-op logger.
	assert.NotNil(t, FromContext(context.Background()))
}

func TestTraceIDs(t *testing.T) {
	id := NewTraceID()
	assert.Len(t, id, 26)
	assert.Equal(t, strings.ToUpper(id), id)

	ctx := ContextWithTraceID(context.Background(), id)
	assert.Equal(t, id, TraceIDFromContext(ctx))
	assert.Equal(t, id, GetOrGenerateTraceID(ctx))

	// Without a stored ID a fresh one is minted.
	generated := GetOrGenerateTraceID(context.Background())
	assert.NotEmpty(t, generated)
	assert.NotEqual(t, id, generated)

	assert.Empty(t, TraceIDFromContext(context.Background()))
}
