package cli_test

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phonelens/phonelens/internal/cli"
)

// cacheStatsOut mirrors the JSON shape of cache stats.
type cacheStatsOut struct {
	Dir       string `json:"dir"`
	Records   int    `json:"records"`
	SizeBytes int64  `json:"size_bytes"`
	TTL       string `json:"ttl"`
	MaxAge    string `json:"max_age"`
}

// statsJSON runs cache stats and decodes its JSON output.
func statsJSON(t *testing.T) cacheStatsOut {
	t.Helper()
	stdout, _, err := runCLI(t, "cache", "stats", "--output", "json")
	require.NoError(t, err)

	var stats cacheStatsOut
	require.NoError(t, json.Unmarshal([]byte(stdout), &stats))
	return stats
}

func TestCacheStatsEmpty(t *testing.T) {
	home := setHome(t)

	stats := statsJSON(t)

	assert.Equal(t, filepath.Join(home, "cache"), stats.Dir)
	assert.Zero(t, stats.Records)
	assert.Equal(t, "1d", stats.TTL)
	assert.Equal(t, "1d", stats.MaxAge)
}

func TestCacheStatsCountsRecords(t *testing.T) {
	setHome(t)

	analyzeJSON(t)
	stats := statsJSON(t)

	assert.Equal(t, 1, stats.Records)
	assert.Positive(t, stats.SizeBytes)
}

func TestCacheStatsTextOutput(t *testing.T) {
	setHome(t)

	stdout, _, err := runCLI(t, "cache", "stats", "--output", "text")

	require.NoError(t, err)
	assert.Contains(t, stdout, "DIR")
	assert.Contains(t, stdout, "RECORDS")
	assert.Contains(t, stdout, "SIZE")
	assert.Contains(t, stdout, "TTL")
}

func TestCacheClear(t *testing.T) {
	setHome(t)

	analyzeJSON(t)
	stdout, _, err := runCLI(t, "cache", "clear")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Removed 1 cached report(s)")
	assert.Zero(t, statsJSON(t).Records)
}

func TestCacheCleanupRemovesExpired(t *testing.T) {
	setHome(t)

	analyzeJSON(t, "--cache-ttl", "50ms")
	time.Sleep(120 * time.Millisecond)

	stdout, _, err := runCLI(t, "cache", "cleanup")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Removed 1 expired report(s)")
	assert.Zero(t, statsJSON(t).Records)
}

func TestCacheCleanupKeepsFresh(t *testing.T) {
	setHome(t)

	analyzeJSON(t)
	stdout, _, err := runCLI(t, "cache", "cleanup")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Removed 0 expired report(s)")
	assert.Equal(t, 1, statsJSON(t).Records)
}

func TestCacheCleanupRejectsBadMaxAge(t *testing.T) {
	setHome(t)

	_, _, err := runCLI(t, "cache", "cleanup", "--max-age", "whenever")

	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrUsage)
}
