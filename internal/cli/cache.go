package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/phonelens/phonelens/internal/cache"
)

// tabwriterPadding is the minimum padding between columns in text output.
const tabwriterPadding = 2

// newCacheCmd creates the cache command group.
func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the report cache",
	}
	cmd.AddCommand(newCacheStatsCmd(a), newCacheClearCmd(a), newCacheCleanupCmd(a))
	return cmd
}

// cacheStats is the JSON shape of the stats output.
type cacheStats struct {
	Dir       string `json:"dir"`
	Records   int    `json:"records"`
	SizeBytes int64  `json:"size_bytes"`
	TTL       string `json:"ttl"`
	MaxAge    string `json:"max_age"`
}

func newCacheStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache location, record count and size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCacheStats(cmd, a)
		},
	}
}

func runCacheStats(cmd *cobra.Command, a *app) error {
	c, err := a.openCacheStrict()
	if err != nil {
		return err
	}

	stats := cacheStats{
		Dir:       c.Dir(),
		Records:   c.DiskCount(),
		SizeBytes: c.DiskSize(),
		TTL:       boundLabel(a.ttl()),
		MaxAge:    boundLabel(a.cfg.Cache.MaxAgeDuration),
	}

	w := cmd.OutOrStdout()
	if a.output == outputJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(stats); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	rows := []struct{ label, value string }{
		{"DIR", stats.Dir},
		{"RECORDS", strconv.Itoa(stats.Records)},
		{"SIZE", humanize.IBytes(uint64(stats.SizeBytes))},
		{"TTL", stats.TTL},
		{"MAX AGE", stats.MaxAge},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", r.label, r.value); err != nil {
			return fmt.Errorf("writing %s row: %w", r.label, err)
		}
	}
	return tw.Flush()
}

// boundLabel formats a freshness bound, where zero means unbounded.
func boundLabel(d time.Duration) string {
	if d <= 0 {
		return "none"
	}
	return cache.FormatDuration(d)
}

func newCacheClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCacheClear(cmd, a)
		},
	}
}

func runCacheClear(cmd *cobra.Command, a *app) error {
	c, err := a.openCacheStrict()
	if err != nil {
		return err
	}
	removed := c.DiskCount()
	c.Clear()
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached report(s) from %s\n", removed, c.Dir())
	return err
}

func newCacheCleanupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove cached reports that are no longer valid",
		Long: "Remove expired cache records. Records carrying their own TTL are judged\n" +
			"against that TTL; --max-age bounds the age of records without one.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCacheCleanup(cmd, a)
		},
	}

	cmd.Flags().
		String("max-age", "", "age bound for records without a TTL, as seconds or a duration (default: configured max age)")

	return cmd
}

func runCacheCleanup(cmd *cobra.Command, a *app) error {
	c, err := a.openCacheStrict()
	if err != nil {
		return err
	}

	bound := a.cfg.Cache.MaxAgeDuration
	if raw, _ := cmd.Flags().GetString("max-age"); raw != "" {
		parsed, err := cache.ParseTTL(raw)
		if err != nil {
			return fmt.Errorf("%w: --max-age: %v", ErrUsage, err)
		}
		bound = parsed
	}

	before := c.DiskCount()
	c.Cleanup(bound)
	removed := before - c.DiskCount()
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired report(s) from %s\n", removed, c.Dir())
	return err
}
