package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/phonelens/phonelens/internal/cache"
	"github.com/phonelens/phonelens/internal/engine"
)

const analyzeCmdExample = `  # Everything phonelens knows about a number
  phonelens analyze "+34 600 000 000"

  # Skip the social platform scan
  phonelens analyze +34600000000 --no-social

  # Include configured data providers and force regeneration
  phonelens analyze +34600000000 --providers --refresh

  # Accept cached reports up to an hour old
  phonelens analyze +34600000000 --max-age 1h`

// newAnalyzeCmd creates the analyze command, the full report pipeline:
// carrier analysis plus the optional social scan and provider lookups,
// with the result cache in front.
func newAnalyzeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "analyze NUMBER",
		Short:   "Build the full intelligence report for a phone number",
		Example: analyzeCmdExample,
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, a, args[0])
		},
	}

	cmd.Flags().Bool("social", true, "include the social platform scan")
	cmd.Flags().Bool("no-social", false, "skip the social platform scan")
	cmd.Flags().Bool("providers", false, "query configured external data providers")
	cmd.Flags().String("max-age", "", "accept cached reports up to this age, as seconds or a duration")
	cmd.Flags().Bool("refresh", false, "regenerate the report even when a cached one is fresh")

	return cmd
}

func runAnalyze(cmd *cobra.Command, a *app, raw string) error {
	flags := cmd.Flags()
	withSocial, _ := flags.GetBool("social")
	noSocial, _ := flags.GetBool("no-social")
	withProviders, _ := flags.GetBool("providers")
	refresh, _ := flags.GetBool("refresh")

	var maxAge time.Duration
	if maxAgeRaw, _ := flags.GetString("max-age"); maxAgeRaw != "" {
		parsed, err := cache.ParseTTL(maxAgeRaw)
		if err != nil {
			return fmt.Errorf("%w: --max-age: %v", ErrUsage, err)
		}
		maxAge = parsed
	}

	withSocial = withSocial && !noSocial

	eng, done, err := a.buildEngine(withSocial, withProviders)
	if err != nil {
		return err
	}
	defer done()

	report, err := eng.Analyze(cmd.Context(), raw, engine.Options{
		Social:    withSocial,
		Providers: withProviders,
		MaxAge:    maxAge,
		Refresh:   refresh,
	})
	if err != nil {
		return err
	}
	return a.render(cmd.OutOrStdout(), report)
}
