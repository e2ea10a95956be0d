package cli

import (
	"github.com/spf13/cobra"

	"github.com/phonelens/phonelens/internal/engine"
)

// newCarrierCmd creates the carrier command, a live carrier-only view.
// It never reads or writes the report cache, so a later analyze still
// produces a full report.
func newCarrierCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "carrier NUMBER",
		Short: "Show carrier intelligence for a phone number",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCarrier(cmd, a, args[0])
		},
	}
}

func runCarrier(cmd *cobra.Command, a *app, raw string) error {
	an, err := a.newAnalyzer()
	if err != nil {
		return err
	}
	defer an.Close()

	eng, err := engine.New(engine.Params{Analyzer: an, Logger: a.log})
	if err != nil {
		return err
	}

	report, err := eng.Analyze(cmd.Context(), raw, engine.Options{})
	if err != nil {
		return err
	}
	return a.render(cmd.OutOrStdout(), report)
}
