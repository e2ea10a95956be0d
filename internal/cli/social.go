package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phonelens/phonelens/internal/engine"
	"github.com/phonelens/phonelens/internal/number"
	"github.com/phonelens/phonelens/internal/social"
)

// socialScan is the JSON envelope for a standalone platform scan.
type socialScan struct {
	Number  string          `json:"number"`
	Results []social.Result `json:"results"`
}

// newSocialCmd creates the social command, a live platform presence scan.
// Scans run fresh every time and bypass the report cache.
func newSocialCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "social NUMBER",
		Short: "Probe social platforms for a phone number",
		Long: "Probe messaging, social network, professional and commerce platforms\n" +
			"for signs the number is registered. Results are never cached.",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSocial(cmd, a, args[0])
		},
	}

	cmd.Flags().String("group", "", "probe one platform group: messaging, social, professional or commerce")

	return cmd
}

func runSocial(cmd *cobra.Command, a *app, raw string) error {
	group, _ := cmd.Flags().GetString("group")

	n, err := number.Parse(raw)
	if err != nil {
		return err
	}

	checker := a.newChecker()
	ctx := cmd.Context()

	var results []social.Result
	var scanErr error
	switch group {
	case "":
		results, scanErr = checker.CheckAll(ctx, n)
	case "messaging":
		results = checker.CheckMessaging(ctx, n)
	case "social":
		results = checker.CheckSocialNetworks(ctx, n)
	case "professional":
		results = checker.CheckProfessional(ctx, n)
	case "commerce":
		results = checker.CheckCommerce(ctx, n)
	default:
		return fmt.Errorf("%w: --group must be messaging, social, professional or commerce, got %q",
			ErrUsage, group)
	}

	// A cancelled scan still renders what it gathered before reporting
	// the error.
	if err := renderSocial(cmd, a, n.E164, results); err != nil {
		return err
	}
	return scanErr
}

func renderSocial(cmd *cobra.Command, a *app, e164 string, results []social.Result) error {
	w := cmd.OutOrStdout()
	if a.output == outputJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(socialScan{Number: e164, Results: results}); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	}
	return engine.RenderSocialText(w, results)
}
