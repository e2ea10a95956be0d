package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/phonelens/phonelens/internal/analyzer"
	"github.com/phonelens/phonelens/internal/social"
)

// tabwriterPadding is the minimum padding between columns in text output.
const tabwriterPadding = 2

// RenderJSON writes the report as indented JSON.
func RenderJSON(w io.Writer, r *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// RenderText writes a human-readable report.
func RenderText(w io.Writer, r *Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	if err := renderNumberSection(tw, r); err != nil {
		return err
	}
	if r.Carrier != nil {
		if err := renderCarrierSection(tw, r.Carrier); err != nil {
			return err
		}
	}
	if len(r.Social) > 0 {
		if err := renderSocialSection(tw, r.Social); err != nil {
			return err
		}
	}
	if r.Providers != nil {
		if err := renderProvidersSection(tw, r); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func row(tw *tabwriter.Writer, label, value string) error {
	if _, err := fmt.Fprintf(tw, "%s\t%s\n", label, value); err != nil {
		return fmt.Errorf("writing %s row: %w", label, err)
	}
	return nil
}

func blank(tw *tabwriter.Writer) error {
	if _, err := fmt.Fprintln(tw); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}
	return nil
}

func renderNumberSection(tw *tabwriter.Writer, r *Report) error {
	region := r.Number.Region
	if r.Carrier != nil && r.Carrier.RegionName != "" {
		region = fmt.Sprintf("%s (%s)", r.Number.Region, r.Carrier.RegionName)
	}
	source := "live"
	if r.Cached {
		source = "cache"
	}

	rows := [][2]string{
		{"NUMBER", r.Number.International},
		{"E.164", r.Number.E164},
		{"REGION", region},
		{"TYPE", r.Number.Type},
		{"SCAN", r.ScanID},
		{"GENERATED", r.GeneratedAt.Format(time.RFC3339)},
		{"SOURCE", source},
	}
	for _, pair := range rows {
		if err := row(tw, pair[0], pair[1]); err != nil {
			return err
		}
	}
	return nil
}

func renderCarrierSection(tw *tabwriter.Writer, details *analyzer.CarrierDetails) error {
	if err := blank(tw); err != nil {
		return err
	}

	rows := [][2]string{
		{"CARRIER", details.Carrier.Name},
		{"RISK", string(details.Carrier.RiskLevel)},
		{"SCORE", fmt.Sprintf("%d", details.Carrier.VerificationScore)},
		{"NETWORK", fmt.Sprintf("%s %s", details.Carrier.NetworkType, details.Network.Technology)},
		{"MCC/MNC", fmt.Sprintf("%s/%s", details.Carrier.MCC, details.Carrier.MNC)},
		{"PLAN", fmt.Sprintf("%s (%s)", details.Commercial.PlanType, details.Commercial.AccountStatus)},
		{"TRUST", details.Identity.TrustLevel},
	}
	if details.Location != "" {
		rows = append(rows, [2]string{"LOCATION", details.Location})
	}
	if len(details.Timezones) > 0 {
		rows = append(rows, [2]string{"TIMEZONES", strings.Join(details.Timezones, ", ")})
	}

	for _, pair := range rows {
		if err := row(tw, pair[0], pair[1]); err != nil {
			return err
		}
	}
	return nil
}

// RenderSocialText writes a standalone platform presence table, for views
// that scan platforms without building a full report.
func RenderSocialText(w io.Writer, results []social.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	if err := socialTable(tw, results); err != nil {
		return err
	}
	return tw.Flush()
}

func renderSocialSection(tw *tabwriter.Writer, results []social.Result) error {
	if err := blank(tw); err != nil {
		return err
	}
	return socialTable(tw, results)
}

func socialTable(tw *tabwriter.Writer, results []social.Result) error {
	if _, err := fmt.Fprintf(tw, "PLATFORM\tPRESENCE\tDETAIL\n"); err != nil {
		return fmt.Errorf("writing social header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "--------\t--------\t------\n"); err != nil {
		return fmt.Errorf("writing social separator: %w", err)
	}
	for _, res := range results {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", res.Platform, res.Presence, res.Detail); err != nil {
			return fmt.Errorf("writing social row: %w", err)
		}
	}
	return nil
}

func renderProvidersSection(tw *tabwriter.Writer, r *Report) error {
	if err := blank(tw); err != nil {
		return err
	}

	names := strings.Join(r.Providers.Metadata.Providers, ", ")
	if names == "" {
		names = "none"
	}
	if err := row(tw, "PROVIDERS", names); err != nil {
		return err
	}
	return row(tw, "FETCHED", r.Providers.Metadata.Timestamp)
}
