package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phonelens/phonelens/pkg/version"
)

// newVersionCmd creates the version command. It runs without loading
// configuration, so it works even when the config file is broken.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "phonelens "+version.Long())
		},
	}
}
