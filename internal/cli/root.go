package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/phonelens/phonelens/internal/number"
)

// Output formats accepted by --output.
const (
	outputText = "text"
	outputJSON = "json"
)

// Process exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// ErrUsage marks command line validation failures so ExitCode can separate
// them from operational errors.
var ErrUsage = errors.New("invalid usage")

// ExitCode maps the error returned by Execute to a process exit code.
// Usage mistakes and unparseable phone numbers exit with ExitUsage;
// everything else that fails exits with ExitError.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage), errors.Is(err, number.ErrInvalidNumber):
		return ExitUsage
	default:
		return ExitError
	}
}

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// writerIsTerminal reports whether w is a terminal. Commands consult their
// cobra output writer rather than os.Stdout, so tests that swap in buffers
// behave like piped output.
func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

// NewRootCmd creates the root Cobra command for the phonelens CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithArgs(ver, nil)
}

// NewRootCmdWithArgs creates the root command with explicit args for
// testability. A nil args leaves os.Args in charge.
func NewRootCmdWithArgs(ver string, args []string) *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "phonelens",
		Short:        "Phone number intelligence toolkit",
		Long:         "PhoneLens: carrier, social platform and provider intelligence for phone numbers",
		Version:      ver,
		Example:      rootCmdExample,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.shutdown()
		},
	}

	cmd.PersistentFlags().String("config", "", "config file (default: $PHONELENS_HOME/config.yaml)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().
		StringP("output", "o", "", "output format: text or json (default: text on a terminal, json when piped)")
	cmd.PersistentFlags().Bool("no-cache", false, "bypass the report cache for this run")
	cmd.PersistentFlags().
		String("cache-ttl", "", "TTL for newly cached reports, as seconds or a duration (overrides config)")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	})

	cmd.AddCommand(newAnalyzeCmd(a), newCarrierCmd(a), newSocialCmd(a), newCacheCmd(a), newVersionCmd())

	if args != nil {
		cmd.SetArgs(args)
	}

	return cmd
}

// exactArgs wraps cobra.ExactArgs so argument mistakes map to ExitUsage.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		return nil
	}
}

const rootCmdExample = `  # Full intelligence report for a number
  phonelens analyze "+34 600 000 000"

  # Carrier block only, as JSON
  phonelens carrier +34600000000 --output json

  # Probe messaging platforms without touching the cache
  phonelens social +34600000000 --group messaging

  # Re-run a report even when a cached one is fresh
  phonelens analyze +34600000000 --refresh

  # Inspect and prune the on-disk cache
  phonelens cache stats
  phonelens cache cleanup --max-age 48h`
