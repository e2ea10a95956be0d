package cli

import (
	"github.com/spf13/cobra"

	"github.com/phonelens/phonelens/internal/logging"
)

// setupLogging builds the invocation logger from the loaded config, honors
// the --debug override, and attaches the logger plus a trace ID to the
// command context. File destinations and fallbacks are reported on stderr.
func setupLogging(cmd *cobra.Command, a *app) {
	logCfg := a.cfg.Logging.ToLogging()
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logCfg.Level = "debug"
		logCfg.Format = "console"
		logCfg.Output = logging.OutputStderr
		logCfg.File = ""
	}

	a.logRes = logging.NewWithPath(logCfg)
	a.log = logging.ComponentLogger(a.logRes.Logger, "cli")

	if a.logRes.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), a.logRes.FilePath)
	} else if a.logRes.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), a.logRes.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logging.WithContext(ctx, a.log)
	cmd.SetContext(ctx)

	a.log.Info().
		Str("command", cmd.Name()).
		Str("trace_id", traceID).
		Msg("command started")
}
