package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/pagebind/internal/config"
	"github.com/rshade/pagebind/internal/logging"
)

// setupLogging configures logging from the config file, environment and
// CLI flags, and stores the logger in the command context.
func setupLogging(cmd *cobra.Command, lc config.LoggingConfig, debug bool) logging.LogPathResult {
	result := logging.NewLoggerWithPath(lc.ToLoggingConfig(debug))
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := result.Logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")
	return result
}

// cleanupLogging closes the log file, if one was opened.
func cleanupLogging(_ *cobra.Command, logResult *logging.LogPathResult) error {
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
