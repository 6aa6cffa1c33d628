package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/pagebind/internal/config"
	"github.com/rshade/pagebind/internal/logging"
)

// skipConfigAnnotation marks commands that load (or ignore) the config
// file themselves, so a broken file does not stop them from running.
const skipConfigAnnotation = "pagebind/skip-config"

// ExitError carries a process exit code out of a command.
type ExitError struct {
	Code   int
	Reason string
}

func (e *ExitError) Error() string {
	return e.Reason
}

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// rootOptions is shared by every subcommand.
type rootOptions struct {
	configPath string
	debug      bool

	cfg       *config.Config
	logResult *logging.LogPathResult
}

// NewRootCmd creates the root Cobra command for the pagebind CLI.
func NewRootCmd(ver string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "pagebind",
		Short:        "Load-more pagination for terminal lists",
		Long:         "pagebind: browse a paged data source in the terminal and exercise the pagination state machine",
		Version:      ver,
		Example:      rootCmdExample,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				if cmd.Annotations[skipConfigAnnotation] == "" {
					return err
				}
				cfg = config.Default()
			}
			opts.cfg = cfg

			result := setupLogging(cmd, cfg.Logging, opts.debug)
			opts.logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, opts.logResult)
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		fmt.Sprintf("config file (default $%s or ~/.pagebind/config.yaml)", config.EnvConfig))
	cmd.AddCommand(newBrowseCmd(opts), newSimulateCmd(opts), newConfigCmd(opts))

	return cmd
}

const rootCmdExample = `  # Browse the demo feed interactively
  pagebind browse

  # Page through a SQLite table, newest first, without the TUI
  pagebind browse --source sqlite --path items.db --sort id:desc --plain

  # Run the built-in pagination scenarios
  pagebind simulate

  # Replay a custom script as JSON
  pagebind simulate --script "layout, scroll, finish:5, near, finish:5" --output json

  # Write and check the configuration file
  pagebind config init
  pagebind config validate`

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(opts), NewConfigValidateCmd(opts))
	return cmd
}

// resolvedConfigPath returns the file the config commands act on.
func resolvedConfigPath(opts *rootOptions) (string, error) {
	if opts.configPath != "" {
		return opts.configPath, nil
	}
	return config.DefaultPath()
}

// IsExitError reports whether err carries an exit code.
func IsExitError(err error) (*ExitError, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr, true
	}
	return nil, false
}
