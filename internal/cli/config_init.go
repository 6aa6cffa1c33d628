package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/pagebind/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
func NewConfigInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values at
~/.pagebind/config.yaml, or at the path given by --config or PAGEBIND_CONFIG.`,
		Example: `  # Create the default configuration
  pagebind config init

  # Create configuration, overwriting existing
  pagebind config init --force`,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := resolvedConfigPath(opts)
			if err != nil {
				return err
			}

			if writeErr := config.WriteDefault(path, force); writeErr != nil {
				if errors.Is(writeErr, config.ErrConfigExists) {
					return fmt.Errorf("%w, use --force to overwrite", writeErr)
				}
				return writeErr
			}

			cmd.Printf("Configuration file created at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}
