package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/pagebind/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd(opts *rootOptions) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file for syntax and semantic correctness.

This includes:
- schema_version compatibility
- pagination options (page size, threshold, loading row span, page_sizes)
- source kind, path and sort
- logging level and format`,
		Example: `  # Validate current configuration
  pagebind config validate

  # Validate and show the effective settings
  pagebind config validate --verbose`,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, opts, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, opts *rootOptions, verbose bool) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Println("Configuration is valid")
	if !verbose {
		return nil
	}

	sizes := make([]string, len(cfg.Pagination.PageSizes))
	for i, n := range cfg.Pagination.PageSizes {
		sizes[i] = fmt.Sprint(n)
	}

	cmd.Println()
	cmd.Printf("  schema_version: %s\n", cfg.SchemaVersion)
	cmd.Printf("  page_size:      %d (keys: %s)\n", cfg.Pagination.PageSize, strings.Join(sizes, ", "))
	cmd.Printf("  threshold:      %d\n", cfg.Pagination.Threshold)
	cmd.Printf("  columns:        %d\n", cfg.Pagination.Columns)
	cmd.Printf("  source:         %s\n", describeSource(cfg.Source))
	cmd.Printf("  logging:        %s/%s\n", cfg.Logging.Level, cfg.Logging.Format)
	return nil
}

func describeSource(sc config.SourceConfig) string {
	desc := sc.Kind
	switch sc.Kind {
	case config.SourceSQLite:
		desc += " " + sc.Path
	case config.SourceMemory:
		desc += fmt.Sprintf(" (%d items, %s latency)", sc.MaxItems, sc.Latency)
	}
	if sc.Sort != "" {
		desc += " sorted by " + sc.Sort
	}
	return desc
}
