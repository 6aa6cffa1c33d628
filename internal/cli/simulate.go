package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/pagebind/internal/simulate"
)

// exitCodeScenarioFailed is returned when a scenario check fails.
const exitCodeScenarioFailed = 2

func newSimulateCmd(opts *rootOptions) *cobra.Command {
	var (
		names    []string
		script   string
		pageSize int
		output   string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run pagination scenarios without a terminal",
		Long: `Drives the pagination controller with a scripted list and prints every
callback and list command it produced.

Script steps are separated by commas: layout, scroll, near, finish:N,
reset:K, enable, disable and refresh. Without --script the built-in
scenarios A to D run and their checks decide the exit code.`,
		Example: `  # Run every built-in scenario
  pagebind simulate

  # Run scenario C as YAML
  pagebind simulate --scenario C --output yaml

  # Replay a custom script
  pagebind simulate --script "layout, scroll, finish:3, near, finish:3" --page-size 3`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scenarios, err := selectScenarios(opts, names, script, pageSize, cmd.Flags().Changed("page-size"))
			if err != nil {
				return err
			}

			reports, err := simulate.RunAll(cmd.Context(), scenarios, logger)
			if err != nil {
				return err
			}
			if renderErr := simulate.Render(cmd.OutOrStdout(), output, reports); renderErr != nil {
				return renderErr
			}

			failed := 0
			for _, r := range reports {
				if !r.Passed {
					failed++
				}
			}
			if failed > 0 {
				return &ExitError{
					Code:   exitCodeScenarioFailed,
					Reason: fmt.Sprintf("%d of %d scenario(s) failed", failed, len(reports)),
				}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&names, "scenario", nil, "built-in scenarios to run (default all)")
	f.StringVar(&script, "script", "", "custom step script")
	f.IntVar(&pageSize, "page-size", 0, "page size for --script (default from config)")
	f.StringVarP(&output, "output", "o", simulate.FormatTable, "output format: table, json or yaml")
	cmd.MarkFlagsMutuallyExclusive("scenario", "script")

	return cmd
}

// selectScenarios resolves the scenarios named by the flags.
func selectScenarios(
	opts *rootOptions,
	names []string,
	script string,
	pageSize int,
	pageSizeSet bool,
) ([]simulate.Scenario, error) {
	if script != "" {
		steps, err := simulate.ParseScript(script)
		if err != nil {
			return nil, err
		}
		popts := opts.cfg.PaginationOptions()
		if pageSizeSet {
			popts.PageElementCount = pageSize
		}
		return []simulate.Scenario{{
			Name:     "custom",
			PageSize: popts.PageElementCount,
			Steps:    steps,
			Options:  &popts,
		}}, nil
	}

	if len(names) == 0 {
		return simulate.Scenarios(), nil
	}
	out := make([]simulate.Scenario, 0, len(names))
	for _, name := range names {
		sc, ok := simulate.Find(name)
		if !ok {
			return nil, fmt.Errorf("unknown scenario %q", name)
		}
		out = append(out, sc)
	}
	return out, nil
}
