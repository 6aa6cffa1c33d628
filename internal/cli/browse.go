package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/pagebind/internal/config"
	"github.com/rshade/pagebind/internal/logging"
	"github.com/rshade/pagebind/internal/simulate"
	"github.com/rshade/pagebind/internal/source"
	"github.com/rshade/pagebind/internal/tui"
)

// Plain output formats for browse.
const (
	browseOutputText = "text"
	browseOutputJSON = "json"
)

type browseFlags struct {
	source   string
	path     string
	pageSize int
	sort     string
	maxItems int
	latency  time.Duration
	columns  int
	plain    bool
	output   string
}

func newBrowseCmd(opts *rootOptions) *cobra.Command {
	var flags browseFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse a paged source",
		Long: `Opens the configured source in a scrolling list that loads the next page
as you approach its end.

When stdout is not a terminal, or with --plain, every page is loaded in
turn and the items are printed one per line.`,
		Example: `  # Browse the demo feed
  pagebind browse

  # Browse a SQLite table in three columns
  pagebind browse --source sqlite --path items.db --columns 3

  # Dump every item as JSON lines
  pagebind browse --plain --output json --latency 0`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := applyBrowseFlags(cmd, opts.cfg, flags)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			src, closeSrc, err := openSource(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := closeSrc(); closeErr != nil {
					logger.Warn().Err(closeErr).Msg("closing source")
				}
			}()

			if flags.plain || !isTerminal(os.Stdout) {
				return runPlainBrowse(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, src, flags.output)
			}
			return runInteractiveBrowse(ctx, opts, cfg, src)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.source, "source", "", "source kind: memory or sqlite")
	f.StringVar(&flags.path, "path", "", "SQLite database path")
	f.IntVar(&flags.pageSize, "page-size", 0, "items per page")
	f.StringVar(&flags.sort, "sort", "", "sort as field[:asc|desc]")
	f.IntVar(&flags.maxItems, "max-items", 0, "memory source size")
	f.DurationVar(&flags.latency, "latency", 0, "memory source latency per page")
	f.IntVar(&flags.columns, "columns", 0, "grid columns")
	f.BoolVar(&flags.plain, "plain", false, "print items instead of opening the list")
	f.StringVarP(&flags.output, "output", "o", browseOutputText, "plain output format: text or json")

	return cmd
}

// applyBrowseFlags returns a copy of cfg with the flags the user set.
func applyBrowseFlags(cmd *cobra.Command, base *config.Config, flags browseFlags) (*config.Config, error) {
	cfg := *base
	f := cmd.Flags()

	if f.Changed("source") {
		cfg.Source.Kind = flags.source
	}
	if f.Changed("path") {
		cfg.Source.Path = flags.path
	}
	if f.Changed("page-size") {
		cfg.Pagination.PageSize = flags.pageSize
	}
	if f.Changed("sort") {
		cfg.Source.Sort = flags.sort
	}
	if f.Changed("max-items") {
		cfg.Source.MaxItems = flags.maxItems
	}
	if f.Changed("latency") {
		cfg.Source.Latency = flags.latency
	}
	if f.Changed("columns") {
		cfg.Pagination.Columns = flags.columns
	}
	switch flags.output {
	case browseOutputText, browseOutputJSON:
	default:
		return nil, fmt.Errorf("invalid output format %q: want %s or %s", flags.output, browseOutputText, browseOutputJSON)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// openSource opens the configured source and returns its closer.
func openSource(ctx context.Context, cfg *config.Config) (source.Source, func() error, error) {
	switch cfg.Source.Kind {
	case config.SourceSQLite:
		db, err := source.OpenSQLite(cfg.Source.Path)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Source.Seed > 0 {
			if seedErr := db.Seed(ctx, cfg.Source.Seed, cfg.Pagination.PageSize); seedErr != nil {
				_ = db.Close()
				return nil, nil, seedErr
			}
		}
		return db, db.Close, nil
	default:
		return source.NewMemory(cfg.Source.MaxItems, cfg.Source.Latency), func() error { return nil }, nil
	}
}

// runPlainBrowse loads every page and writes the items to w.
func runPlainBrowse(
	ctx context.Context,
	w, errw io.Writer,
	cfg *config.Config,
	src source.Source,
	output string,
) error {
	emit := func(it source.Item) error {
		_, err := fmt.Fprintf(w, "%d\t%s\t%s\n", it.ID, it.Title, it.Subtitle)
		return err
	}
	if output == browseOutputJSON {
		enc := json.NewEncoder(w)
		emit = func(it source.Item) error { return enc.Encode(it) }
	}

	field, order := cfg.SortSpec()
	meta, err := simulate.Drain(ctx, src, cfg.PaginationOptions(), field, order, logger, emit)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(errw, "%s items in %d pages from %s (%s)\n",
		tui.FormatCount(meta.TotalItems), meta.CurrentPage, src.Name(), meta.Phase)
	return nil
}

// runInteractiveBrowse runs the list in the alternate screen. Logs move to
// a file for the duration so they do not draw over the list.
func runInteractiveBrowse(ctx context.Context, opts *rootOptions, cfg *config.Config, src source.Source) error {
	logPath, err := config.DefaultLogPath()
	if err != nil {
		return err
	}
	if opts.logResult != nil {
		_ = opts.logResult.Close()
	}
	result := logging.NewLoggerWithPath(cfg.Logging.WithFile(logPath).ToLoggingConfig(opts.debug))
	opts.logResult = &result

	field, order := cfg.SortSpec()
	model, err := tui.NewFeedModel(ctx, tui.FeedOptions{
		Source:       src,
		Pagination:   cfg.PaginationOptions(),
		Layout:       cfg.Layout(),
		Resources:    cfg.Resources,
		FetchTimeout: cfg.Source.FetchTimeout,
		SortField:    field,
		SortOrder:    order,
		PageSizes:    cfg.Pagination.PageSizes,
		Logger:       result.Logger,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, runErr := p.Run(); runErr != nil {
		return fmt.Errorf("running browser: %w", runErr)
	}
	return nil
}
