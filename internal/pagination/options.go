package pagination

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/pagebind/internal/scroll"
)

// Option defaults and limits.
const (
	DefaultThreshold      = scroll.DefaultThreshold
	DefaultLoadingRowSpan = 1
	MinPageElementCount   = 1
	MinThreshold          = 0
	MinLoadingRowSpan     = 1
)

// Options is the configuration captured by a Builder. Values are copied on
// Build, so changing a Builder afterwards never affects a live Controller.
type Options struct {
	PageElementCount  int
	Threshold         int
	RefreshEnabled    bool
	EmptyViewEnabled  bool
	LoadingRowEnabled bool
	LoadingRowSpan    int
	Empty             EmptyContent
	OnRefresh         func()

	// LoadingRowRenderer renders the trailing row for the page about to load.
	LoadingRowRenderer func(nextPage int) string
}

// DefaultLoadingRowText is the loading row text used when no renderer is set.
func DefaultLoadingRowText(nextPage int) string {
	return fmt.Sprintf("Loading page %d…", nextPage)
}

// DefaultOptions returns the options a new Builder starts with.
func DefaultOptions(pageElementCount int) Options {
	return Options{
		PageElementCount:  pageElementCount,
		Threshold:         DefaultThreshold,
		RefreshEnabled:    true,
		EmptyViewEnabled:  true,
		LoadingRowEnabled: true,
		LoadingRowSpan:    DefaultLoadingRowSpan,
	}
}

// Validate checks the options for contract violations.
func (o Options) Validate() error {
	if o.PageElementCount < MinPageElementCount {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, o.PageElementCount)
	}
	if o.Threshold < MinThreshold {
		return fmt.Errorf("%w: got %d", ErrInvalidThreshold, o.Threshold)
	}
	if o.LoadingRowSpan < MinLoadingRowSpan {
		return fmt.Errorf("%w: got %d", ErrInvalidSpan, o.LoadingRowSpan)
	}
	return nil
}

// Builder accumulates Options before binding a list view.
type Builder struct {
	opts     Options
	callback PageBindingCallback
	logger   zerolog.Logger
}

// BuildWith starts a Builder for the given page size and host callback.
func BuildWith(pageElementCount int, callback PageBindingCallback) *Builder {
	return &Builder{
		opts:     DefaultOptions(pageElementCount),
		callback: callback,
		logger:   zerolog.Nop(),
	}
}

// WithOptions replaces every option at once.
func (b *Builder) WithOptions(opts Options) *Builder {
	b.opts = opts
	return b
}

// SetPageElementCount sets the number of items per page.
func (b *Builder) SetPageElementCount(count int) *Builder {
	b.opts.PageElementCount = count
	return b
}

// SetThreshold sets how many items from the end the next load triggers.
func (b *Builder) SetThreshold(value int) *Builder {
	b.opts.Threshold = value
	return b
}

// SetRefreshEnabled enables or disables pull-to-refresh.
func (b *Builder) SetRefreshEnabled(enabled bool) *Builder {
	b.opts.RefreshEnabled = enabled
	return b
}

// SetEmptyViewEnabled enables or disables the empty-state view.
func (b *Builder) SetEmptyViewEnabled(enabled bool) *Builder {
	b.opts.EmptyViewEnabled = enabled
	return b
}

// SetLoadingRowEnabled enables or disables the trailing loading row.
func (b *Builder) SetLoadingRowEnabled(enabled bool) *Builder {
	b.opts.LoadingRowEnabled = enabled
	return b
}

// SetLoadingRowSpan sets how many grid cells the loading row spans.
func (b *Builder) SetLoadingRowSpan(span int) *Builder {
	b.opts.LoadingRowSpan = span
	return b
}

// SetOnRefresh sets the callback run when the user asks for a refresh.
func (b *Builder) SetOnRefresh(fn func()) *Builder {
	b.opts.OnRefresh = fn
	return b
}

// SetLoadingRowRenderer sets a custom renderer for the loading row.
func (b *Builder) SetLoadingRowRenderer(fn func(nextPage int) string) *Builder {
	b.opts.LoadingRowRenderer = fn
	return b
}

// SetEmptyTitle sets the empty-state title.
func (b *Builder) SetEmptyTitle(t Text) *Builder {
	b.opts.Empty.Title = t
	return b
}

// SetEmptyMessage sets the empty-state message.
func (b *Builder) SetEmptyMessage(t Text) *Builder {
	b.opts.Empty.Message = t
	return b
}

// SetEmptyImage sets the empty-state image: a glyph, a file path, or a resource.
func (b *Builder) SetEmptyImage(t Text) *Builder {
	b.opts.Empty.Image = t
	return b
}

// SetEmptyTitleColor sets the empty-state title color.
func (b *Builder) SetEmptyTitleColor(color string) *Builder {
	b.opts.Empty.TitleColor = color
	return b
}

// SetEmptyMessageColor sets the empty-state message color.
func (b *Builder) SetEmptyMessageColor(color string) *Builder {
	b.opts.Empty.MessageColor = color
	return b
}

// SetEmptyRenderer replaces the default empty-state layout.
func (b *Builder) SetEmptyRenderer(fn func(title, message, image string) string) *Builder {
	b.opts.Empty.Render = fn
	return b
}

// SetLogger sets the logger handed to built controllers.
func (b *Builder) SetLogger(logger zerolog.Logger) *Builder {
	b.logger = logger
	return b
}

// Options returns a copy of the accumulated options.
func (b *Builder) Options() Options {
	return b.opts
}

// Build binds the host's list view and returns a live Controller.
// Detector attachment is deferred to the list view's next layout pass.
func (b *Builder) Build() (*Controller, error) {
	opts := b.opts
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if b.callback == nil {
		return nil, ErrNilCallback
	}

	lv := b.callback.ListView()
	if lv == nil {
		return nil, ErrNilListView
	}

	lv.SetRefreshEnabled(opts.RefreshEnabled)
	lv.SetOnRefreshRequested(opts.OnRefresh)
	if opts.EmptyViewEnabled {
		lv.SetEmptyContent(opts.Empty)
	}

	ctrl := newController(opts.PageElementCount, b.callback, b.logger)
	ctrl.emptyViewEnabled = opts.EmptyViewEnabled

	if !lv.HasLayout() {
		lv.SetLayout(LinearLayout())
	}
	lv.SetEmptyStateVisible(false)

	render := opts.LoadingRowRenderer
	if render == nil {
		render = DefaultLoadingRowText
	}
	row := LoadingRow{
		Enabled: opts.LoadingRowEnabled,
		Span:    opts.LoadingRowSpan,
		Render:  func() string { return render(ctrl.CurrentPage() + 1) },
	}

	threshold := opts.Threshold
	lv.Post(func() {
		lv.AttachScrollDetector(scroll.NewDetector(ctrl, threshold), row)
	})

	b.logger.Debug().
		Str("session_id", ctrl.SessionID().String()).
		Int("page_size", opts.PageElementCount).
		Int("threshold", opts.Threshold).
		Bool("refresh", opts.RefreshEnabled).
		Bool("empty_view", opts.EmptyViewEnabled).
		Msg("pagination bound")

	return ctrl, nil
}
