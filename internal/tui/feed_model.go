package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/rshade/pagebind/internal/logging"
	"github.com/rshade/pagebind/internal/pagination"
	"github.com/rshade/pagebind/internal/source"
	listview "github.com/rshade/pagebind/internal/tui/list"
)

// DefaultFetchTimeout bounds a single page fetch.
const DefaultFetchTimeout = 10 * time.Second

// chromeHeight is the number of rows used by the header and footer.
const chromeHeight = 4

// DefaultPageSizes are the page sizes selectable with keys 1-4.
//
//nolint:gochecknoglobals // Read-only defaults.
var DefaultPageSizes = []int{5, 10, 15, 20}

// ErrNoSource is returned when a feed is created without a source.
var ErrNoSource = errors.New("feed source is required")

// PageLoadedMsg carries the result of a page fetch back to the UI goroutine.
type PageLoadedMsg struct {
	Session ulid.ULID
	Page    int
	Items   []source.Item
	Err     error
}

// FeedOptions configures a FeedModel.
type FeedOptions struct {
	Source     source.Source
	Pagination pagination.Options
	Layout     pagination.Layout
	Resources  map[string]string

	FetchTimeout time.Duration
	SortField    string
	SortOrder    string

	// PageSizes are bound to keys 1-4. Defaults to DefaultPageSizes.
	PageSizes []int

	Logger zerolog.Logger
}

// FeedModel is the Bubble Tea screen that hosts a paginated list. It loads
// pages from a source.Source when the bound controller asks for them.
type FeedModel struct {
	ctx    context.Context
	opts   FeedOptions
	list   *listview.Model[source.Item]
	ctrl   *pagination.Controller
	keys   feedKeyMap
	help   help.Model
	logger zerolog.Logger

	// pending holds fetches requested during the current update.
	pending []tea.Cmd

	noData   bool
	status   string
	err      error
	width    int
	height   int
	quitting bool
}

// NewFeedModel creates the feed screen and binds pagination to its list.
func NewFeedModel(ctx context.Context, opts FeedOptions) (*FeedModel, error) {
	if opts.Source == nil {
		return nil, ErrNoSource
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if len(opts.PageSizes) == 0 {
		opts.PageSizes = DefaultPageSizes
	}

	m := &FeedModel{
		ctx:    ctx,
		opts:   opts,
		help:   help.New(),
		logger: logging.ComponentLogger(opts.Logger, "feed"),
		width:  defaultWidth,
		height: defaultHeight,
	}

	m.list = listview.New(renderItem)
	m.list.SetResources(opts.Resources)
	if opts.Layout.Columns > 0 {
		m.list.SetLayout(opts.Layout)
	}

	ctrl, err := pagination.BuildWith(opts.Pagination.PageElementCount, m).
		WithOptions(opts.Pagination).
		SetOnRefresh(m.refresh).
		SetLogger(opts.Logger).
		Build()
	if err != nil {
		return nil, fmt.Errorf("binding pagination: %w", err)
	}
	m.ctrl = ctrl
	m.keys = newFeedKeyMap(m.list.KeyMap())

	return m, nil
}

// renderItem renders one feed item.
func renderItem(item source.Item, selected bool) string {
	line := fmt.Sprintf("%s  %s", item.Title, SubtleStyle.Render(item.Subtitle))
	if selected {
		return SelectedStyle.Render("▸ ") + line
	}
	return "  " + line
}

// Init starts the list spinner (Bubble Tea interface).
func (m *FeedModel) Init() tea.Cmd {
	return m.list.Init()
}

// Update handles messages and returns any fetches the controller requested
// (Bubble Tea interface).
func (m *FeedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.list.Update(tea.WindowSizeMsg{Width: msg.Width, Height: m.listHeight()})
		return m, m.drain()

	case PageLoadedMsg:
		m.handlePageLoaded(msg)
		return m, m.drain()

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, tea.Batch(cmd, m.drain())
		}
	}

	_, cmd := m.list.Update(msg)
	return m, tea.Batch(cmd, m.drain())
}

// handleKey processes the feed screen's own keys.
func (m *FeedModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit, true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.list.SetSize(m.width, m.listHeight())
		return nil, true
	case key.Matches(msg, m.keys.PageSize):
		idx := int(msg.String()[0] - '1')
		if idx >= 0 && idx < len(m.opts.PageSizes) {
			m.restart(m.opts.PageSizes[idx])
		}
		return nil, true
	case key.Matches(msg, m.keys.NoData):
		m.noData = !m.noData
		m.restart(m.ctrl.PageElementCount())
		return nil, true
	}
	return nil, false
}

// restart begins a new session with the given page size.
func (m *FeedModel) restart(pageSize int) {
	if err := m.ctrl.Reset(pageSize); err != nil {
		m.err = err
		return
	}
	m.list.SetItems(nil)
	m.list.SetSelected(0)
	m.status = ""
	m.err = nil
	m.list.CheckScroll()
}

// refresh runs when the user pulls to refresh. The list's next scroll
// check requests the first page of the new session.
func (m *FeedModel) refresh() {
	m.logger.Debug().Msg("refresh requested")
	if err := m.ctrl.Reset(m.ctrl.PageElementCount()); err != nil {
		m.err = err
		return
	}
	m.list.SetItems(nil)
	m.status = ""
	m.err = nil
}

// handlePageLoaded appends a fetched page and reports the new total.
func (m *FeedModel) handlePageLoaded(msg PageLoadedMsg) {
	if msg.Session != m.ctrl.SessionID() {
		m.logger.Debug().
			Str("session_id", msg.Session.String()).
			Int("page", msg.Page).
			Msg("dropping page from previous session")
		return
	}

	if msg.Err != nil {
		// The unchanged total ends the session as exhausted.
		m.err = msg.Err
		m.logger.Warn().Err(msg.Err).Int("page", msg.Page).Msg("page fetch failed")
	} else {
		m.list.AppendItems(msg.Items...)
	}

	if err := m.ctrl.LoadFinished(m.list.ItemCount()); err != nil {
		m.logger.Error().Err(err).Int("page", msg.Page).Msg("load finish rejected")
		return
	}
	m.list.CheckScroll()
}

// drain returns the fetches queued since the last call.
func (m *FeedModel) drain() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := m.pending
	m.pending = nil
	return tea.Batch(cmds...)
}

// listHeight returns the rows left for the list.
func (m *FeedModel) listHeight() int {
	h := m.height - chromeHeight
	if m.help.ShowAll {
		// The full help renders each group as a column.
		tallest := 0
		for _, group := range m.keys.FullHelp() {
			tallest = max(tallest, len(group))
		}
		h -= tallest - 1
	}
	return max(h, 1)
}

// The methods below implement pagination.PageBindingCallback.

// OnLoadNext queues a fetch of the requested page.
func (m *FeedModel) OnLoadNext(nextPage, currentLoadedItemCount, pageElementCount int) {
	m.pending = append(m.pending, fetchPage(
		m.ctx,
		m.opts.Source,
		m.ctrl.SessionID(),
		nextPage,
		source.Query{
			Offset:    currentLoadedItemCount,
			Limit:     pageElementCount,
			SortField: m.opts.SortField,
			SortOrder: m.opts.SortOrder,
		},
		m.opts.FetchTimeout,
		m.noData,
	))
}

// OnNoDataFound records that the source had nothing to show.
func (m *FeedModel) OnNoDataFound() {
	m.status = "No data found"
	m.logger.Info().Msg("no data found")
}

// OnAllItemLoaded records that every page has been loaded.
func (m *FeedModel) OnAllItemLoaded() {
	m.status = "All items loaded"
	m.logger.Info().Int("total", m.list.ItemCount()).Msg("all items loaded")
}

// ListView returns the bound list.
func (m *FeedModel) ListView() pagination.ListView {
	return m.list
}

// fetchPage returns a command that fetches one page off the UI goroutine.
// With noData set the source is skipped and the page comes back empty.
func fetchPage(
	ctx context.Context,
	src source.Source,
	session ulid.ULID,
	page int,
	q source.Query,
	timeout time.Duration,
	noData bool,
) tea.Cmd {
	return func() tea.Msg {
		if noData {
			return PageLoadedMsg{Session: session, Page: page}
		}

		fetchCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		items, err := src.Fetch(fetchCtx, q)
		return PageLoadedMsg{Session: session, Page: page, Items: items, Err: err}
	}
}

// Controller returns the bound pagination controller.
func (m *FeedModel) Controller() *pagination.Controller {
	return m.ctrl
}

// List returns the feed's list.
func (m *FeedModel) List() *listview.Model[source.Item] {
	return m.list
}
