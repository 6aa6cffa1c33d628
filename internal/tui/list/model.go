package listview

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/pagebind/internal/pagination"
	"github.com/rshade/pagebind/internal/scroll"
)

// halfViewportDivisor is used to calculate half the viewport height for centering.
const halfViewportDivisor = 2

// RenderFunc is a function that renders an item.
// The selected parameter indicates whether this item is currently selected.
type RenderFunc[T any] func(item T, selected bool) string

// Model is a virtual scrolling list that implements pagination.ListView.
// Methods use pointer receivers so a bound controller and the Bubble Tea
// program share one instance.
type Model[T any] struct {
	items      []T
	renderFunc RenderFunc[T]

	// selected is the currently selected item index (0-based)
	selected int

	// visibleFrom is the first visible item index
	visibleFrom int

	// visibleTo is the last visible item index (exclusive)
	visibleTo int

	height int
	width  int

	layout    pagination.Layout
	hasLayout bool

	detector *scroll.Detector
	row      pagination.LoadingRow

	empty        pagination.EmptyContent
	emptyImage   string
	emptyVisible bool
	resources    map[string]string

	refreshEnabled bool
	refreshing     bool
	onRefresh      func()

	// posted holds callbacks waiting for the next layout pass.
	posted  []func()
	laidOut bool

	spinner spinner.Model
	keys    KeyMap
}

// New creates an empty list. Size is unknown until the first tea.WindowSizeMsg.
func New[T any](renderFunc RenderFunc[T]) *Model[T] {
	m := &Model[T]{
		renderFunc: renderFunc,
		layout:     pagination.LinearLayout(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		keys:       DefaultKeyMap(),
	}
	m.keys.Refresh.SetEnabled(false)
	return m
}

// Init starts the spinner used by the refresh indicator and loading row.
func (m *Model[T]) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles keyboard, resize and spinner messages, runs callbacks posted
// for the layout pass, and checks the scroll position.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
	}

	if m.laidOut {
		m.flushPosted()
	}
	m.CheckScroll()

	return m, cmd
}

// handleKeyMsg processes keyboard input for navigation and refresh.
func (m *Model[T]) handleKeyMsg(msg tea.KeyMsg) {
	if key.Matches(msg, m.keys.Refresh) {
		m.requestRefresh()
		return
	}

	if len(m.items) == 0 {
		return
	}

	cols := m.columns()
	page := m.viewportRows() * cols

	switch {
	case key.Matches(msg, m.keys.Up):
		m.SetSelected(m.selected - cols)
	case key.Matches(msg, m.keys.Down):
		if m.selected+cols < len(m.items) {
			m.SetSelected(m.selected + cols)
		} else {
			m.SetSelected(len(m.items) - 1)
		}
	case key.Matches(msg, m.keys.Left):
		if cols > 1 && m.selected%cols > 0 {
			m.SetSelected(m.selected - 1)
		}
	case key.Matches(msg, m.keys.Right):
		if cols > 1 && m.selected%cols < cols-1 {
			m.SetSelected(m.selected + 1)
		}
	case key.Matches(msg, m.keys.PageUp):
		m.SetSelected(m.selected - page)
	case key.Matches(msg, m.keys.PageDown):
		m.SetSelected(m.selected + page)
	case key.Matches(msg, m.keys.Home):
		m.SetSelected(0)
	case key.Matches(msg, m.keys.End):
		m.SetSelected(len(m.items) - 1)
	}
}

// requestRefresh starts a user refresh if one is allowed and not running.
func (m *Model[T]) requestRefresh() {
	if !m.refreshEnabled || m.refreshing {
		return
	}
	m.refreshing = true
	if m.onRefresh != nil {
		m.onRefresh()
	}
}

// flushPosted runs callbacks posted before or during the last layout pass.
func (m *Model[T]) flushPosted() {
	for len(m.posted) > 0 {
		fn := m.posted[0]
		m.posted = m.posted[1:]
		fn()
	}
}

// CheckScroll feeds the current viewport to the attached detector and
// reports whether it requested a load.
func (m *Model[T]) CheckScroll() bool {
	if m.detector == nil {
		return false
	}
	return m.detector.Check(m.Viewport())
}

// Viewport returns the scroll position as seen by the detector.
func (m *Model[T]) Viewport() scroll.Viewport {
	return scroll.Viewport{
		TotalItems:   len(m.items),
		FirstVisible: m.visibleFrom,
		VisibleCount: m.visibleTo - m.visibleFrom,
	}
}

// SetSize sets the viewport dimensions. The first call completes the
// layout pass.
func (m *Model[T]) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.laidOut = true
	m.updateVisibleRange()
}

// columns returns the number of items per row.
func (m *Model[T]) columns() int {
	if m.layout.Columns < 1 {
		return 1
	}
	return m.layout.Columns
}

// rowCount returns the number of item rows.
func (m *Model[T]) rowCount() int {
	cols := m.columns()
	return (len(m.items) + cols - 1) / cols
}

// viewportRows returns how many item rows fit beside the indicator rows.
func (m *Model[T]) viewportRows() int {
	rows := m.height
	if m.TrailingRowVisible() {
		rows--
	}
	if m.refreshing {
		rows--
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// updateVisibleRange calculates the visible range of items based on selection and viewport.
// This ensures the selected item is always visible and updates visibleFrom/visibleTo.
func (m *Model[T]) updateVisibleRange() {
	rows := m.rowCount()
	if rows == 0 {
		m.visibleFrom = 0
		m.visibleTo = 0
		return
	}

	cols := m.columns()
	height := m.viewportRows()
	halfViewport := height / halfViewportDivisor

	// Start by centering the selected row
	selectedRow := m.selected / cols
	idealFrom := selectedRow - halfViewport
	idealTo := idealFrom + height

	// Adjust if we're near the start
	if idealFrom < 0 {
		idealFrom = 0
		idealTo = height
	}

	// Adjust if we're near the end
	if idealTo > rows {
		idealTo = rows
		idealFrom = max(idealTo-height, 0)
	}

	m.visibleFrom = idealFrom * cols
	m.visibleTo = min(idealTo*cols, len(m.items))
}

// SetItems replaces every item and clamps the selection.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.SetSelected(m.selected)
}

// AppendItems adds items to the end of the list.
func (m *Model[T]) AppendItems(items ...T) {
	m.items = append(m.items, items...)
	m.updateVisibleRange()
}

// Items returns the items currently held by the list.
func (m *Model[T]) Items() []T {
	return m.items
}

// SetResources sets the named strings that empty-state references resolve to.
func (m *Model[T]) SetResources(resources map[string]string) {
	m.resources = resources
	m.emptyImage = loadImage(m.empty.Image.Resolve(m.lookupResource))
}

// ItemCount returns the total number of items in the list.
func (m *Model[T]) ItemCount() int {
	return len(m.items)
}

// Selected returns the currently selected item index.
func (m *Model[T]) Selected() int {
	return m.selected
}

// SetSelected sets the selected item index, capping to valid bounds.
func (m *Model[T]) SetSelected(index int) {
	switch {
	case len(m.items) == 0, index < 0:
		m.selected = 0
	case index >= len(m.items):
		m.selected = len(m.items) - 1
	default:
		m.selected = index
	}

	m.updateVisibleRange()
}

// GetSelectedItem returns the currently selected item, or nil if the list is empty.
func (m *Model[T]) GetSelectedItem() *T {
	if len(m.items) == 0 || m.selected < 0 || m.selected >= len(m.items) {
		return nil
	}
	return &m.items[m.selected]
}

// VisibleFrom returns the first visible item index (inclusive).
func (m *Model[T]) VisibleFrom() int {
	return m.visibleFrom
}

// VisibleTo returns the last visible item index (exclusive).
func (m *Model[T]) VisibleTo() int {
	return m.visibleTo
}

// Height returns the viewport height.
func (m *Model[T]) Height() int {
	return m.height
}

// Width returns the viewport width.
func (m *Model[T]) Width() int {
	return m.width
}

// KeyMap returns the active key bindings.
func (m *Model[T]) KeyMap() KeyMap {
	return m.keys
}

// Refreshing reports whether the refresh indicator is active.
func (m *Model[T]) Refreshing() bool {
	return m.refreshing
}

// RefreshEnabled reports whether the user may request a refresh.
func (m *Model[T]) RefreshEnabled() bool {
	return m.refreshEnabled
}

// EmptyStateVisible reports whether the empty-state view is shown.
func (m *Model[T]) EmptyStateVisible() bool {
	return m.emptyVisible
}

// TrailingRowVisible reports whether the loading row is shown below the items.
func (m *Model[T]) TrailingRowVisible() bool {
	return m.row.Enabled && m.detector != nil && m.detector.HasMore()
}

// Layout returns the current layout.
func (m *Model[T]) Layout() pagination.Layout {
	return m.layout
}

// The methods below implement pagination.ListView.

// SetEmptyStateVisible shows or hides the empty-state view.
func (m *Model[T]) SetEmptyStateVisible(visible bool) {
	m.emptyVisible = visible
}

// SetRefreshIndicator starts or stops the refresh indicator.
func (m *Model[T]) SetRefreshIndicator(active bool) {
	m.refreshing = active
	m.updateVisibleRange()
}

// SetRefreshEnabled allows or forbids user refreshes.
func (m *Model[T]) SetRefreshEnabled(enabled bool) {
	m.refreshEnabled = enabled
	m.keys.Refresh.SetEnabled(enabled)
}

// SetOnRefreshRequested sets the callback run when the user refreshes.
func (m *Model[T]) SetOnRefreshRequested(fn func()) {
	m.onRefresh = fn
}

// NotifyTrailingRowChanged recomputes the viewport after the loading row
// appeared or disappeared.
func (m *Model[T]) NotifyTrailingRowChanged() {
	m.updateVisibleRange()
}

// HasLayout reports whether a layout was set explicitly.
func (m *Model[T]) HasLayout() bool {
	return m.hasLayout
}

// SetLayout sets the layout.
func (m *Model[T]) SetLayout(layout pagination.Layout) {
	m.layout = layout
	m.hasLayout = true
	m.updateVisibleRange()
}

// SetEmptyContent sets what the empty-state view displays.
func (m *Model[T]) SetEmptyContent(content pagination.EmptyContent) {
	m.empty = content
	m.emptyImage = loadImage(m.empty.Image.Resolve(m.lookupResource))
}

// Post schedules fn to run after the next layout pass.
func (m *Model[T]) Post(fn func()) {
	if fn == nil {
		return
	}
	m.posted = append(m.posted, fn)
}

// AttachScrollDetector starts checking d after every update.
func (m *Model[T]) AttachScrollDetector(d *scroll.Detector, row pagination.LoadingRow) {
	if row.Span < 1 {
		row.Span = 1
	}
	m.detector = d
	m.row = row
	m.updateVisibleRange()
}
