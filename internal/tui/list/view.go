package listview

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	defaultEmptyTitle   = "Nothing to show"
	defaultLoadingText  = "Loading…"
	refreshingText      = "Refreshing…"
	defaultEmptyColor   = "240"
	defaultTitleColor   = "252"
	gridCellPaddingLeft = 1

	// maxEmptyImageBytes caps an empty-state image read from a file.
	maxEmptyImageBytes = 64 << 10
)

var (
	loadingRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	refreshStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// View renders the empty-state view, or the visible rows followed by the
// loading row when more pages may exist.
func (m *Model[T]) View() string {
	var sections []string

	if m.refreshing {
		sections = append(sections, refreshStyle.Render(m.spinner.View()+" "+refreshingText))
	}

	if m.emptyVisible {
		sections = append(sections, m.renderEmpty())
		return strings.Join(sections, "\n")
	}

	if body := m.renderRows(); body != "" {
		sections = append(sections, body)
	}

	return strings.Join(sections, "\n")
}

// renderRows renders the visible item rows and the trailing loading row.
func (m *Model[T]) renderRows() string {
	cols := m.columns()
	cellWidth := m.cellWidth()

	var lines []string
	var cells []string
	for i := m.visibleFrom; i < m.visibleTo; i++ {
		cell := m.renderFunc(m.items[i], i == m.selected)
		if cols == 1 {
			lines = append(lines, cell)
			continue
		}
		cells = append(cells, lipgloss.NewStyle().Width(cellWidth).PaddingLeft(gridCellPaddingLeft).Render(cell))
		if len(cells) == cols {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
			cells = nil
		}
	}

	if !m.TrailingRowVisible() || m.visibleTo < len(m.items) {
		if len(cells) > 0 {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		}
		return strings.Join(lines, "\n")
	}

	// The loading row shares the last grid row when it fits beside the items.
	span := min(m.row.Span, cols)
	loading := m.renderLoadingRow(span * cellWidth)
	if len(cells) > 0 && len(cells)+span <= cols {
		cells = append(cells, loading)
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		return strings.Join(lines, "\n")
	}
	if len(cells) > 0 {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	lines = append(lines, loading)
	return strings.Join(lines, "\n")
}

// renderLoadingRow renders the trailing row at the given width.
func (m *Model[T]) renderLoadingRow(width int) string {
	text := defaultLoadingText
	if m.row.Render != nil {
		text = m.row.Render()
	}
	style := loadingRowStyle
	if m.columns() > 1 && width > 0 {
		style = style.Width(width).PaddingLeft(gridCellPaddingLeft)
	}
	return style.Render(m.spinner.View() + " " + text)
}

// cellWidth returns the width of one grid cell.
func (m *Model[T]) cellWidth() int {
	if m.width <= 0 {
		return 0
	}
	return m.width / m.columns()
}

// renderEmpty renders the empty-state view centered in the viewport.
func (m *Model[T]) renderEmpty() string {
	title := m.empty.Title.Resolve(m.lookupResource)
	message := m.empty.Message.Resolve(m.lookupResource)
	image := m.emptyImage

	if m.empty.Render != nil {
		return m.empty.Render(title, message, image)
	}

	if title == "" && message == "" && image == "" {
		title = defaultEmptyTitle
	}

	titleColor := m.empty.TitleColor
	if titleColor == "" {
		titleColor = defaultTitleColor
	}
	messageColor := m.empty.MessageColor
	if messageColor == "" {
		messageColor = defaultEmptyColor
	}

	var parts []string
	if image != "" {
		parts = append(parts, image, "")
	}
	if title != "" {
		parts = append(parts, lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(titleColor)).
			Render(title))
	}
	if message != "" {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(lipgloss.Color(messageColor)).
			Render(message))
	}

	block := lipgloss.JoinVertical(lipgloss.Center, parts...)
	if m.width <= 0 || m.height <= 0 {
		return block
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}

// lookupResource resolves a named resource.
func (m *Model[T]) lookupResource(name string) (string, bool) {
	v, ok := m.resources[name]
	return v, ok
}

// loadImage returns the contents of the file named by image, or image itself
// when it does not name a readable file of at most maxEmptyImageBytes.
func loadImage(image string) string {
	if image == "" || strings.ContainsAny(image, "\n") {
		return image
	}
	info, err := os.Stat(image)
	if err != nil || info.IsDir() || info.Size() > maxEmptyImageBytes {
		return image
	}
	data, err := os.ReadFile(image)
	if err != nil {
		return image
	}
	return strings.TrimRight(string(data), "\n")
}
