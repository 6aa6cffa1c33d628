package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/pagebind/internal/pagination"
)

// View renders the header, the list and the footer (Bubble Tea interface).
func (m *FeedModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.list.View(),
	}

	if m.err != nil {
		sections = append(sections, ErrorStyle.Render("Error: "+m.err.Error()))
	}
	sections = append(sections, m.renderStatusBar())

	m.keys.list = m.list.KeyMap()
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader shows the source name and session.
func (m *FeedModel) renderHeader() string {
	title := HeaderStyle.Render("pagebind")
	src := SubtleStyle.Render(fmt.Sprintf(" · %s · session %s", m.opts.Source.Name(), m.ctrl.SessionID()))
	if m.noData {
		src += WarningStyle.Render(" · no data")
	}
	return title + src
}

// renderStatusBar displays the pagination state.
func (m *FeedModel) renderStatusBar() string {
	meta := m.ctrl.Meta()

	parts := []string{
		LabelStyle.Render("Page ") + ValueStyle.Render(FormatCount(meta.CurrentPage)),
		LabelStyle.Render("Items ") + ValueStyle.Render(FormatCount(meta.TotalItems)),
		LabelStyle.Render("Size ") + ValueStyle.Render(FormatCount(meta.PageSize)),
		phaseStyle(meta.Phase).Render(meta.Phase),
	}
	if m.status != "" {
		parts = append(parts, InfoStyle.Render(m.status))
	}

	return strings.Join(parts, SubtleStyle.Render(" | "))
}

// phaseStyle returns the style used for a pagination phase label.
func phaseStyle(phase string) lipgloss.Style {
	switch phase {
	case pagination.PhaseLoading:
		return InfoStyle
	case pagination.PhaseEmpty, pagination.PhaseDisabled:
		return WarningStyle
	default:
		return SubtleStyle
	}
}
