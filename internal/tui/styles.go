package tui

import (
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Layout defaults used before the first tea.WindowSizeMsg.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Color palette.
const (
	colorAccent  = lipgloss.Color("39")
	colorSubtle  = lipgloss.Color("244")
	colorWarning = lipgloss.Color("214")
	colorError   = lipgloss.Color("196")
	colorLabel   = lipgloss.Color("252")
)

//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	LabelStyle    = lipgloss.NewStyle().Foreground(colorLabel)
	ValueStyle    = lipgloss.NewStyle().Bold(true)
	SubtleStyle   = lipgloss.NewStyle().Foreground(colorSubtle)
	InfoStyle     = lipgloss.NewStyle().Foreground(colorAccent)
	WarningStyle  = lipgloss.NewStyle().Foreground(colorWarning)
	ErrorStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
)

// printer formats counts with thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatCount formats n with thousand separators, e.g. 18248 as "18,248".
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}
