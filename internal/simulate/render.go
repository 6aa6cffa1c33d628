package simulate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Render.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Padding(0, 1)
	failStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Render writes reports to w in the given format.
func Render(w io.Writer, format string, reports []Report) error {
	switch format {
	case FormatTable, "":
		return RenderTable(w, reports)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(reports)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// RenderTable writes one event table per report followed by a summary table.
func RenderTable(w io.Writer, reports []Report) error {
	for _, r := range reports {
		title := fmt.Sprintf("Scenario %s", r.Name)
		if r.Description != "" {
			title += ": " + r.Description
		}
		if _, err := fmt.Fprintln(w, titleStyle.Render(title)); err != nil {
			return err
		}

		rows := make([][]string, 0, len(r.Events))
		for _, ev := range r.Events {
			rows = append(rows, []string{strconv.Itoa(ev.Seq), ev.Step, ev.Kind, ev.Detail})
		}
		t := newTable([]string{"#", "Step", "Event", "Detail"}, rows, nil)
		if _, err := fmt.Fprintln(w, t.Render()); err != nil {
			return err
		}

		for _, c := range r.Checks {
			mark := passStyle.Render("PASS")
			if !c.Passed {
				mark = failStyle.Render("FAIL")
			}
			line := mark + " " + c.Name
			if c.Detail != "" {
				line += " (" + c.Detail + ")"
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	summary := make([][]string, 0, len(reports))
	for _, r := range reports {
		result := "PASS"
		if !r.Passed {
			result = "FAIL"
		}
		summary = append(summary, []string{
			r.Name,
			strconv.Itoa(r.Meta.CurrentPage),
			strconv.Itoa(r.Meta.TotalItems),
			r.Meta.Phase,
			result,
		})
	}
	t := newTable([]string{"Scenario", "Page", "Total", "Phase", "Result"}, summary, func(row, col int) lipgloss.Style {
		if col == 4 && row >= 0 && row < len(summary) && summary[row][4] == "FAIL" {
			return failStyle
		}
		if col == 4 && row >= 0 {
			return passStyle
		}
		return cellStyle
	})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func newTable(headers []string, rows [][]string, style func(row, col int) lipgloss.Style) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if style != nil {
				return style(row, col)
			}
			return cellStyle
		})
}
