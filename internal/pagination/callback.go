package pagination

import "github.com/rshade/pagebind/internal/scroll"

// PageBindingCallback is implemented by the host screen that owns data loading.
type PageBindingCallback interface {
	// OnLoadNext asks the host to load nextPage. currentLoadedItemCount is the
	// total reported by the previous load-finish. The host must eventually
	// call Controller.LoadFinished exactly once, on the UI goroutine.
	OnLoadNext(nextPage, currentLoadedItemCount, pageElementCount int)

	// OnNoDataFound is called when a load finishes with zero items.
	OnNoDataFound()

	// OnAllItemLoaded is called when a load finishes without new items.
	OnAllItemLoaded()

	// ListView returns the list collaborator. It is looked up on every use
	// so hosts never have to hand out a long-lived reference.
	ListView() ListView
}

// ListView is the UI surface the controller drives.
type ListView interface {
	SetEmptyStateVisible(visible bool)
	SetRefreshIndicator(active bool)
	SetRefreshEnabled(enabled bool)
	SetOnRefreshRequested(fn func())

	// NotifyTrailingRowChanged repaints the trailing loading row after an
	// enable/disable transition.
	NotifyTrailingRowChanged()

	// The methods below are only used by Builder.Build.

	HasLayout() bool
	SetLayout(layout Layout)
	SetEmptyContent(content EmptyContent)

	// Post schedules fn to run once, after the next layout pass.
	Post(fn func())

	// AttachScrollDetector starts feeding viewport changes to d.
	AttachScrollDetector(d *scroll.Detector, row LoadingRow)
}

// Layout describes how the list arranges items.
type Layout struct {
	// Columns is the number of items per row. 1 is a linear list.
	Columns int
}

// LinearLayout returns the single-column default layout.
func LinearLayout() Layout {
	return Layout{Columns: 1}
}

// GridLayout returns a layout with the given number of columns.
func GridLayout(columns int) Layout {
	if columns < 1 {
		columns = 1
	}
	return Layout{Columns: columns}
}

// IsGrid reports whether the layout has more than one column.
func (l Layout) IsGrid() bool {
	return l.Columns > 1
}

// LoadingRow configures the trailing row shown while more pages may exist.
type LoadingRow struct {
	Enabled bool
	// Span is the number of grid cells the row occupies.
	Span int
	// Render returns the row text. Nil means the list's default.
	Render func() string
}

// Text is either a literal string or a reference to a named resource that
// the list view resolves.
type Text struct {
	Literal string `json:"literal,omitempty" yaml:"literal,omitempty"`
	Ref     string `json:"ref,omitempty"     yaml:"ref,omitempty"`
}

// Literal returns a Text holding s.
func Literal(s string) Text {
	return Text{Literal: s}
}

// Ref returns a Text that refers to the resource named key.
func Ref(key string) Text {
	return Text{Ref: key}
}

// IsZero reports whether t holds neither a literal nor a reference.
func (t Text) IsZero() bool {
	return t.Literal == "" && t.Ref == ""
}

// Resolve returns the text, looking up references with lookup. A reference
// that cannot be resolved falls back to the literal.
func (t Text) Resolve(lookup func(key string) (string, bool)) string {
	if t.Ref != "" && lookup != nil {
		if v, ok := lookup(t.Ref); ok {
			return v
		}
	}
	return t.Literal
}

// EmptyContent is what the empty-state view displays.
type EmptyContent struct {
	Title        Text
	Message      Text
	Image        Text
	TitleColor   string
	MessageColor string
	// Render replaces the default empty layout when set.
	Render func(title, message, image string) string
}
