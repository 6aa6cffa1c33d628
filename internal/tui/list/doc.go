// Package listview provides a virtual scrolling list for Bubble Tea that can
// be bound to a pagination controller.
//
// Model renders only the rows inside the viewport, so it stays responsive as
// pages accumulate. It implements pagination.ListView: the controller drives
// its empty-state view, refresh indicator and trailing loading row, and the
// scroll detector attached after the first layout pass (the first
// tea.WindowSizeMsg) is checked after every update.
//
// Items are laid out in a single column or, with a grid layout, in several
// columns per row. Keyboard navigation follows the bindings in KeyMap.
package listview
