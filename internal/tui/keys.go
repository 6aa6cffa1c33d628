package tui

import (
	"github.com/charmbracelet/bubbles/key"

	listview "github.com/rshade/pagebind/internal/tui/list"
)

// feedKeyMap combines the list bindings with the feed screen's own.
type feedKeyMap struct {
	list     listview.KeyMap
	PageSize key.Binding
	NoData   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newFeedKeyMap(list listview.KeyMap) feedKeyMap {
	return feedKeyMap{
		list:     list,
		PageSize: key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "page size")),
		NoData:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "toggle no data")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k feedKeyMap) ShortHelp() []key.Binding {
	return append(k.list.ShortHelp(), k.PageSize, k.NoData, k.Help, k.Quit)
}

// FullHelp implements help.KeyMap.
func (k feedKeyMap) FullHelp() [][]key.Binding {
	return append(k.list.FullHelp(), []key.Binding{k.PageSize, k.NoData, k.Help, k.Quit})
}
