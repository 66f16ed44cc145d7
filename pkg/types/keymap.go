package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the dashboard.
// It lives in pkg/types so the model and the help view share it.
type KeyMap struct {
	// General
	Help key.Binding
	Quit key.Binding

	// Table
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	PageSize key.Binding // Cycle forward through page size options
	Smaller  key.Binding // Cycle backward
	Open     key.Binding // Open the detail panel

	// Filtering & sorting
	Search      key.Binding
	ShowFilter  key.Binding
	ClearFilter key.Binding
	Sort        key.Binding
	ClearSort   key.Binding

	// Actions
	Export      key.Binding
	Reload      key.Binding
	ToggleChart key.Binding

	// Search & detail modes
	Accept key.Binding
	Back   key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextPage: key.NewBinding(key.WithKeys("n", "right", "l"), key.WithHelp("n/→", "next page")),
		PrevPage: key.NewBinding(key.WithKeys("p", "left", "h"), key.WithHelp("p/←", "prev page")),
		PageSize: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more per page")),
		Smaller:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "fewer per page")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),

		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		ShowFilter:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tv show filter")),
		ClearFilter: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear filters")),
		Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort by name")),
		ClearSort:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "unsorted")),

		Export:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export xlsx")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		ToggleChart: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chart")),

		Accept: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.ShowFilter, k.Sort, k.NextPage, k.PrevPage, k.Open, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage, k.PageSize, k.Smaller},
		{k.Search, k.ShowFilter, k.ClearFilter, k.Sort, k.ClearSort},
		{k.Open, k.ToggleChart, k.Export, k.Reload},
		{k.Back, k.Help, k.Quit},
	}
}
