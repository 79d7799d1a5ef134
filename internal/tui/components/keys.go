package components

import "github.com/charmbracelet/bubbles/key"

// WatchListKeyMap defines key bindings for list navigation
type WatchListKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Home     key.Binding
	End      key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding
	Escape   key.Binding
	Enter    key.Binding
	Filter   key.Binding
}

// DefaultWatchListKeyMap returns the default list key bindings
func DefaultWatchListKeyMap() WatchListKeyMap {
	return WatchListKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		HalfUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("C-u", "half page up"),
		),
		HalfDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("C-d", "half page down"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear search"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "accept search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search titles"),
		),
	}
}

// DraftInputKeyMap defines key bindings for the new item input
type DraftInputKeyMap struct {
	Submit key.Binding
	Leave  key.Binding
}

// DefaultDraftInputKeyMap returns the default draft input key bindings
func DefaultDraftInputKeyMap() DraftInputKeyMap {
	return DraftInputKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "adicionar item"),
		),
		Leave: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to list"),
		),
	}
}

// Package-level key map instances
var (
	WatchListKeys  = DefaultWatchListKeyMap()
	DraftInputKeys = DefaultDraftInputKeyMap()
)
