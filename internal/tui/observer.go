package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/watchlist/internal/domain"
)

// ChannelObserver adapts domain.Observer to a channel for Bubble Tea.
type ChannelObserver struct {
	ch chan<- domain.Change
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver(ch chan<- domain.Change) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnChange sends the change to the channel (non-blocking if full).
func (o *ChannelObserver) OnChange(change domain.Change) {
	select {
	case o.ch <- change:
	default: // Non-blocking if channel full
	}
}

// waitForChange blocks until the store reports a change.
func waitForChange(ch <-chan domain.Change) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return nil
		}
		return StoreChangedMsg{Change: change}
	}
}
