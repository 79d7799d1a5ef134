package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/watchlist/internal/config"
	"github.com/mmcdole/watchlist/internal/domain"
)

// Message types for the TUI

// StoreChangedMsg signals that the watch list store was mutated
type StoreChangedMsg struct {
	Change domain.Change
}

// ConfigReloadedMsg carries a config re-read after the file changed
type ConfigReloadedMsg struct {
	Config *config.Config
}

// ConfigErrorMsg reports a config file edit that failed validation
type ConfigErrorMsg struct {
	Err error
}

// ClearStatusMsg clears the status line if it still shows the given message
type ClearStatusMsg struct {
	Seq int
}

// clearStatusCmd schedules a ClearStatusMsg
func clearStatusCmd(seq int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
