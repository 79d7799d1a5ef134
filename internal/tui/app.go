package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/watchlist/internal/config"
	"github.com/mmcdole/watchlist/internal/domain"
	"github.com/mmcdole/watchlist/internal/search"
	"github.com/mmcdole/watchlist/internal/tui/components"
	"github.com/mmcdole/watchlist/internal/watchlist"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateEditing
	StateConfirmDelete
	StateHelp
)

// Layout constants
const (
	// Lines above and below the list: title, filter button, spacer,
	// draft label + bordered field, add button, status, footer
	ChromeHeight = 10

	MinListHeight = 5

	statusTimeout = 4 * time.Second

	// changeBuffer bounds pending store notifications
	changeBuffer = 64
)

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	Store  *watchlist.Store
	Config *config.Config

	// UI Components
	List  *components.WatchList
	Draft components.DraftInput
	Help  help.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
	statusSeq   int

	// Item awaiting delete confirmation
	pendingDelete *domain.Item

	changes     chan domain.Change
	unsubscribe func()
	logger      *slog.Logger
}

// NewModel creates a new application model bound to store
func NewModel(store *watchlist.Store, cfg *config.Config, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	changes := make(chan domain.Change, changeBuffer)
	unsubscribe := store.Subscribe(NewChannelObserver(changes))

	m := Model{
		State:       StateBrowsing,
		Store:       store,
		Config:      cfg,
		List:        components.NewWatchList("Filmes"),
		Draft:       components.NewDraftInput(),
		Help:        help.New(),
		changes:     changes,
		unsubscribe: unsubscribe,
		logger:      logger,
	}
	m.applyConfig(cfg)
	m.Draft.SetValue(store.DraftTitle())
	m.refresh()
	return m
}

// Close detaches the model from the store
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return waitForChange(m.changes)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case StoreChangedMsg:
		m.refresh()
		return m, waitForChange(m.changes)

	case ConfigReloadedMsg:
		m.applyConfig(msg.Config)
		m.logger.Info("config reloaded")
		return m, m.setStatus("Configuração recarregada", false)

	case ConfigErrorMsg:
		m.logger.Warn("config reload rejected", "error", msg.Err)
		return m, m.setStatus(msg.Err.Error(), true)

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	// Cursor blink and other component messages
	var cmd tea.Cmd
	if m.State == StateEditing {
		m.Draft, cmd, _, _ = m.Draft.Update(msg)
	} else {
		m.List, cmd = m.List.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.State {
	case StateEditing:
		return m.handleEditingKeys(msg)
	case StateConfirmDelete:
		return m.handleConfirmKeys(msg)
	case StateHelp:
		if key.Matches(msg, Keys.Quit) {
			return m, tea.Quit
		}
		if key.Matches(msg, Keys.Help) || msg.String() == "esc" {
			m.State = StateBrowsing
			m.Help.ShowAll = false
		}
		return m, nil
	}

	// Title search owns the keyboard while typing
	if m.List.IsSearching() {
		var cmd tea.Cmd
		m.List, cmd = m.List.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		m.Help.ShowAll = true
		return m, nil

	case key.Matches(msg, Keys.Add):
		m.State = StateEditing
		m.List.SetFocused(false)
		return m, m.Draft.Focus()

	case key.Matches(msg, Keys.CycleFilter):
		mode := m.Store.CycleFilter()
		m.refresh()
		return m, m.setStatus(mode.Label(), false)

	case key.Matches(msg, Keys.ToggleWatched):
		item := m.List.SelectedItem()
		if item == nil {
			return m, nil
		}
		m.Store.ToggleWatched(item)
		m.refresh()
		return m, nil

	case key.Matches(msg, Keys.ToggleFavorite):
		item := m.List.SelectedItem()
		if item == nil {
			return m, nil
		}
		m.Store.ToggleFavorite(item)
		m.refresh()
		return m, nil

	case key.Matches(msg, Keys.Delete):
		item := m.List.SelectedItem()
		if item == nil {
			return m, nil
		}
		if m.Config.UI.ConfirmDelete {
			m.pendingDelete = item
			m.State = StateConfirmDelete
			return m, nil
		}
		return m, m.removeItem(item)
	}

	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return m, cmd
}

func (m Model) handleEditingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var submitted, left bool
	m.Draft, cmd, submitted, left = m.Draft.Update(msg)

	switch {
	case submitted:
		return m, m.commitDraft()
	case left:
		m.State = StateBrowsing
		m.List.SetFocused(true)
		return m, nil
	}

	// Mirror every edit into the store
	m.Store.SetDraftTitle(m.Draft.Value())
	return m, cmd
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Confirm):
		item := m.pendingDelete
		m.pendingDelete = nil
		m.State = StateBrowsing
		return m, m.removeItem(item)
	case key.Matches(msg, Keys.Deny):
		m.pendingDelete = nil
		m.State = StateBrowsing
		return m, nil
	}
	return m, nil
}

// commitDraft adds the draft as a new item and clears the field
func (m *Model) commitDraft() tea.Cmd {
	m.Store.SetDraftTitle(m.Draft.Value())
	item := m.Store.CommitDraft()
	m.Draft.SetValue("")
	m.refresh()

	status := fmt.Sprintf("Adicionado: %s", item.Title())
	if m.Config.UI.SimilarHints {
		if similar := m.similarTo(item); len(similar) > 0 {
			status += fmt.Sprintf(" (parecido com %q)", similar[0].Title())
		}
	}
	if !m.Store.Filter().Matches(item) {
		status += " · oculto pelo filtro"
	}
	return m.setStatus(status, false)
}

// similarTo returns existing items whose titles resemble item's
func (m *Model) similarTo(item *domain.Item) []*domain.Item {
	var others []*domain.Item
	for _, it := range m.Store.Items() {
		if it != item {
			others = append(others, it)
		}
	}
	return search.Similar(item.Title(), others)
}

func (m *Model) removeItem(item *domain.Item) tea.Cmd {
	if !m.Store.RemoveItem(item) {
		return m.setStatus("Item não encontrado", true)
	}
	m.refresh()
	return m.setStatus(fmt.Sprintf("Apagado: %s", item.Title()), false)
}

// refresh re-reads the visible items from the store
func (m *Model) refresh() {
	m.List.SetItems(m.Store.VisibleItems())
}

func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.Config = cfg
	m.List.SetOptions(components.WatchListOptions{
		Emoji:       cfg.UI.Emoji,
		ShowAddedAt: cfg.UI.ShowAddedAt,
	})
}

func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = msg
	m.StatusIsErr = isErr
	return clearStatusCmd(m.statusSeq, statusTimeout)
}

func (m *Model) updateLayout() {
	listHeight := m.Height - ChromeHeight
	if listHeight < MinListHeight {
		listHeight = MinListHeight
	}
	m.List.SetSize(m.Width, listHeight)
	m.Draft.SetWidth(m.Width)
	m.Help.Width = m.Width
}

// statusLine returns the status text with any trailing whitespace trimmed
func (m Model) statusLine() string {
	return strings.TrimSpace(m.StatusMsg)
}
