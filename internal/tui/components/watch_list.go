package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/mmcdole/watchlist/internal/domain"
	"github.com/mmcdole/watchlist/internal/search"
	"github.com/mmcdole/watchlist/internal/tui/styles"
)

// Layout constants for the list
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2

	// Width reserved for the relative "added" column
	addedColumnWidth = 16
)

// WatchListOptions controls row rendering
type WatchListOptions struct {
	Emoji       bool
	ShowAddedAt bool
}

// WatchList is a scrollable list of watch list items.
// It renders whatever slice it is given; the store decides what is visible.
type WatchList struct {
	items []*domain.Item

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title string
	opts  WatchListOptions
	now   func() time.Time

	// Title search state (narrows the visible items further)
	searchActive bool
	searchInput  textinput.Model
	matches      []search.Match
}

// NewWatchList creates a new list
func NewWatchList(title string) *WatchList {
	ti := textinput.New()
	ti.Placeholder = "type to search..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &WatchList{
		title:       title,
		searchInput: ti,
		focused:     true,
		now:         time.Now,
	}
}

// SetClock overrides the time source for relative timestamps
func (l *WatchList) SetClock(now func() time.Time) {
	if now != nil {
		l.now = now
	}
}

// SetOptions updates rendering options
func (l *WatchList) SetOptions(opts WatchListOptions) {
	l.opts = opts
}

// SetItems replaces the displayed items, keeping the cursor on the
// previously selected item when it is still present.
func (l *WatchList) SetItems(items []*domain.Item) {
	selected := l.SelectedItem()

	l.items = items
	l.applySearch()

	l.cursor = 0
	if selected != nil {
		for i, m := range l.matches {
			if m.Item == selected {
				l.cursor = i
				break
			}
		}
	}
	l.clampCursor()
	l.ensureVisible()
}

// Update handles navigation and title search keys
func (l *WatchList) Update(msg tea.Msg) (*WatchList, tea.Cmd) {
	if !l.focused {
		return l, nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)

	// Typing mode: search input receives keys
	if l.searchActive && l.searchInput.Focused() {
		if isKey {
			switch {
			case key.Matches(keyMsg, WatchListKeys.Escape):
				l.ClearSearch()
				return l, nil
			case key.Matches(keyMsg, WatchListKeys.Enter):
				l.searchInput.Blur()
				return l, nil
			case keyMsg.String() == "backspace" && l.searchInput.Value() == "":
				l.ClearSearch()
				return l, nil
			}
		}

		before := l.searchInput.Value()
		var cmd tea.Cmd
		l.searchInput, cmd = l.searchInput.Update(msg)
		if l.searchInput.Value() != before {
			l.applySearch()
			l.cursor = 0
			l.offset = 0
		}
		return l, cmd
	}

	if !isKey {
		return l, nil
	}

	// Search applied but blurred: esc clears, / edits again
	if l.searchActive {
		switch {
		case key.Matches(keyMsg, WatchListKeys.Escape):
			l.ClearSearch()
			return l, nil
		case key.Matches(keyMsg, WatchListKeys.Filter):
			return l, l.searchInput.Focus()
		}
	} else if key.Matches(keyMsg, WatchListKeys.Filter) {
		l.searchActive = true
		l.recalcMaxVisible()
		return l, l.searchInput.Focus()
	}

	count := l.ItemCount()
	if count == 0 {
		return l, nil
	}

	switch {
	case key.Matches(keyMsg, WatchListKeys.Down):
		if l.cursor < count-1 {
			l.cursor++
		}
	case key.Matches(keyMsg, WatchListKeys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(keyMsg, WatchListKeys.Home):
		l.cursor = 0
	case key.Matches(keyMsg, WatchListKeys.End):
		l.cursor = count - 1
	case key.Matches(keyMsg, WatchListKeys.HalfDown):
		l.cursor += max(l.maxVisible/2, 1)
	case key.Matches(keyMsg, WatchListKeys.HalfUp):
		l.cursor -= max(l.maxVisible/2, 1)
	}
	l.clampCursor()
	l.ensureVisible()

	return l, nil
}

// IsSearching reports whether the search input is capturing keys
func (l *WatchList) IsSearching() bool {
	return l.searchActive && l.searchInput.Focused()
}

// SearchQuery returns the active title search, or ""
func (l *WatchList) SearchQuery() string {
	if !l.searchActive {
		return ""
	}
	return l.searchInput.Value()
}

// ClearSearch drops the title search and shows every item again
func (l *WatchList) ClearSearch() {
	selected := l.SelectedItem()
	l.searchActive = false
	l.searchInput.SetValue("")
	l.searchInput.Blur()
	l.applySearch()
	l.recalcMaxVisible()

	l.cursor = 0
	for i, m := range l.matches {
		if m.Item == selected {
			l.cursor = i
			break
		}
	}
	l.ensureVisible()
}

func (l *WatchList) applySearch() {
	l.matches = search.Filter(l.SearchQuery(), l.items)
}

// SelectedItem returns the item under the cursor, or nil
func (l *WatchList) SelectedItem() *domain.Item {
	if l.cursor < 0 || l.cursor >= len(l.matches) {
		return nil
	}
	return l.matches[l.cursor].Item
}

// SelectedIndex returns the cursor position
func (l *WatchList) SelectedIndex() int {
	return l.cursor
}

// SetSelectedIndex moves the cursor, clamped to the list bounds
func (l *WatchList) SetSelectedIndex(idx int) {
	l.cursor = idx
	l.clampCursor()
	l.ensureVisible()
}

// ItemCount returns the number of rows after title search
func (l *WatchList) ItemCount() int {
	return len(l.matches)
}

// Items returns the rows currently shown, in order
func (l *WatchList) Items() []*domain.Item {
	items := make([]*domain.Item, len(l.matches))
	for i, m := range l.matches {
		items[i] = m.Item
	}
	return items
}

func (l *WatchList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
	l.ensureVisible()
}

func (l *WatchList) SetFocused(focused bool) {
	l.focused = focused
}

func (l *WatchList) IsFocused() bool {
	return l.focused
}

func (l *WatchList) clampCursor() {
	count := l.ItemCount()
	if l.cursor >= count {
		l.cursor = count - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

func (l *WatchList) recalcMaxVisible() {
	// Title line plus border
	avail := l.height - BorderHeight - 1
	if l.searchActive {
		avail--
	}
	avail -= ScrollIndicatorLines
	if avail < 1 {
		avail = 1
	}
	l.maxVisible = avail
}

func (l *WatchList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// View renders the bordered list
func (l *WatchList) View() string {
	style := styles.InactiveBorder
	if l.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(max(l.width-frameW, 1)).
		Height(max(l.height-frameH, 1)).
		Render(l.renderContent())
}

func (l *WatchList) renderContent() string {
	innerWidth := l.width - BorderWidth
	var b strings.Builder

	header := fmt.Sprintf("%s (%d)", l.title, l.ItemCount())
	b.WriteString(styles.TitleStyle.Render(styles.Truncate(header, innerWidth)))
	b.WriteString("\n")

	if l.searchActive {
		b.WriteString(l.searchInput.View())
		b.WriteString("\n")
	}

	if l.ItemCount() == 0 {
		msg := "Nenhum item"
		if l.searchActive {
			msg = "Nenhum resultado"
		}
		b.WriteString(styles.DimStyle.Render(msg))
		return b.String()
	}

	if l.offset > 0 {
		b.WriteString(styles.DimStyle.Render("↑ more"))
	}
	b.WriteString("\n")

	end := min(l.offset+l.maxVisible, l.ItemCount())
	for i := l.offset; i < end; i++ {
		b.WriteString(l.renderRow(l.matches[i], i == l.cursor && l.focused, innerWidth))
		b.WriteString("\n")
	}

	if end < l.ItemCount() {
		b.WriteString(styles.DimStyle.Render("↓ more"))
	}

	return b.String()
}

// renderRow draws "✓ ★ Title ... added 2 minutes ago"
func (l *WatchList) renderRow(m search.Match, selected bool, width int) string {
	item := m.Item

	watchedIcon, watchedColor := styles.WatchedIcon(item.IsWatched(), l.opts.Emoji)
	favIcon, favColor := styles.FavoriteIcon(item.IsFavorite(), l.opts.Emoji)

	parts := []styles.RowPart{
		{Text: watchedIcon, Foreground: &watchedColor},
		{Text: " "},
		{Text: favIcon, Foreground: &favColor},
		{Text: "  "},
	}
	used := lipgloss.Width(watchedIcon) + lipgloss.Width(favIcon) + 3

	added := ""
	if l.opts.ShowAddedAt && !item.AddedAt.IsZero() {
		added = humanize.RelTime(item.AddedAt, l.now(), "ago", "from now")
	}

	titleWidth := width - used - 2
	if added != "" {
		titleWidth -= addedColumnWidth
	}

	title := item.Title()
	if title == "" {
		title = "(sem título)"
	}
	title = styles.Truncate(title, titleWidth)
	parts = append(parts, highlightTitle(title, m.MatchedIndexes)...)

	if added != "" {
		pad := titleWidth - lipgloss.Width(title)
		if pad > 0 {
			parts = append(parts, styles.RowPart{Text: strings.Repeat(" ", pad)})
		}
		dim := styles.DimGray
		parts = append(parts, styles.RowPart{Text: " " + styles.Truncate(added, addedColumnWidth-1), Foreground: &dim})
	}

	return styles.RenderListRow(parts, selected, width)
}

// highlightTitle splits title into parts, coloring matched rune positions
func highlightTitle(title string, matched []int) []styles.RowPart {
	if len(matched) == 0 {
		return []styles.RowPart{{Text: title}}
	}

	hit := make(map[int]bool, len(matched))
	for _, idx := range matched {
		hit[idx] = true
	}

	var parts []styles.RowPart
	var run []rune
	runHit := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		part := styles.RowPart{Text: string(run)}
		if runHit {
			c := styles.MatchHighlight
			part.Foreground = &c
			part.Bold = true
		}
		parts = append(parts, part)
		run = run[:0]
	}

	for i, r := range []rune(title) {
		if hit[i] != runHit {
			flush()
			runHit = hit[i]
		}
		run = append(run, r)
	}
	flush()

	return parts
}
