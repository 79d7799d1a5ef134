package components

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/watchlist/internal/tui/styles"
)

// DraftInput is the "Novo Item" text field.
// It only edits text; the owner mirrors Value() into the store.
type DraftInput struct {
	label string
	input textinput.Model
	width int
}

// NewDraftInput creates a new draft input
func NewDraftInput() DraftInput {
	ti := textinput.New()
	ti.Placeholder = "título do filme..."
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return DraftInput{
		label: "Novo Item",
		input: ti,
		width: 40,
	}
}

// Focus starts editing
func (d *DraftInput) Focus() tea.Cmd {
	return d.input.Focus()
}

// Focused reports whether the input receives keys
func (d DraftInput) Focused() bool {
	return d.input.Focused()
}

// Value returns the current text
func (d DraftInput) Value() string {
	return d.input.Value()
}

// SetValue replaces the text (used to clear after a commit)
func (d *DraftInput) SetValue(s string) {
	d.input.SetValue(s)
}

// SetWidth sets the rendered width of the field
func (d *DraftInput) SetWidth(width int) {
	d.width = width
	// Border and padding take 4 cells
	if inner := width - 4; inner > 0 {
		d.input.Width = inner
	}
}

// Update handles input events, returns (input, cmd, submitted, left)
func (d DraftInput) Update(msg tea.Msg) (DraftInput, tea.Cmd, bool, bool) {
	if !d.input.Focused() {
		return d, nil, false, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, DraftInputKeys.Submit):
			return d, nil, true, false
		case key.Matches(keyMsg, DraftInputKeys.Leave):
			d.input.Blur()
			return d, nil, false, true
		}
	}

	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd, false, false
}

// View renders the label and the bordered field
func (d DraftInput) View() string {
	border := styles.InputBlurredBorder
	if d.input.Focused() {
		border = styles.InputFocusedBorder
	}
	frameW, _ := border.GetFrameSize()

	field := border.Width(max(d.width-frameW, 1)).Render(d.input.View())
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.InputLabelStyle.Render(d.label),
		field,
	)
}
