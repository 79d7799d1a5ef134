package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/enescakir/emoji"
	"github.com/muesli/reflow/truncate"
)

// Color palette
var (
	Accent     = lipgloss.Color("#E5A00D")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Yellow     = lipgloss.Color("#FACC15")
	Red        = lipgloss.Color("#EF4444")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Accent)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)
)

// Button styles (filter toggle, add)
var (
	ButtonStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Accent).
			Bold(true).
			Padding(0, 2)

	DimButtonStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(SlateLight).
			Padding(0, 2)
)

// Raw icon characters (unstyled)
const (
	WatchedChar  = "✓"
	FavoriteChar = "★"
)

// Icon styles
var (
	WatchedOnStyle  = lipgloss.NewStyle().Foreground(Green)
	FavoriteOnStyle = lipgloss.NewStyle().Foreground(Yellow)
)

// Emoji glyphs used when ui.emoji is enabled
var (
	EmojiWatched     = emoji.CheckMarkButton.String()
	EmojiNotWatched  = emoji.HourglassNotDone.String()
	EmojiFavorite    = emoji.Star.String()
	EmojiNotFavorite = "☆"
)

// Input styles
var (
	InputLabelStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	InputFocusedBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Accent).
				Padding(0, 1)

	InputBlurredBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(DimGray).
				Padding(0, 1)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Accent).
			Padding(1, 2).
			Background(SlateDark)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Accent)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Filter styles
var (
	FilterStyle = lipgloss.NewStyle().
			Foreground(Accent)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true)
)

// Match highlight color for fuzzy filter results
var MatchHighlight = Accent

// Ellipsis marks truncated text
const Ellipsis = "…"

// Truncate shortens s to width terminal cells, ending with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return truncate.StringWithTail(s, uint(width), Ellipsis)
}

// WatchedIcon returns the glyph and color for the watched flag.
// The pair is a pure function of the flag.
func WatchedIcon(watched, useEmoji bool) (string, lipgloss.Color) {
	switch {
	case useEmoji && watched:
		return EmojiWatched, Green
	case useEmoji:
		return EmojiNotWatched, DimGray
	case watched:
		return WatchedChar, Green
	default:
		return WatchedChar, DimGray
	}
}

// FavoriteIcon returns the glyph and color for the favorite flag
func FavoriteIcon(favorite, useEmoji bool) (string, lipgloss.Color) {
	switch {
	case useEmoji && favorite:
		return EmojiFavorite, Yellow
	case useEmoji:
		return EmojiNotFavorite, DimGray
	case favorite:
		return FavoriteChar, Yellow
	default:
		return FavoriteChar, DimGray
	}
}

// RenderListRow renders a complete list row with uniform background when selected.
// parts is a slice of {text, fgColor} pairs. Use nil for default foreground.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	bg := SlateLight
	defaultFg := LightGray
	selectedFg := White

	var b strings.Builder
	visibleLen := 0

	for _, part := range parts {
		style := lipgloss.NewStyle()
		if part.Foreground != nil {
			style = style.Foreground(*part.Foreground)
		} else if selected {
			style = style.Foreground(selectedFg)
		} else {
			style = style.Foreground(defaultFg)
		}
		if part.Bold {
			style = style.Bold(true)
		}
		if selected {
			style = style.Background(bg)
		}
		b.WriteString(style.Render(part.Text))
		visibleLen += lipgloss.Width(part.Text)
	}

	// Add padding to fill width (subtract 2 for left/right margin)
	if paddingNeeded := width - visibleLen - 2; paddingNeeded > 0 {
		padStyle := lipgloss.NewStyle()
		if selected {
			padStyle = padStyle.Background(bg)
		}
		b.WriteString(padStyle.Render(strings.Repeat(" ", paddingNeeded)))
	}

	marginStyle := lipgloss.NewStyle()
	if selected {
		marginStyle = marginStyle.Background(bg)
	}
	margin := marginStyle.Render(" ")

	return margin + b.String() + margin
}

// RowPart represents a part of a row with optional foreground color
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
	Bold       bool
}
