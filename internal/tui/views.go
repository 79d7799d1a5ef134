package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/watchlist/internal/tui/styles"
)

// View renders the entire application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	switch m.State {
	case StateHelp:
		return m.renderOverlay(m.renderHelp())
	case StateConfirmDelete:
		return m.renderOverlay(m.renderConfirmDelete())
	}

	return m.renderMain()
}

func (m Model) renderMain() string {
	sections := []string{
		styles.TitleStyle.Render("Watch List"),
		m.renderFilterButton(),
		"",
		m.Draft.View(),
		m.renderAddButton(),
		m.List.View(),
		m.renderStatus(),
		m.renderFooter(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderFilterButton shows the current filter label; pressing f cycles it
func (m Model) renderFilterButton() string {
	button := styles.ButtonStyle.Render(m.Store.Filter().Label())
	return button + " " + styles.DimStyle.Render("(f)")
}

func (m Model) renderAddButton() string {
	style := styles.DimButtonStyle
	if m.State == StateEditing {
		style = styles.ButtonStyle
	}
	return style.Width(max(m.Width, 1)).Align(lipgloss.Center).Render("Adicionar Item")
}

func (m Model) renderStatus() string {
	status := m.statusLine()
	if status == "" {
		return ""
	}
	if m.StatusIsErr {
		return styles.ErrorStyle.Render(status)
	}
	return styles.SuccessStyle.Render(status)
}

// renderFooter shows list totals and the short help
func (m Model) renderFooter() string {
	st := m.Store.Stats()

	watched, _ := styles.WatchedIcon(true, m.Config.UI.Emoji)
	favorite, _ := styles.FavoriteIcon(true, m.Config.UI.Emoji)
	counts := fmt.Sprintf("%d itens  %s %d  %s %d",
		st.Total,
		styles.WatchedOnStyle.Render(watched), st.Watched,
		styles.FavoriteOnStyle.Render(favorite), st.Favorites,
	)

	helpView := m.Help.View(Keys)
	if m.State == StateEditing {
		helpView = styles.HelpKeyStyle.Render("enter") + " " + styles.HelpDescStyle.Render("adicionar") + "  " +
			styles.HelpKeyStyle.Render("esc") + " " + styles.HelpDescStyle.Render("voltar")
	}

	return styles.DimStyle.Render(counts) + "  " + helpView
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	b.WriteString(m.Help.View(Keys))
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("? or esc to close"))
	return styles.ModalStyle.Render(b.String())
}

func (m Model) renderConfirmDelete() string {
	title := ""
	if m.pendingDelete != nil {
		title = m.pendingDelete.Title()
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Apagar item?"))
	b.WriteString("\n\n")
	b.WriteString(styles.Truncate(title, max(m.Width/2, 10)))
	b.WriteString("\n\n")
	b.WriteString(styles.HelpKeyStyle.Render("y") + " " + styles.HelpDescStyle.Render("apagar") + "  ")
	b.WriteString(styles.HelpKeyStyle.Render("n/esc") + " " + styles.HelpDescStyle.Render("cancelar"))
	return styles.ModalStyle.Render(b.String())
}

// renderOverlay centers a modal on the screen
func (m Model) renderOverlay(modal string) string {
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, modal)
}
