package monitor

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// newHelp builds a help model styled for the current theme.
func newHelp(styles Styles) help.Model {
	h := help.New()
	h.ShowAll = true
	h.Styles.FullKey = styles.Key
	h.Styles.FullDesc = styles.Text
	h.Styles.FullSeparator = styles.Muted
	h.Styles.ShortKey = styles.Key
	h.Styles.ShortDesc = styles.Text
	h.Styles.ShortSeparator = styles.Muted
	return h
}

// renderHelpOverlay renders a centered help box with the key bindings.
func (m Model) renderHelpOverlay() string {
	var lines []string
	lines = append(lines, m.styles.HelpTitle.Render("Keyboard Shortcuts"))
	lines = append(lines, "")
	lines = append(lines, m.help.View(m.keys))
	lines = append(lines, "")
	lines = append(lines, m.styles.Muted.Render("Press ? to close"))

	helpBox := m.styles.HelpBox.Render(strings.Join(lines, "\n"))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		helpBox,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(Themes[m.themeIdx].Background),
	)
}
