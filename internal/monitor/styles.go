package monitor

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is a named color scheme for the dashboard.
//
// Solid themes use one ANSI color for every border and the RX graph, and
// leave the terminal background alone. Advanced themes carry distinct
// outer, pane and graph colors over a fixed background.
type Theme struct {
	Name       string
	Outer      lipgloss.TerminalColor // outer frame and footer keys
	Pane       lipgloss.TerminalColor // section frames
	Graph      lipgloss.TerminalColor // tile frames and the RX graph
	TX         lipgloss.TerminalColor // TX graph
	Background lipgloss.TerminalColor
	Advanced   bool
}

func solidTheme(name string, color, tx lipgloss.Color) Theme {
	return Theme{
		Name:       name,
		Outer:      color,
		Pane:       color,
		Graph:      color,
		TX:         tx,
		Background: lipgloss.NoColor{},
	}
}

func advancedTheme(name, outer, pane, graph, bg string) Theme {
	return Theme{
		Name:       name,
		Outer:      lipgloss.Color(outer),
		Pane:       lipgloss.Color(pane),
		Graph:      lipgloss.Color(graph),
		TX:         lipgloss.Color(outer),
		Background: lipgloss.Color(bg),
		Advanced:   true,
	}
}

// Themes is the fixed cycle order used by the theme key.
var Themes = []Theme{
	solidTheme("Green", lipgloss.Color("2"), lipgloss.Color("#228b22")),
	solidTheme("Yellow", lipgloss.Color("3"), lipgloss.Color("#b8860b")),
	solidTheme("Red", lipgloss.Color("1"), lipgloss.Color("#b22222")),
	solidTheme("Blue", lipgloss.Color("4"), lipgloss.Color("#1e3a8a")),
	solidTheme("Magenta", lipgloss.Color("5"), lipgloss.Color("#8b1c62")),
	solidTheme("Cyan", lipgloss.Color("6"), lipgloss.Color("#0f766e")),
	solidTheme("White", lipgloss.Color("7"), lipgloss.Color("#a1a1aa")),

	advancedTheme("Catppuccin Latte", "#7287fd", "#ea76cb", "#40a02b", "#eff1f5"),
	advancedTheme("Catppuccin Frappe", "#8caaee", "#f4b8e4", "#a6d189", "#303446"),
	advancedTheme("Catppuccin Macchiato", "#8aadf4", "#f5bde6", "#a6da95", "#24273a"),
	advancedTheme("Catppuccin Mocha", "#89b4fa", "#f5c2e7", "#a6e3a1", "#1e1e2e"),
	advancedTheme("Dracula", "#bd93f9", "#ff79c6", "#50fa7b", "#282a36"),
	advancedTheme("Nord", "#88c0d0", "#81a1c1", "#a3be8c", "#2e3440"),
	advancedTheme("Tokyo Night", "#7aa2f7", "#bb9af7", "#9ece6a", "#1a1b26"),
	advancedTheme("Tokyo Storm", "#7aa2f7", "#bb9af7", "#9ece6a", "#24283b"),
	advancedTheme("Tokyo Moon", "#82aaff", "#c099ff", "#c3e88d", "#222436"),
	advancedTheme("Tokyo Day", "#2e7de9", "#9854f1", "#587539", "#e1e2e7"),
}

// ThemeIndex returns the position of the named theme, or 0 (Green) if unknown.
func ThemeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

// Styles holds the lipgloss styles derived from a theme.
type Styles struct {
	Base      lipgloss.Style // fills empty cells
	Outer     lipgloss.Style
	Pane      lipgloss.Style
	Tile      lipgloss.Style
	RX        lipgloss.Style
	TX        lipgloss.Style // drawn reversed below the baseline
	Key       lipgloss.Style // first letter of each footer command
	Text      lipgloss.Style
	Muted     lipgloss.Style
	HelpBox   lipgloss.Style
	HelpTitle lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(t Theme) Styles {
	base := lipgloss.NewStyle().Background(t.Background)

	return Styles{
		Base:  base,
		Outer: base.Foreground(t.Outer),
		Pane:  base.Foreground(t.Pane),
		Tile:  base.Foreground(t.Graph),
		RX:    base.Foreground(t.Graph),
		TX:    base.Foreground(t.TX).Reverse(true),
		Key: base.
			Foreground(t.Outer).
			Bold(true).
			Underline(true),
		Text:  base,
		Muted: base.Foreground(lipgloss.Color("8")),
		HelpBox: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Outer).
			BorderBackground(t.Background).
			Padding(1, 2),
		HelpTitle: base.
			Foreground(t.Outer).
			Bold(true),
	}
}
