package monitor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/ifmon/internal/config"
)

// KeyMap defines the dashboard key bindings.
type KeyMap struct {
	Quit         key.Binding
	Bits         key.Binding
	Loopback     key.Binding
	Theme        key.Binding
	Inactive     key.Binding
	Virtual      key.Binding
	Overview     key.Binding
	Sort         key.Binding
	Split        key.Binding
	RefreshNames key.Binding
	Faster       key.Binding
	Slower       key.Binding
	Help         key.Binding
	Close        key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Bits: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "bits / bytes"),
		),
		Loopback: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "show loopback"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next theme"),
		),
		Inactive: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "show inactive"),
		),
		Virtual: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "show virtual"),
		),
		Overview: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all interfaces graph"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort by name / rate"),
		),
		Split: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "split / total graph"),
		),
		RefreshNames: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh names"),
		),
		Faster: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "shorter interval"),
		),
		Slower: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+/=", "longer interval"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close help"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Theme, k.Split, k.Help}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Quit, k.Theme, k.Split, k.Bits, k.Sort, k.RefreshNames},
		{k.Overview, k.Inactive, k.Virtual, k.Loopback},
		{k.Slower, k.Faster, k.Help, k.Close},
	}
}

// HandleKeyMsg processes keyboard input and returns the command to run.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	// Help toggle takes priority
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return true, nil
	}
	if m.showHelp && key.Matches(msg, m.keys.Close) {
		m.showHelp = false
		return true, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, tea.Quit

	case key.Matches(msg, m.keys.Bits):
		m.settings.ShowBits = !m.settings.ShowBits

	case key.Matches(msg, m.keys.Loopback):
		m.settings.ShowLoopback = !m.settings.ShowLoopback
		m.engine.SetShowLoopback(m.settings.ShowLoopback)

	case key.Matches(msg, m.keys.Theme):
		m.setTheme((m.themeIdx + 1) % len(Themes))

	case key.Matches(msg, m.keys.Inactive):
		m.settings.ShowInactive = !m.settings.ShowInactive

	case key.Matches(msg, m.keys.Virtual):
		m.settings.ShowVirtual = !m.settings.ShowVirtual

	case key.Matches(msg, m.keys.Overview):
		m.settings.ShowOverview = !m.settings.ShowOverview

	case key.Matches(msg, m.keys.Sort):
		m.sortMode = m.sortMode.Next()
		m.settings.SortMode = m.sortMode.String()

	case key.Matches(msg, m.keys.Split):
		m.settings.ShowSplit = !m.settings.ShowSplit

	case key.Matches(msg, m.keys.RefreshNames):
		return true, m.aliasCmd()

	case key.Matches(msg, m.keys.Slower):
		return true, m.setInterval(config.StepInterval(m.settings.IntervalMS, 1))

	case key.Matches(msg, m.keys.Faster):
		return true, m.setInterval(config.StepInterval(m.settings.IntervalMS, -1))

	default:
		return false, nil
	}

	m.persist()
	return true, nil
}
