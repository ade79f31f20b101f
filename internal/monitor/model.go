package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/ifmon/internal/config"
	"github.com/rileyhilliard/ifmon/internal/logger"
)

// Sampler reads the current byte counters for every interface.
type Sampler interface {
	Sample(ctx context.Context) ([]InterfaceSample, error)
}

// AliasResolver maps device names to human-friendly names.
type AliasResolver interface {
	Resolve(ctx context.Context) (map[string]string, error)
}

// SettingsStore persists display settings. Implementations absorb failures.
type SettingsStore interface {
	Save(settings *config.Settings)
}

// Timeouts for the background commands.
const (
	sampleTimeout = 5 * time.Second
	aliasTimeout  = 10 * time.Second
)

// Options configures a dashboard Model.
type Options struct {
	Sampler  Sampler
	Aliases  AliasResolver   // optional
	Store    SettingsStore   // optional
	Settings config.Settings // effective settings, overrides already applied
	Hostname string
	Version  string
	Logger   logger.Logger
}

// Model is the Bubble Tea model for the throughput dashboard.
type Model struct {
	engine   *Engine
	sampler  Sampler
	resolver AliasResolver
	store    SettingsStore
	log      logger.Logger

	settings config.Settings
	sortMode SortMode
	themeIdx int
	styles   Styles
	keys     KeyMap
	help     help.Model

	aliases   map[string]string
	sampleErr error
	aliasErr  error

	hostname string
	version  string

	width    int
	height   int
	tickGen  int  // bumped on interval change; stale ticks are dropped
	sampling bool // a sample command is in flight
	showHelp bool
	quitting bool
}

// tickMsg signals a periodic refresh for one timer generation.
type tickMsg struct {
	gen int
	at  time.Time
}

// sampleMsg carries one counter sample set, or the error that prevented it.
type sampleMsg struct {
	samples []InterfaceSample
	err     error
	at      time.Time
}

// aliasMsg carries the result of a friendly-name lookup.
type aliasMsg struct {
	aliases map[string]string
	err     error
}

// NewModel creates a dashboard model.
func NewModel(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}

	settings := opts.Settings
	settings.Normalize()

	themeIdx := ThemeIndex(settings.Theme)
	settings.Theme = Themes[themeIdx].Name
	styles := NewStyles(Themes[themeIdx])

	engine := NewEngine(log)
	engine.SetShowLoopback(settings.ShowLoopback)

	return Model{
		engine:   engine,
		sampler:  opts.Sampler,
		resolver: opts.Aliases,
		store:    opts.Store,
		log:      log,
		settings: settings,
		sortMode: ParseSortMode(settings.SortMode),
		themeIdx: themeIdx,
		styles:   styles,
		keys:     DefaultKeyMap(),
		help:     newHelp(styles),
		aliases:  make(map[string]string),
		hostname: opts.Hostname,
		version:  opts.Version,
		sampling: true, // Init issues the baseline sample
	}
}

// Init takes the baseline sample, looks up friendly names and starts the timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.sampleCmd(),
		m.aliasCmd(),
		m.tickCmd(),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		if msg.gen != m.tickGen {
			return m, nil
		}
		if m.sampling {
			m.log.Debug("[engine] sample still in flight, skipping tick")
			return m, m.tickCmd()
		}
		m.sampling = true
		return m, tea.Batch(m.tickCmd(), m.sampleCmd())

	case sampleMsg:
		m.sampling = false
		m.applySample(msg)

	case aliasMsg:
		if msg.err != nil {
			m.aliasErr = msg.err
			m.log.Debug("[alias] lookup failed: %v", msg.err)
			break
		}
		m.aliases = msg.aliases
		m.aliasErr = nil
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting || m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

// applySample feeds a sample set to the engine. A failed sample only records
// the error; tracked state is left untouched.
func (m *Model) applySample(msg sampleMsg) {
	if msg.err != nil {
		m.sampleErr = msg.err
		m.log.Warn("sampling failed: %v", msg.err)
		return
	}
	m.sampleErr = nil
	m.engine.Update(msg.samples, msg.at)
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(m.interval(), func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

// sampleCmd reads counters off the update loop.
func (m Model) sampleCmd() tea.Cmd {
	sampler := m.sampler
	return func() tea.Msg {
		if sampler == nil {
			return sampleMsg{at: time.Now()}
		}
		ctx, cancel := context.WithTimeout(context.Background(), sampleTimeout)
		defer cancel()

		samples, err := sampler.Sample(ctx)
		return sampleMsg{samples: samples, err: err, at: time.Now()}
	}
}

// aliasCmd refreshes friendly names off the update loop.
func (m Model) aliasCmd() tea.Cmd {
	resolver := m.resolver
	if resolver == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), aliasTimeout)
		defer cancel()

		aliases, err := resolver.Resolve(ctx)
		return aliasMsg{aliases: aliases, err: err}
	}
}

func (m Model) interval() time.Duration {
	return time.Duration(m.settings.IntervalMS) * time.Millisecond
}

// setInterval applies a new refresh interval and restarts the timer so the
// change takes effect immediately.
func (m *Model) setInterval(ms int) tea.Cmd {
	m.settings.IntervalMS = config.ClampInterval(ms)
	m.tickGen++
	m.persist()
	return m.tickCmd()
}

func (m *Model) setTheme(idx int) {
	m.themeIdx = idx
	m.settings.Theme = Themes[idx].Name
	m.styles = NewStyles(Themes[idx])

	width := m.help.Width
	m.help = newHelp(m.styles)
	m.help.Width = width
}

// persist writes the current settings through the store, if any.
func (m *Model) persist() {
	if m.store == nil {
		return
	}
	s := m.settings
	m.store.Save(&s)
}

// Settings returns the current display settings.
func (m Model) Settings() config.Settings {
	return m.settings
}

// Engine returns the rate engine backing the dashboard.
func (m Model) Engine() *Engine {
	return m.engine
}
