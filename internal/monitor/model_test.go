package monitor

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/ifmon/internal/config"
	"github.com/rileyhilliard/ifmon/internal/errors"
)

type fakeSampler struct {
	samples []InterfaceSample
	err     error
	calls   int
}

func (f *fakeSampler) Sample(ctx context.Context) ([]InterfaceSample, error) {
	f.calls++
	return f.samples, f.err
}

type fakeResolver struct {
	aliases map[string]string
	err     error
}

func (f *fakeResolver) Resolve(ctx context.Context) (map[string]string, error) {
	return f.aliases, f.err
}

type recordingStore struct {
	saved []config.Settings
}

func (s *recordingStore) Save(settings *config.Settings) {
	s.saved = append(s.saved, *settings)
}

func (s *recordingStore) last() config.Settings {
	return s.saved[len(s.saved)-1]
}

func newTestModel(store SettingsStore) Model {
	return NewModel(Options{
		Sampler:  &fakeSampler{},
		Store:    store,
		Settings: *config.DefaultSettings(),
		Hostname: "testhost",
		Version:  "1.2.3",
	})
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok, "Update returns a Model")
	return model, cmd
}

func TestNewModel_NormalizesSettings(t *testing.T) {
	m := NewModel(Options{Settings: config.Settings{
		Theme:      "Solarized",
		SortMode:   "size",
		IntervalMS: 5,
	}})

	s := m.Settings()
	assert.Equal(t, "Green", s.Theme)
	assert.Equal(t, config.SortByName, s.SortMode)
	assert.Equal(t, config.MinIntervalMS, s.IntervalMS)
	assert.True(t, m.sampling, "baseline sample is in flight from Init")
}

func TestHandleKeyMsg_TogglesPersist(t *testing.T) {
	tests := []struct {
		key   rune
		check func(config.Settings) bool
	}{
		{'b', func(s config.Settings) bool { return s.ShowBits }},
		{'l', func(s config.Settings) bool { return !s.ShowLoopback }},
		{'i', func(s config.Settings) bool { return s.ShowInactive }},
		{'v', func(s config.Settings) bool { return !s.ShowVirtual }},
		{'a', func(s config.Settings) bool { return !s.ShowOverview }},
		{'g', func(s config.Settings) bool { return !s.ShowSplit }},
		{'s', func(s config.Settings) bool { return s.SortMode == config.SortByBandwidth }},
		{'t', func(s config.Settings) bool { return s.Theme == "Yellow" }},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			store := &recordingStore{}
			m := newTestModel(store)

			m, _ = update(t, m, runeKey(tt.key))

			require.Len(t, store.saved, 1)
			assert.True(t, tt.check(m.Settings()))
			assert.Equal(t, m.Settings(), store.last())
		})
	}
}

func TestHandleKeyMsg_LoopbackUpdatesEngine(t *testing.T) {
	m := newTestModel(nil)
	m, _ = update(t, m, sampleMsg{samples: []InterfaceSample{loopbackSample("lo0", 0, 0)}, at: t0})
	m, _ = update(t, m, sampleMsg{samples: []InterfaceSample{loopbackSample("lo0", 1000, 0)}, at: t0.Add(time.Second)})
	require.Equal(t, 1000.0, m.Engine().Aggregate().RxRate)

	m, _ = update(t, m, runeKey('l'))

	assert.Zero(t, m.Engine().Aggregate().RxRate, "aggregate drops loopback immediately")
}

func TestHandleKeyMsg_ThemeWraps(t *testing.T) {
	m := newTestModel(nil)
	for range Themes {
		m, _ = update(t, m, runeKey('t'))
	}
	assert.Equal(t, "Green", m.Settings().Theme)
}

func TestHandleKeyMsg_IntervalRestartsTimer(t *testing.T) {
	store := &recordingStore{}
	m := newTestModel(store)

	m, cmd := update(t, m, runeKey('+'))
	assert.NotNil(t, cmd, "a new tick is scheduled")
	assert.Equal(t, 1250, m.Settings().IntervalMS)
	assert.Equal(t, 1, m.tickGen)
	require.Len(t, store.saved, 1)
	assert.Equal(t, 1250, store.last().IntervalMS)

	m, _ = update(t, m, runeKey('-'))
	m, _ = update(t, m, runeKey('-'))
	assert.Equal(t, 750, m.Settings().IntervalMS)
	assert.Equal(t, 3, m.tickGen)

	// Ticks from the old timer are ignored.
	_, cmd = update(t, m, tickMsg{gen: 0, at: t0})
	assert.Nil(t, cmd)
}

func TestHandleKeyMsg_IntervalClamps(t *testing.T) {
	settings := *config.DefaultSettings()
	settings.IntervalMS = config.MaxIntervalMS
	m := NewModel(Options{Settings: settings})

	m, _ = update(t, m, runeKey('='))
	assert.Equal(t, config.MaxIntervalMS, m.Settings().IntervalMS)

	settings.IntervalMS = config.MinIntervalMS
	m = NewModel(Options{Settings: settings})
	m, _ = update(t, m, runeKey('_'))
	assert.Equal(t, config.MinIntervalMS, m.Settings().IntervalMS)
}

func TestHandleKeyMsg_Help(t *testing.T) {
	m := newTestModel(nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m, _ = update(t, m, runeKey('?'))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelp)
	assert.NotContains(t, m.View(), "Keyboard Shortcuts")
}

func TestHandleKeyMsg_Quit(t *testing.T) {
	m := newTestModel(nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestHandleKeyMsg_UnknownKey(t *testing.T) {
	store := &recordingStore{}
	m := newTestModel(store)

	handled, cmd := m.HandleKeyMsg(runeKey('z'))

	assert.False(t, handled)
	assert.Nil(t, cmd)
	assert.Empty(t, store.saved)
}

func TestUpdate_TickSkippedWhileSampling(t *testing.T) {
	m := newTestModel(nil)
	require.True(t, m.sampling)

	m, cmd := update(t, m, tickMsg{gen: 0, at: t0})
	assert.NotNil(t, cmd, "the timer keeps running")
	assert.True(t, m.sampling)

	m, _ = update(t, m, sampleMsg{at: t0})
	assert.False(t, m.sampling)

	m, cmd = update(t, m, tickMsg{gen: 0, at: t0.Add(time.Second)})
	assert.NotNil(t, cmd)
	assert.True(t, m.sampling)
}

func TestUpdate_SampleError(t *testing.T) {
	m := newTestModel(nil)
	m, _ = update(t, m, sampleMsg{samples: []InterfaceSample{upSample("en0", 0, 0)}, at: t0})
	require.Equal(t, uint64(1), m.Engine().Tick())

	sampleErr := errors.New(errors.ErrSample, "Failed to read interface counters", "")
	m, _ = update(t, m, sampleMsg{err: sampleErr, at: t0.Add(time.Second)})

	assert.Equal(t, sampleErr, m.sampleErr)
	assert.Equal(t, uint64(1), m.Engine().Tick(), "engine is not advanced")
	assert.Equal(t, 1, m.Engine().Len())

	m, _ = update(t, m, sampleMsg{samples: []InterfaceSample{upSample("en0", 2000, 0)}, at: t0.Add(2 * time.Second)})
	assert.Nil(t, m.sampleErr, "cleared by the next good sample")
	state, ok := m.Engine().State("en0")
	require.True(t, ok)
	assert.Equal(t, 1000.0, state.RxRate, "rate spans the failed interval")
}

func TestSampleCmd(t *testing.T) {
	sampler := &fakeSampler{samples: []InterfaceSample{upSample("en0", 1, 2)}}
	m := NewModel(Options{Sampler: sampler, Settings: *config.DefaultSettings()})

	msg := m.sampleCmd()()

	sm, ok := msg.(sampleMsg)
	require.True(t, ok)
	assert.NoError(t, sm.err)
	assert.Equal(t, sampler.samples, sm.samples)
	assert.False(t, sm.at.IsZero())
	assert.Equal(t, 1, sampler.calls)
}

func TestAliasCmd(t *testing.T) {
	assert.Nil(t, newTestModel(nil).aliasCmd(), "no resolver, no command")

	resolver := &fakeResolver{aliases: map[string]string{"en0": "Wi-Fi"}}
	m := NewModel(Options{Aliases: resolver, Settings: *config.DefaultSettings()})

	msg := m.aliasCmd()()
	m, _ = update(t, m, msg)
	assert.Equal(t, "Wi-Fi", m.aliases["en0"])

	// A failed refresh keeps the names already known.
	resolver.err = errors.New(errors.ErrAlias, "nmcli failed", "")
	m, _ = update(t, m, m.aliasCmd()())
	assert.Equal(t, "Wi-Fi", m.aliases["en0"])
	assert.Error(t, m.aliasErr)

	_, cmd := update(t, m, runeKey('r'))
	assert.NotNil(t, cmd)
}

func activeModel(t *testing.T, width, height int) Model {
	t.Helper()
	m := newTestModel(nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: width, Height: height})
	m, _ = update(t, m, sampleMsg{samples: []InterfaceSample{upSample("en0", 0, 0), upSample("utun0", 0, 0)}, at: t0})
	m, _ = update(t, m, sampleMsg{samples: []InterfaceSample{upSample("en0", 4096, 1024), upSample("utun0", 0, 0)}, at: t0.Add(time.Second)})
	return m
}

func TestView_FillsTerminal(t *testing.T) {
	sizes := []struct{ width, height int }{
		{120, 40},
		{80, 24},
		{33, 9},
		{200, 60},
	}

	for _, size := range sizes {
		m := activeModel(t, size.width, size.height)

		lines := strings.Split(m.View(), "\n")
		require.Len(t, lines, size.height, "%dx%d", size.width, size.height)
		for i, line := range lines {
			assert.Equal(t, size.width, lipgloss.Width(line), "%dx%d line %d", size.width, size.height, i)
		}
	}
}

func TestView_Sections(t *testing.T) {
	m := activeModel(t, 120, 40)

	view := m.View()

	assert.Contains(t, view, "testhost")
	assert.Contains(t, view, "ifmon v1.2.3")
	assert.Contains(t, view, "All Interfaces")
	assert.Contains(t, view, "Physical Interfaces (1/1)")
	assert.Contains(t, view, "Virtual / Loopback (0/1)")
	assert.Contains(t, view, "No active interfaces")
	assert.Contains(t, view, "en0  RX   4.00 KB/s  TX   1.00 KB/s")
	assert.Contains(t, view, "  5.00 KB/s")
}

func TestView_HiddenSections(t *testing.T) {
	m := activeModel(t, 120, 40)
	m, _ = update(t, m, runeKey('a'))
	m, _ = update(t, m, runeKey('v'))

	view := m.View()

	assert.NotContains(t, view, "All Interfaces")
	assert.NotContains(t, view, "Virtual / Loopback")
	assert.Contains(t, view, "Physical Interfaces")
	assert.Len(t, strings.Split(view, "\n"), 40)
}

func TestView_ShowInactive(t *testing.T) {
	m := activeModel(t, 120, 40)
	m, _ = update(t, m, runeKey('i'))

	assert.Contains(t, m.View(), "Virtual / Loopback (1/1)")
}

func TestView_Alias(t *testing.T) {
	m := activeModel(t, 120, 40)
	m, _ = update(t, m, aliasMsg{aliases: map[string]string{"en0": "Wi-Fi"}})

	assert.Contains(t, m.View(), "Wi-Fi (en0)")
}

func TestView_AliasDroppedWhenNarrow(t *testing.T) {
	m := activeModel(t, 50, 20)
	m, _ = update(t, m, aliasMsg{aliases: map[string]string{"en0": "Thunderbolt Ethernet Slot 1"}})

	assert.NotContains(t, m.View(), "Thunderbolt")
}

func TestView_Bits(t *testing.T) {
	m := activeModel(t, 120, 40)
	m, _ = update(t, m, runeKey('b'))

	assert.Contains(t, m.View(), "RX   32.8 Kb/s")
}

func TestView_ZeroSize(t *testing.T) {
	m := newTestModel(nil)
	assert.Empty(t, m.View())
}

func TestFriendlyName(t *testing.T) {
	tests := []struct {
		name, alias, want string
	}{
		{"en0", "", "en0"},
		{"en0", "Wi-Fi", "Wi-Fi (en0)"},
		{"en0", "en0", "en0"},
		{"en0", "USB LAN (en0)", "USB LAN (en0)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, friendlyName(tt.name, tt.alias))
	}
}

func TestRenderFooter(t *testing.T) {
	m := newTestModel(nil)

	footer := m.renderFooter()
	assert.Contains(t, footer, "quit")
	assert.Contains(t, footer, "theme: Green")
	assert.Contains(t, footer, "graph: split")
	assert.Contains(t, footer, "bytes: B/s")
	assert.Contains(t, footer, "sort: rate")
	assert.Contains(t, footer, "loopback ●")
	assert.Contains(t, footer, "inactive ○")
	assert.Contains(t, footer, "+/- 1000ms")
	assert.NotContains(t, footer, "error:")

	m.sampleErr = errors.WrapWithCode(assert.AnError, errors.ErrSample, "Failed to read interface counters", "Try again")
	m.aliasErr = errors.New(errors.ErrAlias, "nmcli failed", "")
	footer = m.renderFooter()
	assert.Contains(t, footer, "error: Failed to read interface counters: "+assert.AnError.Error())
	assert.Contains(t, footer, "names: nmcli failed")
}

func TestFrame_Edges(t *testing.T) {
	plain := lipgloss.NewStyle()
	f := frame{width: 12, height: 3, border: lipgloss.NormalBorder(), borderStyle: plain, fill: plain,
		left: "host", right: "right!!", bottom: "a long footer"}

	lines := f.render(nil)
	require.Len(t, lines, 3)
	assert.Equal(t, "┌host──────┐", lines[0], "right title dropped when both do not fit")
	assert.Equal(t, "│          │", lines[1])
	assert.Equal(t, "└a long foo┘", lines[2], "lone title truncated")
}
