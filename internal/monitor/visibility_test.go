package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(states []*InterfaceState) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = s.Name
	}
	return out
}

// driveIdle feeds samples with unchanged counters until the engine reaches tick.
func driveIdle(e *Engine, tick uint64, samples []InterfaceSample) {
	for e.Tick() < tick {
		e.Update(samples, t0.Add(time.Duration(e.Tick()+1)*time.Second))
	}
}

func TestSelect_EvictsAfterOneGraphWidth(t *testing.T) {
	// One tile in a 40-wide section: the tile is 40 wide, its graph 38.
	const width = 40
	const window = width - 2

	e := NewEngine(nil)
	idle := []InterfaceSample{upSample("en0", 0, 0)}
	driveIdle(e, 9, idle)

	busy := []InterfaceSample{upSample("en0", 5000, 0)}
	e.Update(busy, t0.Add(10*time.Second))
	s, _ := e.State("en0")
	require.Equal(t, uint64(10), s.LastActiveTick)

	driveIdle(e, 10+window-1, busy)
	sel := e.Select(GroupPhysical, SelectOptions{Width: width})
	assert.Equal(t, []string{"en0"}, names(sel.Interfaces), "still on screen one sample before the window")

	driveIdle(e, 10+window, busy)
	sel = e.Select(GroupPhysical, SelectOptions{Width: width})
	assert.Empty(t, sel.Interfaces)
	assert.False(t, e.Visibility().Contains(GroupPhysical, "en0"))
	assert.Equal(t, 1, sel.Total)
}

func TestSelect_WindowFloorsAtOne(t *testing.T) {
	e := NewEngine(nil)
	e.Update([]InterfaceSample{upSample("en0", 0, 0)}, t0)
	e.Update([]InterfaceSample{upSample("en0", 10, 0)}, t0.Add(time.Second))

	sel := e.Select(GroupPhysical, SelectOptions{Width: 2})
	assert.Len(t, sel.Interfaces, 1, "active this tick")

	e.Update([]InterfaceSample{upSample("en0", 10, 0)}, t0.Add(2*time.Second))
	sel = e.Select(GroupPhysical, SelectOptions{Width: 2})
	assert.Empty(t, sel.Interfaces)
}

func TestSelect_WindowUsesProvisionalColumns(t *testing.T) {
	e := NewEngine(nil)
	samples := func(v uint64) []InterfaceSample {
		return []InterfaceSample{upSample("en0", v, 0), upSample("en1", v, 0)}
	}
	e.Update(samples(0), t0)
	e.Update(samples(100), t0.Add(time.Second))

	window := e.decayWindow(e.visibility.sets[GroupPhysical], 100, func(*InterfaceState) bool { return false })

	// Two tiles across 100 columns: 50 wide each, 48 graph columns.
	assert.Equal(t, uint64(48), window)
}

func TestSelect_ShowInactive(t *testing.T) {
	e := NewEngine(nil)
	e.Update([]InterfaceSample{upSample("en0", 0, 0), upSample("en1", 0, 0), upSample("utun0", 0, 0)}, t0)

	sel := e.Select(GroupPhysical, SelectOptions{Width: 100, ShowInactive: true})

	assert.Equal(t, []string{"en0", "en1"}, names(sel.Interfaces))
	assert.Equal(t, 2, sel.Total)
	assert.Equal(t, 0, e.Visibility().Len(GroupPhysical), "visible set is not touched")
}

func TestSelect_LoopbackFilter(t *testing.T) {
	e := NewEngine(nil)
	samples := func(v uint64) []InterfaceSample {
		return []InterfaceSample{loopbackSample("lo0", v, 0), upSample("utun0", v, 0)}
	}
	e.Update(samples(0), t0)
	e.Update(samples(100), t0.Add(time.Second))

	shown := e.Select(GroupVirtual, SelectOptions{Width: 100, ShowLoopback: true})
	assert.Equal(t, []string{"lo0", "utun0"}, names(shown.Interfaces))
	assert.Equal(t, 2, shown.Total)

	hidden := e.Select(GroupVirtual, SelectOptions{Width: 100, ShowLoopback: false})
	assert.Equal(t, []string{"utun0"}, names(hidden.Interfaces))
	assert.Equal(t, 1, hidden.Total)
	assert.True(t, e.Visibility().Contains(GroupVirtual, "lo0"), "hidden loopback stays in the set")

	inactive := e.Select(GroupVirtual, SelectOptions{Width: 100, ShowInactive: true})
	assert.Equal(t, []string{"utun0"}, names(inactive.Interfaces))
}

func TestSelect_SortModes(t *testing.T) {
	e := NewEngine(nil)
	samples := func(a, b, c uint64) []InterfaceSample {
		return []InterfaceSample{upSample("en2", a, 0), upSample("en0", b, 0), upSample("en1", c, 0)}
	}
	e.Update(samples(0, 0, 0), t0)
	e.Update(samples(500, 100, 500), t0.Add(time.Second))

	byName := e.Select(GroupPhysical, SelectOptions{Width: 200, Sort: SortByName})
	assert.Equal(t, []string{"en0", "en1", "en2"}, names(byName.Interfaces))

	byRate := e.Select(GroupPhysical, SelectOptions{Width: 200, Sort: SortByBandwidth})
	assert.Equal(t, []string{"en1", "en2", "en0"}, names(byRate.Interfaces), "ties broken by name")

	assert.Equal(t, 1100.0, byRate.TotalRate())
}

func TestVisibility_RetainFunc(t *testing.T) {
	v := NewVisibility()
	v.Mark(GroupPhysical, "en0")
	v.Mark(GroupVirtual, "lo0")
	v.Mark(GroupVirtual, "utun0")

	v.RetainFunc(func(name string) bool { return name != "lo0" })

	assert.True(t, v.Contains(GroupPhysical, "en0"))
	assert.False(t, v.Contains(GroupVirtual, "lo0"))
	assert.Equal(t, 1, v.Len(GroupVirtual))
}

func TestGroupOf(t *testing.T) {
	tests := []struct {
		name string
		want Group
	}{
		{"en0", GroupPhysical},
		{"en12", GroupPhysical},
		{"eth0", GroupPhysical},
		{"enp0s3", GroupPhysical},
		{"eno1", GroupPhysical},
		{"ens33", GroupPhysical},
		{"wlan0", GroupPhysical},
		{"wlp2s0", GroupPhysical},
		{"wwan0", GroupPhysical},
		{"lo0", GroupVirtual},
		{"lo", GroupVirtual},
		{"utun3", GroupVirtual},
		{"bridge0", GroupVirtual},
		{"docker0", GroupVirtual},
		{"awdl0", GroupVirtual},
		{"en", GroupVirtual},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GroupOf(tt.name))
		})
	}
}

func TestSortMode(t *testing.T) {
	assert.Equal(t, SortByBandwidth, SortByName.Next())
	assert.Equal(t, SortByName, SortByBandwidth.Next())
	assert.Equal(t, SortByBandwidth, ParseSortMode("bandwidth"))
	assert.Equal(t, SortByName, ParseSortMode("anything"))
	assert.Equal(t, "bandwidth", SortByBandwidth.String())
}
