package monitor

import (
	"sort"
)

// Visibility tracks which interfaces each group currently shows when
// inactive interfaces are hidden. Names enter a set when their interface
// reaches the activity threshold and leave it once the burst has scrolled
// off the tile's graph.
type Visibility struct {
	sets map[Group]map[string]struct{}
}

// NewVisibility creates empty visible sets for every group.
func NewVisibility() *Visibility {
	return &Visibility{
		sets: map[Group]map[string]struct{}{
			GroupPhysical: {},
			GroupVirtual:  {},
		},
	}
}

// Mark adds name to the group's visible set.
func (v *Visibility) Mark(group Group, name string) {
	v.sets[group][name] = struct{}{}
}

// Contains reports whether name is in the group's visible set.
func (v *Visibility) Contains(group Group, name string) bool {
	_, ok := v.sets[group][name]
	return ok
}

// Len returns the size of the group's visible set.
func (v *Visibility) Len(group Group) int {
	return len(v.sets[group])
}

// RetainFunc keeps only the names, across all groups, for which keep returns true.
func (v *Visibility) RetainFunc(keep func(name string) bool) {
	for _, set := range v.sets {
		for name := range set {
			if !keep(name) {
				delete(set, name)
			}
		}
	}
}

// SelectOptions are the display settings a selection pass depends on.
type SelectOptions struct {
	// Width is the interior width of the group's section, i.e. the width the
	// tile grid is laid out in.
	Width        int
	ShowInactive bool
	ShowLoopback bool
	Sort         SortMode
}

// Selection is the ordered set of tiles a group section renders.
type Selection struct {
	Group      Group
	Interfaces []*InterfaceState
	// Total counts every tracked interface in the group, excluding loopback
	// when loopback is hidden.
	Total  int
	RxRate float64
	TxRate float64
}

// TotalRate returns the summed rate of the selected interfaces.
func (s Selection) TotalRate() float64 {
	return s.RxRate + s.TxRate
}

// Select decides which interfaces a group shows on this render pass.
//
// When inactive interfaces are hidden, names whose last activity is at least
// one graph-width of samples old are evicted from the visible set. The graph
// width is estimated from the current set size, so a change in tile count
// takes effect on the following pass.
func (e *Engine) Select(group Group, opts SelectOptions) Selection {
	filterLoopback := group == GroupVirtual && !opts.ShowLoopback
	hidden := func(s *InterfaceState) bool {
		return filterLoopback && s.IsLoopback
	}

	var candidates []*InterfaceState
	total := 0
	for _, s := range e.states {
		if s.Group() != group {
			continue
		}
		candidates = append(candidates, s)
		if !hidden(s) {
			total++
		}
	}

	var visible []*InterfaceState
	if opts.ShowInactive {
		for _, s := range candidates {
			if !hidden(s) {
				visible = append(visible, s)
			}
		}
	} else {
		visible = e.pruneVisible(group, opts, hidden)
	}

	sortStates(visible, opts.Sort)

	sel := Selection{Group: group, Interfaces: visible, Total: total}
	for _, s := range visible {
		sel.RxRate += s.RxRate
		sel.TxRate += s.TxRate
	}
	return sel
}

func (e *Engine) pruneVisible(group Group, opts SelectOptions, hidden func(*InterfaceState) bool) []*InterfaceState {
	set := e.visibility.sets[group]
	for name := range set {
		if s, ok := e.states[name]; !ok || s.Group() != group {
			delete(set, name)
		}
	}

	if len(set) > 0 {
		window := e.decayWindow(set, opts.Width, hidden)
		for name := range set {
			if e.tick-e.states[name].LastActiveTick >= window {
				delete(set, name)
				e.log.Debug("[engine] %s idle, hiding", name)
			}
		}
	}

	visible := make([]*InterfaceState, 0, len(set))
	for name := range set {
		if s := e.states[name]; !hidden(s) {
			visible = append(visible, s)
		}
	}
	return visible
}

// decayWindow returns how many samples fit across one tile's graph, given the
// tile count the set would currently produce.
func (e *Engine) decayWindow(set map[string]struct{}, width int, hidden func(*InterfaceState) bool) uint64 {
	display := 0
	for name := range set {
		if !hidden(e.states[name]) {
			display++
		}
	}
	if display < 1 {
		display = 1
	}

	width = max(width, 0)
	cols := min(display, max(width/MinTileWidth, 1))
	tileWidth := width / cols
	return uint64(max(tileWidth-2, 1))
}

func sortStates(states []*InterfaceState, mode SortMode) {
	switch mode {
	case SortByBandwidth:
		sort.SliceStable(states, func(i, j int) bool {
			a, b := states[i], states[j]
			if a.TotalRate() != b.TotalRate() {
				return a.TotalRate() > b.TotalRate()
			}
			return a.Name < b.Name
		})
	default:
		sort.SliceStable(states, func(i, j int) bool {
			return states[i].Name < states[j].Name
		})
	}
}
