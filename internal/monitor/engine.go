package monitor

import (
	"math"
	"sort"
	"time"

	"github.com/rileyhilliard/ifmon/internal/logger"
)

// InterfaceState is the per-interface rate state carried across ticks.
type InterfaceState struct {
	Name       string
	IsLoopback bool

	prevRx      uint64
	prevTx      uint64
	initialized bool

	RxRate float64 // bytes/sec
	TxRate float64 // bytes/sec

	RxHistory *History
	TxHistory *History

	// LastActiveTick is the sample index at which TotalRate last reached
	// ActivityThreshold. Zero means never.
	LastActiveTick uint64
}

func newInterfaceState(s InterfaceSample, historyLen int) *InterfaceState {
	return &InterfaceState{
		Name:       s.Name,
		IsLoopback: s.IsLoopback,
		RxHistory:  NewHistory(historyLen),
		TxHistory:  NewHistory(historyLen),
	}
}

// TotalRate returns RxRate + TxRate.
func (s *InterfaceState) TotalRate() float64 {
	return s.RxRate + s.TxRate
}

// Group returns the section the interface is tiled in.
func (s *InterfaceState) Group() Group {
	return GroupOf(s.Name)
}

// Observe folds a new counter reading into the state. The first observation
// only records the counters and reports zero rates. A counter that moved
// backwards (wrap or reset) yields a zero delta for that tick.
func (s *InterfaceState) Observe(sample InterfaceSample, elapsed time.Duration) {
	if elapsed < MinElapsed {
		elapsed = MinElapsed
	}
	secs := elapsed.Seconds()

	if s.initialized {
		s.RxRate = float64(saturatingSub(sample.RxBytes, s.prevRx)) / secs
		s.TxRate = float64(saturatingSub(sample.TxBytes, s.prevTx)) / secs
	} else {
		s.RxRate = 0
		s.TxRate = 0
		s.initialized = true
	}

	s.prevRx = sample.RxBytes
	s.prevTx = sample.TxBytes
	s.IsLoopback = sample.IsLoopback

	s.RxHistory.Push(historyValue(s.RxRate))
	s.TxHistory.Push(historyValue(s.TxRate))
}

// AggregateState holds the summed rates across all tracked interfaces.
type AggregateState struct {
	RxRate    float64
	TxRate    float64
	RxHistory *History
	TxHistory *History
}

// TotalRate returns RxRate + TxRate.
func (a *AggregateState) TotalRate() float64 {
	return a.RxRate + a.TxRate
}

// Engine turns successive counter samples into rates, histories and
// per-group visibility. It is not safe for concurrent use; the dashboard
// drives it from the Bubble Tea update loop.
type Engine struct {
	states       map[string]*InterfaceState
	aggregate    AggregateState
	visibility   *Visibility
	historyLen   int
	tick         uint64
	lastSample   time.Time
	showLoopback bool
	log          logger.Logger
}

// NewEngine creates an empty engine. A nil logger discards output.
func NewEngine(log logger.Logger) *Engine {
	if log == nil {
		log = logger.Noop()
	}
	return &Engine{
		states: make(map[string]*InterfaceState),
		aggregate: AggregateState{
			RxHistory: NewHistory(HistoryLen),
			TxHistory: NewHistory(HistoryLen),
		},
		visibility:   NewVisibility(),
		historyLen:   HistoryLen,
		showLoopback: true,
		log:          log,
	}
}

// SetShowLoopback controls whether loopback traffic counts toward the aggregate.
func (e *Engine) SetShowLoopback(show bool) {
	e.showLoopback = show
	e.aggregate.RxRate, e.aggregate.TxRate = e.sumRates()
}

// Tick returns the current sample index. It increments once per Update.
func (e *Engine) Tick() uint64 {
	return e.tick
}

// Update applies one successful sample set taken at time at.
//
// Interfaces that are not up are ignored, and any tracked interface missing
// from samples is forgotten along with its visibility entries.
func (e *Engine) Update(samples []InterfaceSample, at time.Time) {
	elapsed := MinElapsed
	if !e.lastSample.IsZero() {
		elapsed = at.Sub(e.lastSample)
	}
	e.lastSample = at
	e.tick++

	seen := make(map[string]struct{}, len(samples))
	for _, sample := range samples {
		if !sample.IsUp() {
			continue
		}
		seen[sample.Name] = struct{}{}

		state, ok := e.states[sample.Name]
		if !ok {
			state = newInterfaceState(sample, e.historyLen)
			e.states[sample.Name] = state
			e.log.Debug("[engine] tracking %s", sample.Name)
		}
		state.Observe(sample, elapsed)

		if state.TotalRate() >= ActivityThreshold {
			state.LastActiveTick = e.tick
			e.visibility.Mark(state.Group(), state.Name)
		}
	}

	for name := range e.states {
		if _, ok := seen[name]; !ok {
			delete(e.states, name)
			e.log.Debug("[engine] dropped %s", name)
		}
	}
	e.visibility.RetainFunc(func(name string) bool {
		_, ok := e.states[name]
		return ok
	})

	e.recomputeAggregate()
}

func (e *Engine) recomputeAggregate() {
	rx, tx := e.sumRates()
	e.aggregate.RxRate = rx
	e.aggregate.TxRate = tx
	e.aggregate.RxHistory.Push(historyValue(rx))
	e.aggregate.TxHistory.Push(historyValue(tx))
}

// sumRates totals the current rates, skipping loopback when it is hidden.
func (e *Engine) sumRates() (rx, tx float64) {
	for _, state := range e.states {
		if state.IsLoopback && !e.showLoopback {
			continue
		}
		rx += state.RxRate
		tx += state.TxRate
	}
	return rx, tx
}

// Aggregate returns the summed state.
func (e *Engine) Aggregate() *AggregateState {
	return &e.aggregate
}

// State returns the tracked state for name, if any.
func (e *Engine) State(name string) (*InterfaceState, bool) {
	s, ok := e.states[name]
	return s, ok
}

// Len returns the number of tracked interfaces.
func (e *Engine) Len() int {
	return len(e.states)
}

// Names returns tracked interface names in sorted order.
func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.states))
	for name := range e.states {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Visibility exposes the per-group visible sets.
func (e *Engine) Visibility() *Visibility {
	return e.visibility
}

func saturatingSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}

// historyValue rounds a rate to the nearest whole byte, clamping negatives to zero.
func historyValue(rate float64) uint64 {
	return uint64(math.Round(math.Max(rate, 0)))
}
