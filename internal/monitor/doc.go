// Package monitor implements a real-time TUI dashboard of per-interface
// network throughput.
//
// Each tick the dashboard samples cumulative byte counters for every network
// interface, turns the deltas into receive/transmit rates, and draws one tile
// per interface with a scrolling history graph.
//
// # Architecture
//
// The package uses the Bubble Tea framework, which follows The Elm Architecture
// (Model-Update-View pattern):
//
//   - Model: Holds display settings, the rate engine and friendly names
//   - Update: Processes messages (keystrokes, ticks, samples, alias lookups)
//   - View: Renders the current state to a string for display
//
// # Key Components
//
//	Model       - The Bubble Tea model containing all dashboard state
//	Engine      - Turns counter samples into rates, histories and visibility
//	History     - Ring buffer of rate samples, newest first
//	Visibility  - Per-group sets of recently active interfaces
//	Grid        - Tile layout within a section
//
// # Message Flow
//
// The dashboard operates on a tick-based refresh cycle:
//
//  1. tickMsg fires at the configured interval (default 1s)
//  2. sampleCmd() reads counters through the Sampler off the update loop
//  3. sampleMsg arrives and Engine.Update advances every interface's rates
//  4. View() re-renders; each group section prunes idle interfaces as it draws
//
// Changing the interval bumps a timer generation so ticks scheduled under the
// old interval are dropped.
//
// # Sections
//
// The screen is split into equal-height bands inside an outer frame:
//
//	All Interfaces       - Aggregate graph (toggle with a)
//	Physical Interfaces  - Ethernet and Wi-Fi devices, always shown
//	Virtual / Loopback   - Everything else (toggle with v)
//
// # Graphs
//
// In split mode receive traffic grows up from a center baseline and transmit
// traffic grows down from it, each scaled to its own peak. Otherwise the sum
// of both is drawn as a single bottom-up sparkline.
package monitor
