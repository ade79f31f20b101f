// Package ui provides the styled plain-terminal output used by ifmon's
// non-dashboard commands (settings, interfaces).
//
// # Color Scheme
//
// Colors are ANSI codes for broad terminal compatibility:
//
//	ColorSuccess (green)  - Saved settings, up interfaces
//	ColorError   (red)    - Failures
//	ColorWarning (yellow) - Non-fatal problems such as a failed name lookup
//	ColorMuted   (gray)   - Secondary text
//
// Use DisableColors() for monochrome output when stdout is not a terminal.
//
// # Symbols
//
//	SymbolSuccess  ✓
//	SymbolFail     ✗
//	SymbolWarning  ⚠
//	SymbolUp       ●
//	SymbolDown     ○
//
// # Tables
//
// RenderTable renders a static table through the bubbles table component so
// column headers and borders match the rest of the charmbracelet stack.
package ui
