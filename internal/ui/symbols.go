package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓"
	SymbolFail    = "✗"
	SymbolWarning = "⚠"
	SymbolUp      = "●" // interface up, or an enabled setting
	SymbolDown    = "○"
)
