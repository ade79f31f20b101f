// Package cli implements the ifmon command-line interface.
//
// # Command Structure
//
// The root command runs the dashboard; everything else is a subcommand:
//
//	ifmon                 - Live throughput dashboard
//	ifmon settings        - Edit saved settings (huh form, --print, --reset)
//	ifmon interfaces      - One-shot interface table
//	ifmon version         - Build information
//	ifmon completion      - Shell completion scripts
//
// # Flag Handling
//
// --config is persistent and selects the settings document for every
// command. The dashboard flags (--interval, --hide-loopback, --hide-virtual,
// --show-inactive, --bits) become config.Overrides: they apply to this
// session only and reach the settings file only if a later key press saves.
//
// # Logging
//
// The dashboard owns the terminal, so the standard logger is discarded while
// it runs. With IFMON_DEBUG set it is written to IFMON_LOG (default
// ifmon-debug.log) instead.
package cli
