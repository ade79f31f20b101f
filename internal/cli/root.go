package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rileyhilliard/ifmon/internal/alias"
	"github.com/rileyhilliard/ifmon/internal/config"
	"github.com/rileyhilliard/ifmon/internal/errors"
	"github.com/rileyhilliard/ifmon/internal/logger"
	"github.com/rileyhilliard/ifmon/internal/monitor"
	"github.com/rileyhilliard/ifmon/internal/netstat"
)

// LogFileEnvVar names the debug log file used while the dashboard owns the terminal.
const LogFileEnvVar = "IFMON_LOG"

const defaultLogFile = "ifmon-debug.log"

// Global flags
var (
	cfgFile string
)

// Launch-time overrides for the dashboard
var (
	intervalFlag     int
	hideLoopbackFlag bool
	hideVirtualFlag  bool
	showInactiveFlag bool
	bitsFlag         bool
)

// rootCmd runs the dashboard
var rootCmd = &cobra.Command{
	Use:   "ifmon",
	Short: "Live network throughput per interface",
	Long: `ifmon samples the byte counters of every network interface and draws
live RX/TX graphs in the terminal.

Interfaces are split into physical (Ethernet, Wi-Fi) and virtual groups.
Idle interfaces drop off the screen once their traffic has scrolled out
of the graph; press i to show them anyway.

Flags override the saved settings for this session only.

Examples:
  ifmon
  ifmon --interval 500 --bits
  ifmon --hide-virtual --show-inactive`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(overridesFromFlags())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default: $XDG_CONFIG_HOME/ifmon/config.yaml)")

	rootCmd.Flags().IntVarP(&intervalFlag, "interval", "i", 0,
		fmt.Sprintf("sample interval in ms (%d-%d)", config.MinIntervalMS, config.MaxIntervalMS))
	rootCmd.Flags().BoolVar(&hideLoopbackFlag, "hide-loopback", false, "hide loopback interfaces")
	rootCmd.Flags().BoolVar(&hideVirtualFlag, "hide-virtual", false, "hide the virtual interfaces section")
	rootCmd.Flags().BoolVar(&showInactiveFlag, "show-inactive", false, "show interfaces with no recent traffic")
	rootCmd.Flags().BoolVar(&bitsFlag, "bits", false, "show rates in bits per second")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func overridesFromFlags() config.Overrides {
	return config.Overrides{
		IntervalMS:   intervalFlag,
		HideLoopback: hideLoopbackFlag,
		HideVirtual:  hideVirtualFlag,
		ShowInactive: showInactiveFlag,
		Bits:         bitsFlag,
	}
}

// openStore resolves the settings path and opens a best-effort store on it.
func openStore(log logger.Logger) (*config.Store, error) {
	path, err := config.ResolvePath(cfgFile)
	if err != nil {
		return nil, err
	}
	return config.NewStore(path, log), nil
}

// dashboardCommand loads settings, applies overrides and runs the TUI until quit.
func dashboardCommand(overrides config.Overrides) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrTerminal,
			"ifmon needs an interactive terminal",
			"Run it directly in a terminal, not through a pipe or redirect.")
	}

	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := openStore(logger.NewEnvLogger("[settings]"))
	if err != nil {
		return err
	}
	settings := store.Load()
	overrides.Apply(settings)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	hostname := netstat.Hostname(ctx)
	cancel()

	model := monitor.NewModel(monitor.Options{
		Sampler:  netstat.NewSampler(logger.NewEnvLogger("[sample]")),
		Aliases:  alias.NewResolver(logger.NewEnvLogger("[alias]")),
		Store:    store,
		Settings: *settings,
		Hostname: hostname,
		Version:  displayVersion(),
		Logger:   logger.NewEnvLogger(""),
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrTerminal,
			"Dashboard stopped unexpectedly",
			"Set IFMON_DEBUG=1 and check "+logPath()+" for details.")
	}
	return nil
}

// setupLogging sends the standard logger to a file when debugging, and
// discards it otherwise so nothing draws over the dashboard.
func setupLogging() (func(), error) {
	if !logger.DebugEnabled() {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	f, err := tea.LogToFile(logPath(), "ifmon")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to open debug log",
			"Check "+LogFileEnvVar+" points to a writable file.")
	}
	return func() { _ = f.Close() }, nil
}

func logPath() string {
	if p := os.Getenv(LogFileEnvVar); p != "" {
		return p
	}
	return defaultLogFile
}

func displayVersion() string {
	v := formatVersion(version)
	if len(v) > 0 && v[0] == 'v' {
		return v[1:]
	}
	return v
}
