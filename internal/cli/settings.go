package cli

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rileyhilliard/ifmon/internal/config"
	"github.com/rileyhilliard/ifmon/internal/errors"
	"github.com/rileyhilliard/ifmon/internal/logger"
	"github.com/rileyhilliard/ifmon/internal/monitor"
	"github.com/rileyhilliard/ifmon/internal/ui"
)

var (
	settingsPrint bool
	settingsReset bool
)

// settingsCmd edits the persisted settings document
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Edit saved dashboard settings",
	Long: `Edit the settings the dashboard starts with.

Settings also change while the dashboard runs: every toggle is saved as
soon as it is pressed.

Examples:
  ifmon settings
  ifmon settings --print
  ifmon settings --reset`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(logger.NewEnvLogger("[settings]"))
		if err != nil {
			return err
		}

		switch {
		case settingsPrint:
			return printSettings(cmd, store.Load())
		case settingsReset:
			return resetSettings(store.Path())
		default:
			return editSettings(store)
		}
	},
}

func init() {
	settingsCmd.Flags().BoolVar(&settingsPrint, "print", false, "print the effective settings as YAML")
	settingsCmd.Flags().BoolVar(&settingsReset, "reset", false, "restore the default settings")
	settingsCmd.MarkFlagsMutuallyExclusive("print", "reset")
}

func printSettings(cmd *cobra.Command, s *config.Settings) error {
	data, err := config.Marshal(s)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrSettings, "Failed to encode settings", "")
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func resetSettings(path string) error {
	if err := requireTerminal(); err != nil {
		return err
	}

	var confirm bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Restore default settings?").
				Description(path).
				Value(&confirm),
		),
	)
	if err := form.Run(); err != nil {
		return nil
	}
	if !confirm {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := config.Save(path, config.DefaultSettings()); err != nil {
		return err
	}
	ui.PrintSuccess("Restored defaults in " + path)
	return nil
}

func editSettings(store *config.Store) error {
	if err := requireTerminal(); err != nil {
		return err
	}

	settings := store.Load()
	values := newSettingsValues(settings)

	if err := settingsForm(values).Run(); err != nil {
		if err == huh.ErrUserAborted {
			fmt.Println("Cancelled.")
			return nil
		}
		return errors.WrapWithCode(err, errors.ErrSettings,
			"Failed to get user input",
			"Edit "+store.Path()+" directly instead.")
	}

	if err := values.apply(settings); err != nil {
		return err
	}
	if err := config.Save(store.Path(), settings); err != nil {
		return err
	}
	ui.PrintSuccess("Saved " + store.Path())
	return nil
}

func requireTerminal() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New(errors.ErrTerminal,
			"The settings editor needs an interactive terminal",
			"Use --print to view settings, or edit the YAML file directly.")
	}
	return nil
}

// Display toggles offered by the settings form.
const (
	displayOverview = "overview"
	displayVirtual  = "virtual"
	displayLoopback = "loopback"
	displayInactive = "inactive"
	displaySplit    = "split"
	displayBits     = "bits"
)

// settingsValues holds the form fields for a settings document.
type settingsValues struct {
	Theme    string
	Display  []string
	Sort     string
	Interval string
}

func newSettingsValues(s *config.Settings) *settingsValues {
	v := &settingsValues{
		Theme:    s.Theme,
		Sort:     s.SortMode,
		Interval: strconv.Itoa(s.IntervalMS),
	}
	toggles := []struct {
		key string
		on  bool
	}{
		{displayOverview, s.ShowOverview},
		{displayVirtual, s.ShowVirtual},
		{displayLoopback, s.ShowLoopback},
		{displayInactive, s.ShowInactive},
		{displaySplit, s.ShowSplit},
		{displayBits, s.ShowBits},
	}
	for _, t := range toggles {
		if t.on {
			v.Display = append(v.Display, t.key)
		}
	}
	return v
}

// apply copies the form values into s.
func (v *settingsValues) apply(s *config.Settings) error {
	ms, err := validateInterval(v.Interval)
	if err != nil {
		return err
	}

	s.Theme = v.Theme
	s.SortMode = v.Sort
	s.IntervalMS = ms
	s.ShowOverview = slices.Contains(v.Display, displayOverview)
	s.ShowVirtual = slices.Contains(v.Display, displayVirtual)
	s.ShowLoopback = slices.Contains(v.Display, displayLoopback)
	s.ShowInactive = slices.Contains(v.Display, displayInactive)
	s.ShowSplit = slices.Contains(v.Display, displaySplit)
	s.ShowBits = slices.Contains(v.Display, displayBits)
	s.Normalize()
	return nil
}

// validateInterval parses an interval in milliseconds and checks its range.
func validateInterval(input string) (int, error) {
	ms, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' is not a number of milliseconds", input),
			"Try something like 500 or 2000.")
	}
	if ms < config.MinIntervalMS || ms > config.MaxIntervalMS {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval %dms is out of range", ms),
			fmt.Sprintf("Pick a value between %d and %d.", config.MinIntervalMS, config.MaxIntervalMS))
	}
	return ms, nil
}

func settingsForm(v *settingsValues) *huh.Form {
	themes := make([]huh.Option[string], len(monitor.Themes))
	for i, t := range monitor.Themes {
		themes[i] = huh.NewOption(t.Name, t.Name)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(themes...).
				Value(&v.Theme),
			huh.NewMultiSelect[string]().
				Title("Show").
				Options(
					huh.NewOption("All interfaces graph", displayOverview),
					huh.NewOption("Virtual interfaces", displayVirtual),
					huh.NewOption("Loopback", displayLoopback),
					huh.NewOption("Inactive interfaces", displayInactive),
					huh.NewOption("Split RX/TX graphs", displaySplit),
					huh.NewOption("Rates in bits", displayBits),
				).
				Value(&v.Display),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Sort interfaces by").
				Options(
					huh.NewOption("Name", config.SortByName),
					huh.NewOption("Bandwidth", config.SortByBandwidth),
				).
				Value(&v.Sort),
			huh.NewInput().
				Title("Sample interval (ms)").
				Description(fmt.Sprintf("%d to %d, in steps of %d on the dashboard",
					config.MinIntervalMS, config.MaxIntervalMS, config.IntervalStepMS)).
				Value(&v.Interval).
				Validate(func(s string) error {
					_, err := validateInterval(s)
					if err != nil {
						return fmt.Errorf("%s", errors.Summary(err))
					}
					return nil
				}),
		),
	)
}
