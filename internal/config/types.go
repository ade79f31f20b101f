package config

// Sort modes accepted in the settings document.
const (
	SortByName      = "name"
	SortByBandwidth = "bandwidth"
)

// Sample interval bounds, in milliseconds.
const (
	DefaultIntervalMS = 1000
	MinIntervalMS     = 250
	MaxIntervalMS     = 10000
	IntervalStepMS    = 250
)

// DefaultTheme is the theme used when the document names none (or an unknown one).
const DefaultTheme = "Green"

// Settings is the persisted settings document.
type Settings struct {
	// Theme is the display name of the selected theme.
	Theme string `yaml:"theme" mapstructure:"theme"`

	// Display toggles.
	ShowLoopback bool `yaml:"show_loopback" mapstructure:"show_loopback"`
	ShowVirtual  bool `yaml:"show_virtual" mapstructure:"show_virtual"`
	ShowOverview bool `yaml:"show_overview" mapstructure:"show_overview"`
	ShowInactive bool `yaml:"show_inactive" mapstructure:"show_inactive"`
	ShowBits     bool `yaml:"show_bits" mapstructure:"show_bits"`
	ShowSplit    bool `yaml:"show_split" mapstructure:"show_split"`

	// SortMode is either SortByName or SortByBandwidth.
	SortMode string `yaml:"sort_mode" mapstructure:"sort_mode"`

	// IntervalMS is the sample interval in milliseconds.
	IntervalMS int `yaml:"interval_ms" mapstructure:"interval_ms"`
}

// DefaultSettings returns the settings used when no document exists.
func DefaultSettings() *Settings {
	return &Settings{
		Theme:        DefaultTheme,
		ShowLoopback: true,
		ShowVirtual:  true,
		ShowOverview: true,
		ShowInactive: false,
		ShowBits:     false,
		ShowSplit:    true,
		SortMode:     SortByName,
		IntervalMS:   DefaultIntervalMS,
	}
}

// Overrides are launch-time flags that replace persisted values for one session.
// Zero values mean "no override".
type Overrides struct {
	IntervalMS   int
	HideLoopback bool
	HideVirtual  bool
	ShowInactive bool
	Bits         bool
}

// Apply merges the overrides into s and re-normalizes it.
func (o Overrides) Apply(s *Settings) {
	if o.HideLoopback {
		s.ShowLoopback = false
	}
	if o.HideVirtual {
		s.ShowVirtual = false
	}
	if o.ShowInactive {
		s.ShowInactive = true
	}
	if o.Bits {
		s.ShowBits = true
	}
	if o.IntervalMS > 0 {
		s.IntervalMS = o.IntervalMS
	}
	s.Normalize()
}

// Normalize clamps the interval and replaces unknown enumerations with defaults.
func (s *Settings) Normalize() {
	s.IntervalMS = ClampInterval(s.IntervalMS)
	if s.SortMode != SortByName && s.SortMode != SortByBandwidth {
		s.SortMode = SortByName
	}
	if s.Theme == "" {
		s.Theme = DefaultTheme
	}
}

// ClampInterval bounds ms to [MinIntervalMS, MaxIntervalMS].
func ClampInterval(ms int) int {
	switch {
	case ms < MinIntervalMS:
		return MinIntervalMS
	case ms > MaxIntervalMS:
		return MaxIntervalMS
	default:
		return ms
	}
}

// StepInterval moves ms one step up (dir > 0) or down (dir < 0), clamped.
func StepInterval(ms, dir int) int {
	if dir < 0 {
		if ms <= IntervalStepMS {
			return MinIntervalMS
		}
		return ClampInterval(ms - IntervalStepMS)
	}
	return ClampInterval(ms + IntervalStepMS)
}
