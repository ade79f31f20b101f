package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/ifmon/internal/errors"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	// AppDir is the directory under the user config dir holding ifmon files.
	AppDir = "ifmon"
	// FileName is the settings document file name.
	FileName = "config.yaml"
)

// DefaultPath returns $XDG_CONFIG_HOME/ifmon/config.yaml, falling back to
// ~/.config/ifmon/config.yaml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppDir, FileName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrSettings,
			"Cannot determine home directory",
			"Set XDG_CONFIG_HOME or pass --config")
	}
	return filepath.Join(home, ".config", AppDir, FileName), nil
}

// ResolvePath returns the explicit path (with ~ expanded) or the default path.
func ResolvePath(explicit string) (string, error) {
	if explicit != "" {
		return ExpandTilde(explicit), nil
	}
	return DefaultPath()
}

// ExpandTilde replaces ~ or ~/path with the user's home directory.
// Does not support ~username syntax - just ~ for the current user.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// Load reads the settings document at path.
//
// On any read or parse failure the returned settings are the full defaults and
// the error carries the ErrSettings code; callers are expected to absorb it.
// Fields that are missing or hold a value of the wrong type fall back to their
// individual defaults.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), errors.WrapWithCode(err, errors.ErrSettings,
				"Settings file not found",
				"It is created the first time a setting changes")
		}
		return DefaultSettings(), errors.WrapWithCode(err, errors.ErrSettings,
			"Failed to read settings file",
			"Check "+path+" is valid YAML, or delete it to start fresh")
	}

	return parseSettings(v), nil
}

// setDefaults registers every key so partial documents merge with defaults.
func setDefaults(v *viper.Viper) {
	def := DefaultSettings()
	v.SetDefault("theme", def.Theme)
	v.SetDefault("show_loopback", def.ShowLoopback)
	v.SetDefault("show_virtual", def.ShowVirtual)
	v.SetDefault("show_overview", def.ShowOverview)
	v.SetDefault("show_inactive", def.ShowInactive)
	v.SetDefault("show_bits", def.ShowBits)
	v.SetDefault("show_split", def.ShowSplit)
	v.SetDefault("sort_mode", def.SortMode)
	v.SetDefault("interval_ms", def.IntervalMS)
}

// parseSettings decodes each key on its own so one malformed field does not
// discard the rest of the document.
func parseSettings(v *viper.Viper) *Settings {
	def := DefaultSettings()
	s := &Settings{
		Theme:        stringValue(v, "theme", def.Theme),
		ShowLoopback: boolValue(v, "show_loopback", def.ShowLoopback),
		ShowVirtual:  boolValue(v, "show_virtual", def.ShowVirtual),
		ShowOverview: boolValue(v, "show_overview", def.ShowOverview),
		ShowInactive: boolValue(v, "show_inactive", def.ShowInactive),
		ShowBits:     boolValue(v, "show_bits", def.ShowBits),
		ShowSplit:    boolValue(v, "show_split", def.ShowSplit),
		SortMode:     strings.ToLower(stringValue(v, "sort_mode", def.SortMode)),
		IntervalMS:   intValue(v, "interval_ms", def.IntervalMS),
	}
	s.Normalize()
	return s
}

func boolValue(v *viper.Viper, key string, def bool) bool {
	raw := v.Get(key)
	if raw == nil {
		return def
	}
	b, err := cast.ToBoolE(raw)
	if err != nil {
		return def
	}
	return b
}

func intValue(v *viper.Viper, key string, def int) int {
	raw := v.Get(key)
	if raw == nil {
		return def
	}
	n, err := cast.ToIntE(raw)
	if err != nil {
		return def
	}
	return n
}

func stringValue(v *viper.Viper, key, def string) string {
	s, ok := v.Get(key).(string)
	if !ok {
		return def
	}
	return s
}
