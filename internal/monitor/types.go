package monitor

import (
	"net"
	"regexp"
	"time"

	"github.com/rileyhilliard/ifmon/internal/config"
)

// Engine tuning constants.
const (
	// HistoryLen is the capacity of every rolling rate history.
	HistoryLen = 600

	// MinTileWidth is the narrowest a tile may be before the grid drops a column.
	MinTileWidth = 32

	// ActivityThreshold is the total rate (bytes/sec) at or above which an
	// interface counts as active for the current tick.
	ActivityThreshold = 1.0

	// MinElapsed floors the measured tick duration so rates stay finite.
	MinElapsed = time.Millisecond
)

// InterfaceSample is one raw counter reading for an interface, produced once
// per tick by a Sampler.
type InterfaceSample struct {
	Name       string
	RxBytes    uint64
	TxBytes    uint64
	Flags      net.Flags
	IsLoopback bool
}

// IsUp reports whether the interface is administratively up.
func (s InterfaceSample) IsUp() bool {
	return s.Flags&net.FlagUp != 0
}

// Group partitions interfaces into the two tiled sections.
type Group int

const (
	GroupPhysical Group = iota
	GroupVirtual
)

// String returns the section title for the group.
func (g Group) String() string {
	switch g {
	case GroupPhysical:
		return "Physical Interfaces"
	case GroupVirtual:
		return "Virtual / Loopback"
	default:
		return "unknown"
	}
}

// physicalPattern matches Ethernet and Wi-Fi device names: BSD/macOS en0,
// legacy eth0, systemd predictable names (eno1, ens33, enp0s3, enx<mac>) and
// wireless wl*/ww* devices.
var physicalPattern = regexp.MustCompile(`^(en[0-9]+|eth[0-9]+|en[ospx][0-9a-f]\w*|wl\w+|ww\w+)$`)

// IsPhysical reports whether name looks like a hardware network device.
func IsPhysical(name string) bool {
	return physicalPattern.MatchString(name)
}

// GroupOf returns the group an interface name belongs to.
func GroupOf(name string) Group {
	if IsPhysical(name) {
		return GroupPhysical
	}
	return GroupVirtual
}

// SortMode defines how tiles are ordered within a group.
type SortMode int

const (
	SortByName SortMode = iota
	SortByBandwidth
)

// String returns the settings-document spelling of the sort mode.
func (s SortMode) String() string {
	if s == SortByBandwidth {
		return config.SortByBandwidth
	}
	return config.SortByName
}

// Next toggles between the two sort modes.
func (s SortMode) Next() SortMode {
	if s == SortByBandwidth {
		return SortByName
	}
	return SortByBandwidth
}

// ParseSortMode converts a settings value to a SortMode. Unknown values sort by name.
func ParseSortMode(s string) SortMode {
	if s == config.SortByBandwidth {
		return SortByBandwidth
	}
	return SortByName
}
