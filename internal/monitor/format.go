package monitor

import (
	"fmt"
)

var (
	byteUnits = []string{"B/s", "KB/s", "MB/s", "GB/s", "TB/s"}
	bitUnits  = []string{"b/s", "Kb/s", "Mb/s", "Gb/s", "Tb/s"}
)

// FormatRate formats a bytes-per-second rate for display.
//
// Byte mode scales by 1024. Bit mode multiplies by 8 and scales by 1000.
// The number is right-aligned in six columns with two decimals below 10,
// one decimal below 100, and none above.
func FormatRate(bytesPerSecond float64, bits bool) string {
	step := 1024.0
	units := byteUnits
	value := bytesPerSecond
	if bits {
		step = 1000.0
		units = bitUnits
		value *= 8
	}

	idx := 0
	for value >= step && idx < len(units)-1 {
		value /= step
		idx++
	}

	switch {
	case value >= 100:
		return fmt.Sprintf("%6.0f %s", value, units[idx])
	case value >= 10:
		return fmt.Sprintf("%6.1f %s", value, units[idx])
	default:
		return fmt.Sprintf("%6.2f %s", value, units[idx])
	}
}
