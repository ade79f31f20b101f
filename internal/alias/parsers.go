package alias

import (
	"bufio"
	"strings"
)

// ParseHardwarePorts parses macOS hardware port listings.
// Expected input is from: networksetup -listallhardwareports
//
//	Hardware Port: Wi-Fi
//	Device: en0
//	Ethernet Address: a4:83:e7:00:00:00
//
// Each Device line is paired with the Hardware Port line before it.
func ParseHardwarePorts(output string) map[string]string {
	aliases := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(output))

	port := ""
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if rest, ok := strings.CutPrefix(line, "Hardware Port:"); ok {
			port = strings.TrimSpace(rest)
			continue
		}

		if rest, ok := strings.CutPrefix(line, "Device:"); ok {
			dev := strings.TrimSpace(rest)
			if dev != "" && port != "" {
				aliases[dev] = port
				port = ""
			}
		}
	}

	return aliases
}

// ParseNmcliDevices parses NetworkManager's terse device listing.
// Expected input is from: nmcli -t -f DEVICE,TYPE,CONNECTION device
//
//	wlp2s0:wifi:HomeNet
//	eth0:ethernet:--
//
// Devices without a connection ("--" or empty) are skipped.
func ParseNmcliDevices(output string) map[string]string {
	aliases := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(output))

	for scanner.Scan() {
		fields := splitTerse(scanner.Text())
		if len(fields) < 3 {
			continue
		}

		dev := strings.TrimSpace(fields[0])
		conn := strings.TrimSpace(fields[2])
		if dev == "" || conn == "" || conn == "--" {
			continue
		}
		aliases[dev] = conn
	}

	return aliases
}

// splitTerse splits an nmcli terse line on ':' while honoring the "\:" and
// "\\" escapes nmcli uses inside values.
func splitTerse(line string) []string {
	var fields []string
	var cur strings.Builder

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line):
			i++
			cur.WriteByte(line[i])
		case c == ':':
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(fields, cur.String())
}
