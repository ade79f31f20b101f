package netstat

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/rileyhilliard/ifmon/internal/errors"
	"github.com/rileyhilliard/ifmon/internal/logger"
)

// ProcNetDev is where Linux publishes per-interface counters.
const ProcNetDev = "/proc/net/dev"

// CommandProvider reads counters from the operating system's own text
// interfaces: /proc/net/dev on Linux and `netstat -ib` on macOS. It has no
// flag information.
type CommandProvider struct {
	goos     string
	readFile func(string) ([]byte, error)
	run      func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewCommandProvider creates a provider for the given platform.
func NewCommandProvider(goos string) *CommandProvider {
	return &CommandProvider{
		goos:     goos,
		readFile: os.ReadFile,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

// IOCounters returns per-interface counters parsed from the platform source.
func (p *CommandProvider) IOCounters(ctx context.Context) ([]psnet.IOCountersStat, error) {
	switch p.goos {
	case "linux":
		data, err := p.readFile(ProcNetDev)
		if err != nil {
			return nil, err
		}
		return ParseProcNetDev(string(data))
	case "darwin":
		out, err := p.run(ctx, "netstat", "-ib")
		if err != nil {
			return nil, err
		}
		return ParseNetstatIB(string(out))
	default:
		return nil, fmt.Errorf("no counter source for %s", p.goos)
	}
}

// Interfaces is not supported; the sampler treats every interface as up.
func (p *CommandProvider) Interfaces(ctx context.Context) ([]psnet.InterfaceStat, error) {
	return nil, fmt.Errorf("interface flags are not available from %s counters", p.goos)
}

// FallbackProvider reads counters from Primary, switching to Secondary for a
// sample when Primary fails. Flags always come from Primary.
type FallbackProvider struct {
	Primary   Provider
	Secondary Provider
	Log       logger.Logger
}

// IOCounters implements Provider.
func (p FallbackProvider) IOCounters(ctx context.Context) ([]psnet.IOCountersStat, error) {
	counters, err := p.Primary.IOCounters(ctx)
	if err == nil {
		return counters, nil
	}

	fallback, fbErr := p.Secondary.IOCounters(ctx)
	if fbErr != nil {
		// Report the primary failure; it is the one worth fixing.
		return nil, err
	}
	if p.Log != nil {
		p.Log.Debug("[sample] primary counters failed (%v), using fallback", err)
	}
	return fallback, nil
}

// Interfaces implements Provider.
func (p FallbackProvider) Interfaces(ctx context.Context) ([]psnet.InterfaceStat, error) {
	return p.Primary.Interfaces(ctx)
}

// ParseProcNetDev parses the Linux /proc/net/dev table.
func ParseProcNetDev(text string) ([]psnet.IOCountersStat, error) {
	var counters []psnet.IOCountersStat
	scanner := bufio.NewScanner(strings.NewReader(text))

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		// Two header lines
		if lineNum <= 2 {
			continue
		}

		// "  iface: bytes packets errs drop fifo frame compressed multicast bytes packets ..."
		name, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		fields := strings.Fields(rest)

		// 8 receive + 8 transmit columns
		if len(fields) < 16 {
			continue
		}

		values := make([]uint64, 16)
		for i := range values {
			v, err := strconv.ParseUint(fields[i], 10, 64)
			if err != nil {
				return nil, errors.WrapWithCode(err, errors.ErrSample,
					fmt.Sprintf("Malformed %s line for %s", ProcNetDev, name), "")
			}
			values[i] = v
		}

		counters = append(counters, psnet.IOCountersStat{
			Name:        name,
			BytesRecv:   values[0],
			PacketsRecv: values[1],
			Errin:       values[2],
			Dropin:      values[3],
			BytesSent:   values[8],
			PacketsSent: values[9],
			Errout:      values[10],
			Dropout:     values[11],
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning %s: %w", ProcNetDev, err)
	}

	return counters, nil
}

// ParseNetstatIB parses macOS `netstat -ib` output. Only the link-level row
// of each interface carries its totals.
func ParseNetstatIB(text string) ([]psnet.IOCountersStat, error) {
	var counters []psnet.IOCountersStat
	scanner := bufio.NewScanner(strings.NewReader(text))

	headerSkipped := false
	seen := make(map[string]bool)

	for scanner.Scan() {
		line := scanner.Text()

		if !headerSkipped {
			if strings.HasPrefix(line, "Name") {
				headerSkipped = true
			}
			continue
		}

		// Name  Mtu   Network       Address            Ipkts Ierrs     Ibytes    Opkts Oerrs     Obytes  Coll
		// en0   1500  <Link#4>      xx:xx:xx:xx:xx:xx  12345     0   12345678    67890     0    9876543     0
		fields := strings.Fields(line)
		if len(fields) < 8 {
			continue
		}

		name := fields[0]
		if seen[name] || !isLinkRow(fields) {
			continue
		}

		// The address column is optional, so pick out the numbers instead of
		// relying on positions: mtu ipkts ierrs ibytes opkts oerrs obytes [coll]
		var numbers []uint64
		for _, f := range fields[1:] {
			if v, err := strconv.ParseUint(f, 10, 64); err == nil {
				numbers = append(numbers, v)
			}
		}
		if len(numbers) < 7 {
			continue
		}
		seen[name] = true

		counters = append(counters, psnet.IOCountersStat{
			Name:        name,
			PacketsRecv: numbers[1],
			Errin:       numbers[2],
			BytesRecv:   numbers[3],
			PacketsSent: numbers[4],
			Errout:      numbers[5],
			BytesSent:   numbers[6],
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning netstat output: %w", err)
	}

	return counters, nil
}

func isLinkRow(fields []string) bool {
	for _, f := range fields {
		if strings.HasPrefix(f, "<Link#") {
			return true
		}
	}
	return false
}
