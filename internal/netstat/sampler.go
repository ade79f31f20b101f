// Package netstat reads per-interface byte counters from the operating system.
package netstat

import (
	"context"
	"net"
	"regexp"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/rileyhilliard/ifmon/internal/errors"
	"github.com/rileyhilliard/ifmon/internal/logger"
	"github.com/rileyhilliard/ifmon/internal/monitor"
)

// Provider is the source of raw interface data. DefaultProvider reads it
// through gopsutil; tests substitute fixed values.
type Provider interface {
	IOCounters(ctx context.Context) ([]psnet.IOCountersStat, error)
	Interfaces(ctx context.Context) ([]psnet.InterfaceStat, error)
}

// DefaultProvider implements Provider with gopsutil.
type DefaultProvider struct{}

// IOCounters returns per-NIC counters.
func (DefaultProvider) IOCounters(ctx context.Context) ([]psnet.IOCountersStat, error) {
	return psnet.IOCountersWithContext(ctx, true)
}

// Interfaces returns interface metadata, including flags.
func (DefaultProvider) Interfaces(ctx context.Context) ([]psnet.InterfaceStat, error) {
	return psnet.InterfacesWithContext(ctx)
}

// Sampler implements monitor.Sampler.
type Sampler struct {
	provider Provider
	log      logger.Logger
}

// NewSampler creates a sampler backed by gopsutil, falling back to the
// platform's text counters when gopsutil fails. A nil logger discards output.
func NewSampler(log logger.Logger) *Sampler {
	return NewSamplerWithProvider(FallbackProvider{
		Primary:   DefaultProvider{},
		Secondary: NewCommandProvider(runtime.GOOS),
		Log:       log,
	}, log)
}

// NewSamplerWithProvider creates a sampler reading from p.
func NewSamplerWithProvider(p Provider, log logger.Logger) *Sampler {
	if log == nil {
		log = logger.Noop()
	}
	return &Sampler{provider: p, log: log}
}

// Sample returns one reading per interface with counters. Interfaces the
// flag lookup does not know about are assumed up, and are treated as
// loopback only if their name says so.
func (s *Sampler) Sample(ctx context.Context) ([]monitor.InterfaceSample, error) {
	counters, err := s.provider.IOCounters(ctx)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSample,
			"Failed to read interface counters",
			"Check that network statistics are readable on this system")
	}

	ifaces, err := s.provider.Interfaces(ctx)
	if err != nil {
		// Counters alone are still usable; every interface is treated as up.
		s.log.Debug("[sample] interface flags unavailable: %v", err)
	}
	flagsByName := make(map[string]net.Flags, len(ifaces))
	for _, iface := range ifaces {
		flagsByName[iface.Name] = ParseFlags(iface.Flags)
	}

	samples := make([]monitor.InterfaceSample, 0, len(counters))
	for _, c := range counters {
		flags, ok := flagsByName[c.Name]
		if !ok {
			flags = net.FlagUp
			if looksLikeLoopback(c.Name) {
				flags |= net.FlagLoopback
			}
		}
		samples = append(samples, monitor.InterfaceSample{
			Name:       c.Name,
			RxBytes:    c.BytesRecv,
			TxBytes:    c.BytesSent,
			Flags:      flags,
			IsLoopback: flags&net.FlagLoopback != 0,
		})
	}
	return samples, nil
}

// flagNames maps gopsutil's flag spellings to net.Flags bits.
var flagNames = map[string]net.Flags{
	"up":           net.FlagUp,
	"broadcast":    net.FlagBroadcast,
	"loopback":     net.FlagLoopback,
	"pointtopoint": net.FlagPointToPoint,
	"multicast":    net.FlagMulticast,
	"running":      net.FlagRunning,
}

// ParseFlags converts gopsutil flag names to a bitmask. Unknown names are ignored.
func ParseFlags(names []string) net.Flags {
	var flags net.Flags
	for _, name := range names {
		flags |= flagNames[strings.ToLower(name)]
	}
	return flags
}

var loopbackName = regexp.MustCompile(`^lo[0-9]*$`)

func looksLikeLoopback(name string) bool {
	return loopbackName.MatchString(name)
}

// Hostname returns the machine's host name, or "localhost" if it cannot be read.
func Hostname(ctx context.Context) string {
	info, err := host.InfoWithContext(ctx)
	if err != nil || info.Hostname == "" {
		return "localhost"
	}
	return info.Hostname
}
