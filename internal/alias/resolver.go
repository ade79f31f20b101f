// Package alias resolves human-friendly names for network devices, such as
// "Wi-Fi" for en0 on macOS or the active NetworkManager connection on Linux.
package alias

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/rileyhilliard/ifmon/internal/errors"
	"github.com/rileyhilliard/ifmon/internal/logger"
)

// Runner executes a command and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs the command locally. A non-zero exit is an error whose
// message includes the command's stderr.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// Resolver implements monitor.AliasResolver using the platform's network tools.
type Resolver struct {
	goos string
	run  Runner
	log  logger.Logger
}

// NewResolver creates a resolver for the current platform.
func NewResolver(log logger.Logger) *Resolver {
	return NewResolverFor(runtime.GOOS, ExecRunner, log)
}

// NewResolverFor creates a resolver for goos that runs commands through run.
func NewResolverFor(goos string, run Runner, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.Noop()
	}
	return &Resolver{goos: goos, run: run, log: log}
}

// Resolve returns a device name to friendly name map. A failed lookup
// returns an ErrAlias error and no map.
func (r *Resolver) Resolve(ctx context.Context) (map[string]string, error) {
	switch r.goos {
	case "darwin":
		out, err := r.run(ctx, "networksetup", "-listallhardwareports")
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrAlias,
				"networksetup failed",
				"Friendly names are optional; device names are shown instead")
		}
		aliases := ParseHardwarePorts(string(out))
		r.log.Debug("[alias] %d hardware ports", len(aliases))
		return aliases, nil

	case "linux":
		out, err := r.run(ctx, "nmcli", "-t", "-f", "DEVICE,TYPE,CONNECTION", "device")
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrAlias,
				"nmcli failed",
				"Install NetworkManager for connection names, or ignore this")
		}
		aliases := ParseNmcliDevices(string(out))
		r.log.Debug("[alias] %d connections", len(aliases))
		return aliases, nil

	default:
		return nil, errors.New(errors.ErrAlias,
			"friendly names are not supported on "+r.goos,
			"")
	}
}
