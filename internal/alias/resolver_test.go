package alias

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/ifmon/internal/errors"
)

const hardwarePorts = `
Hardware Port: Ethernet
Device: en5
Ethernet Address: 00:e0:4c:68:00:01

Hardware Port: Wi-Fi
Device: en0
Ethernet Address: a4:83:e7:00:00:02

Hardware Port: Thunderbolt Bridge
Device: bridge0
Ethernet Address: N/A

VLAN Configurations
===================
`

func TestParseHardwarePorts(t *testing.T) {
	got := ParseHardwarePorts(hardwarePorts)

	assert.Equal(t, map[string]string{
		"en5":     "Ethernet",
		"en0":     "Wi-Fi",
		"bridge0": "Thunderbolt Bridge",
	}, got)
}

func TestParseHardwarePorts_EdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{"empty", "", map[string]string{}},
		{"device without port", "Device: en0\n", map[string]string{}},
		{"empty device", "Hardware Port: Wi-Fi\nDevice:\n", map[string]string{}},
		{
			"port consumed by first device",
			"Hardware Port: Wi-Fi\nDevice: en0\nDevice: en1\n",
			map[string]string{"en0": "Wi-Fi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseHardwarePorts(tt.input))
		})
	}
}

func TestParseNmcliDevices(t *testing.T) {
	input := `wlp2s0:wifi:HomeNet
eth0:ethernet:--
lo:loopback:lo
docker0:bridge:docker0
p2p-dev-wlp2s0:wifi-p2p:
wg0:wireguard:Office\:VPN
`
	got := ParseNmcliDevices(input)

	assert.Equal(t, map[string]string{
		"wlp2s0":  "HomeNet",
		"lo":      "lo",
		"docker0": "docker0",
		"wg0":     "Office:VPN",
	}, got)
}

func TestSplitTerse(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitTerse("a:b:c"))
	assert.Equal(t, []string{"a", "b:c"}, splitTerse(`a:b\:c`))
	assert.Equal(t, []string{"a", ""}, splitTerse("a:"))
	assert.Equal(t, []string{`x\y`}, splitTerse(`x\\y`))
}

type call struct {
	name string
	args []string
}

func fakeRunner(out string, err error, calls *[]call) Runner {
	return func(_ context.Context, name string, args ...string) ([]byte, error) {
		*calls = append(*calls, call{name: name, args: args})
		return []byte(out), err
	}
}

func TestResolve_Darwin(t *testing.T) {
	var calls []call
	r := NewResolverFor("darwin", fakeRunner(hardwarePorts, nil, &calls), nil)

	aliases, err := r.Resolve(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Wi-Fi", aliases["en0"])
	require.Len(t, calls, 1)
	assert.Equal(t, "networksetup", calls[0].name)
	assert.Equal(t, []string{"-listallhardwareports"}, calls[0].args)
}

func TestResolve_Linux(t *testing.T) {
	var calls []call
	r := NewResolverFor("linux", fakeRunner("eth0:ethernet:Wired connection 1\n", nil, &calls), nil)

	aliases, err := r.Resolve(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"eth0": "Wired connection 1"}, aliases)
	require.Len(t, calls, 1)
	assert.Equal(t, "nmcli", calls[0].name)
}

func TestResolve_CommandFailure(t *testing.T) {
	var calls []call
	r := NewResolverFor("darwin", fakeRunner("", fmt.Errorf("exit status 1"), &calls), nil)

	aliases, err := r.Resolve(context.Background())

	require.Error(t, err)
	assert.Nil(t, aliases)
	assert.True(t, errors.IsCode(err, errors.ErrAlias))
	assert.Equal(t, "networksetup failed: exit status 1", errors.Summary(err))
}

func TestResolve_UnsupportedPlatform(t *testing.T) {
	var calls []call
	r := NewResolverFor("windows", fakeRunner("", nil, &calls), nil)

	aliases, err := r.Resolve(context.Background())

	require.Error(t, err)
	assert.Nil(t, aliases)
	assert.True(t, errors.IsCode(err, errors.ErrAlias))
	assert.Empty(t, calls, "no command is run")
}
