package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTunablesDefaults(t *testing.T) {
	tun := DefaultTunables()
	assert.InDelta(t, 1.41421356, tun.DefaultCpuct(), 1e-5)
	assert.InDelta(t, 1.41421356, tun.RootCpuct(), 1e-5)
}

func TestTunablesSetClampsToRange(t *testing.T) {
	tun := DefaultTunables()

	require.NoError(t, tun.Set("default_cpuct", 2500))
	assert.InDelta(t, 2.5, tun.DefaultCpuct(), 1e-6)

	require.NoError(t, tun.Set("default_cpuct", 999999))
	assert.Equal(t, float32(10), tun.DefaultCpuct())

	require.NoError(t, tun.Set("default_cpuct", -999999))
	assert.Equal(t, float32(0), tun.DefaultCpuct())
}

func TestTunablesSetUnknownName(t *testing.T) {
	tun := DefaultTunables()
	err := tun.Set("not_a_real_tunable", 100)
	assert.Error(t, err)
}

func TestTunablesGetRoundTrip(t *testing.T) {
	tun := DefaultTunables()
	require.NoError(t, tun.Set("gini_base", 1800))

	val, min, max, ok := tun.Get("gini_base")
	require.True(t, ok)
	assert.Equal(t, 1800, val)
	assert.Equal(t, 0, min)
	assert.Equal(t, 10000, max)
}

func TestTunablesNamesMatchesGet(t *testing.T) {
	tun := DefaultTunables()
	for _, name := range tun.Names() {
		_, _, _, ok := tun.Get(name)
		assert.True(t, ok, "name %q from Names() must resolve via Get()", name)
	}
}
