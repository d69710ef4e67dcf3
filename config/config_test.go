package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, d.Server)
	assert.Equal(t, 16, d.RelayBuffer)
	assert.Equal(t, 300*time.Millisecond, d.StageDelay)
	assert.Equal(t, 10*time.Second, d.DialTimeout)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("WALLET_SERVER", "https://lightd.test:9067")
	t.Setenv("WALLET_DATA_DIR", "/tmp/wallet-test")
	t.Setenv("WALLET_RELAY_BUFFER", "4")
	t.Setenv("WALLET_SEND_STAGE_DELAY", "0")

	d, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://lightd.test:9067", d.Server)
	assert.Equal(t, "/tmp/wallet-test", d.DataDir)
	assert.Equal(t, 4, d.RelayBuffer)
	assert.Equal(t, time.Duration(0), d.StageDelay)
}

func TestLoad_BadValue(t *testing.T) {
	t.Setenv("WALLET_RELAY_BUFFER", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}
