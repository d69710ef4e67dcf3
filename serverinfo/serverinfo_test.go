package serverinfo

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/credentials"

	walletbridge "github.com/litewallet/wallet-bridge"
)

type fakeConnector struct {
	info *walletbridge.LightdInfo
	err  error
	uri  string
}

func (c *fakeConnector) GetInfo(ctx context.Context, uri string) (*walletbridge.LightdInfo, error) {
	c.uri = uri
	if c.err != nil {
		return nil, c.err
	}
	return c.info, nil
}

// stubDial replaces the gRPC connectivity gate in tests.
func stubDial(err error) dialFunc {
	return func(ctx context.Context, target string, creds credentials.TransportCredentials) error {
		return err
	}
}

func TestProbe_InvalidURI(t *testing.T) {
	p := NewProber(&fakeConnector{}, 0, nil)
	p.dial = stubDial(nil)

	tests := []struct {
		name string
		uri  string
	}{
		{"bad scheme", "ftp://lightd.test:9067"},
		{"missing host", "https://"},
		{"garbage", "://nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Probe(context.Background(), tt.uri)

			var body map[string]any
			require.NoError(t, json.Unmarshal([]byte(got), &body))
			assert.Contains(t, body["error"], "Invalid server URI")
			assert.NotEmpty(t, body["details"])
		})
	}
}

func TestProbe_DialFailure(t *testing.T) {
	conn := &fakeConnector{}
	p := NewProber(conn, 0, nil)
	p.dial = stubDial(errors.New("connection refused"))

	got := p.Probe(context.Background(), "https://lightd.test:9067")

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &body))
	assert.Contains(t, body["error"], "Failed to connect to server")
	assert.NotZero(t, body["timestamp"])
	assert.Empty(t, conn.uri, "info call must not run when the transport gate fails")
}

func TestProbe_InfoFailure(t *testing.T) {
	p := NewProber(&fakeConnector{err: errors.New("unimplemented")}, 0, nil)
	p.dial = stubDial(nil)

	got := p.Probe(context.Background(), "https://lightd.test:9067")

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &body))
	assert.Contains(t, body["error"], "unimplemented")
	assert.NotZero(t, body["timestamp"])
}

func TestProbe_ReshapesInfo(t *testing.T) {
	conn := &fakeConnector{info: &walletbridge.LightdInfo{
		Version:                 "v0.4.17",
		Vendor:                  "ECC LightWalletD",
		TaddrSupport:            true,
		ChainName:               "main",
		SaplingActivationHeight: 419200,
		ConsensusBranchID:       "e9ff75a6",
		BlockHeight:             2500000,
		GitCommit:               "abc123",
		Branch:                  "master",
		BuildDate:               "2025-11-02",
		BuildUser:               "ci",
		EstimatedHeight:         2500010,
		ZcashdBuild:             "v5.9.0",
		ZcashdSubversion:        "/MagicBean:5.9.0/",
	}}
	p := NewProber(conn, 0, nil)
	p.dial = stubDial(nil)

	got := p.Probe(context.Background(), "https://lightd.test:9067")

	var body infoBody
	require.NoError(t, json.Unmarshal([]byte(got), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "v0.4.17", body.Version)
	assert.Equal(t, "ECC LightWalletD", body.Vendor)
	assert.True(t, body.TaddrSupport)
	assert.Equal(t, "main", body.ChainName)
	assert.Equal(t, uint64(419200), body.SaplingActivationHeight)
	assert.Equal(t, "e9ff75a6", body.ConsensusBranchID)
	assert.Equal(t, uint64(2500000), body.BlockHeight)
	assert.Equal(t, uint64(2500010), body.EstimatedHeight)
	assert.Equal(t, "v5.9.0", body.ZcashdBuild)
	assert.Equal(t, "/MagicBean:5.9.0/", body.ZcashdSubversion)
	assert.NotZero(t, body.Timestamp)
	assert.Equal(t, "https://lightd.test:9067", conn.uri)
}

func TestParseServerURI(t *testing.T) {
	t.Run("default port", func(t *testing.T) {
		target, _, err := parseServerURI("https://lightd.test")
		require.NoError(t, err)
		assert.Equal(t, "lightd.test:9067", target)
	})

	t.Run("explicit port", func(t *testing.T) {
		target, _, err := parseServerURI("http://127.0.0.1:8067")
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:8067", target)
	})

	t.Run("http uses insecure transport", func(t *testing.T) {
		_, creds, err := parseServerURI("http://lightd.test:9067")
		require.NoError(t, err)
		assert.Equal(t, "insecure", creds.Info().SecurityProtocol)
	})

	t.Run("https uses tls transport", func(t *testing.T) {
		_, creds, err := parseServerURI("https://lightd.test:9067")
		require.NoError(t, err)
		assert.Equal(t, "tls", creds.Info().SecurityProtocol)
	})
}
