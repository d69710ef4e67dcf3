// Package serverinfo probes connectivity to a lightwalletd endpoint and
// reshapes the engine's structured info response into the fixed JSON object
// the UI consumes. Failures come back as an error object with a diagnostic
// message and timestamp, never as a process abort.
package serverinfo

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"net/url"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	walletbridge "github.com/litewallet/wallet-bridge"
	werrors "github.com/litewallet/wallet-bridge/errors"
)

// DefaultDialTimeout bounds the connectivity gate when no timeout is given.
const DefaultDialTimeout = 10 * time.Second

// defaultPort is lightwalletd's conventional gRPC port.
const defaultPort = "9067"

// dialFunc establishes a client connection and waits for it to become ready.
// Replaceable in tests.
type dialFunc func(ctx context.Context, target string, creds credentials.TransportCredentials) error

// Prober validates a server URI, gates on transport connectivity, and
// forwards to the engine's info call.
type Prober struct {
	connector   walletbridge.Connector
	dialTimeout time.Duration
	dial        dialFunc
	log         *zap.Logger
}

// NewProber creates a prober over the engine's connector. A zero timeout
// means DefaultDialTimeout; a nil logger disables logging.
func NewProber(connector walletbridge.Connector, dialTimeout time.Duration, log *zap.Logger) *Prober {
	if dialTimeout <= 0 {
		dialTimeout = DefaultDialTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Prober{
		connector:   connector,
		dialTimeout: dialTimeout,
		dial:        dialAndWaitReady,
		log:         log,
	}
}

// infoBody is the fixed field set returned on success.
type infoBody struct {
	Success                 bool   `json:"success"`
	Version                 string `json:"version"`
	Vendor                  string `json:"vendor"`
	TaddrSupport            bool   `json:"taddr_support"`
	ChainName               string `json:"chain_name"`
	SaplingActivationHeight uint64 `json:"sapling_activation_height"`
	ConsensusBranchID       string `json:"consensus_branch_id"`
	BlockHeight             uint64 `json:"block_height"`
	GitCommit               string `json:"git_commit"`
	Branch                  string `json:"branch"`
	BuildDate               string `json:"build_date"`
	BuildUser               string `json:"build_user"`
	EstimatedHeight         uint64 `json:"estimated_height"`
	ZcashdBuild             string `json:"zcashd_build"`
	ZcashdSubversion        string `json:"zcashd_subversion"`
	Timestamp               int64  `json:"timestamp"`
}

type errorBody struct {
	Error     string `json:"error"`
	Details   string `json:"details"`
	Timestamp int64  `json:"timestamp"`
}

// Probe tests the server at uri and returns either the reshaped info object
// or an error object. The result is always a JSON string.
func (p *Prober) Probe(ctx context.Context, uri string) string {
	target, creds, err := parseServerURI(uri)
	if err != nil {
		return marshal(errorBody{
			Error:     "Invalid server URI: " + err.Error(),
			Details:   "Please check the server URL format",
			Timestamp: time.Now().Unix(),
		})
	}

	dialCtx, cancel := context.WithTimeout(ctx, p.dialTimeout)
	defer cancel()
	if err := p.dial(dialCtx, target, creds); err != nil {
		p.log.Warn("server connection failed", zap.String("uri", uri), zap.Error(err))
		return marshal(errorBody{
			Error:     "Failed to connect to server: " + err.Error(),
			Details:   "Please check server URL and network connectivity",
			Timestamp: time.Now().Unix(),
		})
	}

	info, err := p.connector.GetInfo(ctx, uri)
	if err != nil {
		p.log.Warn("server info call failed", zap.String("uri", uri), zap.Error(err))
		return marshal(errorBody{
			Error:     "Failed to connect to server: " + err.Error(),
			Details:   "Please check server URL and network connectivity",
			Timestamp: time.Now().Unix(),
		})
	}

	p.log.Info("server connection successful",
		zap.String("version", info.Version),
		zap.String("chain", info.ChainName),
		zap.Uint64("block_height", info.BlockHeight))

	return marshal(infoBody{
		Success:                 true,
		Version:                 info.Version,
		Vendor:                  info.Vendor,
		TaddrSupport:            info.TaddrSupport,
		ChainName:               info.ChainName,
		SaplingActivationHeight: info.SaplingActivationHeight,
		ConsensusBranchID:       info.ConsensusBranchID,
		BlockHeight:             info.BlockHeight,
		GitCommit:               info.GitCommit,
		Branch:                  info.Branch,
		BuildDate:               info.BuildDate,
		BuildUser:               info.BuildUser,
		EstimatedHeight:         info.EstimatedHeight,
		ZcashdBuild:             info.ZcashdBuild,
		ZcashdSubversion:        info.ZcashdSubversion,
		Timestamp:               time.Now().Unix(),
	})
}

// parseServerURI validates uri and derives the gRPC dial target and
// transport credentials from its scheme.
func parseServerURI(uri string) (string, credentials.TransportCredentials, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", nil, werrors.InvalidInput(werrors.PhaseProbe, "scheme must be http or https")
	}
	if u.Hostname() == "" {
		return "", nil, werrors.InvalidInput(werrors.PhaseProbe, "missing host")
	}

	port := u.Port()
	if port == "" {
		port = defaultPort
	}

	var creds credentials.TransportCredentials
	if u.Scheme == "https" {
		creds = credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	} else {
		creds = insecure.NewCredentials()
	}
	return u.Hostname() + ":" + port, creds, nil
}

// dialAndWaitReady opens a client connection and blocks until the transport
// is ready or ctx expires. The connection is only a connectivity gate; the
// engine's own client performs the actual calls.
func dialAndWaitReady(ctx context.Context, target string, creds credentials.TransportCredentials) error {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(creds))
	if err != nil {
		return werrors.Connect("create client", err)
	}
	defer func() { _ = conn.Close() }()

	conn.Connect()
	for {
		state := conn.GetState()
		if state == connectivity.Ready {
			return nil
		}
		if state == connectivity.TransientFailure || state == connectivity.Shutdown {
			return werrors.Connect("transport unavailable", nil)
		}
		if !conn.WaitForStateChange(ctx, state) {
			return werrors.Connect("dial timeout", ctx.Err())
		}
	}
}

func marshal(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		// Fixed-shape structs of scalars cannot fail to marshal; keep the
		// error convention anyway.
		return `{"error": "internal: marshal server info"}`
	}
	return string(b)
}
