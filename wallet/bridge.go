package wallet

import (
	"sync"
	"time"

	"go.uber.org/zap"

	walletbridge "github.com/litewallet/wallet-bridge"
	"github.com/litewallet/wallet-bridge/config"
	"github.com/litewallet/wallet-bridge/dispatch"
	"github.com/litewallet/wallet-bridge/registry"
	"github.com/litewallet/wallet-bridge/relay"
	"github.com/litewallet/wallet-bridge/serverinfo"
)

// DefaultBirthdayMargin is subtracted from the chain tip when creating a new
// wallet, so blocks still subject to minor reorganization are re-scanned
// rather than trusted as final.
const DefaultBirthdayMargin = 100

// Options tunes a Bridge.
type Options struct {
	// Registry holds the engine handle. Nil means a fresh private registry.
	Registry *registry.Registry

	// Relay receives send progress. Nil means a fresh private relay.
	Relay *relay.Relay

	// RelayDepth is the per-subscriber progress buffer depth. Zero means
	// relay.DefaultDepth. On a supplied Relay it applies to channels created
	// after configuration.
	RelayDepth int

	// StageDelay spaces out the send flow's intermediate progress events so
	// a polling consumer can observe fast-path transitions. Zero disables
	// pacing; it is not required for correctness.
	StageDelay time.Duration

	// BirthdayMargin overrides DefaultBirthdayMargin when non-zero.
	BirthdayMargin uint64

	// DefaultServer is used when a lifecycle call passes an empty server.
	DefaultServer string

	// DefaultDataDir is used when a lifecycle call passes an empty
	// directory. Empty means the resolver's platform default.
	DefaultDataDir string

	// DialTimeout bounds the connectivity gate of probers built with
	// Bridge.Prober. Zero means serverinfo.DefaultDialTimeout.
	DialTimeout time.Duration

	// Logger is a side channel for operators. Nil disables logging; returned
	// values are always self-describing regardless.
	Logger *zap.Logger
}

// Bridge is the caller-facing wallet surface.
type Bridge struct {
	resolver   walletbridge.ConfigResolver
	builder    walletbridge.Builder
	reg        *registry.Registry
	relay      *relay.Relay
	disp       *dispatch.Dispatcher
	delay      time.Duration
	margin     uint64
	defServer  string
	defDataDir string
	dialTO     time.Duration
	log        *zap.Logger
}

// New creates a Bridge over the given collaborators.
func New(resolver walletbridge.ConfigResolver, builder walletbridge.Builder, opts *Options) *Bridge {
	if opts == nil {
		opts = &Options{}
	}

	reg := opts.Registry
	if reg == nil {
		reg = registry.New(opts.Logger)
	}
	rl := opts.Relay
	if rl == nil {
		rl = relay.NewRelay(opts.RelayDepth, opts.Logger)
	} else if opts.RelayDepth > 0 {
		rl.SetDepth(opts.RelayDepth)
	}
	margin := opts.BirthdayMargin
	if margin == 0 {
		margin = DefaultBirthdayMargin
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Bridge{
		resolver:   resolver,
		builder:    builder,
		reg:        reg,
		relay:      rl,
		disp:       dispatch.New(reg, log),
		delay:      opts.StageDelay,
		margin:     margin,
		defServer:  opts.DefaultServer,
		defDataDir: opts.DefaultDataDir,
		dialTO:     opts.DialTimeout,
		log:        log,
	}
}

// serverOrDefault falls back to the configured default endpoint when the
// caller passes none.
func (b *Bridge) serverOrDefault(server string) string {
	if server == "" {
		return b.defServer
	}
	return server
}

// dataDirOrDefault falls back to the configured default directory when the
// caller passes none.
func (b *Bridge) dataDirOrDefault(dataDir string) string {
	if dataDir == "" {
		return b.defDataDir
	}
	return dataDir
}

// Registry returns the registry backing this bridge.
func (b *Bridge) Registry() *registry.Registry {
	return b.reg
}

// Relay returns the progress relay backing this bridge.
func (b *Bridge) Relay() *relay.Relay {
	return b.relay
}

// Prober builds a server prober over the engine's connector, sharing the
// bridge's dial timeout and logger.
func (b *Bridge) Prober(connector walletbridge.Connector) *serverinfo.Prober {
	return serverinfo.NewProber(connector, b.dialTO, b.log)
}

var (
	defaultMu     sync.RWMutex
	defaultBridge *Bridge
)

// Configure installs the process-wide default bridge over the default
// registry and relay. The stateless caller surface addresses this bridge.
func Configure(resolver walletbridge.ConfigResolver, builder walletbridge.Builder, opts *Options) *Bridge {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Registry == nil {
		opts.Registry = registry.Default()
	}
	if opts.Relay == nil {
		opts.Relay = relay.Default()
	}

	b := New(resolver, builder, opts)

	defaultMu.Lock()
	defaultBridge = b
	defaultMu.Unlock()
	return b
}

// Default returns the bridge installed by Configure, or nil before that.
func Default() *Bridge {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultBridge
}

// ConfigureFromEnv installs the default bridge with its pacing, buffer depth,
// dial timeout, fallback endpoint, and directory taken from the environment
// (see package config).
func ConfigureFromEnv(resolver walletbridge.ConfigResolver, builder walletbridge.Builder, log *zap.Logger) (*Bridge, error) {
	d, err := config.Load()
	if err != nil {
		return nil, err
	}
	return Configure(resolver, builder, &Options{
		RelayDepth:     d.RelayBuffer,
		StageDelay:     d.StageDelay,
		DefaultServer:  d.Server,
		DefaultDataDir: d.DataDir,
		DialTimeout:    d.DialTimeout,
		Logger:         log,
	}), nil
}
