package walletbridge

import "context"

// Engine is the externally supplied wallet engine. Implementations own wallet
// state, chain sync, key derivation, and transaction construction, and must be
// safe for concurrent use.
type Engine interface {
	// Execute runs a synchronous wallet command and returns its textual
	// (conventionally JSON) result. Unknown verbs are the engine's
	// responsibility to reject.
	Execute(verb string, args []string) string

	// Send builds and broadcasts a value transfer. It may take arbitrarily
	// long; cancellation beyond what the engine honors via ctx is not
	// available. Returns the transaction id on success.
	Send(ctx context.Context, destination string, amount uint64, memo *string) (string, error)

	// StartMempoolWatcher starts the engine's background task that surfaces
	// unconfirmed transactions between full syncs.
	StartMempoolWatcher()

	// Close releases the engine's resources. Called once, when the last
	// handle reference is dropped.
	Close() error
}

// Builder constructs engine instances. Each constructor corresponds to one
// wallet lifecycle path.
type Builder interface {
	// New creates a fresh wallet anchored at the given birthday height.
	New(cfg *Config, birthday uint64) (Engine, error)

	// FromPhrase restores a wallet from a recovery phrase, scanning from the
	// given birthday height.
	FromPhrase(cfg *Config, phrase string, birthday uint64) (Engine, error)

	// FromDisk loads an existing wallet file at cfg.WalletPath().
	FromDisk(cfg *Config) (Engine, error)
}

// ConfigResolver resolves server address and on-disk location into a usable
// engine configuration.
type ConfigResolver interface {
	// Resolve contacts the server and returns the resolved configuration
	// together with the latest observed chain height.
	Resolve(server, dataDir string) (*Config, uint64, error)

	// Unconnected builds a configuration without touching the network,
	// sufficient for path resolution and existence checks.
	Unconnected(dataDir string) *Config
}

// Connector exposes the engine's server info call, used to probe
// connectivity to a lightwalletd endpoint.
type Connector interface {
	GetInfo(ctx context.Context, uri string) (*LightdInfo, error)
}

// LightdInfo is the structured response of the server's info call.
type LightdInfo struct {
	Version                 string
	Vendor                  string
	TaddrSupport            bool
	ChainName               string
	SaplingActivationHeight uint64
	ConsensusBranchID       string
	BlockHeight             uint64
	GitCommit               string
	Branch                  string
	BuildDate               string
	BuildUser               string
	EstimatedHeight         uint64
	ZcashdBuild             string
	ZcashdSubversion        string
}
