// Package config loads the library's ambient defaults from the environment.
// Anything the caller passes explicitly wins; these values only fill gaps.
// Config-file loading belongs to the embedding process, not this library.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	werrors "github.com/litewallet/wallet-bridge/errors"
)

// Defaults are the environment-tunable knobs.
type Defaults struct {
	// Server is the lightwalletd endpoint used when the caller passes none.
	Server string `env:"WALLET_SERVER" envDefault:"https://lightd.mainnet.example.com:9067"`

	// DataDir is the wallet directory used when the caller passes none.
	// Empty means the engine resolver's platform default.
	DataDir string `env:"WALLET_DATA_DIR"`

	// RelayBuffer is the progress channel's per-subscriber depth.
	RelayBuffer int `env:"WALLET_RELAY_BUFFER" envDefault:"16"`

	// StageDelay spaces out the send flow's intermediate progress stages so
	// a polling consumer can observe them. Zero disables the pacing; it is
	// not required for correctness.
	StageDelay time.Duration `env:"WALLET_SEND_STAGE_DELAY" envDefault:"300ms"`

	// DialTimeout bounds the server connectivity gate in the prober.
	DialTimeout time.Duration `env:"WALLET_DIAL_TIMEOUT" envDefault:"10s"`
}

// Load parses Defaults from the environment.
func Load() (*Defaults, error) {
	var d Defaults
	if err := env.Parse(&d); err != nil {
		return nil, werrors.Wrap(werrors.PhaseConfig, werrors.KindInvalidInput, err, "parse environment")
	}
	return &d, nil
}
