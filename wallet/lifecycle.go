package wallet

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	walletbridge "github.com/litewallet/wallet-bridge"
	werrors "github.com/litewallet/wallet-bridge/errors"
	"github.com/litewallet/wallet-bridge/registry"
)

// WalletExists reports whether a wallet file is present at the resolved
// path. Pure query; the registry is not touched.
func (b *Bridge) WalletExists(dataDir string) bool {
	cfg := b.resolver.Unconnected(b.dataDirOrDefault(dataDir))
	exists := cfg.WalletExists()
	b.log.Debug("wallet existence probe",
		zap.String("path", cfg.WalletPath()),
		zap.Bool("exists", exists))
	return exists
}

// CreateNew builds a fresh wallet anchored a safety margin below the chain
// tip, installs it, and returns the engine's seed phrase response.
func (b *Bridge) CreateNew(server, dataDir string) string {
	seed, _, _, err := b.createNew(server, dataDir)
	if err != nil {
		return "Error: " + err.Error()
	}
	return seed
}

// CreateNewWithInfo is CreateNew returning a JSON object that additionally
// carries the chosen birthday height and the observed chain height.
func (b *Bridge) CreateNewWithInfo(server, dataDir string) string {
	seedResp, birthday, latest, err := b.createNew(server, dataDir)
	if err != nil {
		return "Error: " + err.Error()
	}
	return fmt.Sprintf(`{"seed": "%s", "birthday": %d, "latest_block": %d}`,
		extractSeed(seedResp), birthday, latest)
}

func (b *Bridge) createNew(server, dataDir string) (seed string, birthday, latest uint64, err error) {
	cfg, latest, err := b.resolver.Resolve(b.serverOrDefault(server), b.dataDirOrDefault(dataDir))
	if err != nil {
		return "", 0, 0, err
	}

	birthday = latest
	if birthday > b.margin {
		birthday -= b.margin
	} else {
		birthday = 0
	}

	eng, err := b.builder.New(cfg, birthday)
	if err != nil {
		return "", 0, 0, werrors.EngineFailure(werrors.PhaseLifecycle, "create wallet", err)
	}

	seed = eng.Execute("seed", nil)

	b.install(eng)
	b.log.Info("new wallet created",
		zap.Uint64("birthday", birthday),
		zap.Uint64("latest_block", latest))
	return seed, birthday, latest, nil
}

// RestoreFromDisk loads an existing wallet file and installs it. The file
// must already exist at the resolved path. A non-zero birthday is advisory
// only: the engine honors whatever birthday the file persists, and this
// operation never alters persisted state.
func (b *Bridge) RestoreFromDisk(server, dataDir string, birthday uint64) string {
	cfg, _, err := b.resolver.Resolve(b.serverOrDefault(server), b.dataDirOrDefault(dataDir))
	if err != nil {
		return "Error: " + err.Error()
	}

	if !cfg.WalletExists() {
		b.log.Warn("wallet file missing", zap.String("path", cfg.WalletPath()))
		return "Error: Wallet file not found at: " + cfg.WalletPath()
	}

	eng, err := b.builder.FromDisk(cfg)
	if err != nil {
		return "Error: Could not read wallet file: " + err.Error()
	}

	if birthday > 0 {
		// Advisory only. The persisted birthday stays authoritative.
		b.log.Info("post-load birthday supplied", zap.Uint64("birthday", birthday))
	}

	b.install(eng)
	return fmt.Sprintf(`{"status": "OK", "birthday": %d}`, birthday)
}

// RestoreFromPhrase rebuilds a wallet from a recovery phrase, scanning from
// the given birthday height. With overwrite set, an existing wallet file is
// removed before construction; restoring over stale state must never merge
// with it.
func (b *Bridge) RestoreFromPhrase(server, phrase string, birthday uint64, overwrite bool, dataDir string) string {
	cfg, _, err := b.resolver.Resolve(b.serverOrDefault(server), b.dataDirOrDefault(dataDir))
	if err != nil {
		return "Error: " + err.Error()
	}

	if overwrite && cfg.WalletExists() {
		if err := cfg.RemoveWallet(); err != nil {
			return "Error: Could not remove existing wallet: " + err.Error()
		}
		b.log.Info("existing wallet removed for overwrite", zap.String("path", cfg.WalletPath()))
	}

	eng, err := b.builder.FromPhrase(cfg, phrase, birthday)
	if err != nil {
		return "Error: " + werrors.EngineFailure(werrors.PhaseLifecycle, "restore from phrase", err).Error()
	}

	b.install(eng)
	return "OK"
}

// RestoreFromPhraseSimple is RestoreFromPhrase with birthday 0, overwrite
// enabled, and the default directory.
func (b *Bridge) RestoreFromPhraseSimple(server, phrase string) string {
	return b.RestoreFromPhrase(server, phrase, 0, true, "")
}

// Deinitialize clears the registry slot. Idempotent: clearing an empty slot
// is not an error.
func (b *Bridge) Deinitialize() string {
	b.reg.Clear()
	return "OK"
}

// install starts the mempool watcher and publishes the engine to the
// registry. The watcher must be running before the lifecycle call returns,
// or unconfirmed transactions stay invisible until the next full sync.
func (b *Bridge) install(eng walletbridge.Engine) {
	eng.StartMempoolWatcher()
	b.reg.Set(registry.NewHandle(eng))
}

// extractSeed pulls the phrase out of the engine's seed response, a JSON
// body like {"seed":"word1 word2 ..."} possibly containing escaped quotes.
// Anything unrecognized passes through unchanged.
func extractSeed(response string) string {
	const marker = `"seed":"`
	start := strings.Index(response, marker)
	if start < 0 {
		return response
	}
	rest := response[start+len(marker):]

	escaped := false
	for i := 0; i < len(rest); i++ {
		if escaped {
			escaped = false
			continue
		}
		switch rest[i] {
		case '\\':
			escaped = true
		case '"':
			return rest[:i]
		}
	}
	return response
}
