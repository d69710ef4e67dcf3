package walletbridge

import (
	"os"
	"path/filepath"

	werrors "github.com/litewallet/wallet-bridge/errors"
)

// DefaultWalletFile is the file name the engine persists the wallet under
// when the resolver does not override it.
const DefaultWalletFile = "wallet-lite.dat"

// Config is a resolved engine configuration. The wallet file's format and
// contents are owned entirely by the engine; this library only resolves the
// path, checks existence, and deletes the file on overwrite restoration.
type Config struct {
	Server     string
	DataDir    string
	WalletFile string
}

// WalletPath returns the full path of the wallet file.
func (c *Config) WalletPath() string {
	name := c.WalletFile
	if name == "" {
		name = DefaultWalletFile
	}
	return filepath.Join(c.DataDir, name)
}

// WalletExists reports whether a wallet file is present at WalletPath.
func (c *Config) WalletExists() bool {
	info, err := os.Stat(c.WalletPath())
	return err == nil && !info.IsDir()
}

// RemoveWallet deletes the wallet file. Missing files are not an error.
func (c *Config) RemoveWallet() error {
	err := os.Remove(c.WalletPath())
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return werrors.IO(werrors.PhaseConfig, "remove wallet file", err)
}
