package wallet

import "encoding/json"

// Dispatch forwards an arbitrary (verb, argument) pair to the engine. The
// named accessors below are thin pass-throughs over this with fixed verbs.
func (b *Bridge) Dispatch(verb, args string) string {
	return b.disp.Dispatch(verb, args)
}

// GetSyncStatus returns the engine's sync status. Answerable from in-memory
// state; does not block on network I/O.
func (b *Bridge) GetSyncStatus() string {
	return b.disp.Dispatch("syncstatus", "")
}

// Sync runs a full chain sync. May take arbitrarily long; impose timeouts
// around the call, not inside it.
func (b *Bridge) Sync() string {
	return b.disp.Dispatch("sync", "")
}

// GetBalance returns the wallet balances.
func (b *Bridge) GetBalance() string {
	return b.disp.Dispatch("balance", "")
}

// GetTransactions returns the transaction list, including unconfirmed
// entries surfaced by the mempool watcher.
func (b *Bridge) GetTransactions() string {
	return b.disp.Dispatch("list", "")
}

// GetAddresses returns the wallet's addresses.
func (b *Bridge) GetAddresses() string {
	return b.disp.Dispatch("addresses", "")
}

// NewAddress generates a new address of the given type.
func (b *Bridge) NewAddress(addressType string) string {
	return b.disp.Dispatch("new", addressType)
}

// GetInfo returns the engine's info body.
func (b *Bridge) GetInfo() string {
	return b.disp.Dispatch("info", "")
}

// GetHeight returns the wallet's synced height parsed from the engine's
// height body. Zero means "unknown", not literally height zero: it is
// returned when the field is absent or unparsable.
func (b *Bridge) GetHeight() uint32 {
	result := b.disp.Dispatch("height", "")

	var body struct {
		Height *uint32 `json:"height"`
	}
	if err := json.Unmarshal([]byte(result), &body); err != nil || body.Height == nil {
		return 0
	}
	return *body.Height
}
