package registry

import (
	"sync/atomic"

	walletbridge "github.com/litewallet/wallet-bridge"
)

// Handle is a reference-counted handle to one live engine instance.
// The engine's Close fires exactly once, when the count reaches zero.
type Handle struct {
	engine walletbridge.Engine
	refs   atomic.Int64
}

// NewHandle wraps an engine in a handle holding one reference, owned by the
// caller.
func NewHandle(engine walletbridge.Engine) *Handle {
	h := &Handle{engine: engine}
	h.refs.Store(1)
	return h
}

// Engine returns the wrapped engine. Valid only while the caller holds a
// reference.
func (h *Handle) Engine() walletbridge.Engine {
	return h.engine
}

// retain adds a reference. Callers outside this package acquire references
// through Registry.Get.
func (h *Handle) retain() *Handle {
	h.refs.Add(1)
	return h
}

// Release drops one reference, closing the engine when none remain.
func (h *Handle) Release() {
	if h == nil {
		return
	}
	if h.refs.Add(-1) == 0 {
		_ = h.engine.Close()
	}
}
