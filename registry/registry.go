package registry

import (
	"sync"

	"go.uber.org/zap"
)

// Registry is a swappable slot holding the current engine handle.
// The zero value is not usable; call New.
type Registry struct {
	mu      sync.Mutex
	current *Handle
	log     *zap.Logger
}

// New creates an empty registry. A nil logger disables logging.
func New(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{log: log}
}

// Set replaces the current handle, taking ownership of the caller's
// reference. The previous occupant's registry reference is released; holders
// that captured it earlier keep using it until they release it. Passing nil
// clears the slot and is idempotent.
func (r *Registry) Set(h *Handle) {
	r.mu.Lock()
	prev := r.current
	r.current = h
	r.mu.Unlock()

	// Release outside the lock: this may close the old engine.
	if prev != nil {
		r.log.Debug("engine handle replaced")
		prev.Release()
	}
}

// Get returns a new owning reference to the current handle. The caller must
// Release it. The second return is false when the slot is empty.
func (r *Registry) Get() (*Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return nil, false
	}
	return r.current.retain(), true
}

// Clear empties the slot. Clearing an already-empty slot is not an error.
func (r *Registry) Clear() {
	r.Set(nil)
}

// defaultRegistry is the process-wide slot used by the stateless caller
// surface in the wallet package.
var defaultRegistry = New(nil)

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}
