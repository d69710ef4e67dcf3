// Package registry holds the single, swappable, shared engine instance.
//
// The calling runtime addresses wallet operations through stateless calls
// with no session object of its own, so the current engine lives in a
// process-wide slot. All locking discipline is centralized here: the slot is
// guarded by one short-held mutex covering only the pointer swap, never held
// across an engine call. An empty slot is a normal, representable state, not
// an error.
//
// Handles are reference counted. The registry keeps one reference; every Get
// hands out an owned reference the caller must Release when done. An engine
// is closed exactly once, when its last reference is dropped, so replacing
// the slot never tears an engine out from under an in-flight call.
package registry
