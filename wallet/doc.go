// Package wallet exposes the caller-facing wallet surface: lifecycle
// operations that produce or discard the engine handle, the send flow that
// drives the progress relay, and thin verb pass-throughs over the command
// dispatcher.
//
// Methods on Bridge return text, conventionally JSON, matching what the UI
// runtime consumes. Failures are textual error results ("Error: ..." for
// lifecycle operations, {"error": "..."} bodies for command results), never
// panics: the embedding process must not be terminated by wallet failures.
//
// Every successful creation or restoration path starts the engine's mempool
// watcher before the handle is installed, so unconfirmed transactions are
// visible to the very next call without waiting for a full sync.
package wallet
