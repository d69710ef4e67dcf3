// Package relay decouples the engine's callback-style progress signal from
// consumers that can only poll.
//
// Events flow through a broadcast channel with bounded per-subscriber depth.
// Publishing with zero subscribers succeeds; a lagging subscriber loses the
// oldest buffered events first. Re-initializing the relay replaces the
// channel wholesale: subscribers of the old channel drain what they already
// have and then observe a channel-closed error, which is retryable:
// resubscribe, do not retry the operation that produced the events.
//
// Within a single send operation, published progress values are strictly
// non-decreasing. No ordering holds across concurrently initiated operations
// sharing the relay; correlate by the event's operation id instead.
//
// The package-level functions operate on a process-wide default relay. They
// exist for call sites that cannot carry a handle, such as the foreign
// runtime's progress hook, and are the one deliberate escape hatch from the
// handle-based API. ReportTxProgress is the single place where raw engine
// counters are remapped onto the caller-visible 0-100 scale.
package relay
