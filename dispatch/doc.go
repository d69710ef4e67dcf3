// Package dispatch routes a (verb, argument) pair to the current engine.
//
// Arguments are tokenized on whitespace, with one documented exception: a
// "send" verb whose argument begins with a JSON array marker is forwarded
// untouched as a single token, because it encodes a structured payload that
// must not be word-split.
//
// Dispatching against an empty registry yields the standard uninitialized
// error body; this is a normal, testable branch, never a panic. The registry
// lock is never held across the engine call; only a transient handle
// reference is taken for the call's duration.
package dispatch
