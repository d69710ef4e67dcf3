// Package errors provides structured error types for the wallet-bridge library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category), with an optional detail message and cause chain.
//
// Use the convenience constructors for common patterns:
//
//	err := errors.NotInitialized(errors.PhaseDispatch, "wallet")
//	err := errors.InvalidInput(errors.PhaseSend, "amount cannot be negative")
//	err := errors.ChannelClosed("progress channel replaced")
//
// All errors implement the standard error interface and support errors.Is/As.
// Nothing in this library panics or aborts; every failure is a returned value.
package errors
