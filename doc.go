// Package walletbridge provides the glue between a UI runtime and an
// externally supplied light wallet engine.
//
// The engine owns wallet state, chain synchronization, key derivation, and
// transaction construction. This library makes a single, process-wide,
// swappable engine instance safely usable from many concurrent callers, and
// turns the engine's callback-style progress signal into a pollable event
// stream for callers that cannot register native callbacks.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	walletbridge/        Root package with the engine boundary interfaces
//	├── registry/        Swappable, refcounted engine handle slot
//	├── dispatch/        Command routing and argument tokenization
//	├── relay/           Broadcast progress channel and callback-to-poll bridge
//	├── wallet/          Wallet lifecycle, send flow, and verb pass-throughs
//	├── serverinfo/      Server connectivity probing and response shaping
//	├── config/          Environment-driven defaults
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Initialize a wallet and dispatch commands:
//
//	br := wallet.New(resolver, builder, nil)
//
//	seed := br.CreateNew(serverURI, dataDir)
//	balance := br.GetBalance()
//
//	result := br.SendTransaction(ctx, addr, amount, nil)
//
// A concurrent poller drains progress independently:
//
//	ev, err := relay.PollNext(ctx)
//
// # Thread Safety
//
// The registry slot and the relay's channel pointer are the only mutable
// shared state owned by this library. Each is protected by a single short-held
// lock covering only the pointer swap, never held across an engine call.
// Engines are internally thread-safe by contract; replacing either singleton
// while operations are in flight is legal, and in-flight holders keep their
// captured reference until they release it.
//
// # Failure Model
//
// Nothing in this library terminates the process. Every failure path returns
// a value: either a structured error from the errors package or, on the UI
// boundary, a JSON error body of the form {"error": "<message>"}.
package walletbridge
