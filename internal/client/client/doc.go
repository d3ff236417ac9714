// Package client contains the client-side gateway to the WealthWise backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     authentication, portfolio and asset CRUD, valuations, net worth,
//     history and exports.
//  2. A concrete HTTP/JSON implementation (see HTTPClient) that attaches the
//     bearer token from a TokenSource and an X-Request-ID to each request.
//  3. The Gateway, which records the outcome of every call and, for
//     Login/Signup/Me only, substitutes the demo identity when the backend
//     cannot be reached. Simulated serves the same identity locally when
//     simulated auth is switched on.
//  4. Local persistence bootstrap (InitDatabase, RunMigrations).
//
// # Error Handling
//
// A call ends in one of three ways. If the backend answered with an error
// status, the result is an *ApplicationError carrying the backend's detail
// message verbatim. If no response arrived, it is a *TransportError. If the
// caller's context ended first, the context's own error is returned. Match
// with errors.As, or with errors.Is against ErrUnavailable and
// ErrUnauthorized.
//
// Concurrency & Contexts
//
// HTTPClient, Gateway and MemoryRecorder are safe for concurrent use. All
// operations accept context.Context; cancellation never triggers the
// fallback.
package client
