// Package storage defines persistence contracts for the PSA engine.
//
// Implementations live in subpackages: memory for tests and demos, sqlite for
// durable state.
//
// Common error types:
//   - ErrNotFound: requested record is missing
package storage
