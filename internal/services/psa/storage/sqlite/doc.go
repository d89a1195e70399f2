// Package sqlite provides SQLite-backed PSA persistence.
//
// Ledger tables (hours events, notifications, prebilling) are append-only and
// ordered by an autoincrement sequence. Contracts carry the same sequence so
// the first contract of a client is stable across updates.
package sqlite
