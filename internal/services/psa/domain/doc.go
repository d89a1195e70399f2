// Package domain defines the PSA records (clients, contracts, tickets and
// time entries) and the enumerations the engine validates them against.
package domain
