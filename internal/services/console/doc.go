// Package console serves the CRM/RMM/PSA browser console: the layout shell,
// the navigation sidebar, the placeholder pages and the mock-data dashboard.
//
// Pages are rendered synchronously from immutable data (navigation entries,
// the embedded dashboard dataset and the message catalogs), so handlers hold
// no mutable state.
package console
