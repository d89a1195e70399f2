// Package psa implements the professional-services billing rules: clients,
// contracts, tickets and time entries, with hours-bank consumption,
// threshold notifications and a prebilling queue.
//
// Engine serializes every mutation so a validation or close runs as one unit
// against the store, and each unit is committed through storage.Store.Transact.
package psa
