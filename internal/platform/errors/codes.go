// Package errors provides coded domain errors shared by the console and the
// PSA engine.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unclassified failure.
	CodeUnknown Code = "UNKNOWN"

	// Request errors
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeMethodNotAllowed   Code = "METHOD_NOT_ALLOWED"

	// Lookup errors
	CodeNotFound         Code = "NOT_FOUND"
	CodePageNotFound     Code = "PAGE_NOT_FOUND"
	CodeClientNotFound   Code = "CLIENT_NOT_FOUND"
	CodeTicketNotFound   Code = "TICKET_NOT_FOUND"
	CodeEntryNotFound    Code = "TIME_ENTRY_NOT_FOUND"
	CodeContractNotFound Code = "CONTRACT_NOT_FOUND"

	// PSA rule errors
	CodeClientNameEmpty           Code = "CLIENT_NAME_EMPTY"
	CodeTimeEntryNonPositive      Code = "TIME_ENTRY_NON_POSITIVE"
	CodeContractTypeInvalid       Code = "CONTRACT_TYPE_INVALID"
	CodeContractNotSubscription   Code = "CONTRACT_NOT_SUBSCRIPTION"
	CodeSubscriptionAmountInvalid Code = "SUBSCRIPTION_AMOUNT_INVALID"
	CodeInterventionWindowInvalid Code = "INTERVENTION_WINDOW_INVALID"
)

// HTTPStatus maps a code to the status an HTTP surface should answer with.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidArgument, CodeClientNameEmpty, CodeTimeEntryNonPositive, CodeContractTypeInvalid,
		CodeContractNotSubscription, CodeSubscriptionAmountInvalid, CodeInterventionWindowInvalid:
		return http.StatusBadRequest
	case CodeFailedPrecondition:
		return http.StatusConflict
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case CodeNotFound, CodePageNotFound, CodeClientNotFound, CodeTicketNotFound, CodeEntryNotFound, CodeContractNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
