package domain

import (
	"slices"
	"strings"

	apperrors "github.com/crmrmm/console/internal/platform/errors"
)

// ContractType selects how validated billable time is charged.
type ContractType string

const (
	// ContractTypeHoursBank consumes prepaid hours.
	ContractTypeHoursBank ContractType = "hours_bank"
	// ContractTypeSubscription bills a flat fee; time is still estimated at the hourly rate.
	ContractTypeSubscription ContractType = "subscription"
	// ContractTypeTimeMaterial bills time at the hourly rate.
	ContractTypeTimeMaterial ContractType = "time_material"
)

// TicketStatus describes the lifecycle of a ticket.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusOnHold     TicketStatus = "on_hold"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// Priority ranks ticket urgency.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityNormal   Priority = "normal"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// InvoiceStatus tracks an invoice from draft to payment.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusValidated InvoiceStatus = "validated"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
)

// AlertSeverity grades an RMM alert.
type AlertSeverity string

const (
	AlertSeverityInfo     AlertSeverity = "info"
	AlertSeverityWarning  AlertSeverity = "warning"
	AlertSeverityCritical AlertSeverity = "critical"
)

var contractTypes = []ContractType{ContractTypeHoursBank, ContractTypeSubscription, ContractTypeTimeMaterial}

var ticketStatuses = []TicketStatus{
	TicketStatusOpen,
	TicketStatusInProgress,
	TicketStatusOnHold,
	TicketStatusResolved,
	TicketStatusClosed,
}

var priorities = []Priority{PriorityLow, PriorityNormal, PriorityHigh, PriorityCritical}

var invoiceStatuses = []InvoiceStatus{InvoiceStatusDraft, InvoiceStatusValidated, InvoiceStatusSent, InvoiceStatusPaid}

var alertSeverities = []AlertSeverity{AlertSeverityInfo, AlertSeverityWarning, AlertSeverityCritical}

// OpenTicketStatuses are the statuses counted as open work.
var OpenTicketStatuses = []TicketStatus{TicketStatusOpen, TicketStatusInProgress, TicketStatusOnHold}

// Valid reports whether t is a known contract type.
func (t ContractType) Valid() bool {
	for _, known := range contractTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseContractType normalizes value into a known contract type.
func ParseContractType(value string) (ContractType, error) {
	t := ContractType(strings.ToLower(strings.TrimSpace(value)))
	if !t.Valid() {
		return "", apperrors.WithMetadata(
			apperrors.CodeContractTypeInvalid,
			"unknown contract type: "+value,
			map[string]string{"Type": value},
		)
	}
	return t, nil
}

// Valid reports whether s is a known ticket status.
func (s TicketStatus) Valid() bool {
	for _, known := range ticketStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	for _, known := range priorities {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePriority normalizes value into a known priority; empty means normal.
func ParsePriority(value string) (Priority, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return PriorityNormal, nil
	}
	p := Priority(trimmed)
	if !p.Valid() {
		return "", apperrors.New(apperrors.CodeInvalidArgument, "unknown priority: "+value)
	}
	return p, nil
}

// Valid reports whether s is a known invoice status.
func (s InvoiceStatus) Valid() bool {
	return slices.Contains(invoiceStatuses, s)
}

// Valid reports whether s is a known alert severity.
func (s AlertSeverity) Valid() bool {
	return slices.Contains(alertSeverities, s)
}

// ParseAlertSeverity normalizes value into a known severity; empty means warning.
func ParseAlertSeverity(value string) (AlertSeverity, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return AlertSeverityWarning, nil
	}
	s := AlertSeverity(trimmed)
	if !s.Valid() {
		return "", apperrors.New(apperrors.CodeInvalidArgument, "unknown alert severity: "+value)
	}
	return s, nil
}

// PriorityForSeverity maps an alert severity to the priority of its ticket:
// critical alerts open critical tickets, everything else is normal.
func PriorityForSeverity(severity AlertSeverity) Priority {
	if severity == AlertSeverityCritical {
		return PriorityCritical
	}
	return PriorityNormal
}
