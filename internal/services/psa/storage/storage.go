package storage

import (
	"context"
	"time"

	apperrors "github.com/crmrmm/console/internal/platform/errors"
	"github.com/crmrmm/console/internal/services/psa/domain"
)

// ErrNotFound indicates a requested persistence record is missing.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// ClientStore persists client accounts.
type ClientStore interface {
	PutClient(ctx context.Context, client domain.Client) error
	GetClient(ctx context.Context, id string) (domain.Client, error)
}

// ContractStore persists contracts in creation order.
type ContractStore interface {
	PutContract(ctx context.Context, contract domain.Contract) error
	GetContract(ctx context.Context, id string) (domain.Contract, error)
	// FirstContractForClient returns the earliest contract created for the
	// client, or ErrNotFound.
	FirstContractForClient(ctx context.Context, clientID string) (domain.Contract, error)
}

// TicketStore persists tickets.
type TicketStore interface {
	PutTicket(ctx context.Context, ticket domain.Ticket) error
	GetTicket(ctx context.Context, id string) (domain.Ticket, error)
}

// TimeEntryStore persists time entries.
type TimeEntryStore interface {
	PutTimeEntry(ctx context.Context, entry domain.TimeEntry) error
	GetTimeEntry(ctx context.Context, id string) (domain.TimeEntry, error)
}

// InvoiceStore persists invoices in creation order.
type InvoiceStore interface {
	PutInvoice(ctx context.Context, invoice domain.Invoice) error
	GetInvoice(ctx context.Context, id string) (domain.Invoice, error)
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
}

// AlertStore persists RMM alerts.
type AlertStore interface {
	PutAlert(ctx context.Context, alert domain.Alert) error
	GetAlert(ctx context.Context, id string) (domain.Alert, error)
}

// InterventionStore persists scheduled interventions.
type InterventionStore interface {
	PutIntervention(ctx context.Context, intervention domain.Intervention) error
	// ListInterventionsForTechnician returns the technician's interventions
	// ordered by start time.
	ListInterventionsForTechnician(ctx context.Context, technicianID string) ([]domain.Intervention, error)
}

// CountStore answers the aggregate queries behind the dashboard.
type CountStore interface {
	CountClients(ctx context.Context) (int, error)
	CountTicketsWithStatus(ctx context.Context, statuses ...domain.TicketStatus) (int, error)
	// CountAlertsSince counts alerts created at or after since.
	CountAlertsSince(ctx context.Context, since time.Time) (int, error)
	// CountUnpaidInvoices counts invoices in any status but paid.
	CountUnpaidInvoices(ctx context.Context) (int, error)
}

// LedgerStore keeps the append-only outputs of the engine.
type LedgerStore interface {
	AppendHoursEvent(ctx context.Context, event domain.HoursEvent) error
	ListHoursEvents(ctx context.Context) ([]domain.HoursEvent, error)
	AppendNotification(ctx context.Context, message string) error
	ListNotifications(ctx context.Context) ([]string, error)
	AppendPrebilling(ctx context.Context, ticketID string) error
	ListPrebilling(ctx context.Context) ([]string, error)
}

// Repository groups the record stores used inside a unit of work.
type Repository interface {
	ClientStore
	ContractStore
	TicketStore
	TimeEntryStore
	InvoiceStore
	AlertStore
	InterventionStore
	CountStore
	LedgerStore
}

// Store is the composite PSA persistence surface.
type Store interface {
	Repository
	// Transact runs fn against a repository whose writes are committed
	// together, or discarded when fn returns an error.
	Transact(ctx context.Context, fn func(Repository) error) error
	Close() error
}
