package psa

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	apperrors "github.com/crmrmm/console/internal/platform/errors"
	"github.com/crmrmm/console/internal/platform/id"
	"github.com/crmrmm/console/internal/services/psa/domain"
	"github.com/crmrmm/console/internal/services/psa/storage"
)

// Engine applies PSA business rules on top of a store.
type Engine struct {
	mu    sync.Mutex
	store storage.Store
	now   func() time.Time
	newID func(prefix string) (string, error)
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithIDGenerator overrides record ID generation.
func WithIDGenerator(newID func(prefix string) (string, error)) Option {
	return func(e *Engine) {
		if newID != nil {
			e.newID = newID
		}
	}
}

// NewEngine builds an engine over store.
func NewEngine(store storage.Store, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, errors.New("psa store is required")
	}
	engine := &Engine{
		store: store,
		now:   time.Now,
		newID: id.New,
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine, nil
}

// CreateContractInput describes a new contract.
type CreateContractInput struct {
	ClientID       string
	Type           domain.ContractType
	HourlyRate     float64
	TotalHours     float64
	RemainingHours float64
	// AlertThresholdHours defaults to domain.DefaultAlertThresholdHours when nil.
	AlertThresholdHours *float64
	MonthlyPrice        float64
	MonthlyUnits        int
}

// TicketOptions carries the optional ticket fields.
type TicketOptions struct {
	MachineID    string
	TechnicianID string
	// Priority defaults to normal.
	Priority domain.Priority
}

// CreateClient registers a client. Name is required; email is optional.
func (e *Engine) CreateClient(ctx context.Context, name, email string) (domain.Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Client{}, apperrors.New(apperrors.CodeClientNameEmpty, "client name is required")
	}
	clientID, err := e.newID(domain.ClientIDPrefix)
	if err != nil {
		return domain.Client{}, fmt.Errorf("generate client id: %w", err)
	}
	client := domain.Client{
		ID:        clientID,
		Name:      name,
		Email:     strings.TrimSpace(email),
		CreatedAt: e.now().UTC(),
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.store.PutClient(ctx, client); err != nil {
		return domain.Client{}, err
	}
	return client, nil
}

// CreateContract attaches a contract to an existing client.
func (e *Engine) CreateContract(ctx context.Context, input CreateContractInput) (domain.Contract, error) {
	if !input.Type.Valid() {
		return domain.Contract{}, apperrors.WithMetadata(
			apperrors.CodeContractTypeInvalid,
			"unknown contract type: "+string(input.Type),
			map[string]string{"Type": string(input.Type)},
		)
	}
	threshold := domain.DefaultAlertThresholdHours
	if input.AlertThresholdHours != nil {
		threshold = *input.AlertThresholdHours
	}
	contractID, err := e.newID(domain.ContractIDPrefix)
	if err != nil {
		return domain.Contract{}, fmt.Errorf("generate contract id: %w", err)
	}
	contract := domain.Contract{
		ID:                  contractID,
		ClientID:            input.ClientID,
		Type:                input.Type,
		HourlyRate:          input.HourlyRate,
		TotalHours:          input.TotalHours,
		RemainingHours:      input.RemainingHours,
		AlertThresholdHours: threshold,
		MonthlyPrice:        input.MonthlyPrice,
		MonthlyUnits:        input.MonthlyUnits,
		CreatedAt:           e.now().UTC(),
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	err = e.store.Transact(ctx, func(repo storage.Repository) error {
		if _, err := requireClient(ctx, repo, input.ClientID); err != nil {
			return err
		}
		return repo.PutContract(ctx, contract)
	})
	if err != nil {
		return domain.Contract{}, err
	}
	return contract, nil
}

// CreateTicket opens a ticket for an existing client.
func (e *Engine) CreateTicket(ctx context.Context, clientID, title, description string, opts TicketOptions) (domain.Ticket, error) {
	priority := opts.Priority
	if priority == "" {
		priority = domain.PriorityNormal
	}
	if !priority.Valid() {
		return domain.Ticket{}, apperrors.New(apperrors.CodeInvalidArgument, "unknown priority: "+string(priority))
	}
	ticketID, err := e.newID(domain.TicketIDPrefix)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("generate ticket id: %w", err)
	}
	ticket := domain.Ticket{
		ID:           ticketID,
		ClientID:     clientID,
		Title:        title,
		Description:  description,
		MachineID:    opts.MachineID,
		TechnicianID: opts.TechnicianID,
		Status:       domain.TicketStatusOpen,
		Priority:     priority,
		CreatedAt:    e.now().UTC(),
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	err = e.store.Transact(ctx, func(repo storage.Repository) error {
		if _, err := requireClient(ctx, repo, clientID); err != nil {
			return err
		}
		return repo.PutTicket(ctx, ticket)
	})
	if err != nil {
		return domain.Ticket{}, err
	}
	return ticket, nil
}

// CreateTicketFromAlert opens a ticket for an RMM alert raised on a machine.
// Priority defaults to high.
func (e *Engine) CreateTicketFromAlert(ctx context.Context, clientID, machineID, alertName, details string, priority domain.Priority) (domain.Ticket, error) {
	if priority == "" {
		priority = domain.PriorityHigh
	}
	return e.CreateTicket(ctx, clientID, domain.AlertTicketTitle(alertName), details, TicketOptions{
		MachineID: machineID,
		Priority:  priority,
	})
}

// AddTimeEntry records unvalidated technician time on a ticket.
func (e *Engine) AddTimeEntry(ctx context.Context, ticketID, technicianID string, minutes int, billable bool) (domain.TimeEntry, error) {
	if minutes <= 0 {
		return domain.TimeEntry{}, apperrors.New(apperrors.CodeTimeEntryNonPositive, "minutes must be positive")
	}
	entryID, err := e.newID(domain.TimeEntryIDPrefix)
	if err != nil {
		return domain.TimeEntry{}, fmt.Errorf("generate time entry id: %w", err)
	}
	entry := domain.TimeEntry{
		ID:           entryID,
		TicketID:     ticketID,
		TechnicianID: technicianID,
		Minutes:      minutes,
		Billable:     billable,
		CreatedAt:    e.now().UTC(),
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	err = e.store.Transact(ctx, func(repo storage.Repository) error {
		if _, err := requireTicket(ctx, repo, ticketID); err != nil {
			return err
		}
		return repo.PutTimeEntry(ctx, entry)
	})
	if err != nil {
		return domain.TimeEntry{}, err
	}
	return entry, nil
}

// ValidateTimeEntry applies an entry to its ticket and the client's contract.
// Validating an already validated entry returns it unchanged.
func (e *Engine) ValidateTimeEntry(ctx context.Context, entryID string) (domain.TimeEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var result domain.TimeEntry
	err := e.store.Transact(ctx, func(repo storage.Repository) error {
		entry, err := requireTimeEntry(ctx, repo, entryID)
		if err != nil {
			return err
		}
		if entry.Validated {
			result = entry
			return nil
		}
		ticket, err := requireTicket(ctx, repo, entry.TicketID)
		if err != nil {
			return err
		}

		ticket.TotalMinutes += entry.Minutes
		if entry.Billable {
			ticket.BillableMinutes += entry.Minutes
			contract, found, err := activeContract(ctx, repo, ticket.ClientID)
			if err != nil {
				return err
			}
			hours := float64(entry.Minutes) / 60.0
			if found && contract.Type == domain.ContractTypeHoursBank {
				if err := consumeHours(ctx, repo, contract, hours); err != nil {
					return err
				}
			} else {
				rate := domain.DefaultHourlyRate
				if found {
					rate = contract.HourlyRate
				}
				ticket.EstimatedBillableAmount += rate * hours
			}
		}
		if err := repo.PutTicket(ctx, ticket); err != nil {
			return err
		}

		entry.Validated = true
		if err := repo.PutTimeEntry(ctx, entry); err != nil {
			return err
		}
		result = entry
		return nil
	})
	if err != nil {
		return domain.TimeEntry{}, err
	}
	return result, nil
}

// CloseTicket closes a ticket and queues it for prebilling when it carries
// billable time not covered by an hours bank.
func (e *Engine) CloseTicket(ctx context.Context, ticketID string) (domain.Ticket, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var result domain.Ticket
	err := e.store.Transact(ctx, func(repo storage.Repository) error {
		ticket, err := requireTicket(ctx, repo, ticketID)
		if err != nil {
			return err
		}
		ticket.Status = domain.TicketStatusClosed

		contract, found, err := activeContract(ctx, repo, ticket.ClientID)
		if err != nil {
			return err
		}
		coveredByBank := found && contract.Type == domain.ContractTypeHoursBank
		if ticket.BillableMinutes > 0 && !coveredByBank {
			ticket.PrebillingQueued = true
			if err := repo.AppendPrebilling(ctx, ticket.ID); err != nil {
				return err
			}
		}
		if err := repo.PutTicket(ctx, ticket); err != nil {
			return err
		}
		result = ticket
		return nil
	})
	if err != nil {
		return domain.Ticket{}, err
	}
	return result, nil
}

// Client returns a client by ID.
func (e *Engine) Client(ctx context.Context, clientID string) (domain.Client, error) {
	return requireClient(ctx, e.store, clientID)
}

// Contract returns a contract by ID.
func (e *Engine) Contract(ctx context.Context, contractID string) (domain.Contract, error) {
	return requireContract(ctx, e.store, contractID)
}

// Ticket returns a ticket by ID.
func (e *Engine) Ticket(ctx context.Context, ticketID string) (domain.Ticket, error) {
	return requireTicket(ctx, e.store, ticketID)
}

// TimeEntry returns a time entry by ID.
func (e *Engine) TimeEntry(ctx context.Context, entryID string) (domain.TimeEntry, error) {
	return requireTimeEntry(ctx, e.store, entryID)
}

// HoursHistory returns every hours-bank consumption in order.
func (e *Engine) HoursHistory(ctx context.Context) ([]domain.HoursEvent, error) {
	return e.store.ListHoursEvents(ctx)
}

// Notifications returns threshold notifications in order.
func (e *Engine) Notifications(ctx context.Context) ([]string, error) {
	return e.store.ListNotifications(ctx)
}

// PrebillingQueue returns queued ticket IDs in order.
func (e *Engine) PrebillingQueue(ctx context.Context) ([]string, error) {
	return e.store.ListPrebilling(ctx)
}

// consumeHours deducts hours from an hours-bank contract, floored at zero,
// and notifies once the balance reaches the alert threshold.
func consumeHours(ctx context.Context, repo storage.Repository, contract domain.Contract, hours float64) error {
	before := contract.RemainingHours
	contract.RemainingHours = math.Max(0, before-hours)
	if err := repo.PutContract(ctx, contract); err != nil {
		return err
	}
	if err := repo.AppendHoursEvent(ctx, domain.HoursEvent{
		ClientID:      contract.ClientID,
		ContractID:    contract.ID,
		BeforeHours:   before,
		ConsumedHours: hours,
		AfterHours:    contract.RemainingHours,
	}); err != nil {
		return err
	}
	if contract.RemainingHours <= contract.AlertThresholdHours {
		return repo.AppendNotification(ctx, domain.ThresholdNotification(contract))
	}
	return nil
}

// activeContract returns the client's first contract, if any.
func activeContract(ctx context.Context, repo storage.ContractStore, clientID string) (domain.Contract, bool, error) {
	contract, err := repo.FirstContractForClient(ctx, clientID)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.Contract{}, false, nil
	}
	if err != nil {
		return domain.Contract{}, false, err
	}
	return contract, true, nil
}

func requireClient(ctx context.Context, repo storage.ClientStore, clientID string) (domain.Client, error) {
	client, err := repo.GetClient(ctx, clientID)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.Client{}, apperrors.WrapWithMetadata(
			apperrors.CodeClientNotFound,
			"unknown client: "+clientID,
			map[string]string{"ClientID": clientID},
			err,
		)
	}
	return client, err
}

func requireContract(ctx context.Context, repo storage.ContractStore, contractID string) (domain.Contract, error) {
	contract, err := repo.GetContract(ctx, contractID)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.Contract{}, apperrors.WrapWithMetadata(
			apperrors.CodeContractNotFound,
			"unknown contract: "+contractID,
			map[string]string{"ContractID": contractID},
			err,
		)
	}
	return contract, err
}

func requireTicket(ctx context.Context, repo storage.TicketStore, ticketID string) (domain.Ticket, error) {
	ticket, err := repo.GetTicket(ctx, ticketID)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.Ticket{}, apperrors.WrapWithMetadata(
			apperrors.CodeTicketNotFound,
			"unknown ticket: "+ticketID,
			map[string]string{"TicketID": ticketID},
			err,
		)
	}
	return ticket, err
}

func requireTimeEntry(ctx context.Context, repo storage.TimeEntryStore, entryID string) (domain.TimeEntry, error) {
	entry, err := repo.GetTimeEntry(ctx, entryID)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.TimeEntry{}, apperrors.WrapWithMetadata(
			apperrors.CodeEntryNotFound,
			"unknown time entry: "+entryID,
			map[string]string{"EntryID": entryID},
			err,
		)
	}
	return entry, err
}
