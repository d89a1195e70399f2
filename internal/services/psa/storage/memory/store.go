// Package memory provides an in-process PSA store backed by maps.
package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/crmrmm/console/internal/services/psa/domain"
	"github.com/crmrmm/console/internal/services/psa/storage"
)

// Store keeps PSA records in memory. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	state *state
}

// New returns an empty store.
func New() *Store {
	return &Store{state: newState()}
}

type state struct {
	clients       map[string]domain.Client
	contracts     map[string]domain.Contract
	contractOrder []string
	tickets       map[string]domain.Ticket
	entries       map[string]domain.TimeEntry
	invoices      map[string]domain.Invoice
	invoiceOrder  []string
	alerts        map[string]domain.Alert
	interventions map[string]domain.Intervention
	hoursEvents   []domain.HoursEvent
	notifications []string
	prebilling    []string
}

func newState() *state {
	return &state{
		clients:       make(map[string]domain.Client),
		contracts:     make(map[string]domain.Contract),
		tickets:       make(map[string]domain.Ticket),
		entries:       make(map[string]domain.TimeEntry),
		invoices:      make(map[string]domain.Invoice),
		alerts:        make(map[string]domain.Alert),
		interventions: make(map[string]domain.Intervention),
	}
}

func (s *state) clone() *state {
	return &state{
		clients:       maps.Clone(s.clients),
		contracts:     maps.Clone(s.contracts),
		contractOrder: slices.Clone(s.contractOrder),
		tickets:       maps.Clone(s.tickets),
		entries:       maps.Clone(s.entries),
		invoices:      maps.Clone(s.invoices),
		invoiceOrder:  slices.Clone(s.invoiceOrder),
		alerts:        maps.Clone(s.alerts),
		interventions: maps.Clone(s.interventions),
		hoursEvents:   slices.Clone(s.hoursEvents),
		notifications: slices.Clone(s.notifications),
		prebilling:    slices.Clone(s.prebilling),
	}
}

// PutClient stores client, replacing any record with the same ID.
func (s *Store) PutClient(ctx context.Context, client domain.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.PutClient(ctx, client)
}

// GetClient returns the client or storage.ErrNotFound.
func (s *Store) GetClient(ctx context.Context, id string) (domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.GetClient(ctx, id)
}

// PutContract stores contract; first insertion fixes its creation order.
func (s *Store) PutContract(ctx context.Context, contract domain.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.PutContract(ctx, contract)
}

// GetContract returns the contract or storage.ErrNotFound.
func (s *Store) GetContract(ctx context.Context, id string) (domain.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.GetContract(ctx, id)
}

// FirstContractForClient returns the earliest contract stored for clientID.
func (s *Store) FirstContractForClient(ctx context.Context, clientID string) (domain.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.FirstContractForClient(ctx, clientID)
}

// PutTicket stores ticket, replacing any record with the same ID.
func (s *Store) PutTicket(ctx context.Context, ticket domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.PutTicket(ctx, ticket)
}

// GetTicket returns the ticket or storage.ErrNotFound.
func (s *Store) GetTicket(ctx context.Context, id string) (domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.GetTicket(ctx, id)
}

// PutTimeEntry stores entry, replacing any record with the same ID.
func (s *Store) PutTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.PutTimeEntry(ctx, entry)
}

// GetTimeEntry returns the entry or storage.ErrNotFound.
func (s *Store) GetTimeEntry(ctx context.Context, id string) (domain.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.GetTimeEntry(ctx, id)
}

// PutInvoice stores invoice; first insertion fixes its listing order.
func (s *Store) PutInvoice(ctx context.Context, invoice domain.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.PutInvoice(ctx, invoice)
}

// GetInvoice returns the invoice or storage.ErrNotFound.
func (s *Store) GetInvoice(ctx context.Context, id string) (domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.GetInvoice(ctx, id)
}

// ListInvoices returns invoices in creation order.
func (s *Store) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ListInvoices(ctx)
}

// PutAlert stores alert, replacing any record with the same ID.
func (s *Store) PutAlert(ctx context.Context, alert domain.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.PutAlert(ctx, alert)
}

// GetAlert returns the alert or storage.ErrNotFound.
func (s *Store) GetAlert(ctx context.Context, id string) (domain.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.GetAlert(ctx, id)
}

// PutIntervention stores intervention, replacing any record with the same ID.
func (s *Store) PutIntervention(ctx context.Context, intervention domain.Intervention) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.PutIntervention(ctx, intervention)
}

// ListInterventionsForTechnician returns the technician's interventions by start time.
func (s *Store) ListInterventionsForTechnician(ctx context.Context, technicianID string) ([]domain.Intervention, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ListInterventionsForTechnician(ctx, technicianID)
}

// CountClients returns the number of clients.
func (s *Store) CountClients(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CountClients(ctx)
}

// CountTicketsWithStatus counts tickets in any of statuses.
func (s *Store) CountTicketsWithStatus(ctx context.Context, statuses ...domain.TicketStatus) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CountTicketsWithStatus(ctx, statuses...)
}

// CountAlertsSince counts alerts created at or after since.
func (s *Store) CountAlertsSince(ctx context.Context, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CountAlertsSince(ctx, since)
}

// CountUnpaidInvoices counts invoices not yet paid.
func (s *Store) CountUnpaidInvoices(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CountUnpaidInvoices(ctx)
}

// AppendHoursEvent records an hours-bank consumption.
func (s *Store) AppendHoursEvent(ctx context.Context, event domain.HoursEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.AppendHoursEvent(ctx, event)
}

// ListHoursEvents returns consumptions in append order.
func (s *Store) ListHoursEvents(ctx context.Context) ([]domain.HoursEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ListHoursEvents(ctx)
}

// AppendNotification records a notification message.
func (s *Store) AppendNotification(ctx context.Context, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.AppendNotification(ctx, message)
}

// ListNotifications returns notifications in append order.
func (s *Store) ListNotifications(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ListNotifications(ctx)
}

// AppendPrebilling queues a ticket ID for prebilling.
func (s *Store) AppendPrebilling(ctx context.Context, ticketID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.AppendPrebilling(ctx, ticketID)
}

// ListPrebilling returns the prebilling queue in append order.
func (s *Store) ListPrebilling(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ListPrebilling(ctx)
}

// Transact applies fn to a copy of the store state and keeps the copy only
// when fn succeeds.
func (s *Store) Transact(ctx context.Context, fn func(storage.Repository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	draft := s.state.clone()
	if err := fn(draft); err != nil {
		return err
	}
	s.state = draft
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

func (s *state) PutClient(ctx context.Context, client domain.Client) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.clients[client.ID] = client
	return nil
}

func (s *state) GetClient(ctx context.Context, id string) (domain.Client, error) {
	if err := ctx.Err(); err != nil {
		return domain.Client{}, err
	}
	client, ok := s.clients[id]
	if !ok {
		return domain.Client{}, storage.ErrNotFound
	}
	return client, nil
}

func (s *state) PutContract(ctx context.Context, contract domain.Contract) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, exists := s.contracts[contract.ID]; !exists {
		s.contractOrder = append(s.contractOrder, contract.ID)
	}
	s.contracts[contract.ID] = contract
	return nil
}

func (s *state) GetContract(ctx context.Context, id string) (domain.Contract, error) {
	if err := ctx.Err(); err != nil {
		return domain.Contract{}, err
	}
	contract, ok := s.contracts[id]
	if !ok {
		return domain.Contract{}, storage.ErrNotFound
	}
	return contract, nil
}

func (s *state) FirstContractForClient(ctx context.Context, clientID string) (domain.Contract, error) {
	if err := ctx.Err(); err != nil {
		return domain.Contract{}, err
	}
	for _, id := range s.contractOrder {
		if contract := s.contracts[id]; contract.ClientID == clientID {
			return contract, nil
		}
	}
	return domain.Contract{}, storage.ErrNotFound
}

func (s *state) PutTicket(ctx context.Context, ticket domain.Ticket) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.tickets[ticket.ID] = ticket
	return nil
}

func (s *state) GetTicket(ctx context.Context, id string) (domain.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return domain.Ticket{}, err
	}
	ticket, ok := s.tickets[id]
	if !ok {
		return domain.Ticket{}, storage.ErrNotFound
	}
	return ticket, nil
}

func (s *state) PutTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.entries[entry.ID] = entry
	return nil
}

func (s *state) GetTimeEntry(ctx context.Context, id string) (domain.TimeEntry, error) {
	if err := ctx.Err(); err != nil {
		return domain.TimeEntry{}, err
	}
	entry, ok := s.entries[id]
	if !ok {
		return domain.TimeEntry{}, storage.ErrNotFound
	}
	return entry, nil
}

func (s *state) PutInvoice(ctx context.Context, invoice domain.Invoice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, exists := s.invoices[invoice.ID]; !exists {
		s.invoiceOrder = append(s.invoiceOrder, invoice.ID)
	}
	s.invoices[invoice.ID] = invoice
	return nil
}

func (s *state) GetInvoice(ctx context.Context, id string) (domain.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return domain.Invoice{}, err
	}
	invoice, ok := s.invoices[id]
	if !ok {
		return domain.Invoice{}, storage.ErrNotFound
	}
	return invoice, nil
}

func (s *state) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	invoices := make([]domain.Invoice, 0, len(s.invoiceOrder))
	for _, id := range s.invoiceOrder {
		invoices = append(invoices, s.invoices[id])
	}
	return invoices, nil
}

func (s *state) PutAlert(ctx context.Context, alert domain.Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.alerts[alert.ID] = alert
	return nil
}

func (s *state) GetAlert(ctx context.Context, id string) (domain.Alert, error) {
	if err := ctx.Err(); err != nil {
		return domain.Alert{}, err
	}
	alert, ok := s.alerts[id]
	if !ok {
		return domain.Alert{}, storage.ErrNotFound
	}
	return alert, nil
}

func (s *state) PutIntervention(ctx context.Context, intervention domain.Intervention) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.interventions[intervention.ID] = intervention
	return nil
}

func (s *state) ListInterventionsForTechnician(ctx context.Context, technicianID string) ([]domain.Intervention, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []domain.Intervention
	for _, intervention := range s.interventions {
		if intervention.TechnicianID == technicianID {
			out = append(out, intervention)
		}
	}
	slices.SortFunc(out, func(a, b domain.Intervention) int {
		if c := a.StartsAt.Compare(b.StartsAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (s *state) CountClients(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(s.clients), nil
}

func (s *state) CountTicketsWithStatus(ctx context.Context, statuses ...domain.TicketStatus) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count := 0
	for _, ticket := range s.tickets {
		if slices.Contains(statuses, ticket.Status) {
			count++
		}
	}
	return count, nil
}

func (s *state) CountAlertsSince(ctx context.Context, since time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count := 0
	for _, alert := range s.alerts {
		if !alert.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (s *state) CountUnpaidInvoices(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count := 0
	for _, invoice := range s.invoices {
		if invoice.Status != domain.InvoiceStatusPaid {
			count++
		}
	}
	return count, nil
}

func (s *state) AppendHoursEvent(ctx context.Context, event domain.HoursEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.hoursEvents = append(s.hoursEvents, event)
	return nil
}

func (s *state) ListHoursEvents(ctx context.Context) ([]domain.HoursEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.hoursEvents), nil
}

func (s *state) AppendNotification(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.notifications = append(s.notifications, message)
	return nil
}

func (s *state) ListNotifications(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.notifications), nil
}

func (s *state) AppendPrebilling(ctx context.Context, ticketID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.prebilling = append(s.prebilling, ticketID)
	return nil
}

func (s *state) ListPrebilling(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.prebilling), nil
}

var (
	_ storage.Store      = (*Store)(nil)
	_ storage.Repository = (*state)(nil)
)
