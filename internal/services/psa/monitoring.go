package psa

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/crmrmm/console/internal/platform/errors"
	"github.com/crmrmm/console/internal/services/psa/domain"
	"github.com/crmrmm/console/internal/services/psa/storage"
)

// RaiseAlertInput describes an RMM alert reported for a client machine.
type RaiseAlertInput struct {
	ClientID  string
	MachineID string
	// Severity defaults to warning.
	Severity domain.AlertSeverity
	Title    string
	Details  string
	// OpenTicket opens a ticket for the alert, prioritized by severity.
	OpenTicket bool
}

// RaiseAlert records an alert and, when asked, opens its ticket in the same
// unit of work.
func (e *Engine) RaiseAlert(ctx context.Context, input RaiseAlertInput) (domain.Alert, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domain.Alert{}, apperrors.New(apperrors.CodeInvalidArgument, "alert title is required")
	}
	severity, err := domain.ParseAlertSeverity(string(input.Severity))
	if err != nil {
		return domain.Alert{}, err
	}
	alertID, err := e.newID(domain.AlertIDPrefix)
	if err != nil {
		return domain.Alert{}, fmt.Errorf("generate alert id: %w", err)
	}
	now := e.now().UTC()
	alert := domain.Alert{
		ID:        alertID,
		ClientID:  input.ClientID,
		MachineID: input.MachineID,
		Severity:  severity,
		Title:     title,
		Details:   input.Details,
		CreatedAt: now,
	}

	var ticket domain.Ticket
	if input.OpenTicket {
		ticketID, err := e.newID(domain.TicketIDPrefix)
		if err != nil {
			return domain.Alert{}, fmt.Errorf("generate ticket id: %w", err)
		}
		ticket = domain.Ticket{
			ID:          ticketID,
			ClientID:    input.ClientID,
			Title:       domain.AlertTicketTitle(title),
			Description: domain.AlertTicketDescription(title, input.Details),
			MachineID:   input.MachineID,
			Status:      domain.TicketStatusOpen,
			Priority:    domain.PriorityForSeverity(severity),
			CreatedAt:   now,
		}
		alert.TicketID = ticket.ID
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	err = e.store.Transact(ctx, func(repo storage.Repository) error {
		if _, err := requireClient(ctx, repo, input.ClientID); err != nil {
			return err
		}
		if input.OpenTicket {
			if err := repo.PutTicket(ctx, ticket); err != nil {
				return err
			}
		}
		return repo.PutAlert(ctx, alert)
	})
	if err != nil {
		return domain.Alert{}, err
	}
	return alert, nil
}

// Alert returns an alert by ID.
func (e *Engine) Alert(ctx context.Context, alertID string) (domain.Alert, error) {
	alert, err := e.store.GetAlert(ctx, alertID)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.Alert{}, apperrors.Wrap(apperrors.CodeNotFound, "unknown alert: "+alertID, err)
	}
	return alert, err
}

// ScheduleInterventionInput describes a technician visit on a ticket.
type ScheduleInterventionInput struct {
	TicketID     string
	TechnicianID string
	StartsAt     time.Time
	EndsAt       time.Time
	Remote       bool
}

// ScheduleIntervention books a technician on a ticket. The window must end
// strictly after it starts.
func (e *Engine) ScheduleIntervention(ctx context.Context, input ScheduleInterventionInput) (domain.Intervention, error) {
	if !input.EndsAt.After(input.StartsAt) {
		return domain.Intervention{}, apperrors.New(
			apperrors.CodeInterventionWindowInvalid,
			"intervention must end after it starts",
		)
	}
	interventionID, err := e.newID(domain.InterventionIDPrefix)
	if err != nil {
		return domain.Intervention{}, fmt.Errorf("generate intervention id: %w", err)
	}
	intervention := domain.Intervention{
		ID:           interventionID,
		TicketID:     input.TicketID,
		TechnicianID: input.TechnicianID,
		StartsAt:     input.StartsAt.UTC(),
		EndsAt:       input.EndsAt.UTC(),
		Remote:       input.Remote,
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	err = e.store.Transact(ctx, func(repo storage.Repository) error {
		if _, err := requireTicket(ctx, repo, input.TicketID); err != nil {
			return err
		}
		return repo.PutIntervention(ctx, intervention)
	})
	if err != nil {
		return domain.Intervention{}, err
	}
	return intervention, nil
}

// TechnicianInterventions lists a technician's interventions by start time.
func (e *Engine) TechnicianInterventions(ctx context.Context, technicianID string) ([]domain.Intervention, error) {
	return e.store.ListInterventionsForTechnician(ctx, technicianID)
}

// DashboardCounts summarizes clients, open tickets, alerts raised within
// domain.AlertWindow and invoices not yet paid.
func (e *Engine) DashboardCounts(ctx context.Context) (domain.DashboardCounts, error) {
	var (
		counts domain.DashboardCounts
		err    error
	)
	if counts.Clients, err = e.store.CountClients(ctx); err != nil {
		return domain.DashboardCounts{}, err
	}
	if counts.OpenTickets, err = e.store.CountTicketsWithStatus(ctx, domain.OpenTicketStatuses...); err != nil {
		return domain.DashboardCounts{}, err
	}
	if counts.Alerts24h, err = e.store.CountAlertsSince(ctx, e.now().UTC().Add(-domain.AlertWindow)); err != nil {
		return domain.DashboardCounts{}, err
	}
	if counts.UnpaidInvoices, err = e.store.CountUnpaidInvoices(ctx); err != nil {
		return domain.DashboardCounts{}, err
	}
	return counts, nil
}
