// Package seed runs the PSA demo scenario: an hours-bank client that crosses
// its alert threshold and a time-and-material client whose closed ticket lands
// in the prebilling queue and gets a draft invoice.
package seed

import (
	"context"
	"fmt"
	"io"

	"github.com/crmrmm/console/internal/services/psa"
	"github.com/crmrmm/console/internal/services/psa/domain"
)

// ContractBalance reports the remaining hours of one contract.
type ContractBalance struct {
	ClientName     string
	ContractID     string
	Type           domain.ContractType
	TotalHours     float64
	RemainingHours float64
}

// Summary is the observable outcome of the scenario.
type Summary struct {
	Clients         []domain.Client
	Tickets         []domain.Ticket
	Balances        []ContractBalance
	HoursHistory    []domain.HoursEvent
	Notifications   []string
	PrebillingQueue []string
	Invoices        []domain.Invoice
	Dashboard       domain.DashboardCounts
}

type ticketWork struct {
	minutes  int
	billable bool
}

// Run executes the scenario against engine and prints a summary to out.
func Run(ctx context.Context, engine *psa.Engine, out io.Writer) (Summary, error) {
	if engine == nil {
		return Summary{}, fmt.Errorf("psa engine is required")
	}
	if out == nil {
		out = io.Discard
	}

	acme, err := engine.CreateClient(ctx, "ACME", "support@acme.example")
	if err != nil {
		return Summary{}, fmt.Errorf("create client ACME: %w", err)
	}
	beta, err := engine.CreateClient(ctx, "Beta", "it@beta.example")
	if err != nil {
		return Summary{}, fmt.Errorf("create client Beta: %w", err)
	}

	threshold := 2.0
	acmeContract, err := engine.CreateContract(ctx, psa.CreateContractInput{
		ClientID:            acme.ID,
		Type:                domain.ContractTypeHoursBank,
		HourlyRate:          90,
		TotalHours:          10,
		RemainingHours:      10,
		AlertThresholdHours: &threshold,
	})
	if err != nil {
		return Summary{}, fmt.Errorf("create ACME contract: %w", err)
	}
	betaContract, err := engine.CreateContract(ctx, psa.CreateContractInput{
		ClientID:   beta.ID,
		Type:       domain.ContractTypeTimeMaterial,
		HourlyRate: 120,
	})
	if err != nil {
		return Summary{}, fmt.Errorf("create Beta contract: %w", err)
	}

	printer, err := engine.CreateTicket(ctx, acme.ID, "Imprimante hors ligne", "L'imprimante du 2e étage ne répond plus.", psa.TicketOptions{
		TechnicianID: "tech_alice",
	})
	if err != nil {
		return Summary{}, fmt.Errorf("create printer ticket: %w", err)
	}
	alert, err := engine.CreateTicketFromAlert(ctx, acme.ID, "mach_acme_srv01", "CPU High", "CPU > 95% pendant 5 minutes", domain.PriorityCritical)
	if err != nil {
		return Summary{}, fmt.Errorf("create alert ticket: %w", err)
	}
	vpn, err := engine.CreateTicket(ctx, beta.ID, "Installation VPN", "Installer le client VPN sur 3 postes.", psa.TicketOptions{
		TechnicianID: "tech_bob",
		Priority:     domain.PriorityHigh,
	})
	if err != nil {
		return Summary{}, fmt.Errorf("create VPN ticket: %w", err)
	}

	work := []struct {
		ticket     domain.Ticket
		technician string
		entries    []ticketWork
	}{
		{ticket: printer, technician: "tech_alice", entries: []ticketWork{{minutes: 120, billable: true}}},
		{ticket: alert, technician: "tech_alice", entries: []ticketWork{{minutes: 390, billable: true}, {minutes: 20, billable: false}}},
		{ticket: vpn, technician: "tech_bob", entries: []ticketWork{{minutes: 90, billable: true}, {minutes: 15, billable: false}}},
	}
	var entryIDs []string
	for _, item := range work {
		for _, w := range item.entries {
			entry, err := engine.AddTimeEntry(ctx, item.ticket.ID, item.technician, w.minutes, w.billable)
			if err != nil {
				return Summary{}, fmt.Errorf("add time to %s: %w", item.ticket.ID, err)
			}
			if _, err := engine.ValidateTimeEntry(ctx, entry.ID); err != nil {
				return Summary{}, fmt.Errorf("validate %s: %w", entry.ID, err)
			}
			entryIDs = append(entryIDs, entry.ID)
		}
	}
	// Hours-bank time and non-billable entries yield no invoice.
	for _, entryID := range entryIDs {
		if _, _, err := engine.InvoiceTimeEntry(ctx, entryID); err != nil {
			return Summary{}, fmt.Errorf("invoice %s: %w", entryID, err)
		}
	}
	if _, err := engine.RaiseAlert(ctx, psa.RaiseAlertInput{
		ClientID:  beta.ID,
		MachineID: "mach_beta_pc07",
		Severity:  domain.AlertSeverityInfo,
		Title:     "Disque C: 85%",
	}); err != nil {
		return Summary{}, fmt.Errorf("raise disk alert: %w", err)
	}

	summary := Summary{Clients: []domain.Client{acme, beta}}
	for _, ticket := range []domain.Ticket{printer, alert, vpn} {
		closed, err := engine.CloseTicket(ctx, ticket.ID)
		if err != nil {
			return Summary{}, fmt.Errorf("close %s: %w", ticket.ID, err)
		}
		summary.Tickets = append(summary.Tickets, closed)
	}

	names := map[string]string{acme.ID: acme.Name, beta.ID: beta.Name}
	for _, contractID := range []string{acmeContract.ID, betaContract.ID} {
		contract, err := engine.Contract(ctx, contractID)
		if err != nil {
			return Summary{}, fmt.Errorf("load contract %s: %w", contractID, err)
		}
		summary.Balances = append(summary.Balances, ContractBalance{
			ClientName:     names[contract.ClientID],
			ContractID:     contract.ID,
			Type:           contract.Type,
			TotalHours:     contract.TotalHours,
			RemainingHours: contract.RemainingHours,
		})
	}
	if summary.HoursHistory, err = engine.HoursHistory(ctx); err != nil {
		return Summary{}, fmt.Errorf("load hours history: %w", err)
	}
	if summary.Notifications, err = engine.Notifications(ctx); err != nil {
		return Summary{}, fmt.Errorf("load notifications: %w", err)
	}
	if summary.PrebillingQueue, err = engine.PrebillingQueue(ctx); err != nil {
		return Summary{}, fmt.Errorf("load prebilling queue: %w", err)
	}
	if summary.Invoices, err = engine.Invoices(ctx); err != nil {
		return Summary{}, fmt.Errorf("load invoices: %w", err)
	}
	if summary.Dashboard, err = engine.DashboardCounts(ctx); err != nil {
		return Summary{}, fmt.Errorf("load dashboard counts: %w", err)
	}

	if err := writeSummary(out, summary); err != nil {
		return Summary{}, err
	}
	return summary, nil
}

func writeSummary(out io.Writer, summary Summary) error {
	w := &errWriter{w: out}
	w.printf("Contrats:\n")
	for _, balance := range summary.Balances {
		if balance.Type == domain.ContractTypeHoursBank {
			w.printf("  %s %s (%s): %.2fh restantes sur %.2fh\n",
				balance.ClientName, balance.ContractID, balance.Type, balance.RemainingHours, balance.TotalHours)
			continue
		}
		w.printf("  %s %s (%s)\n", balance.ClientName, balance.ContractID, balance.Type)
	}
	w.printf("Tickets:\n")
	for _, ticket := range summary.Tickets {
		w.printf("  %s [%s/%s] %s: %d min, %d min facturables, %.2f estimés\n",
			ticket.ID, ticket.Status, ticket.Priority, ticket.Title,
			ticket.TotalMinutes, ticket.BillableMinutes, ticket.EstimatedBillableAmount)
	}
	w.printf("Notifications:\n")
	for _, message := range summary.Notifications {
		w.printf("  %s\n", message)
	}
	w.printf("Préfacturation:\n")
	for _, ticketID := range summary.PrebillingQueue {
		w.printf("  %s\n", ticketID)
	}
	w.printf("Factures:\n")
	for _, invoice := range summary.Invoices {
		w.printf("  %s [%s] %.2f %s\n", invoice.ID, invoice.Status, invoice.Amount, invoice.Description)
	}
	d := summary.Dashboard
	w.printf("Tableau de bord: %d clients, %d tickets ouverts, %d alertes 24h, %d factures impayées\n",
		d.Clients, d.OpenTickets, d.Alerts24h, d.UnpaidInvoices)
	if w.err != nil {
		return fmt.Errorf("write summary: %w", w.err)
	}
	return nil
}

// errWriter keeps the first write error so printing stays linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
