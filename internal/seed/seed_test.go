package seed

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/crmrmm/console/internal/services/psa"
	"github.com/crmrmm/console/internal/services/psa/domain"
	"github.com/crmrmm/console/internal/services/psa/storage/memory"
)

func newEngine(t *testing.T) *psa.Engine {
	t.Helper()
	engine, err := psa.NewEngine(memory.New())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestRunScenario(t *testing.T) {
	var out bytes.Buffer
	summary, err := Run(context.Background(), newEngine(t), &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(summary.Balances) != 2 {
		t.Fatalf("balances = %d, want 2", len(summary.Balances))
	}
	acme := summary.Balances[0]
	if acme.ClientName != "ACME" || acme.Type != domain.ContractTypeHoursBank {
		t.Fatalf("first balance = %+v", acme)
	}
	// 10h - 2h - 6.5h
	if acme.RemainingHours != 1.5 {
		t.Fatalf("ACME remaining = %v, want 1.5", acme.RemainingHours)
	}
	if len(summary.HoursHistory) != 2 {
		t.Fatalf("hours history = %d, want 2", len(summary.HoursHistory))
	}

	wantNotification := "Alerte: contrat " + acme.ContractID + " du client " + summary.Clients[0].ID + " sous seuil (1.50h restantes)."
	if diff := cmp.Diff([]string{wantNotification}, summary.Notifications); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}

	vpn := summary.Tickets[2]
	if diff := cmp.Diff([]string{vpn.ID}, summary.PrebillingQueue); diff != "" {
		t.Fatalf("prebilling mismatch (-want +got):\n%s", diff)
	}
	if vpn.EstimatedBillableAmount != 180 {
		t.Fatalf("VPN estimate = %v, want 180", vpn.EstimatedBillableAmount)
	}
	if vpn.TotalMinutes != 105 || vpn.BillableMinutes != 90 {
		t.Fatalf("VPN minutes = %d/%d, want 105/90", vpn.TotalMinutes, vpn.BillableMinutes)
	}
	for _, ticket := range summary.Tickets {
		if ticket.Status != domain.TicketStatusClosed {
			t.Fatalf("ticket %s status = %s, want closed", ticket.ID, ticket.Status)
		}
	}
	if alert := summary.Tickets[1]; alert.Title != "Alerte RMM: CPU High" || alert.Priority != domain.PriorityCritical {
		t.Fatalf("alert ticket = %+v", alert)
	}

	if len(summary.Invoices) != 1 {
		t.Fatalf("invoices = %+v, want only the VPN time", summary.Invoices)
	}
	invoice := summary.Invoices[0]
	if invoice.Amount != 180 || invoice.ClientID != summary.Clients[1].ID || invoice.Status != domain.InvoiceStatusDraft {
		t.Fatalf("invoice = %+v", invoice)
	}
	wantCounts := domain.DashboardCounts{Clients: 2, OpenTickets: 0, Alerts24h: 1, UnpaidInvoices: 1}
	if diff := cmp.Diff(wantCounts, summary.Dashboard); diff != "" {
		t.Fatalf("dashboard mismatch (-want +got):\n%s", diff)
	}

	printed := out.String()
	for _, want := range []string{
		"1.50h restantes sur 10.00h",
		wantNotification,
		"Préfacturation:\n  " + vpn.ID,
		"180.00 Facturation automatique ticket #" + vpn.ID,
		"1 alertes 24h, 1 factures impayées",
	} {
		if !strings.Contains(printed, want) {
			t.Fatalf("output missing %q:\n%s", want, printed)
		}
	}
}

func TestRunRequiresEngine(t *testing.T) {
	if _, err := Run(context.Background(), nil, nil); err == nil {
		t.Fatal("expected error for nil engine")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRunReportsWriteError(t *testing.T) {
	_, err := Run(context.Background(), newEngine(t), failingWriter{})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("err = %v, want write error", err)
	}
}

func TestRunStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, newEngine(t), nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
