// Package storagetest provides a reusable conformance suite for PSA store
// implementations. RunConformance exercises every storage.Store method so
// the memory and sqlite stores are held to the same contract.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/crmrmm/console/internal/services/psa/domain"
	"github.com/crmrmm/console/internal/services/psa/storage"
)

// RunConformance runs the suite against stores produced by newStore. Each
// subtest receives a fresh, empty store.
func RunConformance(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Helper()

	t.Run("client round trip", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		want := domain.Client{ID: "cli_0000000001", Name: "ACME", Email: "ops@acme.test", CreatedAt: fixedTime()}
		if err := store.PutClient(ctx, want); err != nil {
			t.Fatalf("put client: %v", err)
		}
		got, err := store.GetClient(ctx, want.ID)
		if err != nil {
			t.Fatalf("get client: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("client mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing records return ErrNotFound", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		if _, err := store.GetClient(ctx, "cli_missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("get client err = %v, want ErrNotFound", err)
		}
		if _, err := store.GetContract(ctx, "ctr_missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("get contract err = %v, want ErrNotFound", err)
		}
		if _, err := store.FirstContractForClient(ctx, "cli_missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("first contract err = %v, want ErrNotFound", err)
		}
		if _, err := store.GetTicket(ctx, "tic_missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("get ticket err = %v, want ErrNotFound", err)
		}
		if _, err := store.GetTimeEntry(ctx, "tim_missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("get time entry err = %v, want ErrNotFound", err)
		}
	})

	t.Run("first contract follows creation order", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		putClient(t, store, "cli_a")
		putClient(t, store, "cli_b")

		first := domain.Contract{
			ID:                  "ctr_zzzzzzzzzz",
			ClientID:            "cli_a",
			Type:                domain.ContractTypeHoursBank,
			HourlyRate:          90,
			TotalHours:          10,
			RemainingHours:      10,
			AlertThresholdHours: 2,
			CreatedAt:           fixedTime(),
		}
		second := first
		second.ID = "ctr_aaaaaaaaaa"
		second.Type = domain.ContractTypeSubscription
		second.MonthlyPrice = 49.9
		second.MonthlyUnits = 12
		other := first
		other.ID = "ctr_bbbbbbbbbb"
		other.ClientID = "cli_b"
		for _, contract := range []domain.Contract{other, first, second} {
			if err := store.PutContract(ctx, contract); err != nil {
				t.Fatalf("put contract %s: %v", contract.ID, err)
			}
		}

		got, err := store.FirstContractForClient(ctx, "cli_a")
		if err != nil {
			t.Fatalf("first contract: %v", err)
		}
		if got.ID != first.ID {
			t.Fatalf("first contract = %s, want %s", got.ID, first.ID)
		}
		gotSecond, err := store.GetContract(ctx, second.ID)
		if err != nil {
			t.Fatalf("get second contract: %v", err)
		}
		if diff := cmp.Diff(second, gotSecond); diff != "" {
			t.Fatalf("subscription contract mismatch (-want +got):\n%s", diff)
		}

		updated := first
		updated.RemainingHours = 7.5
		if err := store.PutContract(ctx, updated); err != nil {
			t.Fatalf("update contract: %v", err)
		}
		got, err = store.FirstContractForClient(ctx, "cli_a")
		if err != nil {
			t.Fatalf("first contract after update: %v", err)
		}
		if diff := cmp.Diff(updated, got); diff != "" {
			t.Fatalf("updated contract mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ticket and time entry round trip", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		putClient(t, store, "cli_a")
		ticket := domain.Ticket{
			ID:                      "tic_0000000001",
			ClientID:                "cli_a",
			Title:                   "Printer issue",
			Description:             "Cannot print",
			MachineID:               "mach_1",
			TechnicianID:            "tech_1",
			Status:                  domain.TicketStatusClosed,
			Priority:                domain.PriorityHigh,
			CreatedAt:               fixedTime(),
			TotalMinutes:            90,
			BillableMinutes:         60,
			EstimatedBillableAmount: 120.5,
			PrebillingQueued:        true,
		}
		if err := store.PutTicket(ctx, ticket); err != nil {
			t.Fatalf("put ticket: %v", err)
		}
		gotTicket, err := store.GetTicket(ctx, ticket.ID)
		if err != nil {
			t.Fatalf("get ticket: %v", err)
		}
		if diff := cmp.Diff(ticket, gotTicket); diff != "" {
			t.Fatalf("ticket mismatch (-want +got):\n%s", diff)
		}

		entry := domain.TimeEntry{
			ID:           "tim_0000000001",
			TicketID:     ticket.ID,
			TechnicianID: "tech_1",
			Minutes:      45,
			Billable:     true,
			Validated:    true,
			InvoiceID:    "inv_0000000001",
			CreatedAt:    fixedTime(),
		}
		if err := store.PutTimeEntry(ctx, entry); err != nil {
			t.Fatalf("put time entry: %v", err)
		}
		gotEntry, err := store.GetTimeEntry(ctx, entry.ID)
		if err != nil {
			t.Fatalf("get time entry: %v", err)
		}
		if diff := cmp.Diff(entry, gotEntry); diff != "" {
			t.Fatalf("time entry mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("invoices keep creation order", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		putClient(t, store, "cli_a")
		invoices := []domain.Invoice{
			{ID: "inv_zzzzzzzzzz", ClientID: "cli_a", Status: domain.InvoiceStatusDraft, Amount: 180, Description: "first", CreatedAt: fixedTime()},
			{ID: "inv_aaaaaaaaaa", ClientID: "cli_a", Status: domain.InvoiceStatusSent, Amount: 598.8, Description: "second", CreatedAt: fixedTime()},
		}
		for _, invoice := range invoices {
			if err := store.PutInvoice(ctx, invoice); err != nil {
				t.Fatalf("put invoice %s: %v", invoice.ID, err)
			}
		}
		paid := invoices[0]
		paid.Status = domain.InvoiceStatusPaid
		if err := store.PutInvoice(ctx, paid); err != nil {
			t.Fatalf("update invoice: %v", err)
		}

		got, err := store.ListInvoices(ctx)
		if err != nil {
			t.Fatalf("list invoices: %v", err)
		}
		if diff := cmp.Diff([]domain.Invoice{paid, invoices[1]}, got); diff != "" {
			t.Fatalf("invoices mismatch (-want +got):\n%s", diff)
		}
		one, err := store.GetInvoice(ctx, paid.ID)
		if err != nil {
			t.Fatalf("get invoice: %v", err)
		}
		if diff := cmp.Diff(paid, one); diff != "" {
			t.Fatalf("invoice mismatch (-want +got):\n%s", diff)
		}
		if _, err := store.GetInvoice(ctx, "inv_missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("get invoice err = %v, want ErrNotFound", err)
		}
		unpaid, err := store.CountUnpaidInvoices(ctx)
		if err != nil {
			t.Fatalf("count unpaid invoices: %v", err)
		}
		if unpaid != 1 {
			t.Fatalf("unpaid invoices = %d, want 1", unpaid)
		}
	})

	t.Run("alerts round trip and count by time", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		putClient(t, store, "cli_a")
		old := domain.Alert{
			ID:        "alr_0000000001",
			ClientID:  "cli_a",
			MachineID: "mach_1",
			Severity:  domain.AlertSeverityWarning,
			Title:     "Disk",
			Details:   "C: 91%",
			CreatedAt: fixedTime().Add(-25 * time.Hour),
		}
		recent := domain.Alert{
			ID:        "alr_0000000002",
			ClientID:  "cli_a",
			MachineID: "mach_1",
			Severity:  domain.AlertSeverityCritical,
			Title:     "CPU",
			TicketID:  "tic_0000000001",
			CreatedAt: fixedTime().Add(-time.Hour),
		}
		for _, alert := range []domain.Alert{old, recent} {
			if err := store.PutAlert(ctx, alert); err != nil {
				t.Fatalf("put alert %s: %v", alert.ID, err)
			}
		}
		got, err := store.GetAlert(ctx, recent.ID)
		if err != nil {
			t.Fatalf("get alert: %v", err)
		}
		if diff := cmp.Diff(recent, got); diff != "" {
			t.Fatalf("alert mismatch (-want +got):\n%s", diff)
		}
		if _, err := store.GetAlert(ctx, "alr_missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("get alert err = %v, want ErrNotFound", err)
		}

		tests := []struct {
			since time.Time
			want  int
		}{
			{since: fixedTime().Add(-24 * time.Hour), want: 1},
			{since: fixedTime().Add(-25 * time.Hour), want: 2},
			{since: fixedTime().Add(-time.Hour), want: 1},
			{since: fixedTime(), want: 0},
			{since: time.Time{}, want: 2},
		}
		for _, tc := range tests {
			n, err := store.CountAlertsSince(ctx, tc.since)
			if err != nil {
				t.Fatalf("count alerts since %s: %v", tc.since, err)
			}
			if n != tc.want {
				t.Fatalf("alerts since %s = %d, want %d", tc.since, n, tc.want)
			}
		}
	})

	t.Run("interventions list by technician and start", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		putClient(t, store, "cli_a")
		putTicket(t, store, "tic_a", "cli_a", domain.TicketStatusOpen)
		late := domain.Intervention{
			ID:           "itv_0000000001",
			TicketID:     "tic_a",
			TechnicianID: "tech_1",
			StartsAt:     fixedTime().Add(3 * time.Hour),
			EndsAt:       fixedTime().Add(4 * time.Hour),
		}
		early := domain.Intervention{
			ID:           "itv_0000000002",
			TicketID:     "tic_a",
			TechnicianID: "tech_1",
			StartsAt:     fixedTime(),
			EndsAt:       fixedTime().Add(30 * time.Minute),
			Remote:       true,
		}
		other := domain.Intervention{
			ID:           "itv_0000000003",
			TicketID:     "tic_a",
			TechnicianID: "tech_2",
			StartsAt:     fixedTime(),
			EndsAt:       fixedTime().Add(time.Hour),
		}
		for _, intervention := range []domain.Intervention{late, early, other} {
			if err := store.PutIntervention(ctx, intervention); err != nil {
				t.Fatalf("put intervention %s: %v", intervention.ID, err)
			}
		}
		got, err := store.ListInterventionsForTechnician(ctx, "tech_1")
		if err != nil {
			t.Fatalf("list interventions: %v", err)
		}
		if diff := cmp.Diff([]domain.Intervention{early, late}, got); diff != "" {
			t.Fatalf("interventions mismatch (-want +got):\n%s", diff)
		}
		none, err := store.ListInterventionsForTechnician(ctx, "tech_missing")
		if err != nil || len(none) != 0 {
			t.Fatalf("list interventions = %v, %v; want empty", none, err)
		}
	})

	t.Run("count clients and tickets by status", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		putClient(t, store, "cli_a")
		putClient(t, store, "cli_b")
		putTicket(t, store, "tic_open", "cli_a", domain.TicketStatusOpen)
		putTicket(t, store, "tic_progress", "cli_a", domain.TicketStatusInProgress)
		putTicket(t, store, "tic_hold", "cli_b", domain.TicketStatusOnHold)
		putTicket(t, store, "tic_resolved", "cli_b", domain.TicketStatusResolved)
		putTicket(t, store, "tic_closed", "cli_b", domain.TicketStatusClosed)

		clients, err := store.CountClients(ctx)
		if err != nil || clients != 2 {
			t.Fatalf("count clients = %d, %v; want 2", clients, err)
		}
		open, err := store.CountTicketsWithStatus(ctx, domain.OpenTicketStatuses...)
		if err != nil || open != 3 {
			t.Fatalf("count open tickets = %d, %v; want 3", open, err)
		}
		closed, err := store.CountTicketsWithStatus(ctx, domain.TicketStatusClosed)
		if err != nil || closed != 1 {
			t.Fatalf("count closed tickets = %d, %v; want 1", closed, err)
		}
		none, err := store.CountTicketsWithStatus(ctx)
		if err != nil || none != 0 {
			t.Fatalf("count with no statuses = %d, %v; want 0", none, err)
		}
	})

	t.Run("ledgers keep append order", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		events := []domain.HoursEvent{
			{ClientID: "cli_a", ContractID: "ctr_a", BeforeHours: 10, ConsumedHours: 2, AfterHours: 8},
			{ClientID: "cli_a", ContractID: "ctr_a", BeforeHours: 8, ConsumedHours: 0.5, AfterHours: 7.5},
		}
		for _, event := range events {
			if err := store.AppendHoursEvent(ctx, event); err != nil {
				t.Fatalf("append hours event: %v", err)
			}
		}
		for _, message := range []string{"first", "second"} {
			if err := store.AppendNotification(ctx, message); err != nil {
				t.Fatalf("append notification: %v", err)
			}
		}
		for _, ticketID := range []string{"tic_b", "tic_a"} {
			if err := store.AppendPrebilling(ctx, ticketID); err != nil {
				t.Fatalf("append prebilling: %v", err)
			}
		}

		gotEvents, err := store.ListHoursEvents(ctx)
		if err != nil {
			t.Fatalf("list hours events: %v", err)
		}
		if diff := cmp.Diff(events, gotEvents); diff != "" {
			t.Fatalf("hours events mismatch (-want +got):\n%s", diff)
		}
		gotNotifications, err := store.ListNotifications(ctx)
		if err != nil {
			t.Fatalf("list notifications: %v", err)
		}
		if diff := cmp.Diff([]string{"first", "second"}, gotNotifications); diff != "" {
			t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
		}
		gotQueue, err := store.ListPrebilling(ctx)
		if err != nil {
			t.Fatalf("list prebilling: %v", err)
		}
		if diff := cmp.Diff([]string{"tic_b", "tic_a"}, gotQueue); diff != "" {
			t.Fatalf("prebilling mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty ledgers", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		events, err := store.ListHoursEvents(ctx)
		if err != nil || len(events) != 0 {
			t.Fatalf("list hours events = %v, %v; want empty", events, err)
		}
		notifications, err := store.ListNotifications(ctx)
		if err != nil || len(notifications) != 0 {
			t.Fatalf("list notifications = %v, %v; want empty", notifications, err)
		}
	})

	t.Run("transact commits on success", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		err := store.Transact(ctx, func(repo storage.Repository) error {
			if err := repo.PutClient(ctx, domain.Client{ID: "cli_tx", Name: "Tx", CreatedAt: fixedTime()}); err != nil {
				return err
			}
			return repo.AppendNotification(ctx, "committed")
		})
		if err != nil {
			t.Fatalf("transact: %v", err)
		}
		if _, err := store.GetClient(ctx, "cli_tx"); err != nil {
			t.Fatalf("get committed client: %v", err)
		}
		notifications, err := store.ListNotifications(ctx)
		if err != nil {
			t.Fatalf("list notifications: %v", err)
		}
		if diff := cmp.Diff([]string{"committed"}, notifications); diff != "" {
			t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("transact discards on error", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		boom := errors.New("boom")
		err := store.Transact(ctx, func(repo storage.Repository) error {
			if err := repo.PutClient(ctx, domain.Client{ID: "cli_tx", Name: "Tx", CreatedAt: fixedTime()}); err != nil {
				return err
			}
			if err := repo.AppendPrebilling(ctx, "tic_tx"); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("transact err = %v, want boom", err)
		}
		if _, err := store.GetClient(ctx, "cli_tx"); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("get rolled back client err = %v, want ErrNotFound", err)
		}
		queue, err := store.ListPrebilling(ctx)
		if err != nil {
			t.Fatalf("list prebilling: %v", err)
		}
		if len(queue) != 0 {
			t.Fatalf("prebilling = %v, want empty", queue)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		store := newStore(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := store.PutClient(ctx, domain.Client{ID: "cli_x", Name: "X"}); err == nil {
			t.Fatal("expected error for canceled context")
		}
	})
}

func putClient(t *testing.T, store storage.Store, id string) {
	t.Helper()
	if err := store.PutClient(context.Background(), domain.Client{ID: id, Name: id, CreatedAt: fixedTime()}); err != nil {
		t.Fatalf("put client %s: %v", id, err)
	}
}

func putTicket(t *testing.T, store storage.Store, id, clientID string, status domain.TicketStatus) {
	t.Helper()
	ticket := domain.Ticket{
		ID:        id,
		ClientID:  clientID,
		Title:     id,
		Status:    status,
		Priority:  domain.PriorityNormal,
		CreatedAt: fixedTime(),
	}
	if err := store.PutTicket(context.Background(), ticket); err != nil {
		t.Fatalf("put ticket %s: %v", id, err)
	}
}

func fixedTime() time.Time {
	return time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC)
}
