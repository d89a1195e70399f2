package psa

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/crmrmm/console/internal/platform/errors"
	"github.com/crmrmm/console/internal/platform/id"
	"github.com/crmrmm/console/internal/services/psa/domain"
	"github.com/crmrmm/console/internal/services/psa/storage"
	"github.com/crmrmm/console/internal/services/psa/storage/memory"
	"github.com/crmrmm/console/internal/services/psa/storage/sqlite"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(memory.New(), WithClock(func() time.Time {
		return time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func ptr[T any](v T) *T {
	return &v
}

// fixture creates a client with a first ticket and optional contract.
func fixture(t *testing.T, engine *Engine, contract *CreateContractInput) (domain.Client, domain.Ticket) {
	t.Helper()
	ctx := context.Background()
	client, err := engine.CreateClient(ctx, "ACME", "")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	if contract != nil {
		contract.ClientID = client.ID
		if _, err := engine.CreateContract(ctx, *contract); err != nil {
			t.Fatalf("create contract: %v", err)
		}
	}
	ticket, err := engine.CreateTicket(ctx, client.ID, "Printer issue", "Cannot print", TicketOptions{})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}
	return client, ticket
}

func addValidated(t *testing.T, engine *Engine, ticketID string, minutes int, billable bool) domain.TimeEntry {
	t.Helper()
	ctx := context.Background()
	entry, err := engine.AddTimeEntry(ctx, ticketID, "tech_1", minutes, billable)
	if err != nil {
		t.Fatalf("add time entry: %v", err)
	}
	validated, err := engine.ValidateTimeEntry(ctx, entry.ID)
	if err != nil {
		t.Fatalf("validate time entry: %v", err)
	}
	return validated
}

func TestNewEngineRequiresStore(t *testing.T) {
	if _, err := NewEngine(nil); err == nil {
		t.Fatal("expected error for nil store")
	}
}

func TestCreateClient(t *testing.T) {
	engine := newTestEngine(t)
	client, err := engine.CreateClient(context.Background(), "  ACME  ", "ops@acme.test")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	if !id.HasPrefix(client.ID, domain.ClientIDPrefix) {
		t.Fatalf("client id = %q, want cli_ prefix", client.ID)
	}
	if client.Name != "ACME" || client.Email != "ops@acme.test" {
		t.Fatalf("client = %+v", client)
	}

	stored, err := engine.Client(context.Background(), client.ID)
	if err != nil {
		t.Fatalf("get client: %v", err)
	}
	if diff := cmp.Diff(client, stored); diff != "" {
		t.Fatalf("stored client mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateClientRequiresName(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.CreateClient(context.Background(), "   ", "")
	if apperrors.CodeOf(err) != apperrors.CodeClientNameEmpty {
		t.Fatalf("err = %v, want %s", err, apperrors.CodeClientNameEmpty)
	}
}

func TestCreateContractDefaults(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()
	client, err := engine.CreateClient(ctx, "ACME", "")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	contract, err := engine.CreateContract(ctx, CreateContractInput{
		ClientID:   client.ID,
		Type:       domain.ContractTypeTimeMaterial,
		HourlyRate: 120,
	})
	if err != nil {
		t.Fatalf("create contract: %v", err)
	}
	if !id.HasPrefix(contract.ID, domain.ContractIDPrefix) {
		t.Fatalf("contract id = %q, want ctr_ prefix", contract.ID)
	}
	if contract.AlertThresholdHours != domain.DefaultAlertThresholdHours {
		t.Fatalf("threshold = %v, want %v", contract.AlertThresholdHours, domain.DefaultAlertThresholdHours)
	}
	if contract.TotalHours != 0 || contract.RemainingHours != 0 {
		t.Fatalf("hours = %v/%v, want 0/0", contract.TotalHours, contract.RemainingHours)
	}

	zero, err := engine.CreateContract(ctx, CreateContractInput{
		ClientID:            client.ID,
		Type:                domain.ContractTypeSubscription,
		AlertThresholdHours: ptr(0.0),
	})
	if err != nil {
		t.Fatalf("create contract with explicit threshold: %v", err)
	}
	if zero.AlertThresholdHours != 0 {
		t.Fatalf("threshold = %v, want explicit 0", zero.AlertThresholdHours)
	}
}

func TestCreateContractErrors(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.CreateContract(ctx, CreateContractInput{ClientID: "cli_missing", Type: domain.ContractTypeHoursBank})
	if apperrors.CodeOf(err) != apperrors.CodeClientNotFound {
		t.Fatalf("err = %v, want %s", err, apperrors.CodeClientNotFound)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want wrapped ErrNotFound", err)
	}

	client, _ := engine.CreateClient(ctx, "ACME", "")
	_, err = engine.CreateContract(ctx, CreateContractInput{ClientID: client.ID, Type: "banque_heures"})
	if apperrors.CodeOf(err) != apperrors.CodeContractTypeInvalid {
		t.Fatalf("err = %v, want %s", err, apperrors.CodeContractTypeInvalid)
	}
}

func TestCreateTicketDefaults(t *testing.T) {
	engine := newTestEngine(t)
	_, ticket := fixture(t, engine, nil)
	if !id.HasPrefix(ticket.ID, domain.TicketIDPrefix) {
		t.Fatalf("ticket id = %q, want tic_ prefix", ticket.ID)
	}
	if ticket.Status != domain.TicketStatusOpen {
		t.Fatalf("status = %s, want open", ticket.Status)
	}
	if ticket.Priority != domain.PriorityNormal {
		t.Fatalf("priority = %s, want normal", ticket.Priority)
	}
	if ticket.TotalMinutes != 0 || ticket.BillableMinutes != 0 || ticket.PrebillingQueued {
		t.Fatalf("unexpected counters: %+v", ticket)
	}
}

func TestCreateTicketErrors(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()
	_, err := engine.CreateTicket(ctx, "cli_missing", "t", "d", TicketOptions{})
	if apperrors.CodeOf(err) != apperrors.CodeClientNotFound {
		t.Fatalf("err = %v, want %s", err, apperrors.CodeClientNotFound)
	}
	client, _ := engine.CreateClient(ctx, "ACME", "")
	_, err = engine.CreateTicket(ctx, client.ID, "t", "d", TicketOptions{Priority: "urgent"})
	if apperrors.CodeOf(err) != apperrors.CodeInvalidArgument {
		t.Fatalf("err = %v, want %s", err, apperrors.CodeInvalidArgument)
	}
}

func TestCreateTicketFromAlert(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()
	client, _ := engine.CreateClient(ctx, "ACME", "")

	ticket, err := engine.CreateTicketFromAlert(ctx, client.ID, "mach_1", "CPU High", "CPU > 95% for 5 minutes", domain.PriorityCritical)
	if err != nil {
		t.Fatalf("create ticket from alert: %v", err)
	}
	if ticket.MachineID != "mach_1" || ticket.Priority != domain.PriorityCritical {
		t.Fatalf("ticket = %+v", ticket)
	}
	if !strings.HasPrefix(ticket.Title, "Alerte RMM") || ticket.Title != "Alerte RMM: CPU High" {
		t.Fatalf("title = %q", ticket.Title)
	}
	if ticket.Description != "CPU > 95% for 5 minutes" {
		t.Fatalf("description = %q", ticket.Description)
	}

	defaulted, err := engine.CreateTicketFromAlert(ctx, client.ID, "mach_2", "Disk full", "C: 99%", "")
	if err != nil {
		t.Fatalf("create ticket from alert: %v", err)
	}
	if defaulted.Priority != domain.PriorityHigh {
		t.Fatalf("priority = %s, want high", defaulted.Priority)
	}
}

func TestAddTimeEntry(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()
	_, ticket := fixture(t, engine, nil)

	entry, err := engine.AddTimeEntry(ctx, ticket.ID, "tech_1", 30, true)
	if err != nil {
		t.Fatalf("add time entry: %v", err)
	}
	if !id.HasPrefix(entry.ID, domain.TimeEntryIDPrefix) {
		t.Fatalf("entry id = %q, want tim_ prefix", entry.ID)
	}
	if entry.Validated {
		t.Fatal("new time entry must start unvalidated")
	}

	stored, err := engine.Ticket(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("get ticket: %v", err)
	}
	if stored.TotalMinutes != 0 {
		t.Fatalf("total minutes = %d, want 0 before validation", stored.TotalMinutes)
	}
}

func TestAddTimeEntryErrors(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()
	_, ticket := fixture(t, engine, nil)

	for _, minutes := range []int{0, -15} {
		_, err := engine.AddTimeEntry(ctx, ticket.ID, "tech_1", minutes, true)
		if apperrors.CodeOf(err) != apperrors.CodeTimeEntryNonPositive {
			t.Fatalf("minutes %d: err = %v, want %s", minutes, err, apperrors.CodeTimeEntryNonPositive)
		}
		if apperrors.HTTPStatus(err) != 400 {
			t.Fatalf("minutes %d: status = %d, want 400", minutes, apperrors.HTTPStatus(err))
		}
	}
	_, err := engine.AddTimeEntry(ctx, "tic_missing", "tech_1", 10, true)
	if apperrors.CodeOf(err) != apperrors.CodeTicketNotFound {
		t.Fatalf("err = %v, want %s", err, apperrors.CodeTicketNotFound)
	}
}

func TestValidateTimeEntryDecrementsBankHours(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()
	client, ticket := fixture(t, engine, &CreateContractInput{
		Type:                domain.ContractTypeHoursBank,
		HourlyRate:          90,
		TotalHours:          10,
		RemainingHours:      10,
		AlertThresholdHours: ptr(2.0),
	})

	entry := addValidated(t, engine, ticket.ID, 120, true)
	if !entry.Validated {
		t.Fatal("expected entry to be validated")
	}

	history, err := engine.HoursHistory(ctx)
	if err != nil {
		t.Fatalf("hours history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	contract, err := engine.Contract(ctx, history[0].ContractID)
	if err != nil {
		t.Fatalf("get contract: %v", err)
	}
	if contract.RemainingHours != 8 {
		t.Fatalf("remaining hours = %v, want 8", contract.RemainingHours)
	}
	wantEvent := domain.HoursEvent{
		ClientID:      client.ID,
		ContractID:    contract.ID,
		BeforeHours:   10,
		ConsumedHours: 2,
		AfterHours:    8,
	}
	if diff := cmp.Diff(wantEvent, history[0]); diff != "" {
		t.Fatalf("hours event mismatch (-want +got):\n%s", diff)
	}

	stored, err := engine.Ticket(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("get ticket: %v", err)
	}
	if stored.BillableMinutes != 120 || stored.TotalMinutes != 120 {
		t.Fatalf("minutes = %d/%d, want 120/120", stored.TotalMinutes, stored.BillableMinutes)
	}
	if stored.EstimatedBillableAmount != 0 {
		t.Fatalf("estimated amount = %v, want 0 for hours bank", stored.EstimatedBillableAmount)
	}
	notifications, err := engine.Notifications(ctx)
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}
	if len(notifications) != 0 {
		t.Fatalf("notifications = %v, want none above threshold", notifications)
	}
}

func TestValidateTimeEntryIsIdempotent(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()
	_, ticket := fixture(t, engine, &CreateContractInput{
		Type:           domain.ContractTypeHoursBank,
		TotalHours:     10,
		RemainingHours: 10,
	})
	entry := addValidated(t, engine, ticket.ID, 60, true)

	again, err := engine.ValidateTimeEntry(ctx, entry.ID)
	if err != nil {
		t.Fatalf("validate again: %v", err)
	}
	if diff := cmp.Diff(entry, again); diff != "" {
		t.Fatalf("entry changed on second validation (-want +got):\n%s", diff)
	}
	stored, _ := engine.Ticket(ctx, ticket.ID)
	if stored.TotalMinutes != 60 {
		t.Fatalf("total minutes = %d, want 60", stored.TotalMinutes)
	}
	history, _ := engine.HoursHistory(ctx)
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
}

func TestValidateTimeEntryThresholdNotification(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()
	client, ticket := fixture(t, engine, &CreateContractInput{
		Type:                domain.ContractTypeHoursBank,
		HourlyRate:          90,
		TotalHours:          2,
		RemainingHours:      2,
		AlertThresholdHours: ptr(1.5),
	})
	addValidated(t, engine, ticket.ID, 60, true)

	notifications, err := engine.Notifications(ctx)
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("notifications = %v, want 1", notifications)
	}
	history, _ := engine.HoursHistory(ctx)
	want := fmt.Sprintf("Alerte: contrat %s du client %s sous seuil (1.00h restantes).", history[0].ContractID, client.ID)
	if notifications[0] != want {
		t.Fatalf("notification = %q, want %q", notifications[0], want)
	}
}

func TestValidateTimeEntryFloorsAtZero(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()
	_, ticket := fixture(t, engine, &CreateContractInput{
		Type:           domain.ContractTypeHoursBank,
		TotalHours:     1,
		RemainingHours: 1,
	})
	addValidated(t, engine, ticket.ID, 90, true)

	history, _ := engine.HoursHistory(ctx)
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if history[0].AfterHours != 0 || history[0].ConsumedHours != 1.5 {
		t.Fatalf("event = %+v, want after 0 consumed 1.5", history[0])
	}
	notifications, _ := engine.Notifications(ctx)
	if len(notifications) != 1 || !strings.Contains(notifications[0], "(0.00h restantes)") {
		t.Fatalf("notifications = %v", notifications)
	}
}

func TestValidateTimeEntryEstimatesAmount(t *testing.T) {
	tests := []struct {
		name     string
		contract *CreateContractInput
		minutes  int
		billable bool
		want     float64
	}{
		{
			name:     "time and material rate",
			contract: &CreateContractInput{Type: domain.ContractTypeTimeMaterial, HourlyRate: 120},
			minutes:  30,
			billable: true,
			want:     60,
		},
		{
			name:     "subscription rate",
			contract: &CreateContractInput{Type: domain.ContractTypeSubscription, HourlyRate: 80},
			minutes:  90,
			billable: true,
			want:     120,
		},
		{
			name:     "default rate without contract",
			minutes:  60,
			billable: true,
			want:     domain.DefaultHourlyRate,
		},
		{
			name:     "non billable",
			contract: &CreateContractInput{Type: domain.ContractTypeTimeMaterial, HourlyRate: 120},
			minutes:  45,
			billable: false,
			want:     0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			engine := newTestEngine(t)
			_, ticket := fixture(t, engine, tc.contract)
			addValidated(t, engine, ticket.ID, tc.minutes, tc.billable)

			stored, err := engine.Ticket(context.Background(), ticket.ID)
			if err != nil {
				t.Fatalf("get ticket: %v", err)
			}
			if stored.EstimatedBillableAmount != tc.want {
				t.Fatalf("estimated amount = %v, want %v", stored.EstimatedBillableAmount, tc.want)
			}
			if stored.TotalMinutes != tc.minutes {
				t.Fatalf("total minutes = %d, want %d", stored.TotalMinutes, tc.minutes)
			}
			wantBillable := 0
			if tc.billable {
				wantBillable = tc.minutes
			}
			if stored.BillableMinutes != wantBillable {
				t.Fatalf("billable minutes = %d, want %d", stored.BillableMinutes, wantBillable)
			}
		})
	}
}

func TestValidateTimeEntryUsesFirstContract(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()
	client, ticket := fixture(t, engine, &CreateContractInput{Type: domain.ContractTypeTimeMaterial, HourlyRate: 120})
	if _, err := engine.CreateContract(ctx, CreateContractInput{
		ClientID:       client.ID,
		Type:           domain.ContractTypeHoursBank,
		TotalHours:     10,
		RemainingHours: 10,
	}); err != nil {
		t.Fatalf("create second contract: %v", err)
	}
	addValidated(t, engine, ticket.ID, 60, true)

	history, _ := engine.HoursHistory(ctx)
	if len(history) != 0 {
		t.Fatalf("history = %v, want none: the first contract is time and material", history)
	}
	stored, _ := engine.Ticket(ctx, ticket.ID)
	if stored.EstimatedBillableAmount != 120 {
		t.Fatalf("estimated amount = %v, want 120", stored.EstimatedBillableAmount)
	}
}

func TestValidateTimeEntryUnknown(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.ValidateTimeEntry(context.Background(), "tim_missing")
	if apperrors.CodeOf(err) != apperrors.CodeEntryNotFound {
		t.Fatalf("err = %v, want %s", err, apperrors.CodeEntryNotFound)
	}
}

func TestCloseTicketQueuesPrebilling(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()
	_, ticket := fixture(t, engine, &CreateContractInput{Type: domain.ContractTypeTimeMaterial, HourlyRate: 120})
	addValidated(t, engine, ticket.ID, 30, true)

	closed, err := engine.CloseTicket(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("close ticket: %v", err)
	}
	if closed.Status != domain.TicketStatusClosed || !closed.PrebillingQueued {
		t.Fatalf("closed ticket = %+v", closed)
	}
	if closed.EstimatedBillableAmount <= 0 {
		t.Fatalf("estimated amount = %v, want > 0", closed.EstimatedBillableAmount)
	}
	queue, err := engine.PrebillingQueue(ctx)
	if err != nil {
		t.Fatalf("prebilling queue: %v", err)
	}
	if diff := cmp.Diff([]string{ticket.ID}, queue); diff != "" {
		t.Fatalf("queue mismatch (-want +got):\n%s", diff)
	}
}

func TestCloseTicketSkipsPrebilling(t *testing.T) {
	tests := []struct {
		name     string
		contract *CreateContractInput
		minutes  int
		billable bool
	}{
		{
			name:     "covered by hours bank",
			contract: &CreateContractInput{Type: domain.ContractTypeHoursBank, TotalHours: 10, RemainingHours: 10},
			minutes:  60,
			billable: true,
		},
		{
			name:     "no billable time",
			contract: &CreateContractInput{Type: domain.ContractTypeTimeMaterial, HourlyRate: 120},
			minutes:  60,
			billable: false,
		},
		{
			name: "no time at all",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			engine := newTestEngine(t)
			ctx := context.Background()
			_, ticket := fixture(t, engine, tc.contract)
			if tc.minutes > 0 {
				addValidated(t, engine, ticket.ID, tc.minutes, tc.billable)
			}
			closed, err := engine.CloseTicket(ctx, ticket.ID)
			if err != nil {
				t.Fatalf("close ticket: %v", err)
			}
			if closed.Status != domain.TicketStatusClosed {
				t.Fatalf("status = %s, want closed", closed.Status)
			}
			if closed.PrebillingQueued {
				t.Fatal("ticket must not be queued for prebilling")
			}
			queue, _ := engine.PrebillingQueue(ctx)
			if len(queue) != 0 {
				t.Fatalf("queue = %v, want empty", queue)
			}
		})
	}
}

func TestCloseTicketUnknown(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.CloseTicket(context.Background(), "tic_missing")
	if apperrors.CodeOf(err) != apperrors.CodeTicketNotFound {
		t.Fatalf("err = %v, want %s", err, apperrors.CodeTicketNotFound)
	}
	if got := err.(*apperrors.Error).LocalizedMessage("fr-FR"); got != "Ticket tic_missing introuvable." {
		t.Fatalf("localized = %q", got)
	}
}

func TestConcurrentValidationsConsumeEachEntryOnce(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()
	_, ticket := fixture(t, engine, &CreateContractInput{
		Type:           domain.ContractTypeHoursBank,
		TotalHours:     100,
		RemainingHours: 100,
	})

	entries := make([]domain.TimeEntry, 10)
	for i := range entries {
		entry, err := engine.AddTimeEntry(ctx, ticket.ID, "tech_1", 30, true)
		if err != nil {
			t.Fatalf("add time entry: %v", err)
		}
		entries[i] = entry
	}

	var wg sync.WaitGroup
	for _, entry := range entries {
		for range 2 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := engine.ValidateTimeEntry(ctx, entry.ID); err != nil {
					t.Errorf("validate %s: %v", entry.ID, err)
				}
			}()
		}
	}
	wg.Wait()

	stored, _ := engine.Ticket(ctx, ticket.ID)
	if stored.TotalMinutes != 300 {
		t.Fatalf("total minutes = %d, want 300", stored.TotalMinutes)
	}
	history, _ := engine.HoursHistory(ctx)
	if len(history) != 10 {
		t.Fatalf("history length = %d, want 10", len(history))
	}
	if last := history[len(history)-1]; last.AfterHours != 95 {
		t.Fatalf("remaining after all validations = %v, want 95", last.AfterHours)
	}
}

func TestIDGeneratorFailure(t *testing.T) {
	boom := errors.New("entropy exhausted")
	engine, err := NewEngine(memory.New(), WithIDGenerator(func(string) (string, error) {
		return "", boom
	}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if _, err := engine.CreateClient(context.Background(), "ACME", ""); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped generator error", err)
	}
}

func TestEngineOverSQLite(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "psa.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()
	engine, err := NewEngine(store)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	_, ticket := fixture(t, engine, &CreateContractInput{
		Type:                domain.ContractTypeHoursBank,
		HourlyRate:          90,
		TotalHours:          3,
		RemainingHours:      3,
		AlertThresholdHours: ptr(2.0),
	})
	addValidated(t, engine, ticket.ID, 60, true)
	closed, err := engine.CloseTicket(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("close ticket: %v", err)
	}
	if closed.PrebillingQueued {
		t.Fatal("hours bank ticket must not be queued")
	}
	notifications, err := engine.Notifications(ctx)
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}
	if len(notifications) != 1 || !strings.Contains(notifications[0], "(2.00h restantes)") {
		t.Fatalf("notifications = %v", notifications)
	}
}
