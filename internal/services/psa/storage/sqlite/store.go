package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/crmrmm/console/internal/platform/storage/sqlitemigrate"
	"github.com/crmrmm/console/internal/services/psa/domain"
	"github.com/crmrmm/console/internal/services/psa/storage"
	"github.com/crmrmm/console/internal/services/psa/storage/sqlite/migrations"
)

const timeFormat = time.RFC3339Nano

// sortableTimeFormat keeps a fixed width so stored UTC timestamps order and
// compare correctly as text.
const sortableTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store provides a SQLite-backed store implementing storage.Store.
type Store struct {
	sqlDB *sql.DB
	queries
}

// queries implements storage.Repository over a connection or transaction.
type queries struct {
	db dbtx
}

// Open opens a SQLite store at path and applies pending migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := "file:" + filepath.Clean(path) +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection serializes writers and keeps transactions simple.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB, queries: queries{db: sqlDB}}, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Transact runs fn inside a database transaction.
func (s *Store) Transact(ctx context.Context, fn func(storage.Repository) error) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(queries{db: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (q queries) PutClient(ctx context.Context, client domain.Client) error {
	_, err := q.db.ExecContext(ctx, `
INSERT INTO clients (id, name, email, created_at) VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET name = excluded.name, email = excluded.email`,
		client.ID, client.Name, client.Email, formatTime(client.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put client %s: %w", client.ID, err)
	}
	return nil
}

func (q queries) GetClient(ctx context.Context, id string) (domain.Client, error) {
	var (
		client    domain.Client
		createdAt string
	)
	err := q.db.QueryRowContext(ctx,
		`SELECT id, name, email, created_at FROM clients WHERE id = ?`, id,
	).Scan(&client.ID, &client.Name, &client.Email, &createdAt)
	if err != nil {
		return domain.Client{}, notFound(err, "get client "+id)
	}
	if client.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Client{}, err
	}
	return client, nil
}

func (q queries) PutContract(ctx context.Context, contract domain.Contract) error {
	_, err := q.db.ExecContext(ctx, `
INSERT INTO contracts (
    id, client_id, type, hourly_rate, total_hours, remaining_hours, alert_threshold_hours,
    monthly_price, monthly_units, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    type = excluded.type,
    hourly_rate = excluded.hourly_rate,
    total_hours = excluded.total_hours,
    remaining_hours = excluded.remaining_hours,
    alert_threshold_hours = excluded.alert_threshold_hours,
    monthly_price = excluded.monthly_price,
    monthly_units = excluded.monthly_units`,
		contract.ID,
		contract.ClientID,
		string(contract.Type),
		contract.HourlyRate,
		contract.TotalHours,
		contract.RemainingHours,
		contract.AlertThresholdHours,
		contract.MonthlyPrice,
		contract.MonthlyUnits,
		formatTime(contract.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put contract %s: %w", contract.ID, err)
	}
	return nil
}

const contractColumns = `id, client_id, type, hourly_rate, total_hours, remaining_hours, alert_threshold_hours,
    monthly_price, monthly_units, created_at`

func (q queries) GetContract(ctx context.Context, id string) (domain.Contract, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+contractColumns+` FROM contracts WHERE id = ?`, id)
	return scanContract(row, "get contract "+id)
}

func (q queries) FirstContractForClient(ctx context.Context, clientID string) (domain.Contract, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+contractColumns+` FROM contracts WHERE client_id = ? ORDER BY seq LIMIT 1`, clientID,
	)
	return scanContract(row, "first contract for client "+clientID)
}

func scanContract(row *sql.Row, op string) (domain.Contract, error) {
	var (
		contract     domain.Contract
		contractType string
		createdAt    string
	)
	err := row.Scan(
		&contract.ID,
		&contract.ClientID,
		&contractType,
		&contract.HourlyRate,
		&contract.TotalHours,
		&contract.RemainingHours,
		&contract.AlertThresholdHours,
		&contract.MonthlyPrice,
		&contract.MonthlyUnits,
		&createdAt,
	)
	if err != nil {
		return domain.Contract{}, notFound(err, op)
	}
	contract.Type = domain.ContractType(contractType)
	if contract.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Contract{}, err
	}
	return contract, nil
}

func (q queries) PutTicket(ctx context.Context, ticket domain.Ticket) error {
	_, err := q.db.ExecContext(ctx, `
INSERT INTO tickets (
    id, client_id, title, description, machine_id, technician_id, status, priority, created_at,
    total_minutes, billable_minutes, estimated_billable_amount, prebilling_queued
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    title = excluded.title,
    description = excluded.description,
    machine_id = excluded.machine_id,
    technician_id = excluded.technician_id,
    status = excluded.status,
    priority = excluded.priority,
    total_minutes = excluded.total_minutes,
    billable_minutes = excluded.billable_minutes,
    estimated_billable_amount = excluded.estimated_billable_amount,
    prebilling_queued = excluded.prebilling_queued`,
		ticket.ID,
		ticket.ClientID,
		ticket.Title,
		ticket.Description,
		ticket.MachineID,
		ticket.TechnicianID,
		string(ticket.Status),
		string(ticket.Priority),
		formatTime(ticket.CreatedAt),
		ticket.TotalMinutes,
		ticket.BillableMinutes,
		ticket.EstimatedBillableAmount,
		ticket.PrebillingQueued,
	)
	if err != nil {
		return fmt.Errorf("put ticket %s: %w", ticket.ID, err)
	}
	return nil
}

func (q queries) GetTicket(ctx context.Context, id string) (domain.Ticket, error) {
	var (
		ticket    domain.Ticket
		status    string
		priority  string
		createdAt string
	)
	err := q.db.QueryRowContext(ctx, `
SELECT id, client_id, title, description, machine_id, technician_id, status, priority, created_at,
    total_minutes, billable_minutes, estimated_billable_amount, prebilling_queued
FROM tickets WHERE id = ?`, id,
	).Scan(
		&ticket.ID,
		&ticket.ClientID,
		&ticket.Title,
		&ticket.Description,
		&ticket.MachineID,
		&ticket.TechnicianID,
		&status,
		&priority,
		&createdAt,
		&ticket.TotalMinutes,
		&ticket.BillableMinutes,
		&ticket.EstimatedBillableAmount,
		&ticket.PrebillingQueued,
	)
	if err != nil {
		return domain.Ticket{}, notFound(err, "get ticket "+id)
	}
	ticket.Status = domain.TicketStatus(status)
	ticket.Priority = domain.Priority(priority)
	if ticket.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Ticket{}, err
	}
	return ticket, nil
}

func (q queries) PutTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	_, err := q.db.ExecContext(ctx, `
INSERT INTO time_entries (id, ticket_id, technician_id, minutes, billable, validated, invoice_id, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    technician_id = excluded.technician_id,
    minutes = excluded.minutes,
    billable = excluded.billable,
    validated = excluded.validated,
    invoice_id = excluded.invoice_id`,
		entry.ID,
		entry.TicketID,
		entry.TechnicianID,
		entry.Minutes,
		entry.Billable,
		entry.Validated,
		entry.InvoiceID,
		formatTime(entry.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put time entry %s: %w", entry.ID, err)
	}
	return nil
}

func (q queries) GetTimeEntry(ctx context.Context, id string) (domain.TimeEntry, error) {
	var (
		entry     domain.TimeEntry
		createdAt string
	)
	err := q.db.QueryRowContext(ctx, `
SELECT id, ticket_id, technician_id, minutes, billable, validated, invoice_id, created_at
FROM time_entries WHERE id = ?`, id,
	).Scan(
		&entry.ID,
		&entry.TicketID,
		&entry.TechnicianID,
		&entry.Minutes,
		&entry.Billable,
		&entry.Validated,
		&entry.InvoiceID,
		&createdAt,
	)
	if err != nil {
		return domain.TimeEntry{}, notFound(err, "get time entry "+id)
	}
	if entry.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.TimeEntry{}, err
	}
	return entry, nil
}

func (q queries) PutInvoice(ctx context.Context, invoice domain.Invoice) error {
	_, err := q.db.ExecContext(ctx, `
INSERT INTO invoices (id, client_id, status, amount, description, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    status = excluded.status,
    amount = excluded.amount,
    description = excluded.description`,
		invoice.ID,
		invoice.ClientID,
		string(invoice.Status),
		invoice.Amount,
		invoice.Description,
		formatTime(invoice.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put invoice %s: %w", invoice.ID, err)
	}
	return nil
}

const invoiceColumns = `id, client_id, status, amount, description, created_at`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (domain.Invoice, error) {
	var (
		invoice   domain.Invoice
		status    string
		createdAt string
	)
	if err := row.Scan(&invoice.ID, &invoice.ClientID, &status, &invoice.Amount, &invoice.Description, &createdAt); err != nil {
		return domain.Invoice{}, err
	}
	invoice.Status = domain.InvoiceStatus(status)
	var err error
	if invoice.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Invoice{}, err
	}
	return invoice, nil
}

func (q queries) GetInvoice(ctx context.Context, id string) (domain.Invoice, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = ?`, id)
	invoice, err := scanInvoice(row)
	if err != nil {
		return domain.Invoice{}, notFound(err, "get invoice "+id)
	}
	return invoice, nil
}

func (q queries) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}
	return invoices, nil
}

func (q queries) PutAlert(ctx context.Context, alert domain.Alert) error {
	_, err := q.db.ExecContext(ctx, `
INSERT INTO alerts (id, client_id, machine_id, severity, title, details, ticket_id, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    severity = excluded.severity,
    title = excluded.title,
    details = excluded.details,
    ticket_id = excluded.ticket_id`,
		alert.ID,
		alert.ClientID,
		alert.MachineID,
		string(alert.Severity),
		alert.Title,
		alert.Details,
		alert.TicketID,
		formatSortableTime(alert.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put alert %s: %w", alert.ID, err)
	}
	return nil
}

func (q queries) GetAlert(ctx context.Context, id string) (domain.Alert, error) {
	var (
		alert     domain.Alert
		severity  string
		createdAt string
	)
	err := q.db.QueryRowContext(ctx, `
SELECT id, client_id, machine_id, severity, title, details, ticket_id, created_at
FROM alerts WHERE id = ?`, id,
	).Scan(
		&alert.ID,
		&alert.ClientID,
		&alert.MachineID,
		&severity,
		&alert.Title,
		&alert.Details,
		&alert.TicketID,
		&createdAt,
	)
	if err != nil {
		return domain.Alert{}, notFound(err, "get alert "+id)
	}
	alert.Severity = domain.AlertSeverity(severity)
	if alert.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Alert{}, err
	}
	return alert, nil
}

func (q queries) PutIntervention(ctx context.Context, intervention domain.Intervention) error {
	_, err := q.db.ExecContext(ctx, `
INSERT INTO interventions (id, ticket_id, technician_id, starts_at, ends_at, remote)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    technician_id = excluded.technician_id,
    starts_at = excluded.starts_at,
    ends_at = excluded.ends_at,
    remote = excluded.remote`,
		intervention.ID,
		intervention.TicketID,
		intervention.TechnicianID,
		formatSortableTime(intervention.StartsAt),
		formatSortableTime(intervention.EndsAt),
		intervention.Remote,
	)
	if err != nil {
		return fmt.Errorf("put intervention %s: %w", intervention.ID, err)
	}
	return nil
}

func (q queries) ListInterventionsForTechnician(ctx context.Context, technicianID string) ([]domain.Intervention, error) {
	rows, err := q.db.QueryContext(ctx, `
SELECT id, ticket_id, technician_id, starts_at, ends_at, remote
FROM interventions WHERE technician_id = ? ORDER BY starts_at, id`, technicianID)
	if err != nil {
		return nil, fmt.Errorf("list interventions: %w", err)
	}
	defer rows.Close()

	var interventions []domain.Intervention
	for rows.Next() {
		var (
			intervention     domain.Intervention
			startsAt, endsAt string
		)
		if err := rows.Scan(
			&intervention.ID,
			&intervention.TicketID,
			&intervention.TechnicianID,
			&startsAt,
			&endsAt,
			&intervention.Remote,
		); err != nil {
			return nil, fmt.Errorf("scan intervention: %w", err)
		}
		if intervention.StartsAt, err = parseTime(startsAt); err != nil {
			return nil, err
		}
		if intervention.EndsAt, err = parseTime(endsAt); err != nil {
			return nil, err
		}
		interventions = append(interventions, intervention)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interventions: %w", err)
	}
	return interventions, nil
}

func (q queries) CountClients(ctx context.Context) (int, error) {
	return q.count(ctx, "clients", `SELECT COUNT(*) FROM clients`)
}

func (q queries) CountTicketsWithStatus(ctx context.Context, statuses ...domain.TicketStatus) (int, error) {
	if len(statuses) == 0 {
		return 0, nil
	}
	args := make([]any, len(statuses))
	for i, status := range statuses {
		args[i] = string(status)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(statuses)), ", ")
	return q.count(ctx, "tickets", `SELECT COUNT(*) FROM tickets WHERE status IN (`+placeholders+`)`, args...)
}

func (q queries) CountAlertsSince(ctx context.Context, since time.Time) (int, error) {
	return q.count(ctx, "alerts", `SELECT COUNT(*) FROM alerts WHERE created_at >= ?`, since.UTC().Format(sortableTimeFormat))
}

func (q queries) CountUnpaidInvoices(ctx context.Context) (int, error) {
	return q.count(ctx, "unpaid invoices", `SELECT COUNT(*) FROM invoices WHERE status <> ?`, string(domain.InvoiceStatusPaid))
}

func (q queries) count(ctx context.Context, label string, query string, args ...any) (int, error) {
	var n int
	if err := q.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", label, err)
	}
	return n, nil
}

func (q queries) AppendHoursEvent(ctx context.Context, event domain.HoursEvent) error {
	_, err := q.db.ExecContext(ctx, `
INSERT INTO hours_events (client_id, contract_id, before_hours, consumed_hours, after_hours)
VALUES (?, ?, ?, ?, ?)`,
		event.ClientID, event.ContractID, event.BeforeHours, event.ConsumedHours, event.AfterHours,
	)
	if err != nil {
		return fmt.Errorf("append hours event: %w", err)
	}
	return nil
}

func (q queries) ListHoursEvents(ctx context.Context) ([]domain.HoursEvent, error) {
	rows, err := q.db.QueryContext(ctx, `
SELECT client_id, contract_id, before_hours, consumed_hours, after_hours
FROM hours_events ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list hours events: %w", err)
	}
	defer rows.Close()

	var events []domain.HoursEvent
	for rows.Next() {
		var event domain.HoursEvent
		if err := rows.Scan(&event.ClientID, &event.ContractID, &event.BeforeHours, &event.ConsumedHours, &event.AfterHours); err != nil {
			return nil, fmt.Errorf("scan hours event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hours events: %w", err)
	}
	return events, nil
}

func (q queries) AppendNotification(ctx context.Context, message string) error {
	if _, err := q.db.ExecContext(ctx, `INSERT INTO notifications (message) VALUES (?)`, message); err != nil {
		return fmt.Errorf("append notification: %w", err)
	}
	return nil
}

func (q queries) ListNotifications(ctx context.Context) ([]string, error) {
	return q.listStrings(ctx, `SELECT message FROM notifications ORDER BY seq`, "notifications")
}

func (q queries) AppendPrebilling(ctx context.Context, ticketID string) error {
	if _, err := q.db.ExecContext(ctx, `INSERT INTO prebilling_queue (ticket_id) VALUES (?)`, ticketID); err != nil {
		return fmt.Errorf("append prebilling: %w", err)
	}
	return nil
}

func (q queries) ListPrebilling(ctx context.Context) ([]string, error) {
	return q.listStrings(ctx, `SELECT ticket_id FROM prebilling_queue ORDER BY seq`, "prebilling queue")
}

func (q queries) listStrings(ctx context.Context, query string, label string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", label, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("scan %s: %w", label, err)
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", label, err)
	}
	return values, nil
}

func notFound(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		value = time.Now()
	}
	return value.UTC().Format(timeFormat)
}

func formatSortableTime(value time.Time) string {
	if value.IsZero() {
		value = time.Now()
	}
	return value.UTC().Format(sortableTimeFormat)
}

func parseTime(value string) (time.Time, error) {
	parsed, err := time.Parse(timeFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return parsed, nil
}

var (
	_ storage.Store      = (*Store)(nil)
	_ storage.Repository = queries{}
)
