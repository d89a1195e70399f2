package domain

import (
	"fmt"
	"math"
	"time"
)

const (
	// DefaultAlertThresholdHours is the hours-bank balance that triggers a notification.
	DefaultAlertThresholdHours = 2.0
	// DefaultHourlyRate prices billable time for clients without a contract.
	DefaultHourlyRate = 100.0
	// DefaultInvoiceHourlyRate prices an automatic time invoice for a client
	// without a contract.
	DefaultInvoiceHourlyRate = 120.0
	// AlertWindow bounds the recent alerts counted on the dashboard.
	AlertWindow = 24 * time.Hour
)

// ID prefixes for each record kind.
const (
	ClientIDPrefix       = "cli"
	ContractIDPrefix     = "ctr"
	TicketIDPrefix       = "tic"
	TimeEntryIDPrefix    = "tim"
	InvoiceIDPrefix      = "inv"
	AlertIDPrefix        = "alr"
	InterventionIDPrefix = "itv"
)

// Client is a customer account.
type Client struct {
	ID   string
	Name string
	// Email is optional.
	Email     string
	CreatedAt time.Time
}

// Contract binds a client to a billing model.
type Contract struct {
	ID             string
	ClientID       string
	Type           ContractType
	HourlyRate     float64
	TotalHours     float64
	RemainingHours float64
	// AlertThresholdHours is compared against RemainingHours after each consumption.
	AlertThresholdHours float64
	// MonthlyPrice and MonthlyUnits price a subscription invoice.
	MonthlyPrice float64
	MonthlyUnits int
	CreatedAt    time.Time
}

// Ticket is a unit of support work.
type Ticket struct {
	ID                      string
	ClientID                string
	Title                   string
	Description             string
	MachineID               string
	TechnicianID            string
	Status                  TicketStatus
	Priority                Priority
	CreatedAt               time.Time
	TotalMinutes            int
	BillableMinutes         int
	EstimatedBillableAmount float64
	PrebillingQueued        bool
}

// TimeEntry records technician time against a ticket. It only affects the
// ticket and contract once validated.
type TimeEntry struct {
	ID           string
	TicketID     string
	TechnicianID string
	Minutes      int
	Billable     bool
	Validated    bool
	// InvoiceID is set once the entry has been invoiced.
	InvoiceID string
	CreatedAt time.Time
}

// Hours returns the entry duration in hours.
func (e TimeEntry) Hours() float64 {
	return float64(e.Minutes) / 60.0
}

// Invoice is an amount owed by a client.
type Invoice struct {
	ID          string
	ClientID    string
	Status      InvoiceStatus
	Amount      float64
	Description string
	CreatedAt   time.Time
}

// Alert is an RMM alert raised on a client machine.
type Alert struct {
	ID        string
	ClientID  string
	MachineID string
	Severity  AlertSeverity
	Title     string
	Details   string
	// TicketID links the ticket opened for the alert, if any.
	TicketID  string
	CreatedAt time.Time
}

// Intervention schedules a technician on a ticket.
type Intervention struct {
	ID           string
	TicketID     string
	TechnicianID string
	StartsAt     time.Time
	EndsAt       time.Time
	Remote       bool
}

// DashboardCounts summarizes the PSA state for the dashboard.
type DashboardCounts struct {
	Clients        int
	OpenTickets    int
	Alerts24h      int
	UnpaidInvoices int
}

// HoursEvent records one hours-bank consumption.
type HoursEvent struct {
	ClientID      string
	ContractID    string
	BeforeHours   float64
	ConsumedHours float64
	AfterHours    float64
}

// ThresholdNotification renders the message emitted when a contract's balance
// reaches its alert threshold.
func ThresholdNotification(contract Contract) string {
	return fmt.Sprintf(
		"Alerte: contrat %s du client %s sous seuil (%.2fh restantes).",
		contract.ID,
		contract.ClientID,
		contract.RemainingHours,
	)
}

// RoundAmount rounds a currency amount to cents.
func RoundAmount(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// TimeInvoiceDescription describes an invoice generated from ticket time.
func TimeInvoiceDescription(ticketID string) string {
	return "Facturation automatique ticket #" + ticketID
}

// SubscriptionInvoiceDescription describes a monthly subscription invoice.
func SubscriptionInvoiceDescription(contractID string) string {
	return "Abonnement mensuel contrat #" + contractID
}

// AlertTicketDescription is the body of a ticket opened from an alert.
func AlertTicketDescription(title, details string) string {
	return fmt.Sprintf("[ALERTE] %s - %s", title, details)
}

// AlertTicketTitle names a ticket opened from an RMM alert.
func AlertTicketTitle(alertName string) string {
	return "Alerte RMM: " + alertName
}
