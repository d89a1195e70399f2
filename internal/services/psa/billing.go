package psa

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/crmrmm/console/internal/platform/errors"
	"github.com/crmrmm/console/internal/services/psa/domain"
	"github.com/crmrmm/console/internal/services/psa/storage"
)

// InvoiceTimeEntry bills a billable time entry at the client's contract
// rate, or domain.DefaultInvoiceHourlyRate without a contract. Hours-bank
// contracts, non-billable entries and a zero rate produce no invoice and
// report false. An entry is invoiced at most once; later calls return the
// existing invoice and false.
func (e *Engine) InvoiceTimeEntry(ctx context.Context, entryID string) (domain.Invoice, bool, error) {
	invoiceID, err := e.newID(domain.InvoiceIDPrefix)
	if err != nil {
		return domain.Invoice{}, false, fmt.Errorf("generate invoice id: %w", err)
	}
	now := e.now().UTC()

	e.mu.Lock()
	defer e.mu.Unlock()

	var (
		result  domain.Invoice
		created bool
	)
	err = e.store.Transact(ctx, func(repo storage.Repository) error {
		entry, err := requireTimeEntry(ctx, repo, entryID)
		if err != nil {
			return err
		}
		if entry.InvoiceID != "" {
			result, err = repo.GetInvoice(ctx, entry.InvoiceID)
			return err
		}
		if !entry.Billable {
			return nil
		}
		ticket, err := requireTicket(ctx, repo, entry.TicketID)
		if err != nil {
			return err
		}
		contract, found, err := activeContract(ctx, repo, ticket.ClientID)
		if err != nil {
			return err
		}
		rate := domain.DefaultInvoiceHourlyRate
		if found {
			if contract.Type == domain.ContractTypeHoursBank {
				return nil
			}
			rate = contract.HourlyRate
		}
		if rate <= 0 {
			return nil
		}

		invoice := domain.Invoice{
			ID:          invoiceID,
			ClientID:    ticket.ClientID,
			Status:      domain.InvoiceStatusDraft,
			Amount:      domain.RoundAmount(rate * entry.Hours()),
			Description: domain.TimeInvoiceDescription(ticket.ID),
			CreatedAt:   now,
		}
		if err := repo.PutInvoice(ctx, invoice); err != nil {
			return err
		}
		entry.InvoiceID = invoice.ID
		if err := repo.PutTimeEntry(ctx, entry); err != nil {
			return err
		}
		result, created = invoice, true
		return nil
	})
	if err != nil {
		return domain.Invoice{}, false, err
	}
	return result, created, nil
}

// InvoiceSubscription bills one month of a subscription contract:
// MonthlyPrice times MonthlyUnits, rounded to cents.
func (e *Engine) InvoiceSubscription(ctx context.Context, contractID string) (domain.Invoice, error) {
	invoiceID, err := e.newID(domain.InvoiceIDPrefix)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("generate invoice id: %w", err)
	}
	now := e.now().UTC()

	e.mu.Lock()
	defer e.mu.Unlock()

	var result domain.Invoice
	err = e.store.Transact(ctx, func(repo storage.Repository) error {
		contract, err := requireContract(ctx, repo, contractID)
		if err != nil {
			return err
		}
		meta := map[string]string{"ContractID": contract.ID}
		if contract.Type != domain.ContractTypeSubscription {
			return apperrors.WithMetadata(
				apperrors.CodeContractNotSubscription,
				"contract is not a subscription: "+contract.ID,
				meta,
			)
		}
		amount := domain.RoundAmount(contract.MonthlyPrice * float64(contract.MonthlyUnits))
		if amount <= 0 {
			return apperrors.WithMetadata(
				apperrors.CodeSubscriptionAmountInvalid,
				fmt.Sprintf("subscription amount must be positive, got %.2f", amount),
				meta,
			)
		}
		result = domain.Invoice{
			ID:          invoiceID,
			ClientID:    contract.ClientID,
			Status:      domain.InvoiceStatusDraft,
			Amount:      amount,
			Description: domain.SubscriptionInvoiceDescription(contract.ID),
			CreatedAt:   now,
		}
		return repo.PutInvoice(ctx, result)
	})
	if err != nil {
		return domain.Invoice{}, err
	}
	return result, nil
}

// SetInvoiceStatus moves an invoice to status.
func (e *Engine) SetInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus) (domain.Invoice, error) {
	if !status.Valid() {
		return domain.Invoice{}, apperrors.New(apperrors.CodeInvalidArgument, "unknown invoice status: "+string(status))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var result domain.Invoice
	err := e.store.Transact(ctx, func(repo storage.Repository) error {
		invoice, err := repo.GetInvoice(ctx, invoiceID)
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.Wrap(apperrors.CodeNotFound, "unknown invoice: "+invoiceID, err)
		}
		if err != nil {
			return err
		}
		invoice.Status = status
		if err := repo.PutInvoice(ctx, invoice); err != nil {
			return err
		}
		result = invoice
		return nil
	})
	if err != nil {
		return domain.Invoice{}, err
	}
	return result, nil
}

// Invoices returns every invoice in creation order.
func (e *Engine) Invoices(ctx context.Context) ([]domain.Invoice, error) {
	return e.store.ListInvoices(ctx)
}
