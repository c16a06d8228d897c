package repositories

import (
	"context"
	"time"

	"github.com/openbooks/retail_ledger_app/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice header (without line items).
	FindInvoiceByID(ctx context.Context, businessID string, invoiceID string) (*domain.Invoice, error)

	// FindLineItemsByInvoiceID retrieves all line items of an invoice.
	FindLineItemsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceLineItem, error)

	// ListInvoicesByBusiness retrieves a page of invoices, optionally
	// filtered by status, newest first.
	ListInvoicesByBusiness(ctx context.Context, businessID string, limit int, offset int, status *domain.InvoiceStatus) ([]domain.Invoice, error)
}

// InvoiceWriter defines the atomic write operations of the posting engine.
// Every method persists its whole bundle inside one store transaction.
type InvoiceWriter interface {
	// SavePostedInvoice persists an invoice with its ledger voucher, tax
	// transaction, stock decrements, customer balance change and optional
	// immediate payment. The business row is locked to allocate the next
	// invoice number, which is written back into posting.Invoice. Stock
	// decrements are guarded conditional updates and fail the whole bundle
	// with ErrInsufficientStock.
	SavePostedInvoice(ctx context.Context, posting *domain.InvoicePosting) error

	// ApplyPayment updates the invoice's paid amount, balance due and
	// status, posts the payment voucher, appends the payment record and
	// adjusts the customer's cached balance.
	ApplyPayment(ctx context.Context, posting domain.PaymentPosting) error

	// CancelInvoice marks the invoice CANCELLED and persists the
	// compensating voucher, stock returns and balance restoration.
	CancelInvoice(ctx context.Context, posting domain.CancellationPosting) error

	// MarkOverdueInvoices flips unpaid invoices past their due date to
	// OVERDUE and returns the number of rows changed. Idempotent.
	MarkOverdueInvoices(ctx context.Context, asOf time.Time) (int64, error)
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// InvoiceRepositoryWithTx extends InvoiceRepositoryFacade with transaction capabilities
type InvoiceRepositoryWithTx interface {
	InvoiceRepositoryFacade
	TransactionManager
}
