package services

import (
	"context"
	"time"

	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	"github.com/openbooks/retail_ledger_app/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves an invoice with its line items.
	GetInvoiceByID(ctx context.Context, businessID string, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a page of invoices for a business.
	ListInvoices(ctx context.Context, businessID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)

	// ListInvoicePayments retrieves the payments recorded against an
	// invoice, oldest first.
	ListInvoicePayments(ctx context.Context, businessID string, invoiceID string) ([]domain.Payment, error)
}

// InvoiceWriterSvc defines the posting operations of the invoice orchestrator
type InvoiceWriterSvc interface {
	// CreateInvoice validates the request, computes tax per line, and
	// persists the invoice together with its ledger voucher, tax
	// transaction, stock decrements and customer balance change as one
	// atomic unit.
	CreateInvoice(ctx context.Context, businessID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// RecordPayment applies a payment to an invoice, re-deriving its paid
	// amount, balance due and status, and posting the payment voucher.
	RecordPayment(ctx context.Context, businessID string, invoiceID string, req dto.RecordPaymentRequest, userID string) (*domain.Invoice, error)

	// CancelInvoice marks an invoice CANCELLED, posting the compensating
	// voucher and restoring stock and customer balance.
	CancelInvoice(ctx context.Context, businessID string, invoiceID string, userID string) (*domain.Invoice, error)

	// MarkOverdueInvoices flips unpaid invoices past their due date to
	// OVERDUE. Safe to run on any cadence.
	MarkOverdueInvoices(ctx context.Context, asOf time.Time) (int64, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
