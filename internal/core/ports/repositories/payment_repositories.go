package repositories

import (
	"context"

	"github.com/openbooks/retail_ledger_app/internal/core/domain"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// ListPaymentsByInvoice retrieves payments recorded against an
	// invoice, oldest first.
	ListPaymentsByInvoice(ctx context.Context, businessID string, invoiceID string) ([]domain.Payment, error)
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
}
