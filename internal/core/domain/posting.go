package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoicePosting bundles every record the invoice orchestrator produces
// for one invoice. The repository persists the whole bundle in a single
// store transaction: either all of it commits or none of it does.
type InvoicePosting struct {
	Invoice        Invoice
	LineItems      []InvoiceLineItem
	Voucher        Voucher
	Entries        []LedgerEntry
	TaxTransaction *TaxTransaction // Nil for exempt/zero-tax invoices
	// StockDeltas maps product ID to the signed quantity change (negative
	// for sales). Applied as guarded conditional decrements.
	StockDeltas map[string]decimal.Decimal
	Movements   []StockMovement
	// CustomerBalanceDelta is added to the customer's cached receivable.
	CustomerBalanceDelta decimal.Decimal
	Payment              *Payment // Immediate payment recorded with the invoice, if any
}

// PaymentPosting bundles the records produced by recording a payment
// against an existing invoice.
type PaymentPosting struct {
	InvoiceID            string
	PaidAmount           decimal.Decimal // New cumulative paid amount
	ExpectedPaidAmount   decimal.Decimal // Cumulative paid amount the caller computed from; guards the write
	BalanceDue           decimal.Decimal
	Status               InvoiceStatus
	Voucher              Voucher
	Entries              []LedgerEntry
	Payment              Payment
	CustomerID           string
	CustomerBalanceDelta decimal.Decimal // Negative: the receivable shrinks
	UpdatedBy            string
	UpdatedAt            time.Time
}

// CancellationPosting bundles the compensating records produced by
// cancelling an invoice: a reversing voucher, RETURN stock movements and
// the customer balance restoration.
type CancellationPosting struct {
	InvoiceID            string
	Voucher              Voucher
	Entries              []LedgerEntry
	StockDeltas          map[string]decimal.Decimal // Positive: stock comes back
	Movements            []StockMovement
	CustomerID           string
	CustomerBalanceDelta decimal.Decimal
	UpdatedBy            string
	UpdatedAt            time.Time
}
