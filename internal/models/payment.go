package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the DB representation of money received against an invoice.
type Payment struct {
	PaymentID   string          `json:"paymentID"`
	BusinessID  string          `json:"businessID"`
	InvoiceID   string          `json:"invoiceID"`
	CustomerID  string          `json:"customerID"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	PaymentDate time.Time       `json:"paymentDate"`
	VoucherID   string          `json:"voucherID"`
	AuditFields
}
