package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a payment was settled.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentCard         PaymentMethod = "CARD"
	PaymentUPI          PaymentMethod = "UPI"
	PaymentCheque       PaymentMethod = "CHEQUE"
)

// Payment is an append-only record of money received against an invoice.
type Payment struct {
	PaymentID   string          `json:"paymentID"`  // Primary Key (e.g., UUID)
	BusinessID  string          `json:"businessID"` // FK -> Business.businessID (Not Null)
	InvoiceID   string          `json:"invoiceID"`  // FK -> Invoice.invoiceID (Not Null)
	CustomerID  string          `json:"customerID"` // FK -> Customer.customerID (Not Null)
	Amount      decimal.Decimal `json:"amount"`
	Method      PaymentMethod   `json:"method"`
	PaymentDate time.Time       `json:"paymentDate"`
	VoucherID   string          `json:"voucherID"` // Payment voucher posted for this receipt
	AuditFields
}
