package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountClass defines the fundamental accounting class of a ledger account.
type AccountClass string

const (
	Asset      AccountClass = "ASSET"
	Liability  AccountClass = "LIABILITY"
	Income     AccountClass = "INCOME"
	Expense    AccountClass = "EXPENSE"
	Receivable AccountClass = "RECEIVABLE"
)

// VoucherStatus indicates the state of a posted voucher.
type VoucherStatus string

const (
	VoucherPosted   VoucherStatus = "POSTED"
	VoucherReversed VoucherStatus = "REVERSED"
)

// VoucherType labels the business event a voucher records.
type VoucherType string

const (
	VoucherSale       VoucherType = "SALE"
	VoucherPurchase   VoucherType = "PURCHASE"
	VoucherPayment    VoucherType = "PAYMENT"
	VoucherAdjustment VoucherType = "ADJUSTMENT"
)

// Voucher is a named batch of ledger entries posted atomically. Its
// reference is the idempotency key: posting the same reference twice is
// rejected as a duplicate.
type Voucher struct {
	VoucherID         string          `json:"voucherID"`  // Primary Key (e.g., UUID)
	BusinessID        string          `json:"businessID"` // FK -> Business.businessID (Not Null)
	Reference         string          `json:"reference"`  // Unique per business; ties back to the originating document
	VoucherType       VoucherType     `json:"voucherType"`
	VoucherDate       time.Time       `json:"voucherDate"`
	Description       string          `json:"description"`
	CurrencyCode      string          `json:"currencyCode"`
	Amount            decimal.Decimal `json:"amount"` // Debit-side total; the economic value of the voucher
	Status            VoucherStatus   `json:"status"`
	OriginalVoucherID *string         `json:"originalVoucherID,omitempty"` // Set when this voucher reverses another
	AuditFields
}

// LedgerEntry is a single debit or credit line within a voucher. Entries
// are immutable once posted; corrections are new offsetting entries.
type LedgerEntry struct {
	EntryID      string          `json:"entryID"`   // Primary Key (e.g., UUID)
	VoucherID    string          `json:"voucherID"` // FK -> Voucher.voucherID (Not Null)
	AccountName  string          `json:"accountName"`
	AccountClass AccountClass    `json:"accountClass"`
	Debit        decimal.Decimal `json:"debit"`  // Zero when Credit is set
	Credit       decimal.Decimal `json:"credit"` // Zero when Debit is set
	EntryDate    time.Time       `json:"entryDate"`
	Description  string          `json:"description"`
	AuditFields
}
