package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Voucher is the DB representation of a posted ledger voucher.
type Voucher struct {
	VoucherID         string          `json:"voucherID"`
	BusinessID        string          `json:"businessID"`
	Reference         string          `json:"reference"`
	VoucherType       string          `json:"voucherType"`
	VoucherDate       time.Time       `json:"voucherDate"`
	Description       string          `json:"description"`
	CurrencyCode      string          `json:"currencyCode"`
	Amount            decimal.Decimal `json:"amount"`
	Status            string          `json:"status"`
	OriginalVoucherID *string         `json:"originalVoucherID"`
	AuditFields
}

// LedgerEntry is the DB representation of one debit or credit line.
type LedgerEntry struct {
	EntryID      string          `json:"entryID"`
	VoucherID    string          `json:"voucherID"`
	AccountName  string          `json:"accountName"`
	AccountClass string          `json:"accountClass"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	EntryDate    time.Time       `json:"entryDate"`
	Description  string          `json:"description"`
	AuditFields
}
