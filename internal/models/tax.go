package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxTransaction is the DB representation of the tax liability produced by
// one voucher. Components are stored as a JSONB column.
type TaxTransaction struct {
	TaxTransactionID string                     `json:"taxTransactionID"`
	BusinessID       string                     `json:"businessID"`
	VoucherID        string                     `json:"voucherID"`
	CustomerID       string                     `json:"customerID"`
	Regime           string                     `json:"regime"`
	Direction        string                     `json:"direction"`
	TaxRate          decimal.Decimal            `json:"taxRate"`
	TaxableAmount    decimal.Decimal            `json:"taxableAmount"`
	TaxAmount        decimal.Decimal            `json:"taxAmount"`
	Components       map[string]decimal.Decimal `json:"components"`
	AuditFields
}

// TaxFilingPeriod is the DB representation of one filing window.
type TaxFilingPeriod struct {
	FilingPeriodID string     `json:"filingPeriodID"`
	BusinessID     string     `json:"businessID"`
	PeriodLabel    string     `json:"periodLabel"`
	DueDate        time.Time  `json:"dueDate"`
	Filed          bool       `json:"filed"`
	FiledOn        *time.Time `json:"filedOn"`
}
