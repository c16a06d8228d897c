package models

import "github.com/shopspring/decimal"

// Business is the DB representation of a selling entity.
type Business struct {
	BusinessID       string          `json:"businessID"`
	Name             string          `json:"name"`
	JurisdictionCode string          `json:"jurisdictionCode"`
	RegistrationID   string          `json:"registrationID"`
	DefaultTaxRate   decimal.Decimal `json:"defaultTaxRate"`
	PaymentTermDays  int             `json:"paymentTermDays"`
	CurrencyCode     string          `json:"currencyCode"`
	AnnualTurnover   decimal.Decimal `json:"annualTurnover"`
	AuditFields
}
