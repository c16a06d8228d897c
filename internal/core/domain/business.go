package domain

import "github.com/shopspring/decimal"

// Business represents the selling entity that owns invoices, ledger
// entries and inventory. Its jurisdiction code selects the tax rule set
// applied to every transaction it posts.
type Business struct {
	BusinessID       string          `json:"businessID"`       // Primary Key (e.g., UUID)
	Name             string          `json:"name"`             // Legal/trading name
	JurisdictionCode string          `json:"jurisdictionCode"` // e.g. "IN", "GB", "US-CA"
	RegistrationID   string          `json:"registrationID"`   // Tax registration number; empty if unregistered
	DefaultTaxRate   decimal.Decimal `json:"defaultTaxRate"`   // Percentage; overrides the rule standard rate when set
	PaymentTermDays  int             `json:"paymentTermDays"`  // Default due-date offset for invoices
	CurrencyCode     string          `json:"currencyCode"`     // Invoicing currency (Not Null)
	AnnualTurnover   decimal.Decimal `json:"annualTurnover"`   // Rolling turnover, compared against registration thresholds
	AuditFields
}
