package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer represents a buyer. Balance is a cached receivable figure,
// updated in the same store transaction as the invoice or payment that
// changes it; it must always reconcile to the sum of balanceDue across the
// customer's non-cancelled invoices.
type Customer struct {
	CustomerID       string          `json:"customerID"`       // Primary Key (e.g., UUID)
	BusinessID       string          `json:"businessID"`       // FK -> Business.businessID (Not Null)
	Name             string          `json:"name"`
	JurisdictionCode string          `json:"jurisdictionCode"` // Buyer location; drives intra/inter jurisdiction tax split
	RegistrationID   string          `json:"registrationID"`   // Counterparty tax registration; required to claim input credit
	Balance          decimal.Decimal `json:"balance"`          // Signed receivable, cached
	LastInvoiceDate  *time.Time      `json:"lastInvoiceDate"`  // Nullable
	AuditFields
}
