package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is the DB representation of a buyer.
type Customer struct {
	CustomerID       string          `json:"customerID"`
	BusinessID       string          `json:"businessID"`
	Name             string          `json:"name"`
	JurisdictionCode string          `json:"jurisdictionCode"`
	RegistrationID   string          `json:"registrationID"`
	Balance          decimal.Decimal `json:"balance"`
	LastInvoiceDate  *time.Time      `json:"lastInvoiceDate"`
	AuditFields
}
