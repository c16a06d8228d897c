package services

import (
	"github.com/openbooks/retail_ledger_app/internal/core/domain"
)

// TaxCalculatorSvc defines the pure tax calculation contract. It performs
// no I/O; the jurisdiction rule tables are injected at construction.
type TaxCalculatorSvc interface {
	// Calculate computes taxable amount, tax amount and the named
	// component breakdown for one transaction context.
	Calculate(taxCtx domain.TaxContext) (domain.TaxResult, error)

	// RuleFor returns the jurisdiction rule used for a code, or
	// ErrNotFound if the jurisdiction is unknown.
	RuleFor(jurisdictionCode string) (domain.JurisdictionRule, error)
}
