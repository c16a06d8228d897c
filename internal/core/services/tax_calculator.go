package services

import (
	"fmt"
	"strings"

	"github.com/openbooks/retail_ledger_app/internal/apperrors"
	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	portssvc "github.com/openbooks/retail_ledger_app/internal/core/ports/services"
	"github.com/openbooks/retail_ledger_app/internal/taxrules"
	"github.com/openbooks/retail_ledger_app/internal/utils/taxation"
	"github.com/shopspring/decimal"
)

// ErrRateRequired is returned for nexus-based jurisdictions when the caller
// supplies no explicit rate; the state/city rate lookup lives outside the
// engine.
var ErrRateRequired = fmt.Errorf("%w: tax rate must be supplied for nexus-based jurisdictions", apperrors.ErrValidation)

// taxCalculator computes tax from the injected jurisdiction rule tables.
// It is pure: no I/O, no clock, safe for concurrent use.
type taxCalculator struct {
	rules *taxrules.Store
}

// NewTaxCalculator creates a TaxCalculatorSvc backed by the given rule store.
func NewTaxCalculator(rules *taxrules.Store) portssvc.TaxCalculatorSvc {
	return &taxCalculator{rules: rules}
}

var _ portssvc.TaxCalculatorSvc = (*taxCalculator)(nil)

// RuleFor returns the jurisdiction rule for a code.
func (s *taxCalculator) RuleFor(jurisdictionCode string) (domain.JurisdictionRule, error) {
	rule, ok := s.rules.Lookup(jurisdictionCode)
	if !ok {
		return domain.JurisdictionRule{}, fmt.Errorf("%w: no tax rule for jurisdiction %s", apperrors.ErrNotFound, jurisdictionCode)
	}
	return rule, nil
}

// Calculate computes taxable amount, tax amount and the component breakdown
// for one transaction context. The strategy is selected once from the
// jurisdiction's declared regime.
func (s *taxCalculator) Calculate(taxCtx domain.TaxContext) (domain.TaxResult, error) {
	rule, err := s.RuleFor(taxCtx.BusinessJurisdiction)
	if err != nil {
		return domain.TaxResult{}, err
	}

	if taxCtx.Amount.IsNegative() {
		return domain.TaxResult{}, fmt.Errorf("%w: taxable amount must not be negative", apperrors.ErrValidation)
	}
	if taxCtx.ExplicitRate != nil && taxCtx.ExplicitRate.IsNegative() {
		return domain.TaxResult{}, fmt.Errorf("%w: tax rate must not be negative", apperrors.ErrValidation)
	}

	if reason, exempt := exemptionReason(rule, taxCtx.ProductCategory); exempt {
		return domain.TaxResult{
			TaxableAmount:   taxCtx.Amount,
			TaxAmount:       decimal.Zero,
			TaxRate:         decimal.Zero,
			ExemptionReason: reason,
		}, nil
	}

	var result domain.TaxResult
	switch rule.Regime {
	case domain.RegimeGST:
		result = calculateGST(rule, taxCtx)
	case domain.RegimeVAT:
		result = calculateVAT(rule, taxCtx)
	case domain.RegimeSalesTax:
		if taxCtx.ExplicitRate == nil {
			return domain.TaxResult{}, ErrRateRequired
		}
		result = calculateSalesTax(rule, taxCtx)
	case domain.RegimeGeneric:
		result = calculateGeneric(rule, taxCtx)
	default:
		return domain.TaxResult{}, fmt.Errorf("%w: unknown tax regime %s", apperrors.ErrInternal, rule.Regime)
	}

	if result.TaxAmount.IsPositive() {
		if err := taxation.ValidateComponentSum(result.Components, result.TaxAmount); err != nil {
			// A calculation defect, never a valid state.
			return domain.TaxResult{}, fmt.Errorf("%w: %v", apperrors.ErrUnbalanced, err)
		}
	}
	return result, nil
}

// exemptionReason checks the rule's exempt category list.
func exemptionReason(rule domain.JurisdictionRule, category string) (string, bool) {
	if category == "" {
		return "", false
	}
	for _, exempt := range rule.ExemptCategories {
		if strings.EqualFold(exempt, category) {
			return fmt.Sprintf("category %s is tax-exempt in %s", exempt, rule.JurisdictionCode), true
		}
	}
	return "", false
}

// effectiveRate picks the caller-supplied rate if present, falling back to
// the jurisdiction standard rate.
func effectiveRate(rule domain.JurisdictionRule, taxCtx domain.TaxContext) decimal.Decimal {
	if taxCtx.ExplicitRate != nil {
		return *taxCtx.ExplicitRate
	}
	return rule.StandardRate
}

func calculateGST(rule domain.JurisdictionRule, taxCtx domain.TaxContext) domain.TaxResult {
	rate := effectiveRate(rule, taxCtx)
	taxAmount := taxation.TaxFromRate(taxCtx.Amount, rate)

	components := make(map[string]decimal.Decimal, 2)
	if taxCtx.CounterpartLocation == taxCtx.BusinessJurisdiction {
		// Intra-jurisdiction supply splits evenly into the component pair.
		first, second := taxation.SplitEven(taxAmount)
		components[rule.IntraComponentNames[0]] = first
		components[rule.IntraComponentNames[1]] = second
	} else {
		components[rule.InterComponentName] = taxAmount
	}

	return domain.TaxResult{
		TaxableAmount: taxCtx.Amount,
		TaxAmount:     taxAmount,
		TaxRate:       rate,
		Components:    components,
	}
}

func calculateVAT(rule domain.JurisdictionRule, taxCtx domain.TaxContext) domain.TaxResult {
	rate := effectiveRate(rule, taxCtx)
	taxAmount := taxation.TaxFromRate(taxCtx.Amount, rate)
	return domain.TaxResult{
		TaxableAmount: taxCtx.Amount,
		TaxAmount:     taxAmount,
		TaxRate:       rate,
		Components:    map[string]decimal.Decimal{rule.ComponentName: taxAmount},
	}
}

func calculateSalesTax(rule domain.JurisdictionRule, taxCtx domain.TaxContext) domain.TaxResult {
	rate := *taxCtx.ExplicitRate
	taxAmount := taxation.TaxFromRate(taxCtx.Amount, rate)

	// Annotate the component with the collecting jurisdiction.
	componentName := rule.ComponentName
	if taxCtx.CounterpartLocation != "" {
		componentName = fmt.Sprintf("%s_%s", rule.ComponentName, taxCtx.CounterpartLocation)
	}

	return domain.TaxResult{
		TaxableAmount: taxCtx.Amount,
		TaxAmount:     taxAmount,
		TaxRate:       rate,
		Components:    map[string]decimal.Decimal{componentName: taxAmount},
	}
}

func calculateGeneric(rule domain.JurisdictionRule, taxCtx domain.TaxContext) domain.TaxResult {
	components := make(map[string]decimal.Decimal, len(rule.Components))
	taxAmount := decimal.Zero
	rateSum := decimal.Zero
	for _, comp := range rule.Components {
		if comp.VariableRate {
			// No fixed percentage on file; collected outside the engine.
			continue
		}
		amount := taxation.TaxFromRate(taxCtx.Amount, comp.Rate)
		// Same-named components (employer/employee splits) accumulate.
		components[comp.Name] = components[comp.Name].Add(amount)
		taxAmount = taxAmount.Add(amount)
		rateSum = rateSum.Add(comp.Rate)
	}

	return domain.TaxResult{
		TaxableAmount: taxCtx.Amount,
		TaxAmount:     taxAmount,
		TaxRate:       rateSum,
		Components:    components,
	}
}
