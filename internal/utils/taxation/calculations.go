package taxation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ComponentTolerance is the maximum acceptable difference between the sum
// of a tax's named components and its total, in currency units.
var ComponentTolerance = decimal.NewFromFloat(0.01)

var hundred = decimal.NewFromInt(100)

// TaxFromRate computes amount * rate/100, rounded to 2 decimal places.
func TaxFromRate(amount, ratePercent decimal.Decimal) decimal.Decimal {
	return amount.Mul(ratePercent).Div(hundred).Round(2)
}

// SplitEven divides a tax amount into two components that sum exactly to
// the original. The first half takes any rounding remainder.
func SplitEven(taxAmount decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	half := taxAmount.Div(decimal.NewFromInt(2)).Round(2)
	return taxAmount.Sub(half), half
}

// ValidateComponentSum checks that the named components of a tax sum to
// the tax amount within ComponentTolerance.
func ValidateComponentSum(components map[string]decimal.Decimal, taxAmount decimal.Decimal) error {
	sum := decimal.Zero
	for _, v := range components {
		sum = sum.Add(v)
	}
	if sum.Sub(taxAmount).Abs().GreaterThan(ComponentTolerance) {
		return fmt.Errorf("tax components sum to %s but tax amount is %s", sum.String(), taxAmount.String())
	}
	return nil
}
