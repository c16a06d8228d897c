package accounting

import (
	"fmt"

	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum acceptable debit/credit drift from
// floating rounding, in currency units.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// ValidateVoucherBalance checks that the entries of a voucher balance:
// sum(debit) must equal sum(credit) within BalanceTolerance.
// This is used in both services and repositories to ensure consistent
// accounting logic.
func ValidateVoucherBalance(entries []domain.LedgerEntry) error {
	if len(entries) < 2 {
		return fmt.Errorf("voucher must have at least two ledger entries, got %d", len(entries))
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, e := range entries {
		if e.Debit.IsNegative() || e.Credit.IsNegative() {
			return fmt.Errorf("ledger entry %s has a negative amount", e.EntryID)
		}
		if e.Debit.IsPositive() && e.Credit.IsPositive() {
			return fmt.Errorf("ledger entry %s sets both debit and credit", e.EntryID)
		}
		debits = debits.Add(e.Debit)
		credits = credits.Add(e.Credit)
	}

	if debits.Sub(credits).Abs().GreaterThan(BalanceTolerance) {
		return fmt.Errorf("debits sum is %s and credits sum is %s", debits.String(), credits.String())
	}
	return nil
}

// VoucherAmount computes the economic value of a balanced voucher: the
// debit-side total.
func VoucherAmount(entries []domain.LedgerEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Debit)
	}
	return total
}
