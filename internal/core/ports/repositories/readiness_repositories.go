package repositories

import (
	"context"
	"time"

	"github.com/openbooks/retail_ledger_app/internal/core/domain"
)

// ReadinessReader defines the read-only queries behind the tax readiness
// scorer. Every method tolerates empty data by returning an empty slice.
type ReadinessReader interface {
	// FindSaleVouchersWithoutInvoice retrieves sales vouchers in the
	// period that no invoice record links back to.
	FindSaleVouchersWithoutInvoice(ctx context.Context, businessID string, from, to time.Time) ([]domain.Voucher, error)

	// FindTaxTransactionsByPeriod retrieves all tax transactions recorded
	// in the period.
	FindTaxTransactionsByPeriod(ctx context.Context, businessID string, from, to time.Time) ([]domain.TaxTransaction, error)

	// FindPurchaseTaxWithoutRegistration retrieves purchase-side tax
	// transactions whose counterparty has no registration ID on file, so
	// their input tax credit cannot be claimed.
	FindPurchaseTaxWithoutRegistration(ctx context.Context, businessID string, from, to time.Time) ([]domain.TaxTransaction, error)

	// FindOverdueFilingPeriods retrieves filing periods past their due
	// date and not marked filed.
	FindOverdueFilingPeriods(ctx context.Context, businessID string, asOf time.Time) ([]domain.TaxFilingPeriod, error)
}

// ReadinessRepositoryFacade combines the readiness repository interfaces
type ReadinessRepositoryFacade interface {
	ReadinessReader
}
