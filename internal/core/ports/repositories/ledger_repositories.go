package repositories

import (
	"context"

	"github.com/openbooks/retail_ledger_app/internal/core/domain"
)

// VoucherReader defines read operations for voucher and ledger data
type VoucherReader interface {
	// FindVoucherByID retrieves a voucher header by its ID.
	FindVoucherByID(ctx context.Context, businessID string, voucherID string) (*domain.Voucher, error)

	// FindVoucherByReference retrieves a voucher by its unique reference.
	FindVoucherByReference(ctx context.Context, businessID string, reference string) (*domain.Voucher, error)

	// FindEntriesByVoucherID retrieves all ledger entries of a voucher.
	FindEntriesByVoucherID(ctx context.Context, voucherID string) ([]domain.LedgerEntry, error)
}

// VoucherWriter defines write operations for standalone vouchers
type VoucherWriter interface {
	// SaveVoucher persists a voucher and its entries atomically. A
	// duplicate reference is rejected with ErrDuplicate.
	SaveVoucher(ctx context.Context, voucher domain.Voucher, entries []domain.LedgerEntry) error

	// MarkVoucherReversed links a voucher to the voucher that reversed it.
	MarkVoucherReversed(ctx context.Context, voucherID string, reversingVoucherID string, updatedBy string) error
}

// VoucherRepositoryFacade combines all ledger-related repository interfaces
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
}
