package services

import (
	"context"

	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	"github.com/openbooks/retail_ledger_app/internal/dto"
)

// LedgerReaderSvc defines read operations for vouchers and ledger entries
type LedgerReaderSvc interface {
	// GetVoucher retrieves a voucher with its ledger entries.
	GetVoucher(ctx context.Context, businessID string, voucherID string) (*domain.Voucher, []domain.LedgerEntry, error)
}

// LedgerWriterSvc defines write operations for standalone vouchers
type LedgerWriterSvc interface {
	// PostVoucher validates balance and persists a manual voucher atomically.
	PostVoucher(ctx context.Context, businessID string, req dto.PostVoucherRequest, creatorUserID string) (*domain.Voucher, error)

	// ReverseVoucher posts a new voucher with debits and credits swapped,
	// marking the original REVERSED.
	ReverseVoucher(ctx context.Context, businessID string, voucherID string, userID string) (*domain.Voucher, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
