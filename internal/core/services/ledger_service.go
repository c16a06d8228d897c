package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/openbooks/retail_ledger_app/internal/apperrors"
	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/openbooks/retail_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/openbooks/retail_ledger_app/internal/core/ports/services"
	"github.com/openbooks/retail_ledger_app/internal/dto"
	"github.com/openbooks/retail_ledger_app/internal/middleware"
	"github.com/openbooks/retail_ledger_app/internal/utils/accounting"
)

var ErrVoucherReversed = errors.New("voucher is already reversed")

// ledgerService posts and reverses standalone vouchers. Invoice-driven
// vouchers are produced by the invoice orchestrator instead.
type ledgerService struct {
	businessRepo portsrepo.BusinessRepositoryFacade
	voucherRepo  portsrepo.VoucherRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(voucherRepo portsrepo.VoucherRepositoryFacade, businessRepo portsrepo.BusinessRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		businessRepo: businessRepo,
		voucherRepo:  voucherRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetVoucher retrieves a voucher and its entries.
func (s *ledgerService) GetVoucher(ctx context.Context, businessID string, voucherID string) (*domain.Voucher, []domain.LedgerEntry, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, businessID, voucherID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.voucherRepo.FindEntriesByVoucherID(ctx, voucherID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load entries for voucher %s: %w", voucherID, err)
	}
	return voucher, entries, nil
}

// PostVoucher validates the double-entry balance of a manual voucher and
// persists it. The reference is the idempotency key; reposting the same
// reference is rejected with ErrDuplicate.
func (s *ledgerService) PostVoucher(ctx context.Context, businessID string, req dto.PostVoucherRequest, creatorUserID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	business, err := s.businessRepo.FindBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	voucherDate := now
	if req.VoucherDate != nil {
		voucherDate = req.VoucherDate.UTC()
	}

	voucherID := uuid.NewString()
	entries := make([]domain.LedgerEntry, len(req.Entries))
	for i, entryReq := range req.Entries {
		if entryReq.Debit.IsNegative() || entryReq.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: ledger amounts must not be negative", apperrors.ErrValidation)
		}
		if entryReq.Debit.IsPositive() == entryReq.Credit.IsPositive() {
			return nil, fmt.Errorf("%w: exactly one of debit or credit must be positive for account %s", apperrors.ErrValidation, entryReq.AccountName)
		}
		entries[i] = domain.LedgerEntry{
			EntryID:      uuid.NewString(),
			VoucherID:    voucherID,
			AccountName:  entryReq.AccountName,
			AccountClass: entryReq.AccountClass,
			Debit:        entryReq.Debit,
			Credit:       entryReq.Credit,
			EntryDate:    voucherDate,
			Description:  entryReq.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
	}

	if err := accounting.ValidateVoucherBalance(entries); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnbalanced, err)
	}

	voucher := domain.Voucher{
		VoucherID:    voucherID,
		BusinessID:   businessID,
		Reference:    req.Reference,
		VoucherType:  req.VoucherType,
		VoucherDate:  voucherDate,
		Description:  req.Description,
		CurrencyCode: business.CurrencyCode,
		Amount:       accounting.VoucherAmount(entries),
		Status:       domain.VoucherPosted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.voucherRepo.SaveVoucher(ctx, voucher, entries); err != nil {
		logger.Error("Failed to save voucher", slog.String("error", err.Error()), slog.String("reference", req.Reference))
		return nil, err
	}

	logger.Info("Voucher posted", slog.String("voucher_id", voucherID), slog.String("reference", req.Reference))
	return &voucher, nil
}

// ReverseVoucher posts a compensating voucher whose entries mirror the
// original with debits and credits swapped, and marks the original
// REVERSED. Reversing twice is rejected.
func (s *ledgerService) ReverseVoucher(ctx context.Context, businessID string, voucherID string, userID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.voucherRepo.FindVoucherByID(ctx, businessID, voucherID)
	if err != nil {
		return nil, err
	}
	if original.Status == domain.VoucherReversed {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConflict, ErrVoucherReversed)
	}

	originalEntries, err := s.voucherRepo.FindEntriesByVoucherID(ctx, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for voucher %s: %w", voucherID, err)
	}

	now := time.Now().UTC()
	reversingID := uuid.NewString()
	reversingEntries := ReverseEntries(originalEntries, reversingID, now, userID)

	reversing := domain.Voucher{
		VoucherID:         reversingID,
		BusinessID:        businessID,
		Reference:         "REV-" + original.Reference,
		VoucherType:       domain.VoucherAdjustment,
		VoucherDate:       now,
		Description:       fmt.Sprintf("Reversal of %s", original.Reference),
		CurrencyCode:      original.CurrencyCode,
		Amount:            original.Amount,
		Status:            domain.VoucherPosted,
		OriginalVoucherID: &original.VoucherID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.voucherRepo.SaveVoucher(ctx, reversing, reversingEntries); err != nil {
		logger.Error("Failed to save reversing voucher", slog.String("error", err.Error()), slog.String("original_voucher_id", voucherID))
		return nil, err
	}
	if err := s.voucherRepo.MarkVoucherReversed(ctx, voucherID, reversingID, userID); err != nil {
		logger.Error("Failed to mark voucher reversed", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		return nil, err
	}

	logger.Info("Voucher reversed", slog.String("voucher_id", voucherID), slog.String("reversing_voucher_id", reversingID))
	return &reversing, nil
}

// ReverseEntries builds the mirror entries of a voucher: same accounts and
// amounts with every debit turned into a credit and vice versa.
func ReverseEntries(entries []domain.LedgerEntry, reversingVoucherID string, at time.Time, userID string) []domain.LedgerEntry {
	reversed := make([]domain.LedgerEntry, len(entries))
	for i, e := range entries {
		reversed[i] = domain.LedgerEntry{
			EntryID:      uuid.NewString(),
			VoucherID:    reversingVoucherID,
			AccountName:  e.AccountName,
			AccountClass: e.AccountClass,
			Debit:        e.Credit,
			Credit:       e.Debit,
			EntryDate:    at,
			Description:  "Reversal: " + e.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     at,
				CreatedBy:     userID,
				LastUpdatedAt: at,
				LastUpdatedBy: userID,
			},
		}
	}
	return reversed
}
