package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openbooks/retail_ledger_app/internal/apperrors"
	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/openbooks/retail_ledger_app/internal/core/ports/repositories"
	"github.com/openbooks/retail_ledger_app/internal/models"
	"github.com/openbooks/retail_ledger_app/internal/utils/mapping"
)

type PgxVoucherRepository struct {
	BaseRepository
}

// newPgxVoucherRepository creates a new repository for voucher and ledger data.
func newPgxVoucherRepository(pool *pgxpool.Pool) portsrepo.VoucherRepositoryFacade {
	return &PgxVoucherRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.VoucherRepositoryFacade = (*PgxVoucherRepository)(nil)

// SaveVoucher persists a voucher and its entries in one transaction.
func (r *PgxVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher, entries []domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertVoucherInTx(ctx, tx, voucher, entries); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindVoucherByID retrieves a voucher by its ID.
func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, businessID string, voucherID string) (*domain.Voucher, error) {
	query := voucherSelect + ` WHERE business_id = $1 AND voucher_id = $2;`
	return r.scanVoucher(ctx, query, businessID, voucherID)
}

// FindVoucherByReference retrieves a voucher by its unique reference.
func (r *PgxVoucherRepository) FindVoucherByReference(ctx context.Context, businessID string, reference string) (*domain.Voucher, error) {
	query := voucherSelect + ` WHERE business_id = $1 AND reference = $2;`
	return r.scanVoucher(ctx, query, businessID, reference)
}

const voucherSelect = `
	SELECT voucher_id, business_id, reference, voucher_type, voucher_date,
	       description, currency_code, amount, status, original_voucher_id,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM vouchers`

func (r *PgxVoucherRepository) scanVoucher(ctx context.Context, query string, args ...any) (*domain.Voucher, error) {
	var m models.Voucher
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&m.VoucherID,
		&m.BusinessID,
		&m.Reference,
		&m.VoucherType,
		&m.VoucherDate,
		&m.Description,
		&m.CurrencyCode,
		&m.Amount,
		&m.Status,
		&m.OriginalVoucherID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find voucher", err)
	}

	voucher := mapping.ToDomainVoucher(m)
	return &voucher, nil
}

// FindEntriesByVoucherID retrieves all ledger entries of a voucher.
func (r *PgxVoucherRepository) FindEntriesByVoucherID(ctx context.Context, voucherID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, voucher_id, account_name, account_class, debit, credit,
		       entry_date, description,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_entries
		WHERE voucher_id = $1
		ORDER BY entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, voucherID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for voucher "+voucherID, err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		var m models.LedgerEntry
		err := rows.Scan(
			&m.EntryID,
			&m.VoucherID,
			&m.AccountName,
			&m.AccountClass,
			&m.Debit,
			&m.Credit,
			&m.EntryDate,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row for voucher "+voucherID, err)
		}
		entries = append(entries, mapping.ToDomainLedgerEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows for voucher "+voucherID, err)
	}
	return entries, nil
}

// MarkVoucherReversed links a voucher to the voucher that reversed it.
func (r *PgxVoucherRepository) MarkVoucherReversed(ctx context.Context, voucherID string, reversingVoucherID string, updatedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := markVoucherReversedInTx(ctx, tx, voucherID, reversingVoucherID, updatedBy, time.Now().UTC()); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// insertVoucherInTx writes a voucher header and its entries inside an open
// transaction. A duplicate reference surfaces as ErrDuplicate.
func insertVoucherInTx(ctx context.Context, tx pgx.Tx, voucher domain.Voucher, entries []domain.LedgerEntry) error {
	m := mapping.ToModelVoucher(voucher)
	voucherQuery := `
		INSERT INTO vouchers (
			voucher_id, business_id, reference, voucher_type, voucher_date,
			description, currency_code, amount, status, original_voucher_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, voucherQuery,
		m.VoucherID,
		m.BusinessID,
		m.Reference,
		m.VoucherType,
		m.VoucherDate,
		m.Description,
		m.CurrencyCode,
		m.Amount,
		m.Status,
		m.OriginalVoucherID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert voucher "+m.VoucherID, err)
	}

	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO ledger_entries (
			entry_id, voucher_id, account_name, account_class, debit, credit,
			entry_date, description,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, entry := range entries {
		me := mapping.ToModelLedgerEntry(entry)
		batch.Queue(entryQuery,
			me.EntryID,
			me.VoucherID,
			me.AccountName,
			me.AccountClass,
			me.Debit,
			me.Credit,
			me.EntryDate,
			me.Description,
			me.CreatedAt,
			me.CreatedBy,
			me.LastUpdatedAt,
			me.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert entries for voucher "+m.VoucherID, err)
	}
	return nil
}

func markVoucherReversedInTx(ctx context.Context, tx pgx.Tx, voucherID string, reversingVoucherID string, updatedBy string, at time.Time) error {
	query := `
		UPDATE vouchers
		SET status = $1, reversed_by_voucher_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE voucher_id = $5 AND status = $6;
	`
	tag, err := tx.Exec(ctx, query, string(domain.VoucherReversed), reversingVoucherID, at, updatedBy, voucherID, string(domain.VoucherPosted))
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark voucher reversed "+voucherID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}
