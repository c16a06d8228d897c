package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openbooks/retail_ledger_app/internal/apperrors"
)

// BaseRepository carries the shared pool and transaction plumbing for the
// pgsql repositories. Posting flows begin a transaction here, run their
// multi-table writes against the returned pgx.Tx, and rely on a deferred
// Rollback that is a no-op once the transaction committed.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback tolerates an already-finished transaction so it is safe to defer
// unconditionally alongside an explicit Commit.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}
