package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openbooks/retail_ledger_app/internal/apperrors"
	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/openbooks/retail_ledger_app/internal/core/ports/repositories"
	"github.com/openbooks/retail_ledger_app/internal/models"
	"github.com/openbooks/retail_ledger_app/internal/utils/mapping"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

// ListPaymentsByInvoice retrieves payments against an invoice, oldest first.
func (r *PgxPaymentRepository) ListPaymentsByInvoice(ctx context.Context, businessID string, invoiceID string) ([]domain.Payment, error) {
	query := `
		SELECT payment_id, business_id, invoice_id, customer_id, amount, method,
		       payment_date, voucher_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM payments
		WHERE business_id = $1 AND invoice_id = $2
		ORDER BY payment_date, payment_id;
	`
	rows, err := r.Pool.Query(ctx, query, businessID, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for invoice "+invoiceID, err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		var m models.Payment
		err := rows.Scan(
			&m.PaymentID,
			&m.BusinessID,
			&m.InvoiceID,
			&m.CustomerID,
			&m.Amount,
			&m.Method,
			&m.PaymentDate,
			&m.VoucherID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row for invoice "+invoiceID, err)
		}
		payments = append(payments, mapping.ToDomainPayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows for invoice "+invoiceID, err)
	}
	return payments, nil
}

// insertPaymentInTx appends one payment row inside an open transaction.
func insertPaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (
			payment_id, business_id, invoice_id, customer_id, amount, method,
			payment_date, voucher_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, query,
		m.PaymentID,
		m.BusinessID,
		m.InvoiceID,
		m.CustomerID,
		m.Amount,
		m.Method,
		m.PaymentDate,
		m.VoucherID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment "+m.PaymentID, err)
	}
	return nil
}
