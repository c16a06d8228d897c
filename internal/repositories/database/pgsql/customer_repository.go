package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openbooks/retail_ledger_app/internal/apperrors"
	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/openbooks/retail_ledger_app/internal/core/ports/repositories"
	"github.com/openbooks/retail_ledger_app/internal/models"
	"github.com/openbooks/retail_ledger_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

// FindCustomerByID retrieves a customer scoped to a business.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, businessID string, customerID string) (*domain.Customer, error) {
	query := `
		SELECT customer_id, business_id, name, jurisdiction_code, registration_id,
		       balance, last_invoice_date,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM customers
		WHERE business_id = $1 AND customer_id = $2;
	`
	var m models.Customer
	err := r.Pool.QueryRow(ctx, query, businessID, customerID).Scan(
		&m.CustomerID,
		&m.BusinessID,
		&m.Name,
		&m.JurisdictionCode,
		&m.RegistrationID,
		&m.Balance,
		&m.LastInvoiceDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find customer by ID "+customerID, err)
	}

	customer := mapping.ToDomainCustomer(m)
	return &customer, nil
}

// adjustCustomerBalanceInTx applies a signed delta to the customer's cached
// receivable inside an open transaction, stamping the invoice date when one
// is supplied.
func adjustCustomerBalanceInTx(ctx context.Context, tx pgx.Tx, businessID, customerID string, delta decimal.Decimal, invoiceDate *time.Time, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE customers
		SET balance = balance + $1,
		    last_invoice_date = COALESCE($2, last_invoice_date),
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE business_id = $5 AND customer_id = $6;
	`
	tag, err := tx.Exec(ctx, query, delta, invoiceDate, updatedAt, updatedBy, businessID, customerID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update balance for customer "+customerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
