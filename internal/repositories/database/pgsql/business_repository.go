package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openbooks/retail_ledger_app/internal/apperrors"
	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/openbooks/retail_ledger_app/internal/core/ports/repositories"
	"github.com/openbooks/retail_ledger_app/internal/models"
	"github.com/openbooks/retail_ledger_app/internal/utils/mapping"
)

type PgxBusinessRepository struct {
	BaseRepository
}

// newPgxBusinessRepository creates a new repository for business data.
func newPgxBusinessRepository(pool *pgxpool.Pool) portsrepo.BusinessRepositoryFacade {
	return &PgxBusinessRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BusinessRepositoryFacade = (*PgxBusinessRepository)(nil)

// FindBusinessByID retrieves a business by its ID.
func (r *PgxBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	query := `
		SELECT business_id, name, jurisdiction_code, registration_id, default_tax_rate,
		       payment_term_days, currency_code, annual_turnover,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM businesses
		WHERE business_id = $1;
	`
	var m models.Business
	err := r.Pool.QueryRow(ctx, query, businessID).Scan(
		&m.BusinessID,
		&m.Name,
		&m.JurisdictionCode,
		&m.RegistrationID,
		&m.DefaultTaxRate,
		&m.PaymentTermDays,
		&m.CurrencyCode,
		&m.AnnualTurnover,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find business by ID "+businessID, err)
	}

	business := mapping.ToDomainBusiness(m)
	return &business, nil
}
