package pgsql

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openbooks/retail_ledger_app/internal/apperrors"
	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/openbooks/retail_ledger_app/internal/core/ports/repositories"
	"github.com/openbooks/retail_ledger_app/internal/models"
	"github.com/openbooks/retail_ledger_app/internal/utils/mapping"
)

type PgxReadinessRepository struct {
	BaseRepository
}

// newPgxReadinessRepository creates a new repository backing the readiness
// scorer's read-only checks.
func newPgxReadinessRepository(pool *pgxpool.Pool) portsrepo.ReadinessRepositoryFacade {
	return &PgxReadinessRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReadinessRepositoryFacade = (*PgxReadinessRepository)(nil)

// FindSaleVouchersWithoutInvoice retrieves sales vouchers in the period
// that no invoice links back to.
func (r *PgxReadinessRepository) FindSaleVouchersWithoutInvoice(ctx context.Context, businessID string, from, to time.Time) ([]domain.Voucher, error) {
	query := voucherSelect + `
		WHERE business_id = $1
		  AND voucher_type = $2
		  AND status = $3
		  AND voucher_date >= $4 AND voucher_date <= $5
		  AND NOT EXISTS (
			SELECT 1 FROM invoices i WHERE i.voucher_id = vouchers.voucher_id
		  )
		ORDER BY voucher_date, voucher_id;
	`
	rows, err := r.Pool.Query(ctx, query, businessID,
		string(domain.VoucherSale), string(domain.VoucherPosted), from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query orphan sales vouchers for business "+businessID, err)
	}
	defer rows.Close()

	vouchers := []domain.Voucher{}
	for rows.Next() {
		var m models.Voucher
		err := rows.Scan(
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
			return nil, apperrors.NewAppError(500, "failed to scan voucher row", err)
		}
		vouchers = append(vouchers, mapping.ToDomainVoucher(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating voucher rows", err)
	}
	return vouchers, nil
}

const taxTransactionSelect = `
	SELECT t.tax_transaction_id, t.business_id, t.voucher_id, t.customer_id,
	       t.regime, t.direction, t.tax_rate, t.taxable_amount, t.tax_amount,
	       t.components,
	       t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
	FROM tax_transactions t`

// FindTaxTransactionsByPeriod retrieves all tax transactions recorded in
// the period.
func (r *PgxReadinessRepository) FindTaxTransactionsByPeriod(ctx context.Context, businessID string, from, to time.Time) ([]domain.TaxTransaction, error) {
	query := taxTransactionSelect + `
		WHERE t.business_id = $1 AND t.created_at >= $2 AND t.created_at <= $3
		ORDER BY t.created_at, t.tax_transaction_id;
	`
	return r.queryTaxTransactions(ctx, query, businessID, from, to)
}

// FindPurchaseTaxWithoutRegistration retrieves purchase-side tax
// transactions whose counterparty has no registration ID, so their input
// tax credit cannot be claimed.
func (r *PgxReadinessRepository) FindPurchaseTaxWithoutRegistration(ctx context.Context, businessID string, from, to time.Time) ([]domain.TaxTransaction, error) {
	query := taxTransactionSelect + `
		LEFT JOIN customers c ON c.customer_id = t.customer_id
		WHERE t.business_id = $1
		  AND t.direction = '` + string(domain.DirectionPurchase) + `'
		  AND t.created_at >= $2 AND t.created_at <= $3
		  AND COALESCE(c.registration_id, '') = ''
		ORDER BY t.created_at, t.tax_transaction_id;
	`
	return r.queryTaxTransactions(ctx, query, businessID, from, to)
}

func (r *PgxReadinessRepository) queryTaxTransactions(ctx context.Context, query string, args ...any) ([]domain.TaxTransaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tax transactions", err)
	}
	defer rows.Close()

	txns := []domain.TaxTransaction{}
	for rows.Next() {
		txn, err := scanTaxTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating tax transaction rows", err)
	}
	return txns, nil
}

func scanTaxTransaction(row pgx.Row) (domain.TaxTransaction, error) {
	var m models.TaxTransaction
	var componentsJSON []byte
	err := row.Scan(
		&m.TaxTransactionID,
		&m.BusinessID,
		&m.VoucherID,
		&m.CustomerID,
		&m.Regime,
		&m.Direction,
		&m.TaxRate,
		&m.TaxableAmount,
		&m.TaxAmount,
		&componentsJSON,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.TaxTransaction{}, apperrors.NewAppError(500, "failed to scan tax transaction row", err)
	}
	if len(componentsJSON) > 0 {
		if err := json.Unmarshal(componentsJSON, &m.Components); err != nil {
			return domain.TaxTransaction{}, apperrors.NewAppError(500, "failed to decode components for tax transaction "+m.TaxTransactionID, err)
		}
	}
	return mapping.ToDomainTaxTransaction(m), nil
}

// FindOverdueFilingPeriods retrieves filing periods past their due date and
// not marked filed.
func (r *PgxReadinessRepository) FindOverdueFilingPeriods(ctx context.Context, businessID string, asOf time.Time) ([]domain.TaxFilingPeriod, error) {
	query := `
		SELECT filing_period_id, business_id, period_label, due_date, filed, filed_on
		FROM tax_filing_periods
		WHERE business_id = $1 AND filed = FALSE AND due_date < $2
		ORDER BY due_date, filing_period_id;
	`
	rows, err := r.Pool.Query(ctx, query, businessID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query filing periods for business "+businessID, err)
	}
	defer rows.Close()

	periods := []domain.TaxFilingPeriod{}
	for rows.Next() {
		var m models.TaxFilingPeriod
		err := rows.Scan(
			&m.FilingPeriodID,
			&m.BusinessID,
			&m.PeriodLabel,
			&m.DueDate,
			&m.Filed,
			&m.FiledOn,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan filing period row", err)
		}
		periods = append(periods, domain.TaxFilingPeriod{
			FilingPeriodID: m.FilingPeriodID,
			BusinessID:     m.BusinessID,
			PeriodLabel:    m.PeriodLabel,
			DueDate:        m.DueDate,
			Filed:          m.Filed,
			FiledOn:        m.FiledOn,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating filing period rows", err)
	}
	return periods, nil
}
