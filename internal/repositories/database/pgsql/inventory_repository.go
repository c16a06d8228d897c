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

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository for inventory data.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

const inventoryItemSelect = `
	SELECT product_id, business_id, name, category, current_stock, min_stock_level,
	       unit, purchase_price, selling_price, tax_rate,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM inventory_items`

// FindItemByID retrieves an inventory item scoped to a business.
func (r *PgxInventoryRepository) FindItemByID(ctx context.Context, businessID string, productID string) (*domain.InventoryItem, error) {
	query := inventoryItemSelect + ` WHERE business_id = $1 AND product_id = $2;`
	var m models.InventoryItem
	err := r.Pool.QueryRow(ctx, query, businessID, productID).Scan(
		&m.ProductID,
		&m.BusinessID,
		&m.Name,
		&m.Category,
		&m.CurrentStock,
		&m.MinStockLevel,
		&m.Unit,
		&m.PurchasePrice,
		&m.SellingPrice,
		&m.TaxRate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find inventory item "+productID, err)
	}

	item := mapping.ToDomainInventoryItem(m)
	return &item, nil
}

// ListLowStockItems retrieves items at or below their minimum stock level.
func (r *PgxInventoryRepository) ListLowStockItems(ctx context.Context, businessID string) ([]domain.InventoryItem, error) {
	query := inventoryItemSelect + `
		WHERE business_id = $1 AND current_stock <= min_stock_level
		ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query low stock items for business "+businessID, err)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		var m models.InventoryItem
		err := rows.Scan(
			&m.ProductID,
			&m.BusinessID,
			&m.Name,
			&m.Category,
			&m.CurrentStock,
			&m.MinStockLevel,
			&m.Unit,
			&m.PurchasePrice,
			&m.SellingPrice,
			&m.TaxRate,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan inventory item row", err)
		}
		items = append(items, mapping.ToDomainInventoryItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating inventory item rows", err)
	}
	return items, nil
}

// ListMovementsByProduct retrieves the movement history of a product, newest first.
func (r *PgxInventoryRepository) ListMovementsByProduct(ctx context.Context, businessID string, productID string, limit int) ([]domain.StockMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT movement_id, product_id, business_id, movement_type, quantity,
		       voucher_id, notes,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM stock_movements
		WHERE business_id = $1 AND product_id = $2
		ORDER BY created_at DESC, movement_id DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, businessID, productID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query movements for product "+productID, err)
	}
	defer rows.Close()

	movements := []domain.StockMovement{}
	for rows.Next() {
		var m models.StockMovement
		err := rows.Scan(
			&m.MovementID,
			&m.ProductID,
			&m.BusinessID,
			&m.MovementType,
			&m.Quantity,
			&m.VoucherID,
			&m.Notes,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan movement row for product "+productID, err)
		}
		movements = append(movements, mapping.ToDomainStockMovement(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating movement rows for product "+productID, err)
	}
	return movements, nil
}

// AdjustStock applies a guarded stock delta and its movement row in one
// transaction, returning the new stock level.
func (r *PgxInventoryRepository) AdjustStock(ctx context.Context, businessID string, productID string, delta decimal.Decimal, movement domain.StockMovement) (decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer r.Rollback(ctx, tx)

	newStock, err := applyStockDeltaInTx(ctx, tx, businessID, productID, delta, movement.LastUpdatedBy, movement.LastUpdatedAt)
	if err != nil {
		return decimal.Zero, err
	}
	if err := insertMovementInTx(ctx, tx, movement); err != nil {
		return decimal.Zero, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return decimal.Zero, err
	}
	return newStock, nil
}

// applyStockDeltaInTx performs the single-statement guarded decrement: the
// row only updates when the resulting stock stays non-negative, so
// concurrent sales of the last unit cannot both succeed.
func applyStockDeltaInTx(ctx context.Context, tx pgx.Tx, businessID, productID string, delta decimal.Decimal, updatedBy string, updatedAt time.Time) (decimal.Decimal, error) {
	query := `
		UPDATE inventory_items
		SET current_stock = current_stock + $1,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE business_id = $4 AND product_id = $5 AND current_stock + $1 >= 0
		RETURNING current_stock;
	`
	var newStock decimal.Decimal
	err := tx.QueryRow(ctx, query, delta, updatedAt, updatedBy, businessID, productID).Scan(&newStock)
	if err == nil {
		return newStock, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, apperrors.NewAppError(500, "failed to adjust stock for product "+productID, err)
	}

	// Zero rows: the product is missing or the guard refused the delta.
	var exists bool
	checkErr := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM inventory_items WHERE business_id = $1 AND product_id = $2);`,
		businessID, productID).Scan(&exists)
	if checkErr != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to check inventory item "+productID, checkErr)
	}
	if !exists {
		return decimal.Zero, apperrors.ErrNotFound
	}
	return decimal.Zero, apperrors.ErrInsufficientStock
}

// insertMovementInTx appends one stock movement row inside an open transaction.
func insertMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error {
	m := mapping.ToModelStockMovement(movement)
	query := `
		INSERT INTO stock_movements (
			movement_id, product_id, business_id, movement_type, quantity,
			voucher_id, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		m.MovementID,
		m.ProductID,
		m.BusinessID,
		m.MovementType,
		m.Quantity,
		m.VoucherID,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert stock movement "+m.MovementID, err)
	}
	return nil
}
