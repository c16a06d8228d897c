package repositories

import (
	"context"

	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InventoryReader defines read operations for inventory data
type InventoryReader interface {
	// FindItemByID retrieves an inventory item scoped to a business.
	FindItemByID(ctx context.Context, businessID string, productID string) (*domain.InventoryItem, error)

	// ListLowStockItems retrieves items at or below their minimum stock level.
	ListLowStockItems(ctx context.Context, businessID string) ([]domain.InventoryItem, error)

	// ListMovementsByProduct retrieves the movement history of a product,
	// newest first.
	ListMovementsByProduct(ctx context.Context, businessID string, productID string, limit int) ([]domain.StockMovement, error)
}

// InventoryWriter defines guarded write operations for inventory data
type InventoryWriter interface {
	// AdjustStock applies a signed quantity delta as a single conditional
	// update that refuses to drive stock negative, and appends the paired
	// movement row in the same store transaction. Returns the new stock
	// level, or ErrInsufficientStock with nothing written.
	AdjustStock(ctx context.Context, businessID string, productID string, delta decimal.Decimal, movement domain.StockMovement) (decimal.Decimal, error)
}

// InventoryRepositoryFacade combines all inventory-related repository interfaces
type InventoryRepositoryFacade interface {
	InventoryReader
	InventoryWriter
}
