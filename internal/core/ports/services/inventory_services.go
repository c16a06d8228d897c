package services

import (
	"context"

	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	"github.com/openbooks/retail_ledger_app/internal/dto"
)

// InventoryReaderSvc defines read operations for inventory data
type InventoryReaderSvc interface {
	// GetItemByID retrieves an inventory item.
	GetItemByID(ctx context.Context, businessID string, productID string) (*domain.InventoryItem, error)

	// ListLowStockItems retrieves items at or below their minimum stock level.
	ListLowStockItems(ctx context.Context, businessID string) ([]domain.InventoryItem, error)
}

// InventoryWriterSvc defines guarded write operations for inventory data
type InventoryWriterSvc interface {
	// AdjustStock applies a manual stock adjustment with the non-negative
	// guard, recording the paired movement.
	AdjustStock(ctx context.Context, businessID string, productID string, req dto.AdjustStockRequest, userID string) (*domain.InventoryItem, error)
}

// InventorySvcFacade combines all inventory-related service interfaces
type InventorySvcFacade interface {
	InventoryReaderSvc
	InventoryWriterSvc
}
