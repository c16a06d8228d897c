package services

import (
	"context"
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
)

// inventoryService handles manual stock adjustments and stock queries.
// Sale-driven decrements bypass this service; the invoice orchestrator
// bundles them into its posting transaction.
type inventoryService struct {
	inventoryRepo portsrepo.InventoryRepositoryFacade
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepositoryFacade) portssvc.InventorySvcFacade {
	return &inventoryService{inventoryRepo: inventoryRepo}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

func (s *inventoryService) GetItemByID(ctx context.Context, businessID string, productID string) (*domain.InventoryItem, error) {
	return s.inventoryRepo.FindItemByID(ctx, businessID, productID)
}

func (s *inventoryService) ListLowStockItems(ctx context.Context, businessID string) ([]domain.InventoryItem, error) {
	return s.inventoryRepo.ListLowStockItems(ctx, businessID)
}

// AdjustStock applies a signed manual adjustment. The repository enforces
// the non-negative guard; a delta that would drive stock below zero comes
// back as ErrInsufficientStock with nothing written.
func (s *inventoryService) AdjustStock(ctx context.Context, businessID string, productID string, req dto.AdjustStockRequest, userID string) (*domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Delta.IsZero() {
		return nil, fmt.Errorf("%w: stock adjustment delta must not be zero", apperrors.ErrValidation)
	}
	if req.MovementType != domain.MovementAdjustment && req.Delta.IsNegative() {
		return nil, fmt.Errorf("%w: %s movements must have a positive quantity", apperrors.ErrValidation, req.MovementType)
	}

	item, err := s.inventoryRepo.FindItemByID(ctx, businessID, productID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	movement := domain.StockMovement{
		MovementID:   uuid.NewString(),
		ProductID:    productID,
		BusinessID:   businessID,
		MovementType: req.MovementType,
		Quantity:     req.Delta,
		Notes:        req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	newStock, err := s.inventoryRepo.AdjustStock(ctx, businessID, productID, req.Delta, movement)
	if err != nil {
		logger.Warn("Stock adjustment rejected", slog.String("product_id", productID), slog.String("delta", req.Delta.String()), slog.String("error", err.Error()))
		return nil, err
	}

	item.CurrentStock = newStock
	item.LastUpdatedAt = now
	item.LastUpdatedBy = userID

	if newStock.LessThanOrEqual(item.MinStockLevel) {
		logger.Warn("Product at or below minimum stock level", slog.String("product_id", productID), slog.String("current_stock", newStock.String()), slog.String("min_stock_level", item.MinStockLevel.String()))
	}
	return item, nil
}
