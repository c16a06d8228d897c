package dto

import (
	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AdjustStockRequest is the input to a manual stock adjustment.
type AdjustStockRequest struct {
	Delta        decimal.Decimal     `json:"delta" binding:"required"`
	MovementType domain.MovementType `json:"movementType" binding:"required,oneof=PURCHASE ADJUSTMENT RETURN"`
	Notes        string              `json:"notes"`
}

// InventoryItemResponse is the API shape of an inventory item.
type InventoryItemResponse struct {
	ProductID     string          `json:"productID"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	CurrentStock  decimal.Decimal `json:"currentStock"`
	MinStockLevel decimal.Decimal `json:"minStockLevel"`
	Unit          string          `json:"unit"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	TaxRate       decimal.Decimal `json:"taxRate"`
}

// ToInventoryItemResponse converts a domain.InventoryItem to its DTO.
func ToInventoryItemResponse(item *domain.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ProductID:     item.ProductID,
		Name:          item.Name,
		Category:      item.Category,
		CurrentStock:  item.CurrentStock,
		MinStockLevel: item.MinStockLevel,
		Unit:          item.Unit,
		SellingPrice:  item.SellingPrice,
		TaxRate:       item.TaxRate,
	}
}

// ToInventoryItemResponses converts a slice of domain inventory items.
func ToInventoryItemResponses(items []domain.InventoryItem) []InventoryItemResponse {
	responses := make([]InventoryItemResponse, len(items))
	for i := range items {
		responses[i] = ToInventoryItemResponse(&items[i])
	}
	return responses
}
