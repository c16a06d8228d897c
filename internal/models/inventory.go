package models

import "github.com/shopspring/decimal"

// InventoryItem is the DB representation of a stocked product.
type InventoryItem struct {
	ProductID     string          `json:"productID"`
	BusinessID    string          `json:"businessID"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	CurrentStock  decimal.Decimal `json:"currentStock"`
	MinStockLevel decimal.Decimal `json:"minStockLevel"`
	Unit          string          `json:"unit"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	AuditFields
}

// StockMovement is the DB representation of one audited stock change.
type StockMovement struct {
	MovementID   string          `json:"movementID"`
	ProductID    string          `json:"productID"`
	BusinessID   string          `json:"businessID"`
	MovementType string          `json:"movementType"`
	Quantity     decimal.Decimal `json:"quantity"`
	VoucherID    *string         `json:"voucherID"` // NULL for manual adjustments
	Notes        string          `json:"notes"`
	AuditFields
}
