package domain

import "github.com/shopspring/decimal"

// MovementType labels the cause of a stock change.
type MovementType string

const (
	MovementSale       MovementType = "SALE"
	MovementPurchase   MovementType = "PURCHASE"
	MovementAdjustment MovementType = "ADJUSTMENT"
	MovementReturn     MovementType = "RETURN"
)

// InventoryItem is a stocked product. CurrentStock is never negative;
// it is mutated only through guarded adjustments paired with a
// StockMovement row.
type InventoryItem struct {
	ProductID     string          `json:"productID"`  // Primary Key (e.g., UUID)
	BusinessID    string          `json:"businessID"` // FK -> Business.businessID (Not Null)
	Name          string          `json:"name"`
	Category      string          `json:"category"` // Drives tax exemption lookup
	CurrentStock  decimal.Decimal `json:"currentStock"`
	MinStockLevel decimal.Decimal `json:"minStockLevel"`
	Unit          string          `json:"unit"` // e.g. "pcs", "kg"
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	TaxRate       decimal.Decimal `json:"taxRate"` // Percentage; product-specific GST/VAT rate
	AuditFields
}

// StockMovement is the audit record paired with every stock change.
// Quantity is signed: negative for sales, positive for purchases/returns.
type StockMovement struct {
	MovementID   string          `json:"movementID"` // Primary Key (e.g., UUID)
	ProductID    string          `json:"productID"`  // FK -> InventoryItem.productID (Not Null)
	BusinessID   string          `json:"businessID"`
	MovementType MovementType    `json:"movementType"`
	Quantity     decimal.Decimal `json:"quantity"`
	VoucherID    string          `json:"voucherID"` // Originating voucher, empty for manual adjustments
	Notes        string          `json:"notes"`
	AuditFields
}
