package mapping

import (
	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	"github.com/openbooks/retail_ledger_app/internal/models"
)

// ToModelInventoryItem converts a domain InventoryItem to a model InventoryItem
func ToModelInventoryItem(d domain.InventoryItem) models.InventoryItem {
	return models.InventoryItem{
		ProductID:     d.ProductID,
		BusinessID:    d.BusinessID,
		Name:          d.Name,
		Category:      d.Category,
		CurrentStock:  d.CurrentStock,
		MinStockLevel: d.MinStockLevel,
		Unit:          d.Unit,
		PurchasePrice: d.PurchasePrice,
		SellingPrice:  d.SellingPrice,
		TaxRate:       d.TaxRate,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInventoryItem converts a model InventoryItem to a domain InventoryItem
func ToDomainInventoryItem(m models.InventoryItem) domain.InventoryItem {
	return domain.InventoryItem{
		ProductID:     m.ProductID,
		BusinessID:    m.BusinessID,
		Name:          m.Name,
		Category:      m.Category,
		CurrentStock:  m.CurrentStock,
		MinStockLevel: m.MinStockLevel,
		Unit:          m.Unit,
		PurchasePrice: m.PurchasePrice,
		SellingPrice:  m.SellingPrice,
		TaxRate:       m.TaxRate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelStockMovement converts a domain StockMovement to a model StockMovement
func ToModelStockMovement(d domain.StockMovement) models.StockMovement {
	var voucherID *string
	if d.VoucherID != "" {
		vid := d.VoucherID
		voucherID = &vid
	}
	return models.StockMovement{
		MovementID:   d.MovementID,
		ProductID:    d.ProductID,
		BusinessID:   d.BusinessID,
		MovementType: string(d.MovementType),
		Quantity:     d.Quantity,
		VoucherID:    voucherID,
		Notes:        d.Notes,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStockMovement converts a model StockMovement to a domain StockMovement
func ToDomainStockMovement(m models.StockMovement) domain.StockMovement {
	voucherID := ""
	if m.VoucherID != nil {
		voucherID = *m.VoucherID
	}
	return domain.StockMovement{
		MovementID:   m.MovementID,
		ProductID:    m.ProductID,
		BusinessID:   m.BusinessID,
		MovementType: domain.MovementType(m.MovementType),
		Quantity:     m.Quantity,
		VoucherID:    voucherID,
		Notes:        m.Notes,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
