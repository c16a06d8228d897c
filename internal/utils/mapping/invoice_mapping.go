package mapping

import (
	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	"github.com/openbooks/retail_ledger_app/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:     d.InvoiceID,
		BusinessID:    d.BusinessID,
		CustomerID:    d.CustomerID,
		InvoiceType:   string(d.InvoiceType),
		InvoiceNumber: d.InvoiceNumber,
		IssueDate:     d.IssueDate,
		DueDate:       d.DueDate,
		Subtotal:      d.Subtotal,
		TaxAmount:     d.TaxAmount,
		Discount:      d.Discount,
		Total:         d.Total,
		PaidAmount:    d.PaidAmount,
		BalanceDue:    d.BalanceDue,
		Status:        string(d.Status),
		CurrencyCode:  d.CurrencyCode,
		TaxMode:       string(d.TaxMode),
		VoucherID:     d.VoucherID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		BusinessID:    m.BusinessID,
		CustomerID:    m.CustomerID,
		InvoiceType:   domain.InvoiceType(m.InvoiceType),
		InvoiceNumber: m.InvoiceNumber,
		IssueDate:     m.IssueDate,
		DueDate:       m.DueDate,
		Subtotal:      m.Subtotal,
		TaxAmount:     m.TaxAmount,
		Discount:      m.Discount,
		Total:         m.Total,
		PaidAmount:    m.PaidAmount,
		BalanceDue:    m.BalanceDue,
		Status:        domain.InvoiceStatus(m.Status),
		CurrencyCode:  m.CurrencyCode,
		TaxMode:       domain.TaxMode(m.TaxMode),
		VoucherID:     m.VoucherID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInvoiceLineItem converts a domain InvoiceLineItem to a model InvoiceLineItem
func ToModelInvoiceLineItem(d domain.InvoiceLineItem) models.InvoiceLineItem {
	var productID *string
	if d.ProductID != "" {
		pid := d.ProductID
		productID = &pid
	}
	return models.InvoiceLineItem{
		LineItemID:    d.LineItemID,
		InvoiceID:     d.InvoiceID,
		ProductID:     productID,
		Description:   d.Description,
		Quantity:      d.Quantity,
		UnitRate:      d.UnitRate,
		Discount:      d.Discount,
		TaxRate:       d.TaxRate,
		TaxAmount:     d.TaxAmount,
		TaxComponents: d.TaxComponents,
		LineTotal:     d.LineTotal,
	}
}

// ToDomainInvoiceLineItem converts a model InvoiceLineItem to a domain InvoiceLineItem
func ToDomainInvoiceLineItem(m models.InvoiceLineItem) domain.InvoiceLineItem {
	productID := ""
	if m.ProductID != nil {
		productID = *m.ProductID
	}
	return domain.InvoiceLineItem{
		LineItemID:    m.LineItemID,
		InvoiceID:     m.InvoiceID,
		ProductID:     productID,
		Description:   m.Description,
		Quantity:      m.Quantity,
		UnitRate:      m.UnitRate,
		Discount:      m.Discount,
		TaxRate:       m.TaxRate,
		TaxAmount:     m.TaxAmount,
		TaxComponents: m.TaxComponents,
		LineTotal:     m.LineTotal,
	}
}

// ToDomainInvoiceLineItems converts a slice of model line items.
func ToDomainInvoiceLineItems(ms []models.InvoiceLineItem) []domain.InvoiceLineItem {
	items := make([]domain.InvoiceLineItem, len(ms))
	for i, m := range ms {
		items[i] = ToDomainInvoiceLineItem(m)
	}
	return items
}
