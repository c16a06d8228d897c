package dto

import (
	"time"

	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceLineItem is one line of an invoice creation request.
// ProductID is empty for service lines.
type CreateInvoiceLineItem struct {
	ProductID   string           `json:"productID"`
	Description string           `json:"description"`
	Quantity    decimal.Decimal  `json:"quantity" binding:"required"`
	UnitRate    decimal.Decimal  `json:"unitRate" binding:"required"`
	Discount    decimal.Decimal  `json:"discount"`
	TaxRate     *decimal.Decimal `json:"taxRate" binding:"omitempty,gte=0"` // Per-line override; required for nexus-based jurisdictions
	Category    string           `json:"category"` // Product category for exemption lookup
}

// CreateInvoiceRequest is the input to invoice creation. Either LineItems
// or FlatAmount must be supplied.
type CreateInvoiceRequest struct {
	CustomerID    string                  `json:"customerID" binding:"required"`
	InvoiceType   domain.InvoiceType      `json:"invoiceType" binding:"required,oneof=TAX_INVOICE BILL_OF_SUPPLY PROFORMA CREDIT_NOTE DEBIT_NOTE"`
	IssueDate     *time.Time              `json:"issueDate"`
	DueDate       *time.Time              `json:"dueDate"`
	LineItems     []CreateInvoiceLineItem `json:"lineItems"`
	FlatAmount    *decimal.Decimal        `json:"flatAmount"` // Used when no line items are given
	Discount      decimal.Decimal         `json:"discount"`   // Invoice-level discount amount
	PaidAmount    decimal.Decimal         `json:"paidAmount"` // Immediate payment received at issue
	PaymentMethod domain.PaymentMethod    `json:"paymentMethod"`
	Notes         string                  `json:"notes"`
}

// RecordPaymentRequest is the input to recording a payment against an
// existing invoice.
type RecordPaymentRequest struct {
	Amount      decimal.Decimal      `json:"amount" binding:"required"`
	Method      domain.PaymentMethod `json:"method" binding:"required,oneof=CASH BANK_TRANSFER CARD UPI CHEQUE"`
	PaymentDate *time.Time           `json:"paymentDate"`
}

// PaymentResponse is the API shape of one recorded payment.
type PaymentResponse struct {
	PaymentID   string          `json:"paymentID"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	PaymentDate time.Time       `json:"paymentDate"`
	VoucherID   string          `json:"voucherID"`
}

// ListPaymentsResponse wraps the payments recorded against one invoice.
type ListPaymentsResponse struct {
	InvoiceID string            `json:"invoiceID"`
	Payments  []PaymentResponse `json:"payments"`
}

// ToListPaymentsResponse converts a payment slice to its DTO.
func ToListPaymentsResponse(invoiceID string, payments []domain.Payment) ListPaymentsResponse {
	resp := ListPaymentsResponse{InvoiceID: invoiceID, Payments: make([]PaymentResponse, len(payments))}
	for i, p := range payments {
		resp.Payments[i] = PaymentResponse{
			PaymentID:   p.PaymentID,
			Amount:      p.Amount,
			Method:      string(p.Method),
			PaymentDate: p.PaymentDate,
			VoucherID:   p.VoucherID,
		}
	}
	return resp
}

// ListInvoicesParams holds query parameters for listing invoices.
type ListInvoicesParams struct {
	Limit  int                   `form:"limit"`
	Offset int                   `form:"offset"`
	Status *domain.InvoiceStatus `form:"status"`
}

// InvoiceLineItemResponse is the API shape of one invoice line.
type InvoiceLineItemResponse struct {
	LineItemID    string                     `json:"lineItemID"`
	ProductID     string                     `json:"productID,omitempty"`
	Description   string                     `json:"description"`
	Quantity      decimal.Decimal            `json:"quantity"`
	UnitRate      decimal.Decimal            `json:"unitRate"`
	Discount      decimal.Decimal            `json:"discount"`
	TaxRate       decimal.Decimal            `json:"taxRate"`
	TaxAmount     decimal.Decimal            `json:"taxAmount"`
	TaxComponents map[string]decimal.Decimal `json:"taxComponents,omitempty"`
	LineTotal     decimal.Decimal            `json:"lineTotal"`
}

// InvoiceResponse is the API shape of an invoice, suitable for direct
// rendering by the UI or PDF export.
type InvoiceResponse struct {
	InvoiceID     string                    `json:"invoiceID"`
	CustomerID    string                    `json:"customerID"`
	InvoiceType   string                    `json:"invoiceType"`
	InvoiceNumber string                    `json:"invoiceNumber"`
	IssueDate     time.Time                 `json:"issueDate"`
	DueDate       time.Time                 `json:"dueDate"`
	Subtotal      decimal.Decimal           `json:"subtotal"`
	TaxAmount     decimal.Decimal           `json:"taxAmount"`
	Discount      decimal.Decimal           `json:"discount"`
	Total         decimal.Decimal           `json:"total"`
	PaidAmount    decimal.Decimal           `json:"paidAmount"`
	BalanceDue    decimal.Decimal           `json:"balanceDue"`
	Status        string                    `json:"status"`
	CurrencyCode  string                    `json:"currencyCode"`
	TaxMode       string                    `json:"taxMode"`
	VoucherID     string                    `json:"voucherID"`
	LineItems     []InvoiceLineItemResponse `json:"lineItems,omitempty"`
	CreatedAt     time.Time                 `json:"createdAt"`
}

// ListInvoicesResponse wraps a page of invoices.
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// ToInvoiceLineItemResponse converts a domain.InvoiceLineItem to its DTO.
func ToInvoiceLineItemResponse(li domain.InvoiceLineItem) InvoiceLineItemResponse {
	return InvoiceLineItemResponse{
		LineItemID:    li.LineItemID,
		ProductID:     li.ProductID,
		Description:   li.Description,
		Quantity:      li.Quantity,
		UnitRate:      li.UnitRate,
		Discount:      li.Discount,
		TaxRate:       li.TaxRate,
		TaxAmount:     li.TaxAmount,
		TaxComponents: li.TaxComponents,
		LineTotal:     li.LineTotal,
	}
}

// ToInvoiceResponse converts a domain.Invoice to its DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		CustomerID:    inv.CustomerID,
		InvoiceType:   string(inv.InvoiceType),
		InvoiceNumber: inv.InvoiceNumber,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Subtotal:      inv.Subtotal,
		TaxAmount:     inv.TaxAmount,
		Discount:      inv.Discount,
		Total:         inv.Total,
		PaidAmount:    inv.PaidAmount,
		BalanceDue:    inv.BalanceDue,
		Status:        string(inv.Status),
		CurrencyCode:  inv.CurrencyCode,
		TaxMode:       string(inv.TaxMode),
		VoucherID:     inv.VoucherID,
		CreatedAt:     inv.CreatedAt,
	}
	if len(inv.LineItems) > 0 {
		resp.LineItems = make([]InvoiceLineItemResponse, len(inv.LineItems))
		for i, li := range inv.LineItems {
			resp.LineItems[i] = ToInvoiceLineItemResponse(li)
		}
	}
	return resp
}
