package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType distinguishes the documents the posting engine can issue.
type InvoiceType string

const (
	TaxInvoice   InvoiceType = "TAX_INVOICE"
	BillOfSupply InvoiceType = "BILL_OF_SUPPLY"
	Proforma     InvoiceType = "PROFORMA"
	CreditNote   InvoiceType = "CREDIT_NOTE"
	DebitNote    InvoiceType = "DEBIT_NOTE"
)

// InvoiceStatus tracks the payment lifecycle of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft         InvoiceStatus = "DRAFT"
	InvoiceSent          InvoiceStatus = "SENT"
	InvoicePartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoicePaid          InvoiceStatus = "PAID"
	InvoiceOverdue       InvoiceStatus = "OVERDUE"
	InvoiceCancelled     InvoiceStatus = "CANCELLED"
)

// TaxMode records whether the buyer sits in the same jurisdiction as the
// business, which decides the component split for GST-style regimes.
type TaxMode string

const (
	TaxModeIntra TaxMode = "INTRA"
	TaxModeInter TaxMode = "INTER"
)

// Invoice represents a posted sales document. Arithmetic invariants:
// Total = Subtotal + TaxAmount - Discount, and BalanceDue = Total - PaidAmount.
// Invoices are never hard-deleted; cancellation is a status transition so
// the audit trail survives.
type Invoice struct {
	InvoiceID     string            `json:"invoiceID"`    // Primary Key (e.g., UUID)
	BusinessID    string            `json:"businessID"`   // FK -> Business.businessID (Not Null)
	CustomerID    string            `json:"customerID"`   // FK -> Customer.customerID (Not Null)
	InvoiceType   InvoiceType       `json:"invoiceType"`
	InvoiceNumber string            `json:"invoiceNumber"` // Unique per business, monotonic (INV-{year}-{seq})
	IssueDate     time.Time         `json:"issueDate"`
	DueDate       time.Time         `json:"dueDate"`
	LineItems     []InvoiceLineItem `json:"lineItems,omitempty"` // Often loaded separately
	Subtotal      decimal.Decimal   `json:"subtotal"`
	TaxAmount     decimal.Decimal   `json:"taxAmount"`
	Discount      decimal.Decimal   `json:"discount"`
	Total         decimal.Decimal   `json:"total"`
	PaidAmount    decimal.Decimal   `json:"paidAmount"`
	BalanceDue    decimal.Decimal   `json:"balanceDue"`
	Status        InvoiceStatus     `json:"status"`
	CurrencyCode  string            `json:"currencyCode"`
	TaxMode       TaxMode           `json:"taxMode"`
	VoucherID     string            `json:"voucherID"` // Ledger voucher posted for this invoice
	AuditFields
}

// InvoiceLineItem is a single billed line. Owned exclusively by its
// invoice, never shared. ProductID is empty for service lines.
type InvoiceLineItem struct {
	LineItemID    string                     `json:"lineItemID"` // Primary Key (e.g., UUID)
	InvoiceID     string                     `json:"invoiceID"`  // FK -> Invoice.invoiceID (Not Null)
	ProductID     string                     `json:"productID"`  // Optional FK -> InventoryItem.productID
	Description   string                     `json:"description"`
	Quantity      decimal.Decimal            `json:"quantity"`
	UnitRate      decimal.Decimal            `json:"unitRate"`
	Discount      decimal.Decimal            `json:"discount"` // Per-line discount amount
	TaxRate       decimal.Decimal            `json:"taxRate"`  // Percentage applied to this line
	TaxAmount     decimal.Decimal            `json:"taxAmount"`
	TaxComponents map[string]decimal.Decimal `json:"taxComponents,omitempty"` // e.g. {"CGST": x, "SGST": y}
	LineTotal     decimal.Decimal            `json:"lineTotal"` // qty*rate - discount + tax
}

// DeriveStatus computes the payment status for the given paid amount and
// total. It never returns OVERDUE or CANCELLED; those are explicit
// transitions applied elsewhere.
func DeriveStatus(paidAmount, total decimal.Decimal) InvoiceStatus {
	switch {
	case total.IsPositive() && paidAmount.GreaterThanOrEqual(total):
		return InvoicePaid
	case paidAmount.IsPositive():
		return InvoicePartiallyPaid
	default:
		return InvoiceSent
	}
}
