package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the DB representation of a sales document.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	BusinessID    string          `json:"businessID"`
	CustomerID    string          `json:"customerID"`
	InvoiceType   string          `json:"invoiceType"`
	InvoiceNumber string          `json:"invoiceNumber"`
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       time.Time       `json:"dueDate"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	BalanceDue    decimal.Decimal `json:"balanceDue"`
	Status        string          `json:"status"`
	CurrencyCode  string          `json:"currencyCode"`
	TaxMode       string          `json:"taxMode"`
	VoucherID     string          `json:"voucherID"`
	AuditFields
}

// InvoiceLineItem is the DB representation of a billed line. The tax
// component breakdown is stored as a JSONB column.
type InvoiceLineItem struct {
	LineItemID    string                     `json:"lineItemID"`
	InvoiceID     string                     `json:"invoiceID"`
	ProductID     *string                    `json:"productID"` // NULL for service lines
	Description   string                     `json:"description"`
	Quantity      decimal.Decimal            `json:"quantity"`
	UnitRate      decimal.Decimal            `json:"unitRate"`
	Discount      decimal.Decimal            `json:"discount"`
	TaxRate       decimal.Decimal            `json:"taxRate"`
	TaxAmount     decimal.Decimal            `json:"taxAmount"`
	TaxComponents map[string]decimal.Decimal `json:"taxComponents"`
	LineTotal     decimal.Decimal            `json:"lineTotal"`
}
