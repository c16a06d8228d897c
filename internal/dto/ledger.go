package dto

import (
	"time"

	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostVoucherEntry is one ledger line of a manual voucher request.
// Exactly one of Debit/Credit must be positive.
type PostVoucherEntry struct {
	AccountName  string              `json:"accountName" binding:"required"`
	AccountClass domain.AccountClass `json:"accountClass" binding:"required,oneof=ASSET LIABILITY INCOME EXPENSE RECEIVABLE"`
	Debit        decimal.Decimal     `json:"debit"`
	Credit       decimal.Decimal     `json:"credit"`
	Description  string              `json:"description"`
}

// PostVoucherRequest is the input to posting a manual voucher.
type PostVoucherRequest struct {
	Reference   string             `json:"reference" binding:"required"`
	VoucherType domain.VoucherType `json:"voucherType" binding:"required,oneof=SALE PURCHASE PAYMENT ADJUSTMENT"`
	VoucherDate *time.Time         `json:"voucherDate"`
	Description string             `json:"description" binding:"required"`
	Entries     []PostVoucherEntry `json:"entries" binding:"required,min=2,dive"`
}

// LedgerEntryResponse is the API shape of one ledger line.
type LedgerEntryResponse struct {
	EntryID      string          `json:"entryID"`
	AccountName  string          `json:"accountName"`
	AccountClass string          `json:"accountClass"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	EntryDate    time.Time       `json:"entryDate"`
	Description  string          `json:"description"`
}

// VoucherResponse is the API shape of a voucher with its entries.
type VoucherResponse struct {
	VoucherID         string                `json:"voucherID"`
	Reference         string                `json:"reference"`
	VoucherType       string                `json:"voucherType"`
	VoucherDate       time.Time             `json:"voucherDate"`
	Description       string                `json:"description"`
	CurrencyCode      string                `json:"currencyCode"`
	Amount            decimal.Decimal       `json:"amount"`
	Status            string                `json:"status"`
	OriginalVoucherID *string               `json:"originalVoucherID,omitempty"`
	Entries           []LedgerEntryResponse `json:"entries,omitempty"`
}

// ToLedgerEntryResponses converts domain ledger entries to DTOs.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = LedgerEntryResponse{
			EntryID:      e.EntryID,
			AccountName:  e.AccountName,
			AccountClass: string(e.AccountClass),
			Debit:        e.Debit,
			Credit:       e.Credit,
			EntryDate:    e.EntryDate,
			Description:  e.Description,
		}
	}
	return responses
}

// ToVoucherResponse converts a domain.Voucher and its entries to a DTO.
func ToVoucherResponse(v *domain.Voucher, entries []domain.LedgerEntry) VoucherResponse {
	resp := VoucherResponse{
		VoucherID:         v.VoucherID,
		Reference:         v.Reference,
		VoucherType:       string(v.VoucherType),
		VoucherDate:       v.VoucherDate,
		Description:       v.Description,
		CurrencyCode:      v.CurrencyCode,
		Amount:            v.Amount,
		Status:            string(v.Status),
		OriginalVoucherID: v.OriginalVoucherID,
	}
	if len(entries) > 0 {
		resp.Entries = ToLedgerEntryResponses(entries)
	}
	return resp
}
