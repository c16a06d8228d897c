package mapping

import (
	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	"github.com/openbooks/retail_ledger_app/internal/models"
)

// ToModelVoucher converts a domain Voucher to a model Voucher
func ToModelVoucher(d domain.Voucher) models.Voucher {
	return models.Voucher{
		VoucherID:         d.VoucherID,
		BusinessID:        d.BusinessID,
		Reference:         d.Reference,
		VoucherType:       string(d.VoucherType),
		VoucherDate:       d.VoucherDate,
		Description:       d.Description,
		CurrencyCode:      d.CurrencyCode,
		Amount:            d.Amount,
		Status:            string(d.Status),
		OriginalVoucherID: d.OriginalVoucherID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVoucher converts a model Voucher to a domain Voucher
func ToDomainVoucher(m models.Voucher) domain.Voucher {
	return domain.Voucher{
		VoucherID:         m.VoucherID,
		BusinessID:        m.BusinessID,
		Reference:         m.Reference,
		VoucherType:       domain.VoucherType(m.VoucherType),
		VoucherDate:       m.VoucherDate,
		Description:       m.Description,
		CurrencyCode:      m.CurrencyCode,
		Amount:            m.Amount,
		Status:            domain.VoucherStatus(m.Status),
		OriginalVoucherID: m.OriginalVoucherID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:      d.EntryID,
		VoucherID:    d.VoucherID,
		AccountName:  d.AccountName,
		AccountClass: string(d.AccountClass),
		Debit:        d.Debit,
		Credit:       d.Credit,
		EntryDate:    d.EntryDate,
		Description:  d.Description,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:      m.EntryID,
		VoucherID:    m.VoucherID,
		AccountName:  m.AccountName,
		AccountClass: domain.AccountClass(m.AccountClass),
		Debit:        m.Debit,
		Credit:       m.Credit,
		EntryDate:    m.EntryDate,
		Description:  m.Description,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTaxTransaction converts a domain TaxTransaction to a model TaxTransaction
func ToModelTaxTransaction(d domain.TaxTransaction) models.TaxTransaction {
	return models.TaxTransaction{
		TaxTransactionID: d.TaxTransactionID,
		BusinessID:       d.BusinessID,
		VoucherID:        d.VoucherID,
		CustomerID:       d.CustomerID,
		Regime:           string(d.Regime),
		Direction:        string(d.Direction),
		TaxRate:          d.TaxRate,
		TaxableAmount:    d.TaxableAmount,
		TaxAmount:        d.TaxAmount,
		Components:       d.Components,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTaxTransaction converts a model TaxTransaction to a domain TaxTransaction
func ToDomainTaxTransaction(m models.TaxTransaction) domain.TaxTransaction {
	return domain.TaxTransaction{
		TaxTransactionID: m.TaxTransactionID,
		BusinessID:       m.BusinessID,
		VoucherID:        m.VoucherID,
		CustomerID:       m.CustomerID,
		Regime:           domain.TaxRegime(m.Regime),
		Direction:        domain.TransactionDirection(m.Direction),
		TaxRate:          m.TaxRate,
		TaxableAmount:    m.TaxableAmount,
		TaxAmount:        m.TaxAmount,
		Components:       m.Components,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
