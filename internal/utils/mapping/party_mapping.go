package mapping

import (
	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	"github.com/openbooks/retail_ledger_app/internal/models"
)

// ToDomainBusiness converts a model Business to a domain Business
func ToDomainBusiness(m models.Business) domain.Business {
	return domain.Business{
		BusinessID:       m.BusinessID,
		Name:             m.Name,
		JurisdictionCode: m.JurisdictionCode,
		RegistrationID:   m.RegistrationID,
		DefaultTaxRate:   m.DefaultTaxRate,
		PaymentTermDays:  m.PaymentTermDays,
		CurrencyCode:     m.CurrencyCode,
		AnnualTurnover:   m.AnnualTurnover,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:       m.CustomerID,
		BusinessID:       m.BusinessID,
		Name:             m.Name,
		JurisdictionCode: m.JurisdictionCode,
		RegistrationID:   m.RegistrationID,
		Balance:          m.Balance,
		LastInvoiceDate:  m.LastInvoiceDate,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:   d.PaymentID,
		BusinessID:  d.BusinessID,
		InvoiceID:   d.InvoiceID,
		CustomerID:  d.CustomerID,
		Amount:      d.Amount,
		Method:      string(d.Method),
		PaymentDate: d.PaymentDate,
		VoucherID:   d.VoucherID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:   m.PaymentID,
		BusinessID:  m.BusinessID,
		InvoiceID:   m.InvoiceID,
		CustomerID:  m.CustomerID,
		Amount:      m.Amount,
		Method:      domain.PaymentMethod(m.Method),
		PaymentDate: m.PaymentDate,
		VoucherID:   m.VoucherID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
