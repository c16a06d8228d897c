package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/openbooks/retail_ledger_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	businessRepo := newPgxBusinessRepository(dbPool)
	customerRepo := newPgxCustomerRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	voucherRepo := newPgxVoucherRepository(dbPool)
	inventoryRepo := newPgxInventoryRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)
	readinessRepo := newPgxReadinessRepository(dbPool)

	return portsrepo.RepositoryProvider{
		BusinessRepo:  businessRepo,
		CustomerRepo:  customerRepo,
		InvoiceRepo:   invoiceRepo,
		VoucherRepo:   voucherRepo,
		InventoryRepo: inventoryRepo,
		PaymentRepo:   paymentRepo,
		ReadinessRepo: readinessRepo,
	}
}
