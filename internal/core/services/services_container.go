package services

import (
	portsrepo "github.com/openbooks/retail_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/openbooks/retail_ledger_app/internal/core/ports/services"
	"github.com/openbooks/retail_ledger_app/internal/taxrules"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(rules *taxrules.Store, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The tax calculator is pure and feeds both the orchestrator and the
	// readiness scorer.
	container.TaxCalc = NewTaxCalculator(rules)

	container.Ledger = NewLedgerService(repos.VoucherRepo, repos.BusinessRepo)
	container.Inventory = NewInventoryService(repos.InventoryRepo)
	container.Invoice = NewInvoiceService(
		repos.InvoiceRepo,
		repos.BusinessRepo,
		repos.CustomerRepo,
		repos.InventoryRepo,
		repos.VoucherRepo,
		repos.PaymentRepo,
		container.TaxCalc,
	)
	container.Readiness = NewReadinessService(repos.ReadinessRepo, repos.BusinessRepo, container.TaxCalc)

	return container
}
