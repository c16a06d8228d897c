package services

// ServiceContainer bundles the service facades the handlers depend on.
type ServiceContainer struct {
	Invoice   InvoiceSvcFacade
	Ledger    LedgerSvcFacade
	Inventory InventorySvcFacade
	Readiness ReadinessSvc
	TaxCalc   TaxCalculatorSvc
}
