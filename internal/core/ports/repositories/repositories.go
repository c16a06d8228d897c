package repositories

// RepositoryProvider aggregates all repository facades for dependency
// injection into the service container.
type RepositoryProvider struct {
	BusinessRepo  BusinessRepositoryFacade
	CustomerRepo  CustomerRepositoryFacade
	InvoiceRepo   InvoiceRepositoryWithTx
	VoucherRepo   VoucherRepositoryFacade
	InventoryRepo InventoryRepositoryFacade
	PaymentRepo   PaymentRepositoryFacade
	ReadinessRepo ReadinessRepositoryFacade
}
