package repositories

import (
	"context"

	"github.com/openbooks/retail_ledger_app/internal/core/domain"
)

// BusinessReader defines read operations for business data
type BusinessReader interface {
	// FindBusinessByID retrieves a business by its unique identifier.
	FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error)
}

// BusinessRepositoryFacade combines all business-related repository interfaces
type BusinessRepositoryFacade interface {
	BusinessReader
}

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	// FindCustomerByID retrieves a customer scoped to a business.
	FindCustomerByID(ctx context.Context, businessID string, customerID string) (*domain.Customer, error)
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
}
