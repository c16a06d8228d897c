package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/openbooks/retail_ledger_app/internal/core/ports/repositories"
)

// --- Mock BusinessRepository ---
type MockBusinessRepository struct {
	mock.Mock
}

var _ portsrepo.BusinessRepositoryFacade = (*MockBusinessRepository)(nil)

func (m *MockBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

// --- Mock CustomerRepository ---
type MockCustomerRepository struct {
	mock.Mock
}

var _ portsrepo.CustomerRepositoryFacade = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, businessID string, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, businessID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

// --- Mock VoucherRepository ---
type MockVoucherRepository struct {
	mock.Mock
}

var _ portsrepo.VoucherRepositoryFacade = (*MockVoucherRepository)(nil)

func (m *MockVoucherRepository) FindVoucherByID(ctx context.Context, businessID string, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, businessID, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) FindVoucherByReference(ctx context.Context, businessID string, reference string) (*domain.Voucher, error) {
	args := m.Called(ctx, businessID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) FindEntriesByVoucherID(ctx context.Context, voucherID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher, entries []domain.LedgerEntry) error {
	args := m.Called(ctx, voucher, entries)
	return args.Error(0)
}

func (m *MockVoucherRepository) MarkVoucherReversed(ctx context.Context, voucherID string, reversingVoucherID string, updatedBy string) error {
	args := m.Called(ctx, voucherID, reversingVoucherID, updatedBy)
	return args.Error(0)
}

// --- Mock InventoryRepository ---
type MockInventoryRepository struct {
	mock.Mock
}

var _ portsrepo.InventoryRepositoryFacade = (*MockInventoryRepository)(nil)

func (m *MockInventoryRepository) FindItemByID(ctx context.Context, businessID string, productID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, businessID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) ListLowStockItems(ctx context.Context, businessID string) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) ListMovementsByProduct(ctx context.Context, businessID string, productID string, limit int) ([]domain.StockMovement, error) {
	args := m.Called(ctx, businessID, productID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}

func (m *MockInventoryRepository) AdjustStock(ctx context.Context, businessID string, productID string, delta decimal.Decimal, movement domain.StockMovement) (decimal.Decimal, error) {
	args := m.Called(ctx, businessID, productID, delta, movement)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryWithTx = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, businessID string, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, businessID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindLineItemsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceLineItem, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceLineItem), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByBusiness(ctx context.Context, businessID string, limit int, offset int, status *domain.InvoiceStatus) ([]domain.Invoice, error) {
	args := m.Called(ctx, businessID, limit, offset, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SavePostedInvoice(ctx context.Context, posting *domain.InvoicePosting) error {
	args := m.Called(ctx, posting)
	return args.Error(0)
}

func (m *MockInvoiceRepository) ApplyPayment(ctx context.Context, posting domain.PaymentPosting) error {
	args := m.Called(ctx, posting)
	return args.Error(0)
}

func (m *MockInvoiceRepository) CancelInvoice(ctx context.Context, posting domain.CancellationPosting) error {
	args := m.Called(ctx, posting)
	return args.Error(0)
}

func (m *MockInvoiceRepository) MarkOverdueInvoices(ctx context.Context, asOf time.Time) (int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockInvoiceRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock ReadinessRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) ListPaymentsByInvoice(ctx context.Context, businessID string, invoiceID string) ([]domain.Payment, error) {
	args := m.Called(ctx, businessID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

type MockReadinessRepository struct {
	mock.Mock
}

var _ portsrepo.ReadinessRepositoryFacade = (*MockReadinessRepository)(nil)

func (m *MockReadinessRepository) FindSaleVouchersWithoutInvoice(ctx context.Context, businessID string, from, to time.Time) ([]domain.Voucher, error) {
	args := m.Called(ctx, businessID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Voucher), args.Error(1)
}

func (m *MockReadinessRepository) FindTaxTransactionsByPeriod(ctx context.Context, businessID string, from, to time.Time) ([]domain.TaxTransaction, error) {
	args := m.Called(ctx, businessID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxTransaction), args.Error(1)
}

func (m *MockReadinessRepository) FindPurchaseTaxWithoutRegistration(ctx context.Context, businessID string, from, to time.Time) ([]domain.TaxTransaction, error) {
	args := m.Called(ctx, businessID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxTransaction), args.Error(1)
}

func (m *MockReadinessRepository) FindOverdueFilingPeriods(ctx context.Context, businessID string, asOf time.Time) ([]domain.TaxFilingPeriod, error) {
	args := m.Called(ctx, businessID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxFilingPeriod), args.Error(1)
}
