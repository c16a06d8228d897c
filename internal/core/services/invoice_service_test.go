package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openbooks/retail_ledger_app/internal/apperrors"
	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	portssvc "github.com/openbooks/retail_ledger_app/internal/core/ports/services"
	"github.com/openbooks/retail_ledger_app/internal/core/services"
	"github.com/openbooks/retail_ledger_app/internal/dto"
	"github.com/openbooks/retail_ledger_app/internal/taxrules"
	"github.com/openbooks/retail_ledger_app/internal/utils/accounting"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo   *MockInvoiceRepository
	mockBusinessRepo  *MockBusinessRepository
	mockCustomerRepo  *MockCustomerRepository
	mockInventoryRepo *MockInventoryRepository
	mockVoucherRepo   *MockVoucherRepository
	mockPaymentRepo   *MockPaymentRepository
	service           portssvc.InvoiceSvcFacade
	businessID        string
	customerID        string
	productID         string
	userID            string
	business          *domain.Business
	customer          *domain.Customer
	product           *domain.InventoryItem
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockBusinessRepo = new(MockBusinessRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockInventoryRepo = new(MockInventoryRepository)
	suite.mockVoucherRepo = new(MockVoucherRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)

	store, err := taxrules.NewDefaultStore()
	suite.Require().NoError(err)

	suite.service = services.NewInvoiceService(
		suite.mockInvoiceRepo,
		suite.mockBusinessRepo,
		suite.mockCustomerRepo,
		suite.mockInventoryRepo,
		suite.mockVoucherRepo,
		suite.mockPaymentRepo,
		services.NewTaxCalculator(store),
	)

	suite.businessID = uuid.NewString()
	suite.customerID = uuid.NewString()
	suite.productID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.business = &domain.Business{
		BusinessID:       suite.businessID,
		Name:             "Test Traders",
		JurisdictionCode: "IN",
		RegistrationID:   "GSTIN123",
		PaymentTermDays:  15,
		CurrencyCode:     "INR",
	}
	suite.customer = &domain.Customer{
		CustomerID:       suite.customerID,
		BusinessID:       suite.businessID,
		Name:             "Acme Stores",
		JurisdictionCode: "IN",
	}
	suite.product = &domain.InventoryItem{
		ProductID:     suite.productID,
		BusinessID:    suite.businessID,
		Name:          "Widget",
		CurrentStock:  decimal.NewFromInt(10),
		MinStockLevel: decimal.NewFromInt(2),
	}
}

func (suite *InvoiceServiceTestSuite) expectLookups(ctx context.Context) {
	suite.mockBusinessRepo.On("FindBusinessByID", ctx, suite.businessID).Return(suite.business, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.businessID, suite.customerID).Return(suite.customer, nil).Once()
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_Success() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		CustomerID:  suite.customerID,
		InvoiceType: domain.TaxInvoice,
		LineItems: []dto.CreateInvoiceLineItem{
			{ProductID: suite.productID, Description: "Widget", Quantity: decimal.NewFromInt(2), UnitRate: decimal.NewFromInt(250)},
		},
	}

	suite.expectLookups(ctx)
	suite.mockInventoryRepo.On("FindItemByID", ctx, suite.businessID, suite.productID).Return(suite.product, nil).Once()

	var posting *domain.InvoicePosting
	suite.mockInvoiceRepo.On("SavePostedInvoice", ctx, mock.AnythingOfType("*domain.InvoicePosting")).
		Run(func(args mock.Arguments) {
			posting = args.Get(1).(*domain.InvoicePosting)
			posting.Invoice.InvoiceNumber = "INV-2026-0001"
		}).
		Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, suite.businessID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.Equal("INV-2026-0001", invoice.InvoiceNumber)
	suite.True(invoice.Subtotal.Equal(decimal.NewFromInt(500)))
	suite.True(invoice.TaxAmount.Equal(decimal.NewFromInt(90)), "18%% GST on 500, got %s", invoice.TaxAmount)
	suite.True(invoice.Total.Equal(decimal.NewFromInt(590)))
	suite.True(invoice.BalanceDue.Equal(decimal.NewFromInt(590)))
	suite.Equal(domain.InvoiceSent, invoice.Status)
	suite.Equal(domain.TaxModeIntra, invoice.TaxMode)
	suite.Equal("INR", invoice.CurrencyCode)
	suite.Equal(invoice.IssueDate.AddDate(0, 0, 15), invoice.DueDate)
	suite.Require().Len(invoice.LineItems, 1)
	suite.True(invoice.LineItems[0].TaxComponents["CGST"].Equal(decimal.NewFromInt(45)))
	suite.True(invoice.LineItems[0].TaxComponents["SGST"].Equal(decimal.NewFromInt(45)))

	suite.Require().NotNil(posting)
	suite.NoError(accounting.ValidateVoucherBalance(posting.Entries))
	suite.Equal(domain.VoucherSale, posting.Voucher.VoucherType)
	suite.Equal("INV-"+invoice.InvoiceID, posting.Voucher.Reference)
	suite.True(posting.StockDeltas[suite.productID].Equal(decimal.NewFromInt(-2)))
	suite.Require().Len(posting.Movements, 1)
	suite.Equal(domain.MovementSale, posting.Movements[0].MovementType)
	suite.True(posting.Movements[0].Quantity.Equal(decimal.NewFromInt(-2)))
	suite.True(posting.CustomerBalanceDelta.Equal(decimal.NewFromInt(590)))
	suite.Require().NotNil(posting.TaxTransaction)
	suite.Equal(domain.RegimeGST, posting.TaxTransaction.Regime)
	suite.True(posting.TaxTransaction.TaxAmount.Equal(decimal.NewFromInt(90)))
	suite.Nil(posting.Payment)

	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ImmediatePaymentInFull() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		CustomerID:  suite.customerID,
		InvoiceType: domain.TaxInvoice,
		LineItems: []dto.CreateInvoiceLineItem{
			{ProductID: suite.productID, Description: "Widget", Quantity: decimal.NewFromInt(2), UnitRate: decimal.NewFromInt(250)},
		},
		PaidAmount:    decimal.NewFromInt(590),
		PaymentMethod: domain.PaymentCash,
	}

	suite.expectLookups(ctx)
	suite.mockInventoryRepo.On("FindItemByID", ctx, suite.businessID, suite.productID).Return(suite.product, nil).Once()

	var posting *domain.InvoicePosting
	suite.mockInvoiceRepo.On("SavePostedInvoice", ctx, mock.AnythingOfType("*domain.InvoicePosting")).
		Run(func(args mock.Arguments) {
			posting = args.Get(1).(*domain.InvoicePosting)
		}).
		Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, suite.businessID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePaid, invoice.Status)
	suite.True(invoice.BalanceDue.IsZero())

	suite.Require().NotNil(posting)
	suite.NoError(accounting.ValidateVoucherBalance(posting.Entries))
	suite.True(posting.CustomerBalanceDelta.IsZero())
	suite.Require().NotNil(posting.Payment)
	suite.True(posting.Payment.Amount.Equal(decimal.NewFromInt(590)))
	suite.Equal(domain.PaymentCash, posting.Payment.Method)

	var cashDebit decimal.Decimal
	for _, e := range posting.Entries {
		if e.AccountName == "Cash" {
			cashDebit = cashDebit.Add(e.Debit)
		}
	}
	suite.True(cashDebit.Equal(decimal.NewFromInt(590)))
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ServiceLineSkipsStock() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		CustomerID:  suite.customerID,
		InvoiceType: domain.TaxInvoice,
		LineItems: []dto.CreateInvoiceLineItem{
			{Description: "Consulting", Quantity: decimal.NewFromInt(1), UnitRate: decimal.NewFromInt(100)},
		},
	}

	suite.expectLookups(ctx)

	var posting *domain.InvoicePosting
	suite.mockInvoiceRepo.On("SavePostedInvoice", ctx, mock.AnythingOfType("*domain.InvoicePosting")).
		Run(func(args mock.Arguments) {
			posting = args.Get(1).(*domain.InvoicePosting)
		}).
		Return(nil).Once()

	_, err := suite.service.CreateInvoice(ctx, suite.businessID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(posting.StockDeltas)
	suite.Empty(posting.Movements)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "FindItemByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ExemptCategoryHasNoTaxTransaction() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		CustomerID:  suite.customerID,
		InvoiceType: domain.BillOfSupply,
		LineItems: []dto.CreateInvoiceLineItem{
			{Description: "Textbook", Quantity: decimal.NewFromInt(3), UnitRate: decimal.NewFromInt(50), Category: "books"},
		},
	}

	suite.expectLookups(ctx)

	var posting *domain.InvoicePosting
	suite.mockInvoiceRepo.On("SavePostedInvoice", ctx, mock.AnythingOfType("*domain.InvoicePosting")).
		Run(func(args mock.Arguments) {
			posting = args.Get(1).(*domain.InvoicePosting)
		}).
		Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, suite.businessID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(invoice.TaxAmount.IsZero())
	suite.True(invoice.Total.Equal(decimal.NewFromInt(150)))
	suite.Nil(posting.TaxTransaction)
	suite.NoError(accounting.ValidateVoucherBalance(posting.Entries))
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_MixedExemptLinesRecordConsistentTaxTransaction() {
	ctx := context.Background()
	// One exempt line and one taxed line: the tax transaction's rate is a
	// blend over the whole taxable base, so its components must carry the
	// exact breakdown the readiness check verifies against.
	req := dto.CreateInvoiceRequest{
		CustomerID:  suite.customerID,
		InvoiceType: domain.TaxInvoice,
		LineItems: []dto.CreateInvoiceLineItem{
			{Description: "Textbooks", Quantity: decimal.NewFromInt(1), UnitRate: decimal.NewFromFloat(19991.67), Category: "books"},
			{Description: "Consulting", Quantity: decimal.NewFromInt(1), UnitRate: decimal.NewFromFloat(10008.33)},
		},
	}

	suite.expectLookups(ctx)

	var posting *domain.InvoicePosting
	suite.mockInvoiceRepo.On("SavePostedInvoice", ctx, mock.AnythingOfType("*domain.InvoicePosting")).
		Run(func(args mock.Arguments) {
			posting = args.Get(1).(*domain.InvoicePosting)
		}).
		Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, suite.businessID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(invoice.Subtotal.Equal(decimal.NewFromInt(30000)))
	suite.True(invoice.TaxAmount.Equal(decimal.NewFromFloat(1801.50)), "tax amount was %s", invoice.TaxAmount)

	suite.Require().NotNil(posting.TaxTransaction)
	txn := *posting.TaxTransaction
	suite.True(txn.TaxRate.Equal(decimal.NewFromFloat(6.005)), "blended rate was %s", txn.TaxRate)
	componentSum := decimal.Zero
	for _, amount := range txn.Components {
		componentSum = componentSum.Add(amount)
	}
	suite.True(componentSum.Equal(txn.TaxAmount), "components sum to %s, tax amount is %s", componentSum, txn.TaxAmount)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NegativeLineTaxRateRejected() {
	ctx := context.Background()
	rate := decimal.NewFromInt(-18)
	req := dto.CreateInvoiceRequest{
		CustomerID:  suite.customerID,
		InvoiceType: domain.TaxInvoice,
		LineItems: []dto.CreateInvoiceLineItem{
			{Description: "Widget", Quantity: decimal.NewFromInt(1), UnitRate: decimal.NewFromInt(100), TaxRate: &rate},
		},
	}

	suite.expectLookups(ctx)

	_, err := suite.service.CreateInvoice(ctx, suite.businessID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.NotErrorIs(err, apperrors.ErrUnbalanced)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SavePostedInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_FlatAmount() {
	ctx := context.Background()
	flat := decimal.NewFromInt(1000)
	req := dto.CreateInvoiceRequest{
		CustomerID:  suite.customerID,
		InvoiceType: domain.TaxInvoice,
		FlatAmount:  &flat,
	}

	suite.expectLookups(ctx)
	suite.mockInvoiceRepo.On("SavePostedInvoice", ctx, mock.AnythingOfType("*domain.InvoicePosting")).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, suite.businessID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(invoice.Subtotal.Equal(flat))
	suite.True(invoice.TaxAmount.Equal(decimal.NewFromInt(180)))
	suite.True(invoice.Total.Equal(decimal.NewFromInt(1180)))
	suite.Empty(invoice.LineItems)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NoBillableAmount() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		CustomerID:  suite.customerID,
		InvoiceType: domain.TaxInvoice,
	}

	_, err := suite.service.CreateInvoice(ctx, suite.businessID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SavePostedInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_OverPaymentRejected() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		CustomerID:  suite.customerID,
		InvoiceType: domain.TaxInvoice,
		LineItems: []dto.CreateInvoiceLineItem{
			{Description: "Widget", Quantity: decimal.NewFromInt(2), UnitRate: decimal.NewFromInt(250)},
		},
		PaidAmount: decimal.NewFromInt(600),
	}

	suite.expectLookups(ctx)

	_, err := suite.service.CreateInvoice(ctx, suite.businessID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SavePostedInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ZeroQuantityRejected() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		CustomerID:  suite.customerID,
		InvoiceType: domain.TaxInvoice,
		LineItems: []dto.CreateInvoiceLineItem{
			{Description: "Widget", Quantity: decimal.Zero, UnitRate: decimal.NewFromInt(250)},
		},
	}

	suite.expectLookups(ctx)

	_, err := suite.service.CreateInvoice(ctx, suite.businessID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_InsufficientStockFailsWholePosting() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		CustomerID:  suite.customerID,
		InvoiceType: domain.TaxInvoice,
		LineItems: []dto.CreateInvoiceLineItem{
			{ProductID: suite.productID, Description: "Widget", Quantity: decimal.NewFromInt(50), UnitRate: decimal.NewFromInt(250)},
		},
	}

	suite.expectLookups(ctx)
	suite.mockInventoryRepo.On("FindItemByID", ctx, suite.businessID, suite.productID).Return(suite.product, nil).Once()
	suite.mockInvoiceRepo.On("SavePostedInvoice", ctx, mock.AnythingOfType("*domain.InvoicePosting")).
		Return(apperrors.ErrInsufficientStock).Once()

	_, err := suite.service.CreateInvoice(ctx, suite.businessID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_PartialThenStatus() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID:     invoiceID,
		BusinessID:    suite.businessID,
		CustomerID:    suite.customerID,
		InvoiceNumber: "INV-2026-0003",
		Total:         decimal.NewFromInt(590),
		PaidAmount:    decimal.Zero,
		BalanceDue:    decimal.NewFromInt(590),
		Status:        domain.InvoiceSent,
		CurrencyCode:  "INR",
	}
	req := dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(300),
		Method: domain.PaymentBankTransfer,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.businessID, invoiceID).Return(invoice, nil).Once()

	var posting domain.PaymentPosting
	suite.mockInvoiceRepo.On("ApplyPayment", ctx, mock.AnythingOfType("domain.PaymentPosting")).
		Run(func(args mock.Arguments) {
			posting = args.Get(1).(domain.PaymentPosting)
		}).
		Return(nil).Once()

	updated, err := suite.service.RecordPayment(ctx, suite.businessID, invoiceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(updated.PaidAmount.Equal(decimal.NewFromInt(300)))
	suite.True(updated.BalanceDue.Equal(decimal.NewFromInt(290)))
	suite.Equal(domain.InvoicePartiallyPaid, updated.Status)

	suite.Equal(domain.InvoicePartiallyPaid, posting.Status)
	suite.Equal(domain.VoucherPayment, posting.Voucher.VoucherType)
	suite.True(posting.PaidAmount.Equal(decimal.NewFromInt(300)))
	suite.True(posting.ExpectedPaidAmount.Equal(decimal.Zero),
		"the write must be guarded by the paid amount the new totals were computed from")
	suite.True(posting.CustomerBalanceDelta.Equal(decimal.NewFromInt(-300)))
	suite.NoError(accounting.ValidateVoucherBalance(posting.Entries))

	var bankDebit decimal.Decimal
	for _, e := range posting.Entries {
		if e.AccountName == "Bank" {
			bankDebit = bankDebit.Add(e.Debit)
		}
	}
	suite.True(bankDebit.Equal(req.Amount), "non-cash payments debit the bank account")
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_SettlesInvoice() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID:     invoiceID,
		BusinessID:    suite.businessID,
		CustomerID:    suite.customerID,
		InvoiceNumber: "INV-2026-0004",
		Total:         decimal.NewFromInt(590),
		PaidAmount:    decimal.NewFromInt(300),
		BalanceDue:    decimal.NewFromInt(290),
		Status:        domain.InvoicePartiallyPaid,
		CurrencyCode:  "INR",
	}
	req := dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(290),
		Method: domain.PaymentCash,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.businessID, invoiceID).Return(invoice, nil).Once()

	var posting domain.PaymentPosting
	suite.mockInvoiceRepo.On("ApplyPayment", ctx, mock.AnythingOfType("domain.PaymentPosting")).
		Run(func(args mock.Arguments) {
			posting = args.Get(1).(domain.PaymentPosting)
		}).
		Return(nil).Once()

	updated, err := suite.service.RecordPayment(ctx, suite.businessID, invoiceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePaid, updated.Status)
	suite.True(updated.BalanceDue.IsZero())
	suite.True(posting.ExpectedPaidAmount.Equal(decimal.NewFromInt(300)))
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_OverPaymentRejected() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID:  invoiceID,
		BusinessID: suite.businessID,
		Total:      decimal.NewFromInt(590),
		BalanceDue: decimal.NewFromInt(100),
		Status:     domain.InvoicePartiallyPaid,
	}
	req := dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(101),
		Method: domain.PaymentCash,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.businessID, invoiceID).Return(invoice, nil).Once()

	_, err := suite.service.RecordPayment(ctx, suite.businessID, invoiceID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "ApplyPayment", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_CancelledInvoiceRejected() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID:  invoiceID,
		BusinessID: suite.businessID,
		Status:     domain.InvoiceCancelled,
	}
	req := dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(10),
		Method: domain.PaymentCash,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.businessID, invoiceID).Return(invoice, nil).Once()

	_, err := suite.service.RecordPayment(ctx, suite.businessID, invoiceID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *InvoiceServiceTestSuite) TestCancelInvoice_Success() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	voucherID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID:     invoiceID,
		BusinessID:    suite.businessID,
		CustomerID:    suite.customerID,
		InvoiceNumber: "INV-2026-0005",
		Total:         decimal.NewFromInt(590),
		PaidAmount:    decimal.Zero,
		BalanceDue:    decimal.NewFromInt(590),
		Status:        domain.InvoiceSent,
		VoucherID:     voucherID,
	}
	original := &domain.Voucher{
		VoucherID:    voucherID,
		BusinessID:   suite.businessID,
		Reference:    "INV-" + invoiceID,
		VoucherType:  domain.VoucherSale,
		CurrencyCode: "INR",
		Amount:       decimal.NewFromInt(590),
		Status:       domain.VoucherPosted,
	}
	originalEntries := []domain.LedgerEntry{
		{EntryID: uuid.NewString(), VoucherID: voucherID, AccountName: "Accounts Receivable", AccountClass: domain.Receivable, Debit: decimal.NewFromInt(590)},
		{EntryID: uuid.NewString(), VoucherID: voucherID, AccountName: "Sales", AccountClass: domain.Income, Credit: decimal.NewFromInt(500)},
		{EntryID: uuid.NewString(), VoucherID: voucherID, AccountName: "CGST Payable", AccountClass: domain.Liability, Credit: decimal.NewFromInt(45)},
		{EntryID: uuid.NewString(), VoucherID: voucherID, AccountName: "SGST Payable", AccountClass: domain.Liability, Credit: decimal.NewFromInt(45)},
	}
	lineItems := []domain.InvoiceLineItem{
		{LineItemID: uuid.NewString(), InvoiceID: invoiceID, ProductID: suite.productID, Quantity: decimal.NewFromInt(2)},
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.businessID, invoiceID).Return(invoice, nil).Once()
	suite.mockVoucherRepo.On("FindVoucherByID", ctx, suite.businessID, voucherID).Return(original, nil).Once()
	suite.mockVoucherRepo.On("FindEntriesByVoucherID", ctx, voucherID).Return(originalEntries, nil).Once()
	suite.mockInvoiceRepo.On("FindLineItemsByInvoiceID", ctx, invoiceID).Return(lineItems, nil).Once()

	var posting domain.CancellationPosting
	suite.mockInvoiceRepo.On("CancelInvoice", ctx, mock.AnythingOfType("domain.CancellationPosting")).
		Run(func(args mock.Arguments) {
			posting = args.Get(1).(domain.CancellationPosting)
		}).
		Return(nil).Once()

	cancelled, err := suite.service.CancelInvoice(ctx, suite.businessID, invoiceID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceCancelled, cancelled.Status)

	suite.Equal("REV-INV-"+invoiceID, posting.Voucher.Reference)
	suite.Equal(domain.VoucherAdjustment, posting.Voucher.VoucherType)
	suite.Require().NotNil(posting.Voucher.OriginalVoucherID)
	suite.Equal(voucherID, *posting.Voucher.OriginalVoucherID)
	suite.NoError(accounting.ValidateVoucherBalance(posting.Entries))
	suite.True(posting.Entries[0].Credit.Equal(decimal.NewFromInt(590)), "receivable leg must flip to a credit")
	suite.True(posting.StockDeltas[suite.productID].Equal(decimal.NewFromInt(2)), "sold quantity comes back")
	suite.Require().Len(posting.Movements, 1)
	suite.Equal(domain.MovementReturn, posting.Movements[0].MovementType)
	suite.True(posting.CustomerBalanceDelta.Equal(decimal.NewFromInt(-590)))
}

func (suite *InvoiceServiceTestSuite) TestCancelInvoice_WithPaymentsRejected() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID:  invoiceID,
		BusinessID: suite.businessID,
		PaidAmount: decimal.NewFromInt(100),
		Status:     domain.InvoicePartiallyPaid,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.businessID, invoiceID).Return(invoice, nil).Once()

	_, err := suite.service.CancelInvoice(ctx, suite.businessID, invoiceID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "CancelInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCancelInvoice_AlreadyCancelled() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID:  invoiceID,
		BusinessID: suite.businessID,
		Status:     domain.InvoiceCancelled,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.businessID, invoiceID).Return(invoice, nil).Once()

	_, err := suite.service.CancelInvoice(ctx, suite.businessID, invoiceID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *InvoiceServiceTestSuite) TestMarkOverdueInvoices_Passthrough() {
	ctx := context.Background()
	asOf := time.Now().UTC()

	suite.mockInvoiceRepo.On("MarkOverdueInvoices", ctx, asOf).Return(int64(3), nil).Once()

	count, err := suite.service.MarkOverdueInvoices(ctx, asOf)

	suite.Require().NoError(err)
	suite.Equal(int64(3), count)
}

func (suite *InvoiceServiceTestSuite) TestListInvoicePayments_ReturnsRecordedPayments() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{InvoiceID: invoiceID, BusinessID: suite.businessID}
	payments := []domain.Payment{
		{PaymentID: uuid.NewString(), InvoiceID: invoiceID, Amount: decimal.NewFromInt(300), Method: domain.PaymentBankTransfer},
		{PaymentID: uuid.NewString(), InvoiceID: invoiceID, Amount: decimal.NewFromInt(290), Method: domain.PaymentCash},
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.businessID, invoiceID).Return(invoice, nil).Once()
	suite.mockPaymentRepo.On("ListPaymentsByInvoice", ctx, suite.businessID, invoiceID).Return(payments, nil).Once()

	got, err := suite.service.ListInvoicePayments(ctx, suite.businessID, invoiceID)

	suite.Require().NoError(err)
	suite.Len(got, 2)
	suite.True(got[0].Amount.Equal(decimal.NewFromInt(300)))
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestListInvoicePayments_UnknownInvoice() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.businessID, invoiceID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListInvoicePayments(ctx, suite.businessID, invoiceID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "ListPaymentsByInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestGetInvoiceByID_LoadsLineItems() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{InvoiceID: invoiceID, BusinessID: suite.businessID}
	lineItems := []domain.InvoiceLineItem{{LineItemID: uuid.NewString(), InvoiceID: invoiceID}}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.businessID, invoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("FindLineItemsByInvoiceID", ctx, invoiceID).Return(lineItems, nil).Once()

	got, err := suite.service.GetInvoiceByID(ctx, suite.businessID, invoiceID)

	suite.Require().NoError(err)
	suite.Len(got.LineItems, 1)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
