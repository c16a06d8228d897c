package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	portssvc "github.com/openbooks/retail_ledger_app/internal/core/ports/services"
	"github.com/openbooks/retail_ledger_app/internal/core/services"
	"github.com/openbooks/retail_ledger_app/internal/taxrules"
)

type ReadinessServiceTestSuite struct {
	suite.Suite
	mockReadinessRepo *MockReadinessRepository
	mockBusinessRepo  *MockBusinessRepository
	service           portssvc.ReadinessSvc
	businessID        string
	business          *domain.Business
	from              time.Time
	to                time.Time
}

func (suite *ReadinessServiceTestSuite) SetupTest() {
	suite.mockReadinessRepo = new(MockReadinessRepository)
	suite.mockBusinessRepo = new(MockBusinessRepository)

	store, err := taxrules.NewDefaultStore()
	suite.Require().NoError(err)

	suite.service = services.NewReadinessService(suite.mockReadinessRepo, suite.mockBusinessRepo, services.NewTaxCalculator(store))

	suite.businessID = uuid.NewString()
	suite.business = &domain.Business{
		BusinessID:       suite.businessID,
		Name:             "Test Traders",
		JurisdictionCode: "IN",
		RegistrationID:   "GSTIN123",
		AnnualTurnover:   decimal.NewFromInt(1000000),
	}
	suite.from = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2026, 7, 31, 23, 59, 59, 0, time.UTC)
}

func (suite *ReadinessServiceTestSuite) expectEmptyChecks(ctx context.Context) {
	suite.mockReadinessRepo.On("FindSaleVouchersWithoutInvoice", ctx, suite.businessID, suite.from, suite.to).Return([]domain.Voucher{}, nil).Once()
	suite.mockReadinessRepo.On("FindTaxTransactionsByPeriod", ctx, suite.businessID, suite.from, suite.to).Return([]domain.TaxTransaction{}, nil).Once()
	suite.mockReadinessRepo.On("FindPurchaseTaxWithoutRegistration", ctx, suite.businessID, suite.from, suite.to).Return([]domain.TaxTransaction{}, nil).Once()
	suite.mockReadinessRepo.On("FindOverdueFilingPeriods", ctx, suite.businessID, suite.to).Return([]domain.TaxFilingPeriod{}, nil).Once()
}

func (suite *ReadinessServiceTestSuite) TestScore_CleanPeriod() {
	ctx := context.Background()
	suite.mockBusinessRepo.On("FindBusinessByID", ctx, suite.businessID).Return(suite.business, nil).Once()
	suite.expectEmptyChecks(ctx)

	report, err := suite.service.Score(ctx, suite.businessID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Equal(100, report.Score)
	suite.Equal("A", report.Grade)
	suite.True(report.FilingReady)
	suite.Empty(report.Issues)
	suite.Empty(report.Recommendations)
}

func (suite *ReadinessServiceTestSuite) TestScore_AccumulatesDeductions() {
	ctx := context.Background()
	suite.business.RegistrationID = ""
	suite.business.AnnualTurnover = decimal.NewFromInt(5000000) // over the 4,000,000 IN threshold
	suite.mockBusinessRepo.On("FindBusinessByID", ctx, suite.businessID).Return(suite.business, nil).Once()

	orphan := domain.Voucher{VoucherID: uuid.NewString(), Reference: "JRN-100", VoucherType: domain.VoucherSale, Status: domain.VoucherPosted}
	suite.mockReadinessRepo.On("FindSaleVouchersWithoutInvoice", ctx, suite.businessID, suite.from, suite.to).Return([]domain.Voucher{orphan}, nil).Once()

	// Recorded 200 against an expected 180 at 18% on 1000.
	mismatch := domain.TaxTransaction{
		TaxTransactionID: uuid.NewString(),
		VoucherID:        uuid.NewString(),
		TaxRate:          decimal.NewFromInt(18),
		TaxableAmount:    decimal.NewFromInt(1000),
		TaxAmount:        decimal.NewFromInt(200),
	}
	suite.mockReadinessRepo.On("FindTaxTransactionsByPeriod", ctx, suite.businessID, suite.from, suite.to).Return([]domain.TaxTransaction{mismatch}, nil).Once()

	unverified := domain.TaxTransaction{
		TaxTransactionID: uuid.NewString(),
		VoucherID:        uuid.NewString(),
		Direction:        domain.DirectionPurchase,
	}
	suite.mockReadinessRepo.On("FindPurchaseTaxWithoutRegistration", ctx, suite.businessID, suite.from, suite.to).Return([]domain.TaxTransaction{unverified}, nil).Once()

	late := domain.TaxFilingPeriod{
		FilingPeriodID: uuid.NewString(),
		BusinessID:     suite.businessID,
		PeriodLabel:    "2026-06",
		DueDate:        time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC),
	}
	suite.mockReadinessRepo.On("FindOverdueFilingPeriods", ctx, suite.businessID, suite.to).Return([]domain.TaxFilingPeriod{late}, nil).Once()

	report, err := suite.service.Score(ctx, suite.businessID, suite.from, suite.to)

	suite.Require().NoError(err)
	// 100 - 2 - 5 - 3 - 10 - 15
	suite.Equal(65, report.Score)
	suite.Equal("D", report.Grade)
	suite.False(report.FilingReady)
	suite.Len(report.Issues, 5)

	suite.Require().Len(report.Recommendations, 5)
	suite.Equal(domain.IssueUnregistered, report.Recommendations[0].IssueType)
	suite.Equal(domain.PriorityCritical, report.Recommendations[0].Priority)
	suite.Equal(domain.IssueLateFiling, report.Recommendations[1].IssueType)
	suite.Equal(domain.IssueTaxMismatch, report.Recommendations[2].IssueType)
	suite.Equal(domain.IssueMissingInvoice, report.Recommendations[3].IssueType)
	suite.Equal(domain.IssueUnverifiedInputCredit, report.Recommendations[4].IssueType)
	suite.Equal(domain.PriorityMedium, report.Recommendations[4].Priority)
}

func (suite *ReadinessServiceTestSuite) TestScore_MismatchWithinToleranceIgnored() {
	ctx := context.Background()
	suite.mockBusinessRepo.On("FindBusinessByID", ctx, suite.businessID).Return(suite.business, nil).Once()

	// Expected 180; recorded 180.50, within the one-unit tolerance.
	nearMatch := domain.TaxTransaction{
		TaxTransactionID: uuid.NewString(),
		VoucherID:        uuid.NewString(),
		TaxRate:          decimal.NewFromInt(18),
		TaxableAmount:    decimal.NewFromInt(1000),
		TaxAmount:        decimal.NewFromFloat(180.50),
	}
	suite.mockReadinessRepo.On("FindSaleVouchersWithoutInvoice", ctx, suite.businessID, suite.from, suite.to).Return([]domain.Voucher{}, nil).Once()
	suite.mockReadinessRepo.On("FindTaxTransactionsByPeriod", ctx, suite.businessID, suite.from, suite.to).Return([]domain.TaxTransaction{nearMatch}, nil).Once()
	suite.mockReadinessRepo.On("FindPurchaseTaxWithoutRegistration", ctx, suite.businessID, suite.from, suite.to).Return([]domain.TaxTransaction{}, nil).Once()
	suite.mockReadinessRepo.On("FindOverdueFilingPeriods", ctx, suite.businessID, suite.to).Return([]domain.TaxFilingPeriod{}, nil).Once()

	report, err := suite.service.Score(ctx, suite.businessID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Equal(100, report.Score)
	suite.Empty(report.Issues)
}

func (suite *ReadinessServiceTestSuite) TestScore_BlendedRateInvoiceNotFlagged() {
	ctx := context.Background()
	suite.mockBusinessRepo.On("FindBusinessByID", ctx, suite.businessID).Return(suite.business, nil).Once()

	// A mixed exempt and taxed invoice: 19991.67 exempt plus 10008.33 at
	// 18%. The stored rate is a blend across lines and cannot recover the
	// tax amount from the total taxable base; the recorded component
	// breakdown is what the check compares against.
	blended := domain.TaxTransaction{
		TaxTransactionID: uuid.NewString(),
		VoucherID:        uuid.NewString(),
		TaxRate:          decimal.NewFromFloat(6.005),
		TaxableAmount:    decimal.NewFromInt(30000),
		TaxAmount:        decimal.NewFromFloat(1801.50),
		Components: map[string]decimal.Decimal{
			"CGST": decimal.NewFromFloat(900.75),
			"SGST": decimal.NewFromFloat(900.75),
		},
	}
	suite.mockReadinessRepo.On("FindSaleVouchersWithoutInvoice", ctx, suite.businessID, suite.from, suite.to).Return([]domain.Voucher{}, nil).Once()
	suite.mockReadinessRepo.On("FindTaxTransactionsByPeriod", ctx, suite.businessID, suite.from, suite.to).Return([]domain.TaxTransaction{blended}, nil).Once()
	suite.mockReadinessRepo.On("FindPurchaseTaxWithoutRegistration", ctx, suite.businessID, suite.from, suite.to).Return([]domain.TaxTransaction{}, nil).Once()
	suite.mockReadinessRepo.On("FindOverdueFilingPeriods", ctx, suite.businessID, suite.to).Return([]domain.TaxFilingPeriod{}, nil).Once()

	report, err := suite.service.Score(ctx, suite.businessID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Equal(100, report.Score)
	suite.Empty(report.Issues)
}

func (suite *ReadinessServiceTestSuite) TestScore_ComponentSumMismatchFlagged() {
	ctx := context.Background()
	suite.mockBusinessRepo.On("FindBusinessByID", ctx, suite.businessID).Return(suite.business, nil).Once()

	// Components sum to 200 but 180 was recorded as the tax amount.
	broken := domain.TaxTransaction{
		TaxTransactionID: uuid.NewString(),
		VoucherID:        uuid.NewString(),
		TaxRate:          decimal.NewFromInt(18),
		TaxableAmount:    decimal.NewFromInt(1000),
		TaxAmount:        decimal.NewFromInt(180),
		Components: map[string]decimal.Decimal{
			"CGST": decimal.NewFromInt(100),
			"SGST": decimal.NewFromInt(100),
		},
	}
	suite.mockReadinessRepo.On("FindSaleVouchersWithoutInvoice", ctx, suite.businessID, suite.from, suite.to).Return([]domain.Voucher{}, nil).Once()
	suite.mockReadinessRepo.On("FindTaxTransactionsByPeriod", ctx, suite.businessID, suite.from, suite.to).Return([]domain.TaxTransaction{broken}, nil).Once()
	suite.mockReadinessRepo.On("FindPurchaseTaxWithoutRegistration", ctx, suite.businessID, suite.from, suite.to).Return([]domain.TaxTransaction{}, nil).Once()
	suite.mockReadinessRepo.On("FindOverdueFilingPeriods", ctx, suite.businessID, suite.to).Return([]domain.TaxFilingPeriod{}, nil).Once()

	report, err := suite.service.Score(ctx, suite.businessID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Equal(95, report.Score)
	suite.Require().Len(report.Issues, 1)
	suite.Equal(domain.IssueTaxMismatch, report.Issues[0].IssueType)
}

func (suite *ReadinessServiceTestSuite) TestScore_FloorsAtZero() {
	ctx := context.Background()
	suite.mockBusinessRepo.On("FindBusinessByID", ctx, suite.businessID).Return(suite.business, nil).Once()

	periods := make([]domain.TaxFilingPeriod, 11)
	for i := range periods {
		periods[i] = domain.TaxFilingPeriod{
			FilingPeriodID: uuid.NewString(),
			PeriodLabel:    "2025-" + uuid.NewString()[:2],
			DueDate:        suite.from.AddDate(0, -i, 0),
		}
	}
	suite.mockReadinessRepo.On("FindSaleVouchersWithoutInvoice", ctx, suite.businessID, suite.from, suite.to).Return([]domain.Voucher{}, nil).Once()
	suite.mockReadinessRepo.On("FindTaxTransactionsByPeriod", ctx, suite.businessID, suite.from, suite.to).Return([]domain.TaxTransaction{}, nil).Once()
	suite.mockReadinessRepo.On("FindPurchaseTaxWithoutRegistration", ctx, suite.businessID, suite.from, suite.to).Return([]domain.TaxTransaction{}, nil).Once()
	suite.mockReadinessRepo.On("FindOverdueFilingPeriods", ctx, suite.businessID, suite.to).Return(periods, nil).Once()

	report, err := suite.service.Score(ctx, suite.businessID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Equal(0, report.Score)
	suite.Equal("F", report.Grade)
	suite.False(report.FilingReady)
}

func (suite *ReadinessServiceTestSuite) TestScore_RegisteredBusinessNotFlagged() {
	ctx := context.Background()
	suite.business.AnnualTurnover = decimal.NewFromInt(5000000)
	suite.mockBusinessRepo.On("FindBusinessByID", ctx, suite.businessID).Return(suite.business, nil).Once()
	suite.expectEmptyChecks(ctx)

	report, err := suite.service.Score(ctx, suite.businessID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Equal(100, report.Score)
}

func (suite *ReadinessServiceTestSuite) TestScore_UnknownJurisdictionSkipsRegistrationCheck() {
	ctx := context.Background()
	suite.business.JurisdictionCode = "ZZ"
	suite.business.RegistrationID = ""
	suite.business.AnnualTurnover = decimal.NewFromInt(99000000)
	suite.mockBusinessRepo.On("FindBusinessByID", ctx, suite.businessID).Return(suite.business, nil).Once()
	suite.expectEmptyChecks(ctx)

	report, err := suite.service.Score(ctx, suite.businessID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Equal(100, report.Score)
	suite.Empty(report.Issues)
}

func (suite *ReadinessServiceTestSuite) TestScore_SamePeriodScoresIdentically() {
	ctx := context.Background()
	suite.mockBusinessRepo.On("FindBusinessByID", ctx, suite.businessID).Return(suite.business, nil).Twice()

	orphan := domain.Voucher{VoucherID: uuid.NewString(), Reference: "JRN-200", VoucherType: domain.VoucherSale, Status: domain.VoucherPosted}
	suite.mockReadinessRepo.On("FindSaleVouchersWithoutInvoice", ctx, suite.businessID, suite.from, suite.to).Return([]domain.Voucher{orphan}, nil).Twice()
	suite.mockReadinessRepo.On("FindTaxTransactionsByPeriod", ctx, suite.businessID, suite.from, suite.to).Return([]domain.TaxTransaction{}, nil).Twice()
	suite.mockReadinessRepo.On("FindPurchaseTaxWithoutRegistration", ctx, suite.businessID, suite.from, suite.to).Return([]domain.TaxTransaction{}, nil).Twice()
	suite.mockReadinessRepo.On("FindOverdueFilingPeriods", ctx, suite.businessID, suite.to).Return([]domain.TaxFilingPeriod{}, nil).Twice()

	first, err := suite.service.Score(ctx, suite.businessID, suite.from, suite.to)
	suite.Require().NoError(err)
	second, err := suite.service.Score(ctx, suite.businessID, suite.from, suite.to)
	suite.Require().NoError(err)

	suite.Equal(first.Score, second.Score)
	suite.Equal(first.Grade, second.Grade)
	suite.Equal(first.Issues, second.Issues)
	suite.Equal(first.Recommendations, second.Recommendations)
}

func TestReadinessServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReadinessServiceTestSuite))
}
