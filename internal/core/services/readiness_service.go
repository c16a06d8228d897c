package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/openbooks/retail_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/openbooks/retail_ledger_app/internal/core/ports/services"
	"github.com/openbooks/retail_ledger_app/internal/middleware"
	"github.com/openbooks/retail_ledger_app/internal/utils/taxation"
	"github.com/shopspring/decimal"
)

// Points deducted per detected issue occurrence.
const (
	deductionMissingInvoice = 2
	deductionTaxMismatch    = 5
	deductionUnverifiedITC  = 3
	deductionLateFiling     = 10
	deductionUnregistered   = 15
)

// mismatchTolerance is the recomputation drift allowed before a recorded
// tax amount is flagged, in currency units.
var mismatchTolerance = decimal.NewFromInt(1)

// readinessService scores a business's filing readiness over a period. It
// only reads; scoring the same unchanged period twice yields an identical
// report.
type readinessService struct {
	readinessRepo portsrepo.ReadinessRepositoryFacade
	businessRepo  portsrepo.BusinessRepositoryFacade
	taxCalc       portssvc.TaxCalculatorSvc
}

// NewReadinessService creates a new ReadinessService.
func NewReadinessService(readinessRepo portsrepo.ReadinessRepositoryFacade, businessRepo portsrepo.BusinessRepositoryFacade, taxCalc portssvc.TaxCalculatorSvc) portssvc.ReadinessSvc {
	return &readinessService{
		readinessRepo: readinessRepo,
		businessRepo:  businessRepo,
		taxCalc:       taxCalc,
	}
}

var _ portssvc.ReadinessSvc = (*readinessService)(nil)

// Score runs every check over the period, accumulating deductions from a
// perfect 100. Issues keep a fixed category order so reports are
// reproducible.
func (s *readinessService) Score(ctx context.Context, businessID string, from, to time.Time) (*domain.ReadinessReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	business, err := s.businessRepo.FindBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	var issues []domain.ReadinessIssue

	orphanVouchers, err := s.readinessRepo.FindSaleVouchersWithoutInvoice(ctx, businessID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to check sales vouchers: %w", err)
	}
	for _, v := range orphanVouchers {
		issues = append(issues, domain.ReadinessIssue{
			IssueType:   domain.IssueMissingInvoice,
			Reference:   v.VoucherID,
			Description: fmt.Sprintf("sales voucher %s has no invoice record", v.Reference),
			Deduction:   deductionMissingInvoice,
		})
	}

	taxTxns, err := s.readinessRepo.FindTaxTransactionsByPeriod(ctx, businessID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load tax transactions: %w", err)
	}
	for _, txn := range taxTxns {
		expected := expectedTax(txn)
		if txn.TaxAmount.Sub(expected).Abs().GreaterThan(mismatchTolerance) {
			issues = append(issues, domain.ReadinessIssue{
				IssueType: domain.IssueTaxMismatch,
				Reference: txn.VoucherID,
				Description: fmt.Sprintf("recorded tax %s differs from %s expected at %s%% on %s",
					txn.TaxAmount.String(), expected.String(), txn.TaxRate.String(), txn.TaxableAmount.String()),
				Deduction: deductionTaxMismatch,
			})
		}
	}

	unverified, err := s.readinessRepo.FindPurchaseTaxWithoutRegistration(ctx, businessID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to check input tax credits: %w", err)
	}
	for _, txn := range unverified {
		issues = append(issues, domain.ReadinessIssue{
			IssueType:   domain.IssueUnverifiedInputCredit,
			Reference:   txn.VoucherID,
			Description: "purchase tax cannot be claimed as input credit: counterparty has no registration ID",
			Deduction:   deductionUnverifiedITC,
		})
	}

	overdue, err := s.readinessRepo.FindOverdueFilingPeriods(ctx, businessID, to)
	if err != nil {
		return nil, fmt.Errorf("failed to check filing periods: %w", err)
	}
	for _, period := range overdue {
		issues = append(issues, domain.ReadinessIssue{
			IssueType:   domain.IssueLateFiling,
			Reference:   period.FilingPeriodID,
			Description: fmt.Sprintf("filing for %s was due %s and is not filed", period.PeriodLabel, period.DueDate.Format("2006-01-02")),
			Deduction:   deductionLateFiling,
		})
	}

	if issue, flagged := s.checkRegistration(ctx, business); flagged {
		issues = append(issues, issue)
	}

	score := 100
	for _, issue := range issues {
		score -= issue.Deduction
	}
	if score < 0 {
		score = 0
	}

	report := &domain.ReadinessReport{
		BusinessID:      businessID,
		PeriodStart:     from,
		PeriodEnd:       to,
		Score:           score,
		Grade:           gradeFor(score),
		FilingReady:     score >= 80,
		Issues:          issues,
		Recommendations: buildRecommendations(issues),
		GeneratedAt:     time.Now().UTC(),
	}
	logger.Info("Readiness report generated",
		slog.String("business_id", businessID),
		slog.Int("score", score),
		slog.String("grade", report.Grade),
		slog.Int("issues", len(issues)))
	return report, nil
}

// expectedTax is what a tax transaction's recorded amount is checked
// against. The recorded component breakdown is authoritative when present;
// the stored rate is a blend across lines and only recovers the amount for
// single-rate invoices, so it is the fallback for component-less records.
func expectedTax(txn domain.TaxTransaction) decimal.Decimal {
	if len(txn.Components) == 0 {
		return taxation.TaxFromRate(txn.TaxableAmount, txn.TaxRate)
	}
	sum := decimal.Zero
	for _, amount := range txn.Components {
		sum = sum.Add(amount)
	}
	return sum
}

// checkRegistration flags a business whose turnover crossed its
// jurisdiction's registration threshold without a registration ID on file.
// Unknown jurisdictions are skipped rather than failing the whole run.
func (s *readinessService) checkRegistration(ctx context.Context, business *domain.Business) (domain.ReadinessIssue, bool) {
	if business.RegistrationID != "" {
		return domain.ReadinessIssue{}, false
	}
	rule, err := s.taxCalc.RuleFor(business.JurisdictionCode)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Skipping registration check for unknown jurisdiction",
			slog.String("business_id", business.BusinessID),
			slog.String("jurisdiction_code", business.JurisdictionCode))
		return domain.ReadinessIssue{}, false
	}
	if !rule.RegistrationThreshold.IsPositive() || business.AnnualTurnover.LessThan(rule.RegistrationThreshold) {
		return domain.ReadinessIssue{}, false
	}
	return domain.ReadinessIssue{
		IssueType: domain.IssueUnregistered,
		Reference: business.BusinessID,
		Description: fmt.Sprintf("turnover %s exceeds the %s registration threshold %s but no registration ID is on file",
			business.AnnualTurnover.String(), business.JurisdictionCode, rule.RegistrationThreshold.String()),
		Deduction: deductionUnregistered,
	}, true
}

func gradeFor(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// recommendationCatalog fixes the action, impact and priority per issue
// class, in report order.
var recommendationCatalog = []domain.ReadinessRecommendation{
	{
		IssueType: domain.IssueUnregistered,
		Priority:  domain.PriorityCritical,
		Action:    "Register for tax and record the registration ID on the business profile",
		Impact:    "Unregistered trading above the threshold risks penalties and blocks tax invoicing",
	},
	{
		IssueType: domain.IssueLateFiling,
		Priority:  domain.PriorityCritical,
		Action:    "File all overdue returns immediately",
		Impact:    "Late filings accrue interest and penalties until filed",
	},
	{
		IssueType: domain.IssueTaxMismatch,
		Priority:  domain.PriorityCritical,
		Action:    "Review flagged vouchers and repost corrected tax amounts via reversing vouchers",
		Impact:    "Mismatched tax amounts will not reconcile with the filed return",
	},
	{
		IssueType: domain.IssueMissingInvoice,
		Priority:  domain.PriorityHigh,
		Action:    "Raise invoices for the flagged sales vouchers",
		Impact:    "Sales without invoices cannot be reported and break the audit trail",
	},
	{
		IssueType: domain.IssueUnverifiedInputCredit,
		Priority:  domain.PriorityMedium,
		Action:    "Collect and record supplier registration IDs for the flagged purchases",
		Impact:    "Input tax credit on these purchases is unclaimable until verified",
	},
}

// buildRecommendations emits one recommendation per issue class present,
// in fixed priority order.
func buildRecommendations(issues []domain.ReadinessIssue) []domain.ReadinessRecommendation {
	present := make(map[domain.IssueType]bool, len(issues))
	for _, issue := range issues {
		present[issue.IssueType] = true
	}
	recs := make([]domain.ReadinessRecommendation, 0, len(present))
	for _, rec := range recommendationCatalog {
		if present[rec.IssueType] {
			recs = append(recs, rec)
		}
	}
	return recs
}
