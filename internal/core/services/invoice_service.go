package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/openbooks/retail_ledger_app/internal/apperrors"
	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/openbooks/retail_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/openbooks/retail_ledger_app/internal/core/ports/services"
	"github.com/openbooks/retail_ledger_app/internal/dto"
	"github.com/openbooks/retail_ledger_app/internal/middleware"
	"github.com/openbooks/retail_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	ErrNoBillableAmount  = errors.New("invoice requires line items or a flat amount")
	ErrOverPayment       = errors.New("payment exceeds the invoice balance due")
	ErrInvoiceCancelled  = errors.New("invoice is cancelled")
	ErrInvoiceHasPayment = errors.New("invoice with recorded payments cannot be cancelled")
)

// Ledger account names used by generated vouchers.
const (
	accountReceivable = "Accounts Receivable"
	accountSales      = "Sales"
	accountCash       = "Cash"
	accountBank       = "Bank"
)

const defaultPaymentTermDays = 30

// invoiceService orchestrates invoice posting: tax computation per line,
// the balanced sales voucher, stock decrements, the customer balance and
// the optional immediate payment. Everything it computes is handed to the
// repository as one posting bundle, persisted in a single store
// transaction.
type invoiceService struct {
	invoiceRepo   portsrepo.InvoiceRepositoryWithTx
	businessRepo  portsrepo.BusinessRepositoryFacade
	customerRepo  portsrepo.CustomerRepositoryFacade
	inventoryRepo portsrepo.InventoryReader
	voucherRepo   portsrepo.VoucherReader
	paymentRepo   portsrepo.PaymentReader
	taxCalc       portssvc.TaxCalculatorSvc
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryWithTx,
	businessRepo portsrepo.BusinessRepositoryFacade,
	customerRepo portsrepo.CustomerRepositoryFacade,
	inventoryRepo portsrepo.InventoryReader,
	voucherRepo portsrepo.VoucherReader,
	paymentRepo portsrepo.PaymentReader,
	taxCalc portssvc.TaxCalculatorSvc,
) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo:   invoiceRepo,
		businessRepo:  businessRepo,
		customerRepo:  customerRepo,
		inventoryRepo: inventoryRepo,
		voucherRepo:   voucherRepo,
		paymentRepo:   paymentRepo,
		taxCalc:       taxCalc,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// GetInvoiceByID retrieves an invoice with its line items.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, businessID string, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, businessID, invoiceID)
	if err != nil {
		return nil, err
	}
	lineItems, err := s.invoiceRepo.FindLineItemsByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load line items for invoice %s: %w", invoiceID, err)
	}
	invoice.LineItems = lineItems
	return invoice, nil
}

// ListInvoicePayments retrieves the payments recorded against an invoice.
func (s *invoiceService) ListInvoicePayments(ctx context.Context, businessID string, invoiceID string) ([]domain.Payment, error) {
	if _, err := s.invoiceRepo.FindInvoiceByID(ctx, businessID, invoiceID); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListPaymentsByInvoice(ctx, businessID, invoiceID)
}

// ListInvoices retrieves a page of invoices for a business.
func (s *invoiceService) ListInvoices(ctx context.Context, businessID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	invoices, err := s.invoiceRepo.ListInvoicesByBusiness(ctx, businessID, limit, offset, params.Status)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListInvoicesResponse{
		Invoices: make([]dto.InvoiceResponse, len(invoices)),
		Limit:    limit,
		Offset:   offset,
	}
	for i := range invoices {
		resp.Invoices[i] = dto.ToInvoiceResponse(&invoices[i])
	}
	return resp, nil
}

// CreateInvoice validates the request, computes tax per line, builds the
// sales voucher and persists the whole posting bundle atomically. The
// invoice number is allocated inside the store transaction under a lock on
// the business row.
func (s *invoiceService) CreateInvoice(ctx context.Context, businessID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.LineItems) == 0 && req.FlatAmount == nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, ErrNoBillableAmount)
	}
	if req.Discount.IsNegative() {
		return nil, fmt.Errorf("%w: discount must not be negative", apperrors.ErrValidation)
	}
	if req.PaidAmount.IsNegative() {
		return nil, fmt.Errorf("%w: paid amount must not be negative", apperrors.ErrValidation)
	}

	business, err := s.businessRepo.FindBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindCustomerByID(ctx, businessID, req.CustomerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	issueDate := now
	if req.IssueDate != nil {
		issueDate = req.IssueDate.UTC()
	}
	dueDate := issueDate.AddDate(0, 0, paymentTermDays(business))
	if req.DueDate != nil {
		dueDate = req.DueDate.UTC()
	}

	taxMode := domain.TaxModeInter
	if customer.JurisdictionCode == business.JurisdictionCode {
		taxMode = domain.TaxModeIntra
	}

	invoiceID := uuid.NewString()
	voucherID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	subtotal := decimal.Zero
	taxTotal := decimal.Zero
	componentTotals := make(map[string]decimal.Decimal)
	lineItems := make([]domain.InvoiceLineItem, 0, len(req.LineItems))
	stockDeltas := make(map[string]decimal.Decimal)
	movements := make([]domain.StockMovement, 0, len(req.LineItems))
	products := make(map[string]*domain.InventoryItem)

	for i, lineReq := range req.LineItems {
		if !lineReq.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: quantity must be positive on line %d", apperrors.ErrValidation, i+1)
		}
		if lineReq.UnitRate.IsNegative() || lineReq.Discount.IsNegative() {
			return nil, fmt.Errorf("%w: amounts must not be negative on line %d", apperrors.ErrValidation, i+1)
		}
		lineBase := lineReq.Quantity.Mul(lineReq.UnitRate).Sub(lineReq.Discount).Round(2)
		if lineBase.IsNegative() {
			return nil, fmt.Errorf("%w: discount exceeds line amount on line %d", apperrors.ErrValidation, i+1)
		}

		var product *domain.InventoryItem
		if lineReq.ProductID != "" {
			product, err = s.lookupProduct(ctx, products, businessID, lineReq.ProductID)
			if err != nil {
				return nil, err
			}
		}

		category := lineReq.Category
		if category == "" && product != nil {
			category = product.Category
		}
		result, err := s.taxCalc.Calculate(domain.TaxContext{
			Amount:               lineBase,
			Direction:            domain.DirectionSale,
			BusinessJurisdiction: business.JurisdictionCode,
			CounterpartLocation:  customer.JurisdictionCode,
			ExplicitRate:         lineTaxRate(lineReq, product, business),
			ProductCategory:      category,
		})
		if err != nil {
			return nil, fmt.Errorf("tax calculation failed on line %d: %w", i+1, err)
		}

		lineItems = append(lineItems, domain.InvoiceLineItem{
			LineItemID:    uuid.NewString(),
			InvoiceID:     invoiceID,
			ProductID:     lineReq.ProductID,
			Description:   lineReq.Description,
			Quantity:      lineReq.Quantity,
			UnitRate:      lineReq.UnitRate,
			Discount:      lineReq.Discount,
			TaxRate:       result.TaxRate,
			TaxAmount:     result.TaxAmount,
			TaxComponents: result.Components,
			LineTotal:     lineBase.Add(result.TaxAmount),
		})
		subtotal = subtotal.Add(lineBase)
		taxTotal = taxTotal.Add(result.TaxAmount)
		for name, amount := range result.Components {
			componentTotals[name] = componentTotals[name].Add(amount)
		}

		if product != nil {
			stockDeltas[product.ProductID] = stockDeltas[product.ProductID].Sub(lineReq.Quantity)
			movements = append(movements, domain.StockMovement{
				MovementID:   uuid.NewString(),
				ProductID:    product.ProductID,
				BusinessID:   businessID,
				MovementType: domain.MovementSale,
				Quantity:     lineReq.Quantity.Neg(),
				VoucherID:    voucherID,
				Notes:        fmt.Sprintf("Sale on invoice %s", invoiceID),
				AuditFields:  audit,
			})
		}
	}

	if len(req.LineItems) == 0 {
		flat := *req.FlatAmount
		if !flat.IsPositive() {
			return nil, fmt.Errorf("%w: flat amount must be positive", apperrors.ErrValidation)
		}
		result, err := s.taxCalc.Calculate(domain.TaxContext{
			Amount:               flat,
			Direction:            domain.DirectionSale,
			BusinessJurisdiction: business.JurisdictionCode,
			CounterpartLocation:  customer.JurisdictionCode,
			ExplicitRate:         businessRate(business),
		})
		if err != nil {
			return nil, fmt.Errorf("tax calculation failed: %w", err)
		}
		subtotal = flat
		taxTotal = result.TaxAmount
		for name, amount := range result.Components {
			componentTotals[name] = componentTotals[name].Add(amount)
		}
	}

	total := subtotal.Add(taxTotal).Sub(req.Discount)
	if total.IsNegative() {
		return nil, fmt.Errorf("%w: discount exceeds invoice amount", apperrors.ErrValidation)
	}
	if req.PaidAmount.GreaterThan(total) {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, ErrOverPayment)
	}
	balanceDue := total.Sub(req.PaidAmount)

	invoice := domain.Invoice{
		InvoiceID:    invoiceID,
		BusinessID:   businessID,
		CustomerID:   req.CustomerID,
		InvoiceType:  req.InvoiceType,
		IssueDate:    issueDate,
		DueDate:      dueDate,
		Subtotal:     subtotal,
		TaxAmount:    taxTotal,
		Discount:     req.Discount,
		Total:        total,
		PaidAmount:   req.PaidAmount,
		BalanceDue:   balanceDue,
		Status:       domain.DeriveStatus(req.PaidAmount, total),
		CurrencyCode: business.CurrencyCode,
		TaxMode:      taxMode,
		VoucherID:    voucherID,
		AuditFields:  audit,
	}

	entries := buildSaleEntries(voucherID, invoice, componentTotals, req.PaymentMethod, audit)
	if err := accounting.ValidateVoucherBalance(entries); err != nil {
		logger.Error("Generated sales voucher does not balance",
			slog.String("invoice_id", invoiceID),
			slog.String("total", total.String()),
			slog.String("subtotal", subtotal.String()),
			slog.String("tax_amount", taxTotal.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnbalanced, err)
	}

	voucher := domain.Voucher{
		VoucherID:    voucherID,
		BusinessID:   businessID,
		Reference:    "INV-" + invoiceID,
		VoucherType:  domain.VoucherSale,
		VoucherDate:  issueDate,
		Description:  fmt.Sprintf("Sale to %s", customer.Name),
		CurrencyCode: business.CurrencyCode,
		Amount:       accounting.VoucherAmount(entries),
		Status:       domain.VoucherPosted,
		AuditFields:  audit,
	}

	var taxTxn *domain.TaxTransaction
	if taxTotal.IsPositive() {
		rule, err := s.taxCalc.RuleFor(business.JurisdictionCode)
		if err != nil {
			return nil, err
		}
		taxTxn = &domain.TaxTransaction{
			TaxTransactionID: uuid.NewString(),
			BusinessID:       businessID,
			VoucherID:        voucherID,
			CustomerID:       req.CustomerID,
			Regime:           rule.Regime,
			Direction:        domain.DirectionSale,
			TaxRate:          effectiveTaxRate(subtotal, taxTotal),
			TaxableAmount:    subtotal,
			TaxAmount:        taxTotal,
			Components:       componentTotals,
			AuditFields:      audit,
		}
	}

	var payment *domain.Payment
	if req.PaidAmount.IsPositive() {
		payment = &domain.Payment{
			PaymentID:   uuid.NewString(),
			BusinessID:  businessID,
			InvoiceID:   invoiceID,
			CustomerID:  req.CustomerID,
			Amount:      req.PaidAmount,
			Method:      paymentMethodOrCash(req.PaymentMethod),
			PaymentDate: issueDate,
			VoucherID:   voucherID,
			AuditFields: audit,
		}
	}

	posting := &domain.InvoicePosting{
		Invoice:              invoice,
		LineItems:            lineItems,
		Voucher:              voucher,
		Entries:              entries,
		TaxTransaction:       taxTxn,
		StockDeltas:          stockDeltas,
		Movements:            movements,
		CustomerBalanceDelta: balanceDue,
		Payment:              payment,
	}
	if err := s.invoiceRepo.SavePostedInvoice(ctx, posting); err != nil {
		logger.Error("Failed to post invoice", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, err
	}

	posting.Invoice.LineItems = lineItems
	logger.Info("Invoice posted",
		slog.String("invoice_id", invoiceID),
		slog.String("invoice_number", posting.Invoice.InvoiceNumber),
		slog.String("total", total.String()),
		slog.String("status", string(posting.Invoice.Status)))
	return &posting.Invoice, nil
}

// RecordPayment applies a payment to an existing invoice. Over-payment is
// rejected rather than modelled as customer credit.
func (s *invoiceService) RecordPayment(ctx context.Context, businessID string, invoiceID string, req dto.RecordPaymentRequest, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, businessID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == domain.InvoiceCancelled {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConflict, ErrInvoiceCancelled)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if req.Amount.GreaterThan(invoice.BalanceDue) {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, ErrOverPayment)
	}

	now := time.Now().UTC()
	paymentDate := now
	if req.PaymentDate != nil {
		paymentDate = req.PaymentDate.UTC()
	}
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	paymentID := uuid.NewString()
	voucherID := uuid.NewString()
	entries := []domain.LedgerEntry{
		{
			EntryID:      uuid.NewString(),
			VoucherID:    voucherID,
			AccountName:  paymentAccountName(req.Method),
			AccountClass: domain.Asset,
			Debit:        req.Amount,
			EntryDate:    paymentDate,
			Description:  fmt.Sprintf("Payment against %s", invoice.InvoiceNumber),
			AuditFields:  audit,
		},
		{
			EntryID:      uuid.NewString(),
			VoucherID:    voucherID,
			AccountName:  accountReceivable,
			AccountClass: domain.Receivable,
			Credit:       req.Amount,
			EntryDate:    paymentDate,
			Description:  fmt.Sprintf("Payment against %s", invoice.InvoiceNumber),
			AuditFields:  audit,
		},
	}

	newPaid := invoice.PaidAmount.Add(req.Amount)
	newBalance := invoice.Total.Sub(newPaid)
	posting := domain.PaymentPosting{
		InvoiceID:          invoiceID,
		PaidAmount:         newPaid,
		ExpectedPaidAmount: invoice.PaidAmount,
		BalanceDue:         newBalance,
		Status:             domain.DeriveStatus(newPaid, invoice.Total),
		Voucher: domain.Voucher{
			VoucherID:    voucherID,
			BusinessID:   businessID,
			Reference:    "PAY-" + paymentID,
			VoucherType:  domain.VoucherPayment,
			VoucherDate:  paymentDate,
			Description:  fmt.Sprintf("Payment against %s", invoice.InvoiceNumber),
			CurrencyCode: invoice.CurrencyCode,
			Amount:       req.Amount,
			Status:       domain.VoucherPosted,
			AuditFields:  audit,
		},
		Entries: entries,
		Payment: domain.Payment{
			PaymentID:   paymentID,
			BusinessID:  businessID,
			InvoiceID:   invoiceID,
			CustomerID:  invoice.CustomerID,
			Amount:      req.Amount,
			Method:      req.Method,
			PaymentDate: paymentDate,
			VoucherID:   voucherID,
			AuditFields: audit,
		},
		CustomerID:           invoice.CustomerID,
		CustomerBalanceDelta: req.Amount.Neg(),
		UpdatedBy:            userID,
		UpdatedAt:            now,
	}
	if err := s.invoiceRepo.ApplyPayment(ctx, posting); err != nil {
		logger.Error("Failed to record payment", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, err
	}

	invoice.PaidAmount = newPaid
	invoice.BalanceDue = newBalance
	invoice.Status = posting.Status
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = userID
	logger.Info("Payment recorded",
		slog.String("invoice_id", invoiceID),
		slog.String("amount", req.Amount.String()),
		slog.String("status", string(invoice.Status)))
	return invoice, nil
}

// CancelInvoice reverses a fully unpaid invoice: status goes to CANCELLED,
// a compensating voucher mirrors the sales voucher, sold stock comes back
// as RETURN movements and the customer balance is restored.
func (s *invoiceService) CancelInvoice(ctx context.Context, businessID string, invoiceID string, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, businessID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == domain.InvoiceCancelled {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConflict, ErrInvoiceCancelled)
	}
	if invoice.PaidAmount.IsPositive() {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConflict, ErrInvoiceHasPayment)
	}

	original, err := s.voucherRepo.FindVoucherByID(ctx, businessID, invoice.VoucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to load voucher for invoice %s: %w", invoiceID, err)
	}
	originalEntries, err := s.voucherRepo.FindEntriesByVoucherID(ctx, invoice.VoucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for voucher %s: %w", invoice.VoucherID, err)
	}
	lineItems, err := s.invoiceRepo.FindLineItemsByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load line items for invoice %s: %w", invoiceID, err)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	reversingID := uuid.NewString()
	stockDeltas := make(map[string]decimal.Decimal)
	movements := make([]domain.StockMovement, 0, len(lineItems))
	for _, li := range lineItems {
		if li.ProductID == "" {
			continue
		}
		stockDeltas[li.ProductID] = stockDeltas[li.ProductID].Add(li.Quantity)
		movements = append(movements, domain.StockMovement{
			MovementID:   uuid.NewString(),
			ProductID:    li.ProductID,
			BusinessID:   businessID,
			MovementType: domain.MovementReturn,
			Quantity:     li.Quantity,
			VoucherID:    reversingID,
			Notes:        fmt.Sprintf("Cancellation of invoice %s", invoice.InvoiceNumber),
			AuditFields:  audit,
		})
	}

	posting := domain.CancellationPosting{
		InvoiceID: invoiceID,
		Voucher: domain.Voucher{
			VoucherID:         reversingID,
			BusinessID:        businessID,
			Reference:         "REV-" + original.Reference,
			VoucherType:       domain.VoucherAdjustment,
			VoucherDate:       now,
			Description:       fmt.Sprintf("Cancellation of invoice %s", invoice.InvoiceNumber),
			CurrencyCode:      original.CurrencyCode,
			Amount:            original.Amount,
			Status:            domain.VoucherPosted,
			OriginalVoucherID: &original.VoucherID,
			AuditFields:       audit,
		},
		Entries:              ReverseEntries(originalEntries, reversingID, now, userID),
		StockDeltas:          stockDeltas,
		Movements:            movements,
		CustomerID:           invoice.CustomerID,
		CustomerBalanceDelta: invoice.BalanceDue.Neg(),
		UpdatedBy:            userID,
		UpdatedAt:            now,
	}
	if err := s.invoiceRepo.CancelInvoice(ctx, posting); err != nil {
		logger.Error("Failed to cancel invoice", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, err
	}

	invoice.Status = domain.InvoiceCancelled
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = userID
	logger.Info("Invoice cancelled", slog.String("invoice_id", invoiceID), slog.String("reversing_voucher_id", reversingID))
	return invoice, nil
}

// MarkOverdueInvoices flips unpaid invoices past their due date to OVERDUE.
func (s *invoiceService) MarkOverdueInvoices(ctx context.Context, asOf time.Time) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	count, err := s.invoiceRepo.MarkOverdueInvoices(ctx, asOf)
	if err != nil {
		logger.Error("Overdue sweep failed", slog.String("error", err.Error()))
		return 0, err
	}
	if count > 0 {
		logger.Info("Overdue sweep completed", slog.Int64("invoices_marked", count))
	}
	return count, nil
}

func (s *invoiceService) lookupProduct(ctx context.Context, cache map[string]*domain.InventoryItem, businessID, productID string) (*domain.InventoryItem, error) {
	if item, ok := cache[productID]; ok {
		return item, nil
	}
	item, err := s.inventoryRepo.FindItemByID(ctx, businessID, productID)
	if err != nil {
		return nil, err
	}
	cache[productID] = item
	return item, nil
}

func paymentTermDays(business *domain.Business) int {
	if business.PaymentTermDays > 0 {
		return business.PaymentTermDays
	}
	return defaultPaymentTermDays
}

// lineTaxRate resolves the rate override for one line: the request rate
// wins, then the product rate, then the business default. Nil means the
// jurisdiction standard rate applies.
func lineTaxRate(lineReq dto.CreateInvoiceLineItem, product *domain.InventoryItem, business *domain.Business) *decimal.Decimal {
	if lineReq.TaxRate != nil {
		return lineReq.TaxRate
	}
	if product != nil && product.TaxRate.IsPositive() {
		rate := product.TaxRate
		return &rate
	}
	return businessRate(business)
}

func businessRate(business *domain.Business) *decimal.Decimal {
	if business.DefaultTaxRate.IsPositive() {
		rate := business.DefaultTaxRate
		return &rate
	}
	return nil
}

func paymentMethodOrCash(method domain.PaymentMethod) domain.PaymentMethod {
	if method == "" {
		return domain.PaymentCash
	}
	return method
}

func paymentAccountName(method domain.PaymentMethod) string {
	if paymentMethodOrCash(method) == domain.PaymentCash {
		return accountCash
	}
	return accountBank
}

// effectiveTaxRate derives the blended percentage actually applied, for
// the tax transaction record. Rounded to 4 decimal places to match the
// stored precision; the component map, not this rate, is the authoritative
// breakdown for mixed exempt and taxed invoices.
func effectiveTaxRate(taxable, taxAmount decimal.Decimal) decimal.Decimal {
	if !taxable.IsPositive() {
		return decimal.Zero
	}
	return taxAmount.Div(taxable).Mul(decimal.NewFromInt(100)).Round(4)
}

// buildSaleEntries produces the ledger lines of a sales voucher: debit the
// receivable for the total, credit sales for the net of discounts, credit
// one liability line per tax component, plus the cash leg when an
// immediate payment was taken. Component names are sorted so the entry
// order is deterministic.
func buildSaleEntries(voucherID string, invoice domain.Invoice, components map[string]decimal.Decimal, method domain.PaymentMethod, audit domain.AuditFields) []domain.LedgerEntry {
	desc := fmt.Sprintf("Sale invoice %s", invoice.InvoiceID)
	entries := []domain.LedgerEntry{
		{
			EntryID:      uuid.NewString(),
			VoucherID:    voucherID,
			AccountName:  accountReceivable,
			AccountClass: domain.Receivable,
			Debit:        invoice.Total,
			EntryDate:    invoice.IssueDate,
			Description:  desc,
			AuditFields:  audit,
		},
		{
			EntryID:      uuid.NewString(),
			VoucherID:    voucherID,
			AccountName:  accountSales,
			AccountClass: domain.Income,
			Credit:       invoice.Subtotal.Sub(invoice.Discount),
			EntryDate:    invoice.IssueDate,
			Description:  desc,
			AuditFields:  audit,
		},
	}

	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		amount := components[name]
		if !amount.IsPositive() {
			continue
		}
		entries = append(entries, domain.LedgerEntry{
			EntryID:      uuid.NewString(),
			VoucherID:    voucherID,
			AccountName:  name + " Payable",
			AccountClass: domain.Liability,
			Credit:       amount,
			EntryDate:    invoice.IssueDate,
			Description:  desc,
			AuditFields:  audit,
		})
	}

	if invoice.PaidAmount.IsPositive() {
		entries = append(entries,
			domain.LedgerEntry{
				EntryID:      uuid.NewString(),
				VoucherID:    voucherID,
				AccountName:  paymentAccountName(method),
				AccountClass: domain.Asset,
				Debit:        invoice.PaidAmount,
				EntryDate:    invoice.IssueDate,
				Description:  desc,
				AuditFields:  audit,
			},
			domain.LedgerEntry{
				EntryID:      uuid.NewString(),
				VoucherID:    voucherID,
				AccountName:  accountReceivable,
				AccountClass: domain.Receivable,
				Credit:       invoice.PaidAmount,
				EntryDate:    invoice.IssueDate,
				Description:  desc,
				AuditFields:  audit,
			})
	}
	return entries
}
