package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openbooks/retail_ledger_app/internal/apperrors"
	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/openbooks/retail_ledger_app/internal/core/ports/repositories"
	"github.com/openbooks/retail_ledger_app/internal/models"
	"github.com/openbooks/retail_ledger_app/internal/utils/mapping"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data and the
// atomic posting bundles.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryWithTx {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InvoiceRepositoryWithTx = (*PgxInvoiceRepository)(nil)

// SavePostedInvoice persists the whole invoice posting bundle in one
// transaction: header and lines, voucher and entries, tax transaction,
// guarded stock decrements with their movements, customer balance delta and
// the optional immediate payment. The invoice number is allocated under a
// lock on the business row and written back into posting.Invoice.
func (r *PgxInvoiceRepository) SavePostedInvoice(ctx context.Context, posting *domain.InvoicePosting) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	invoiceNumber, err := allocateInvoiceNumberInTx(ctx, tx, posting.Invoice.BusinessID, posting.Invoice.IssueDate)
	if err != nil {
		return err
	}
	posting.Invoice.InvoiceNumber = invoiceNumber

	if err := insertVoucherInTx(ctx, tx, posting.Voucher, posting.Entries); err != nil {
		return err
	}
	if err := insertInvoiceInTx(ctx, tx, posting.Invoice, posting.LineItems); err != nil {
		return err
	}
	if posting.TaxTransaction != nil {
		if err := insertTaxTransactionInTx(ctx, tx, *posting.TaxTransaction); err != nil {
			return err
		}
	}

	// Products are processed in sorted order so concurrent postings touch
	// rows in the same sequence.
	productIDs := make([]string, 0, len(posting.StockDeltas))
	for productID := range posting.StockDeltas {
		productIDs = append(productIDs, productID)
	}
	sort.Strings(productIDs)
	for _, productID := range productIDs {
		delta := posting.StockDeltas[productID]
		if delta.IsZero() {
			continue
		}
		_, err := applyStockDeltaInTx(ctx, tx, posting.Invoice.BusinessID, productID, delta,
			posting.Invoice.LastUpdatedBy, posting.Invoice.LastUpdatedAt)
		if err != nil {
			if errors.Is(err, apperrors.ErrInsufficientStock) {
				return fmt.Errorf("%w: product %s", apperrors.ErrInsufficientStock, productID)
			}
			return err
		}
	}
	for _, movement := range posting.Movements {
		if err := insertMovementInTx(ctx, tx, movement); err != nil {
			return err
		}
	}

	issueDate := posting.Invoice.IssueDate
	if err := adjustCustomerBalanceInTx(ctx, tx, posting.Invoice.BusinessID, posting.Invoice.CustomerID,
		posting.CustomerBalanceDelta, &issueDate, posting.Invoice.LastUpdatedBy, posting.Invoice.LastUpdatedAt); err != nil {
		return err
	}

	if posting.Payment != nil {
		if err := insertPaymentInTx(ctx, tx, *posting.Payment); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// ApplyPayment persists a payment posting bundle in one transaction.
func (r *PgxInvoiceRepository) ApplyPayment(ctx context.Context, posting domain.PaymentPosting) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertVoucherInTx(ctx, tx, posting.Voucher, posting.Entries); err != nil {
		return err
	}

	// The paid_amount predicate is an optimistic guard: the caller computed
	// the new cumulative amounts from ExpectedPaidAmount, so a concurrent
	// payment that landed in between makes this match zero rows instead of
	// silently losing an update.
	query := `
		UPDATE invoices
		SET paid_amount = $1, balance_due = $2, status = $3,
		    last_updated_at = $4, last_updated_by = $5
		WHERE invoice_id = $6 AND status <> $7 AND paid_amount = $8;
	`
	tag, err := tx.Exec(ctx, query,
		posting.PaidAmount,
		posting.BalanceDue,
		string(posting.Status),
		posting.UpdatedAt,
		posting.UpdatedBy,
		posting.InvoiceID,
		string(domain.InvoiceCancelled),
		posting.ExpectedPaidAmount,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice "+posting.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	if err := insertPaymentInTx(ctx, tx, posting.Payment); err != nil {
		return err
	}
	if err := adjustCustomerBalanceInTx(ctx, tx, posting.Voucher.BusinessID, posting.CustomerID,
		posting.CustomerBalanceDelta, nil, posting.UpdatedBy, posting.UpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// CancelInvoice persists a cancellation bundle in one transaction: the
// compensating voucher, the status flip, stock returns and the customer
// balance restoration.
func (r *PgxInvoiceRepository) CancelInvoice(ctx context.Context, posting domain.CancellationPosting) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertVoucherInTx(ctx, tx, posting.Voucher, posting.Entries); err != nil {
		return err
	}
	if posting.Voucher.OriginalVoucherID != nil {
		if err := markVoucherReversedInTx(ctx, tx, *posting.Voucher.OriginalVoucherID,
			posting.Voucher.VoucherID, posting.UpdatedBy, posting.UpdatedAt); err != nil {
			return err
		}
	}

	// The zero paid_amount predicate re-checks the unpaid precondition under
	// the transaction; a payment recorded after the caller's check makes the
	// cancellation match zero rows.
	query := `
		UPDATE invoices
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE invoice_id = $4 AND status <> $1 AND paid_amount = 0;
	`
	tag, err := tx.Exec(ctx, query, string(domain.InvoiceCancelled), posting.UpdatedAt, posting.UpdatedBy, posting.InvoiceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to cancel invoice "+posting.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	productIDs := make([]string, 0, len(posting.StockDeltas))
	for productID := range posting.StockDeltas {
		productIDs = append(productIDs, productID)
	}
	sort.Strings(productIDs)
	for _, productID := range productIDs {
		if _, err := applyStockDeltaInTx(ctx, tx, posting.Voucher.BusinessID, productID,
			posting.StockDeltas[productID], posting.UpdatedBy, posting.UpdatedAt); err != nil {
			return err
		}
	}
	for _, movement := range posting.Movements {
		if err := insertMovementInTx(ctx, tx, movement); err != nil {
			return err
		}
	}

	if err := adjustCustomerBalanceInTx(ctx, tx, posting.Voucher.BusinessID, posting.CustomerID,
		posting.CustomerBalanceDelta, nil, posting.UpdatedBy, posting.UpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// MarkOverdueInvoices flips unpaid invoices past their due date to OVERDUE.
func (r *PgxInvoiceRepository) MarkOverdueInvoices(ctx context.Context, asOf time.Time) (int64, error) {
	query := `
		UPDATE invoices
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE due_date < $4 AND status IN ($5, $6);
	`
	tag, err := r.Pool.Exec(ctx, query,
		string(domain.InvoiceOverdue),
		time.Now().UTC(),
		"system",
		asOf,
		string(domain.InvoiceSent),
		string(domain.InvoicePartiallyPaid),
	)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to mark overdue invoices", err)
	}
	return tag.RowsAffected(), nil
}

const invoiceSelect = `
	SELECT invoice_id, business_id, customer_id, invoice_type, invoice_number,
	       issue_date, due_date, subtotal, tax_amount, discount, total,
	       paid_amount, balance_due, status, currency_code, tax_mode, voucher_id,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM invoices`

// FindInvoiceByID retrieves an invoice header.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, businessID string, invoiceID string) (*domain.Invoice, error) {
	query := invoiceSelect + ` WHERE business_id = $1 AND invoice_id = $2;`
	row := r.Pool.QueryRow(ctx, query, businessID, invoiceID)
	invoice, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice by ID "+invoiceID, err)
	}
	return invoice, nil
}

// FindLineItemsByInvoiceID retrieves all line items of an invoice.
func (r *PgxInvoiceRepository) FindLineItemsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceLineItem, error) {
	query := `
		SELECT line_item_id, invoice_id, product_id, description, quantity,
		       unit_rate, discount, tax_rate, tax_amount, tax_components, line_total
		FROM invoice_line_items
		WHERE invoice_id = $1
		ORDER BY line_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query line items for invoice "+invoiceID, err)
	}
	defer rows.Close()

	items := []models.InvoiceLineItem{}
	for rows.Next() {
		var m models.InvoiceLineItem
		var componentsJSON []byte
		err := rows.Scan(
			&m.LineItemID,
			&m.InvoiceID,
			&m.ProductID,
			&m.Description,
			&m.Quantity,
			&m.UnitRate,
			&m.Discount,
			&m.TaxRate,
			&m.TaxAmount,
			&componentsJSON,
			&m.LineTotal,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line item row for invoice "+invoiceID, err)
		}
		if len(componentsJSON) > 0 {
			if err := json.Unmarshal(componentsJSON, &m.TaxComponents); err != nil {
				return nil, apperrors.NewAppError(500, "failed to decode tax components for line "+m.LineItemID, err)
			}
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line item rows for invoice "+invoiceID, err)
	}
	return mapping.ToDomainInvoiceLineItems(items), nil
}

// ListInvoicesByBusiness retrieves a page of invoices, newest first.
func (r *PgxInvoiceRepository) ListInvoicesByBusiness(ctx context.Context, businessID string, limit int, offset int, status *domain.InvoiceStatus) ([]domain.Invoice, error) {
	args := []any{businessID}
	query := invoiceSelect + ` WHERE business_id = $1`
	if status != nil {
		args = append(args, string(*status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY issue_date DESC, invoice_number DESC`
	args = append(args, limit)
	query += ` LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoices for business "+businessID, err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		invoices = append(invoices, *invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}
	return invoices, nil
}

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.BusinessID,
		&m.CustomerID,
		&m.InvoiceType,
		&m.InvoiceNumber,
		&m.IssueDate,
		&m.DueDate,
		&m.Subtotal,
		&m.TaxAmount,
		&m.Discount,
		&m.Total,
		&m.PaidAmount,
		&m.BalanceDue,
		&m.Status,
		&m.CurrencyCode,
		&m.TaxMode,
		&m.VoucherID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	invoice := mapping.ToDomainInvoice(m)
	return &invoice, nil
}

// allocateInvoiceNumberInTx locks the business row and produces the next
// monotonic invoice number for the issue year. The lock serializes
// concurrent postings for the same business so numbers never collide.
func allocateInvoiceNumberInTx(ctx context.Context, tx pgx.Tx, businessID string, issueDate time.Time) (string, error) {
	var locked string
	err := tx.QueryRow(ctx, `SELECT business_id FROM businesses WHERE business_id = $1 FOR UPDATE;`, businessID).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.NewAppError(500, "failed to lock business "+businessID, err)
	}

	year := issueDate.Year()
	prefix := fmt.Sprintf("INV-%d-", year)
	// The suffix is zero-padded to four digits but grows past 9999, so a
	// plain lexicographic max would stick at "9999" forever. Longer
	// suffixes order first, lexicographic within equal length.
	var latest string
	err = tx.QueryRow(ctx, `
		SELECT invoice_number FROM invoices
		WHERE business_id = $1 AND invoice_number LIKE $2
		ORDER BY length(invoice_number) DESC, invoice_number DESC
		LIMIT 1;
	`, businessID, prefix+"%").Scan(&latest)

	switch {
	case err == nil:
		return nextInvoiceNumber(prefix, latest)
	case errors.Is(err, pgx.ErrNoRows):
		// First invoice of the year.
		return nextInvoiceNumber(prefix, "")
	default:
		return "", apperrors.NewAppError(500, "failed to read latest invoice number for business "+businessID, err)
	}
}

// nextInvoiceNumber increments the numeric suffix of the latest invoice
// number under a prefix. An empty latest starts the sequence at 1.
func nextInvoiceNumber(prefix, latest string) (string, error) {
	seq := 1
	if latest != "" {
		suffix, err := strconv.Atoi(strings.TrimPrefix(latest, prefix))
		if err != nil {
			return "", apperrors.NewAppError(500, "unparseable invoice number "+latest, err)
		}
		seq = suffix + 1
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

// insertInvoiceInTx writes the invoice header and its line items inside an
// open transaction.
func insertInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice, lineItems []domain.InvoiceLineItem) error {
	m := mapping.ToModelInvoice(invoice)
	invoiceQuery := `
		INSERT INTO invoices (
			invoice_id, business_id, customer_id, invoice_type, invoice_number,
			issue_date, due_date, subtotal, tax_amount, discount, total,
			paid_amount, balance_due, status, currency_code, tax_mode, voucher_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := tx.Exec(ctx, invoiceQuery,
		m.InvoiceID,
		m.BusinessID,
		m.CustomerID,
		m.InvoiceType,
		m.InvoiceNumber,
		m.IssueDate,
		m.DueDate,
		m.Subtotal,
		m.TaxAmount,
		m.Discount,
		m.Total,
		m.PaidAmount,
		m.BalanceDue,
		m.Status,
		m.CurrencyCode,
		m.TaxMode,
		m.VoucherID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert invoice "+m.InvoiceID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO invoice_line_items (
			line_item_id, invoice_id, product_id, description, quantity,
			unit_rate, discount, tax_rate, tax_amount, tax_components, line_total
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, li := range lineItems {
		ml := mapping.ToModelInvoiceLineItem(li)
		componentsJSON, err := json.Marshal(ml.TaxComponents)
		if err != nil {
			return apperrors.NewAppError(500, "failed to encode tax components for line "+ml.LineItemID, err)
		}
		batch.Queue(lineQuery,
			ml.LineItemID,
			ml.InvoiceID,
			ml.ProductID,
			ml.Description,
			ml.Quantity,
			ml.UnitRate,
			ml.Discount,
			ml.TaxRate,
			ml.TaxAmount,
			componentsJSON,
			ml.LineTotal,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert line items for invoice "+m.InvoiceID, err)
	}
	return nil
}

// insertTaxTransactionInTx writes the voucher's tax record inside an open
// transaction.
func insertTaxTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.TaxTransaction) error {
	m := mapping.ToModelTaxTransaction(txn)
	componentsJSON, err := json.Marshal(m.Components)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode components for tax transaction "+m.TaxTransactionID, err)
	}
	query := `
		INSERT INTO tax_transactions (
			tax_transaction_id, business_id, voucher_id, customer_id, regime,
			direction, tax_rate, taxable_amount, tax_amount, components,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, query,
		m.TaxTransactionID,
		m.BusinessID,
		m.VoucherID,
		m.CustomerID,
		m.Regime,
		m.Direction,
		m.TaxRate,
		m.TaxableAmount,
		m.TaxAmount,
		componentsJSON,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert tax transaction "+m.TaxTransactionID, err)
	}
	return nil
}
