package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
)

// InvoiceRepository manages invoice master records and expense tracker rows.
type InvoiceRepository struct {
	db *sqlx.DB
}

// NewInvoiceRepository constructs an InvoiceRepository.
func NewInvoiceRepository(db *sqlx.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// ExistsByInvoiceNumber reports whether an invoice with the number exists.
func (r *InvoiceRepository) ExistsByInvoiceNumber(ctx context.Context, invoiceNumber string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM invoice_masters WHERE invoice_number = $1`
	if err := r.db.GetContext(ctx, &count, query, invoiceNumber); err != nil {
		return false, fmt.Errorf("check invoice number uniqueness: %w", err)
	}
	return count > 0, nil
}

// Create inserts an invoice master record and returns the generated id.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	now := time.Now().UTC()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now
	query := `INSERT INTO invoice_masters (customer_id, invoice_number, invoice_date, billing_month, billing_year,
			service_details, taxable_amount, cgst, sgst, igst, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		invoice.CustomerID, invoice.InvoiceNumber, invoice.InvoiceDate,
		invoice.BillingMonth, invoice.BillingYear, invoice.ServiceDetails,
		invoice.TaxableAmount, invoice.CGST, invoice.SGST, invoice.IGST,
		invoice.TotalAmount, invoice.Status, invoice.CreatedAt, invoice.UpdatedAt,
	).Scan(&invoice.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("create invoice: %w", err)
	}
	return nil
}

const invoiceColumns = `id, customer_id, invoice_number, invoice_date, billing_month, billing_year,
	service_details, taxable_amount, cgst, sgst, igst, total_amount, status, created_at, updated_at`

// List returns invoices, optionally filtered to one customer when
// customerID is non-zero, newest first.
func (r *InvoiceRepository) List(ctx context.Context, customerID int64) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if customerID > 0 {
		query := `SELECT ` + invoiceColumns + ` FROM invoice_masters WHERE customer_id = $1 ORDER BY invoice_date DESC`
		if err := r.db.SelectContext(ctx, &invoices, query, customerID); err != nil {
			return nil, fmt.Errorf("list invoices for customer: %w", err)
		}
		return invoices, nil
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoice_masters ORDER BY invoice_date DESC`
	if err := r.db.SelectContext(ctx, &invoices, query); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

// FindByID fetches an invoice by id.
func (r *InvoiceRepository) FindByID(ctx context.Context, id int64) (*models.Invoice, error) {
	var invoice models.Invoice
	query := `SELECT ` + invoiceColumns + ` FROM invoice_masters WHERE id = $1 LIMIT 1`
	if err := r.db.GetContext(ctx, &invoice, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find invoice by id: %w", err)
	}
	return &invoice, nil
}

// FindForPeriod fetches the invoice for a customer and billing period.
func (r *InvoiceRepository) FindForPeriod(ctx context.Context, customerID int64, month, year int) (*models.Invoice, error) {
	var invoice models.Invoice
	query := `SELECT ` + invoiceColumns + ` FROM invoice_masters
		WHERE customer_id = $1 AND billing_month = $2 AND billing_year = $3 LIMIT 1`
	if err := r.db.GetContext(ctx, &invoice, query, customerID, month, year); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find invoice for period: %w", err)
	}
	return &invoice, nil
}

// Update updates mutable invoice fields.
func (r *InvoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	invoice.UpdatedAt = time.Now().UTC()
	query := `UPDATE invoice_masters SET invoice_number = :invoice_number, invoice_date = :invoice_date,
		billing_month = :billing_month, billing_year = :billing_year, service_details = :service_details,
		taxable_amount = :taxable_amount, cgst = :cgst, sgst = :sgst, igst = :igst,
		total_amount = :total_amount, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, invoice); err != nil {
		if isUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// Delete removes an invoice row and reports the affected count.
func (r *InvoiceRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM invoice_masters WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete invoice: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete invoice affected rows: %w", err)
	}
	return affected, nil
}

// CreateExpense inserts an expense tracker row and returns the generated id.
func (r *InvoiceRepository) CreateExpense(ctx context.Context, expense *models.Expense) error {
	now := time.Now().UTC()
	expense.CreatedAt = now
	expense.UpdatedAt = now
	query := `INSERT INTO expense_trackers (invoice_number, category, description, amount, expense_date, payment_mode, receipt_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		expense.InvoiceNumber, expense.Category, expense.Description,
		expense.Amount, expense.ExpenseDate, expense.PaymentMode,
		expense.ReceiptPath, expense.CreatedAt, expense.UpdatedAt,
	).Scan(&expense.ID)
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

// ListExpenses returns all expense tracker rows, newest first.
func (r *InvoiceRepository) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	var expenses []models.Expense
	query := `SELECT id, invoice_number, category, description, amount, expense_date, payment_mode, receipt_path, created_at, updated_at
		FROM expense_trackers ORDER BY expense_date DESC`
	if err := r.db.SelectContext(ctx, &expenses, query); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// FindExpenseByID fetches an expense tracker row by id.
func (r *InvoiceRepository) FindExpenseByID(ctx context.Context, id int64) (*models.Expense, error) {
	var expense models.Expense
	query := `SELECT id, invoice_number, category, description, amount, expense_date, payment_mode, receipt_path, created_at, updated_at
		FROM expense_trackers WHERE id = $1 LIMIT 1`
	if err := r.db.GetContext(ctx, &expense, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find expense by id: %w", err)
	}
	return &expense, nil
}

// UpdateExpense updates an expense tracker row.
func (r *InvoiceRepository) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	expense.UpdatedAt = time.Now().UTC()
	query := `UPDATE expense_trackers SET invoice_number = :invoice_number, category = :category,
		description = :description, amount = :amount, expense_date = :expense_date,
		payment_mode = :payment_mode, receipt_path = :receipt_path, updated_at = :updated_at
		WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, expense); err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return nil
}

// DeleteExpense removes an expense row and reports the affected count.
func (r *InvoiceRepository) DeleteExpense(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expense_trackers WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete expense: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expense affected rows: %w", err)
	}
	return affected, nil
}
