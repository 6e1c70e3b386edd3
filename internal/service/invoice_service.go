package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/export"
)

type invoiceRepository interface {
	ExistsByInvoiceNumber(ctx context.Context, invoiceNumber string) (bool, error)
	Create(ctx context.Context, invoice *models.Invoice) error
	List(ctx context.Context, customerID int64) ([]models.Invoice, error)
	FindByID(ctx context.Context, id int64) (*models.Invoice, error)
	FindForPeriod(ctx context.Context, customerID int64, month, year int) (*models.Invoice, error)
	Update(ctx context.Context, invoice *models.Invoice) error
	Delete(ctx context.Context, id int64) (int64, error)
	CreateExpense(ctx context.Context, expense *models.Expense) error
	ListExpenses(ctx context.Context) ([]models.Expense, error)
	FindExpenseByID(ctx context.Context, id int64) (*models.Expense, error)
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, id int64) (int64, error)
}

type invoiceCustomerLookup interface {
	FindByID(ctx context.Context, id int64) (*models.Customer, error)
}

// InvoiceService manages invoice master records, the expense tracker, and
// their CSV/PDF downloads.
type InvoiceService struct {
	repo      invoiceRepository
	customers invoiceCustomerLookup
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewInvoiceService constructs an InvoiceService instance.
func NewInvoiceService(repo invoiceRepository, customers invoiceCustomerLookup, validate *validator.Validate, logger *zap.Logger) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &InvoiceService{
		repo:      repo,
		customers: customers,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validate,
		logger:    logger,
	}
}

// Create raises an invoice against a customer. Invoice numbers are unique.
func (s *InvoiceService) Create(ctx context.Context, req models.InvoiceRequest) (*models.Invoice, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid invoice payload")
	}

	if _, err := s.customers.FindByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "customer not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch customer")
	}

	exists, err := s.repo.ExistsByInvoiceNumber(ctx, req.InvoiceNumber)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to check invoice number")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "invoice number already in use")
	}

	invoice := &models.Invoice{
		CustomerID:     req.CustomerID,
		InvoiceNumber:  req.InvoiceNumber,
		InvoiceDate:    req.InvoiceDate,
		BillingMonth:   req.BillingMonth,
		BillingYear:    req.BillingYear,
		ServiceDetails: req.ServiceDetails,
		TaxableAmount:  req.TaxableAmount,
		CGST:           req.CGST,
		SGST:           req.SGST,
		IGST:           req.IGST,
		TotalAmount:    req.TotalAmount,
		Status:         req.Status,
	}
	if err := s.repo.Create(ctx, invoice); err != nil {
		if isUniqueViolationErr(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "invoice number already in use")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to create invoice")
	}
	return invoice, nil
}

// List returns invoices, optionally for one customer.
func (s *InvoiceService) List(ctx context.Context, customerID int64) ([]models.Invoice, error) {
	invoices, err := s.repo.List(ctx, customerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list invoices")
	}
	return invoices, nil
}

// Get fetches an invoice by id.
func (s *InvoiceService) Get(ctx context.Context, id int64) (*models.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "invoice not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch invoice")
	}
	return invoice, nil
}

// Update modifies an invoice.
func (s *InvoiceService) Update(ctx context.Context, id int64, req models.InvoiceRequest) (*models.Invoice, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid invoice payload")
	}

	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "invoice not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch invoice")
	}

	invoice.InvoiceNumber = req.InvoiceNumber
	invoice.InvoiceDate = req.InvoiceDate
	invoice.BillingMonth = req.BillingMonth
	invoice.BillingYear = req.BillingYear
	invoice.ServiceDetails = req.ServiceDetails
	invoice.TaxableAmount = req.TaxableAmount
	invoice.CGST = req.CGST
	invoice.SGST = req.SGST
	invoice.IGST = req.IGST
	invoice.TotalAmount = req.TotalAmount
	invoice.Status = req.Status
	invoice.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, invoice); err != nil {
		if isUniqueViolationErr(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "invoice number already in use")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to update invoice")
	}
	return invoice, nil
}

// Delete removes an invoice. Deleting an unknown id is not an error.
func (s *InvoiceService) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to delete invoice")
	}
	if affected == 0 {
		s.logger.Debug("delete invoice matched no rows", zap.Int64("invoice_id", id))
	}
	return nil
}

// ExportPDF renders an invoice as a PDF download.
func (s *InvoiceService) ExportPDF(ctx context.Context, id int64) ([]byte, string, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	customer, err := s.customers.FindByID(ctx, invoice.CustomerID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, "", appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch customer")
	}

	companyName := ""
	gstNumber := ""
	if customer != nil {
		companyName = customer.CompanyName
		gstNumber = customer.GSTNumber
	}

	data := export.Dataset{
		Headers: []string{"Field", "Value"},
		Rows: []map[string]string{
			{"Field": "Invoice Number", "Value": invoice.InvoiceNumber},
			{"Field": "Invoice Date", "Value": invoice.InvoiceDate.Format("02 Jan 2006")},
			{"Field": "Customer", "Value": companyName},
			{"Field": "GST Number", "Value": gstNumber},
			{"Field": "Billing Period", "Value": fmt.Sprintf("%02d/%d", invoice.BillingMonth, invoice.BillingYear)},
			{"Field": "Taxable Amount", "Value": fmt.Sprintf("%.2f", invoice.TaxableAmount)},
			{"Field": "CGST", "Value": fmt.Sprintf("%.2f", invoice.CGST)},
			{"Field": "SGST", "Value": fmt.Sprintf("%.2f", invoice.SGST)},
			{"Field": "IGST", "Value": fmt.Sprintf("%.2f", invoice.IGST)},
			{"Field": "Total Amount", "Value": fmt.Sprintf("%.2f", invoice.TotalAmount)},
		},
	}

	payload, err := s.pdf.Render(data, "Invoice "+invoice.InvoiceNumber)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render invoice PDF")
	}
	return payload, fmt.Sprintf("invoice-%s.pdf", invoice.InvoiceNumber), nil
}

// ExportCSV renders the invoice register as a CSV download, optionally
// filtered by customer.
func (s *InvoiceService) ExportCSV(ctx context.Context, customerID int64) ([]byte, string, error) {
	invoices, err := s.List(ctx, customerID)
	if err != nil {
		return nil, "", err
	}

	data := export.Dataset{
		Headers: []string{"Invoice Number", "Invoice Date", "Billing Period", "Taxable Amount", "Total Amount"},
	}
	for _, invoice := range invoices {
		data.Rows = append(data.Rows, map[string]string{
			"Invoice Number": invoice.InvoiceNumber,
			"Invoice Date":   invoice.InvoiceDate.Format("2006-01-02"),
			"Billing Period": fmt.Sprintf("%02d/%d", invoice.BillingMonth, invoice.BillingYear),
			"Taxable Amount": fmt.Sprintf("%.2f", invoice.TaxableAmount),
			"Total Amount":   fmt.Sprintf("%.2f", invoice.TotalAmount),
		})
	}

	payload, err := s.csv.Render(data)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render invoice CSV")
	}
	return payload, "invoice-register.csv", nil
}

// CreateExpense records an expense tracker row.
func (s *InvoiceService) CreateExpense(ctx context.Context, req models.ExpenseRequest) (*models.Expense, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid expense payload")
	}

	expense := &models.Expense{
		InvoiceNumber: req.InvoiceNumber,
		Category:      req.Category,
		Description:   req.Description,
		Amount:        req.Amount,
		ExpenseDate:   req.ExpenseDate,
		PaymentMode:   req.PaymentMode,
		ReceiptPath:   req.ReceiptPath,
	}
	if err := s.repo.CreateExpense(ctx, expense); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to create expense")
	}
	return expense, nil
}

// ListExpenses returns the expense tracker, newest first.
func (s *InvoiceService) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	expenses, err := s.repo.ListExpenses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list expenses")
	}
	return expenses, nil
}

// UpdateExpense modifies an expense tracker row.
func (s *InvoiceService) UpdateExpense(ctx context.Context, id int64, req models.ExpenseRequest) (*models.Expense, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid expense payload")
	}

	expense, err := s.repo.FindExpenseByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "expense not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch expense")
	}

	expense.InvoiceNumber = req.InvoiceNumber
	expense.Category = req.Category
	expense.Description = req.Description
	expense.Amount = req.Amount
	expense.ExpenseDate = req.ExpenseDate
	expense.PaymentMode = req.PaymentMode
	expense.ReceiptPath = req.ReceiptPath
	expense.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateExpense(ctx, expense); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to update expense")
	}
	return expense, nil
}

// DeleteExpense removes an expense tracker row.
func (s *InvoiceService) DeleteExpense(ctx context.Context, id int64) error {
	affected, err := s.repo.DeleteExpense(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to delete expense")
	}
	if affected == 0 {
		s.logger.Debug("delete expense matched no rows", zap.Int64("expense_id", id))
	}
	return nil
}

// ExportExpensesCSV renders the expense tracker as a CSV download.
func (s *InvoiceService) ExportExpensesCSV(ctx context.Context) ([]byte, string, error) {
	expenses, err := s.ListExpenses(ctx)
	if err != nil {
		return nil, "", err
	}

	data := export.Dataset{
		Headers: []string{"Invoice Number", "Category", "Description", "Amount", "Expense Date", "Payment Mode"},
	}
	for _, expense := range expenses {
		data.Rows = append(data.Rows, map[string]string{
			"Invoice Number": expense.InvoiceNumber,
			"Category":       expense.Category,
			"Description":    expense.Description,
			"Amount":         fmt.Sprintf("%.2f", expense.Amount),
			"Expense Date":   expense.ExpenseDate.Format("2006-01-02"),
			"Payment Mode":   expense.PaymentMode,
		})
	}

	payload, err := s.csv.Render(data)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render expense CSV")
	}
	return payload, fmt.Sprintf("expenses-%s.csv", time.Now().UTC().Format("20060102")), nil
}
