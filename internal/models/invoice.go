package models

import (
	"encoding/json"
	"time"
)

// Invoice is an invoice-master row raised against a customer for a billing
// month. ServiceDetails carries the per-service breakdown as JSON.
type Invoice struct {
	ID             int64           `db:"id" json:"id"`
	CustomerID     int64           `db:"customer_id" json:"customer_id"`
	InvoiceNumber  string          `db:"invoice_number" json:"invoice_number"`
	InvoiceDate    time.Time       `db:"invoice_date" json:"invoice_date"`
	BillingMonth   int             `db:"billing_month" json:"billing_month"`
	BillingYear    int             `db:"billing_year" json:"billing_year"`
	ServiceDetails json.RawMessage `db:"service_details" json:"service_details,omitempty"`
	TaxableAmount  float64         `db:"taxable_amount" json:"taxable_amount"`
	CGST           float64         `db:"cgst" json:"cgst"`
	SGST           float64         `db:"sgst" json:"sgst"`
	IGST           float64         `db:"igst" json:"igst"`
	TotalAmount    float64         `db:"total_amount" json:"total_amount"`
	Status         string          `db:"status" json:"status"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// InvoiceRequest creates or updates an invoice.
type InvoiceRequest struct {
	CustomerID     int64           `json:"customer_id" validate:"required"`
	InvoiceNumber  string          `json:"invoice_number" validate:"required"`
	InvoiceDate    time.Time       `json:"invoice_date" validate:"required"`
	BillingMonth   int             `json:"billing_month" validate:"required,min=1,max=12"`
	BillingYear    int             `json:"billing_year" validate:"required,min=2000"`
	ServiceDetails json.RawMessage `json:"service_details"`
	TaxableAmount  float64         `json:"taxable_amount" validate:"min=0"`
	CGST           float64         `json:"cgst" validate:"min=0"`
	SGST           float64         `json:"sgst" validate:"min=0"`
	IGST           float64         `json:"igst" validate:"min=0"`
	TotalAmount    float64         `json:"total_amount" validate:"min=0"`
	Status         string          `json:"status"`
}

// Expense is an expense-tracker row, optionally linked to an invoice.
type Expense struct {
	ID            int64     `db:"id" json:"id"`
	InvoiceNumber string    `db:"invoice_number" json:"invoice_number,omitempty"`
	Category      string    `db:"category" json:"category"`
	Description   string    `db:"description" json:"description"`
	Amount        float64   `db:"amount" json:"amount"`
	ExpenseDate   time.Time `db:"expense_date" json:"expense_date"`
	PaymentMode   string    `db:"payment_mode" json:"payment_mode"`
	ReceiptPath   string    `db:"receipt_path" json:"receipt_path,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// ExpenseRequest creates or updates an expense row.
type ExpenseRequest struct {
	InvoiceNumber string    `json:"invoice_number"`
	Category      string    `json:"category" validate:"required"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount" validate:"required,gt=0"`
	ExpenseDate   time.Time `json:"expense_date" validate:"required"`
	PaymentMode   string    `json:"payment_mode"`
	ReceiptPath   string    `json:"receipt_path"`
}
