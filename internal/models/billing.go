package models

import "time"

// BillingContactType distinguishes the per-customer billing contact rosters.
// The CRUD shape is identical; each type has its own table and route.
type BillingContactType string

const (
	BillingSPOC       BillingContactType = "billing_spoc"
	BillingEscalation BillingContactType = "billing_escalation"
	EscalationManager BillingContactType = "escalation_manager"
	AuthorizedContact BillingContactType = "authorized_detail"
)

// Table returns the backing table name for the contact type.
func (t BillingContactType) Table() string {
	switch t {
	case BillingSPOC:
		return "billing_spocs"
	case BillingEscalation:
		return "billing_escalations"
	case EscalationManager:
		return "escalation_managers"
	case AuthorizedContact:
		return "authorized_details"
	}
	return ""
}

// Label returns the human-readable resource name used in messages.
func (t BillingContactType) Label() string {
	switch t {
	case BillingSPOC:
		return "Billing SPOC"
	case BillingEscalation:
		return "Billing escalation"
	case EscalationManager:
		return "Escalation manager"
	case AuthorizedContact:
		return "Authorized detail"
	}
	return ""
}

// BillingContact is a named contact attached to a customer for billing or
// escalation purposes.
type BillingContact struct {
	ID          int64     `db:"id" json:"id"`
	CustomerID  int64     `db:"customer_id" json:"customer_id"`
	Name        string    `db:"name" json:"name"`
	Designation string    `db:"designation" json:"designation"`
	Phone       string    `db:"phone" json:"phone"`
	Email       string    `db:"email" json:"email"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// BillingContactRequest creates or updates a billing contact.
type BillingContactRequest struct {
	CustomerID  int64  `json:"customer_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Designation string `json:"designation"`
	Phone       string `json:"phone"`
	Email       string `json:"email" validate:"required,email"`
}
