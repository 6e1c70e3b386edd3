package models

import "time"

// Customer statuses mirror admin statuses: 0 inactive draft, 1 active,
// 2 suspended.
const (
	CustomerStatusInactive  = 0
	CustomerStatusActive    = 1
	CustomerStatusSuspended = 2
)

// Customer represents a BGV client company.
type Customer struct {
	ID              int64      `db:"id" json:"id"`
	CompanyName     string     `db:"company_name" json:"company_name"`
	ClientCode      string     `db:"client_code" json:"client_code"`
	Address         string     `db:"address" json:"address"`
	State           string     `db:"state" json:"state"`
	StateCode       string     `db:"state_code" json:"state_code"`
	GSTNumber       string     `db:"gst_number" json:"gst_number"`
	ContactPerson   string     `db:"contact_person" json:"contact_person"`
	Mobile          string     `db:"mobile" json:"mobile"`
	TATDays         int        `db:"tat_days" json:"tat_days"`
	AgreementDate   *time.Time `db:"agreement_date" json:"agreement_date,omitempty"`
	HeadBranchEmail string     `db:"head_branch_email" json:"head_branch_email"`
	Status          int        `db:"status" json:"status"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// CreateCustomerRequest is the payload for onboarding a customer.
type CreateCustomerRequest struct {
	CompanyName     string     `json:"company_name" validate:"required"`
	ClientCode      string     `json:"client_code" validate:"required"`
	Address         string     `json:"address"`
	State           string     `json:"state"`
	StateCode       string     `json:"state_code"`
	GSTNumber       string     `json:"gst_number"`
	ContactPerson   string     `json:"contact_person"`
	Mobile          string     `json:"mobile"`
	TATDays         int        `json:"tat_days"`
	AgreementDate   *time.Time `json:"agreement_date"`
	HeadBranchEmail string     `json:"head_branch_email" validate:"required,email"`
}

// UpdateCustomerRequest is the payload for updating a customer.
type UpdateCustomerRequest struct {
	CompanyName     string     `json:"company_name" validate:"required"`
	Address         string     `json:"address"`
	State           string     `json:"state"`
	StateCode       string     `json:"state_code"`
	GSTNumber       string     `json:"gst_number"`
	ContactPerson   string     `json:"contact_person"`
	Mobile          string     `json:"mobile"`
	TATDays         int        `json:"tat_days"`
	AgreementDate   *time.Time `json:"agreement_date"`
	HeadBranchEmail string     `json:"head_branch_email" validate:"required,email"`
	Status          int        `json:"status" validate:"min=0,max=2"`
}

// Branch is a customer office. One head branch per customer; branch emails
// are unique portal-wide.
type Branch struct {
	ID           int64     `db:"id" json:"id"`
	CustomerID   int64     `db:"customer_id" json:"customer_id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	IsHeadBranch bool      `db:"is_head_branch" json:"is_head_branch"`
	Status       int       `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// CreateBranchRequest is the payload for adding a branch to a customer.
type CreateBranchRequest struct {
	CustomerID   int64  `json:"customer_id" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	IsHeadBranch bool   `json:"is_head_branch"`
}

// UpdateBranchRequest is the payload for updating a branch.
type UpdateBranchRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	IsHeadBranch bool   `json:"is_head_branch"`
	Status       int    `json:"status" validate:"min=0,max=2"`
}
