package models

import "time"

// ServiceGroup bundles related verification services under a short symbol.
type ServiceGroup struct {
	ID        int64     `db:"id" json:"id"`
	Symbol    string    `db:"symbol" json:"symbol"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Service is a single verification offering, identified by a unique code.
type Service struct {
	ID        int64     `db:"id" json:"id"`
	GroupID   *int64    `db:"group_id" json:"group_id,omitempty"`
	Name      string    `db:"name" json:"name"`
	Code      string    `db:"code" json:"code"`
	HSNCode   string    `db:"hsn_code" json:"hsn_code"`
	Fee       float64   `db:"fee" json:"fee"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Package is a named bundle of services sold to customers.
type Package struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ServiceGroupRequest creates or updates a service group.
type ServiceGroupRequest struct {
	Symbol string `json:"symbol" validate:"required"`
	Title  string `json:"title" validate:"required"`
}

// ServiceRequest creates or updates a service.
type ServiceRequest struct {
	GroupID *int64  `json:"group_id"`
	Name    string  `json:"name" validate:"required"`
	Code    string  `json:"code" validate:"required"`
	HSNCode string  `json:"hsn_code"`
	Fee     float64 `json:"fee" validate:"min=0"`
}

// PackageRequest creates or updates a package.
type PackageRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}
