package models

import "time"

// DirectoryType distinguishes the internal contact directories. Each type is
// backed by its own table; the CRUD shape is identical.
type DirectoryType string

const (
	DirectoryVendor       DirectoryType = "vendor"
	DirectoryUniversity   DirectoryType = "university"
	DirectoryOrganization DirectoryType = "organization"
)

// Table returns the backing table name for the directory type.
func (t DirectoryType) Table() string {
	switch t {
	case DirectoryVendor:
		return "vendors"
	case DirectoryUniversity:
		return "universities"
	case DirectoryOrganization:
		return "organizations"
	}
	return ""
}

// Label returns the human-readable resource name used in messages.
func (t DirectoryType) Label() string {
	switch t {
	case DirectoryVendor:
		return "Vendor"
	case DirectoryUniversity:
		return "University"
	case DirectoryOrganization:
		return "Organization"
	}
	return ""
}

// DirectoryEntry is a row in one of the internal verification directories
// (vendors, universities, ex-employment organizations). Names are unique per
// directory.
type DirectoryEntry struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	ContactPerson string    `db:"contact_person" json:"contact_person"`
	Phone         string    `db:"phone" json:"phone"`
	Email         string    `db:"email" json:"email"`
	Address       string    `db:"address" json:"address"`
	State         string    `db:"state" json:"state"`
	Remarks       string    `db:"remarks" json:"remarks,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// DirectoryEntryRequest creates or updates a directory entry.
type DirectoryEntryRequest struct {
	Name          string `json:"name" validate:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address"`
	State         string `json:"state"`
	Remarks       string `json:"remarks"`
}
