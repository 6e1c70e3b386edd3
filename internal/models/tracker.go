package models

import (
	"encoding/json"
	"time"
)

// TrackerSubmission is a persisted client-master-tracker form. The raw nested
// form is kept verbatim; the two flattened maps are what downstream tooling
// reads.
type TrackerSubmission struct {
	ID            int64           `db:"id" json:"id"`
	CustomerID    int64           `db:"customer_id" json:"customer_id"`
	SubmittedBy   int64           `db:"submitted_by" json:"submitted_by"`
	RawForm       json.RawMessage `db:"raw_form" json:"raw_form,omitempty"`
	FlatFields    json.RawMessage `db:"flat_fields" json:"flat_fields"`
	FlatAnnexures json.RawMessage `db:"flat_annexures" json:"flat_annexures"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// TrackerSubmitRequest carries a nested client-master-tracker form.
type TrackerSubmitRequest struct {
	CustomerID int64                  `json:"customer_id" validate:"required"`
	Form       map[string]interface{} `json:"form" validate:"required"`
}
