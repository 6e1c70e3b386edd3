package models

import "time"

// Activity log results stored as strings, matching the portal convention.
const (
	LogResultSuccess = "1"
	LogResultFailure = "0"
)

// ActivityLog is an append-only audit row written after every authenticated
// operation. Never read back by application logic.
type ActivityLog struct {
	ID        int64     `db:"id" json:"id"`
	AdminID   int64     `db:"admin_id" json:"admin_id"`
	Module    string    `db:"module" json:"module"`
	Action    string    `db:"action" json:"action"`
	Result    string    `db:"result" json:"result"`
	Payload   string    `db:"payload" json:"payload,omitempty"`
	Error     string    `db:"error" json:"error,omitempty"`
	IP        string    `db:"ip" json:"ip"`
	IPVersion string    `db:"ip_version" json:"ip_version"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// LoginLog records login, OTP, and logout events per admin.
type LoginLog struct {
	ID        int64     `db:"id" json:"id"`
	AdminID   int64     `db:"admin_id" json:"admin_id"`
	Action    string    `db:"action" json:"action"`
	Result    string    `db:"result" json:"result"`
	Error     string    `db:"error" json:"error,omitempty"`
	IP        string    `db:"ip" json:"ip"`
	IPVersion string    `db:"ip_version" json:"ip_version"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
