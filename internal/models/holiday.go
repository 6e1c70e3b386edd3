package models

import "time"

// Holiday is a portal-wide non-working day. Titles are unique.
type Holiday struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Date      time.Time `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// HolidayRequest creates or updates a holiday.
type HolidayRequest struct {
	Title string    `json:"title" validate:"required"`
	Date  time.Time `json:"date" validate:"required"`
}

// DailyActivity is a free-form per-admin work log row.
type DailyActivity struct {
	ID         int64     `db:"id" json:"id"`
	AdminID    int64     `db:"admin_id" json:"admin_id"`
	Date       time.Time `db:"date" json:"date"`
	ClientName string    `db:"client_name" json:"client_name"`
	Task       string    `db:"task" json:"task"`
	Remarks    string    `db:"remarks" json:"remarks,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// DailyActivityRequest creates or updates a daily activity row.
type DailyActivityRequest struct {
	Date       time.Time `json:"date" validate:"required"`
	ClientName string    `json:"client_name"`
	Task       string    `json:"task" validate:"required"`
	Remarks    string    `json:"remarks"`
}
