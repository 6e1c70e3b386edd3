package models

import (
	"encoding/json"
	"time"
)

// Admin account statuses.
const (
	AdminStatusUnverified = 0
	AdminStatusActive     = 1
	AdminStatusSuspended  = 2
)

// RoleSuperAdmin bypasses the permission catalog entirely.
const RoleSuperAdmin = "admin_user"

// Admin represents a portal administrator stored in the admins table. The
// session columns (login_token, token_expiry) hold the single active opaque
// bearer credential; otp/otp_expiry back the two-factor login flow.
type Admin struct {
	ID               int64           `db:"id" json:"id"`
	Name             string          `db:"name" json:"name"`
	Username         string          `db:"username" json:"username"`
	Email            string          `db:"email" json:"email"`
	Mobile           string          `db:"mobile" json:"mobile"`
	PasswordHash     string          `db:"password_hash" json:"-"`
	Role             string          `db:"role" json:"role"`
	Permissions      json.RawMessage `db:"permissions" json:"permissions"`
	Status           int             `db:"status" json:"status"`
	TwoFactorEnabled bool            `db:"two_factor_enabled" json:"two_factor_enabled"`
	LoginToken       *string         `db:"login_token" json:"-"`
	TokenExpiry      *time.Time      `db:"token_expiry" json:"-"`
	OTP              *string         `db:"otp" json:"-"`
	OTPExpiry        *time.Time      `db:"otp_expiry" json:"-"`
	DateOfJoining    *time.Time      `db:"date_of_joining" json:"date_of_joining,omitempty"`
	ProfilePicture   string          `db:"profile_picture" json:"profile_picture,omitempty"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// AdminInfo is the sanitized admin payload returned by the API. It never
// carries password, otp, or session token columns.
type AdminInfo struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	Mobile         string          `json:"mobile"`
	Role           string          `json:"role"`
	Permissions    json.RawMessage `json:"permissions,omitempty"`
	Status         int             `json:"status"`
	DateOfJoining  *time.Time      `json:"date_of_joining,omitempty"`
	ProfilePicture string          `json:"profile_picture,omitempty"`
}

// Info converts an Admin row into its sanitized API shape.
func (a *Admin) Info() AdminInfo {
	return AdminInfo{
		ID:             a.ID,
		Name:           a.Name,
		Username:       a.Username,
		Email:          a.Email,
		Mobile:         a.Mobile,
		Role:           a.Role,
		Permissions:    a.Permissions,
		Status:         a.Status,
		DateOfJoining:  a.DateOfJoining,
		ProfilePicture: a.ProfilePicture,
	}
}

// CreateAdminRequest is the payload for creating an administrator.
type CreateAdminRequest struct {
	Name             string          `json:"name" validate:"required"`
	Username         string          `json:"username" validate:"required,min=3"`
	Email            string          `json:"email" validate:"required,email"`
	Mobile           string          `json:"mobile" validate:"required"`
	Password         string          `json:"password" validate:"required,min=8"`
	Role             string          `json:"role" validate:"required"`
	Permissions      map[string]bool `json:"permissions"`
	TwoFactorEnabled bool            `json:"two_factor_enabled"`
	DateOfJoining    *time.Time      `json:"date_of_joining"`
}

// UpdateAdminRequest is the payload for updating an administrator.
type UpdateAdminRequest struct {
	Name             string     `json:"name" validate:"required"`
	Email            string     `json:"email" validate:"required,email"`
	Mobile           string     `json:"mobile" validate:"required"`
	Role             string     `json:"role" validate:"required"`
	Status           int        `json:"status" validate:"min=0,max=2"`
	TwoFactorEnabled bool       `json:"two_factor_enabled"`
	DateOfJoining    *time.Time `json:"date_of_joining"`
}

// UpdatePermissionsRequest replaces an admin's permission flags.
type UpdatePermissionsRequest struct {
	Permissions map[string]bool `json:"permissions" validate:"required"`
}
