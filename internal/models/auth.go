package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest holds credentials for authenticating an admin.
type LoginRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	IPVersion string `json:"-"`
}

// LoginResponse returns the issued session token and sanitized admin.
type LoginResponse struct {
	Admin AdminInfo `json:"admin"`
	Token string    `json:"token,omitempty"`
	// OTPRequired signals the client to collect the mailed verification code.
	OTPRequired bool `json:"otp_required,omitempty"`
}

// VerifyOTPRequest completes a two-factor login.
type VerifyOTPRequest struct {
	Username  string `json:"username" validate:"required"`
	OTP       string `json:"otp" validate:"required,len=6"`
	IP        string `json:"-"`
	IPVersion string `json:"-"`
}

// ForgotPasswordRequest initiates the password reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest completes the password reset flow.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ResetClaims is the signed payload of a password-reset token.
type ResetClaims struct {
	AdminID int64  `json:"admin_id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}
