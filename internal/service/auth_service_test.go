package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
)

type mockAuthRepo struct {
	admin *models.Admin

	issuedToken  string
	issuedExpiry time.Time
	tokenCleared bool
	otpSet       string
	otpCleared   bool
	newPassword  string

	findErr  error
	issueErr error
}

func (m *mockAuthRepo) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.admin, nil
}

func (m *mockAuthRepo) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.admin, nil
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id int64) (*models.Admin, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.admin, nil
}

func (m *mockAuthRepo) IssueToken(ctx context.Context, id int64, token string, expiry time.Time) error {
	if m.issueErr != nil {
		return m.issueErr
	}
	m.issuedToken = token
	m.issuedExpiry = expiry
	return nil
}

func (m *mockAuthRepo) ClearToken(ctx context.Context, id int64) error {
	m.tokenCleared = true
	return nil
}

func (m *mockAuthRepo) SetOTP(ctx context.Context, id int64, otp string, expiry time.Time) error {
	m.otpSet = otp
	return nil
}

func (m *mockAuthRepo) ClearOTP(ctx context.Context, id int64) error {
	m.otpCleared = true
	return nil
}

func (m *mockAuthRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	m.newPassword = passwordHash
	return nil
}

type mockLoginAuditor struct {
	logs []models.LoginLog
}

func (m *mockLoginAuditor) RecordLogin(log models.LoginLog) {
	m.logs = append(m.logs, log)
}

type mockMailer struct {
	sentTemplate string
	sentData     map[string]string
	sentTo       []string
	sendErr      error
}

func (m *mockMailer) Send(ctx context.Context, template string, data map[string]string, recipients []string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sentTemplate = template
	m.sentData = data
	m.sentTo = recipients
	return nil
}

func activeAdmin(t *testing.T, password string) *models.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.Admin{
		ID:           7,
		Name:         "Priya",
		Username:     "priya",
		Email:        "priya@example.com",
		PasswordHash: string(hash),
		Role:         "operations",
		Status:       models.AdminStatusActive,
	}
}

func TestLoginSuccessIssuesToken(t *testing.T) {
	repo := &mockAuthRepo{admin: activeAdmin(t, "secret-pass")}
	audit := &mockLoginAuditor{}
	svc := NewAuthService(repo, audit, &mockMailer{}, validator.New(), zap.NewNop(), AuthConfig{TokenLifetime: time.Hour})

	res, err := svc.Login(context.Background(), models.LoginRequest{Username: "priya", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Len(t, res.Token, 64)
	assert.Equal(t, res.Token, repo.issuedToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), repo.issuedExpiry, time.Minute)
	assert.False(t, res.OTPRequired)

	// Payload must be sanitized.
	assert.Equal(t, "priya", res.Admin.Username)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.LogResultSuccess, audit.logs[0].Result)
}

func TestLoginBadPassword(t *testing.T) {
	repo := &mockAuthRepo{admin: activeAdmin(t, "secret-pass")}
	audit := &mockLoginAuditor{}
	svc := NewAuthService(repo, audit, &mockMailer{}, validator.New(), zap.NewNop(), AuthConfig{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "priya", Password: "wrong"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)

	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.LogResultFailure, audit.logs[0].Result)
}

func TestLoginUnknownUsername(t *testing.T) {
	repo := &mockAuthRepo{findErr: sql.ErrNoRows}
	svc := NewAuthService(repo, nil, &mockMailer{}, validator.New(), zap.NewNop(), AuthConfig{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "ghost", Password: "whatever"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestLoginInactiveAccount(t *testing.T) {
	admin := activeAdmin(t, "secret-pass")
	admin.Status = models.AdminStatusSuspended
	repo := &mockAuthRepo{admin: admin}
	svc := NewAuthService(repo, nil, &mockMailer{}, validator.New(), zap.NewNop(), AuthConfig{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "priya", Password: "secret-pass"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErr.Code)
}

func TestLoginTwoFactorSendsOTP(t *testing.T) {
	admin := activeAdmin(t, "secret-pass")
	admin.TwoFactorEnabled = true
	repo := &mockAuthRepo{admin: admin}
	mail := &mockMailer{}
	svc := NewAuthService(repo, nil, mail, validator.New(), zap.NewNop(), AuthConfig{})

	res, err := svc.Login(context.Background(), models.LoginRequest{Username: "priya", Password: "secret-pass"})
	require.NoError(t, err)
	assert.True(t, res.OTPRequired)
	assert.Empty(t, res.Token)
	assert.Len(t, repo.otpSet, 6)
	assert.Equal(t, []string{"priya@example.com"}, mail.sentTo)
	assert.Equal(t, repo.otpSet, mail.sentData["OTP"])
}

func TestVerifyOTPSuccess(t *testing.T) {
	admin := activeAdmin(t, "secret-pass")
	otp := "123456"
	expiry := time.Now().Add(5 * time.Minute)
	admin.OTP = &otp
	admin.OTPExpiry = &expiry
	repo := &mockAuthRepo{admin: admin}
	svc := NewAuthService(repo, nil, &mockMailer{}, validator.New(), zap.NewNop(), AuthConfig{})

	res, err := svc.VerifyOTP(context.Background(), models.VerifyOTPRequest{Username: "priya", OTP: "123456"})
	require.NoError(t, err)
	assert.Len(t, res.Token, 64)
	assert.True(t, repo.otpCleared)
}

func TestVerifyOTPExpired(t *testing.T) {
	admin := activeAdmin(t, "secret-pass")
	otp := "123456"
	expiry := time.Now().Add(-time.Minute)
	admin.OTP = &otp
	admin.OTPExpiry = &expiry
	repo := &mockAuthRepo{admin: admin}
	svc := NewAuthService(repo, nil, &mockMailer{}, validator.New(), zap.NewNop(), AuthConfig{})

	_, err := svc.VerifyOTP(context.Background(), models.VerifyOTPRequest{Username: "priya", OTP: "123456"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestLogoutClearsToken(t *testing.T) {
	repo := &mockAuthRepo{admin: activeAdmin(t, "secret-pass")}
	audit := &mockLoginAuditor{}
	svc := NewAuthService(repo, audit, &mockMailer{}, validator.New(), zap.NewNop(), AuthConfig{})

	require.NoError(t, svc.Logout(context.Background(), 7, "10.0.0.1", "v4"))
	assert.True(t, repo.tokenCleared)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, "logout", audit.logs[0].Action)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	repo := &mockAuthRepo{findErr: sql.ErrNoRows}
	svc := NewAuthService(repo, nil, &mockMailer{}, validator.New(), zap.NewNop(), AuthConfig{})

	err := svc.ForgotPassword(context.Background(), models.ForgotPasswordRequest{Email: "ghost@example.com"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestForgotThenResetPassword(t *testing.T) {
	admin := activeAdmin(t, "old-password")
	repo := &mockAuthRepo{admin: admin}
	mail := &mockMailer{}
	cfg := AuthConfig{ResetSecret: "reset-secret", ResetLifetime: 15 * time.Minute, PortalURL: "https://portal.example.com"}
	svc := NewAuthService(repo, nil, mail, validator.New(), zap.NewNop(), cfg)

	require.NoError(t, svc.ForgotPassword(context.Background(), models.ForgotPasswordRequest{Email: "priya@example.com"}))
	link := mail.sentData["Link"]
	require.Contains(t, link, "https://portal.example.com/reset-password?token=")
	token := link[len("https://portal.example.com/reset-password?token="):]

	require.NoError(t, svc.ResetPassword(context.Background(), models.ResetPasswordRequest{
		Token:       token,
		NewPassword: "new-password-1",
	}))
	require.NotEmpty(t, repo.newPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.newPassword), []byte("new-password-1")))
	assert.True(t, repo.tokenCleared)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	admin := activeAdmin(t, "old-password")
	repo := &mockAuthRepo{admin: admin}
	secret := "reset-secret"

	claims := &models.ResetClaims{
		AdminID: admin.ID,
		Email:   admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	svc := NewAuthService(repo, nil, &mockMailer{}, validator.New(), zap.NewNop(), AuthConfig{ResetSecret: secret})
	err = svc.ResetPassword(context.Background(), models.ResetPasswordRequest{Token: expired, NewPassword: "new-password-1"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}
