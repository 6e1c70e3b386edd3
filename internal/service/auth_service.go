package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/mailer"
)

type authAdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.Admin, error)
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	FindByID(ctx context.Context, id int64) (*models.Admin, error)
	IssueToken(ctx context.Context, id int64, token string, expiry time.Time) error
	ClearToken(ctx context.Context, id int64) error
	SetOTP(ctx context.Context, id int64, otp string, expiry time.Time) error
	ClearOTP(ctx context.Context, id int64) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type loginAuditor interface {
	RecordLogin(log models.LoginLog)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	TokenLifetime time.Duration
	OTPLifetime   time.Duration
	ResetSecret   string
	ResetLifetime time.Duration
	PortalURL     string
}

// AuthService provides admin authentication use cases: credential login,
// two-factor verification, logout, and the password reset flow.
type AuthService struct {
	repo      authAdminRepository
	audit     loginAuditor
	mailer    mailer.Mailer
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authAdminRepository, audit loginAuditor, mail mailer.Mailer, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.TokenLifetime <= 0 {
		config.TokenLifetime = 120 * time.Minute
	}
	if config.OTPLifetime <= 0 {
		config.OTPLifetime = 10 * time.Minute
	}
	if config.ResetLifetime <= 0 {
		config.ResetLifetime = 15 * time.Minute
	}
	return &AuthService{repo: repo, audit: audit, mailer: mail, validator: validate, logger: logger, config: config}
}

// Login authenticates an admin by username (or email) and password. When
// two-factor is enabled for the account a one-time code is mailed and no
// token is issued until VerifyOTP succeeds.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	admin, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid username or password")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch admin")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		s.recordLogin(admin.ID, "login", models.LogResultFailure, "invalid password", req.IP, req.IPVersion)
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid username or password")
	}

	if admin.Status != models.AdminStatusActive {
		s.recordLogin(admin.ID, "login", models.LogResultFailure, "account not active", req.IP, req.IPVersion)
		return nil, appErrors.Clone(appErrors.ErrInactiveAccount, "account is not active")
	}

	if admin.TwoFactorEnabled {
		otp, err := generateOTP()
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate verification code")
		}
		if err := s.repo.SetOTP(ctx, admin.ID, otp, time.Now().UTC().Add(s.config.OTPLifetime)); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to store verification code")
		}
		if err := s.mailer.Send(ctx, mailer.TemplateTwoFactorOTP, map[string]string{
			"Name":          admin.Name,
			"OTP":           otp,
			"ExpiryMinutes": fmt.Sprintf("%d", int(s.config.OTPLifetime.Minutes())),
		}, []string{admin.Email}); err != nil {
			s.logger.Error("failed to send verification code", zap.Int64("admin_id", admin.ID), zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to send verification code")
		}
		s.recordLogin(admin.ID, "otp_sent", models.LogResultSuccess, "", req.IP, req.IPVersion)
		return &models.LoginResponse{Admin: admin.Info(), OTPRequired: true}, nil
	}

	token, err := s.issueSession(ctx, admin.ID)
	if err != nil {
		return nil, err
	}

	s.recordLogin(admin.ID, "login", models.LogResultSuccess, "", req.IP, req.IPVersion)
	return &models.LoginResponse{Admin: admin.Info(), Token: token}, nil
}

// VerifyOTP completes a two-factor login by checking the mailed code and
// issuing the session token.
func (s *AuthService) VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid verification payload")
	}

	admin, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid username or verification code")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch admin")
	}

	if admin.OTP == nil || *admin.OTP != req.OTP {
		s.recordLogin(admin.ID, "otp_verify", models.LogResultFailure, "code mismatch", req.IP, req.IPVersion)
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid username or verification code")
	}

	if admin.OTPExpiry == nil || time.Now().UTC().After(*admin.OTPExpiry) {
		s.recordLogin(admin.ID, "otp_verify", models.LogResultFailure, "code expired", req.IP, req.IPVersion)
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "verification code has expired")
	}

	if err := s.repo.ClearOTP(ctx, admin.ID); err != nil {
		s.logger.Warn("failed to clear used verification code", zap.Int64("admin_id", admin.ID), zap.Error(err))
	}

	token, err := s.issueSession(ctx, admin.ID)
	if err != nil {
		return nil, err
	}

	s.recordLogin(admin.ID, "otp_verify", models.LogResultSuccess, "", req.IP, req.IPVersion)
	return &models.LoginResponse{Admin: admin.Info(), Token: token}, nil
}

// Logout clears the admin's stored session token.
func (s *AuthService) Logout(ctx context.Context, adminID int64, ip, ipVersion string) error {
	if err := s.repo.ClearToken(ctx, adminID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to clear session")
	}
	s.recordLogin(adminID, "logout", models.LogResultSuccess, "", ip, ipVersion)
	return nil
}

// ForgotPassword mails a signed, short-lived reset link to the admin.
func (s *AuthService) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid forgot password payload")
	}

	admin, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "no account registered for that email")
		}
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch admin")
	}

	now := time.Now().UTC()
	claims := &models.ResetClaims{
		AdminID: admin.ID,
		Email:   admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", admin.ID),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.ResetLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.ResetSecret))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign reset token")
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.config.PortalURL, signed)
	if err := s.mailer.Send(ctx, mailer.TemplateForgotPassword, map[string]string{
		"Name":          admin.Name,
		"Link":          resetLink,
		"ExpiryMinutes": fmt.Sprintf("%d", int(s.config.ResetLifetime.Minutes())),
	}, []string{admin.Email}); err != nil {
		s.logger.Error("failed to send reset mail", zap.Int64("admin_id", admin.ID), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to send reset mail")
	}

	return nil
}

// ResetPassword verifies the signed reset token, stores the new password
// hash, and clears any live session so old tokens stop working.
func (s *AuthService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reset password payload")
	}

	token, err := jwt.ParseWithClaims(req.Token, &models.ResetClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.ResetSecret), nil
	})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "reset token is invalid or expired")
	}

	claims, ok := token.Claims.(*models.ResetClaims)
	if !ok || !token.Valid {
		return appErrors.Clone(appErrors.ErrUnauthorized, "reset token is invalid or expired")
	}

	admin, err := s.repo.FindByID(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "admin not found")
		}
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch admin")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	if err := s.repo.UpdatePassword(ctx, admin.ID, string(hash)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to update password")
	}

	if err := s.repo.ClearToken(ctx, admin.ID); err != nil {
		s.logger.Warn("failed to clear session after password reset", zap.Int64("admin_id", admin.ID), zap.Error(err))
	}

	return nil
}

func (s *AuthService) issueSession(ctx context.Context, adminID int64) (string, error) {
	token, err := GenerateSessionToken()
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate session token")
	}
	if err := s.repo.IssueToken(ctx, adminID, token, time.Now().UTC().Add(s.config.TokenLifetime)); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to store session token")
	}
	return token, nil
}

func (s *AuthService) recordLogin(adminID int64, action, result, errMsg, ip, ipVersion string) {
	if s.audit == nil {
		return
	}
	s.audit.RecordLogin(models.LoginLog{
		AdminID:   adminID,
		Action:    action,
		Result:    result,
		Error:     errMsg,
		IP:        ip,
		IPVersion: ipVersion,
	})
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
