package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
)

type sessionAdminRepository interface {
	GetSession(ctx context.Context, id int64) (*models.AdminSession, error)
	GetAuthorization(ctx context.Context, id int64) (*models.AdminAuthorization, error)
	RotateToken(ctx context.Context, id int64, oldToken, newToken string, expiry time.Time) (bool, error)
}

// SessionConfig defines configuration for the session token protocol.
type SessionConfig struct {
	TokenLifetime time.Duration
	SuperRole     string
}

// SessionService validates opaque session tokens and enforces the
// permission catalog. Every authenticated request passes through
// ValidateAndRotate; the returned token is echoed back in the response
// envelope so clients always hold the freshest credential.
type SessionService struct {
	repo   sessionAdminRepository
	logger *zap.Logger
	config SessionConfig
}

// NewSessionService constructs a SessionService instance.
func NewSessionService(repo sessionAdminRepository, logger *zap.Logger, config SessionConfig) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.TokenLifetime <= 0 {
		config.TokenLifetime = 120 * time.Minute
	}
	if config.SuperRole == "" {
		config.SuperRole = models.RoleSuperAdmin
	}
	return &SessionService{repo: repo, logger: logger, config: config}
}

// ValidateAndRotate checks the presented token against the admin's stored
// session and returns the token the response must carry. A token whose
// expiry has not yet passed is returned unchanged; a matching token past
// its expiry is rotated to a fresh value with a new lifetime.
//
// Rotation is a compare-and-swap on the stored token, so when two requests
// carrying the same expired token race, exactly one writes a new token. The
// loser re-reads the row and echoes the winner's token, which keeps single
// clients that fire parallel requests from being logged out.
func (s *SessionService) ValidateAndRotate(ctx context.Context, adminID int64, token string) (string, error) {
	if adminID <= 0 || token == "" {
		return "", appErrors.Clone(appErrors.ErrInvalidToken, "admin id and token are required")
	}

	session, err := s.repo.GetSession(ctx, adminID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "admin not found")
		}
		return "", appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load session")
	}

	if session.LoginToken == nil || *session.LoginToken != token {
		return "", appErrors.Clone(appErrors.ErrInvalidToken, "invalid token provided")
	}

	now := time.Now().UTC()
	if session.TokenExpiry != nil && session.TokenExpiry.After(now) {
		return token, nil
	}

	newToken, err := GenerateSessionToken()
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate session token")
	}

	rotated, err := s.repo.RotateToken(ctx, adminID, token, newToken, now.Add(s.config.TokenLifetime))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to rotate session token")
	}
	if rotated {
		return newToken, nil
	}

	// Lost the swap: a concurrent request already rotated. Echo whatever
	// token won so the client converges on a single credential.
	current, err := s.repo.GetSession(ctx, adminID)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to reload session")
	}
	if current.LoginToken == nil {
		return "", appErrors.Clone(appErrors.ErrInvalidToken, "invalid token provided")
	}
	s.logger.Debug("session rotation lost race, echoing winner token", zap.Int64("admin_id", adminID))
	return *current.LoginToken, nil
}

// IsAuthorizedFor reports whether the admin may perform the named action.
// The super role bypasses the catalog; everyone else needs the action flag
// set true in their permissions JSON.
func (s *SessionService) IsAuthorizedFor(ctx context.Context, adminID int64, action string) (bool, error) {
	auth, err := s.repo.GetAuthorization(ctx, adminID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, appErrors.Clone(appErrors.ErrNotFound, "admin not found")
		}
		return false, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load authorization")
	}

	if auth.Role == s.config.SuperRole {
		return true, nil
	}

	if len(auth.Permissions) == 0 {
		return false, nil
	}

	var permissions map[string]bool
	if err := json.Unmarshal(auth.Permissions, &permissions); err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInvalidState.Code, appErrors.ErrInvalidState.Status, "stored permissions are not valid JSON")
	}

	return permissions[action], nil
}

// GenerateSessionToken returns a fresh 64-character hex token backed by 32
// bytes of crypto randomness.
func GenerateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
