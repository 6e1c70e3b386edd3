package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
)

type mockSessionRepo struct {
	session      *models.AdminSession
	sessionErr   error
	reloaded     *models.AdminSession
	reloadCalled bool

	auth    *models.AdminAuthorization
	authErr error

	rotateOK     bool
	rotateErr    error
	rotatedTo    string
	rotateExpiry time.Time
}

func (m *mockSessionRepo) GetSession(ctx context.Context, id int64) (*models.AdminSession, error) {
	if m.sessionErr != nil {
		return nil, m.sessionErr
	}
	if m.reloadCalled && m.reloaded != nil {
		return m.reloaded, nil
	}
	m.reloadCalled = true
	return m.session, nil
}

func (m *mockSessionRepo) GetAuthorization(ctx context.Context, id int64) (*models.AdminAuthorization, error) {
	if m.authErr != nil {
		return nil, m.authErr
	}
	return m.auth, nil
}

func (m *mockSessionRepo) RotateToken(ctx context.Context, id int64, oldToken, newToken string, expiry time.Time) (bool, error) {
	if m.rotateErr != nil {
		return false, m.rotateErr
	}
	if m.rotateOK {
		m.rotatedTo = newToken
		m.rotateExpiry = expiry
	}
	return m.rotateOK, nil
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestValidateAndRotateFreshTokenEchoed(t *testing.T) {
	expiry := time.Now().Add(time.Hour)
	repo := &mockSessionRepo{session: &models.AdminSession{
		ID:          1,
		LoginToken:  strPtr("abc123"),
		TokenExpiry: timePtr(expiry),
	}}
	svc := NewSessionService(repo, zap.NewNop(), SessionConfig{})

	token, err := svc.ValidateAndRotate(context.Background(), 1, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
	assert.Empty(t, repo.rotatedTo)
}

func TestValidateAndRotateExpiredTokenRotates(t *testing.T) {
	expiry := time.Now().Add(-time.Minute)
	repo := &mockSessionRepo{
		session: &models.AdminSession{
			ID:          1,
			LoginToken:  strPtr("stale"),
			TokenExpiry: timePtr(expiry),
		},
		rotateOK: true,
	}
	svc := NewSessionService(repo, zap.NewNop(), SessionConfig{TokenLifetime: time.Hour})

	token, err := svc.ValidateAndRotate(context.Background(), 1, "stale")
	require.NoError(t, err)
	assert.NotEqual(t, "stale", token)
	assert.Len(t, token, 64)
	assert.Equal(t, token, repo.rotatedTo)
	assert.WithinDuration(t, time.Now().Add(time.Hour), repo.rotateExpiry, time.Minute)
}

func TestValidateAndRotateRaceLoserEchoesWinner(t *testing.T) {
	expiry := time.Now().Add(-time.Minute)
	repo := &mockSessionRepo{
		session: &models.AdminSession{
			ID:          1,
			LoginToken:  strPtr("stale"),
			TokenExpiry: timePtr(expiry),
		},
		reloaded: &models.AdminSession{
			ID:          1,
			LoginToken:  strPtr("winner-token"),
			TokenExpiry: timePtr(time.Now().Add(time.Hour)),
		},
		rotateOK: false,
	}
	svc := NewSessionService(repo, zap.NewNop(), SessionConfig{})

	token, err := svc.ValidateAndRotate(context.Background(), 1, "stale")
	require.NoError(t, err)
	assert.Equal(t, "winner-token", token)
}

func TestValidateAndRotateMismatchedToken(t *testing.T) {
	repo := &mockSessionRepo{session: &models.AdminSession{
		ID:          1,
		LoginToken:  strPtr("stored"),
		TokenExpiry: timePtr(time.Now().Add(time.Hour)),
	}}
	svc := NewSessionService(repo, zap.NewNop(), SessionConfig{})

	_, err := svc.ValidateAndRotate(context.Background(), 1, "presented")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInvalidToken.Code, appErr.Code)
}

func TestValidateAndRotateMissingToken(t *testing.T) {
	svc := NewSessionService(&mockSessionRepo{}, zap.NewNop(), SessionConfig{})

	_, err := svc.ValidateAndRotate(context.Background(), 1, "")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInvalidToken.Code, appErr.Code)
}

func TestValidateAndRotateUnknownAdmin(t *testing.T) {
	repo := &mockSessionRepo{sessionErr: sql.ErrNoRows}
	svc := NewSessionService(repo, zap.NewNop(), SessionConfig{})

	_, err := svc.ValidateAndRotate(context.Background(), 99, "whatever")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "admin not found", appErr.Message)
}

func TestIsAuthorizedForSuperRoleBypass(t *testing.T) {
	repo := &mockSessionRepo{auth: &models.AdminAuthorization{
		ID:   1,
		Role: models.RoleSuperAdmin,
	}}
	svc := NewSessionService(repo, zap.NewNop(), SessionConfig{})

	allowed, err := svc.IsAuthorizedFor(context.Background(), 1, models.ActionAdminAccess)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestIsAuthorizedForFlagLookup(t *testing.T) {
	repo := &mockSessionRepo{auth: &models.AdminAuthorization{
		ID:          1,
		Role:        "operations",
		Permissions: []byte(`{"client_overview": true, "admin_access": false}`),
	}}
	svc := NewSessionService(repo, zap.NewNop(), SessionConfig{})

	allowed, err := svc.IsAuthorizedFor(context.Background(), 1, models.ActionClientOverview)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.IsAuthorizedFor(context.Background(), 1, models.ActionAdminAccess)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = svc.IsAuthorizedFor(context.Background(), 1, models.ActionSeeMore)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestIsAuthorizedForEmptyPermissions(t *testing.T) {
	repo := &mockSessionRepo{auth: &models.AdminAuthorization{ID: 1, Role: "operations"}}
	svc := NewSessionService(repo, zap.NewNop(), SessionConfig{})

	allowed, err := svc.IsAuthorizedFor(context.Background(), 1, models.ActionClientOverview)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestIsAuthorizedForMalformedPermissions(t *testing.T) {
	repo := &mockSessionRepo{auth: &models.AdminAuthorization{
		ID:          1,
		Role:        "operations",
		Permissions: []byte(`{not json`),
	}}
	svc := NewSessionService(repo, zap.NewNop(), SessionConfig{})

	_, err := svc.IsAuthorizedFor(context.Background(), 1, models.ActionClientOverview)
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInvalidState.Code, appErr.Code)
}

func TestIsAuthorizedForUnknownAdmin(t *testing.T) {
	repo := &mockSessionRepo{authErr: sql.ErrNoRows}
	svc := NewSessionService(repo, zap.NewNop(), SessionConfig{})

	_, err := svc.IsAuthorizedFor(context.Background(), 42, models.ActionClientOverview)
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestGenerateSessionToken(t *testing.T) {
	a, err := GenerateSessionToken()
	require.NoError(t, err)
	b, err := GenerateSessionToken()
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
