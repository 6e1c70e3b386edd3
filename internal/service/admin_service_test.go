package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
)

type mockAdminRepo struct {
	exists      bool
	created     *models.Admin
	admins      []models.Admin
	permissions []byte
	deleted     int64
	deleteRows  int64
}

func (m *mockAdminRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	return m.exists, nil
}

func (m *mockAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	admin.ID = 3
	m.created = admin
	return nil
}

func (m *mockAdminRepo) List(ctx context.Context) ([]models.Admin, error) {
	return m.admins, nil
}

func (m *mockAdminRepo) FindByID(ctx context.Context, id int64) (*models.Admin, error) {
	for i := range m.admins {
		if m.admins[i].ID == id {
			return &m.admins[i], nil
		}
	}
	return nil, errNoAdmin
}

func (m *mockAdminRepo) Update(ctx context.Context, admin *models.Admin) error {
	return nil
}

func (m *mockAdminRepo) UpdatePermissions(ctx context.Context, id int64, permissions []byte) error {
	m.permissions = permissions
	return nil
}

func (m *mockAdminRepo) Delete(ctx context.Context, id int64) (int64, error) {
	m.deleted = id
	return m.deleteRows, nil
}

var errNoAdmin = errors.New("sql: no rows in result set")

func validCreateRequest() models.CreateAdminRequest {
	return models.CreateAdminRequest{
		Name:     "Priya Sharma",
		Username: "priya",
		Email:    "priya@example.com",
		Mobile:   "9876543210",
		Password: "initial-pass",
		Role:     "operations",
		Permissions: map[string]bool{
			models.ActionClientOverview: true,
		},
	}
}

func TestAdminCreateHashesPasswordAndSanitizes(t *testing.T) {
	repo := &mockAdminRepo{}
	mail := &mockMailer{}
	svc := NewAdminService(repo, mail, nil, zap.NewNop())

	info, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.EqualValues(t, 3, info.ID)

	// Stored hash verifies against the submitted password.
	require.NotNil(t, repo.created)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("initial-pass")))

	var perms map[string]bool
	require.NoError(t, json.Unmarshal(repo.created.Permissions, &perms))
	assert.True(t, perms[models.ActionClientOverview])
}

func TestAdminCreateDuplicate(t *testing.T) {
	repo := &mockAdminRepo{exists: true}
	svc := NewAdminService(repo, &mockMailer{}, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestAdminCreateUnknownPermissionAction(t *testing.T) {
	repo := &mockAdminRepo{}
	svc := NewAdminService(repo, &mockMailer{}, nil, zap.NewNop())

	req := validCreateRequest()
	req.Permissions = map[string]bool{"launch_rockets": true}

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestAdminDeleteMissingRowStillSucceeds(t *testing.T) {
	repo := &mockAdminRepo{deleteRows: 0}
	svc := NewAdminService(repo, &mockMailer{}, nil, zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), 77))
	assert.EqualValues(t, 77, repo.deleted)
}

func TestPermissionCatalogIsCopied(t *testing.T) {
	svc := NewAdminService(&mockAdminRepo{}, &mockMailer{}, nil, zap.NewNop())

	catalog := svc.PermissionCatalog()
	require.Equal(t, models.ActionCatalog, catalog)
	catalog[0] = "mutated"
	assert.NotEqual(t, "mutated", models.ActionCatalog[0])
}
