package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/mailer"
)

type adminRepository interface {
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, admin *models.Admin) error
	List(ctx context.Context) ([]models.Admin, error)
	FindByID(ctx context.Context, id int64) (*models.Admin, error)
	Update(ctx context.Context, admin *models.Admin) error
	UpdatePermissions(ctx context.Context, id int64, permissions []byte) error
	Delete(ctx context.Context, id int64) (int64, error)
}

// AdminService manages administrator accounts and their permission flags.
type AdminService struct {
	repo      adminRepository
	mailer    mailer.Mailer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAdminService constructs an AdminService instance.
func NewAdminService(repo adminRepository, mail mailer.Mailer, validate *validator.Validate, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AdminService{repo: repo, mailer: mail, validator: validate, logger: logger}
}

// Create registers a new administrator. Username and email must be unique;
// a welcome mail with the initial credentials is sent best-effort.
func (s *AdminService) Create(ctx context.Context, req models.CreateAdminRequest) (*models.AdminInfo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid admin payload")
	}

	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to check admin uniqueness")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "username or email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	permissions, err := marshalPermissions(req.Permissions)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		Name:             req.Name,
		Username:         req.Username,
		Email:            req.Email,
		Mobile:           req.Mobile,
		PasswordHash:     string(hash),
		Role:             req.Role,
		Permissions:      permissions,
		Status:           models.AdminStatusActive,
		TwoFactorEnabled: req.TwoFactorEnabled,
		DateOfJoining:    req.DateOfJoining,
	}

	if err := s.repo.Create(ctx, admin); err != nil {
		if isUniqueViolationErr(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "username or email already registered")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to create admin")
	}

	if s.mailer != nil {
		if err := s.mailer.Send(ctx, mailer.TemplateAdminWelcome, map[string]string{
			"Name":     admin.Name,
			"Username": admin.Username,
			"Password": req.Password,
		}, []string{admin.Email}); err != nil {
			s.logger.Warn("failed to send welcome mail", zap.Int64("admin_id", admin.ID), zap.Error(err))
		}
	}

	info := admin.Info()
	return &info, nil
}

// List returns all administrators in sanitized form.
func (s *AdminService) List(ctx context.Context) ([]models.AdminInfo, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list admins")
	}
	infos := make([]models.AdminInfo, 0, len(admins))
	for i := range admins {
		infos = append(infos, admins[i].Info())
	}
	return infos, nil
}

// Get fetches a single administrator in sanitized form.
func (s *AdminService) Get(ctx context.Context, id int64) (*models.AdminInfo, error) {
	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "admin not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch admin")
	}
	info := admin.Info()
	return &info, nil
}

// Update modifies an administrator's profile fields.
func (s *AdminService) Update(ctx context.Context, id int64, req models.UpdateAdminRequest) (*models.AdminInfo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid admin payload")
	}

	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "admin not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch admin")
	}

	admin.Name = req.Name
	admin.Email = req.Email
	admin.Mobile = req.Mobile
	admin.Role = req.Role
	admin.Status = req.Status
	admin.TwoFactorEnabled = req.TwoFactorEnabled
	admin.DateOfJoining = req.DateOfJoining
	admin.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, admin); err != nil {
		if isUniqueViolationErr(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to update admin")
	}

	info := admin.Info()
	return &info, nil
}

// UpdatePermissions replaces an administrator's permission flags. Keys must
// come from the seeded action catalog.
func (s *AdminService) UpdatePermissions(ctx context.Context, id int64, req models.UpdatePermissionsRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid permissions payload")
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "admin not found")
		}
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch admin")
	}

	permissions, err := marshalPermissions(req.Permissions)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePermissions(ctx, id, permissions); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to update permissions")
	}
	return nil
}

// Delete removes an administrator. Deleting an unknown id is not an error.
func (s *AdminService) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to delete admin")
	}
	if affected == 0 {
		s.logger.Debug("delete admin matched no rows", zap.Int64("admin_id", id))
	}
	return nil
}

// PermissionCatalog returns the seeded action names the portal understands.
func (s *AdminService) PermissionCatalog() []string {
	catalog := make([]string, len(models.ActionCatalog))
	copy(catalog, models.ActionCatalog)
	return catalog
}

func marshalPermissions(permissions map[string]bool) (json.RawMessage, error) {
	if permissions == nil {
		permissions = map[string]bool{}
	}
	known := make(map[string]struct{}, len(models.ActionCatalog))
	for _, action := range models.ActionCatalog {
		known[action] = struct{}{}
	}
	for key := range permissions {
		if _, ok := known[key]; !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown permission action: "+key)
		}
	}
	raw, err := json.Marshal(permissions)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode permissions")
	}
	return raw, nil
}
