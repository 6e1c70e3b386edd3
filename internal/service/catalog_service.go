package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
)

type catalogRepository interface {
	IsServiceCodeUnique(ctx context.Context, code string, excludeID int64) (bool, error)
	CreateService(ctx context.Context, service *models.Service) error
	ListServices(ctx context.Context) ([]models.Service, error)
	FindServiceByID(ctx context.Context, id int64) (*models.Service, error)
	UpdateService(ctx context.Context, service *models.Service) error
	DeleteService(ctx context.Context, id int64) (int64, error)
	CreateServiceGroup(ctx context.Context, group *models.ServiceGroup) error
	ListServiceGroups(ctx context.Context) ([]models.ServiceGroup, error)
	FindServiceGroupByID(ctx context.Context, id int64) (*models.ServiceGroup, error)
	UpdateServiceGroup(ctx context.Context, group *models.ServiceGroup) error
	DeleteServiceGroup(ctx context.Context, id int64) (int64, error)
	CreatePackage(ctx context.Context, pkg *models.Package) error
	ListPackages(ctx context.Context) ([]models.Package, error)
	FindPackageByID(ctx context.Context, id int64) (*models.Package, error)
	UpdatePackage(ctx context.Context, pkg *models.Package) error
	DeletePackage(ctx context.Context, id int64) (int64, error)
}

// CatalogService manages the verification service catalog: services,
// service groups, and packages.
type CatalogService struct {
	repo      catalogRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCatalogService constructs a CatalogService instance.
func NewCatalogService(repo catalogRepository, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CatalogService{repo: repo, validator: validate, logger: logger}
}

// IsServiceCodeUnique reports whether the code is free, ignoring the
// service identified by excludeID when non-zero.
func (s *CatalogService) IsServiceCodeUnique(ctx context.Context, code string, excludeID int64) (bool, error) {
	if code == "" {
		return false, appErrors.Clone(appErrors.ErrValidation, "service code is required")
	}
	unique, err := s.repo.IsServiceCodeUnique(ctx, code, excludeID)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to check service code")
	}
	return unique, nil
}

// CreateService adds a verification service. Codes are unique.
func (s *CatalogService) CreateService(ctx context.Context, req models.ServiceRequest) (*models.Service, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid service payload")
	}

	unique, err := s.repo.IsServiceCodeUnique(ctx, req.Code, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to check service code")
	}
	if !unique {
		return nil, appErrors.Clone(appErrors.ErrConflict, "service code already in use")
	}

	service := &models.Service{
		GroupID: req.GroupID,
		Name:    req.Name,
		Code:    req.Code,
		HSNCode: req.HSNCode,
		Fee:     req.Fee,
	}
	if err := s.repo.CreateService(ctx, service); err != nil {
		if isUniqueViolationErr(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "service code already in use")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to create service")
	}
	return service, nil
}

// ListServices returns the full service catalog.
func (s *CatalogService) ListServices(ctx context.Context) ([]models.Service, error) {
	services, err := s.repo.ListServices(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list services")
	}
	return services, nil
}

// GetService fetches a service by id.
func (s *CatalogService) GetService(ctx context.Context, id int64) (*models.Service, error) {
	service, err := s.repo.FindServiceByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "service not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch service")
	}
	return service, nil
}

// UpdateService modifies a service, re-checking code uniqueness against
// other rows.
func (s *CatalogService) UpdateService(ctx context.Context, id int64, req models.ServiceRequest) (*models.Service, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid service payload")
	}

	service, err := s.repo.FindServiceByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "service not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch service")
	}

	unique, err := s.repo.IsServiceCodeUnique(ctx, req.Code, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to check service code")
	}
	if !unique {
		return nil, appErrors.Clone(appErrors.ErrConflict, "service code already in use")
	}

	service.GroupID = req.GroupID
	service.Name = req.Name
	service.Code = req.Code
	service.HSNCode = req.HSNCode
	service.Fee = req.Fee
	service.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateService(ctx, service); err != nil {
		if isUniqueViolationErr(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "service code already in use")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to update service")
	}
	return service, nil
}

// DeleteService removes a service.
func (s *CatalogService) DeleteService(ctx context.Context, id int64) error {
	affected, err := s.repo.DeleteService(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to delete service")
	}
	if affected == 0 {
		s.logger.Debug("delete service matched no rows", zap.Int64("service_id", id))
	}
	return nil
}

// CreateServiceGroup adds a service group.
func (s *CatalogService) CreateServiceGroup(ctx context.Context, req models.ServiceGroupRequest) (*models.ServiceGroup, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid service group payload")
	}
	group := &models.ServiceGroup{Symbol: req.Symbol, Title: req.Title}
	if err := s.repo.CreateServiceGroup(ctx, group); err != nil {
		if isUniqueViolationErr(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "service group symbol already in use")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to create service group")
	}
	return group, nil
}

// ListServiceGroups returns all service groups.
func (s *CatalogService) ListServiceGroups(ctx context.Context) ([]models.ServiceGroup, error) {
	groups, err := s.repo.ListServiceGroups(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list service groups")
	}
	return groups, nil
}

// UpdateServiceGroup modifies a service group.
func (s *CatalogService) UpdateServiceGroup(ctx context.Context, id int64, req models.ServiceGroupRequest) (*models.ServiceGroup, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid service group payload")
	}

	group, err := s.repo.FindServiceGroupByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "service group not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch service group")
	}

	group.Symbol = req.Symbol
	group.Title = req.Title
	group.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateServiceGroup(ctx, group); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to update service group")
	}
	return group, nil
}

// DeleteServiceGroup removes a service group.
func (s *CatalogService) DeleteServiceGroup(ctx context.Context, id int64) error {
	affected, err := s.repo.DeleteServiceGroup(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to delete service group")
	}
	if affected == 0 {
		s.logger.Debug("delete service group matched no rows", zap.Int64("group_id", id))
	}
	return nil
}

// CreatePackage adds a package.
func (s *CatalogService) CreatePackage(ctx context.Context, req models.PackageRequest) (*models.Package, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid package payload")
	}
	pkg := &models.Package{Title: req.Title, Description: req.Description}
	if err := s.repo.CreatePackage(ctx, pkg); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to create package")
	}
	return pkg, nil
}

// ListPackages returns all packages.
func (s *CatalogService) ListPackages(ctx context.Context) ([]models.Package, error) {
	packages, err := s.repo.ListPackages(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list packages")
	}
	return packages, nil
}

// UpdatePackage modifies a package.
func (s *CatalogService) UpdatePackage(ctx context.Context, id int64, req models.PackageRequest) (*models.Package, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid package payload")
	}

	pkg, err := s.repo.FindPackageByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "package not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch package")
	}

	pkg.Title = req.Title
	pkg.Description = req.Description
	pkg.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdatePackage(ctx, pkg); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to update package")
	}
	return pkg, nil
}

// DeletePackage removes a package.
func (s *CatalogService) DeletePackage(ctx context.Context, id int64) error {
	affected, err := s.repo.DeletePackage(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to delete package")
	}
	if affected == 0 {
		s.logger.Debug("delete package matched no rows", zap.Int64("package_id", id))
	}
	return nil
}
