package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
)

// CatalogRepository manages services, service groups, and packages.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository constructs a CatalogRepository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// IsServiceCodeUnique reports whether no service uses the given code. An
// optional excludeID skips the row being edited.
func (r *CatalogRepository) IsServiceCodeUnique(ctx context.Context, code string, excludeID int64) (bool, error) {
	const query = `SELECT COUNT(*) FROM services WHERE code = $1 AND id <> $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, code, excludeID); err != nil {
		return false, fmt.Errorf("check service code uniqueness: %w", err)
	}
	return count == 0, nil
}

// CreateService inserts a service and returns the generated id.
func (r *CatalogRepository) CreateService(ctx context.Context, service *models.Service) error {
	now := time.Now().UTC()
	service.CreatedAt = now
	service.UpdatedAt = now
	const query = `INSERT INTO services (group_id, name, code, hsn_code, fee, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		service.GroupID, service.Name, service.Code, service.HSNCode, service.Fee,
		service.CreatedAt, service.UpdatedAt,
	).Scan(&service.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("create service: %w", err)
	}
	return nil
}

// ListServices returns all services.
func (r *CatalogRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	const query = `SELECT id, group_id, name, code, hsn_code, fee, created_at, updated_at FROM services`
	var services []models.Service
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

// FindServiceByID fetches a service by id.
func (r *CatalogRepository) FindServiceByID(ctx context.Context, id int64) (*models.Service, error) {
	const query = `SELECT id, group_id, name, code, hsn_code, fee, created_at, updated_at FROM services WHERE id = $1 LIMIT 1`
	var service models.Service
	if err := r.db.GetContext(ctx, &service, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find service by id: %w", err)
	}
	return &service, nil
}

// UpdateService updates mutable service fields.
func (r *CatalogRepository) UpdateService(ctx context.Context, service *models.Service) error {
	service.UpdatedAt = time.Now().UTC()
	const query = `UPDATE services SET group_id = :group_id, name = :name, code = :code, hsn_code = :hsn_code, fee = :fee, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, service); err != nil {
		if isUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("update service: %w", err)
	}
	return nil
}

// DeleteService removes a service row and reports the affected count.
func (r *CatalogRepository) DeleteService(ctx context.Context, id int64) (int64, error) {
	return r.deleteByID(ctx, "services", id)
}

// CreateServiceGroup inserts a service group.
func (r *CatalogRepository) CreateServiceGroup(ctx context.Context, group *models.ServiceGroup) error {
	now := time.Now().UTC()
	group.CreatedAt = now
	group.UpdatedAt = now
	const query = `INSERT INTO service_groups (symbol, title, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, group.Symbol, group.Title, group.CreatedAt, group.UpdatedAt).Scan(&group.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("create service group: %w", err)
	}
	return nil
}

// ListServiceGroups returns all service groups.
func (r *CatalogRepository) ListServiceGroups(ctx context.Context) ([]models.ServiceGroup, error) {
	const query = `SELECT id, symbol, title, created_at, updated_at FROM service_groups`
	var groups []models.ServiceGroup
	if err := r.db.SelectContext(ctx, &groups, query); err != nil {
		return nil, fmt.Errorf("list service groups: %w", err)
	}
	return groups, nil
}

// FindServiceGroupByID fetches a service group by id.
func (r *CatalogRepository) FindServiceGroupByID(ctx context.Context, id int64) (*models.ServiceGroup, error) {
	const query = `SELECT id, symbol, title, created_at, updated_at FROM service_groups WHERE id = $1 LIMIT 1`
	var group models.ServiceGroup
	if err := r.db.GetContext(ctx, &group, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find service group by id: %w", err)
	}
	return &group, nil
}

// UpdateServiceGroup updates mutable group fields.
func (r *CatalogRepository) UpdateServiceGroup(ctx context.Context, group *models.ServiceGroup) error {
	group.UpdatedAt = time.Now().UTC()
	const query = `UPDATE service_groups SET symbol = :symbol, title = :title, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, group); err != nil {
		return fmt.Errorf("update service group: %w", err)
	}
	return nil
}

// DeleteServiceGroup removes a group row and reports the affected count.
func (r *CatalogRepository) DeleteServiceGroup(ctx context.Context, id int64) (int64, error) {
	return r.deleteByID(ctx, "service_groups", id)
}

// CreatePackage inserts a package.
func (r *CatalogRepository) CreatePackage(ctx context.Context, pkg *models.Package) error {
	now := time.Now().UTC()
	pkg.CreatedAt = now
	pkg.UpdatedAt = now
	const query = `INSERT INTO packages (title, description, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, pkg.Title, pkg.Description, pkg.CreatedAt, pkg.UpdatedAt).Scan(&pkg.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("create package: %w", err)
	}
	return nil
}

// ListPackages returns all packages.
func (r *CatalogRepository) ListPackages(ctx context.Context) ([]models.Package, error) {
	const query = `SELECT id, title, description, created_at, updated_at FROM packages`
	var packages []models.Package
	if err := r.db.SelectContext(ctx, &packages, query); err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	return packages, nil
}

// FindPackageByID fetches a package by id.
func (r *CatalogRepository) FindPackageByID(ctx context.Context, id int64) (*models.Package, error) {
	const query = `SELECT id, title, description, created_at, updated_at FROM packages WHERE id = $1 LIMIT 1`
	var pkg models.Package
	if err := r.db.GetContext(ctx, &pkg, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find package by id: %w", err)
	}
	return &pkg, nil
}

// UpdatePackage updates mutable package fields.
func (r *CatalogRepository) UpdatePackage(ctx context.Context, pkg *models.Package) error {
	pkg.UpdatedAt = time.Now().UTC()
	const query = `UPDATE packages SET title = :title, description = :description, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, pkg); err != nil {
		return fmt.Errorf("update package: %w", err)
	}
	return nil
}

// DeletePackage removes a package row and reports the affected count.
func (r *CatalogRepository) DeletePackage(ctx context.Context, id int64) (int64, error) {
	return r.deleteByID(ctx, "packages", id)
}

func (r *CatalogRepository) deleteByID(ctx context.Context, table string, id int64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", table, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete from %s affected rows: %w", table, err)
	}
	return affected, nil
}
