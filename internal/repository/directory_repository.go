package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
)

// DirectoryRepository manages the internal vendor/university/organization
// directories. The three tables share a shape, so queries are parameterized
// by the directory type's table name (a fixed internal set, never caller
// input).
type DirectoryRepository struct {
	db *sqlx.DB
}

// NewDirectoryRepository constructs a DirectoryRepository.
func NewDirectoryRepository(db *sqlx.DB) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

// ExistsByName reports whether the directory already holds the name.
func (r *DirectoryRepository) ExistsByName(ctx context.Context, dirType models.DirectoryType, name string) (bool, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE LOWER(name) = LOWER($1)`, dirType.Table())
	var count int
	if err := r.db.GetContext(ctx, &count, query, name); err != nil {
		return false, fmt.Errorf("check %s name uniqueness: %w", dirType, err)
	}
	return count > 0, nil
}

// Create inserts a directory entry and returns the generated id.
func (r *DirectoryRepository) Create(ctx context.Context, dirType models.DirectoryType, entry *models.DirectoryEntry) error {
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	query := fmt.Sprintf(`INSERT INTO %s (name, contact_person, phone, email, address, state, remarks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`, dirType.Table())
	err := r.db.QueryRowContext(ctx, query,
		entry.Name, entry.ContactPerson, entry.Phone, entry.Email,
		entry.Address, entry.State, entry.Remarks, entry.CreatedAt, entry.UpdatedAt,
	).Scan(&entry.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("create %s: %w", dirType, err)
	}
	return nil
}

// List returns all entries of the directory in storage order.
func (r *DirectoryRepository) List(ctx context.Context, dirType models.DirectoryType) ([]models.DirectoryEntry, error) {
	query := fmt.Sprintf(`SELECT id, name, contact_person, phone, email, address, state, remarks, created_at, updated_at FROM %s`, dirType.Table())
	var entries []models.DirectoryEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list %s: %w", dirType, err)
	}
	return entries, nil
}

// FindByID fetches a directory entry by id.
func (r *DirectoryRepository) FindByID(ctx context.Context, dirType models.DirectoryType, id int64) (*models.DirectoryEntry, error) {
	query := fmt.Sprintf(`SELECT id, name, contact_person, phone, email, address, state, remarks, created_at, updated_at FROM %s WHERE id = $1 LIMIT 1`, dirType.Table())
	var entry models.DirectoryEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find %s by id: %w", dirType, err)
	}
	return &entry, nil
}

// Update updates mutable entry fields.
func (r *DirectoryRepository) Update(ctx context.Context, dirType models.DirectoryType, entry *models.DirectoryEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	query := fmt.Sprintf(`UPDATE %s SET name = :name, contact_person = :contact_person, phone = :phone, email = :email, address = :address, state = :state, remarks = :remarks, updated_at = :updated_at WHERE id = :id`, dirType.Table())
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		if isUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("update %s: %w", dirType, err)
	}
	return nil
}

// Delete removes an entry row and reports the affected count.
func (r *DirectoryRepository) Delete(ctx context.Context, dirType models.DirectoryType, id int64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, dirType.Table())
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", dirType, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete %s affected rows: %w", dirType, err)
	}
	return affected, nil
}
