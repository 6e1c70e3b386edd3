package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
)

// BillingContactRepository manages the per-customer billing contact rosters:
// billing SPOCs, billing escalations, escalation managers and authorized
// details. The four tables share a shape, so queries are parameterized by
// the contact type's table name.
type BillingContactRepository struct {
	db *sqlx.DB
}

// NewBillingContactRepository constructs a BillingContactRepository.
func NewBillingContactRepository(db *sqlx.DB) *BillingContactRepository {
	return &BillingContactRepository{db: db}
}

// Create inserts a billing contact and returns the generated id.
func (r *BillingContactRepository) Create(ctx context.Context, contactType models.BillingContactType, contact *models.BillingContact) error {
	now := time.Now().UTC()
	contact.CreatedAt = now
	contact.UpdatedAt = now
	query := fmt.Sprintf(`INSERT INTO %s (customer_id, name, designation, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`, contactType.Table())
	err := r.db.QueryRowContext(ctx, query,
		contact.CustomerID, contact.Name, contact.Designation,
		contact.Phone, contact.Email, contact.CreatedAt, contact.UpdatedAt,
	).Scan(&contact.ID)
	if err != nil {
		return fmt.Errorf("create %s: %w", contactType, err)
	}
	return nil
}

// List returns contacts, optionally filtered to one customer when
// customerID is non-zero.
func (r *BillingContactRepository) List(ctx context.Context, contactType models.BillingContactType, customerID int64) ([]models.BillingContact, error) {
	var contacts []models.BillingContact
	if customerID > 0 {
		query := fmt.Sprintf(`SELECT id, customer_id, name, designation, phone, email, created_at, updated_at FROM %s WHERE customer_id = $1`, contactType.Table())
		if err := r.db.SelectContext(ctx, &contacts, query, customerID); err != nil {
			return nil, fmt.Errorf("list %s for customer: %w", contactType, err)
		}
		return contacts, nil
	}
	query := fmt.Sprintf(`SELECT id, customer_id, name, designation, phone, email, created_at, updated_at FROM %s`, contactType.Table())
	if err := r.db.SelectContext(ctx, &contacts, query); err != nil {
		return nil, fmt.Errorf("list %s: %w", contactType, err)
	}
	return contacts, nil
}

// FindByID fetches a billing contact by id.
func (r *BillingContactRepository) FindByID(ctx context.Context, contactType models.BillingContactType, id int64) (*models.BillingContact, error) {
	query := fmt.Sprintf(`SELECT id, customer_id, name, designation, phone, email, created_at, updated_at FROM %s WHERE id = $1 LIMIT 1`, contactType.Table())
	var contact models.BillingContact
	if err := r.db.GetContext(ctx, &contact, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find %s by id: %w", contactType, err)
	}
	return &contact, nil
}

// Update updates mutable contact fields.
func (r *BillingContactRepository) Update(ctx context.Context, contactType models.BillingContactType, contact *models.BillingContact) error {
	contact.UpdatedAt = time.Now().UTC()
	query := fmt.Sprintf(`UPDATE %s SET name = :name, designation = :designation, phone = :phone, email = :email, updated_at = :updated_at WHERE id = :id`, contactType.Table())
	if _, err := r.db.NamedExecContext(ctx, query, contact); err != nil {
		return fmt.Errorf("update %s: %w", contactType, err)
	}
	return nil
}

// Delete removes a contact row and reports the affected count.
func (r *BillingContactRepository) Delete(ctx context.Context, contactType models.BillingContactType, id int64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, contactType.Table())
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", contactType, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete %s affected rows: %w", contactType, err)
	}
	return affected, nil
}
