package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
)

// AuditRepository appends activity and login log rows. Both tables are
// write-only from the application's perspective.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository creates a new instance of AuditRepository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateActivityLog appends an activity log row.
func (r *AuditRepository) CreateActivityLog(ctx context.Context, log *models.ActivityLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO admin_activity_logs (admin_id, module, action, result, payload, error, ip, ip_version, created_at)
		VALUES (:admin_id, :module, :action, :result, :payload, :error, :ip, :ip_version, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("create activity log: %w", err)
	}
	return nil
}

// CreateLoginLog appends a login log row.
func (r *AuditRepository) CreateLoginLog(ctx context.Context, log *models.LoginLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO admin_login_logs (admin_id, action, result, error, ip, ip_version, created_at)
		VALUES (:admin_id, :action, :result, :error, :ip, :ip_version, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("create login log: %w", err)
	}
	return nil
}
