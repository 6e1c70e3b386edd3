package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
)

// TrackerRepository persists client master tracker submissions: the raw
// nested form alongside its flattened projection.
type TrackerRepository struct {
	db *sqlx.DB
}

// NewTrackerRepository constructs a TrackerRepository.
func NewTrackerRepository(db *sqlx.DB) *TrackerRepository {
	return &TrackerRepository{db: db}
}

// Create inserts a tracker submission and returns the generated id.
func (r *TrackerRepository) Create(ctx context.Context, submission *models.TrackerSubmission) error {
	now := time.Now().UTC()
	submission.CreatedAt = now
	query := `INSERT INTO tracker_submissions (customer_id, submitted_by, raw_form, flat_fields, flat_annexures, created_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		submission.CustomerID, submission.SubmittedBy, submission.RawForm,
		submission.FlatFields, submission.FlatAnnexures, submission.CreatedAt,
	).Scan(&submission.ID)
	if err != nil {
		return fmt.Errorf("create tracker submission: %w", err)
	}
	return nil
}

// List returns submissions, optionally filtered to one customer when
// customerID is non-zero, newest first.
func (r *TrackerRepository) List(ctx context.Context, customerID int64) ([]models.TrackerSubmission, error) {
	var submissions []models.TrackerSubmission
	if customerID > 0 {
		query := `SELECT id, customer_id, submitted_by, raw_form, flat_fields, flat_annexures, created_at
			FROM tracker_submissions WHERE customer_id = $1 ORDER BY created_at DESC`
		if err := r.db.SelectContext(ctx, &submissions, query, customerID); err != nil {
			return nil, fmt.Errorf("list tracker submissions for customer: %w", err)
		}
		return submissions, nil
	}
	query := `SELECT id, customer_id, submitted_by, raw_form, flat_fields, flat_annexures, created_at
		FROM tracker_submissions ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &submissions, query); err != nil {
		return nil, fmt.Errorf("list tracker submissions: %w", err)
	}
	return submissions, nil
}

// FindByID fetches a tracker submission by id.
func (r *TrackerRepository) FindByID(ctx context.Context, id int64) (*models.TrackerSubmission, error) {
	var submission models.TrackerSubmission
	query := `SELECT id, customer_id, submitted_by, raw_form, flat_fields, flat_annexures, created_at
		FROM tracker_submissions WHERE id = $1 LIMIT 1`
	if err := r.db.GetContext(ctx, &submission, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find tracker submission by id: %w", err)
	}
	return &submission, nil
}

// Delete removes a submission row and reports the affected count.
func (r *TrackerRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tracker_submissions WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete tracker submission: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete tracker submission affected rows: %w", err)
	}
	return affected, nil
}
