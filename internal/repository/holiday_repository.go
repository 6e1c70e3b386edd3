package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
)

// HolidayRepository manages the holiday calendar and daily activity logs.
type HolidayRepository struct {
	db *sqlx.DB
}

// NewHolidayRepository constructs a HolidayRepository.
func NewHolidayRepository(db *sqlx.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// ExistsByTitle reports whether a holiday with the title already exists.
func (r *HolidayRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM holidays WHERE LOWER(title) = LOWER($1)`
	if err := r.db.GetContext(ctx, &count, query, title); err != nil {
		return false, fmt.Errorf("check holiday title uniqueness: %w", err)
	}
	return count > 0, nil
}

// Create inserts a holiday and returns the generated id. Unique violations
// on the title are passed through raw for the service to classify.
func (r *HolidayRepository) Create(ctx context.Context, holiday *models.Holiday) error {
	now := time.Now().UTC()
	holiday.CreatedAt = now
	holiday.UpdatedAt = now
	query := `INSERT INTO holidays (title, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		holiday.Title, holiday.Date, holiday.CreatedAt, holiday.UpdatedAt,
	).Scan(&holiday.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("create holiday: %w", err)
	}
	return nil
}

// List returns all holidays ordered by date.
func (r *HolidayRepository) List(ctx context.Context) ([]models.Holiday, error) {
	var holidays []models.Holiday
	query := `SELECT id, title, date, created_at, updated_at FROM holidays ORDER BY date`
	if err := r.db.SelectContext(ctx, &holidays, query); err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	return holidays, nil
}

// FindByID fetches a holiday by id.
func (r *HolidayRepository) FindByID(ctx context.Context, id int64) (*models.Holiday, error) {
	var holiday models.Holiday
	query := `SELECT id, title, date, created_at, updated_at FROM holidays WHERE id = $1 LIMIT 1`
	if err := r.db.GetContext(ctx, &holiday, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find holiday by id: %w", err)
	}
	return &holiday, nil
}

// Update updates a holiday's title and date.
func (r *HolidayRepository) Update(ctx context.Context, holiday *models.Holiday) error {
	holiday.UpdatedAt = time.Now().UTC()
	query := `UPDATE holidays SET title = :title, date = :date, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, holiday); err != nil {
		if isUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("update holiday: %w", err)
	}
	return nil
}

// Delete removes a holiday row and reports the affected count.
func (r *HolidayRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete holiday: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete holiday affected rows: %w", err)
	}
	return affected, nil
}

// CreateActivity records a daily activity entry for an admin.
func (r *HolidayRepository) CreateActivity(ctx context.Context, activity *models.DailyActivity) error {
	now := time.Now().UTC()
	activity.CreatedAt = now
	activity.UpdatedAt = now
	query := `INSERT INTO daily_activities (admin_id, date, client_name, task, remarks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		activity.AdminID, activity.Date, activity.ClientName,
		activity.Task, activity.Remarks,
		activity.CreatedAt, activity.UpdatedAt,
	).Scan(&activity.ID)
	if err != nil {
		return fmt.Errorf("create daily activity: %w", err)
	}
	return nil
}

// ListActivities returns activity entries, optionally filtered to one
// admin when adminID is non-zero, newest first.
func (r *HolidayRepository) ListActivities(ctx context.Context, adminID int64) ([]models.DailyActivity, error) {
	var activities []models.DailyActivity
	if adminID > 0 {
		query := `SELECT id, admin_id, date, client_name, task, remarks, created_at, updated_at
			FROM daily_activities WHERE admin_id = $1 ORDER BY date DESC`
		if err := r.db.SelectContext(ctx, &activities, query, adminID); err != nil {
			return nil, fmt.Errorf("list daily activities for admin: %w", err)
		}
		return activities, nil
	}
	query := `SELECT id, admin_id, date, client_name, task, remarks, created_at, updated_at
		FROM daily_activities ORDER BY date DESC`
	if err := r.db.SelectContext(ctx, &activities, query); err != nil {
		return nil, fmt.Errorf("list daily activities: %w", err)
	}
	return activities, nil
}

// FindActivityByID fetches a daily activity entry by id.
func (r *HolidayRepository) FindActivityByID(ctx context.Context, id int64) (*models.DailyActivity, error) {
	var activity models.DailyActivity
	query := `SELECT id, admin_id, date, client_name, task, remarks, created_at, updated_at
		FROM daily_activities WHERE id = $1 LIMIT 1`
	if err := r.db.GetContext(ctx, &activity, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find daily activity by id: %w", err)
	}
	return &activity, nil
}

// UpdateActivity updates a daily activity entry.
func (r *HolidayRepository) UpdateActivity(ctx context.Context, activity *models.DailyActivity) error {
	activity.UpdatedAt = time.Now().UTC()
	query := `UPDATE daily_activities SET date = :date, client_name = :client_name, task = :task, remarks = :remarks, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, activity); err != nil {
		return fmt.Errorf("update daily activity: %w", err)
	}
	return nil
}

// DeleteActivity removes a daily activity row and reports the affected count.
func (r *HolidayRepository) DeleteActivity(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM daily_activities WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete daily activity: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete daily activity affected rows: %w", err)
	}
	return affected, nil
}
