package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
)

const adminColumns = `id, name, username, email, mobile, password_hash, role, permissions, status, two_factor_enabled, login_token, token_expiry, otp, otp_expiry, date_of_joining, profile_picture, created_at, updated_at`

// AdminRepository provides database access for administrators, including the
// session-token columns driving the validation-and-rotation protocol.
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository creates a new instance of AdminRepository.
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// FindByID returns an admin by identifier.
func (r *AdminRepository) FindByID(ctx context.Context, id int64) (*models.Admin, error) {
	query := fmt.Sprintf(`SELECT %s FROM admins WHERE id = $1 LIMIT 1`, adminColumns)
	var admin models.Admin
	if err := r.db.GetContext(ctx, &admin, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find admin by id: %w", err)
	}
	return &admin, nil
}

// FindByUsername returns an admin by username or email address.
func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	query := fmt.Sprintf(`SELECT %s FROM admins WHERE username = $1 OR email = $1 LIMIT 1`, adminColumns)
	var admin models.Admin
	if err := r.db.GetContext(ctx, &admin, query, username); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find admin by username: %w", err)
	}
	return &admin, nil
}

// FindByEmail returns an admin by email address.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := fmt.Sprintf(`SELECT %s FROM admins WHERE email = $1 LIMIT 1`, adminColumns)
	var admin models.Admin
	if err := r.db.GetContext(ctx, &admin, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find admin by email: %w", err)
	}
	return &admin, nil
}

// GetSession returns the session-column projection for the token protocol.
func (r *AdminRepository) GetSession(ctx context.Context, id int64) (*models.AdminSession, error) {
	const query = `SELECT id, login_token, token_expiry FROM admins WHERE id = $1 LIMIT 1`
	var session models.AdminSession
	if err := r.db.GetContext(ctx, &session, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get admin session: %w", err)
	}
	return &session, nil
}

// GetAuthorization returns the role and permissions projection for the gate.
func (r *AdminRepository) GetAuthorization(ctx context.Context, id int64) (*models.AdminAuthorization, error) {
	const query = `SELECT id, role, permissions FROM admins WHERE id = $1 LIMIT 1`
	var auth models.AdminAuthorization
	if err := r.db.GetContext(ctx, &auth, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get admin authorization: %w", err)
	}
	return &auth, nil
}

// IssueToken unconditionally replaces the stored session token, used at login
// and OTP verification. The previous token, if any, stops being valid.
func (r *AdminRepository) IssueToken(ctx context.Context, id int64, token string, expiry time.Time) error {
	const query = `UPDATE admins SET login_token = $2, token_expiry = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, token, expiry, time.Now().UTC()); err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	return nil
}

// RotateToken replaces an expired token with a compare-and-swap: the update
// only lands when the stored token still equals oldToken and is still
// expired. A NULL expiry counts as expired so rotation stays total over
// whatever state the row is in. Returns false when a concurrent caller
// rotated first.
func (r *AdminRepository) RotateToken(ctx context.Context, id int64, oldToken, newToken string, expiry time.Time) (bool, error) {
	const query = `UPDATE admins SET login_token = $3, token_expiry = $4, updated_at = $5 WHERE id = $1 AND login_token = $2 AND (token_expiry IS NULL OR token_expiry <= NOW())`
	result, err := r.db.ExecContext(ctx, query, id, oldToken, newToken, expiry, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("rotate token: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rotate token affected rows: %w", err)
	}
	return affected == 1, nil
}

// ClearToken nulls the session columns at logout.
func (r *AdminRepository) ClearToken(ctx context.Context, id int64) error {
	const query = `UPDATE admins SET login_token = NULL, token_expiry = NULL, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// SetOTP stores a two-factor code with its expiry.
func (r *AdminRepository) SetOTP(ctx context.Context, id int64, otp string, expiry time.Time) error {
	const query = `UPDATE admins SET otp = $2, otp_expiry = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, otp, expiry, time.Now().UTC()); err != nil {
		return fmt.Errorf("set otp: %w", err)
	}
	return nil
}

// ClearOTP removes a consumed or abandoned two-factor code.
func (r *AdminRepository) ClearOTP(ctx context.Context, id int64) error {
	const query = `UPDATE admins SET otp = NULL, otp_expiry = NULL, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("clear otp: %w", err)
	}
	return nil
}

// UpdatePassword updates the stored password hash.
func (r *AdminRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	const query = `UPDATE admins SET password_hash = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, passwordHash, time.Now().UTC()); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// ExistsByUsernameOrEmail reports whether an admin already uses the username
// or email. Fast-path pre-check; the unique indexes remain authoritative.
func (r *AdminRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	const query = `SELECT COUNT(*) FROM admins WHERE username = $1 OR email = $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, username, email); err != nil {
		return false, fmt.Errorf("check admin uniqueness: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new admin and returns the generated id.
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	now := time.Now().UTC()
	admin.CreatedAt = now
	admin.UpdatedAt = now
	const query = `INSERT INTO admins (name, username, email, mobile, password_hash, role, permissions, status, two_factor_enabled, date_of_joining, profile_picture, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		admin.Name, admin.Username, admin.Email, admin.Mobile, admin.PasswordHash,
		admin.Role, admin.Permissions, admin.Status, admin.TwoFactorEnabled,
		admin.DateOfJoining, admin.ProfilePicture, admin.CreatedAt, admin.UpdatedAt,
	).Scan(&admin.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}

// List returns all admins in storage order.
func (r *AdminRepository) List(ctx context.Context) ([]models.Admin, error) {
	query := fmt.Sprintf(`SELECT %s FROM admins`, adminColumns)
	var admins []models.Admin
	if err := r.db.SelectContext(ctx, &admins, query); err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

// Update updates mutable admin fields.
func (r *AdminRepository) Update(ctx context.Context, admin *models.Admin) error {
	admin.UpdatedAt = time.Now().UTC()
	const query = `UPDATE admins SET name = :name, email = :email, mobile = :mobile, role = :role, status = :status, two_factor_enabled = :two_factor_enabled, date_of_joining = :date_of_joining, profile_picture = :profile_picture, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, admin); err != nil {
		if isUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("update admin: %w", err)
	}
	return nil
}

// UpdatePermissions replaces the permissions JSON blob.
func (r *AdminRepository) UpdatePermissions(ctx context.Context, id int64, permissions []byte) error {
	const query = `UPDATE admins SET permissions = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, permissions, time.Now().UTC()); err != nil {
		return fmt.Errorf("update admin permissions: %w", err)
	}
	return nil
}

// Delete removes an admin row. The affected count is reported so callers can
// distinguish a no-op delete without a pre-check round trip.
func (r *AdminRepository) Delete(ctx context.Context, id int64) (int64, error) {
	const query = `DELETE FROM admins WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete admin: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete admin affected rows: %w", err)
	}
	return affected, nil
}
