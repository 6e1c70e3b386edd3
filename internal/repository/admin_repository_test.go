package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func TestGetSession(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdminRepository(db)

	expiry := time.Now().Add(time.Hour)
	rows := sqlmock.NewRows([]string{"id", "login_token", "token_expiry"}).
		AddRow(1, "abc123", expiry)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, login_token, token_expiry FROM admins WHERE id = $1 LIMIT 1")).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	session, err := repo.GetSession(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, session.LoginToken)
	assert.Equal(t, "abc123", *session.LoginToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSessionUnknownAdmin(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdminRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, login_token, token_expiry FROM admins WHERE id = $1 LIMIT 1")).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetSession(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRotateTokenWinsSwap(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdminRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE admins SET login_token = $3, token_expiry = $4, updated_at = $5 WHERE id = $1 AND login_token = $2 AND (token_expiry IS NULL OR token_expiry <= NOW())")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rotated, err := repo.RotateToken(context.Background(), 1, "stale", "fresh", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, rotated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRotateTokenLosesSwap(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdminRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE admins SET login_token = $3, token_expiry = $4, updated_at = $5 WHERE id = $1 AND login_token = $2 AND (token_expiry IS NULL OR token_expiry <= NOW())")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rotated, err := repo.RotateToken(context.Background(), 1, "stale", "fresh", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, rotated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAdmin(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdminRepository(db)

	mock.ExpectQuery("INSERT INTO admins").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

	admin := &models.Admin{
		Name:     "Priya",
		Username: "priya",
		Email:    "priya@example.com",
		Role:     "operations",
	}
	require.NoError(t, repo.Create(context.Background(), admin))
	assert.EqualValues(t, 9, admin.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAdminUniqueViolationPassedThrough(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdminRepository(db)

	pqErr := &pq.Error{Code: "23505", Constraint: "admins_username_key"}
	mock.ExpectQuery("INSERT INTO admins").WillReturnError(pqErr)

	err := repo.Create(context.Background(), &models.Admin{Username: "priya"})
	require.Error(t, err)
	var got *pq.Error
	require.True(t, errors.As(err, &got))
	assert.Equal(t, pq.ErrorCode("23505"), got.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAdminReportsAffectedRows(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdminRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM admins WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
