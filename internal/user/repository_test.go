package user

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupUserMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func userColumns() []string {
	return []string{"id", "name", "email", "password_hash", "role", "id_number", "contact", "created_at"}
}

func TestCreateUser(t *testing.T) {
	repo, mock, closer := setupUserMock(t)
	defer closer()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (name, email, password_hash, role, id_number, contact)")).
		WithArgs("Rahim", "rahim@campus.edu", "hash", "student", "ST-1021", "+8801700000000").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(1, "Rahim", "rahim@campus.edu", "hash", "student", "ST-1021", "+8801700000000", time.Now()))

	user, err := repo.Create(context.Background(), "Rahim", "rahim@campus.edu", "hash", "student", "ST-1021", "+8801700000000")
	require.NoError(t, err)
	require.Equal(t, 1, user.ID)
	require.Equal(t, "student", user.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, mock, closer := setupUserMock(t)
	defer closer()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("missing@campus.edu").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "missing@campus.edu")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailExists(t *testing.T) {
	repo, mock, closer := setupUserMock(t)
	defer closer()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)")).
		WithArgs("rahim@campus.edu").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "rahim@campus.edu")
	require.NoError(t, err)
	require.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIDNumberExists(t *testing.T) {
	repo, mock, closer := setupUserMock(t)
	defer closer()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE id_number = $1)")).
		WithArgs("ST-1021").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.IDNumberExists(context.Background(), "ST-1021")
	require.NoError(t, err)
	require.False(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}
