package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OscarDom1/community-resource-platform/internal/common"
	"github.com/OscarDom1/community-resource-platform/internal/server/models"
)

const (
	insertQ   = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*name,\s*email,\s*password_hash\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+created_at$`
	byEmailQ  = `(?s)^SELECT\s+id,\s*name,\s*email,\s*password_hash,\s*created_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1$`
	byIDQ     = `(?s)^SELECT\s+id,\s*name,\s*email,\s*password_hash,\s*created_at\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1$`
	updateQ   = `(?s)^UPDATE\s+users\s+SET\s+name\s*=\s*COALESCE\(\$1,\s*name\),\s*email\s*=\s*COALESCE\(\$2,\s*email\),\s*password_hash\s*=\s*COALESCE\(\$3,\s*password_hash\)\s+WHERE\s+id\s*=\s*\$4\s+RETURNING\s+id,\s*name,\s*email,\s*password_hash,\s*created_at$`
	userIDFix = "7d5f2c1e-6a8b-4e0f-9a51-3c2b1d0e9f87"
	emailFix  = "ann@x.com"
	hashFix   = "$2a$10$abcdefghijklmnopqrstuv"
)

var userCols = []string{"id", "name", "email", "password_hash", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(insertQ).
		WithArgs(userIDFix, "Ann", emailFix, hashFix).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	got, err := repo.Create(context.Background(), &models.User{ID: userIDFix, Name: "Ann", Email: emailFix, PasswordHash: hashFix})
	require.NoError(t, err)
	assert.Equal(t, now, got.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQ).
		WithArgs(userIDFix, "Ann", emailFix, hashFix).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), &models.User{ID: userIDFix, Name: "Ann", Email: emailFix, PasswordHash: hashFix})
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQ).
		WithArgs(userIDFix, "Ann", emailFix, hashFix).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{ID: userIDFix, Name: "Ann", Email: emailFix, PasswordHash: hashFix})
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
	assert.Regexp(t, `db error: .*db down`, err.Error())
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(byEmailQ).
		WithArgs(emailFix).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(userIDFix, "Ann", emailFix, hashFix, now))

	got, err := repo.GetByEmail(context.Background(), emailFix)
	require.NoError(t, err)
	assert.Equal(t, &models.User{ID: userIDFix, Name: "Ann", Email: emailFix, PasswordHash: hashFix, CreatedAt: now}, got)
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(byEmailQ).WithArgs("ghost@x.com").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(byIDQ).
		WithArgs(userIDFix).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(userIDFix, "Ann", emailFix, hashFix, now))
	mock.ExpectQuery(byIDQ).WithArgs("missing").WillReturnError(sql.ErrNoRows)

	got, err := repo.GetByID(context.Background(), userIDFix)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdate_CoalescesUnsetFields(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()
	name := "Annie"

	mock.ExpectQuery(updateQ).
		WithArgs(name, nil, nil, userIDFix).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(userIDFix, name, emailFix, hashFix, now))

	got, err := repo.Update(context.Background(), userIDFix, models.UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.Equal(t, emailFix, got.Email)
	assert.Equal(t, hashFix, got.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_AllFields(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()
	name, email, hash := "B", "b@x.com", "$2a$10$newhash"

	mock.ExpectQuery(updateQ).
		WithArgs(name, email, hash, userIDFix).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(userIDFix, name, email, hash, now))

	got, err := repo.Update(context.Background(), userIDFix, models.UserPatch{Name: &name, Email: &email, PasswordHash: &hash})
	require.NoError(t, err)
	assert.Equal(t, hash, got.PasswordHash)
}

func TestUpdate_NotFoundAndDuplicate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	email := "taken@x.com"

	mock.ExpectQuery(updateQ).WithArgs(nil, nil, nil, userIDFix).WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(updateQ).WithArgs(nil, email, nil, userIDFix).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	_, err := repo.Update(context.Background(), userIDFix, models.UserPatch{})
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = repo.Update(context.Background(), userIDFix, models.UserPatch{Email: &email})
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}
