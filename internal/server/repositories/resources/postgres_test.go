package resources

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OscarDom1/community-resource-platform/internal/common"
	"github.com/OscarDom1/community-resource-platform/internal/server/models"
)

const (
	resID = "0b9c6f0e-3f5e-4a8e-9a0b-7c1d2e3f4a5b"
	ann   = "1a1a1a1a-1111-4111-8111-111111111111"
	bob   = "2b2b2b2b-2222-4222-8222-222222222222"
)

var (
	cols    = []string{"id", "title", "description", "available", "owner_id", "created_at"}
	insertQ = `(?s)^INSERT\s+INTO\s+resources\s*\(id,\s*title,\s*description,\s*available,\s*owner_id\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+created_at$`
	updateQ = `(?s)^UPDATE\s+resources\s+SET\s+title\s*=\s*COALESCE\(\$1,\s*title\),\s*description\s*=\s*COALESCE\(\$2,\s*description\),\s*available\s*=\s*COALESCE\(\$3,\s*available\)\s+WHERE\s+id\s*=\s*\$4\s+AND\s+owner_id\s*=\s*\$5\s+RETURNING\s+id,\s*title,\s*description,\s*available,\s*owner_id,\s*created_at$`
	deleteQ = `^DELETE\s+FROM\s+resources\s+WHERE\s+id\s*=\s*\$1\s+AND\s+owner_id\s*=\s*\$2$`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(insertQ).
		WithArgs(resID, "Drill", "cordless", true, ann).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	got, err := repo.Create(context.Background(), &models.Resource{
		ID: resID, Title: "Drill", Description: "cordless", Available: true, OwnerID: ann,
	})
	require.NoError(t, err)
	assert.Equal(t, now, got.CreatedAt)
	assert.Equal(t, ann, got.OwnerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQ).WillReturnError(errors.New("db is down"))

	_, err := repo.Create(context.Background(), &models.Resource{ID: resID, OwnerID: ann})
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
}

func TestList_Filters(t *testing.T) {
	now := time.Now().UTC()
	yes := true

	tests := []struct {
		name   string
		filter models.ResourceFilter
		query  string
		args   []any
	}{
		{
			name:  "no filter",
			query: `^SELECT id, title, description, available, owner_id, created_at FROM resources ORDER BY created_at DESC, id$`,
		},
		{
			name:   "owner",
			filter: models.ResourceFilter{OwnerID: ann},
			query:  `^SELECT .* FROM resources WHERE owner_id = \$1 ORDER BY created_at DESC, id$`,
			args:   []any{ann},
		},
		{
			name:   "owner and availability",
			filter: models.ResourceFilter{OwnerID: ann, Available: &yes},
			query:  `^SELECT .* FROM resources WHERE owner_id = \$1 AND available = \$2 ORDER BY created_at DESC, id$`,
			args:   []any{ann, true},
		},
		{
			name:   "availability only",
			filter: models.ResourceFilter{Available: &yes},
			query:  `^SELECT .* FROM resources WHERE available = \$1 ORDER BY created_at DESC, id$`,
			args:   []any{true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)

			rows := sqlmock.NewRows(cols).
				AddRow(resID, "Drill", "cordless", true, ann, now)
			exp := mock.ExpectQuery(tt.query)
			if len(tt.args) > 0 {
				args := make([]driver.Value, 0, len(tt.args))
				for _, a := range tt.args {
					args = append(args, a)
				}
				exp = exp.WithArgs(args...)
			}
			exp.WillReturnRows(rows)

			got, err := repo.List(context.Background(), tt.filter)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "Drill", got[0].Title)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestList_EmptyIsNotNil(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`^SELECT .* FROM resources`).WillReturnRows(sqlmock.NewRows(cols))

	got, err := repo.List(context.Background(), models.ResourceFilter{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_Errors(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`^SELECT .* FROM resources`).WillReturnError(errors.New("boom"))

	_, err := repo.List(context.Background(), models.ResourceFilter{})
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)

	mock.ExpectQuery(`^SELECT .* FROM resources`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(resID, "Drill", "cordless", true, ann, time.Now()).
			RowError(0, errors.New("row broke")))

	_, err = repo.List(context.Background(), models.ResourceFilter{})
	assert.Error(t, err)
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`^SELECT .* FROM resources WHERE id = \$1$`).
		WithArgs(resID).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(resID, "Drill", "cordless", false, ann, now))
	mock.ExpectQuery(`^SELECT .* FROM resources WHERE id = \$1$`).
		WithArgs(resID).
		WillReturnError(sql.ErrNoRows)

	got, err := repo.GetByID(context.Background(), resID)
	require.NoError(t, err)
	assert.Equal(t, &models.Resource{ID: resID, Title: "Drill", Description: "cordless", Available: false, OwnerID: ann, CreatedAt: now}, got)

	_, err = repo.GetByID(context.Background(), resID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateOwned_OnlyProvidedFields(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()
	title := "Hammer drill"

	mock.ExpectQuery(updateQ).
		WithArgs(title, nil, nil, resID, ann).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(resID, title, "cordless", true, ann, now))

	got, err := repo.UpdateOwned(context.Background(), resID, ann, models.ResourcePatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
	assert.Equal(t, "cordless", got.Description)
	assert.True(t, got.Available)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOwned_ForeignOrMissingIsDenied(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	avail := false

	mock.ExpectQuery(updateQ).
		WithArgs(nil, nil, false, resID, bob).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateOwned(context.Background(), resID, bob, models.ResourcePatch{Available: &avail})
	assert.ErrorIs(t, err, common.ErrOwnershipDenied)
	assert.NotErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateOwned_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(updateQ).WillReturnError(errors.New("db is down"))

	_, err := repo.UpdateOwned(context.Background(), resID, ann, models.ResourcePatch{})
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
}

func TestDeleteOwned(t *testing.T) {
	tests := []struct {
		name    string
		result  driver.Result
		execErr error
		want    error
		wantMsg string
	}{
		{name: "deleted", result: sqlmock.NewResult(0, 1)},
		{name: "foreign or missing", result: sqlmock.NewResult(0, 0), want: common.ErrOwnershipDenied},
		{name: "exec error", execErr: errors.New("db is down"), want: common.ErrStoreUnavailable},
		{name: "rows affected error", result: sqlmock.NewErrorResult(errors.New("rows-err")), wantMsg: `rows affected error: .*rows-err`},
		{name: "too many rows", result: sqlmock.NewResult(0, 2), wantMsg: `unexpected rows affected: 2`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)

			exp := mock.ExpectExec(deleteQ).WithArgs(resID, ann)
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(tt.result)
			}

			err := repo.DeleteOwned(context.Background(), resID, ann)
			switch {
			case tt.want != nil:
				assert.ErrorIs(t, err, tt.want)
			case tt.wantMsg != "":
				require.Error(t, err)
				assert.Regexp(t, regexp.MustCompile(tt.wantMsg), err.Error())
			default:
				assert.NoError(t, err)
			}
		})
	}
}
