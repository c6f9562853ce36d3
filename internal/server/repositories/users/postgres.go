// Package users provides the PostgreSQL-backed user repository.
package users

import (
	"context"

	"github.com/OscarDom1/community-resource-platform/internal/dbx"
	"github.com/OscarDom1/community-resource-platform/internal/server/models"
)

// PostgresRepository implements user storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts user and fills in CreatedAt. A taken email yields
// common.ErrAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (id, name, email, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash).Scan(&user.CreatedAt)
	if err != nil {
		return nil, dbx.MapError(err)
	}

	return user, nil
}

// GetByEmail looks a user up by login email; common.ErrNotFound if absent.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash, created_at FROM users
		 WHERE email = $1`

	return r.scanOne(ctx, query, email)
}

// GetByID looks a user up by id; common.ErrNotFound if absent.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash, created_at FROM users
		 WHERE id = $1`

	return r.scanOne(ctx, query, id)
}

// Update applies patch as a coalesce merge in a single statement and
// returns the stored row. The patch must carry a hash, never a plaintext
// password.
func (r *PostgresRepository) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	query :=
		`UPDATE users
		 SET name = COALESCE($1, name),
		     email = COALESCE($2, email),
		     password_hash = COALESCE($3, password_hash)
		 WHERE id = $4
		 RETURNING id, name, email, password_hash, created_at`

	return r.scanOne(ctx, query, patch.Name, patch.Email, patch.PasswordHash, id)
}

func (r *PostgresRepository) scanOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return user, nil
}
