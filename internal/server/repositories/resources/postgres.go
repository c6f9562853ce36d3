// Package resources provides the PostgreSQL-backed resource repository.
// Every mutation carries the owner in its WHERE clause, so the ownership
// check and the write happen in one statement.
package resources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/OscarDom1/community-resource-platform/internal/common"
	"github.com/OscarDom1/community-resource-platform/internal/dbx"
	"github.com/OscarDom1/community-resource-platform/internal/server/models"
)

const resourceColumns = "id, title, description, available, owner_id, created_at"

// PostgresRepository implements resource storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts resource and fills in CreatedAt.
func (r *PostgresRepository) Create(ctx context.Context, resource *models.Resource) (*models.Resource, error) {
	query :=
		`INSERT INTO resources (id, title, description, available, owner_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		resource.ID, resource.Title, resource.Description, resource.Available, resource.OwnerID).
		Scan(&resource.CreatedAt)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return resource, nil
}

// List returns resources matching filter, newest first.
func (r *PostgresRepository) List(ctx context.Context, filter models.ResourceFilter) ([]*models.Resource, error) {
	var (
		conds []string
		args  []any
	)
	if filter.OwnerID != "" {
		args = append(args, filter.OwnerID)
		conds = append(conds, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if filter.Available != nil {
		args = append(args, *filter.Available)
		conds = append(conds, fmt.Sprintf("available = $%d", len(args)))
	}

	query := "SELECT " + resourceColumns + " FROM resources"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	result := make([]*models.Resource, 0)
	for rows.Next() {
		var item models.Resource
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Available, &item.OwnerID, &item.CreatedAt); err != nil {
			return nil, dbx.MapError(err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}
	return result, nil
}

// GetByID returns one resource; common.ErrNotFound if absent.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Resource, error) {
	query := "SELECT " + resourceColumns + " FROM resources WHERE id = $1"

	var item models.Resource
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&item.ID, &item.Title, &item.Description, &item.Available, &item.OwnerID, &item.CreatedAt)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return &item, nil
}

// UpdateOwned merges patch into the resource if and only if ownerID owns
// it. No matching row, whether missing or foreign, yields
// common.ErrOwnershipDenied.
func (r *PostgresRepository) UpdateOwned(ctx context.Context, id, ownerID string, patch models.ResourcePatch) (*models.Resource, error) {
	query :=
		`UPDATE resources
		 SET title = COALESCE($1, title),
		     description = COALESCE($2, description),
		     available = COALESCE($3, available)
		 WHERE id = $4 AND owner_id = $5
		 RETURNING ` + resourceColumns

	var item models.Resource
	err := r.db.QueryRowContext(ctx, query, patch.Title, patch.Description, patch.Available, id, ownerID).
		Scan(&item.ID, &item.Title, &item.Description, &item.Available, &item.OwnerID, &item.CreatedAt)
	if err != nil {
		err = dbx.MapError(err)
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrOwnershipDenied
		}
		return nil, err
	}
	return &item, nil
}

// DeleteOwned removes the resource if and only if ownerID owns it.
// Zero rows affected yields common.ErrOwnershipDenied.
func (r *PostgresRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM resources WHERE id = $1 AND owner_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return dbx.MapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrOwnershipDenied
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
