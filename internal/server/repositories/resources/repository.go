package resources

import (
	"context"

	"github.com/OscarDom1/community-resource-platform/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, resource *models.Resource) (*models.Resource, error)
	List(ctx context.Context, filter models.ResourceFilter) ([]*models.Resource, error)
	GetByID(ctx context.Context, id string) (*models.Resource, error)
	UpdateOwned(ctx context.Context, id, ownerID string, patch models.ResourcePatch) (*models.Resource, error)
	DeleteOwned(ctx context.Context, id, ownerID string) error
}
