package users

import (
	"context"

	"github.com/OscarDom1/community-resource-platform/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
}
