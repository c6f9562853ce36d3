package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/OscarDom1/community-resource-platform/internal/common"
	"github.com/OscarDom1/community-resource-platform/internal/server/auth"
	"github.com/OscarDom1/community-resource-platform/internal/server/models"
	"github.com/OscarDom1/community-resource-platform/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// CreateResourceInput is the create payload. Available defaults to true.
type CreateResourceInput struct {
	Title       string
	Description string
	Available   *bool
}

// ResourceService implements resource CRUD. Reads are public; every
// mutation runs as the session user and only touches rows it owns.
type ResourceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewResourceService(db *sql.DB, m repomanager.RepositoryManager) *ResourceService {
	return &ResourceService{db: db, repomanager: m}
}

// Create stores a new resource owned by the session user.
func (s *ResourceService) Create(ctx context.Context, sess auth.Session, in CreateResourceInput) (*models.Resource, error) {
	if sess.UserID == "" {
		return nil, common.ErrTokenInvalid
	}
	title, err := requireText("title", in.Title)
	if err != nil {
		return nil, err
	}
	available := true
	if in.Available != nil {
		available = *in.Available
	}

	r := &models.Resource{
		ID:          uuid.NewString(),
		Title:       title,
		Description: in.Description,
		Available:   available,
		OwnerID:     sess.UserID,
	}
	out, err := s.repomanager.Resources(s.db).Create(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("error creating resource: %w", err)
	}
	return out, nil
}

// List returns resources newest first, optionally filtered.
func (s *ResourceService) List(ctx context.Context, filter models.ResourceFilter) ([]*models.Resource, error) {
	if filter.OwnerID != "" && !validID(filter.OwnerID) {
		return nil, fmt.Errorf("%w: invalid owner_id", common.ErrValidation)
	}
	out, err := s.repomanager.Resources(s.db).List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing resources: %w", err)
	}
	return out, nil
}

// Get returns one resource; malformed ids read as common.ErrNotFound.
func (s *ResourceService) Get(ctx context.Context, id string) (*models.Resource, error) {
	if !validID(id) {
		return nil, common.ErrNotFound
	}
	out, err := s.repomanager.Resources(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error searching resource: %w", err)
	}
	return out, nil
}

// Update applies a partial update to a resource owned by the session user.
// Missing, foreign and malformed ids all yield common.ErrOwnershipDenied.
func (s *ResourceService) Update(ctx context.Context, sess auth.Session, id string, patch models.ResourcePatch) (*models.Resource, error) {
	if sess.UserID == "" || !validID(id) {
		return nil, common.ErrOwnershipDenied
	}
	if patch.Title != nil {
		title, err := requireText("title", *patch.Title)
		if err != nil {
			return nil, err
		}
		patch.Title = &title
	}
	out, err := s.repomanager.Resources(s.db).UpdateOwned(ctx, id, sess.UserID, patch)
	if err != nil {
		if errors.Is(err, common.ErrOwnershipDenied) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating resource: %w", err)
	}
	return out, nil
}

// Delete removes a resource owned by the session user.
func (s *ResourceService) Delete(ctx context.Context, sess auth.Session, id string) error {
	if sess.UserID == "" || !validID(id) {
		return common.ErrOwnershipDenied
	}
	if err := s.repomanager.Resources(s.db).DeleteOwned(ctx, id, sess.UserID); err != nil {
		if errors.Is(err, common.ErrOwnershipDenied) {
			return err
		}
		return fmt.Errorf("error deleting resource: %w", err)
	}
	return nil
}
