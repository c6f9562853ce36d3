package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/OscarDom1/community-resource-platform/internal/common"
	"github.com/OscarDom1/community-resource-platform/internal/dbx"
	"github.com/OscarDom1/community-resource-platform/internal/server/models"
	"github.com/OscarDom1/community-resource-platform/internal/server/repositories/resources"
	"github.com/OscarDom1/community-resource-platform/internal/server/repositories/users"
)

// memStore is an in-memory stand-in for the Postgres repositories with the
// same error contract.
type memStore struct {
	mu        sync.Mutex
	users     map[string]*models.User
	resources map[string]*models.Resource
	seq       int
	err       error // returned by every call when set
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*models.User{}, resources: map[string]*models.Resource{}}
}

func (m *memStore) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memStore) Users(dbx.DBTX) users.Repository              { return (*memUsers)(m) }
func (m *memStore) Resources(dbx.DBTX) resources.Repository      { return (*memResources)(m) }

func (m *memStore) tick() time.Time {
	m.seq++
	return time.Date(2026, 1, 1, 0, 0, m.seq, 0, time.UTC)
}

type memUsers memStore

func (r *memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, x := range m.users {
		if x.Email == u.Email {
			return nil, common.ErrAlreadyExists
		}
	}
	c := *u
	c.CreatedAt = m.tick()
	m.users[c.ID] = &c
	out := c
	return &out, nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, x := range m.users {
		if x.Email == email {
			out := *x
			return &out, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	x, ok := m.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *x
	return &out, nil
}

func (r *memUsers) Update(_ context.Context, id string, p models.UserPatch) (*models.User, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	x, ok := m.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	if p.Email != nil {
		for _, o := range m.users {
			if o.ID != id && o.Email == *p.Email {
				return nil, common.ErrAlreadyExists
			}
		}
		x.Email = *p.Email
	}
	if p.Name != nil {
		x.Name = *p.Name
	}
	if p.PasswordHash != nil {
		x.PasswordHash = *p.PasswordHash
	}
	out := *x
	return &out, nil
}

type memResources memStore

func (r *memResources) Create(_ context.Context, res *models.Resource) (*models.Resource, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	c := *res
	c.CreatedAt = m.tick()
	m.resources[c.ID] = &c
	out := c
	return &out, nil
}

func (r *memResources) List(_ context.Context, f models.ResourceFilter) ([]*models.Resource, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []*models.Resource{}
	for _, x := range m.resources {
		if f.OwnerID != "" && x.OwnerID != f.OwnerID {
			continue
		}
		if f.Available != nil && x.Available != *f.Available {
			continue
		}
		c := *x
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memResources) GetByID(_ context.Context, id string) (*models.Resource, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	x, ok := m.resources[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *x
	return &out, nil
}

func (r *memResources) UpdateOwned(_ context.Context, id, ownerID string, p models.ResourcePatch) (*models.Resource, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	x, ok := m.resources[id]
	if !ok || x.OwnerID != ownerID {
		return nil, common.ErrOwnershipDenied
	}
	if p.Title != nil {
		x.Title = *p.Title
	}
	if p.Description != nil {
		x.Description = *p.Description
	}
	if p.Available != nil {
		x.Available = *p.Available
	}
	out := *x
	return &out, nil
}

func (r *memResources) DeleteOwned(_ context.Context, id, ownerID string) error {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	x, ok := m.resources[id]
	if !ok || x.OwnerID != ownerID {
		return common.ErrOwnershipDenied
	}
	delete(m.resources, id)
	return nil
}
