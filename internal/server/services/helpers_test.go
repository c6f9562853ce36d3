package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/OscarDom1/community-resource-platform/internal/server/auth"
)

func newIssuer(t *testing.T) *auth.TokenIssuer {
	t.Helper()
	iss, err := auth.NewTokenIssuer(auth.TokenConfig{Secret: []byte("test-secret"), Validity: time.Hour})
	require.NoError(t, err)
	return iss
}

func newServices(t *testing.T) (*UserService, *ResourceService, *memStore, *auth.TokenIssuer) {
	t.Helper()
	store := newMemStore()
	iss := newIssuer(t)
	us, err := NewUserService(nil, store, iss, bcrypt.MinCost)
	require.NoError(t, err)
	return us, NewResourceService(nil, store), store, iss
}

func ptr[T any](v T) *T { return &v }
