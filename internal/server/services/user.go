// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and profile updates.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/OscarDom1/community-resource-platform/internal/common"
	"github.com/OscarDom1/community-resource-platform/internal/server/auth"
	"github.com/OscarDom1/community-resource-platform/internal/server/models"
	"github.com/OscarDom1/community-resource-platform/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// RegisterInput is the registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput is the login payload.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.PublicUser
}

// UpdateUserInput is a partial profile update; nil fields are left alone.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
}

// UserService provides account operations:
// - Register: create users
// - Login: verify credentials and mint a session token
// - Me / Update: read and change the caller's own profile
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	issuer      *auth.TokenIssuer
	cost        int
	dummyHash   string
}

// NewUserService constructs a UserService. The bcrypt cost is used both for
// new hashes and for the dummy hash compared against on unknown emails.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, issuer *auth.TokenIssuer, cost int) (*UserService, error) {
	p, err := auth.ParsePassword(uuid.NewString())
	if err != nil {
		return nil, err
	}
	dummy, err := auth.HashPassword(p, cost)
	if err != nil {
		return nil, err
	}
	return &UserService{db: db, repomanager: m, issuer: issuer, cost: cost, dummyHash: dummy}, nil
}

// Register validates the input, hashes the password and stores the user.
// A taken email yields common.ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.PublicUser, error) {
	name, err := requireText("name", in.Name)
	if err != nil {
		return nil, err
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	p, err := auth.ParsePassword(in.Password)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(p, s.cost)
	if err != nil {
		return nil, err
	}

	user := &models.User{ID: uuid.NewString(), Name: name, Email: email, PasswordHash: hash}
	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u.Public(), nil
}

// Login checks the credentials and issues a token. Unknown email and wrong
// password both return common.ErrCredentialMismatch after one bcrypt
// comparison each.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	p, err := auth.ParsePassword(in.Password)
	if err != nil {
		return nil, common.ErrCredentialMismatch
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		auth.VerifyPassword(p, s.dummyHash)
		return nil, common.ErrCredentialMismatch
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			auth.VerifyPassword(p, s.dummyHash)
			return nil, common.ErrCredentialMismatch
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	if !auth.VerifyPassword(p, user.PasswordHash) {
		return nil, common.ErrCredentialMismatch
	}

	token, exp, err := s.issuer.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: user.Public()}, nil
}

// Me returns the public view of the session user.
func (s *UserService) Me(ctx context.Context, sess auth.Session) (*models.PublicUser, error) {
	u, err := s.repomanager.Users(s.db).GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	return u.Public(), nil
}

// Update changes the caller's own profile. id must be the session user.
func (s *UserService) Update(ctx context.Context, sess auth.Session, id string, in UpdateUserInput) (*models.PublicUser, error) {
	if err := auth.AuthorizeMutation(sess, id); err != nil {
		return nil, err
	}

	var patch models.UserPatch
	if in.Name != nil {
		name, err := requireText("name", *in.Name)
		if err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if in.Email != nil {
		email, err := normalizeEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		patch.Email = &email
	}
	if in.Password != nil {
		p, err := auth.ParsePassword(*in.Password)
		if err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(p, s.cost)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	u, err := s.repomanager.Users(s.db).Update(ctx, sess.UserID, patch)
	if err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return u.Public(), nil
}
