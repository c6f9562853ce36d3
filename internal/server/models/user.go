// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. PasswordHash holds the bcrypt hash only and
// is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicUser is the only user view sent to clients.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Public strips the credential.
func (u *User) Public() *PublicUser {
	return &PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

// UserPatch is a partial user update; nil fields keep the stored value.
// PasswordHash must already be hashed.
type UserPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
}
