// Package common defines shared constants and sentinel errors used across
// the server and client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrStoreUnavailable = errors.New("store unavailable")

	// Credential errors. Unknown email and wrong password both report
	// ErrCredentialMismatch.
	ErrCredentialMismatch = errors.New("credential mismatch")
	ErrHashingFailure     = errors.New("hashing failure")

	// Token errors. Both surface to clients as "unauthorized".
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// ErrOwnershipDenied is reported for missing and foreign resources alike.
	ErrOwnershipDenied = errors.New("ownership denied")

	// Input validation.
	ErrValidation = errors.New("validation error")
)
