// Package auth holds the authentication and ownership primitives: password
// hashing, session tokens, the per-request session and the ownership guard.
package auth

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/OscarDom1/community-resource-platform/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores input beyond 72 bytes; longer passwords are refused
// rather than silently truncated.
const maxPasswordBytes = 72

// Redacted replaces a Password wherever it would otherwise be printed.
const Redacted = "[REDACTED]"

var errEmptyPassword = errors.New("password cannot be empty")

// Password is a plaintext password.
//
// It must never be persisted, logged or sent anywhere. The only things one
// can do with it are hash it and compare it against a stored hash; every
// printing and marshalling path yields Redacted.
type Password struct {
	plain []byte
}

// ParsePassword wraps s, rejecting empty and over-long input with
// common.ErrValidation.
func ParsePassword(s string) (Password, error) {
	if s == "" {
		return Password{}, fmt.Errorf("%w: %w", common.ErrValidation, errEmptyPassword)
	}
	if len(s) > maxPasswordBytes {
		return Password{}, fmt.Errorf("%w: password longer than %d bytes", common.ErrValidation, maxPasswordBytes)
	}
	return Password{plain: []byte(s)}, nil
}

// HashPassword produces a salted bcrypt hash of p at the given cost.
// Any failure is reported as common.ErrHashingFailure.
func HashPassword(p Password, cost int) (string, error) {
	if len(p.plain) == 0 {
		return "", fmt.Errorf("%w: %w", common.ErrHashingFailure, errEmptyPassword)
	}
	h, err := bcrypt.GenerateFromPassword(p.plain, cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrHashingFailure, err)
	}
	return string(h), nil
}

// VerifyPassword reports whether p matches hash. Cost and salt come from
// the hash itself and the comparison is constant-time. A malformed hash
// reports false exactly like a wrong password.
func VerifyPassword(p Password, hash string) bool {
	if len(p.plain) == 0 || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), p.plain) == nil
}

func (p Password) String() string                { return Redacted }
func (p Password) GoString() string              { return Redacted }
func (p Password) Format(f fmt.State, verb rune) { _, _ = f.Write([]byte(Redacted)) }
func (p Password) LogValue() slog.Value          { return slog.StringValue(Redacted) }
func (p Password) MarshalText() ([]byte, error)  { return []byte(Redacted), nil }
func (p Password) MarshalJSON() ([]byte, error)  { return []byte(`"` + Redacted + `"`), nil }
