package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/OscarDom1/community-resource-platform/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the session claims carried by a token: the registered claims
// (sub, exp, iat) plus the denormalized email and display name.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TokenConfig configures a TokenIssuer. Secret is read once at startup.
// Now defaults to time.Now.
type TokenConfig struct {
	Secret   []byte
	Validity time.Duration
	Now      func() time.Time
}

// TokenIssuer mints and validates HS256 session tokens. It is immutable
// after construction and safe for concurrent use.
type TokenIssuer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

func NewTokenIssuer(cfg TokenConfig) (*TokenIssuer, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token secret must not be empty")
	}
	if cfg.Validity <= 0 {
		return nil, fmt.Errorf("token validity must be positive, got %s", cfg.Validity)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)
	return &TokenIssuer{secret: secret, validity: cfg.Validity, now: now}, nil
}

// Validity is the fixed lifetime of issued tokens.
func (i *TokenIssuer) Validity() time.Duration { return i.validity }

// Issue signs a token for the user that expires validity after now.
// The expiry is returned alongside the token.
func (i *TokenIssuer) Issue(userID, email, name string) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, errors.New("token subject must not be empty")
	}
	now := i.now()
	expires := now.Add(i.validity)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Email: email,
		Name:  name,
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires.Truncate(jwt.TimePrecision), nil
}

// Validate checks the signature first and only then the claims.
// It returns common.ErrTokenExpired once exp has passed (no leeway) and
// common.ErrTokenInvalid for anything else wrong with the token.
func (i *TokenIssuer) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, i.key,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTokenInvalid, err)
	}

	v := jwt.NewValidator(
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err := v.Validate(claims); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrTokenInvalid, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", common.ErrTokenInvalid)
	}

	return claims, nil
}

func (i *TokenIssuer) key(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return i.secret, nil
}
