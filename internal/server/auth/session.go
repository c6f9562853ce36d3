package auth

import "context"

// Session is the authenticated identity attached to one request. It is
// built only from validated claims; ids supplied in a request body or path
// never become a Session.
type Session struct {
	UserID string
	Email  string
	Name   string
}

// SessionFromClaims derives the session from validated token claims.
func SessionFromClaims(c *Claims) Session {
	return Session{UserID: c.Subject, Email: c.Email, Name: c.Name}
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session stored in ctx, if any.
func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	if !ok || s.UserID == "" {
		return Session{}, false
	}
	return s, true
}
