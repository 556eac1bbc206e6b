package auth

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Session holds attributes that are part of an auth session
type Session interface {
	GetUserID() string
	GetAudience() []string
	GetIssuer() string
	GetIssuedAt() *time.Time
}

// Identity holds the attributes of an identity
type Identity interface {
	ID() string
	Username() string
	Email() string
	Role() string
	Status() UserStatus
}

// IdentityProvider resolves identities from the credential store
type IdentityProvider interface {
	// VerifyIdentity authenticates an identifier/password pair. Failures
	// are generic: an unknown identifier and a wrong password both
	// surface as ErrInvalidCredentials.
	VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error)
	// ResolveIdentity maps an already-validated session subject back to
	// an identity, rejecting credentials issued before the last
	// password change.
	ResolveIdentity(ctx context.Context, id string, issuedAt time.Time) (Identity, error)
}

// TokenService signs and validates session tokens
type TokenService interface {
	Generate(identity Identity) (string, error)
	Validate(tokenString string) (AuthClaims, error)
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetIssuer() string
	GetAudience() []string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
