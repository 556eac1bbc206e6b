package auth

import (
	"context"
	"time"
)

// Auther implements the bearer-token session strategy: a signed,
// expiring token carrying the user id and issue time. Resolution is
// signature check + expiry check + issue-time-after-password-change
// check. This deployment uses one strategy only; there is no parallel
// server-side session store.
type Auther struct {
	provider     IdentityProvider
	tokenService TokenService
	logger       Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &Auther{
		provider:     provider,
		tokenService: tokenService,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithTokenService overrides the token service, mostly for tests.
func (s *Auther) WithTokenService(ts TokenService) *Auther {
	if ts != nil {
		s.tokenService = ts
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the credential pair and issues a session token.
func (s *Auther) Login(ctx context.Context, identifier, password string) (string, error) {
	identity, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		s.logger.Error("Login verify identity error", "error", err)
		return "", err
	}

	token, err := s.tokenService.Generate(identity)
	if err != nil {
		s.logger.Error("Login token generation error", "error", err)
		return "", err
	}

	return token, nil
}

// IssueSession creates a fresh session token for an already
// authenticated identity, e.g. right after a password reset.
func (s *Auther) IssueSession(identity Identity) (string, error) {
	return s.tokenService.Generate(identity)
}

// SessionFromToken validates the raw token and returns its session view.
func (s *Auther) SessionFromToken(raw string) (Session, error) {
	claims, err := s.tokenService.Validate(raw)
	if err != nil {
		s.logger.Error("SessionFromToken validation failed", "error", err)
		return nil, err
	}

	return sessionFromAuthClaims(claims)
}

// ResolveSession maps raw session evidence to a live identity, or fails
// closed with ErrUnauthenticated.
func (s *Auther) ResolveSession(ctx context.Context, raw string) (Identity, Session, error) {
	claims, err := s.tokenService.Validate(raw)
	if err != nil {
		if IsTokenExpiredError(err) {
			return nil, nil, ErrTokenExpired
		}
		return nil, nil, ErrUnauthenticated
	}

	session, err := sessionFromAuthClaims(claims)
	if err != nil {
		return nil, nil, ErrUnauthenticated
	}

	issuedAt := time.Time{}
	if session.GetIssuedAt() != nil {
		issuedAt = *session.GetIssuedAt()
	}

	identity, err := s.provider.ResolveIdentity(ctx, session.GetUserID(), issuedAt)
	if err != nil {
		return nil, nil, err
	}

	return identity, session, nil
}
