package auth

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

// UserStore is the slice of the credential store the provider needs.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string, criteria ...repository.SelectCriteria) (*User, error)
	TouchLastSeen(ctx context.Context, id string) error
}

// UserProvider resolves identities against the users repository
type UserProvider struct {
	store  UserStore
	logger Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserStore) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

// VerifyIdentity will find the user, compare to the password, and return
// the identity. Unknown emails and wrong passwords are indistinguishable.
func (u *UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	user, err := u.store.GetByEmail(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := ensureAuthenticatableUser(user); err != nil {
		return nil, err
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := u.store.TouchLastSeen(ctx, user.ID.String()); err != nil {
		u.logger.Warn("failed to track last seen", "error", err)
	}

	return IdentityFromUser(user), nil
}

// ResolveIdentity maps a validated session subject back to a live user.
// Credentials issued before the last password change are rejected, as
// are disabled accounts. Failures are uniform so callers leak nothing.
func (u *UserProvider) ResolveIdentity(ctx context.Context, id string, issuedAt time.Time) (Identity, error) {
	user, err := u.store.GetByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrUnauthenticated
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during session resolution")
	}

	if user.DidPasswordChange(issuedAt) {
		return nil, ErrUnauthenticated
	}

	if err := ensureAuthenticatableUser(user); err != nil {
		return nil, err
	}

	return IdentityFromUser(user), nil
}

// ensureAuthenticatableUser blocks banned and deactivated accounts.
// Pending accounts may authenticate; verification gates member surfaces
// through RequireStatus instead.
func ensureAuthenticatableUser(user *User) error {
	if user == nil {
		return ErrInvalidCredentials
	}

	if user.IsBanned() || user.IsInactive() {
		return ErrAccountDisabled
	}

	return nil
}
