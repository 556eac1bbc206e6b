package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"

	"github.com/genkan-app/genkan/internal/mailer"
)

// LifecycleStore is the slice of the credential store the lifecycle
// controller needs. The bun-backed Users repository satisfies it.
type LifecycleStore interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string, criteria ...repository.SelectCriteria) (*User, error)
	ListIdentifiersForName(ctx context.Context, name string) ([]string, error)
	Register(ctx context.Context, user *User) (*User, error)
	SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) (*User, error)
	SaveToken(ctx context.Context, id uuid.UUID, purpose TokenPurpose, digest string, expiresAt time.Time) error
	ClearToken(ctx context.Context, id uuid.UUID, purpose TokenPurpose) error
	ConsumeToken(ctx context.Context, purpose TokenPurpose, digest string) (*User, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status UserStatus) (*User, error)
}

// EmailSender is the delivery collaborator. The controller awaits the
// result before deciding whether to roll a token back.
type EmailSender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// Lifecycle orchestrates signup, login, password change/reset, and
// email verification on top of the store, the token issuer, and the
// session authenticator.
//
// Every state transition is one update to one user row; racing
// re-issues keep last-write-wins semantics.
type Lifecycle struct {
	repo            LifecycleStore
	auther          *Auther
	mail            EmailSender
	logger          Logger
	now             func() time.Time
	baseURL         string
	allocIdentifier func(used []string) (string, error)
	avatarURL       func(name, identifier string) string
}

type LifecycleOption func(*Lifecycle)

func WithLifecycleLogger(l Logger) LifecycleOption {
	return func(c *Lifecycle) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithLifecycleClock injects a custom clock (useful for expiry tests).
func WithLifecycleClock(clock func() time.Time) LifecycleOption {
	return func(c *Lifecycle) {
		if clock != nil {
			c.now = clock
		}
	}
}

// WithIdentifierAllocator overrides the display-name suffix allocator.
func WithIdentifierAllocator(alloc func(used []string) (string, error)) LifecycleOption {
	return func(c *Lifecycle) {
		if alloc != nil {
			c.allocIdentifier = alloc
		}
	}
}

// WithAvatarURL sets the avatar URL builder used for new accounts.
func WithAvatarURL(build func(name, identifier string) string) LifecycleOption {
	return func(c *Lifecycle) {
		if build != nil {
			c.avatarURL = build
		}
	}
}

// NewLifecycle creates the account lifecycle controller. baseURL is the
// public origin used in the emailed verification and reset links.
func NewLifecycle(repo LifecycleStore, auther *Auther, mail EmailSender, baseURL string, opts ...LifecycleOption) *Lifecycle {
	c := &Lifecycle{
		repo:            repo,
		auther:          auther,
		mail:            mail,
		logger:          defLogger{},
		now:             time.Now,
		baseURL:         baseURL,
		allocIdentifier: func([]string) (string, error) { return "0000", nil },
		avatarURL:       func(string, string) string { return "" },
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// SignupInput carries the typed signup payload.
type SignupInput struct {
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	Password        string         `json:"password"`
	PasswordConfirm string         `json:"password_confirm"`
	MatchSettings   *MatchSettings `json:"match_settings"`
}

// Signup creates a pending account, issues a verification token, and
// emails the confirmation link. If delivery fails the token is rolled
// back and the account stays pending so verification can be resent.
func (c *Lifecycle) Signup(ctx context.Context, input SignupInput) (*User, error) {
	if err := validatePasswordPair(input.Password, input.PasswordConfirm); err != nil {
		return nil, err
	}

	if _, err := c.repo.GetByEmail(ctx, input.Email); err == nil {
		return nil, ErrDuplicateIdentity
	} else if !errors.IsNotFound(err) {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check for existing user")
	}

	used, err := c.repo.ListIdentifiersForName(ctx, input.Name)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list used identifiers")
	}

	identifier, err := c.allocIdentifier(used)
	if err != nil {
		return nil, ErrDuplicateIdentity
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	plain, digest, err := GenerateToken()
	if err != nil {
		return nil, err
	}

	expiresAt := c.now().Add(TokenTTL)
	user := &User{
		Name:                 input.Name,
		Identifier:           identifier,
		Email:                input.Email,
		PasswordHash:         hash,
		Status:               UserStatusPending,
		VerifyTokenHash:      digest,
		VerifyTokenExpiresAt: &expiresAt,
		MatchSettings:        input.MatchSettings,
	}
	user.Photo = c.avatarURL(user.Name, user.Identifier)

	created, err := c.repo.Register(ctx, user)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConflict, "could not create user")
	}

	if err := c.sendVerificationEmail(ctx, created.Email, plain); err != nil {
		// no valid-but-undelivered token may linger
		if rbErr := c.repo.ClearToken(ctx, created.ID, TokenPurposeVerify); rbErr != nil {
			c.logger.Error("failed to roll back verification token", "error", rbErr)
		}
		return nil, ErrEmailDelivery
	}

	return created, nil
}

// Login authenticates the credential pair and returns a session token.
// Unverified (pending) users may authenticate; verification gates the
// member-only surfaces through RequireStatus instead.
func (c *Lifecycle) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrValidation
	}

	return c.auther.Login(ctx, email, password)
}

// ForgotPassword issues a reset token and emails it.
//
// An unknown email surfaces as NotFound, matching the upstream
// behavior; this leaks account existence and masking it would be an
// observable change.
func (c *Lifecycle) ForgotPassword(ctx context.Context, email string) error {
	user, err := c.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return ErrUserNotFound
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user for password reset")
	}

	plain, digest, err := GenerateToken()
	if err != nil {
		return err
	}

	if err := c.repo.SaveToken(ctx, user.ID, TokenPurposeReset, digest, c.now().Add(TokenTTL)); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to store reset token")
	}

	resetURL := fmt.Sprintf("%s/api/v1/users/reset-password/%s", c.baseURL, plain)
	msg := mailer.Message{
		To:      user.Email,
		Subject: "Password Reset Request (valid for 30 minutes!)",
		Body: fmt.Sprintf("Forgot your password? Submit a PATCH request with your new password and confirmation password to: %s\n"+
			"You can ignore this email if you did not forget your password or if you remembered it.", resetURL),
	}

	if err := c.mail.Send(ctx, msg); err != nil {
		if rbErr := c.repo.ClearToken(ctx, user.ID, TokenPurposeReset); rbErr != nil {
			c.logger.Error("failed to roll back reset token", "error", rbErr)
		}
		return ErrEmailDelivery
	}

	return nil
}

// ResetPassword consumes the reset token, stores the new credential,
// and issues a fresh session. Sessions issued before the change are
// rejected from here on.
func (c *Lifecycle) ResetPassword(ctx context.Context, plainToken, password, passwordConfirm string) (string, error) {
	if err := validatePasswordPair(password, passwordConfirm); err != nil {
		return "", err
	}

	user, err := c.repo.ConsumeToken(ctx, TokenPurposeReset, HashToken(plainToken))
	if err != nil {
		if errors.IsNotFound(err) {
			return "", ErrInvalidOrExpiredToken
		}
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to consume reset token")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", err
	}

	updated, err := c.repo.SetPassword(ctx, user.ID, hash)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to update user password")
	}

	return c.auther.IssueSession(IdentityFromUser(updated))
}

// UpdatePassword changes the credential for an already-resolved session.
func (c *Lifecycle) UpdatePassword(ctx context.Context, userID uuid.UUID, current, password, passwordConfirm string) (string, error) {
	user, err := c.repo.GetByID(ctx, userID.String())
	if err != nil {
		if errors.IsNotFound(err) {
			return "", ErrInvalidCredentials
		}
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user for password update")
	}

	if err := ComparePasswordAndHash(current, user.PasswordHash); err != nil {
		return "", ErrInvalidCredentials
	}

	if err := validatePasswordPair(password, passwordConfirm); err != nil {
		return "", err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", err
	}

	updated, err := c.repo.SetPassword(ctx, user.ID, hash)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to update user password")
	}

	return c.auther.IssueSession(IdentityFromUser(updated))
}

// resendCooldown is the minimum gap between verification emails.
const resendCooldown = "1m"

// ResendVerification re-issues the verification token for a pending
// account, overwriting any outstanding one. Tokens younger than the
// cooldown are left alone so a double-click does not invalidate the
// email already in flight.
func (c *Lifecycle) ResendVerification(ctx context.Context, email string) error {
	user, err := c.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return ErrUserNotFound
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user for verification")
	}

	if !user.IsPending() {
		return ErrAlreadyVerified
	}

	// a token minted moments ago is still in the member's inbox
	if digest, expiresAt := user.ActiveTokenPair(TokenPurposeVerify); digest != "" && expiresAt != nil {
		issuedAt := expiresAt.Add(-TokenTTL)
		if recent, err := IsWithinThresholdPeriod(issuedAt, resendCooldown); err == nil && recent {
			return ErrResendThrottled
		}
	}

	plain, digest, err := GenerateToken()
	if err != nil {
		return err
	}

	if err := c.repo.SaveToken(ctx, user.ID, TokenPurposeVerify, digest, c.now().Add(TokenTTL)); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to store verification token")
	}

	if err := c.sendVerificationEmail(ctx, user.Email, plain); err != nil {
		if rbErr := c.repo.ClearToken(ctx, user.ID, TokenPurposeVerify); rbErr != nil {
			c.logger.Error("failed to roll back verification token", "error", rbErr)
		}
		return ErrEmailDelivery
	}

	return nil
}

// VerifyAccount consumes the verification token and moves the account
// from pending to verified. A verify token arriving for a non-pending
// account indicates replay and is an error, not a no-op.
func (c *Lifecycle) VerifyAccount(ctx context.Context, plainToken string) (*User, error) {
	user, err := c.repo.ConsumeToken(ctx, TokenPurposeVerify, HashToken(plainToken))
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrInvalidOrExpiredToken
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to consume verification token")
	}

	if !user.IsPending() {
		return nil, ErrAlreadyVerified
	}

	updated, err := c.repo.UpdateStatus(ctx, user.ID, UserStatusVerified)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to mark account verified")
	}

	return updated, nil
}

// Deactivate flags the caller's account inactive. The row is kept; only
// an operator may reinstate or hard-delete it.
func (c *Lifecycle) Deactivate(ctx context.Context, userID uuid.UUID) error {
	return c.transition(ctx, userID, UserStatusInactive)
}

// Ban disables an account. Operator only.
func (c *Lifecycle) Ban(ctx context.Context, userID uuid.UUID) error {
	return c.transition(ctx, userID, UserStatusBanned)
}

// transition applies a forward status change, consulting the user's
// allowed-transition table first.
func (c *Lifecycle) transition(ctx context.Context, userID uuid.UUID, target UserStatus) error {
	user, err := c.repo.GetByID(ctx, userID.String())
	if err != nil {
		if errors.IsNotFound(err) {
			return ErrUserNotFound
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user for status change")
	}

	if !user.CanTransitionTo(target) {
		return ErrInvalidTransition
	}

	if _, err := c.repo.UpdateStatus(ctx, userID, target); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to update account status")
	}
	return nil
}

// Reinstate restores a banned or inactive account to verified. Operator
// only; this is the one path allowed to move a status backward, so it
// skips the transition table.
func (c *Lifecycle) Reinstate(ctx context.Context, userID uuid.UUID) error {
	_, err := c.repo.UpdateStatus(ctx, userID, UserStatusVerified)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to reinstate account")
	}
	return nil
}

func (c *Lifecycle) sendVerificationEmail(ctx context.Context, email, plainToken string) error {
	validationURL := fmt.Sprintf("%s/api/v1/users/validation/%s", c.baseURL, plainToken)
	return c.mail.Send(ctx, mailer.Message{
		To:      email,
		Subject: "Confirm Your Genkan Account!",
		Body: fmt.Sprintf("Click this link to finalise the creation of your account: %s\n"+
			"You can ignore this email if you did not create an account with us.", validationURL),
	})
}

func validatePasswordPair(password, confirm string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters", errors.CategoryValidation).
			WithTextCode(TextCodeValidation).
			WithCode(errors.CodeBadRequest)
	}

	if password != confirm {
		return errors.New("passwords do not match", errors.CategoryValidation).
			WithTextCode(TextCodeValidation).
			WithCode(errors.CodeBadRequest)
	}

	return nil
}
