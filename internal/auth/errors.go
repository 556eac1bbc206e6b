package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeValidation         = "VALIDATION_ERROR"
	TextCodeDuplicateIdentity  = "DUPLICATE_IDENTITY"
	TextCodeInvalidCredentials = "INVALID_CREDENTIALS"
	TextCodeInvalidToken       = "INVALID_OR_EXPIRED_TOKEN"
	TextCodeNotFound           = "NOT_FOUND"
	TextCodeAlreadyVerified    = "ALREADY_VERIFIED"
	TextCodeForbidden          = "FORBIDDEN"
	TextCodeEmailDelivery      = "EMAIL_DELIVERY_FAILED"
	TextCodeUnauthenticated    = "UNAUTHENTICATED"
	TextCodeAccountDisabled    = "ACCOUNT_DISABLED"
	TextCodeResendThrottled    = "RESEND_THROTTLED"
	TextCodeInvalidTransition  = "INVALID_STATUS_TRANSITION"
)

// ErrValidation is returned for malformed or mismatched input.
var ErrValidation = errors.New("invalid input", errors.CategoryValidation).
	WithTextCode(TextCodeValidation).
	WithCode(errors.CodeBadRequest)

// ErrDuplicateIdentity is returned when the email or name+identifier is taken.
var ErrDuplicateIdentity = errors.New("pre-existing user found", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateIdentity).
	WithCode(errors.CodeConflict)

// ErrInvalidCredentials is deliberately generic: it does not distinguish
// an unknown email from a wrong password.
var ErrInvalidCredentials = errors.New("check your credentials", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidOrExpiredToken is deliberately indistinguishable between a
// wrong token and an expired one.
var ErrInvalidOrExpiredToken = errors.New("invalid or expired token", errors.CategoryValidation).
	WithTextCode(TextCodeInvalidToken).
	WithCode(errors.CodeBadRequest)

// ErrUserNotFound is returned for lookup misses on explicit email input.
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithTextCode(TextCodeNotFound).
	WithCode(errors.CodeNotFound)

// ErrAlreadyVerified is returned when a verification is attempted or
// re-requested for an account that is not pending.
var ErrAlreadyVerified = errors.New("user already verified", errors.CategoryConflict).
	WithTextCode(TextCodeAlreadyVerified).
	WithCode(errors.CodeConflict)

// ErrForbidden is returned when the resolved user lacks the required
// status or role.
var ErrForbidden = errors.New("user does not have permission to do that", errors.CategoryAuthz).
	WithTextCode(TextCodeForbidden).
	WithCode(errors.CodeForbidden)

// ErrEmailDelivery is returned when the email collaborator fails. The
// token fields written for the failed delivery are rolled back first.
var ErrEmailDelivery = errors.New("could not send email", errors.CategoryOperation).
	WithTextCode(TextCodeEmailDelivery).
	WithCode(errors.CodeInternal)

// ErrUnauthenticated is returned when session evidence is missing or invalid.
var ErrUnauthenticated = errors.New("you have been logged out, please log in again", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthenticated).
	WithCode(errors.CodeUnauthorized)

// ErrAccountDisabled is returned when a banned or inactive account
// attempts to authenticate.
var ErrAccountDisabled = errors.New("account is disabled", errors.CategoryAuth).
	WithTextCode(TextCodeAccountDisabled).
	WithCode(errors.CodeForbidden)

// ErrResendThrottled is returned when a verification token was issued
// too recently to be reissued.
var ErrResendThrottled = errors.New("a verification email was just sent, try again shortly", errors.CategoryRateLimit).
	WithTextCode(TextCodeResendThrottled)

// ErrInvalidTransition is returned when a status change would move an
// account backward. Operator reinstatement bypasses this.
var ErrInvalidTransition = errors.New("status change not allowed", errors.CategoryConflict).
	WithTextCode(TextCodeInvalidTransition).
	WithCode(errors.CodeConflict)

// ErrNoEmptyString is returned when hashing an empty password
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeValidation).
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword is the internal bcrypt mismatch marker
var ErrMismatchedHashAndPassword = errors.New("hashed password mismatch", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned for expired session tokens
var ErrTokenExpired = errors.New("session token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthenticated).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned for undecodable session tokens
var ErrTokenMalformed = errors.New("session token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthenticated).
	WithCode(errors.CodeUnauthorized)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
