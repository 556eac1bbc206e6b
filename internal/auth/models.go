package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRole is the user's role
type UserRole = string

const (
	// RoleUser is a regular member
	RoleUser UserRole = "user"
	// RoleGuide can author lessons
	RoleGuide UserRole = "guide"
	// RoleLeadGuide can author and curate lessons
	RoleLeadGuide UserRole = "lead-guide"
	// RoleAdmin can do everything, including hard deletes
	RoleAdmin UserRole = "admin"
)

// UserStatus is the account lifecycle status
type UserStatus = string

const (
	// UserStatusPending means the email has not been verified yet
	UserStatusPending UserStatus = "pending"
	// UserStatusVerified means the email verification completed
	UserStatusVerified UserStatus = "verified"
	// UserStatusBanned means the account was disabled by an operator
	UserStatusBanned UserStatus = "banned"
	// UserStatusInactive means the user deactivated their own account
	UserStatusInactive UserStatus = "inactive"
)

// MatchSettings holds the attributes used to filter exchange partners.
type MatchSettings struct {
	Birthday       *time.Time `json:"birthday,omitempty"`
	Gender         string     `json:"gender,omitempty"`
	AllowedGenders []string   `json:"allowed_genders,omitempty"`
	// MinAge and MaxAge bound partner ages in years. Zero means open.
	MinAge         int      `json:"min_age,omitempty"`
	MaxAge         int      `json:"max_age,omitempty"`
	Nationality    string   `json:"nationality,omitempty"`
	Residence      string   `json:"residence,omitempty"`
	LanguagesKnown []string `json:"languages_known,omitempty"`
	LanguagesLearn []string `json:"languages_learn,omitempty"`
	// MinAccountAge lets a member hide from accounts younger than this
	MinAccountAge string `json:"min_account_age,omitempty"`
}

// User is the user model. Credential and token fields are never
// serialized to JSON.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID         uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Role       UserRole   `bun:"user_role,notnull" json:"user_role,omitempty"`
	Name       string     `bun:"name,notnull" json:"name,omitempty"`
	Identifier string     `bun:"identifier,notnull" json:"identifier,omitempty"`
	Email      string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Photo      string     `bun:"photo" json:"photo,omitempty"`
	Status     UserStatus `bun:"account_status,notnull" json:"account_status,omitempty"`

	PasswordHash      string     `bun:"password_hash" json:"-"`
	PasswordChangedAt *time.Time `bun:"password_changed_at,nullzero" json:"-"`

	ResetTokenHash      string     `bun:"reset_token_hash,nullzero" json:"-"`
	ResetTokenExpiresAt *time.Time `bun:"reset_token_expires_at,nullzero" json:"-"`

	VerifyTokenHash      string     `bun:"verify_token_hash,nullzero" json:"-"`
	VerifyTokenExpiresAt *time.Time `bun:"verify_token_expires_at,nullzero" json:"-"`

	MatchSettings *MatchSettings `bun:"match_settings,type:jsonb" json:"match_settings,omitempty"`

	LastSeenAt *time.Time `bun:"last_seen_at,nullzero" json:"last_seen_at,omitempty"`
	CreatedAt  *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt  *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt  *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"-"`
}

// DisplayName is the user's public handle, e.g. "alice#0042".
func (u *User) DisplayName() string {
	return fmt.Sprintf("%s#%s", u.Name, u.Identifier)
}

// EnsureStatus sets the default status for new records
func (u *User) EnsureStatus() {
	if u.Status == "" {
		u.Status = UserStatusPending
	}
}

func (u *User) IsPending() bool  { return u.Status == UserStatusPending }
func (u *User) IsVerified() bool { return u.Status == UserStatusVerified }
func (u *User) IsBanned() bool   { return u.Status == UserStatusBanned }
func (u *User) IsInactive() bool { return u.Status == UserStatusInactive }

// CanTransitionTo reports whether a self-service status change is
// allowed. Statuses only move forward: pending -> verified, and any
// status -> banned or inactive. Leaving banned or inactive requires an
// operator (see Lifecycle.Reinstate).
func (u *User) CanTransitionTo(target UserStatus) bool {
	if u.Status == target {
		return false
	}

	switch target {
	case UserStatusVerified:
		return u.Status == UserStatusPending
	case UserStatusBanned, UserStatusInactive:
		return u.Status == UserStatusPending || u.Status == UserStatusVerified
	}

	return false
}

// DidPasswordChange reports whether the credential changed after the
// given token issue time. Tokens issued before the change must be
// rejected.
func (u *User) DidPasswordChange(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return issuedAt.Before(*u.PasswordChangedAt)
}

// ActiveTokenPair returns the stored hash and expiry for a purpose.
func (u *User) ActiveTokenPair(purpose TokenPurpose) (string, *time.Time) {
	if purpose == TokenPurposeVerify {
		return u.VerifyTokenHash, u.VerifyTokenExpiresAt
	}
	return u.ResetTokenHash, u.ResetTokenExpiresAt
}
