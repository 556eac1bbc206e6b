package auth_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genkan-app/genkan/internal/auth"
)

func TestDisplayName(t *testing.T) {
	user := &auth.User{Name: "alice", Identifier: "0042"}
	assert.Equal(t, "alice#0042", user.DisplayName())
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   auth.UserStatus
		to     auth.UserStatus
		wantOK bool
	}{
		{"pending to verified", auth.UserStatusPending, auth.UserStatusVerified, true},
		{"pending to banned", auth.UserStatusPending, auth.UserStatusBanned, true},
		{"pending to inactive", auth.UserStatusPending, auth.UserStatusInactive, true},
		{"verified to banned", auth.UserStatusVerified, auth.UserStatusBanned, true},
		{"verified to inactive", auth.UserStatusVerified, auth.UserStatusInactive, true},
		{"verified back to pending", auth.UserStatusVerified, auth.UserStatusPending, false},
		{"banned back to verified", auth.UserStatusBanned, auth.UserStatusVerified, false},
		{"inactive back to verified", auth.UserStatusInactive, auth.UserStatusVerified, false},
		{"same status is not a transition", auth.UserStatusVerified, auth.UserStatusVerified, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &auth.User{Status: tt.from}
			assert.Equal(t, tt.wantOK, user.CanTransitionTo(tt.to))
		})
	}
}

func TestDidPasswordChange(t *testing.T) {
	changedAt := time.Now()

	t.Run("never changed", func(t *testing.T) {
		user := &auth.User{}
		assert.False(t, user.DidPasswordChange(time.Now()))
	})

	t.Run("token issued before the change is stale", func(t *testing.T) {
		user := &auth.User{PasswordChangedAt: &changedAt}
		assert.True(t, user.DidPasswordChange(changedAt.Add(-time.Minute)))
	})

	t.Run("token issued after the change survives", func(t *testing.T) {
		user := &auth.User{PasswordChangedAt: &changedAt}
		assert.False(t, user.DidPasswordChange(changedAt.Add(time.Minute)))
	})
}

func TestActiveTokenPair(t *testing.T) {
	expiry := time.Now().Add(30 * time.Minute)
	user := &auth.User{
		ResetTokenHash:       "reset-digest",
		ResetTokenExpiresAt:  &expiry,
		VerifyTokenHash:      "verify-digest",
		VerifyTokenExpiresAt: nil,
	}

	hash, exp := user.ActiveTokenPair(auth.TokenPurposeReset)
	assert.Equal(t, "reset-digest", hash)
	assert.Equal(t, &expiry, exp)

	hash, exp = user.ActiveTokenPair(auth.TokenPurposeVerify)
	assert.Equal(t, "verify-digest", hash)
	assert.Nil(t, exp)
}

func TestUserJSONHidesCredentialFields(t *testing.T) {
	now := time.Now()
	user := &auth.User{
		ID:                   uuid.New(),
		Name:                 "alice",
		Email:                "alice@example.com",
		PasswordHash:         "$2a$12$secret",
		PasswordChangedAt:    &now,
		ResetTokenHash:       "reset-digest",
		ResetTokenExpiresAt:  &now,
		VerifyTokenHash:      "verify-digest",
		VerifyTokenExpiresAt: &now,
	}

	raw, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), "reset-digest")
	assert.NotContains(t, string(raw), "verify-digest")
	assert.Contains(t, string(raw), "alice@example.com")
}
