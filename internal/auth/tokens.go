package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/goliatone/go-errors"
)

// TokenPurpose identifies the out-of-band flow a token belongs to.
type TokenPurpose string

const (
	// TokenPurposeReset is a password reset token
	TokenPurposeReset TokenPurpose = "reset"
	// TokenPurposeVerify is an email verification token
	TokenPurposeVerify TokenPurpose = "verify"
)

// TokenTTL is the validity window for reset and verification tokens.
// Expiry is checked lazily at consumption, there is no cleanup job.
const TokenTTL = 30 * time.Minute

// tokenBytes gives 256 bits of entropy per token.
const tokenBytes = 32

// GenerateToken returns a plaintext token and its sha256 hex digest.
// Only the digest is ever persisted; the plaintext goes out by email.
func GenerateToken() (plain string, digest string, err error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", errors.Wrap(err, errors.CategoryInternal, "failed to generate token")
	}

	plain = hex.EncodeToString(buf)
	return plain, HashToken(plain), nil
}

// HashToken computes the stored form of a plaintext token.
func HashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
