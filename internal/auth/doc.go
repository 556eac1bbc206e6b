// Package auth implements the account lifecycle for Genkan: the
// credential store (bcrypt-hashed passwords), the opaque token issuer
// for email verification and password reset, the bearer-token session
// resolver, and the lifecycle controller tying them together.
//
// Tokens are single-use and time-boxed: only a sha256 digest is stored,
// expiry is checked lazily at consumption, and a fresh issuance
// overwrites the outstanding token of the same purpose.
package auth
