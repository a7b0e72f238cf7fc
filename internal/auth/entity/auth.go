// Package entity holds the core domain types for account registration,
// enrollment, and sign in.
package entity

import "time"

// User is a registered account. TOTPSecret is the sealed authenticator seed
// and is only usable after decryption scoped to the owning user.
type User struct {
	ID           uint64
	Username     string
	PasswordHash string
	TOTPSecret   []byte
	EnrolledAt   *time.Time
	CreatedAt    time.Time
}

// Enrolled reports whether the account has completed authenticator
// enrollment and is allowed to sign in.
func (u User) Enrolled() bool {
	return u.EnrolledAt != nil
}

// Challenge is a pending enrollment verification. TokenHash stores the HMAC
// of the opaque token handed to the client, never the token itself.
type Challenge struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ChallengeUser is a challenge row joined with the owning account, loaded in
// one query when verifying enrollment.
type ChallengeUser struct {
	ChallengeID uint64
	UserID      uint64
	Username    string
	TOTPSecret  []byte
	EnrolledAt  *time.Time
	ExpiresAt   time.Time
}

// Registration bundles the rows written when a new account is created.
type Registration struct {
	User      User
	Challenge Challenge
}
