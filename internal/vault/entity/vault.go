// Package entity holds the core domain types for the stored token vault.
package entity

import "time"

// Token is a stored third-party authenticator seed. Secret is sealed and is
// only usable after decryption scoped to the owning user.
type Token struct {
	ID        uint64
	UserID    uint64
	Service   string
	Secret    []byte
	CreatedAt time.Time
}

// TokenCode pairs a stored token with the code it currently produces.
// SecondsRemaining is how long the code stays valid in the current step.
type TokenCode struct {
	ID               uint64
	Service          string
	Code             string
	SecondsRemaining int
	CreatedAt        time.Time
}

// ExportEntry is one token in a portable export, with its seed in the clear.
type ExportEntry struct {
	Service string
	Secret  string
}
