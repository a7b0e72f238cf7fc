// Package secretbox encrypts sensitive material before it reaches storage.
//
// Every ciphertext is bound to a Scope (owner and purpose) via AES-GCM
// additional authenticated data, so a value sealed for one user or purpose
// cannot be opened for another.
package secretbox

// Sealer defines the interface for encrypting and decrypting scoped secrets.
type Sealer interface {
	// Seal returns ciphertext for the given plaintext and scope.
	Seal(plaintext []byte, scope Scope) (ciphertext []byte, err error)
	// Open returns plaintext for the given ciphertext and scope.
	Open(ciphertext []byte, scope Scope) (plaintext []byte, err error)
}

// KeyProvider provides raw AES keys.
// For AES-256-GCM, keys must be 32 bytes.
type KeyProvider interface {
	// Key returns the raw AES key to use for this scope.
	// You may choose to return per-tenant keys, per-environment keys, etc.
	Key(scope Scope) ([]byte, error)
}

// Purpose identifies what kind of secret a ciphertext holds.
type Purpose string

const (
	// PurposeLoginSeed scopes encryption to a user's own login TOTP seed.
	PurposeLoginSeed Purpose = "login_seed"
	// PurposeVaultToken scopes encryption to stored third-party TOTP seeds.
	PurposeVaultToken Purpose = "vault_token"
)

// Scope binds a ciphertext to its owner and purpose.
// It is used as AAD (Additional Authenticated Data) in AES-GCM.
type Scope struct {
	// UserID is the owning user identifier.
	UserID int64
	// Purpose is the encryption purpose.
	Purpose Purpose
}
