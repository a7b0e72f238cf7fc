package uid

import (
	"crypto/rand"
	"encoding/hex"
)

// Token generates opaque, unguessable string tokens from crypto/rand.
//
// Unlike UUID it carries no structure or timestamp, which makes it suitable
// for bearer-style tokens handed to clients.
type Token struct {
	size int
}

// NewToken returns a token generator producing size random bytes, hex-encoded.
// A size below 16 is raised to 16.
func NewToken(size int) *Token {
	if size < 16 {
		size = 16
	}
	return &Token{size: size}
}

// Generate returns a new random token.
func (t *Token) Generate() string {
	b := make([]byte, t.size)
	if _, err := rand.Read(b); err != nil {
		panic(err) // crypto/rand failure is unrecoverable
	}
	return hex.EncodeToString(b)
}
