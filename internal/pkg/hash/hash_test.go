package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost, "pepper")

	hashed, err := h.Hash("s3cr3tPass")
	require.NoError(t, err)

	assert.True(t, h.Verify(string(hashed), "s3cr3tPass"))
	assert.False(t, h.Verify(string(hashed), "wrongPass"))
}

func TestBcrypt_PepperMismatch(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost, "pepper")

	hashed, err := h.Hash("s3cr3tPass")
	require.NoError(t, err)

	other := NewBcrypt(bcrypt.MinCost, "different-pepper")
	assert.False(t, other.Verify(string(hashed), "s3cr3tPass"))
}

func TestHMACSHA256(t *testing.T) {
	h := NewHMACSHA256("secret")

	hashed, err := h.Hash("challenge-token")
	require.NoError(t, err)
	assert.Len(t, hashed, 64)

	again, err := h.Hash("challenge-token")
	require.NoError(t, err)
	assert.Equal(t, hashed, again)

	assert.True(t, h.Verify(string(hashed), "challenge-token"))
	assert.False(t, h.Verify(string(hashed), "other-token"))
	assert.False(t, NewHMACSHA256("other-secret").Verify(string(hashed), "challenge-token"))
}
