package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/otpvault/otpvault/internal/pkg/goerror"
	"github.com/otpvault/otpvault/internal/pkg/secretbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Password: "Secret12",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.ChallengeToken)
	assert.NotEmpty(t, out.Secret)
	assert.True(t, strings.HasPrefix(out.URI, "otpauth://totp/"))
	assert.True(t, strings.HasPrefix(out.QRCode, "data:image/png;base64,"))
	assert.Equal(t, testNow.Add(15*time.Minute), out.ExpiresAt)

	user, ok := f.db.usersByName["alice"]
	require.True(t, ok)
	assert.False(t, user.Enrolled())
	assert.NotEqual(t, "Secret12", user.PasswordHash)

	// stored seed is sealed to the owning user
	plain, err := f.sealer.Open(user.TOTPSecret, secretbox.Scope{
		UserID:  int64(user.ID),
		Purpose: secretbox.PurposeLoginSeed,
	})
	require.NoError(t, err)
	assert.Equal(t, out.Secret, string(plain))

	// the challenge row holds the token's HMAC, not the token
	tokenHash, err := f.hmac.Hash(out.ChallengeToken)
	require.NoError(t, err)
	_, ok = f.db.challenges[string(tokenHash)]
	assert.True(t, ok)

	assert.Equal(t, 1, f.mq.registered)
}

func TestRegister_TrimsUsername(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Register(context.Background(), RegisterInput{
		Username: "  Alice  ",
		Password: "Secret12",
	})
	require.NoError(t, err)

	_, ok := f.db.usersByName["Alice"]
	assert.True(t, ok)
}

func TestRegister_UsernamesAreCaseSensitive(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Register(context.Background(), RegisterInput{Username: "alice1", Password: "Secret12"})
	require.NoError(t, err)

	// a differently cased name is a different account
	_, err = f.uc.Register(context.Background(), RegisterInput{Username: "Alice1", Password: "Secret12"})
	require.NoError(t, err)

	_, ok := f.db.usersByName["alice1"]
	assert.True(t, ok)
	_, ok = f.db.usersByName["Alice1"]
	assert.True(t, ok)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Register(context.Background(), RegisterInput{Username: "alice", Password: "Secret12"})
	require.NoError(t, err)

	_, err = f.uc.Register(context.Background(), RegisterInput{Username: "alice", Password: "Other456x"})
	require.Error(t, err)
	assert.Equal(t, goerror.CodeConflict, errCode(t, err))
}

func TestRegister_InvalidInput(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		in   RegisterInput
	}{
		{name: "username too short", in: RegisterInput{Username: "ab", Password: "Secret12"}},
		{name: "username with symbols", in: RegisterInput{Username: "ali!ce", Password: "Secret12"}},
		{name: "weak password", in: RegisterInput{Username: "alice", Password: "password"}},
		{name: "missing password", in: RegisterInput{Username: "alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Register(context.Background(), tt.in)
			require.Error(t, err)
			assert.Equal(t, goerror.CodeInvalidInput, errCode(t, err))
		})
	}
}
