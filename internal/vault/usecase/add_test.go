package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/otpvault/otpvault/internal/pkg/goerror"
	"github.com/otpvault/otpvault/internal/pkg/secretbox"
	"github.com/otpvault/otpvault/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	f := newFixture(t)
	ctx := authContext(42)

	out, err := f.uc.Add(ctx, AddInput{Service: "  GitHub  "})
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
	assert.Equal(t, "GitHub", out.Service)
	assert.NotEmpty(t, out.Secret)
	assert.True(t, strings.HasPrefix(out.URI, "otpauth://totp/"))
	assert.True(t, strings.HasPrefix(out.QRCode, "data:image/png;base64,"))
	assert.Equal(t, testNow, out.CreatedAt)

	require.Len(t, f.db.tokens, 1)
	stored := f.db.tokens[0]
	assert.Equal(t, uint64(42), stored.UserID)
	assert.Equal(t, "GitHub", stored.Service)

	plain, err := f.sealer.Open(stored.Secret, secretbox.Scope{UserID: 42, Purpose: secretbox.PurposeVaultToken})
	require.NoError(t, err)
	assert.Equal(t, out.Secret, string(plain))

	require.Len(t, f.mq.events, 1)
	assert.Equal(t, event.VaultActionAdded, f.mq.events[0].Action)
	assert.Equal(t, 1, f.mq.events[0].Count)
}

func TestAdd_FreshSecretPerToken(t *testing.T) {
	f := newFixture(t)
	ctx := authContext(42)

	first, err := f.uc.Add(ctx, AddInput{Service: "GitHub"})
	require.NoError(t, err)
	second, err := f.uc.Add(ctx, AddInput{Service: "GitLab"})
	require.NoError(t, err)

	assert.NotEqual(t, first.Secret, second.Secret)
}

func TestAdd_DuplicateService(t *testing.T) {
	f := newFixture(t)
	ctx := authContext(42)

	_, err := f.uc.Add(ctx, AddInput{Service: "GitHub"})
	require.NoError(t, err)

	_, err = f.uc.Add(ctx, AddInput{Service: "GitHub"})
	assert.Equal(t, goerror.CodeConflict, errCode(t, err))
	assert.Len(t, f.db.tokens, 1)
}

func TestAdd_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.db.createErr = assert.AnError

	_, err := f.uc.Add(authContext(42), AddInput{Service: "GitHub"})
	assert.Equal(t, goerror.CodeInternal, errCode(t, err))
	assert.Empty(t, f.db.tokens)
	assert.Empty(t, f.mq.events)
}

func TestAdd_SameServiceDifferentUsers(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Add(authContext(42), AddInput{Service: "GitHub"})
	require.NoError(t, err)

	_, err = f.uc.Add(authContext(43), AddInput{Service: "GitHub"})
	require.NoError(t, err)
	assert.Len(t, f.db.tokens, 2)
}

func TestAdd_InvalidService(t *testing.T) {
	f := newFixture(t)
	ctx := authContext(42)

	tests := []struct {
		name string
		in   AddInput
	}{
		{name: "missing service", in: AddInput{}},
		{name: "service without allowed characters", in: AddInput{Service: "@@@"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Add(ctx, tc.in)
			assert.Equal(t, goerror.CodeInvalidInput, errCode(t, err))
		})
	}

	assert.Empty(t, f.db.tokens)
	assert.Empty(t, f.mq.events)
}

func TestAdd_Unauthenticated(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Add(context.Background(), AddInput{Service: "GitHub"})
	assert.Equal(t, goerror.CodeUnauthorized, errCode(t, err))
}
