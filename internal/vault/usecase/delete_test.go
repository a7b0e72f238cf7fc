package usecase

import (
	"testing"

	"github.com/otpvault/otpvault/internal/pkg/goerror"
	"github.com/otpvault/otpvault/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := authContext(42)

	out, err := f.uc.Add(ctx, AddInput{Service: "GitHub"})
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(ctx, DeleteInput{ID: out.ID}))
	assert.Empty(t, f.db.tokens)

	require.Len(t, f.mq.events, 2)
	assert.Equal(t, event.VaultActionDeleted, f.mq.events[1].Action)
}

func TestDelete_UnknownID(t *testing.T) {
	f := newFixture(t)

	err := f.uc.Delete(authContext(42), DeleteInput{ID: 999})
	assert.Equal(t, goerror.CodeNotFound, errCode(t, err))
}

func TestDelete_ZeroID(t *testing.T) {
	f := newFixture(t)

	// indistinguishable from any other id that does not exist
	err := f.uc.Delete(authContext(42), DeleteInput{ID: 0})
	assert.Equal(t, goerror.CodeNotFound, errCode(t, err))
}

func TestDelete_OtherUsersToken(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Add(authContext(42), AddInput{Service: "GitHub"})
	require.NoError(t, err)

	err = f.uc.Delete(authContext(43), DeleteInput{ID: out.ID})
	assert.Equal(t, goerror.CodeNotFound, errCode(t, err))
	assert.Len(t, f.db.tokens, 1)
}
