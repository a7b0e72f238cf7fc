package usecase

import (
	"context"
	"testing"
	"time"

	libjwt "github.com/golang-jwt/jwt/v5"
	"github.com/otpvault/otpvault/internal/pkg/goerror"
	"github.com/otpvault/otpvault/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authContext(jti string, expiresAt time.Time) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{
		RegisteredClaims: libjwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: libjwt.NewNumericDate(expiresAt),
		},
		UserID:   42,
		Username: "alice",
	})
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	ctx := authContext("jti-1", testNow.Add(time.Hour))

	require.NoError(t, f.uc.Logout(ctx))

	ttl, ok := f.sessions.revoked["jti-1"]
	require.True(t, ok)
	assert.Equal(t, time.Hour, ttl)

	// repeated sign out is a no-op, not an error
	require.NoError(t, f.uc.Logout(ctx))
}

func TestLogout_Unauthenticated(t *testing.T) {
	f := newFixture(t)

	err := f.uc.Logout(context.Background())
	require.Error(t, err)
	assert.Equal(t, goerror.CodeUnauthorized, errCode(t, err))
}

func TestSession(t *testing.T) {
	f := newFixture(t)
	expiresAt := testNow.Add(time.Hour)

	out, err := f.uc.Session(authContext("jti-1", expiresAt))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), out.UserID)
	assert.Equal(t, "alice", out.Username)
	assert.WithinDuration(t, expiresAt, out.ExpiresAt, time.Second)
}

func TestSession_Unauthenticated(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Session(context.Background())
	require.Error(t, err)
	assert.Equal(t, goerror.CodeUnauthorized, errCode(t, err))
}
