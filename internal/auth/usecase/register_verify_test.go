package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/otpvault/otpvault/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func register(t *testing.T, f *fixture, username string) *RegisterOutput {
	t.Helper()

	out, err := f.uc.Register(context.Background(), RegisterInput{
		Username: username,
		Password: "Secret12",
	})
	require.NoError(t, err)
	return out
}

func TestRegisterVerify(t *testing.T) {
	f := newFixture(t)
	reg := register(t, f, "alice")

	code, err := f.totp.GenerateCode(reg.Secret, f.clock.Now())
	require.NoError(t, err)

	out, err := f.uc.RegisterVerify(context.Background(), RegisterVerifyInput{
		ChallengeToken: reg.ChallengeToken,
		Code:           code,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)

	assert.True(t, f.db.usersByName["alice"].Enrolled())
	assert.Empty(t, f.db.challenges)
}

func TestRegisterVerify_WrongCodeKeepsChallenge(t *testing.T) {
	f := newFixture(t)
	reg := register(t, f, "alice")

	_, err := f.uc.RegisterVerify(context.Background(), RegisterVerifyInput{
		ChallengeToken: reg.ChallengeToken,
		Code:           "000000",
	})
	require.Error(t, err)
	assert.Equal(t, goerror.CodeUnauthorized, errCode(t, err))

	// the challenge survives a wrong code so the caller can retry
	assert.False(t, f.db.usersByName["alice"].Enrolled())
	assert.Len(t, f.db.challenges, 1)

	code, err := f.totp.GenerateCode(reg.Secret, f.clock.Now())
	require.NoError(t, err)

	_, err = f.uc.RegisterVerify(context.Background(), RegisterVerifyInput{
		ChallengeToken: reg.ChallengeToken,
		Code:           code,
	})
	require.NoError(t, err)
}

func TestRegisterVerify_MalformedCodeSkipsLookup(t *testing.T) {
	f := newFixture(t)
	reg := register(t, f, "alice")

	before := f.db.getChallengeCalls
	_, err := f.uc.RegisterVerify(context.Background(), RegisterVerifyInput{
		ChallengeToken: reg.ChallengeToken,
		Code:           "12345a",
	})
	require.Error(t, err)
	assert.Equal(t, goerror.CodeInvalidInput, errCode(t, err))
	assert.Equal(t, before, f.db.getChallengeCalls)
}

func TestRegisterVerify_UnknownToken(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.RegisterVerify(context.Background(), RegisterVerifyInput{
		ChallengeToken: "no-such-token",
		Code:           "123456",
	})
	require.Error(t, err)
	assert.Equal(t, goerror.CodeUnauthorized, errCode(t, err))
}

func TestRegisterVerify_ExpiredChallenge(t *testing.T) {
	f := newFixture(t)
	reg := register(t, f, "alice")

	f.clock.now = testNow.Add(16 * time.Minute)

	code, err := f.totp.GenerateCode(reg.Secret, f.clock.Now())
	require.NoError(t, err)

	_, err = f.uc.RegisterVerify(context.Background(), RegisterVerifyInput{
		ChallengeToken: reg.ChallengeToken,
		Code:           code,
	})
	require.Error(t, err)
	assert.Equal(t, goerror.CodeUnauthorized, errCode(t, err))
	assert.False(t, f.db.usersByName["alice"].Enrolled())
}
