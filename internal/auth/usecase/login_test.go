package usecase

import (
	"context"
	"testing"

	"github.com/otpvault/otpvault/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enroll(t *testing.T, f *fixture, username string) *RegisterOutput {
	t.Helper()

	reg := register(t, f, username)
	code, err := f.totp.GenerateCode(reg.Secret, f.clock.Now())
	require.NoError(t, err)

	_, err = f.uc.RegisterVerify(context.Background(), RegisterVerifyInput{
		ChallengeToken: reg.ChallengeToken,
		Code:           code,
	})
	require.NoError(t, err)
	return reg
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	reg := enroll(t, f, "alice")

	code, err := f.totp.GenerateCode(reg.Secret, f.clock.Now())
	require.NoError(t, err)

	out, err := f.uc.Login(context.Background(), LoginInput{
		Username: "alice",
		Password: "Secret12",
		Code:     code,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.Equal(t, 1, f.mq.loggedIn)
	assert.Equal(t, 0, f.mq.loginFailed)
}

func TestLogin_RejectionsAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	reg := enroll(t, f, "alice")

	code, err := f.totp.GenerateCode(reg.Secret, f.clock.Now())
	require.NoError(t, err)
	wrong := "000000"
	if code == wrong {
		wrong = "000001"
	}

	tests := []struct {
		name string
		in   LoginInput
	}{
		{name: "unknown username", in: LoginInput{Username: "nobody", Password: "Secret12", Code: code}},
		{name: "wrong password", in: LoginInput{Username: "alice", Password: "Wrong123", Code: code}},
		{name: "wrong code", in: LoginInput{Username: "alice", Password: "Secret12", Code: wrong}},
		{name: "malformed code", in: LoginInput{Username: "alice", Password: "Secret12", Code: "junk"}},
	}

	var messages []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Login(context.Background(), tt.in)
			require.Error(t, err)
			assert.Equal(t, goerror.CodeUnauthorized, errCode(t, err))
			messages = append(messages, err.Error())
		})
	}

	for _, msg := range messages {
		assert.Equal(t, messages[0], msg)
	}
	assert.Equal(t, len(tests), f.mq.loginFailed)
}

func TestLogin_UsernameCaseMismatch(t *testing.T) {
	f := newFixture(t)
	reg := enroll(t, f, "alice")

	code, err := f.totp.GenerateCode(reg.Secret, f.clock.Now())
	require.NoError(t, err)

	_, err = f.uc.Login(context.Background(), LoginInput{
		Username: "Alice",
		Password: "Secret12",
		Code:     code,
	})
	require.Error(t, err)
	assert.Equal(t, goerror.CodeUnauthorized, errCode(t, err))
}

func TestLogin_NotEnrolled(t *testing.T) {
	f := newFixture(t)
	reg := register(t, f, "alice")

	code, err := f.totp.GenerateCode(reg.Secret, f.clock.Now())
	require.NoError(t, err)

	_, err = f.uc.Login(context.Background(), LoginInput{
		Username: "alice",
		Password: "Secret12",
		Code:     code,
	})
	require.Error(t, err)
	assert.Equal(t, goerror.CodeUnauthorized, errCode(t, err))
}
