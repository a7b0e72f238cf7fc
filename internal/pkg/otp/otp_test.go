package otp

import (
	"strings"
	"testing"
	"time"

	libotp "github.com/pquerna/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTOTP_Generate(t *testing.T) {
	o := NewTOTP("OTP Vault", 30, 1, libotp.DigitsSix)

	secret, uri, err := o.Generate("alice")
	require.NoError(t, err)
	assert.NotEmpty(t, secret)
	assert.True(t, strings.HasPrefix(uri, "otpauth://totp/"))
	assert.Contains(t, uri, "alice")
	assert.Contains(t, uri, "OTP%20Vault")
}

func TestTOTP_CheckFormat(t *testing.T) {
	o := NewTOTP("OTP Vault", 30, 1, libotp.DigitsSix)

	tests := []struct {
		name string
		code string
		want bool
	}{
		{name: "valid", code: "123456", want: true},
		{name: "all zeros", code: "000000", want: true},
		{name: "too short", code: "12345", want: false},
		{name: "too long", code: "1234567", want: false},
		{name: "empty", code: "", want: false},
		{name: "letters", code: "12a456", want: false},
		{name: "unicode digit", code: "1234٥٦", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, o.CheckFormat(tt.code))
		})
	}
}

func TestTOTP_ValidateRoundTrip(t *testing.T) {
	o := NewTOTP("OTP Vault", 30, 1, libotp.DigitsSix)

	secret, _, err := o.Generate("bob")
	require.NoError(t, err)

	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	code, err := o.GenerateCode(secret, now)
	require.NoError(t, err)
	require.True(t, o.CheckFormat(code))

	assert.True(t, o.Validate(code, secret, now))

	// one period of drift on either side is tolerated
	assert.True(t, o.Validate(code, secret, now.Add(30*time.Second)))
	assert.True(t, o.Validate(code, secret, now.Add(-30*time.Second)))

	// beyond the skew window the code is stale
	assert.False(t, o.Validate(code, secret, now.Add(90*time.Second)))
	assert.False(t, o.Validate(code, secret, now.Add(-90*time.Second)))
	assert.False(t, o.Validate(code, secret, now.Add(120*time.Second)))
	assert.False(t, o.Validate(code, secret, now.Add(-120*time.Second)))
}

func TestTOTP_ValidateWrongSecret(t *testing.T) {
	o := NewTOTP("OTP Vault", 30, 1, libotp.DigitsSix)

	secretA, _, err := o.Generate("alice")
	require.NoError(t, err)
	secretB, _, err := o.Generate("bob")
	require.NoError(t, err)

	now := time.Now()
	code, err := o.GenerateCode(secretA, now)
	require.NoError(t, err)

	assert.False(t, o.Validate(code, secretB, now))
}

func TestNewTOTP_Defaults(t *testing.T) {
	o := NewTOTP("OTP Vault", 0, 0, libotp.Digits(99))

	assert.Equal(t, uint(30), o.period)
	assert.Equal(t, uint(1), o.skew)
	assert.Equal(t, libotp.DigitsSix, o.digits)
}
