package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidUsername(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "minimum length", in: "abc", want: true},
		{name: "maximum length", in: "abcdefghij0123456789", want: true},
		{name: "mixed case", in: "Alice42", want: true},
		{name: "too short", in: "ab", want: false},
		{name: "too long", in: "abcdefghij01234567890", want: false},
		{name: "underscore", in: "ali_ce", want: false},
		{name: "space", in: "ali ce", want: false},
		{name: "empty", in: "", want: false},
		{name: "non ascii", in: "alicé", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidUsername(tt.in))
		})
	}
}

func TestValidUserPassword(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "valid", in: "Secret12", want: true},
		{name: "valid with symbols", in: "Sup3r-Secret!", want: true},
		{name: "too short", in: "Se1cret", want: false},
		{name: "no digit", in: "Secretly", want: false},
		{name: "no uppercase", in: "secret12", want: false},
		{name: "no lowercase", in: "SECRET12", want: false},
		{name: "empty", in: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidUserPassword(tt.in))
		})
	}
}

func TestV10Validator_CustomTags(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	type input struct {
		Username string `validate:"required,username"`
		Password string `validate:"required,userpassword"`
	}

	require.NoError(t, v.Validate(input{Username: "alice", Password: "Secret12"}))

	err = v.Validate(input{Username: "a!", Password: "weak"})
	require.Error(t, err)

	var verr V10ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Values(), "username")
	assert.Contains(t, verr.Values(), "password")
	assert.Equal(t, "Username must be 3-20 alphanumeric characters", verr.Values()["username"])
}
