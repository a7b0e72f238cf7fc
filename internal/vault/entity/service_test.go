package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeService(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "clean", in: "GitHub", want: "GitHub"},
		{name: "keeps allowed punctuation", in: "my_bank-login 2", want: "my_bank-login 2"},
		{name: "strips symbols", in: "pay;pal!", want: "paypal"},
		{name: "strips unicode", in: "café ☕", want: "caf"},
		{name: "trims spaces", in: "  aws  ", want: "aws"},
		{name: "only symbols", in: "!!??", want: ""},
		{name: "empty", in: "", want: ""},
		{name: "truncates long labels", in: strings.Repeat("a", 150), want: strings.Repeat("a", 100)},
		{name: "trims after truncation", in: strings.Repeat("a", 99) + "  b", want: strings.Repeat("a", 99)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeService(tt.in))
		})
	}
}
