package entity

import "strings"

// MaxServiceLen caps sanitized service labels, matching the column width.
const MaxServiceLen = 100

// SanitizeService normalizes a service label: characters outside letters,
// digits, spaces, underscores, and hyphens are dropped, surrounding spaces
// are trimmed, and the result is capped at MaxServiceLen. An empty result
// means the label is unusable.
func SanitizeService(label string) string {
	var b strings.Builder
	b.Grow(len(label))

	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == ' ', r == '_', r == '-':
			b.WriteRune(r)
		}
	}

	s := strings.TrimSpace(b.String())
	if len(s) > MaxServiceLen {
		s = strings.TrimSpace(s[:MaxServiceLen])
	}

	return s
}
