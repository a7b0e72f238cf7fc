package db

import (
	"context"

	"github.com/otpvault/otpvault/internal/auth/entity"
)

func (s *DB) GetUserByUsername(ctx context.Context, username string) (u entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByUsername")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `
		SELECT id, username, password_hash, totp_secret, enrolled_at, created_at
		FROM users
		WHERE username = $1
	`, username)

	err = s.mapError(row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.TOTPSecret, &u.EnrolledAt, &u.CreatedAt))
	return u, err
}

func (s *DB) GetChallengeUserByTokenHash(ctx context.Context, tokenHash string) (cu entity.ChallengeUser, err error) {
	ctx, span := s.startSpan(ctx, "GetChallengeUserByTokenHash")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `
		SELECT c.id, c.user_id, u.username, u.totp_secret, u.enrolled_at, c.expires_at
		FROM auth_challenges c
		JOIN users u ON u.id = c.user_id
		WHERE c.token_hash = $1
	`, tokenHash)

	err = s.mapError(row.Scan(&cu.ChallengeID, &cu.UserID, &cu.Username, &cu.TOTPSecret, &cu.EnrolledAt, &cu.ExpiresAt))
	return cu, err
}
