package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/otpvault/otpvault/internal/auth/entity"
)

func (s *DB) NewRegistration(ctx context.Context, reg entity.Registration) (err error) {
	ctx, span := s.startSpan(ctx, "NewRegistration")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	if _, err := tx.Exec(ctx, `
		INSERT INTO users (id, username, password_hash, totp_secret)
		VALUES ($1, $2, $3, $4)
	`, reg.User.ID, reg.User.Username, reg.User.PasswordHash, reg.User.TOTPSecret); err != nil {
		return s.mapError(err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO auth_challenges (id, user_id, token_hash, expires_at)
		VALUES ($1, $2, $3, $4)
	`, reg.Challenge.ID, reg.Challenge.UserID, reg.Challenge.TokenHash, reg.Challenge.ExpiresAt); err != nil {
		return s.mapError(err)
	}

	return s.mapError(tx.Commit(ctx))
}

func (s *DB) VerifyEnrollment(ctx context.Context, challengeID, userID uint64, at time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "VerifyEnrollment")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	if _, err := tx.Exec(ctx, `
		UPDATE users SET enrolled_at = $2 WHERE id = $1 AND enrolled_at IS NULL
	`, userID, at); err != nil {
		return s.mapError(err)
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM auth_challenges WHERE id = $1
	`, challengeID); err != nil {
		return s.mapError(err)
	}

	return s.mapError(tx.Commit(ctx))
}

func (s *DB) DeleteExpiredChallenges(ctx context.Context, before time.Time) (n int64, err error) {
	ctx, span := s.startSpan(ctx, "DeleteExpiredChallenges")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		DELETE FROM auth_challenges WHERE expires_at < $1
	`, before)
	if err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}
