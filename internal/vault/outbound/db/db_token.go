package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/otpvault/otpvault/internal/vault/entity"
)

func (s *DB) CreateToken(ctx context.Context, tok entity.Token) (err error) {
	ctx, span := s.startSpan(ctx, "CreateToken")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO vault_tokens (id, user_id, service, secret)
		VALUES ($1, $2, $3, $4)
	`, tok.ID, tok.UserID, tok.Service, tok.Secret)

	return s.mapError(err)
}

// DeleteToken removes a token scoped to its owner. Rows belonging to
// other users are invisible here, so a foreign id reports not found.
func (s *DB) DeleteToken(ctx context.Context, id, userID uint64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteToken")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		DELETE FROM vault_tokens WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return s.mapError(err)
	}

	if tag.RowsAffected() == 0 {
		return s.mapError(pgx.ErrNoRows)
	}

	return nil
}

func (s *DB) ListTokens(ctx context.Context, userID uint64) (toks []entity.Token, err error) {
	ctx, span := s.startSpan(ctx, "ListTokens")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT id, user_id, service, secret, created_at
		FROM vault_tokens
		WHERE user_id = $1
		ORDER BY id ASC
	`, userID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var tok entity.Token
		if err := rows.Scan(&tok.ID, &tok.UserID, &tok.Service, &tok.Secret, &tok.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		toks = append(toks, tok)
	}

	return toks, s.mapError(rows.Err())
}

// ImportTokens inserts a batch atomically. Entries colliding with an
// existing service keep the stored row and are counted as skipped.
func (s *DB) ImportTokens(ctx context.Context, toks []entity.Token) (imported int, err error) {
	ctx, span := s.startSpan(ctx, "ImportTokens")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	for _, tok := range toks {
		tag, err := tx.Exec(ctx, `
			INSERT INTO vault_tokens (id, user_id, service, secret)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, service) DO NOTHING
		`, tok.ID, tok.UserID, tok.Service, tok.Secret)
		if err != nil {
			return 0, s.mapError(err)
		}

		imported += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, s.mapError(err)
	}

	return imported, nil
}
