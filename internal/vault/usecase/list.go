package usecase

import (
	"context"
	"log/slog"

	"github.com/otpvault/otpvault/internal/pkg/goerror"
	"github.com/otpvault/otpvault/internal/pkg/secretbox"
	"github.com/otpvault/otpvault/internal/vault/entity"
)

type ListOutput struct {
	Tokens []entity.TokenCode
}

// List returns every stored token with the code it produces right now.
// Order is stable: creation order, oldest first.
func (s *Usecase) List(ctx context.Context) (*ListOutput, error) {
	ctx, span := s.startSpan(ctx, "List")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	userID := uint64(clm.UserID)
	toks, err := s.repoDB.ListTokens(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list tokens", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	period := int64(s.totp.Period())
	remaining := int(period - now.Unix()%period)
	out := make([]entity.TokenCode, 0, len(toks))
	for _, tok := range toks {
		secret, err := s.sealer.Open(tok.Secret, secretbox.Scope{
			UserID:  clm.UserID,
			Purpose: secretbox.PurposeVaultToken,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to open token secret", "user_id", userID, "token_id", tok.ID, "error", err)
			return nil, goerror.NewServer(err)
		}

		code, err := s.totp.GenerateCode(string(secret), now)
		if err != nil {
			slog.ErrorContext(ctx, "failed to generate token code", "user_id", userID, "token_id", tok.ID, "error", err)
			return nil, goerror.NewServer(err)
		}

		out = append(out, entity.TokenCode{
			ID:               tok.ID,
			Service:          tok.Service,
			Code:             code,
			SecondsRemaining: remaining,
			CreatedAt:        tok.CreatedAt,
		})
	}

	return &ListOutput{Tokens: out}, nil
}
