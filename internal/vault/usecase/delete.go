package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/otpvault/otpvault/internal/pkg/goerror"
	"github.com/otpvault/otpvault/internal/shared/event"
)

type DeleteInput struct {
	ID uint64
}

// Delete removes a stored token. Tokens owned by other users are
// indistinguishable from tokens that never existed.
func (s *Usecase) Delete(ctx context.Context, in DeleteInput) error {
	ctx, span := s.startSpan(ctx, "Delete")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	userID := uint64(clm.UserID)
	if err := s.repoDB.DeleteToken(ctx, in.ID, userID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewNotFound("Token not found")
		}

		slog.ErrorContext(ctx, "failed to repo delete token", "user_id", userID, "token_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	s.notifyChanged(ctx, userID, event.VaultActionDeleted, 1)

	return nil
}
