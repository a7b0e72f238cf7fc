package usecase

import (
	"context"
	"log/slog"

	"github.com/otpvault/otpvault/internal/pkg/goerror"
)

// Logout denylists the current access token until its natural expiry.
// Calling it twice with the same token succeeds both times.
func (s *Usecase) Logout(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	ttl := clm.ExpiresAt.Time.Sub(s.clock.Now())
	if err := s.repoSessions.Revoke(ctx, clm.ID, ttl); err != nil {
		slog.ErrorContext(ctx, "failed to revoke session", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
