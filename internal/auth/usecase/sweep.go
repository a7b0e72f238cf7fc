package usecase

import (
	"context"
	"log/slog"

	"github.com/otpvault/otpvault/internal/pkg/goerror"
)

// SweepChallenges removes enrollment challenges whose deadline has passed.
// Expired rows are already invisible to verification; the sweep only keeps
// the table from growing.
func (s *Usecase) SweepChallenges(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "SweepChallenges")
	defer span.End()

	n, err := s.repoDB.DeleteExpiredChallenges(ctx, s.clock.Now())
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete expired challenges", "error", err)
		return goerror.NewServer(err)
	}

	if n > 0 {
		slog.InfoContext(ctx, "removed expired enrollment challenges", "count", n)
	}

	return nil
}
