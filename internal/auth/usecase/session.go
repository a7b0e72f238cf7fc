package usecase

import (
	"context"
	"time"
)

type SessionOutput struct {
	UserID    uint64
	Username  string
	ExpiresAt time.Time
}

// Session returns the identity behind the current access token.
func (s *Usecase) Session(ctx context.Context) (*SessionOutput, error) {
	ctx, span := s.startSpan(ctx, "Session")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	return &SessionOutput{
		UserID:    uint64(clm.UserID),
		Username:  clm.Username,
		ExpiresAt: clm.ExpiresAt.Time,
	}, nil
}
