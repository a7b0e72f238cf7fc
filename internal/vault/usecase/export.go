package usecase

import (
	"context"
	"log/slog"

	"github.com/otpvault/otpvault/internal/pkg/goerror"
	"github.com/otpvault/otpvault/internal/pkg/secretbox"
	"github.com/otpvault/otpvault/internal/vault/entity"
)

type ExportOutput struct {
	Tokens []entity.ExportEntry
}

// Export returns every stored token with its seed in the clear, in a shape
// Import accepts unchanged.
func (s *Usecase) Export(ctx context.Context) (*ExportOutput, error) {
	ctx, span := s.startSpan(ctx, "Export")
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

	out := make([]entity.ExportEntry, 0, len(toks))
	for _, tok := range toks {
		secret, err := s.sealer.Open(tok.Secret, secretbox.Scope{
			UserID:  clm.UserID,
			Purpose: secretbox.PurposeVaultToken,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to open token secret", "user_id", userID, "token_id", tok.ID, "error", err)
			return nil, goerror.NewServer(err)
		}

		out = append(out, entity.ExportEntry{
			Service: tok.Service,
			Secret:  string(secret),
		})
	}

	return &ExportOutput{Tokens: out}, nil
}
