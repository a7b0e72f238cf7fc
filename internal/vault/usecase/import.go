package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/otpvault/otpvault/internal/pkg/goerror"
	"github.com/otpvault/otpvault/internal/pkg/idempotency"
	"github.com/otpvault/otpvault/internal/pkg/secretbox"
	"github.com/otpvault/otpvault/internal/shared/event"
	"github.com/otpvault/otpvault/internal/vault/entity"
	"github.com/samber/lo"
)

type (
	ImportEntryInput struct {
		Service string
		Secret  string
	}

	ImportInput struct {
		Entries []ImportEntryInput `validate:"required,min=1,max=1000"`

		// IdempotencyKey, when set, makes retries of the same batch a no-op.
		IdempotencyKey string
	}

	ImportOutput struct {
		Imported int
		Skipped  int
	}
)

// Import stores a batch of tokens atomically. Entries with an empty label,
// an empty or malformed secret, or a label already seen in the batch are
// skipped, not rejected. Within the batch the first entry for a service
// wins, and entries colliding with already stored services are skipped
// rather than overwritten.
func (s *Usecase) Import(ctx context.Context, in ImportInput) (*ImportOutput, error) {
	ctx, span := s.startSpan(ctx, "Import")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	userID := uint64(clm.UserID)
	total := len(in.Entries)
	entries := make([]entity.ExportEntry, 0, total)
	for _, item := range in.Entries {
		service := entity.SanitizeService(item.Service)
		if service == "" {
			continue
		}

		secret, err := normalizeSecret(item.Secret)
		if err != nil {
			continue
		}

		entries = append(entries, entity.ExportEntry{Service: service, Secret: secret})
	}

	entries = lo.UniqBy(entries, func(e entity.ExportEntry) string { return e.Service })

	toks := make([]entity.Token, 0, len(entries))
	for _, e := range entries {
		sealed, err := s.sealer.Seal([]byte(e.Secret), secretbox.Scope{
			UserID:  clm.UserID,
			Purpose: secretbox.PurposeVaultToken,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to seal token secret", "user_id", userID, "error", err)
			return nil, goerror.NewServer(err)
		}

		toks = append(toks, entity.Token{
			ID:      s.uid.Generate(),
			UserID:  userID,
			Service: e.Service,
			Secret:  sealed,
		})
	}

	imported := 0
	run := func(ctx context.Context) error {
		n, err := s.repoDB.ImportTokens(ctx, toks)
		if err != nil {
			return err
		}
		imported = n
		return nil
	}

	if in.IdempotencyKey != "" {
		err = s.idemp.Exec(ctx, in.IdempotencyKey, run,
			idempotency.WithStateTTL(s.cfg.GetMinute("modules.vault.import_idempotency_ttl_minutes")))
	} else {
		err = run(ctx)
	}
	if err != nil {
		if errors.Is(err, idempotency.ErrAlreadyCompleted) || errors.Is(err, idempotency.ErrAlreadyInProgress) {
			return nil, goerror.NewBusiness("Import already processed", goerror.CodeConflict)
		}

		slog.ErrorContext(ctx, "failed to repo import tokens", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if imported > 0 {
		s.notifyChanged(ctx, userID, event.VaultActionImported, imported)
	}

	return &ImportOutput{
		Imported: imported,
		Skipped:  total - imported,
	}, nil
}
