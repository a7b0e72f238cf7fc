package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/otpvault/otpvault/internal/pkg/goerror"
	"github.com/otpvault/otpvault/internal/pkg/qrcode"
	"github.com/otpvault/otpvault/internal/pkg/secretbox"
	"github.com/otpvault/otpvault/internal/shared/event"
	"github.com/otpvault/otpvault/internal/vault/entity"
)

type AddInput struct {
	Service string `validate:"required"`
}

type AddOutput struct {
	ID        uint64
	Service   string
	Secret    string
	URI       string
	QRCode    string
	CreatedAt time.Time
}

// Add creates a fresh authenticator seed under a sanitized service label and
// stores it sealed. The plaintext seed, provisioning URI, and QR image are
// returned once; afterwards the seed is only reachable through Export. Each
// user holds at most one token per label.
func (s *Usecase) Add(ctx context.Context, in AddInput) (*AddOutput, error) {
	ctx, span := s.startSpan(ctx, "Add")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	service := entity.SanitizeService(in.Service)
	if service == "" {
		return nil, goerror.NewBusiness("Service must contain letters, digits, spaces, underscores, or hyphens", goerror.CodeInvalidInput)
	}

	secret, uri, err := s.totp.Generate(service)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate authenticator seed", "error", err)
		return nil, goerror.NewServer(err)
	}

	userID := uint64(clm.UserID)
	sealed, err := s.sealer.Seal([]byte(secret), secretbox.Scope{
		UserID:  clm.UserID,
		Purpose: secretbox.PurposeVaultToken,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to seal token secret", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	// a QR failure must not leave a stored row behind
	qr, err := qrcode.GenerateBase64Image(uri, 0)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render provisioning qr code", "error", err)
		return nil, goerror.NewServer(err)
	}

	tok := entity.Token{
		ID:      s.uid.Generate(),
		UserID:  userID,
		Service: service,
		Secret:  sealed,
	}

	if err := s.repoDB.CreateToken(ctx, tok); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("A token for this service already exists", goerror.CodeConflict)
		}

		slog.ErrorContext(ctx, "failed to repo create token", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.notifyChanged(ctx, userID, event.VaultActionAdded, 1)

	return &AddOutput{
		ID:        tok.ID,
		Service:   tok.Service,
		Secret:    secret,
		URI:       uri,
		QRCode:    qr,
		CreatedAt: s.clock.Now(),
	}, nil
}
