package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/otpvault/otpvault/internal/auth/entity"
	"github.com/otpvault/otpvault/internal/pkg/goerror"
	"github.com/otpvault/otpvault/internal/pkg/qrcode"
	"github.com/otpvault/otpvault/internal/pkg/secretbox"
)

type RegisterInput struct {
	Username string `validate:"required,username"`
	Password string `validate:"required,userpassword"`
}

type RegisterOutput struct {
	ChallengeToken string
	Secret         string
	URI            string
	QRCode         string
	ExpiresAt      time.Time
}

// Register creates an account that cannot sign in yet. The caller receives
// the authenticator seed exactly once, together with a challenge token that
// must be redeemed with a valid code to finish enrollment.
func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	_, err := s.repoDB.GetUserByUsername(ctx, in.Username)
	if err == nil {
		return nil, goerror.NewBusiness("Username already registered", goerror.CodeConflict)
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by username", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	hashedPassword, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	secret, uri, err := s.totp.Generate(in.Username)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate authenticator seed", "error", err)
		return nil, goerror.NewServer(err)
	}

	newUserID := s.uid.Generate()
	sealedSecret, err := s.sealer.Seal([]byte(secret), secretbox.Scope{
		UserID:  int64(newUserID),
		Purpose: secretbox.PurposeLoginSeed,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to seal authenticator seed", "error", err)
		return nil, goerror.NewServer(err)
	}

	cToken := s.token.Generate()
	cTokenHash, err := s.hmac.Hash(cToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash challenge token", "error", err)
		return nil, goerror.NewServer(err)
	}

	expiresAt := s.clock.Now().Add(s.cfg.GetMinute("modules.auth.challenge_ttl_minutes"))
	reg := entity.Registration{
		User: entity.User{
			ID:           newUserID,
			Username:     in.Username,
			PasswordHash: string(hashedPassword),
			TOTPSecret:   sealedSecret,
		},
		Challenge: entity.Challenge{
			ID:        s.uid.Generate(),
			UserID:    newUserID,
			TokenHash: string(cTokenHash),
			ExpiresAt: expiresAt,
		},
	}

	if err := s.repoDB.NewRegistration(ctx, reg); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("Username already registered", goerror.CodeConflict)
		}

		slog.ErrorContext(ctx, "failed to repo new registration", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	qr, err := qrcode.GenerateBase64Image(uri, 0)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render provisioning qr code", "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishRegistered(ctx, RegisteredEvent{
		UserID:   newUserID,
		Username: in.Username,
		At:       s.clock.Now(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish registered event", "user_id", newUserID, "error", err)
	}

	return &RegisterOutput{
		ChallengeToken: cToken,
		Secret:         secret,
		URI:            uri,
		QRCode:         qr,
		ExpiresAt:      expiresAt,
	}, nil
}
