package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/otpvault/otpvault/internal/pkg/goerror"
	"github.com/otpvault/otpvault/internal/pkg/secretbox"
)

type RegisterVerifyInput struct {
	ChallengeToken string `validate:"required"`
	Code           string `validate:"required"`
}

type RegisterVerifyOutput struct {
	AccessToken string
}

// RegisterVerify redeems a registration challenge with a code from the
// freshly enrolled authenticator. A wrong code leaves the challenge intact
// so the caller can retry until it expires.
func (s *Usecase) RegisterVerify(ctx context.Context, in RegisterVerifyInput) (*RegisterVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "RegisterVerify")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if !s.totp.CheckFormat(in.Code) {
		return nil, goerror.NewBusiness("Code must be 6 digits", goerror.CodeInvalidInput)
	}

	tokenHash, err := s.hmac.Hash(in.ChallengeToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash challenge token", "error", err)
		return nil, goerror.NewServer(err)
	}

	chal, err := s.repoDB.GetChallengeUserByTokenHash(ctx, string(tokenHash))
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Invalid challenge token or code", goerror.CodeUnauthorized)
		}

		slog.ErrorContext(ctx, "failed to repo get challenge", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	if now.After(chal.ExpiresAt) {
		return nil, goerror.NewBusiness("Invalid challenge token or code", goerror.CodeUnauthorized)
	}

	if chal.EnrolledAt != nil {
		return nil, goerror.NewBusiness("Account already enrolled", goerror.CodeConflict)
	}

	secret, err := s.sealer.Open(chal.TOTPSecret, secretbox.Scope{
		UserID:  int64(chal.UserID),
		Purpose: secretbox.PurposeLoginSeed,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to open authenticator seed", "user_id", chal.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.totp.Validate(in.Code, string(secret), now) {
		slog.WarnContext(ctx, "enrollment code rejected", "user_id", chal.UserID)
		return nil, goerror.NewBusiness("Invalid challenge token or code", goerror.CodeUnauthorized)
	}

	if err := s.repoDB.VerifyEnrollment(ctx, chal.ChallengeID, chal.UserID, now); err != nil {
		slog.ErrorContext(ctx, "failed to repo verify enrollment", "user_id", chal.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	token, err := s.jwt.Generate(int64(chal.UserID), chal.Username)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access token", "user_id", chal.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RegisterVerifyOutput{AccessToken: token}, nil
}
