package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/otpvault/otpvault/internal/pkg/goerror"
	"github.com/otpvault/otpvault/internal/pkg/secretbox"
)

type LoginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
	Code     string `validate:"required"`
}

type LoginOutput struct {
	AccessToken string
}

// Login verifies the password and the authenticator code in one step.
// Every rejection uses the same message so callers cannot probe which
// part failed or whether the account exists.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if !s.totp.CheckFormat(in.Code) {
		return nil, s.rejectLogin(ctx, in.Username, "code format")
	}

	user, err := s.repoDB.GetUserByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, s.rejectLogin(ctx, in.Username, "unknown username")
		}

		slog.ErrorContext(ctx, "failed to repo get user by username", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(user.PasswordHash, in.Password) {
		return nil, s.rejectLogin(ctx, in.Username, "password mismatch")
	}

	if !user.Enrolled() {
		return nil, s.rejectLogin(ctx, in.Username, "not enrolled")
	}

	secret, err := s.sealer.Open(user.TOTPSecret, secretbox.Scope{
		UserID:  int64(user.ID),
		Purpose: secretbox.PurposeLoginSeed,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to open authenticator seed", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.totp.Validate(in.Code, string(secret), s.clock.Now()) {
		return nil, s.rejectLogin(ctx, in.Username, "code mismatch")
	}

	token, err := s.jwt.Generate(int64(user.ID), user.Username)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishLoggedIn(ctx, LoggedInEvent{
		UserID:   user.ID,
		Username: user.Username,
		At:       s.clock.Now(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish logged in event", "user_id", user.ID, "error", err)
	}

	return &LoginOutput{AccessToken: token}, nil
}

func (s *Usecase) rejectLogin(ctx context.Context, username, reason string) error {
	slog.WarnContext(ctx, "login rejected", "username", username, "reason", reason)

	if err := s.repoMessaging.PublishLoginFailed(ctx, LoginFailedEvent{
		Username: username,
		At:       s.clock.Now(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish login failed event", "error", err)
	}

	return goerror.NewBusiness("Invalid username, password, or code", goerror.CodeUnauthorized)
}
