package usecase

import (
	"context"
	"encoding/base32"
	"log/slog"
	"strings"
	"time"

	"github.com/otpvault/otpvault/internal/pkg/clock"
	"github.com/otpvault/otpvault/internal/pkg/config"
	"github.com/otpvault/otpvault/internal/pkg/goerror"
	"github.com/otpvault/otpvault/internal/pkg/idempotency"
	"github.com/otpvault/otpvault/internal/pkg/instrument"
	"github.com/otpvault/otpvault/internal/pkg/jwt"
	"github.com/otpvault/otpvault/internal/pkg/otp"
	"github.com/otpvault/otpvault/internal/pkg/secretbox"
	"github.com/otpvault/otpvault/internal/pkg/uid"
	"github.com/otpvault/otpvault/internal/pkg/validator"
	"github.com/otpvault/otpvault/internal/vault/entity"
	"go.opentelemetry.io/otel/trace"
)

type VaultChangedEvent struct {
	UserID uint64
	Action string
	Count  int
	At     time.Time
}

type repoMessaging interface {
	PublishVaultChanged(ctx context.Context, msg VaultChangedEvent) error
}

type repoDB interface {
	CreateToken(ctx context.Context, tok entity.Token) error
	DeleteToken(ctx context.Context, id, userID uint64) error
	ListTokens(ctx context.Context, userID uint64) ([]entity.Token, error)
	ImportTokens(ctx context.Context, toks []entity.Token) (int, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	sealer        secretbox.Sealer
	uid           uid.NumberID
	totp          otp.OTP
	clock         clock.Clocker
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	Sealer        secretbox.Sealer
	UID           uid.NumberID
	Totp          otp.OTP
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		sealer:        dep.Sealer,
		uid:           dep.UID,
		totp:          dep.Totp,
		clock:         dep.Clock,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("vault.usecase").Start(ctx, name)
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// normalizeSecret uppercases a base32 seed, strips spaces and padding, and
// rejects anything that does not decode.
func normalizeSecret(secret string) (string, error) {
	s := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(secret), " ", ""))
	s = strings.TrimRight(s, "=")
	if s == "" {
		return "", goerror.NewBusiness("Secret must not be empty", goerror.CodeInvalidInput)
	}

	if _, err := b32.DecodeString(s); err != nil {
		return "", goerror.NewBusiness("Secret must be base32 encoded", goerror.CodeInvalidInput)
	}

	return s, nil
}

func (s *Usecase) notifyChanged(ctx context.Context, userID uint64, action string, count int) {
	if err := s.repoMessaging.PublishVaultChanged(ctx, VaultChangedEvent{
		UserID: userID,
		Action: action,
		Count:  count,
		At:     s.clock.Now(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish vault changed event", "user_id", userID, "error", err)
	}
}
