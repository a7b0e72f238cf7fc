package usecase

import (
	"context"
	"time"

	"github.com/otpvault/otpvault/internal/auth/entity"
	"github.com/otpvault/otpvault/internal/pkg/clock"
	"github.com/otpvault/otpvault/internal/pkg/config"
	"github.com/otpvault/otpvault/internal/pkg/goerror"
	"github.com/otpvault/otpvault/internal/pkg/hash"
	"github.com/otpvault/otpvault/internal/pkg/instrument"
	"github.com/otpvault/otpvault/internal/pkg/jwt"
	"github.com/otpvault/otpvault/internal/pkg/otp"
	"github.com/otpvault/otpvault/internal/pkg/secretbox"
	"github.com/otpvault/otpvault/internal/pkg/uid"
	"github.com/otpvault/otpvault/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type RegisteredEvent struct {
	UserID   uint64
	Username string
	At       time.Time
}

type LoggedInEvent struct {
	UserID   uint64
	Username string
	At       time.Time
}

type LoginFailedEvent struct {
	Username string
	At       time.Time
}

type repoMessaging interface {
	PublishRegistered(ctx context.Context, msg RegisteredEvent) error
	PublishLoggedIn(ctx context.Context, msg LoggedInEvent) error
	PublishLoginFailed(ctx context.Context, msg LoginFailedEvent) error
}

type repoDB interface {
	GetUserByUsername(ctx context.Context, username string) (entity.User, error)
	GetChallengeUserByTokenHash(ctx context.Context, tokenHash string) (entity.ChallengeUser, error)

	NewRegistration(ctx context.Context, reg entity.Registration) error
	VerifyEnrollment(ctx context.Context, challengeID, userID uint64, at time.Time) error
	DeleteExpiredChallenges(ctx context.Context, before time.Time) (int64, error)
}

type repoSessions interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	repoSessions  repoSessions
	validator     validator.Validator
	cfg           config.Config
	hmac          hash.Hash
	bcrypt        hash.Hash
	sealer        secretbox.Sealer
	uid           uid.NumberID
	token         uid.StringID
	totp          otp.OTP
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	RepoSessions  repoSessions
	Validator     validator.Validator
	Config        config.Config
	HMAC          hash.Hash
	Bcrypt        hash.Hash
	Sealer        secretbox.Sealer
	UID           uid.NumberID
	Token         uid.StringID
	Totp          otp.OTP
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		repoSessions:  dep.RepoSessions,
		validator:     dep.Validator,
		cfg:           dep.Config,
		hmac:          dep.HMAC,
		bcrypt:        dep.Bcrypt,
		sealer:        dep.Sealer,
		uid:           dep.UID,
		token:         dep.Token,
		totp:          dep.Totp,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}
