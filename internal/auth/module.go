// Package auth wires the registration, enrollment, and session module.
package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/otpvault/otpvault/internal/auth/inbound"
	"github.com/otpvault/otpvault/internal/auth/outbound/cache"
	"github.com/otpvault/otpvault/internal/auth/outbound/db"
	"github.com/otpvault/otpvault/internal/auth/outbound/mq"
	"github.com/otpvault/otpvault/internal/auth/usecase"
	"github.com/otpvault/otpvault/internal/pkg/clock"
	"github.com/otpvault/otpvault/internal/pkg/config"
	"github.com/otpvault/otpvault/internal/pkg/goroutine"
	"github.com/otpvault/otpvault/internal/pkg/hash"
	"github.com/otpvault/otpvault/internal/pkg/instrument"
	"github.com/otpvault/otpvault/internal/pkg/jwt"
	"github.com/otpvault/otpvault/internal/pkg/messaging"
	"github.com/otpvault/otpvault/internal/pkg/otp"
	"github.com/otpvault/otpvault/internal/pkg/router"
	"github.com/otpvault/otpvault/internal/pkg/secretbox"
	"github.com/otpvault/otpvault/internal/pkg/uid"
	"github.com/otpvault/otpvault/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

// Sessions is the Redis-backed session denylist. The HTTP router consults
// it on every authenticated request, so it is built before the router and
// handed to this module.
type Sessions = cache.Sessions

// NewSessions builds the session denylist.
func NewSessions(client *redis.Client, ins instrument.Instrumentation) *Sessions {
	return cache.NewSessions(client, ins)
}

type Dependency struct {
	Ctx        context.Context            `validate:"required"`
	DBConn     *pgxpool.Pool              `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Sessions   *Sessions                  `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Token      uid.StringID               `validate:"required"`
	HMAC       hash.Hash                  `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	Sealer     secretbox.Sealer           `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Totp       otp.OTP                    `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAuth := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbAuth,
		RepoMessaging: repoMsg,
		RepoSessions:  dep.Sessions,
		Validator:     dep.Validator,
		Config:        dep.Config,
		HMAC:          dep.HMAC,
		Bcrypt:        dep.Bcrypt,
		Sealer:        dep.Sealer,
		UID:           dep.UID,
		Token:         dep.Token,
		Totp:          dep.Totp,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	if interval := dep.Config.GetMinute("modules.auth.challenge_sweep_interval_minutes"); interval > 0 {
		dep.Goroutine.Go(dep.Ctx, func(ctx context.Context) error {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					//nolint:errcheck // logged inside
					_ = uc.SweepChallenges(ctx)
				}
			}
		})
	}

	return nil
}
