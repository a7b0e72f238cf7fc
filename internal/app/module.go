package app

import (
	"log/slog"
	"os"

	"github.com/otpvault/otpvault/internal/auth"
	"github.com/otpvault/otpvault/internal/vault"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.auth.enabled") {
		if err := auth.New(auth.Dependency{
			Ctx:        a.ctx,
			Goroutine:  a.goroutine,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			Token:      a.token,
			Bcrypt:     a.bcrypt,
			HMAC:       a.hmac,
			Sealer:     a.sealer,
			Clock:      a.clock,
			Validator:  a.validator,
			Router:     a.router,
			Totp:       a.totp,
			DBConn:     a.dbConn,
			Sessions:   a.sessions,
			Messaging:  a.messaging,
			JWT:        a.jwt,
		}); err != nil {
			slog.Error("failed to init module auth", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.vault.enabled") {
		if err := vault.New(vault.Dependency{
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			Sealer:      a.sealer,
			Clock:       a.clock,
			Validator:   a.validator,
			Router:      a.router,
			Totp:        a.totp,
			DBConn:      a.dbConn,
			Idempotency: a.idemp,
			Messaging:   a.messaging,
		}); err != nil {
			slog.Error("failed to init module vault", "error", err)
			os.Exit(1)
		}
	}
}
