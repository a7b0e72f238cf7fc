package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/otpvault/otpvault/internal/auth"
	"github.com/otpvault/otpvault/internal/pkg/clock"
	"github.com/otpvault/otpvault/internal/pkg/config"
	"github.com/otpvault/otpvault/internal/pkg/goroutine"
	"github.com/otpvault/otpvault/internal/pkg/hash"
	"github.com/otpvault/otpvault/internal/pkg/idempotency"
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

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	bcrypt    hash.Hash
	uid       uid.NumberID
	token     uid.StringID
	uuid      uid.StringID
	totp      otp.OTP
	jwt       jwt.JWT
	sealer    secretbox.Sealer

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	messaging messaging.Messaging
	sessions  *auth.Sessions

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
