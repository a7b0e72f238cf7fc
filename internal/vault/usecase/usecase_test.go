package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	libjwt "github.com/golang-jwt/jwt/v5"
	libotp "github.com/pquerna/otp"
	"github.com/otpvault/otpvault/internal/pkg/config"
	"github.com/otpvault/otpvault/internal/pkg/goerror"
	"github.com/otpvault/otpvault/internal/pkg/idempotency"
	"github.com/otpvault/otpvault/internal/pkg/instrument"
	"github.com/otpvault/otpvault/internal/pkg/jwt"
	"github.com/otpvault/otpvault/internal/pkg/otp"
	"github.com/otpvault/otpvault/internal/pkg/secretbox"
	"github.com/otpvault/otpvault/internal/pkg/validator"
	"github.com/otpvault/otpvault/internal/vault/entity"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)

const testSeed = "JBSWY3DPEHPK3PXP"

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

type seqUID struct {
	mu   sync.Mutex
	next uint64
}

func (s *seqUID) Generate() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}

type fakeDB struct {
	mu        sync.Mutex
	tokens    []entity.Token
	createErr error
}

func (f *fakeDB) CreateToken(_ context.Context, tok entity.Token) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}

	for _, t := range f.tokens {
		if t.UserID == tok.UserID && t.Service == tok.Service {
			return goerror.ErrConflict
		}
	}

	tok.CreatedAt = testNow
	f.tokens = append(f.tokens, tok)
	return nil
}

func (f *fakeDB) DeleteToken(_ context.Context, id, userID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tokens {
		if t.ID == id && t.UserID == userID {
			f.tokens = append(f.tokens[:i], f.tokens[i+1:]...)
			return nil
		}
	}
	return goerror.ErrNotFound
}

func (f *fakeDB) ListTokens(_ context.Context, userID uint64) ([]entity.Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []entity.Token
	for _, t := range f.tokens {
		if t.UserID == userID {
			out = append(out, t)
		}
	}

	// creation order, matching the query
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].ID < out[j-1].ID; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

func (f *fakeDB) ImportTokens(_ context.Context, toks []entity.Token) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	imported := 0
	for _, tok := range toks {
		exists := false
		for _, t := range f.tokens {
			if t.UserID == tok.UserID && t.Service == tok.Service {
				exists = true
				break
			}
		}
		if exists {
			continue
		}

		tok.CreatedAt = testNow
		f.tokens = append(f.tokens, tok)
		imported++
	}
	return imported, nil
}

type fakeMQ struct {
	events []VaultChangedEvent
}

func (f *fakeMQ) PublishVaultChanged(_ context.Context, msg VaultChangedEvent) error {
	f.events = append(f.events, msg)
	return nil
}

type fakeIdempotency struct {
	execCalls int
	done      map[string]bool
}

func newFakeIdempotency() *fakeIdempotency {
	return &fakeIdempotency{done: make(map[string]bool)}
}

func (f *fakeIdempotency) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}

func (f *fakeIdempotency) MarkCompleted(_ context.Context, key string, _ time.Duration) error {
	f.done[key] = true
	return nil
}

func (f *fakeIdempotency) MarkFailed(context.Context, string, time.Duration) error {
	return nil
}

func (f *fakeIdempotency) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	f.execCalls++
	if f.done[key] {
		return idempotency.ErrAlreadyCompleted
	}

	if err := fn(ctx); err != nil {
		return err
	}

	f.done[key] = true
	return nil
}

type fakeConfig struct {
	config.Config
}

func (fakeConfig) GetMinute(string) time.Duration {
	return time.Hour
}

type fixture struct {
	uc     *Usecase
	db     *fakeDB
	mq     *fakeMQ
	idemp  *fakeIdempotency
	clock  *fixedClock
	totp   otp.OTP
	sealer secretbox.Sealer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	f := &fixture{
		db:     &fakeDB{},
		mq:     &fakeMQ{},
		idemp:  newFakeIdempotency(),
		clock:  &fixedClock{now: testNow},
		totp:   otp.NewTOTP("OTP Vault", 30, 1, libotp.DigitsSix),
		sealer: secretbox.NewAESGCM(secretbox.StaticKeyProvider{KeyBytes: []byte("0123456789abcdef0123456789abcdef")}),
	}

	f.uc = New(Dependency{
		RepoDB:        f.db,
		RepoMessaging: f.mq,
		Idempotency:   f.idemp,
		Validator:     v,
		Config:        fakeConfig{},
		Sealer:        f.sealer,
		UID:           &seqUID{},
		Totp:          f.totp,
		Clock:         f.clock,
		Instrument:    instrument.NewNoop(),
	})

	return f
}

func authContext(userID int64) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{
		RegisteredClaims: libjwt.RegisteredClaims{ID: "jti-1"},
		UserID:           userID,
		Username:         "alice",
	})
}

func errCode(t *testing.T, err error) goerror.Code {
	t.Helper()

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	return gerr.Code()
}
