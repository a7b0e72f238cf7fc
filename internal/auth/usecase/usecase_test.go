package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	libotp "github.com/pquerna/otp"
	"github.com/otpvault/otpvault/internal/auth/entity"
	"github.com/otpvault/otpvault/internal/pkg/config"
	"github.com/otpvault/otpvault/internal/pkg/goerror"
	"github.com/otpvault/otpvault/internal/pkg/hash"
	"github.com/otpvault/otpvault/internal/pkg/instrument"
	"github.com/otpvault/otpvault/internal/pkg/jwt"
	"github.com/otpvault/otpvault/internal/pkg/otp"
	"github.com/otpvault/otpvault/internal/pkg/secretbox"
	"github.com/otpvault/otpvault/internal/pkg/validator"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)

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

type seqStringID struct {
	mu   sync.Mutex
	next int
}

func (s *seqStringID) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("fixed-token-%d", s.next)
}

type fakeDB struct {
	usersByName map[string]entity.User
	challenges  map[string]entity.Challenge

	getChallengeCalls int
	failWith          error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		usersByName: make(map[string]entity.User),
		challenges:  make(map[string]entity.Challenge),
	}
}

func (f *fakeDB) GetUserByUsername(_ context.Context, username string) (entity.User, error) {
	if f.failWith != nil {
		return entity.User{}, f.failWith
	}

	u, ok := f.usersByName[username]
	if !ok {
		return entity.User{}, goerror.ErrNotFound
	}
	return u, nil
}

func (f *fakeDB) GetChallengeUserByTokenHash(_ context.Context, tokenHash string) (entity.ChallengeUser, error) {
	f.getChallengeCalls++

	chal, ok := f.challenges[tokenHash]
	if !ok {
		return entity.ChallengeUser{}, goerror.ErrNotFound
	}

	for _, u := range f.usersByName {
		if u.ID == chal.UserID {
			return entity.ChallengeUser{
				ChallengeID: chal.ID,
				UserID:      u.ID,
				Username:    u.Username,
				TOTPSecret:  u.TOTPSecret,
				EnrolledAt:  u.EnrolledAt,
				ExpiresAt:   chal.ExpiresAt,
			}, nil
		}
	}
	return entity.ChallengeUser{}, goerror.ErrNotFound
}

func (f *fakeDB) NewRegistration(_ context.Context, reg entity.Registration) error {
	if _, ok := f.usersByName[reg.User.Username]; ok {
		return goerror.ErrConflict
	}

	f.usersByName[reg.User.Username] = reg.User
	f.challenges[reg.Challenge.TokenHash] = reg.Challenge
	return nil
}

func (f *fakeDB) VerifyEnrollment(_ context.Context, challengeID, userID uint64, at time.Time) error {
	for name, u := range f.usersByName {
		if u.ID == userID {
			enrolled := at
			u.EnrolledAt = &enrolled
			f.usersByName[name] = u
		}
	}
	for hash, chal := range f.challenges {
		if chal.ID == challengeID {
			delete(f.challenges, hash)
		}
	}
	return nil
}

func (f *fakeDB) DeleteExpiredChallenges(_ context.Context, before time.Time) (int64, error) {
	var n int64
	for hash, chal := range f.challenges {
		if chal.ExpiresAt.Before(before) {
			delete(f.challenges, hash)
			n++
		}
	}
	return n, nil
}

type fakeMQ struct {
	registered  int
	loggedIn    int
	loginFailed int
}

func (f *fakeMQ) PublishRegistered(context.Context, RegisteredEvent) error {
	f.registered++
	return nil
}

func (f *fakeMQ) PublishLoggedIn(context.Context, LoggedInEvent) error {
	f.loggedIn++
	return nil
}

func (f *fakeMQ) PublishLoginFailed(context.Context, LoginFailedEvent) error {
	f.loginFailed++
	return nil
}

type fakeSessions struct {
	revoked map[string]time.Duration
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{revoked: make(map[string]time.Duration)}
}

func (f *fakeSessions) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	f.revoked[jti] = ttl
	return nil
}

func (f *fakeSessions) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := f.revoked[jti]
	return ok, nil
}

type fakeConfig struct {
	config.Config
}

func (fakeConfig) GetMinute(string) time.Duration {
	return 15 * time.Minute
}

type fixture struct {
	uc       *Usecase
	db       *fakeDB
	mq       *fakeMQ
	sessions *fakeSessions
	clock    *fixedClock
	totp     otp.OTP
	sealer   secretbox.Sealer
	hmac     hash.Hash
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	clk := &fixedClock{now: testNow}
	uuid := &seqStringID{}
	signer, err := jwt.NewHS512(jwt.Config{
		Secret:     []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
		Issuer:     "otpvault",
		Audiences:  []string{"otpvault"},
		TTLMinutes: time.Hour,
		Clock:      clk,
		UUID:       uuid,
	})
	require.NoError(t, err)

	sealer := secretbox.NewAESGCM(secretbox.StaticKeyProvider{
		KeyBytes: []byte("0123456789abcdef0123456789abcdef"),
	})
	hm := hash.NewHMACSHA256("hmac-secret")

	f := &fixture{
		db:       newFakeDB(),
		mq:       &fakeMQ{},
		sessions: newFakeSessions(),
		clock:    clk,
		totp:     otp.NewTOTP("OTP Vault", 30, 1, libotp.DigitsSix),
		sealer:   sealer,
		hmac:     hm,
	}

	f.uc = New(Dependency{
		RepoDB:        f.db,
		RepoMessaging: f.mq,
		RepoSessions:  f.sessions,
		Validator:     v,
		Config:        fakeConfig{},
		HMAC:          hm,
		Bcrypt:        hash.NewBcrypt(4, "pepper"),
		Sealer:        sealer,
		UID:           &seqUID{},
		Token:         &seqStringID{},
		Totp:          f.totp,
		Clock:         clk,
		JWT:           signer,
		Instrument:    instrument.NewNoop(),
	})

	return f
}

func errCode(t *testing.T, err error) goerror.Code {
	t.Helper()

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	return gerr.Code()
}
