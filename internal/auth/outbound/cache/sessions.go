// Package cache keeps the session denylist in Redis so sign out takes
// effect immediately across instances.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/otpvault/otpvault/internal/pkg/instrument"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const revokedKeyPrefix = "sessions:revoked:"

type Sessions struct {
	client *redis.Client
	ins    instrument.Instrumentation
}

func NewSessions(client *redis.Client, ins instrument.Instrumentation) *Sessions {
	return &Sessions{
		client: client,
		ins:    ins,
	}
}

// Revoke denylists the token id until it would have expired anyway.
// Revoking an already revoked id is a no-op.
func (s *Sessions) Revoke(ctx context.Context, jti string, ttl time.Duration) (err error) {
	ctx, span := s.startSpan(ctx, "Revoke")
	defer func() { s.endSpan(span, err) }()

	if ttl <= 0 {
		return nil
	}

	err = s.client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
	return err
}

// IsRevoked reports whether the token id has been denylisted.
func (s *Sessions) IsRevoked(ctx context.Context, jti string) (revoked bool, err error) {
	ctx, span := s.startSpan(ctx, "IsRevoked")
	defer func() { s.endSpan(span, err) }()

	if err := s.client.Get(ctx, revokedKeyPrefix+jti).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (s *Sessions) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.outbound.cache").Start(ctx, name)
}

func (s *Sessions) endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
