package mq

import (
	"context"
	"encoding/json"

	"github.com/otpvault/otpvault/internal/auth/usecase"
	"github.com/otpvault/otpvault/internal/pkg/instrument"
	"github.com/otpvault/otpvault/internal/pkg/messaging"
	"github.com/otpvault/otpvault/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishRegistered(ctx context.Context, msg usecase.RegisteredEvent) error {
	ctx, span := m.ins.Tracer("auth.outbound.mq").Start(ctx, "PublishRegistered")
	defer span.End()

	return m.publish(ctx, span, event.AuthRegisteredDestination, event.AuthRegisteredMessage{
		UserID:   msg.UserID,
		Username: msg.Username,
		At:       msg.At,
	})
}

func (m *Messaging) PublishLoggedIn(ctx context.Context, msg usecase.LoggedInEvent) error {
	ctx, span := m.ins.Tracer("auth.outbound.mq").Start(ctx, "PublishLoggedIn")
	defer span.End()

	return m.publish(ctx, span, event.AuthLoggedInDestination, event.AuthLoggedInMessage{
		UserID:   msg.UserID,
		Username: msg.Username,
		At:       msg.At,
	})
}

func (m *Messaging) PublishLoginFailed(ctx context.Context, msg usecase.LoginFailedEvent) error {
	ctx, span := m.ins.Tracer("auth.outbound.mq").Start(ctx, "PublishLoginFailed")
	defer span.End()

	return m.publish(ctx, span, event.AuthLoginFailedDestination, event.AuthLoginFailedMessage{
		Username: msg.Username,
		At:       msg.At,
	})
}

func (m *Messaging) publish(ctx context.Context, span trace.Span, destination string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, destination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
