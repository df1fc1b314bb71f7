package memory

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/talenthub/account-service/internal/application/auth"
)

// NoopPublisher logs events instead of publishing them. Used in dev when
// RabbitMQ is not configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (p *NoopPublisher) PublishUserRegistered(ctx context.Context, evt auth.UserRegisteredEvent) error {
	log.Info().Str("user_id", evt.UserID).Str("email", evt.Email).Str("role", evt.Role).
		Msg("[noop-pub] user registered")
	return nil
}

func (p *NoopPublisher) PublishPasswordReset(ctx context.Context, evt auth.PasswordResetEvent) error {
	log.Info().Str("user_id", evt.UserID).Str("email", evt.Email).Str("url", evt.URL).
		Msg("[noop-pub] password reset requested")
	return nil
}

func (p *NoopPublisher) PublishPasswordChanged(ctx context.Context, evt auth.PasswordChangedEvent) error {
	log.Info().Str("user_id", evt.UserID).Str("email", evt.Email).
		Msg("[noop-pub] password changed")
	return nil
}
