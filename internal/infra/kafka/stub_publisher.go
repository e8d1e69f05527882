package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/parkit/parkit-auth/internal/core/domain"
	"github.com/parkit/parkit-auth/internal/core/port"
	"github.com/parkit/parkit-auth/internal/infra/logger"
)

// StubPublisher logs events instead of sending them. Used when no brokers are configured.
type StubPublisher struct {
	logger *zap.Logger
}

func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType string, at time.Time, fields ...zap.Field) {
	if at.IsZero() {
		at = time.Now()
	}
	p.logger.Info("stub event published", append([]zap.Field{
		zap.String("event_type", eventType),
		zap.Time("timestamp", at.UTC()),
	}, fields...)...)
}

func (p *StubPublisher) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	p.logEvent(topicUserRegistered, event.RegisteredAt,
		zap.Int64("user_id", event.UserID),
		zap.String("email", logger.MaskEmail(event.Email)),
	)
	return nil
}

func (p *StubPublisher) PublishPasswordResetRequested(_ context.Context, event domain.PasswordResetRequestedEvent) error {
	p.logEvent(topicPasswordResetRequested, event.RequestedAt,
		zap.Int64("user_id", event.UserID),
		zap.String("destination", event.MaskedDestination),
	)
	return nil
}

func (p *StubPublisher) PublishParkingPreEnrolled(_ context.Context, event domain.ParkingPreEnrolledEvent) error {
	p.logEvent(topicParkingPreEnrolled, event.EnrolledAt,
		zap.Int64("parking_id", event.ParkingID),
		zap.String("company_name", event.CompanyName),
		zap.Int("city", event.City),
		zap.Bool("multi_branch", event.MultiBranch),
	)
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
