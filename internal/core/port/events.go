package port

import (
	"context"

	"github.com/parkit/parkit-auth/internal/core/domain"
)

// EventPublisher publishes domain events to the message bus.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error
	PublishPasswordResetRequested(ctx context.Context, event domain.PasswordResetRequestedEvent) error
	PublishParkingPreEnrolled(ctx context.Context, event domain.ParkingPreEnrolledEvent) error
}
