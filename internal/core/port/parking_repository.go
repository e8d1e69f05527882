package port

import (
	"context"

	"github.com/parkit/parkit-auth/internal/core/domain"
)

// ParkingRepository persists parking pre-enrollments.
type ParkingRepository interface {
	Create(ctx context.Context, parking domain.PreEnrolledParking) (*domain.PreEnrolledParking, error)
	FindByEmail(ctx context.Context, email string) (*domain.PreEnrolledParking, error)
}
