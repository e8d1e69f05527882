package port

import (
	"context"

	"github.com/parkit/parkit-auth/internal/core/domain"
)

// UserRepository exposes persistence behavior for users.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByEmailOrUserName(ctx context.Context, email, userName string) (*domain.User, error)
	// ValidateCredentials returns the user only when the password matches the stored hash.
	ValidateCredentials(ctx context.Context, email, password string) (*domain.User, error)
}
