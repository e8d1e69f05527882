package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parkit/parkit-auth/internal/core/port"
)

// Repositories groups concrete PostgreSQL repository implementations.
type Repositories struct {
	Users    *UserRepository
	Parkings *ParkingRepository
}

// NewRepositories wires all repositories backed by the provided pool.
func NewRepositories(pool *pgxpool.Pool, hasher port.PasswordHasher) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(pool, hasher),
		Parkings: NewParkingRepository(pool),
	}
}
