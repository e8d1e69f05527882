package domain

import "time"

const (
	// AccessTokenTTL is the lifetime of tokens issued on login.
	AccessTokenTTL = 4 * time.Hour
	// ResetTokenTTL is the lifetime of tokens embedded in reset links.
	ResetTokenTTL = 15 * time.Minute
)

// AccessClaims is the identity snapshot embedded in an access token.
type AccessClaims struct {
	Subject   int64
	Email     string
	Name      string
	LastName  string
	RoleID    int
	StatusID  int
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// NewAccessClaims builds access claims from a user record.
func NewAccessClaims(u User) AccessClaims {
	return AccessClaims{
		Subject:  u.ID,
		Email:    u.Email,
		Name:     u.Name,
		LastName: u.LastName,
		RoleID:   u.RoleID,
		StatusID: u.StatusID,
	}
}

// ResetClaims carries only the subject of a password reset link.
type ResetClaims struct {
	Subject int64
}
