package domain

import "strings"

const (
	// StatusActive marks an account allowed to log in.
	StatusActive = 1
	// RolePlatformUser is the only role allowed to self-service a password reset.
	RolePlatformUser = 1
)

// User mirrors the persisted representation in the users table.
type User struct {
	ID           int64
	Name         string
	LastName     string
	Email        string
	Phone        *string
	UserName     string
	PasswordHash string
	RoleID       int
	StatusID     int
}

// PlainUser is the public projection of a user. It never carries the password hash.
type PlainUser struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	LastName string  `json:"lastName"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	UserName string  `json:"userName"`
	RoleID   int     `json:"idRole"`
	StatusID int     `json:"idStatus"`
}

// IsActive reports whether the account may authenticate.
func (u User) IsActive() bool {
	return u.StatusID == StatusActive
}

// HasRole reports whether the user holds the given role.
func (u User) HasRole(roleID int) bool {
	return u.RoleID == roleID
}

// FullName joins name and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.Name + " " + u.LastName)
}

// Plain returns the user without credentials.
func (u User) Plain() PlainUser {
	return PlainUser{
		ID:       u.ID,
		Name:     u.Name,
		LastName: u.LastName,
		Email:    u.Email,
		Phone:    u.Phone,
		UserName: u.UserName,
		RoleID:   u.RoleID,
		StatusID: u.StatusID,
	}
}
