package domain

import "time"

// UserRegisteredEvent represents the payload for parkit.user.registered messages.
type UserRegisteredEvent struct {
	EventID      string
	UserID       int64
	UserName     string
	Email        string
	RoleID       int
	RegisteredAt time.Time
}

// PasswordResetRequestedEvent represents the payload for parkit.user.password.reset_requested messages.
type PasswordResetRequestedEvent struct {
	EventID           string
	UserID            int64
	RequestedAt       time.Time
	ExpiresAt         time.Time
	TemplateName      string
	MaskedDestination string
}

// ParkingPreEnrolledEvent represents the payload for parkit.parking.pre_enrolled messages.
type ParkingPreEnrolledEvent struct {
	EventID     string
	ParkingID   int64
	CompanyName string
	Email       string
	Address     string
	City        int
	MultiBranch bool
	InternalID  *string
	ExternalID  *string
	EnrolledAt  time.Time
}
