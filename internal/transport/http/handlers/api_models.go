package handlers

import (
	"time"

	"github.com/parkit/parkit-auth/internal/core/domain"
)

// OutcomeResponse documents the uniform result envelope.
type OutcomeResponse struct {
	Code    string `json:"code" example:"KHL_EMAIL_SENT"`
	Message string `json:"message,omitempty" example:"The mail was sent"`
	Status  int    `json:"status,omitempty" example:"200"`
	Data    any    `json:"data"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	AccessToken string           `json:"access_token"`
	User        domain.PlainUser `json:"user"`
}

// ForgotPasswordRequest carries the address that should receive the reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email" example:"usuario@correo.com"`
}

// RegistrationRequest defines the payload for creating a user.
type RegistrationRequest struct {
	Name     string  `json:"name" binding:"required" example:"Ana"`
	LastName string  `json:"lastName" binding:"required" example:"Lopez"`
	Phone    *string `json:"phone" example:"3001234567"`
	Email    string  `json:"email" binding:"required,email" example:"ana@parkit.co"`
	Password string  `json:"password" binding:"required" example:"Sup3rSecret!"`
	UserName string  `json:"userName" binding:"required" example:"alopez"`
	RoleID   int     `json:"idRole" binding:"omitempty,min=1" example:"1"`
}

// RegistrationResponse echoes the stored user without credentials.
type RegistrationResponse struct {
	UserID int64            `json:"userId"`
	User   domain.PlainUser `json:"user"`
}

// PreEnrollRequest defines the payload for a parking pre-enrollment.
type PreEnrollRequest struct {
	LegalRepresentative string  `json:"legalRepresentative" binding:"required" example:"Maria Ruiz"`
	NitDV               string  `json:"nitDV" binding:"required" example:"900123456-7"`
	Phone               string  `json:"phone" binding:"required" example:"3001234567"`
	Email               string  `json:"email" binding:"required,email" example:"parking@centro.co"`
	Address             string  `json:"address" binding:"required" example:"Calle 10 # 5-20"`
	City                int     `json:"city" binding:"required" example:"11001"`
	Neighborhood        string  `json:"neighborhood" binding:"required" example:"Centro"`
	HasBranches         *bool   `json:"hasBranches" binding:"required" example:"false"`
	NumberOfBranches    *int    `json:"numberOfBranches" binding:"required" example:"0"`
	CompanyName         string  `json:"companyName" binding:"required" example:"Parqueadero Centro"`
	DocumentType        string  `json:"documentType" binding:"required" example:"CC"`
	DocumentNumber      string  `json:"documentNumber" binding:"required" example:"1020304050"`
	InternalID          *string `json:"internalId" example:"123456"`
}

// PreEnrollResponse summarises a stored pre-enrollment.
type PreEnrollResponse struct {
	LegalRepresentative string  `json:"legalRepresentative"`
	CompanyName         string  `json:"companyName"`
	ExternalID          *string `json:"externalId"`
	InternalID          *string `json:"internalId"`
}

// MeResponse exposes the claims of the caller's access token.
type MeResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	RoleID   int    `json:"idRole"`
	StatusID int    `json:"idStatus"`
}

// HealthResponse describes the liveness payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadinessResponse lists the state of each dependency.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
