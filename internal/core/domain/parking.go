package domain

import "regexp"

// ParkingStatusActive is the status assigned to new pre-enrollments.
const ParkingStatusActive = 1

var (
	parkingEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	parkingPhoneRegex = regexp.MustCompile(`^\d{1,10}$`)
)

// PreEnrolledParking is a parking provider that applied to join the platform.
type PreEnrolledParking struct {
	ID                  int64
	LegalRepresentative string
	NitDV               string
	Phone               string
	Email               string
	Address             string
	City                int
	Neighborhood        string
	HasBranches         bool
	NumberOfBranches    int
	CompanyName         string
	DocumentType        string
	DocumentNumber      string
	IDFiles             *int
	Status              int
	InternalID          *string
	ExternalID          *string
}

func (p PreEnrolledParking) IsActive() bool {
	return p.Status == ParkingStatusActive
}

func (p PreEnrolledParking) HasMultipleBranches() bool {
	return p.HasBranches && p.NumberOfBranches > 1
}

func (p PreEnrolledParking) FullAddress() string {
	return p.Address + ", " + p.Neighborhood
}

func (p PreEnrolledParking) HasValidEmail() bool {
	return parkingEmailRegex.MatchString(p.Email)
}

func (p PreEnrolledParking) HasValidPhone() bool {
	return parkingPhoneRegex.MatchString(p.Phone)
}
