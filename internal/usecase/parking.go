package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parkit/parkit-auth/internal/core/domain"
	"github.com/parkit/parkit-auth/internal/core/port"
	"github.com/parkit/parkit-auth/internal/infra/logger"
)

const (
	errBranchCount  = "Number of branches must be greater than 0 when hasBranches is true"
	errParkingEmail = "Email must be a valid address"
	errParkingPhone = "Phone must contain between 1 and 10 digits"
)

// PreEnrollInput carries a parking provider application.
type PreEnrollInput struct {
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
	InternalID          *string
}

// ParkingService handles parking pre-enrollment.
type ParkingService struct {
	parkings port.ParkingRepository
	events   port.EventPublisher
	newID    func() string
	now      func() time.Time
	logger   *zap.Logger
}

func NewParkingService(parkings port.ParkingRepository, events port.EventPublisher, logger *zap.Logger) *ParkingService {
	return &ParkingService{
		parkings: parkings,
		events:   events,
		newID:    uuid.NewString,
		now:      time.Now,
		logger:   logger,
	}
}

// PreEnroll stores the application. Providers without an internal id get a
// generated external id.
func (s *ParkingService) PreEnroll(ctx context.Context, input PreEnrollInput) (*domain.PreEnrolledParking, error) {
	log := logger.FromContext(ctx, s.logger)

	parking := domain.PreEnrolledParking{
		LegalRepresentative: input.LegalRepresentative,
		NitDV:               input.NitDV,
		Phone:               input.Phone,
		Email:               input.Email,
		Address:             input.Address,
		City:                input.City,
		Neighborhood:        input.Neighborhood,
		HasBranches:         input.HasBranches,
		NumberOfBranches:    input.NumberOfBranches,
		CompanyName:         input.CompanyName,
		DocumentType:        input.DocumentType,
		DocumentNumber:      input.DocumentNumber,
		Status:              domain.ParkingStatusActive,
	}
	if !parking.HasValidEmail() {
		return nil, domain.NewError(domain.KindBadRequest, errParkingEmail)
	}
	if !parking.HasValidPhone() {
		return nil, domain.NewError(domain.KindBadRequest, errParkingPhone)
	}

	existing, err := s.parkings.FindByEmail(ctx, input.Email)
	if err != nil {
		log.Error("lookup parking by email", zap.Error(err))
		return nil, domain.WrapInfrastructure("find parking by email", err)
	}
	if existing != nil {
		return nil, domain.ErrParkingEmailExists
	}

	if input.HasBranches && input.NumberOfBranches <= 0 {
		return nil, domain.NewError(domain.KindBusinessRuleViolation, errBranchCount)
	}

	if input.InternalID != nil && *input.InternalID != "" {
		internalID := *input.InternalID
		parking.InternalID = &internalID
	} else {
		externalID := s.newID()
		parking.ExternalID = &externalID
	}

	created, err := s.parkings.Create(ctx, parking)
	if err != nil {
		log.Error("create parking pre-enrollment", zap.String("email", logger.MaskEmail(input.Email)), zap.Error(err))
		return nil, domain.WrapInfrastructure("create parking", err)
	}

	s.publishPreEnrolled(ctx, created)
	return created, nil
}

func (s *ParkingService) publishPreEnrolled(ctx context.Context, parking *domain.PreEnrolledParking) {
	// only active applications are announced downstream
	if s.events == nil || !parking.IsActive() {
		return
	}
	event := domain.ParkingPreEnrolledEvent{
		EventID:     uuid.NewString(),
		ParkingID:   parking.ID,
		CompanyName: parking.CompanyName,
		Email:       parking.Email,
		Address:     parking.FullAddress(),
		City:        parking.City,
		MultiBranch: parking.HasMultipleBranches(),
		InternalID:  parking.InternalID,
		ExternalID:  parking.ExternalID,
		EnrolledAt:  s.now().UTC(),
	}
	if err := s.events.PublishParkingPreEnrolled(ctx, event); err != nil {
		s.logger.Warn("publish parking pre-enrolled failed", zap.Int64("parking_id", parking.ID), zap.Error(err))
	}
}
