package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parkit/parkit-auth/internal/core/domain"
	"github.com/parkit/parkit-auth/internal/core/port"
	"github.com/parkit/parkit-auth/internal/infra/logger"
)

// RegisterInput carries the fields accepted on sign up.
type RegisterInput struct {
	Name     string
	LastName string
	Email    string
	Phone    *string
	UserName string
	Password string
	RoleID   int
}

// RegistrationService creates user accounts.
type RegistrationService struct {
	users  port.UserRepository
	hasher port.PasswordHasher
	policy port.PasswordPolicyValidator
	events port.EventPublisher
	now    func() time.Time
	logger *zap.Logger
}

func NewRegistrationService(
	users port.UserRepository,
	hasher port.PasswordHasher,
	policy port.PasswordPolicyValidator,
	events port.EventPublisher,
	logger *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		users:  users,
		hasher: hasher,
		policy: policy,
		events: events,
		now:    time.Now,
		logger: logger,
	}
}

// Register stores a new active account. An email clash is reported before a user name clash.
func (s *RegistrationService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	log := logger.FromContext(ctx, s.logger)

	existing, err := s.users.FindByEmailOrUserName(ctx, input.Email, input.UserName)
	if err != nil {
		log.Error("lookup user for registration", zap.Error(err))
		return nil, domain.WrapInfrastructure("find user by email or user name", err)
	}
	if existing != nil {
		if strings.EqualFold(existing.Email, input.Email) {
			return nil, domain.ErrUserEmailExists
		}
		return nil, domain.ErrUserNameExists
	}

	if s.policy != nil {
		if err := s.policy.Validate(input.Password, input.Email, input.UserName, input.Name, input.LastName); err != nil {
			return nil, domain.NewError(domain.KindWeakPassword, err.Error())
		}
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		log.Error("hash password", zap.Error(err))
		return nil, domain.WrapInfrastructure("hash password", err)
	}

	roleID := input.RoleID
	if roleID == 0 {
		roleID = domain.RolePlatformUser
	}

	created, err := s.users.Create(ctx, domain.User{
		Name:         input.Name,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		UserName:     input.UserName,
		PasswordHash: hash,
		RoleID:       roleID,
		StatusID:     domain.StatusActive,
	})
	if err != nil {
		log.Error("create user", zap.String("email", logger.MaskEmail(input.Email)), zap.Error(err))
		return nil, domain.WrapInfrastructure("create user", err)
	}

	s.publishRegistered(ctx, created)
	return created, nil
}

func (s *RegistrationService) publishRegistered(ctx context.Context, user *domain.User) {
	if s.events == nil {
		return
	}
	event := domain.UserRegisteredEvent{
		EventID:      uuid.NewString(),
		UserID:       user.ID,
		UserName:     user.UserName,
		Email:        user.Email,
		RoleID:       user.RoleID,
		RegisteredAt: s.now().UTC(),
	}
	if err := s.events.PublishUserRegistered(ctx, event); err != nil {
		s.logger.Warn("publish user registered failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}
}
