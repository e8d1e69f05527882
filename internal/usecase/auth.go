package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/parkit/parkit-auth/internal/core/domain"
	"github.com/parkit/parkit-auth/internal/core/port"
	"github.com/parkit/parkit-auth/internal/infra/logger"
)

// LoginResult is returned on successful authentication.
type LoginResult struct {
	AccessToken string           `json:"access_token"`
	User        domain.PlainUser `json:"user"`
}

// AuthService authenticates users and issues access tokens.
type AuthService struct {
	users  port.UserRepository
	signer port.TokenSigner
	logger *zap.Logger
}

func NewAuthService(users port.UserRepository, signer port.TokenSigner, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, signer: signer, logger: logger}
}

// ValidateCredentials returns the user when email and password match, and
// (nil, nil) when either the account is unknown or the password is wrong.
// Repository failures are logged and returned as infrastructure errors.
func (s *AuthService) ValidateCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.ValidateCredentials(ctx, email, password)
	if err != nil {
		logger.FromContext(ctx, s.logger).Error("validate credentials",
			zap.String("email", logger.MaskEmail(email)),
			zap.Error(err),
		)
		return nil, domain.WrapInfrastructure("validate credentials", err)
	}
	return user, nil
}

// Login authenticates the user and signs an access token. Unknown accounts and
// wrong passwords both fail with domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.ValidateCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, domain.ErrInactiveUser
	}

	token, err := s.signer.SignAccess(domain.NewAccessClaims(*user))
	if err != nil {
		logger.FromContext(ctx, s.logger).Error("sign access token", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, domain.WrapInfrastructure("sign access token", err)
	}

	return &LoginResult{AccessToken: token, User: user.Plain()}, nil
}

// ParseAccessToken validates a bearer token. Failures resolve to
// domain.ErrJWTExpired or domain.ErrJWTInvalid.
func (s *AuthService) ParseAccessToken(token string) (*domain.AccessClaims, error) {
	claims, err := s.signer.ParseAccess(token)
	if err == nil {
		return claims, nil
	}
	if errors.Is(err, domain.ErrJWTExpired) {
		return nil, domain.ErrJWTExpired
	}
	return nil, domain.ErrJWTInvalid
}
