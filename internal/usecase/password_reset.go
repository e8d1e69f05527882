package usecase

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parkit/parkit-auth/internal/core/domain"
	"github.com/parkit/parkit-auth/internal/core/port"
	"github.com/parkit/parkit-auth/internal/infra/logger"
)

const (
	// ResetTemplateName is the notification template rendered for reset emails.
	ResetTemplateName = "password-reset"
	// ResetAction is passed to the template as the action label.
	ResetAction = "recuperar"
)

// PasswordResetService dispatches password reset links.
type PasswordResetService struct {
	users       port.UserRepository
	signer      port.TokenSigner
	notifier    port.Notifier
	events      port.EventPublisher
	frontendURL string
	now         func() time.Time
	logger      *zap.Logger
}

func NewPasswordResetService(
	users port.UserRepository,
	signer port.TokenSigner,
	notifier port.Notifier,
	events port.EventPublisher,
	frontendURL string,
	logger *zap.Logger,
) *PasswordResetService {
	return &PasswordResetService{
		users:       users,
		signer:      signer,
		notifier:    notifier,
		events:      events,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		now:         time.Now,
		logger:      logger,
	}
}

// WithClock overrides the time source used for event timestamps.
func (s *PasswordResetService) WithClock(clock func() time.Time) {
	if clock != nil {
		s.now = clock
	}
}

// ForgotPassword emails a reset link to an eligible user. Expected business
// conditions come back as an Outcome; the error is reserved for lookup or
// signing failures. The notification call is made at most once.
func (s *PasswordResetService) ForgotPassword(ctx context.Context, email string) (domain.Outcome, error) {
	log := logger.FromContext(ctx, s.logger)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		log.Error("find user for password reset", zap.String("email", logger.MaskEmail(email)), zap.Error(err))
		return domain.Outcome{}, domain.WrapInfrastructure("find user by email", err)
	}
	if user == nil {
		return domain.Failure(domain.KindUserNotFound, nil), nil
	}
	if !user.HasRole(domain.RolePlatformUser) {
		return domain.Failure(domain.KindRoleNotAllowed, nil), nil
	}

	resetURL, err := s.buildResetURL(user.ID)
	if err != nil {
		log.Error("sign reset token", zap.Int64("user_id", user.ID), zap.Error(err))
		return domain.Outcome{}, domain.WrapInfrastructure("sign reset token", err)
	}

	result, err := s.notifier.SendEmail(ctx, port.EmailMessage{
		To:           user.Email,
		TemplateName: ResetTemplateName,
		Variables: map[string]any{
			"name":     user.Name,
			"action":   ResetAction,
			"resetUrl": resetURL,
		},
	})
	if err != nil {
		log.Warn("password reset email not sent", zap.Int64("user_id", user.ID), zap.Error(err))
		return domain.Failure(domain.KindNotificationFailed, notificationFailedData()), nil
	}
	if result.Status != http.StatusCreated {
		log.Warn("notification service rejected reset email",
			zap.Int64("user_id", user.ID),
			zap.Int("status", result.Status),
		)
		return domain.Failure(domain.KindNotificationFailed, result.Data), nil
	}

	s.publishResetRequested(ctx, user)
	return domain.Success(domain.KindEmailSent, nil), nil
}

// notificationFailedData stands in for the upstream body when the call never
// got a reply. The transport error stays in the logs.
func notificationFailedData() map[string]any {
	info := domain.KindNotificationFailed.Info()
	return map[string]any{"error": map[string]any{"code": info.Code, "message": info.Message}}
}

func (s *PasswordResetService) buildResetURL(userID int64) (string, error) {
	token, err := s.signer.SignReset(domain.ResetClaims{Subject: userID})
	if err != nil {
		return "", err
	}
	return s.frontendURL + "/reset-password?token=" + url.QueryEscape(token), nil
}

func (s *PasswordResetService) publishResetRequested(ctx context.Context, user *domain.User) {
	if s.events == nil {
		return
	}

	now := s.now().UTC()
	event := domain.PasswordResetRequestedEvent{
		EventID:           uuid.NewString(),
		UserID:            user.ID,
		RequestedAt:       now,
		ExpiresAt:         now.Add(domain.ResetTokenTTL),
		TemplateName:      ResetTemplateName,
		MaskedDestination: logger.MaskEmail(user.Email),
	}

	if err := s.events.PublishPasswordResetRequested(ctx, event); err != nil {
		s.logger.Warn("publish password reset requested failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}
}
