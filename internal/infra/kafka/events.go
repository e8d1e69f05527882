package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/parkit/parkit-auth/internal/core/domain"
	"github.com/parkit/parkit-auth/internal/core/port"
	"github.com/parkit/parkit-auth/internal/infra/config"
)

const (
	schemaVersion = "1.0"

	topicUserRegistered         = "user.registered"
	topicPasswordResetRequested = "user.password.reset_requested"
	topicParkingPreEnrolled     = "parking.pre_enrolled"
)

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

func NewEventPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: logger}
}

type eventEnvelope struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	Key       string            `json:"key,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Payload   any               `json:"payload"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// publish enqueues the envelope. Delivery failures surface asynchronously through the producer log.
func (p *EventPublisher) publish(ctx context.Context, eventID, eventType, key string, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now()
	}
	if eventID == "" {
		eventID = uuid.NewString()
	}

	metadata := map[string]string{
		"service":     p.appCfg.Name,
		"environment": p.appCfg.Env,
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		metadata["trace_id"] = sc.TraceID().String()
	}

	body, err := json.Marshal(eventEnvelope{
		EventID:   eventID,
		EventType: eventType,
		Key:       key,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata:  metadata,
	})
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", eventType, err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(body),
	}

	select {
	case p.producer.Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *EventPublisher) PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error {
	payload := struct {
		UserID       int64     `json:"user_id"`
		UserName     string    `json:"user_name"`
		Email        string    `json:"email"`
		RoleID       int       `json:"role_id"`
		RegisteredAt time.Time `json:"registered_at"`
	}{
		UserID:       event.UserID,
		UserName:     event.UserName,
		Email:        event.Email,
		RoleID:       event.RoleID,
		RegisteredAt: event.RegisteredAt.UTC(),
	}

	return p.publish(ctx, event.EventID, topicUserRegistered, strconv.FormatInt(event.UserID, 10), event.RegisteredAt, payload)
}

func (p *EventPublisher) PublishPasswordResetRequested(ctx context.Context, event domain.PasswordResetRequestedEvent) error {
	payload := struct {
		UserID            int64     `json:"user_id"`
		RequestedAt       time.Time `json:"requested_at"`
		ExpiresAt         time.Time `json:"expires_at"`
		TemplateName      string    `json:"template_name"`
		MaskedDestination string    `json:"masked_destination,omitempty"`
	}{
		UserID:            event.UserID,
		RequestedAt:       event.RequestedAt.UTC(),
		ExpiresAt:         event.ExpiresAt.UTC(),
		TemplateName:      event.TemplateName,
		MaskedDestination: event.MaskedDestination,
	}

	return p.publish(ctx, event.EventID, topicPasswordResetRequested, strconv.FormatInt(event.UserID, 10), event.RequestedAt, payload)
}

func (p *EventPublisher) PublishParkingPreEnrolled(ctx context.Context, event domain.ParkingPreEnrolledEvent) error {
	payload := struct {
		ParkingID   int64     `json:"parking_id"`
		CompanyName string    `json:"company_name"`
		Email       string    `json:"email"`
		Address     string    `json:"address"`
		City        int       `json:"city"`
		MultiBranch bool      `json:"multi_branch"`
		InternalID  *string   `json:"internal_id,omitempty"`
		ExternalID  *string   `json:"external_id,omitempty"`
		EnrolledAt  time.Time `json:"enrolled_at"`
	}{
		ParkingID:   event.ParkingID,
		CompanyName: event.CompanyName,
		Email:       event.Email,
		Address:     event.Address,
		City:        event.City,
		MultiBranch: event.MultiBranch,
		InternalID:  event.InternalID,
		ExternalID:  event.ExternalID,
		EnrolledAt:  event.EnrolledAt.UTC(),
	}

	return p.publish(ctx, event.EventID, topicParkingPreEnrolled, strconv.FormatInt(event.ParkingID, 10), event.EnrolledAt, payload)
}

var _ port.EventPublisher = (*EventPublisher)(nil)
