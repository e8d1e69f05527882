package port

import "context"

// EmailMessage is the request body accepted by the notification service.
type EmailMessage struct {
	To           string         `json:"to"`
	TemplateName string         `json:"templateName"`
	Variables    map[string]any `json:"variables"`
}

// NotificationResult is the raw reply of the notification service.
type NotificationResult struct {
	Status int
	Data   any
}

// Notifier dispatches templated emails. A non-nil error means the request never
// produced an HTTP response.
type Notifier interface {
	SendEmail(ctx context.Context, msg EmailMessage) (NotificationResult, error)
}
