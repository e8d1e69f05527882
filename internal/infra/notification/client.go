package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/parkit/parkit-auth/internal/core/port"
	"github.com/parkit/parkit-auth/internal/infra/config"
	"github.com/parkit/parkit-auth/internal/infra/logger"
)

// SendEmailPath is appended to the configured base URL.
const SendEmailPath = "/email/send-test"

// responses larger than this are truncated before decoding
const maxResponseBytes = 1 << 20

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "parkit_notification_requests_total",
	Help: "Email dispatch requests sent to the notification service, by HTTP status or transport error.",
}, []string{"template", "status"})

// Client posts templated emails to the notification service. It never retries.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *zap.Logger
}

// NewClient builds a client whose transport is traced with otelhttp.
func NewClient(cfg config.NotificationSettings, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + SendEmailPath,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

// SendEmail returns the status and decoded body of any HTTP response, 2xx or not.
// The error is non-nil only when no response was received.
func (c *Client) SendEmail(ctx context.Context, msg port.EmailMessage) (port.NotificationResult, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return port.NotificationResult{}, fmt.Errorf("marshal email message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return port.NotificationResult{}, fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues(msg.TemplateName, "error").Inc()
		c.logger.Warn("notification request failed",
			zap.String("template", msg.TemplateName),
			zap.String("to", logger.MaskEmail(msg.To)),
			zap.Error(err),
		)
		return port.NotificationResult{}, fmt.Errorf("post %s: %w", SendEmailPath, err)
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(msg.TemplateName, strconv.Itoa(resp.StatusCode)).Inc()
	c.logger.Debug("notification request completed",
		zap.String("template", msg.TemplateName),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(started)),
	)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return port.NotificationResult{Status: resp.StatusCode}, nil
	}

	return port.NotificationResult{Status: resp.StatusCode, Data: decodeBody(raw)}, nil
}

// decodeBody returns JSON bodies as generic values and anything else as a string.
func decodeBody(raw []byte) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	var decoded any
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return string(trimmed)
	}
	return decoded
}

var _ port.Notifier = (*Client)(nil)
