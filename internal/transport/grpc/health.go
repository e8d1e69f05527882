package transportgrpc

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the service reported by the gRPC health endpoint.
const ServiceName = "parkit.auth.v1.Auth"

// Check reports on one backing dependency.
type Check func(ctx context.Context) error

// HealthReporter keeps the standard gRPC health service in sync with the
// state of the service dependencies.
type HealthReporter struct {
	server   *health.Server
	checks   map[string]Check
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger

	mu     sync.Mutex
	failed map[string]bool
}

// NewHealthReporter builds a reporter that runs every check each interval.
func NewHealthReporter(checks map[string]Check, interval time.Duration, logger *zap.Logger) *HealthReporter {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthReporter{
		server:   health.NewServer(),
		checks:   checks,
		interval: interval,
		timeout:  2 * time.Second,
		logger:   logger,
		failed:   make(map[string]bool),
	}
}

// Server returns the health service to register on a gRPC server.
func (h *HealthReporter) Server() *health.Server {
	return h.server
}

// Run checks dependencies until ctx is cancelled, then marks the service as
// not serving so in-flight health checks fail during shutdown.
func (h *HealthReporter) Run(ctx context.Context) {
	h.Refresh(ctx)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.server.Shutdown()
			return
		case <-ticker.C:
			h.Refresh(ctx)
		}
	}
}

// Refresh runs all checks once and publishes the aggregate status.
func (h *HealthReporter) Refresh(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	for name, check := range h.checks {
		checkCtx, cancel := context.WithTimeout(ctx, h.timeout)
		err := check(checkCtx)
		cancel()

		h.track(name, err)
		if err != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}

	h.server.SetServingStatus("", status)
	h.server.SetServingStatus(ServiceName, status)
	return status
}

func (h *HealthReporter) track(name string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch {
	case err != nil && !h.failed[name]:
		h.failed[name] = true
		h.logger.Warn("dependency unhealthy", zap.String("dependency", name), zap.Error(err))
	case err == nil && h.failed[name]:
		delete(h.failed, name)
		h.logger.Info("dependency recovered", zap.String("dependency", name))
	}
}
