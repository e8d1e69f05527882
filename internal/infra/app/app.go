package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/parkit/parkit-auth/internal/core/port"
	"github.com/parkit/parkit-auth/internal/infra/config"
	"github.com/parkit/parkit-auth/internal/infra/database"
	kafkainfra "github.com/parkit/parkit-auth/internal/infra/kafka"
	"github.com/parkit/parkit-auth/internal/infra/logger"
	"github.com/parkit/parkit-auth/internal/infra/notification"
	redisinfra "github.com/parkit/parkit-auth/internal/infra/redis"
	"github.com/parkit/parkit-auth/internal/infra/security"
	"github.com/parkit/parkit-auth/internal/infra/telemetry"
	postgresrepo "github.com/parkit/parkit-auth/internal/repository/postgres"
	redisrepo "github.com/parkit/parkit-auth/internal/repository/redis"
	transportgrpc "github.com/parkit/parkit-auth/internal/transport/grpc"
	grpcinterceptors "github.com/parkit/parkit-auth/internal/transport/grpc/interceptors"
	"github.com/parkit/parkit-auth/internal/transport/http/middleware"
	"github.com/parkit/parkit-auth/internal/transport/http/routes"
	"github.com/parkit/parkit-auth/internal/usecase"
)

const healthCheckInterval = 15 * time.Second

type Application struct {
	cfg        *config.AppConfig
	handler    http.Handler
	logger     *zap.Logger
	pool       *pgxpool.Pool
	redis      *redisinfra.Client
	producer   *kafkainfra.Producer
	tracer     *telemetry.TracerProvider
	grpcServer *grpc.Server
	health     *transportgrpc.HealthReporter
}

func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	a := &Application{cfg: cfg, logger: log}
	ok := false
	defer func() {
		if !ok {
			a.close(context.Background())
		}
	}()

	a.tracer, err = telemetry.NewTracerProvider(ctx, cfg.Telemetry, cfg.App.Env, log)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	a.pool, err = database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	a.redis, err = redisinfra.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		return nil, fmt.Errorf("init redis: %w", err)
	}

	hasher := security.NewBcryptHasher(0)
	policy := security.NewPasswordPolicyFromConfig(cfg.Password)
	signer := security.NewJWTSigner(cfg.JWT)
	repos := postgresrepo.NewRepositories(a.pool, hasher)
	notifier := notification.NewClient(cfg.Notification, log)
	events := a.eventPublisher(log)

	authService := usecase.NewAuthService(repos.Users, signer, log)
	registrationService := usecase.NewRegistrationService(repos.Users, hasher, policy, events, log)
	passwordResetService := usecase.NewPasswordResetService(repos.Users, signer, notifier, events, cfg.App.FrontendURL, log)
	parkingService := usecase.NewParkingService(repos.Parkings, events, log)

	throttleStore := redisrepo.NewThrottleStore(a.redis.Client(), redisrepo.ThrottleStoreConfig{
		KeyPrefix: cfg.Redis.ThrottlePrefix,
		TTL:       2 * longestWindow(middleware.RulesFromConfig(cfg.RateLimit)),
	})
	rateLimiter := middleware.NewRateLimiter(throttleStore, middleware.RulesFromConfig(cfg.RateLimit), log)

	httpMetrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{Registerer: prometheus.DefaultRegisterer})
	if err != nil {
		return nil, fmt.Errorf("init http metrics: %w", err)
	}

	engine := routes.Register(routes.Dependencies{
		Config:      cfg,
		Logger:      log,
		RateLimiter: rateLimiter,
		Metrics:     httpMetrics,
		Database:    a.pool,
		Cache:       a.redis,
		Services: routes.ServiceSet{
			Auth:          authService,
			Registration:  registrationService,
			PasswordReset: passwordResetService,
			Parking:       parkingService,
		},
	})
	a.handler = routes.Instrument(engine, cfg.App.Name)

	if cfg.GRPC.Enabled {
		grpcMetrics, err := grpcinterceptors.NewGRPCMetrics(grpcinterceptors.GRPCMetricsOptions{Registerer: prometheus.DefaultRegisterer})
		if err != nil {
			return nil, fmt.Errorf("init grpc metrics: %w", err)
		}
		a.health = transportgrpc.NewHealthReporter(map[string]transportgrpc.Check{
			"postgres": a.pool.Ping,
			"redis":    a.redis.Ping,
		}, healthCheckInterval, log)
		a.grpcServer = transportgrpc.NewServer(transportgrpc.ServerDependencies{
			Tokens:         authService,
			Health:         a.health,
			Metrics:        grpcMetrics,
			TracerProvider: otel.GetTracerProvider(),
			Propagators:    otel.GetTextMapPropagator(),
			Logger:         log,
		})
	}

	ok = true
	return a, nil
}

func (a *Application) eventPublisher(log *zap.Logger) port.EventPublisher {
	if len(a.cfg.Kafka.Brokers) == 0 {
		log.Info("kafka brokers not configured, using stub publisher")
		return kafkainfra.NewStubPublisher(log)
	}

	producer, err := kafkainfra.NewProducer(a.cfg.Kafka, log)
	if err != nil {
		log.Warn("failed to init kafka producer, using stub publisher", zap.Error(err))
		return kafkainfra.NewStubPublisher(log)
	}
	a.producer = producer
	log.Info("kafka event publisher initialized", zap.Strings("brokers", a.cfg.Kafka.Brokers))
	return kafkainfra.NewEventPublisher(producer, a.cfg.App, log)
}

func (a *Application) Run(ctx context.Context) error {
	defer a.close(context.Background())

	errCh := make(chan error, 2)

	if a.grpcServer != nil {
		lis, err := net.Listen("tcp", a.cfg.GRPC.Address())
		if err != nil {
			return fmt.Errorf("listen grpc: %w", err)
		}
		healthCtx, stopHealth := context.WithCancel(ctx)
		defer stopHealth()
		go a.health.Run(healthCtx)

		a.logger.Info("starting gRPC server", zap.String("address", lis.Addr().String()))
		go func() {
			if err := a.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				errCh <- fmt.Errorf("run grpc server: %w", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              a.cfg.App.Address(),
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting parkit auth API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if a.grpcServer != nil {
		a.grpcServer.GracefulStop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

// close releases resources in reverse order of acquisition.
func (a *Application) close(ctx context.Context) {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("close kafka producer", zap.Error(err))
		}
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			a.logger.Warn("shutdown tracer", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

func longestWindow(rules middleware.RateLimitRules) time.Duration {
	longest := time.Minute
	for _, rule := range rules {
		if rule.Window > longest {
			longest = rule.Window
		}
	}
	return longest
}
