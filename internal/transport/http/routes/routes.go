package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/parkit/parkit-auth/internal/infra/config"
	"github.com/parkit/parkit-auth/internal/transport/http/handlers"
	"github.com/parkit/parkit-auth/internal/transport/http/middleware"
	"github.com/parkit/parkit-auth/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Auth          *usecase.AuthService
	Registration  *usecase.RegistrationService
	PasswordReset *usecase.PasswordResetService
	Parking       *usecase.ParkingService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config      *config.AppConfig
	Logger      *zap.Logger
	RateLimiter *middleware.RateLimiter
	Metrics     *middleware.HTTPMetrics
	Services    ServiceSet
	Database    HealthChecker
	Cache       HealthChecker
}

// HealthChecker exposes readiness behaviour for a backing service.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// The throttle keys on ClientIP, so forwarded headers count only from configured proxies.
	if err := r.SetTrustedProxies(deps.Config.App.TrustedProxies); err != nil {
		if deps.Logger == nil {
			deps.Logger = zap.NewNop()
		}
		deps.Logger.Error("invalid trusted proxies, ignoring forwarded headers", zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(middleware.ErrorHandler(deps.Logger))
	r.Use(middleware.CORS(deps.Config.CORS.AllowedOrigins))
	r.Use(middleware.Correlate())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(deps.Metrics.Handler())

	healthOptions := make([]handlers.HealthOption, 0, 2)
	if deps.Database != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("postgres", deps.Database.Ping))
	}
	if deps.Cache != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("redis", deps.Cache.Ping))
	}
	healthHandler := handlers.NewHealthHandler(healthOptions...)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterSwagger(r)

	throttled := []gin.HandlerFunc{}
	if deps.RateLimiter != nil && deps.Config.RateLimit.Enabled {
		throttled = append(throttled, deps.RateLimiter.Handler())
	}

	mountAPI(r.Group("/api/v1", throttled...), deps)
	// Unprefixed routes kept for clients of the previous API.
	mountAPI(r.Group("", throttled...), deps)

	return r
}

func mountAPI(api *gin.RouterGroup, deps Dependencies) {
	authGroup := api.Group("/auth")
	if deps.Services.Auth != nil {
		handlers.NewAuthHandler(deps.Services.Auth).RegisterRoutes(authGroup)
	}
	if deps.Services.Registration != nil {
		authGroup.POST("/register", handlers.NewRegistrationHandler(deps.Services.Registration).Register)
	}
	if deps.Services.PasswordReset != nil {
		authGroup.POST("/forgot-password", handlers.NewPasswordHandler(deps.Services.PasswordReset).ForgotPassword)
	}
	if deps.Services.Parking != nil {
		handlers.NewParkingHandler(deps.Services.Parking).RegisterRoutes(api.Group("/parking"))
	}
}

// Instrument wraps the engine with OpenTelemetry server spans.
func Instrument(engine *gin.Engine, service string) http.Handler {
	return otelhttp.NewHandler(engine, service,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
