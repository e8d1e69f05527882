package transportgrpc

import (
	"strings"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpcinterceptors "github.com/parkit/parkit-auth/internal/transport/grpc/interceptors"
)

var publicPrefixes = []string{
	"/" + healthpb.Health_ServiceDesc.ServiceName + "/",
	"/grpc.reflection.",
}

// ServerDependencies encapsulates what the gRPC server layer needs.
type ServerDependencies struct {
	Tokens         grpcinterceptors.TokenParser
	Health         *HealthReporter
	Metrics        *grpcinterceptors.GRPCMetrics
	TracerProvider trace.TracerProvider
	Propagators    propagation.TextMapPropagator
	Logger         *zap.Logger
}

// NewServer builds the gRPC server. Health and reflection are public; any other
// service registered later requires a bearer token in the call metadata.
func NewServer(deps ServerDependencies) *grpc.Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	auth := grpcinterceptors.NewAuthInterceptor(deps.Tokens, grpcinterceptors.AuthOptions{
		PublicPrefixes: publicPrefixes,
		Logger:         logger,
	})

	server := grpc.NewServer(
		grpcinterceptors.TracingServerOption(grpcinterceptors.TracingOptions{
			TracerProvider: deps.TracerProvider,
			Propagators:    deps.Propagators,
			Filter:         func(method string) bool { return !isHealthMethod(method) },
		}),
		grpc.ChainUnaryInterceptor(deps.Metrics.Unary(), auth.Unary()),
		grpc.ChainStreamInterceptor(deps.Metrics.Stream(), auth.Stream()),
	)

	if deps.Health != nil {
		healthpb.RegisterHealthServer(server, deps.Health.Server())
	}
	reflection.Register(server)

	return server
}

func isHealthMethod(method string) bool {
	return strings.HasPrefix(method, publicPrefixes[0])
}
