package interceptors

import (
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/stats"
)

// TracingOptions customises server side tracing.
type TracingOptions struct {
	TracerProvider trace.TracerProvider
	Propagators    propagation.TextMapPropagator
	// Filter drops spans for calls it rejects, e.g. health checks.
	Filter func(fullMethod string) bool
}

// TracingServerOption installs the OpenTelemetry stats handler on a gRPC server.
func TracingServerOption(opts TracingOptions) grpc.ServerOption {
	options := make([]otelgrpc.Option, 0, 3)
	if opts.TracerProvider != nil {
		options = append(options, otelgrpc.WithTracerProvider(opts.TracerProvider))
	}
	if opts.Propagators != nil {
		options = append(options, otelgrpc.WithPropagators(opts.Propagators))
	}
	if opts.Filter != nil {
		filter := opts.Filter
		options = append(options, otelgrpc.WithFilter(func(info *stats.RPCTagInfo) bool {
			return filter(info.FullMethodName)
		}))
	}
	return grpc.StatsHandler(otelgrpc.NewServerHandler(options...))
}
