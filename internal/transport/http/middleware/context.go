package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	appLogger "github.com/parkit/parkit-auth/internal/infra/logger"
)

const (
	TraceIDHeader = "X-Trace-ID"
	// UserIDKey holds the authenticated subject on the gin context.
	UserIDKey = "user_id"

	requestIDHeader   = "X-Request-ID"
	maxCorrelationLen = 128
	requestContextKey = "request_context"
)

// RequestContext is the per-request correlation record shared by the
// logging and auth middleware.
type RequestContext struct {
	RequestID string
	TraceID   string
	UserID    int64
	IP        string
	UserAgent string
}

// Correlate assigns the request and trace ids, echoes them as response headers
// and stores them on the request context for context-aware loggers. The trace
// id of an active OpenTelemetry span takes precedence over X-Trace-ID.
func Correlate() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := headerOrNew(c, requestIDHeader)

		traceID := ""
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			traceID = sc.TraceID().String()
		} else {
			traceID = headerOrNew(c, TraceIDHeader)
		}

		c.Header(requestIDHeader, requestID)
		c.Header(TraceIDHeader, traceID)

		ctx := context.WithValue(c.Request.Context(), appLogger.RequestIDKey{}, requestID)
		ctx = context.WithValue(ctx, appLogger.TraceIDKey{}, traceID)
		c.Request = c.Request.WithContext(ctx)

		c.Set(requestContextKey, &RequestContext{
			RequestID: requestID,
			TraceID:   traceID,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		})

		c.Next()
	}
}

func headerOrNew(c *gin.Context, name string) string {
	v := c.GetHeader(name)
	if v == "" || len(v) > maxCorrelationLen {
		return uuid.NewString()
	}
	return v
}

// GetRequestContext returns nil when Correlate did not run.
func GetRequestContext(c *gin.Context) *RequestContext {
	if v, ok := c.Get(requestContextKey); ok {
		if rc, ok := v.(*RequestContext); ok {
			return rc
		}
	}
	return nil
}

// GetTraceID returns the trace id assigned by Correlate, or "".
func GetTraceID(c *gin.Context) string {
	if rc := GetRequestContext(c); rc != nil {
		return rc.TraceID
	}
	return ""
}
