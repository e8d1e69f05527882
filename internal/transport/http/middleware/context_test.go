package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	appLogger "github.com/parkit/parkit-auth/internal/infra/logger"
)

func TestCorrelateKeepsIncomingIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	router := gin.New()
	router.Use(Correlate())
	router.GET("/ping", func(c *gin.Context) {
		appLogger.FromContext(c.Request.Context(), base).Info("handled")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-42")
	req.Header.Set("X-Trace-ID", "trace-42")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Header().Get("X-Request-ID") != "req-42" || rr.Header().Get("X-Trace-ID") != "trace-42" {
		t.Fatalf("expected ids to be echoed, got %v", rr.Header())
	}
	fields := logs.All()[0].ContextMap()
	if fields["request_id"] != "req-42" || fields["trace_id"] != "trace-42" {
		t.Fatalf("expected correlation fields on context logger, got %v", fields)
	}
}

func TestCorrelateReplacesOversizedIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var rc *RequestContext
	router := gin.New()
	router.Use(Correlate())
	router.GET("/ping", func(c *gin.Context) {
		rc = GetRequestContext(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("a", maxCorrelationLen+1))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rc == nil {
		t.Fatalf("expected request context to be set")
	}
	if len(rc.RequestID) != 36 || rc.RequestID != rr.Header().Get("X-Request-ID") {
		t.Fatalf("expected generated uuid request id, got %q", rc.RequestID)
	}
	if rc.TraceID == "" {
		t.Fatalf("expected generated trace id")
	}
}
