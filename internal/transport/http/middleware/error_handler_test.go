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
)

func TestRedactBody(t *testing.T) {
	got := RedactBody([]byte(`{"email":"a@b.com","password":"pw","nested":{"Token":"t"},"list":[{"password":"x"}]}`))
	if strings.Contains(got, `"pw"`) || strings.Contains(got, `"t"`) || strings.Contains(got, `"x"`) {
		t.Fatalf("secrets leaked: %s", got)
	}
	if !strings.Contains(got, `"email":"a@b.com"`) || strings.Count(got, redactedValue) != 3 {
		t.Fatalf("unexpected redaction: %s", got)
	}
	if RedactBody([]byte("password=pw")) != unparsableValue {
		t.Fatalf("non JSON bodies must not be logged verbatim")
	}
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(ErrorHandler(zap.New(core)))
	router.POST("/auth/login", func(c *gin.Context) {
		var body map[string]any
		_ = c.ShouldBindJSON(&body)
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@b.com","password":"hunter2"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "PKU_GENERAL_ERROR") {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one error log, got %d", len(entries))
	}
	body, _ := entries[0].ContextMap()["body"].(string)
	if strings.Contains(body, "hunter2") || !strings.Contains(body, redactedValue) {
		t.Fatalf("expected redacted body, got %q", body)
	}
}

func TestErrorHandlerIgnoresClientErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(ErrorHandler(zap.New(core)))
	router.POST("/x", func(c *gin.Context) {
		c.Status(http.StatusBadRequest)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{}`)))

	if rr.Code != http.StatusBadRequest || logs.Len() != 0 {
		t.Fatalf("client errors must pass untouched, got %d with %d logs", rr.Code, logs.Len())
	}
}
