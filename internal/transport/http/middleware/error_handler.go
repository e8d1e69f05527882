package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parkit/parkit-auth/internal/core/domain"
	appLogger "github.com/parkit/parkit-auth/internal/infra/logger"
)

const (
	redactedValue   = "[REDACTED]"
	maxLoggedBody   = 16 << 10
	unparsableValue = "[UNPARSABLE]"
)

var sensitiveFields = map[string]struct{}{
	"password": {},
	"token":    {},
}

// ErrorHandler recovers panics and logs server errors together with the
// request body. Sensitive fields in the body are replaced before logging.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		body := captureBody(c)

		defer func() {
			if rec := recover(); rec != nil {
				logServerError(c, log, body, zap.Any("panic", rec))
				if !c.Writer.Written() {
					abortWithKind(c, domain.KindGeneralError)
				} else {
					c.Abort()
				}
			}
		}()

		c.Next()

		if c.Writer.Status() < http.StatusInternalServerError && len(c.Errors) == 0 {
			return
		}

		var fields []zap.Field
		if err := c.Errors.Last(); err != nil {
			fields = append(fields, zap.Error(err.Err))
		}
		logServerError(c, log, body, fields...)

		if !c.Writer.Written() {
			abortWithKind(c, domain.KindGeneralError)
		}
	}
}

func logServerError(c *gin.Context, log *zap.Logger, body []byte, fields ...zap.Field) {
	fields = append(fields,
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.String("trace_id", GetTraceID(c)),
	)
	if len(body) > 0 {
		fields = append(fields, zap.String("body", RedactBody(body)))
	}
	appLogger.FromContext(c.Request.Context(), log).Error("unhandled request error", fields...)
}

func captureBody(c *gin.Context) []byte {
	if c.Request.Body == nil || c.Request.Method == http.MethodGet {
		return nil
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxLoggedBody))
	if err != nil {
		return nil
	}
	c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), c.Request.Body))
	return body
}

// RedactBody renders a JSON body with password and token values masked.
func RedactBody(body []byte) string {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return unparsableValue
	}
	redacted, err := json.Marshal(redact(payload))
	if err != nil {
		return fmt.Sprintf("%s: %v", unparsableValue, err)
	}
	return string(redacted)
}

func redact(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for key, inner := range v {
			if _, ok := sensitiveFields[strings.ToLower(key)]; ok {
				v[key] = redactedValue
				continue
			}
			v[key] = redact(inner)
		}
		return v
	case []any:
		for i, inner := range v {
			v[i] = redact(inner)
		}
		return v
	default:
		return v
	}
}
