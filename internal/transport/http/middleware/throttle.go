package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/parkit/parkit-auth/internal/core/domain"
)

const (
	headerRateLimitLimit     = "X-RateLimit-Limit"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRateLimitReset     = "X-RateLimit-Reset"
	headerRetryAfter         = "Retry-After"

	// rejectLimit and rejectWindow are the values advertised on every rejection,
	// whatever the tier.
	rejectLimit  = 5
	rejectWindow = 60 * time.Second

	isoMillis = "2006-01-02T15:04:05.000Z"
)

var rateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "parkit",
	Subsystem: "http",
	Name:      "rate_limit_rejections_total",
	Help:      "Requests rejected by the rate limiter partitioned by tier.",
}, []string{"tier"})

// ClassifyTier maps a request path to its throttling tier. Segments are
// compared exactly and case-sensitively, so /AUTH/LOGIN and
// /auth/login-history both fall through to the general tier.
func ClassifyTier(path string) domain.RateLimitTier {
	segments := pathSegments(path)
	switch {
	case hasSegmentPair(segments, "auth", "login"):
		return domain.TierLogin
	case hasSegmentPair(segments, "auth", "forgot-password"):
		return domain.TierForgotPassword
	default:
		return domain.TierGeneral
	}
}

func pathSegments(path string) []string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	raw := strings.Split(path, "/")
	segments := raw[:0]
	for _, s := range raw {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

func hasSegmentPair(segments []string, first, second string) bool {
	for i := 0; i+1 < len(segments); i++ {
		if segments[i] == first && segments[i+1] == second {
			return true
		}
	}
	return false
}

// Reject aborts the request with a 429 for tier. It always sets the four
// rate limit headers before writing the body.
func Reject(c *gin.Context, tier domain.RateLimitTier) {
	rejectAt(c, tier, time.Now())
}

func rejectAt(c *gin.Context, tier domain.RateLimitTier, now time.Time) {
	headers := c.Writer.Header()
	headers.Set(headerRateLimitLimit, strconv.Itoa(rejectLimit))
	headers.Set(headerRateLimitRemaining, "0")
	headers.Set(headerRateLimitReset, formatReset(now.Add(rejectWindow)))
	headers.Set(headerRetryAfter, strconv.Itoa(tier.RetryAfterSeconds()))

	rateLimitRejections.WithLabelValues(tier.Name).Inc()

	out := domain.Failure(tier.Kind, nil)
	out.Message = tier.Message()
	c.AbortWithStatusJSON(http.StatusTooManyRequests, out)
}

func formatReset(t time.Time) string {
	return t.UTC().Format(isoMillis)
}
