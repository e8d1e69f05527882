package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parkit/parkit-auth/internal/core/domain"
	"github.com/parkit/parkit-auth/internal/core/port"
	"github.com/parkit/parkit-auth/internal/infra/config"
	appLogger "github.com/parkit/parkit-auth/internal/infra/logger"
)

// IdentifierFunc extracts the identifier used to scope rate limits (e.g., client IP).
type IdentifierFunc func(*gin.Context) (string, bool)

// RateLimitRule configures a sliding-window quota for one tier.
type RateLimitRule struct {
	Limit  int
	Window time.Duration
}

// RateLimitRules holds the quota for each tier, keyed by tier name.
type RateLimitRules map[string]RateLimitRule

// RulesFromConfig builds tier quotas from configuration, falling back to the
// built-in tier values for anything left unset.
func RulesFromConfig(cfg config.RateLimitSettings) RateLimitRules {
	rules := RateLimitRules{
		domain.TierLogin.Name:          {Limit: cfg.LoginMaxAttempts, Window: cfg.LoginWindow},
		domain.TierForgotPassword.Name: {Limit: cfg.ForgotPasswordMaxAttempts, Window: cfg.ForgotPasswordWindow},
		domain.TierGeneral.Name:        {Limit: cfg.GeneralMaxAttempts, Window: cfg.GeneralWindow},
	}
	for _, tier := range []domain.RateLimitTier{domain.TierLogin, domain.TierForgotPassword, domain.TierGeneral} {
		rule := rules[tier.Name]
		if rule.Limit <= 0 {
			rule.Limit = tier.Limit
		}
		if rule.Window <= 0 {
			rule.Window = tier.Window
		}
		rules[tier.Name] = rule
	}
	return rules
}

type RateLimiter struct {
	store      port.RateLimitStore
	rules      RateLimitRules
	identifier IdentifierFunc
	logger     *zap.Logger
	now        func() time.Time
}

type ruleResult struct {
	allowed   bool
	limit     int
	remaining int
	reset     time.Time
}

// NewRateLimiter builds the throttling middleware helper.
func NewRateLimiter(store port.RateLimitStore, rules RateLimitRules, logger *zap.Logger) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RateLimiter{
		store:      store,
		rules:      rules,
		identifier: ClientIPIdentifier(),
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock allows injection of a custom clock (primarily for testing).
func (rl *RateLimiter) WithClock(now func() time.Time) *RateLimiter {
	if now != nil {
		rl.now = now
	}
	return rl
}

// WithIdentifier replaces the client IP identifier.
func (rl *RateLimiter) WithIdentifier(fn IdentifierFunc) *RateLimiter {
	if fn != nil {
		rl.identifier = fn
	}
	return rl
}

// ClientIPIdentifier builds an IdentifierFunc using the request's client IP.
func ClientIPIdentifier() IdentifierFunc {
	return func(c *gin.Context) (string, bool) {
		ip := c.ClientIP()
		if ip == "" {
			return "", false
		}
		return ip, true
	}
}

// Handler counts each request against the quota of its tier and rejects it
// through Reject once the quota is spent. Store failures let the request through.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.store == nil {
			c.Next()
			return
		}

		tier := ClassifyTier(c.Request.URL.Path)
		rule, ok := rl.rules[tier.Name]
		if !ok || rule.Limit <= 0 || rule.Window <= 0 {
			c.Next()
			return
		}

		identifier, ok := rl.identifier(c)
		if !ok || identifier == "" {
			c.Next()
			return
		}

		now := rl.now()
		res, err := rl.evaluate(c, rule, tier.Name+":"+identifier, now)
		if err != nil {
			rl.logger.Warn("rate limit check failed",
				zap.String("tier", tier.Name),
				zap.String("client_ip", appLogger.MaskIP(identifier)),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if !res.allowed {
			rl.logger.Info("rate limit exceeded",
				zap.String("tier", tier.Name),
				zap.String("client_ip", appLogger.MaskIP(identifier)),
				zap.String("path", c.Request.URL.Path),
			)
			rejectAt(c, tier, now)
			return
		}

		headers := c.Writer.Header()
		headers.Set(headerRateLimitLimit, strconv.Itoa(res.limit))
		headers.Set(headerRateLimitRemaining, strconv.Itoa(res.remaining))
		headers.Set(headerRateLimitReset, formatReset(res.reset))

		c.Next()
	}
}

func (rl *RateLimiter) evaluate(c *gin.Context, rule RateLimitRule, key string, now time.Time) (ruleResult, error) {
	state, err := rl.store.Acquire(c.Request.Context(), key, rule.Limit, rule.Window, now)
	if err != nil {
		return ruleResult{}, err
	}

	result := ruleResult{
		limit:   rule.Limit,
		reset:   now.Add(rule.Window),
		allowed: state.Allowed,
	}
	if !state.Oldest.IsZero() {
		result.reset = state.Oldest.Add(rule.Window)
	}
	if !result.allowed {
		return result, nil
	}

	result.remaining = rule.Limit - (state.Count + 1)
	if result.remaining < 0 {
		result.remaining = 0
	}
	return result, nil
}
