package domain

import "time"

// RateLimitTier is one of the fixed throttling classifications applied to request paths.
type RateLimitTier struct {
	Name       string
	Kind       Kind
	Limit      int
	Window     time.Duration
	RetryAfter time.Duration
	Hint       string
}

var (
	TierLogin = RateLimitTier{
		Name:       "login",
		Kind:       KindRateLimitLogin,
		Limit:      5,
		Window:     time.Minute,
		RetryAfter: 60 * time.Second,
		Hint:       "Try again in 60 seconds.",
	}
	// TierForgotPassword advertises a five minute wait while the counter still uses a one minute window.
	TierForgotPassword = RateLimitTier{
		Name:       "forgot_password",
		Kind:       KindRateLimitForgotPassword,
		Limit:      5,
		Window:     time.Minute,
		RetryAfter: 5 * time.Minute,
		Hint:       "Try again in 5 minutes.",
	}
	TierGeneral = RateLimitTier{
		Name:       "general",
		Kind:       KindRateLimitGeneral,
		Limit:      100,
		Window:     time.Minute,
		RetryAfter: time.Second,
		Hint:       "Try again in 1 second.",
	}
)

// Message is the human readable rejection text for the tier.
func (t RateLimitTier) Message() string {
	return t.Kind.Info().Message + " " + t.Hint
}

// RetryAfterSeconds is the Retry-After header value for the tier.
func (t RateLimitTier) RetryAfterSeconds() int {
	return int(t.RetryAfter / time.Second)
}
