package port

import "github.com/parkit/parkit-auth/internal/core/domain"

// TokenSigner issues and validates signed tokens with the process-wide secret.
type TokenSigner interface {
	SignAccess(claims domain.AccessClaims) (string, error)
	SignReset(claims domain.ResetClaims) (string, error)
	ParseAccess(token string) (*domain.AccessClaims, error)
}

// PasswordPolicyValidator checks a candidate password before it is hashed.
type PasswordPolicyValidator interface {
	Validate(password string, userInputs ...string) error
}
