package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/parkit/parkit-auth/internal/core/domain"
	"github.com/parkit/parkit-auth/internal/core/port"
	"github.com/parkit/parkit-auth/internal/infra/config"
)

// accessTokenClaims is the wire form of domain.AccessClaims.
type accessTokenClaims struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Role     int    `json:"role"`
	Status   int    `json:"status"`
	jwt.RegisteredClaims
}

// JWTSigner signs HS256 tokens with the process-wide secret.
type JWTSigner struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	resetTTL  time.Duration
	now       func() time.Time
}

// SignerOption customises a JWTSigner.
type SignerOption func(*JWTSigner)

// WithSignerClock overrides the time source.
func WithSignerClock(now func() time.Time) SignerOption {
	return func(s *JWTSigner) {
		if now != nil {
			s.now = now
		}
	}
}

func NewJWTSigner(cfg config.JWTSettings, opts ...SignerOption) *JWTSigner {
	s := &JWTSigner{
		secret:    []byte(cfg.Secret),
		issuer:    cfg.Issuer,
		accessTTL: cfg.AccessTokenTTL,
		resetTTL:  cfg.ResetTokenTTL,
		now:       time.Now,
	}
	if s.accessTTL <= 0 {
		s.accessTTL = domain.AccessTokenTTL
	}
	if s.resetTTL <= 0 {
		s.resetTTL = domain.ResetTokenTTL
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *JWTSigner) SignAccess(claims domain.AccessClaims) (string, error) {
	now := s.now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessTokenClaims{
		Email:    claims.Email,
		Name:     claims.Name,
		LastName: claims.LastName,
		Role:     claims.RoleID,
		Status:   claims.StatusID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(claims.Subject, 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// SignReset issues a token that carries nothing but the subject.
func (s *JWTSigner) SignReset(claims domain.ResetClaims) (string, error) {
	now := s.now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(claims.Subject, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.resetTTL)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign reset token: %w", err)
	}
	return signed, nil
}

// ParseAccess validates signature and expiry. Expired tokens map to
// domain.ErrJWTExpired; every other failure, including reset tokens, to domain.ErrJWTInvalid.
func (s *JWTSigner) ParseAccess(raw string) (*domain.AccessClaims, error) {
	var claims accessTokenClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrJWTExpired
		}
		return nil, domain.ErrJWTInvalid
	}

	if claims.Email == "" {
		return nil, domain.ErrJWTInvalid
	}
	subject, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, domain.ErrJWTInvalid
	}

	out := &domain.AccessClaims{
		Subject:  subject,
		Email:    claims.Email,
		Name:     claims.Name,
		LastName: claims.LastName,
		RoleID:   claims.Role,
		StatusID: claims.Status,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

var _ port.TokenSigner = (*JWTSigner)(nil)
