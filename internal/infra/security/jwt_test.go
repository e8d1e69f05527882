package security

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/parkit/parkit-auth/internal/core/domain"
	"github.com/parkit/parkit-auth/internal/infra/config"
)

func newTestSigner(now time.Time) *JWTSigner {
	return NewJWTSigner(config.JWTSettings{Secret: "test-secret", Issuer: "parkit-auth"},
		WithSignerClock(func() time.Time { return now }))
}

func TestJWTSignerAccessRoundTrip(t *testing.T) {
	now := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	signer := newTestSigner(now)

	token, err := signer.SignAccess(domain.AccessClaims{
		Subject:  7,
		Email:    "ana@parkit.co",
		Name:     "Ana",
		LastName: "Lopez",
		RoleID:   1,
		StatusID: 1,
	})
	if err != nil {
		t.Fatalf("SignAccess returned error: %v", err)
	}

	claims, err := signer.ParseAccess(token)
	if err != nil {
		t.Fatalf("ParseAccess returned error: %v", err)
	}
	if claims.Subject != 7 || claims.Email != "ana@parkit.co" || claims.LastName != "Lopez" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt); got != 4*time.Hour {
		t.Fatalf("expected 4h lifetime, got %s", got)
	}
}

func TestJWTSignerPayloadShape(t *testing.T) {
	signer := newTestSigner(time.Now())

	token, err := signer.SignAccess(domain.AccessClaims{Subject: 3, Email: "e@x.co", Name: "N", LastName: "L", RoleID: 2, StatusID: 1})
	if err != nil {
		t.Fatalf("SignAccess returned error: %v", err)
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		t.Fatalf("ParseUnverified returned error: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	for _, key := range []string{"email", "sub", "name", "lastName", "role", "status", "exp", "iat"} {
		if _, ok := claims[key]; !ok {
			t.Fatalf("expected claim %q in payload %v", key, claims)
		}
	}
	if claims["sub"] != "3" {
		t.Fatalf("expected string subject, got %v", claims["sub"])
	}
}

func TestJWTSignerExpiredToken(t *testing.T) {
	issued := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	token, err := newTestSigner(issued).SignAccess(domain.AccessClaims{Subject: 1, Email: "a@b.co"})
	if err != nil {
		t.Fatalf("SignAccess returned error: %v", err)
	}

	_, err = newTestSigner(issued.Add(5 * time.Hour)).ParseAccess(token)
	if !errors.Is(err, domain.ErrJWTExpired) {
		t.Fatalf("expected ErrJWTExpired, got %v", err)
	}
}

func TestJWTSignerRejectsForeignTokens(t *testing.T) {
	now := time.Now()
	signer := newTestSigner(now)

	reset, err := signer.SignReset(domain.ResetClaims{Subject: 1})
	if err != nil {
		t.Fatalf("SignReset returned error: %v", err)
	}

	other := NewJWTSigner(config.JWTSettings{Secret: "another-secret"})
	foreign, err := other.SignAccess(domain.AccessClaims{Subject: 1, Email: "a@b.co"})
	if err != nil {
		t.Fatalf("SignAccess returned error: %v", err)
	}

	for name, token := range map[string]string{
		"reset token":  reset,
		"wrong secret": foreign,
		"garbage":      "not.a.jwt",
		"empty":        "",
	} {
		if _, err := signer.ParseAccess(token); !errors.Is(err, domain.ErrJWTInvalid) {
			t.Fatalf("%s: expected ErrJWTInvalid, got %v", name, err)
		}
	}
}

func TestJWTSignerResetExpiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	token, err := newTestSigner(now).SignReset(domain.ResetClaims{Subject: 42})
	if err != nil {
		t.Fatalf("SignReset returned error: %v", err)
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		t.Fatalf("ParseUnverified returned error: %v", err)
	}
	if claims.Subject != "42" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
	if got := claims.ExpiresAt.Sub(now); got != 15*time.Minute {
		t.Fatalf("expected 15m expiry, got %s", got)
	}
}
