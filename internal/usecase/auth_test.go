package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/parkit/parkit-auth/internal/core/domain"
)

func activeUser() domain.User {
	return domain.User{
		ID:           1,
		Name:         "Ana",
		LastName:     "Lopez",
		Email:        "a@b.com",
		UserName:     "ana",
		PasswordHash: "$2a$10$hash",
		RoleID:       domain.RolePlatformUser,
		StatusID:     domain.StatusActive,
	}
}

func TestLoginSuccess(t *testing.T) {
	users := newFakeUserRepo(activeUser()).withPassword("a@b.com", "pw")
	signer := &fakeSigner{token: "tok"}
	svc := NewAuthService(users, signer, zaptest.NewLogger(t))

	result, err := svc.Login(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.AccessToken != "tok" {
		t.Fatalf("expected token tok, got %q", result.AccessToken)
	}
	if result.User.ID != 1 || result.User.Email != "a@b.com" {
		t.Fatalf("unexpected user: %+v", result.User)
	}
	if signer.lastAccess.Subject != 1 || signer.lastAccess.RoleID != 1 || signer.lastAccess.LastName != "Lopez" {
		t.Fatalf("unexpected claims: %+v", signer.lastAccess)
	}

	body, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	if strings.Contains(string(body), "password") || strings.Contains(string(body), "$2a$") {
		t.Fatalf("login response leaked credentials: %s", body)
	}
	if !strings.Contains(string(body), `"access_token":"tok"`) {
		t.Fatalf("unexpected payload: %s", body)
	}
}

func TestLoginMasksUnknownAndWrongPassword(t *testing.T) {
	users := newFakeUserRepo(activeUser()).withPassword("a@b.com", "pw")
	signer := &fakeSigner{token: "tok"}
	svc := NewAuthService(users, signer, zaptest.NewLogger(t))

	cases := []struct{ email, password string }{
		{"missing@x.com", "pw"},
		{"a@b.com", "wrong"},
		{"a@b.com", ""},
	}
	for _, tc := range cases {
		_, err := svc.Login(context.Background(), tc.email, tc.password)
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("Login(%q, %q): expected ErrInvalidCredentials, got %v", tc.email, tc.password, err)
		}
		if domain.KindOf(err) != domain.KindInvalidCredentials {
			t.Fatalf("expected kind InvalidCredentials, got %v", domain.KindOf(err))
		}
	}
	if signer.accessCall != 0 {
		t.Fatalf("signer must not be called on failed login")
	}
}

func TestLoginInactiveUserNeverSigns(t *testing.T) {
	user := activeUser()
	user.StatusID = 2
	users := newFakeUserRepo(user).withPassword("a@b.com", "pw")
	signer := &fakeSigner{token: "tok"}
	svc := NewAuthService(users, signer, zaptest.NewLogger(t))

	_, err := svc.Login(context.Background(), "a@b.com", "pw")
	if !errors.Is(err, domain.ErrInactiveUser) {
		t.Fatalf("expected ErrInactiveUser, got %v", err)
	}
	if signer.accessCall != 0 {
		t.Fatalf("signer called %d times for inactive user", signer.accessCall)
	}
}

func TestLoginRepositoryFailureIsLoggedAndPropagated(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	users := newFakeUserRepo()
	users.err = errors.New("connection refused")
	signer := &fakeSigner{token: "tok"}
	svc := NewAuthService(users, signer, zap.New(core))

	_, err := svc.Login(context.Background(), "a@b.com", "pw")
	if domain.KindOf(err) != domain.KindInfrastructure {
		t.Fatalf("expected infrastructure error, got %v", err)
	}
	if !errors.Is(err, users.err) {
		t.Fatalf("expected underlying cause to be preserved, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("backend failure must not look like bad credentials")
	}

	entries := logs.FilterMessage("validate credentials").All()
	if len(entries) != 1 {
		t.Fatalf("expected one error log, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["email"]; got != "a***@b.com" {
		t.Fatalf("expected masked email in log, got %v", got)
	}
}

func TestLoginSignerFailure(t *testing.T) {
	users := newFakeUserRepo(activeUser()).withPassword("a@b.com", "pw")
	svc := NewAuthService(users, &fakeSigner{err: errors.New("boom")}, zaptest.NewLogger(t))

	if _, err := svc.Login(context.Background(), "a@b.com", "pw"); domain.KindOf(err) != domain.KindInfrastructure {
		t.Fatalf("expected infrastructure error, got %v", err)
	}
}

func TestParseAccessTokenNormalisesErrors(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), &fakeSigner{parseErr: domain.ErrJWTExpired}, zaptest.NewLogger(t))
	if _, err := svc.ParseAccessToken("x"); !errors.Is(err, domain.ErrJWTExpired) {
		t.Fatalf("expected ErrJWTExpired, got %v", err)
	}

	svc = NewAuthService(newFakeUserRepo(), &fakeSigner{parseErr: errors.New("weird")}, zaptest.NewLogger(t))
	if _, err := svc.ParseAccessToken("x"); !errors.Is(err, domain.ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid, got %v", err)
	}
}
