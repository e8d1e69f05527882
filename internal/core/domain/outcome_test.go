package domain

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestSuccessOutcomeOmitsStatus(t *testing.T) {
	out := Success(KindEmailSent, nil)
	if !out.IsSuccess() {
		t.Fatalf("expected success outcome")
	}
	if out.HTTPStatus() != http.StatusOK {
		t.Fatalf("expected 200, got %d", out.HTTPStatus())
	}

	body, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(body), `"status"`) {
		t.Fatalf("success outcome must not carry a status: %s", body)
	}
	if !strings.Contains(string(body), `"code":"KHL_EMAIL_SENT"`) || !strings.Contains(string(body), `"data":null`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestFailureOutcomeCarriesStatus(t *testing.T) {
	out := Failure(KindNotificationFailed, map[string]any{"error": "down"})
	if out.IsSuccess() {
		t.Fatalf("failure reported as success")
	}
	if out.Status != http.StatusBadGateway || out.HTTPStatus() != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", out.Status)
	}
	if out.Code != "KHL_NOTIFICATION_FAILED" {
		t.Fatalf("unexpected code %q", out.Code)
	}
}

func TestUnknownKindFallsBackToGeneralError(t *testing.T) {
	info := Kind(999).Info()
	if info.Code != "PKU_GENERAL_ERROR" || info.Status != http.StatusInternalServerError {
		t.Fatalf("unexpected fallback %+v", info)
	}
}

func TestErrorMatchesByKind(t *testing.T) {
	err := NewError(KindWeakPassword, "too short")
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected kind match")
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("different kinds must not match")
	}
	if err.PublicMessage() != "too short" {
		t.Fatalf("unexpected public message %q", err.PublicMessage())
	}
}

func TestWrapInfrastructureHidesCause(t *testing.T) {
	cause := errors.New("pq: password authentication failed")
	err := WrapInfrastructure("find user", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("cause must stay reachable with errors.Is")
	}
	if KindOf(err) != KindInfrastructure {
		t.Fatalf("expected infrastructure kind")
	}

	out := OutcomeFromError(err)
	if out.Status != http.StatusInternalServerError || out.Code != "PKU_GENERAL_ERROR" {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if strings.Contains(out.Message, "password authentication") {
		t.Fatalf("outcome leaked the cause: %q", out.Message)
	}
	if WrapInfrastructure("noop", nil) != nil {
		t.Fatalf("nil error must stay nil")
	}
}

func TestOutcomeFromUntypedError(t *testing.T) {
	out := OutcomeFromError(errors.New("boom"))
	if out.Kind != KindInfrastructure || out.HTTPStatus() != http.StatusInternalServerError {
		t.Fatalf("unexpected outcome %+v", out)
	}
}

func TestInactiveUserSharesRoleNotAllowedWireCode(t *testing.T) {
	inactive, role := KindInactiveUser.Info(), KindRoleNotAllowed.Info()
	if inactive != role {
		t.Fatalf("inactive user must render as %+v, got %+v", role, inactive)
	}
	if inactive.Code != "PKL_ROLE_NOT_ALLOWED" || inactive.Status != http.StatusForbidden {
		t.Fatalf("unexpected inactive user code %+v", inactive)
	}
}
