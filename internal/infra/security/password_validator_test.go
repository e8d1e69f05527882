package security

import (
	"errors"
	"strings"
	"testing"

	zxcvbn "github.com/nbutton23/zxcvbn-go"

	"github.com/parkit/parkit-auth/internal/infra/config"
)

func TestPasswordPolicyAcceptsStrongPassword(t *testing.T) {
	policy := NewPasswordPolicyFromConfig(config.PasswordSettings{MinLength: 8, MinScore: 2})

	password := "C0mplex!Passphrase#2025"
	if strength := zxcvbn.PasswordStrength(password, nil); strength.Score < 2 {
		t.Fatalf("test password unexpectedly weak: score=%d", strength.Score)
	}
	if err := policy.Validate(password, "ana@parkit.co", "ana"); err != nil {
		t.Fatalf("expected password to pass validation, got %v", err)
	}
}

func TestPasswordPolicyViolations(t *testing.T) {
	policy := NewPasswordPolicyFromConfig(config.PasswordSettings{MinLength: 8, MinScore: 3})

	assertViolation := func(password, expectedCode string) {
		t.Helper()
		err := policy.Validate(password)
		if err == nil {
			t.Fatalf("expected validation error for %s", expectedCode)
		}
		var vErr *PasswordValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected PasswordValidationError, got %T", err)
		}
		if vErr.Code != expectedCode {
			t.Fatalf("expected %s code, got %s", expectedCode, vErr.Code)
		}
	}

	assertViolation("Short1!", "min_length")
	assertViolation(strings.Repeat("Ab1!", 19), "max_length")
	assertViolation("password", "weak_password")
}

func TestStrengthRuleDisabledWithZeroScore(t *testing.T) {
	policy := NewPasswordPolicy(StrengthRule(0))
	if err := policy.Validate("aaaaaaaa"); err != nil {
		t.Fatalf("expected zero score to disable strength check, got %v", err)
	}
}
