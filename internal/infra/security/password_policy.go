package security

import (
	"github.com/parkit/parkit-auth/internal/core/port"
	"github.com/parkit/parkit-auth/internal/infra/config"
)

// PasswordPolicy applies its rules in order and reports the first violation.
type PasswordPolicy struct {
	rules []PasswordRule
}

func NewPasswordPolicy(rules ...PasswordRule) *PasswordPolicy {
	copied := make([]PasswordRule, len(rules))
	copy(copied, rules)
	return &PasswordPolicy{rules: copied}
}

// NewPasswordPolicyFromConfig builds the registration policy from settings.
func NewPasswordPolicyFromConfig(cfg config.PasswordSettings) *PasswordPolicy {
	return NewPasswordPolicy(
		MinLengthRule(cfg.MinLength),
		MaxBytesRule(),
		StrengthRule(cfg.MinScore),
	)
}

func (p *PasswordPolicy) Validate(password string, userInputs ...string) error {
	for _, rule := range p.rules {
		if err := rule.Validate(password, userInputs); err != nil {
			return err
		}
	}
	return nil
}

var _ port.PasswordPolicyValidator = (*PasswordPolicy)(nil)
