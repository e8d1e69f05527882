package handlers

import (
	"errors"
	"regexp"
)

var (
	phonePattern      = regexp.MustCompile(`^\d{1,10}$`)
	internalIDPattern = regexp.MustCompile(`^\d{6}$`)
)

var (
	errPhoneFormat      = errors.New("Phone number must contain only digits and be up to 10 characters long.")
	errInternalIDFormat = errors.New("Internal ID must contain exactly 6 digits.")
)

func validatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return errPhoneFormat
	}
	return nil
}

func validateInternalID(id *string) error {
	if id == nil || *id == "" {
		return nil
	}
	if !internalIDPattern.MatchString(*id) {
		return errInternalIDFormat
	}
	return nil
}
