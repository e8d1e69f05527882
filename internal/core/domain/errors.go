package domain

import (
	"errors"
	"fmt"
)

// Error is a typed failure carrying a stable Kind.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

var (
	ErrInvalidCredentials    = &Error{Kind: KindInvalidCredentials}
	ErrInactiveUser          = &Error{Kind: KindInactiveUser}
	ErrUserEmailExists       = &Error{Kind: KindUserEmailExists}
	ErrUserNameExists        = &Error{Kind: KindUserNameExists}
	ErrWeakPassword          = &Error{Kind: KindWeakPassword}
	ErrParkingEmailExists    = &Error{Kind: KindParkingEmailExists}
	ErrBusinessRuleViolation = &Error{Kind: KindBusinessRuleViolation}
	ErrJWTExpired            = &Error{Kind: KindJWTExpired}
	ErrJWTInvalid            = &Error{Kind: KindJWTInvalid}
)

// NewError returns an error of the given kind with a caller supplied message.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapInfrastructure tags an unexpected backend failure so the transport layer
// can map it to a generic 500 without leaking details.
func WrapInfrastructure(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindInfrastructure, Err: fmt.Errorf("%s: %w", op, err)}
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.Info().Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind.Code(), msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind.Code(), msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// PublicMessage is the message safe to return to API clients.
func (e *Error) PublicMessage() string {
	if e.Message != "" && e.Kind != KindInfrastructure {
		return e.Message
	}
	return e.Kind.Info().Message
}

// KindOf resolves err to its Kind. Untyped errors are infrastructure failures.
func KindOf(err error) Kind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return KindInfrastructure
}

// OutcomeFromError renders err as a failure outcome.
func OutcomeFromError(err error) Outcome {
	var typed *Error
	if !errors.As(err, &typed) {
		return Failure(KindInfrastructure, nil)
	}
	out := Failure(typed.Kind, nil)
	out.Message = typed.PublicMessage()
	return out
}
