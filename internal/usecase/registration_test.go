package usecase

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/parkit/parkit-auth/internal/core/domain"
)

func validRegistration() RegisterInput {
	return RegisterInput{
		Name:     "Luis",
		LastName: "Diaz",
		Email:    "luis@parkit.co",
		UserName: "ldiaz",
		Password: "Sup3rSecret!",
	}
}

func TestRegisterCreatesActiveUser(t *testing.T) {
	users := newFakeUserRepo()
	events := &fakePublisher{}
	svc := NewRegistrationService(users, fakeHasher{}, fakePolicy{}, events, zaptest.NewLogger(t))

	user, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected generated id")
	}
	if user.PasswordHash != "hashed:Sup3rSecret!" {
		t.Fatalf("password was not hashed: %q", user.PasswordHash)
	}
	if user.RoleID != domain.RolePlatformUser || user.StatusID != domain.StatusActive {
		t.Fatalf("expected default role and active status, got role=%d status=%d", user.RoleID, user.StatusID)
	}
	if len(events.registered) != 1 || events.registered[0].UserID != user.ID {
		t.Fatalf("expected registration event, got %+v", events.registered)
	}
}

func TestRegisterKeepsExplicitRole(t *testing.T) {
	input := validRegistration()
	input.RoleID = 3
	svc := NewRegistrationService(newFakeUserRepo(), fakeHasher{}, fakePolicy{}, nil, zaptest.NewLogger(t))

	user, err := svc.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.RoleID != 3 {
		t.Fatalf("expected role 3, got %d", user.RoleID)
	}
}

func TestRegisterConflicts(t *testing.T) {
	existing := activeUser()
	tests := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{
			name:  "email taken",
			input: RegisterInput{Email: existing.Email, UserName: "other", Password: "Sup3rSecret!"},
			want:  domain.ErrUserEmailExists,
		},
		{
			name:  "email and user name taken reports email",
			input: RegisterInput{Email: existing.Email, UserName: existing.UserName, Password: "Sup3rSecret!"},
			want:  domain.ErrUserEmailExists,
		},
		{
			name:  "user name taken",
			input: RegisterInput{Email: "new@parkit.co", UserName: existing.UserName, Password: "Sup3rSecret!"},
			want:  domain.ErrUserNameExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newFakeUserRepo(existing)
			svc := NewRegistrationService(users, fakeHasher{}, fakePolicy{}, nil, zaptest.NewLogger(t))

			_, err := svc.Register(context.Background(), tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if len(users.created) != 0 {
				t.Fatalf("no user should be created on conflict")
			}
		})
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	input := validRegistration()
	input.Password = "short"
	users := newFakeUserRepo()
	svc := NewRegistrationService(users, fakeHasher{}, fakePolicy{}, nil, zaptest.NewLogger(t))

	_, err := svc.Register(context.Background(), input)
	if !errors.Is(err, domain.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	var typed *domain.Error
	if !errors.As(err, &typed) || typed.PublicMessage() == "" {
		t.Fatalf("expected policy message to be exposed, got %v", err)
	}
	if len(users.created) != 0 {
		t.Fatalf("weak password must not be stored")
	}
}

func TestRegisterInfrastructureFailures(t *testing.T) {
	users := newFakeUserRepo()
	users.err = errors.New("db down")
	svc := NewRegistrationService(users, fakeHasher{}, fakePolicy{}, nil, zaptest.NewLogger(t))
	if _, err := svc.Register(context.Background(), validRegistration()); domain.KindOf(err) != domain.KindInfrastructure {
		t.Fatalf("lookup failure: expected infrastructure error, got %v", err)
	}

	svc = NewRegistrationService(newFakeUserRepo(), fakeHasher{err: errors.New("cost")}, fakePolicy{}, nil, zaptest.NewLogger(t))
	if _, err := svc.Register(context.Background(), validRegistration()); domain.KindOf(err) != domain.KindInfrastructure {
		t.Fatalf("hash failure: expected infrastructure error, got %v", err)
	}

	users = newFakeUserRepo()
	users.createErr = errors.New("unique violation")
	svc = NewRegistrationService(users, fakeHasher{}, fakePolicy{}, nil, zaptest.NewLogger(t))
	if _, err := svc.Register(context.Background(), validRegistration()); domain.KindOf(err) != domain.KindInfrastructure {
		t.Fatalf("create failure: expected infrastructure error, got %v", err)
	}
}
