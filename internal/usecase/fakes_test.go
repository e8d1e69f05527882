package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/parkit/parkit-auth/internal/core/domain"
	"github.com/parkit/parkit-auth/internal/core/port"
)

type fakeUserRepo struct {
	byEmail     map[string]domain.User
	passwords   map[string]string
	err         error
	created     []domain.User
	createErr   error
	nextID      int64
	lookupCalls int
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{
		byEmail:   make(map[string]domain.User),
		passwords: make(map[string]string),
		nextID:    100,
	}
	for _, u := range users {
		repo.byEmail[u.Email] = u
	}
	return repo
}

func (r *fakeUserRepo) withPassword(email, password string) *fakeUserRepo {
	r.passwords[email] = password
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	user.ID = r.nextID
	r.created = append(r.created, user)
	r.byEmail[user.Email] = user
	return &user, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.lookupCalls++
	if r.err != nil {
		return nil, r.err
	}
	if u, ok := r.byEmail[email]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmailOrUserName(_ context.Context, email, userName string) (*domain.User, error) {
	r.lookupCalls++
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.byEmail {
		if u.Email == email || u.UserName == userName {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ValidateCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, err
	}
	if r.passwords[email] != password {
		return nil, nil
	}
	return user, nil
}

type fakeSigner struct {
	token      string
	err        error
	parseErr   error
	accessCall int
	resetCall  int
	lastAccess domain.AccessClaims
	lastReset  domain.ResetClaims
}

func (s *fakeSigner) SignAccess(claims domain.AccessClaims) (string, error) {
	s.accessCall++
	s.lastAccess = claims
	return s.token, s.err
}

func (s *fakeSigner) SignReset(claims domain.ResetClaims) (string, error) {
	s.resetCall++
	s.lastReset = claims
	return s.token, s.err
}

func (s *fakeSigner) ParseAccess(string) (*domain.AccessClaims, error) {
	if s.parseErr != nil {
		return nil, s.parseErr
	}
	return &s.lastAccess, nil
}

type fakeNotifier struct {
	result port.NotificationResult
	err    error
	sent   []port.EmailMessage
}

func (n *fakeNotifier) SendEmail(_ context.Context, msg port.EmailMessage) (port.NotificationResult, error) {
	n.sent = append(n.sent, msg)
	return n.result, n.err
}

type fakePublisher struct {
	registered []domain.UserRegisteredEvent
	resets     []domain.PasswordResetRequestedEvent
	parkings   []domain.ParkingPreEnrolledEvent
	err        error
}

func (p *fakePublisher) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	p.registered = append(p.registered, event)
	return p.err
}

func (p *fakePublisher) PublishPasswordResetRequested(_ context.Context, event domain.PasswordResetRequestedEvent) error {
	p.resets = append(p.resets, event)
	return p.err
}

func (p *fakePublisher) PublishParkingPreEnrolled(_ context.Context, event domain.ParkingPreEnrolledEvent) error {
	p.parkings = append(p.parkings, event)
	return p.err
}

type fakeHasher struct {
	err error
}

func (h fakeHasher) Hash(password string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + password, nil
}

func (h fakeHasher) Compare(hash, password string) (bool, error) {
	return hash == "hashed:"+password, nil
}

type fakePolicy struct{}

func (fakePolicy) Validate(password string, _ ...string) error {
	if len(password) < 8 || strings.ToLower(password) == password {
		return errors.New("password is too weak; choose a more complex value")
	}
	return nil
}

type fakeParkingRepo struct {
	byEmail   map[string]domain.PreEnrolledParking
	err       error
	createErr error
	created   []domain.PreEnrolledParking
}

func newFakeParkingRepo() *fakeParkingRepo {
	return &fakeParkingRepo{byEmail: make(map[string]domain.PreEnrolledParking)}
}

func (r *fakeParkingRepo) FindByEmail(_ context.Context, email string) (*domain.PreEnrolledParking, error) {
	if r.err != nil {
		return nil, r.err
	}
	if p, ok := r.byEmail[email]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *fakeParkingRepo) Create(_ context.Context, parking domain.PreEnrolledParking) (*domain.PreEnrolledParking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	parking.ID = int64(len(r.created) + 1)
	r.created = append(r.created, parking)
	return &parking, nil
}
