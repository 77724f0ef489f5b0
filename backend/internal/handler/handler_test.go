package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/varlopecar/react-form/shared/domain"
	internal_errors "github.com/varlopecar/react-form/shared/errors"
	"github.com/varlopecar/react-form/shared/middleware"
)

// --- Mocks ---

type MockAuthService struct {
	RegisterFunc    func(user domain.User, password domain.Password) (domain.User, error)
	LoginFunc       func(creds domain.Credentials) (string, domain.User, error)
	EnsureAdminFunc func(creds domain.Credentials) error
}

func (m *MockAuthService) Register(ctx context.Context, user domain.User, password domain.Password) (domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(user, password)
	}
	user.Id = 1
	return user, nil
}

func (m *MockAuthService) Login(ctx context.Context, creds domain.Credentials) (string, domain.User, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(creds)
	}
	return "test_token", domain.User{Id: 1, Email: creds.Email}, nil
}

func (m *MockAuthService) EnsureAdmin(ctx context.Context, creds domain.Credentials) error {
	if m.EnsureAdminFunc != nil {
		return m.EnsureAdminFunc(creds)
	}
	return nil
}

type MockUsersService struct {
	ListFunc   func() ([]domain.User, error)
	GetFunc    func(id domain.UserId) (domain.User, error)
	DeleteFunc func(id domain.UserId) error
	HealthFunc func() error
}

func (m *MockUsersService) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return []domain.User{}, nil
}

func (m *MockUsersService) Get(ctx context.Context, id domain.UserId) (domain.User, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return domain.User{}, internal_errors.New(http.StatusNotFound, "User not found")
}

func (m *MockUsersService) Delete(ctx context.Context, id domain.UserId) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

func (m *MockUsersService) Health(ctx context.Context) error {
	if m.HealthFunc != nil {
		return m.HealthFunc()
	}
	return nil
}

// --- Helpers ---

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestHandler(auth *MockAuthService, users *MockUsersService) *Handler {
	h := New(auth, users, nil)
	h.now = func() time.Time { return fixedNow }
	return h
}

func createRequest(t *testing.T, method, url string, body []byte) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, url, bytes.NewBuffer(body))
}

func withUser(r *http.Request, user *domain.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.UserClaimsKey, user))
}
