package service

import (
	"context"
	"net/http"

	"github.com/varlopecar/react-form/shared/domain"
	internal_errors "github.com/varlopecar/react-form/shared/errors"
)

// --- Mocks ---

type MockUserStorage struct {
	SaveUserFunc       func(user domain.User) (domain.User, error)
	UserByEmailFunc    func(email domain.Email) (domain.User, error)
	UserByIdFunc       func(id domain.UserId) (domain.User, error)
	UsersFunc          func() ([]domain.User, error)
	UpdatePasswordFunc func(id domain.UserId, passHash string) error
	DeleteUserFunc     func(id domain.UserId) error
	PingFunc           func() error
}

func (m *MockUserStorage) SaveUser(ctx context.Context, user domain.User) (domain.User, error) {
	if m.SaveUserFunc != nil {
		return m.SaveUserFunc(user)
	}
	user.Id = 1
	return user, nil
}

func (m *MockUserStorage) UserByEmail(ctx context.Context, email domain.Email) (domain.User, error) {
	if m.UserByEmailFunc != nil {
		return m.UserByEmailFunc(email)
	}
	return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
}

func (m *MockUserStorage) UserById(ctx context.Context, id domain.UserId) (domain.User, error) {
	if m.UserByIdFunc != nil {
		return m.UserByIdFunc(id)
	}
	return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
}

func (m *MockUserStorage) Users(ctx context.Context) ([]domain.User, error) {
	if m.UsersFunc != nil {
		return m.UsersFunc()
	}
	return nil, nil
}

func (m *MockUserStorage) UpdatePassword(ctx context.Context, id domain.UserId, passHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(id, passHash)
	}
	return nil
}

func (m *MockUserStorage) DeleteUser(ctx context.Context, id domain.UserId) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(id)
	}
	return nil
}

func (m *MockUserStorage) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc()
	}
	return nil
}

type MockJwt struct {
	NewTokenFunc func(user domain.User) (string, error)
}

func (m *MockJwt) NewToken(user domain.User) (string, error) {
	if m.NewTokenFunc != nil {
		return m.NewTokenFunc(user)
	}
	return "test_token", nil
}
