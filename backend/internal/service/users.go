package service

import (
	"context"
	"net/http"

	"github.com/varlopecar/react-form/shared/domain"
	"github.com/varlopecar/react-form/shared/errors"
	"github.com/varlopecar/react-form/shared/logger"
)

type UsersService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id domain.UserId) (domain.User, error)
	Delete(ctx context.Context, id domain.UserId) error
	Health(ctx context.Context) error
}

type Users struct {
	storage UserStorage
}

func NewUsers(storage UserStorage) *Users {
	return &Users{storage: storage}
}

func (u *Users) List(ctx context.Context) ([]domain.User, error) {
	return u.storage.Users(ctx)
}

func (u *Users) Get(ctx context.Context, id domain.UserId) (domain.User, error) {
	return u.storage.UserById(ctx, id)
}

// Delete removes a regular user. Admin accounts cannot be deleted.
func (u *Users) Delete(ctx context.Context, id domain.UserId) error {
	user, err := u.storage.UserById(ctx, id)
	if err != nil {
		return err
	}
	if user.Admin {
		return &errors.ErrorWithStatusCode{Message: "Cannot delete admin user", StatusCode: http.StatusBadRequest}
	}
	if err := u.storage.DeleteUser(ctx, id); err != nil {
		return err
	}
	logger.Log.Info("user deleted", "user_id", id)
	return nil
}

// Health reports whether the storage answers.
func (u *Users) Health(ctx context.Context) error {
	return u.storage.Ping(ctx)
}
