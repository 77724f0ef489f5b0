package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/varlopecar/react-form/shared/domain"
	"github.com/varlopecar/react-form/shared/errors"
	"github.com/varlopecar/react-form/shared/logger"
	"github.com/varlopecar/react-form/shared/middleware/metrics"
	"github.com/varlopecar/react-form/shared/validation"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, user domain.User, password domain.Password) (domain.User, error)
	Login(ctx context.Context, creds domain.Credentials) (string, domain.User, error)
	EnsureAdmin(ctx context.Context, creds domain.Credentials) error
}

type Auth struct {
	storage UserStorage
	jwt     Jwt
	schema  *validation.Schema
}

type UserStorage interface {
	SaveUser(ctx context.Context, user domain.User) (domain.User, error)
	UserByEmail(ctx context.Context, email domain.Email) (domain.User, error)
	UserById(ctx context.Context, id domain.UserId) (domain.User, error)
	Users(ctx context.Context) ([]domain.User, error)
	UpdatePassword(ctx context.Context, id domain.UserId, passHash string) error
	DeleteUser(ctx context.Context, id domain.UserId) error
	Ping(ctx context.Context) error
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

func NewAuth(storage UserStorage, jwt Jwt, schema *validation.Schema) *Auth {
	return &Auth{
		storage: storage,
		jwt:     jwt,
		schema:  schema,
	}
}

var errBadCredentials = &errors.ErrorWithStatusCode{Message: "Incorrect email or password", StatusCode: http.StatusUnauthorized}

// Register validates the profile with the registration rules, hashes the
// password and stores a non-admin user.
func (a *Auth) Register(ctx context.Context, user domain.User, password domain.Password) (domain.User, error) {
	user.Email = normalizeEmail(user.Email)
	user.FirstName = sanitizeText(user.FirstName)
	user.LastName = sanitizeText(user.LastName)
	user.City = sanitizeText(user.City)
	user.PostalCode = strings.TrimSpace(user.PostalCode)
	user.Admin = false

	_, fieldErrs := a.schema.Validate(domain.RegistrationInput{
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Email:      user.Email,
		BirthDate:  user.BirthDate.String(),
		City:       user.City,
		PostalCode: user.PostalCode,
	})
	if fieldErrs != nil {
		metrics.Registrations.WithLabelValues("invalid").Inc()
		return domain.User{}, &errors.ErrorWithStatusCode{Message: fieldErrs.Error(), StatusCode: http.StatusUnprocessableEntity}
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.User{}, err
	}
	user.PassHash = string(passHash)

	saved, err := a.storage.SaveUser(ctx, user)
	if err != nil {
		if errors.IsConflict(err) {
			metrics.Registrations.WithLabelValues("duplicate").Inc()
		}
		return domain.User{}, err
	}

	metrics.Registrations.WithLabelValues("created").Inc()
	logger.Log.Info("user registered", "user_id", saved.Id)
	return saved, nil
}

// Login checks the credentials and returns an access token with the user.
// Unknown email and wrong password are indistinguishable to the caller.
func (a *Auth) Login(ctx context.Context, creds domain.Credentials) (string, domain.User, error) {
	user, err := a.storage.UserByEmail(ctx, normalizeEmail(creds.Email))
	if err != nil {
		if errors.IsNotFound(err) {
			metrics.Logins.WithLabelValues("failure").Inc()
			return "", domain.User{}, errBadCredentials
		}
		return "", domain.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		metrics.Logins.WithLabelValues("failure").Inc()
		logger.Log.Info("password verification failed", "user_id", user.Id)
		return "", domain.User{}, errBadCredentials
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to create jwt token", "user_id", user.Id, "error", err)
		return "", domain.User{}, err
	}

	metrics.Logins.WithLabelValues("success").Inc()
	return token, user, nil
}

// EnsureAdmin creates the configured admin account if it is missing and
// resets its password when it no longer matches the configured one.
func (a *Auth) EnsureAdmin(ctx context.Context, creds domain.Credentials) error {
	email := normalizeEmail(creds.Email)
	if email == "" || creds.Password == "" {
		logger.Log.Warn("admin credentials not configured, skipping admin setup")
		return nil
	}

	existing, err := a.storage.UserByEmail(ctx, email)
	if err != nil && !errors.IsNotFound(err) {
		return err
	}

	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(existing.PassHash), []byte(creds.Password)) == nil {
			logger.Log.Info("admin user present", "email", email)
			return nil
		}
		passHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := a.storage.UpdatePassword(ctx, existing.Id, string(passHash)); err != nil {
			return err
		}
		logger.Log.Info("admin password updated", "email", email)
		return nil
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = a.storage.SaveUser(ctx, domain.User{
		Email:      email,
		PassHash:   string(passHash),
		FirstName:  "Admin",
		LastName:   "User",
		BirthDate:  domain.NewDate(1990, 1, 1),
		City:       "Paris",
		PostalCode: "75001",
		Admin:      true,
	})
	if err != nil {
		return err
	}
	logger.Log.Info("admin user created", "email", email)
	return nil
}

func normalizeEmail(email domain.Email) domain.Email {
	return strings.ToLower(strings.TrimSpace(email))
}
