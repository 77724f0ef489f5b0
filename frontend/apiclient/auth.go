package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/varlopecar/react-form/shared/api"
	"github.com/varlopecar/react-form/shared/domain"
	"github.com/varlopecar/react-form/shared/logger"
)

// LoginResult is a successful login. User is nil for servers that only return the token.
type LoginResult struct {
	Token     string
	TokenType string
	User      *api.User
}

// RegisterUser creates an account from a validated record. A taken email is
// reported as ErrDuplicateResource. On success the record is kept under
// RegistrationKey, best effort.
func (c *APIClient) RegisterUser(ctx context.Context, record domain.RegistrationRecord, password string) (api.User, error) {
	req := api.RegisterRequest{
		FirstName:  record.FirstName,
		LastName:   record.LastName,
		Email:      record.Email,
		BirthDate:  record.BirthDate,
		City:       record.City,
		PostalCode: record.PostalCode,
		Password:   password,
	}

	var user api.User
	err := c.request(ctx, call{
		method:    http.MethodPost,
		base:      c.BaseURL,
		path:      "/register",
		body:      req,
		nestedKey: "user",
	}, &user)
	if err != nil {
		if isDuplicate(err) {
			return api.User{}, classify(err, ErrDuplicateResource)
		}
		return api.User{}, err
	}
	if user.Id == 0 {
		return api.User{}, &APIError{StatusCode: http.StatusCreated, Message: "Register response carried no user"}
	}

	c.rememberRegistration(record)
	return user, nil
}

func (c *APIClient) rememberRegistration(record domain.RegistrationRecord) {
	data, err := json.Marshal(record)
	if err == nil {
		err = c.tokens.Set(RegistrationKey, string(data))
	}
	if err != nil {
		logger.Log.Warn("failed to save registration data", "error", err)
	}
}

// Login exchanges credentials for a token and stores it. Every server-side
// failure is an ErrInvalidCredentials carrying the server's message.
func (c *APIClient) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var res api.LoginResponse
	err := c.request(ctx, call{
		method: http.MethodPost,
		base:   c.BaseURL,
		path:   "/login",
		body:   api.LoginRequest{Email: email, Password: password},
	}, &res)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return LoginResult{}, classify(err, ErrInvalidCredentials)
		}
		return LoginResult{}, err
	}
	if res.AccessToken == "" {
		return LoginResult{}, &APIError{StatusCode: http.StatusOK, Message: "Login response carried no token", kind: ErrInvalidCredentials}
	}

	if err := c.tokens.Set(TokenKey, res.AccessToken); err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: res.AccessToken, TokenType: res.TokenType, User: res.User}, nil
}

// Logout forgets the stored token. Nothing is sent to the server.
func (c *APIClient) Logout() error {
	return c.tokens.Delete(TokenKey)
}
