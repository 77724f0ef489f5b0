package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/varlopecar/react-form/shared/api"
	"github.com/varlopecar/react-form/shared/domain"
)

// GetUsers lists all users, with the token when there is one.
func (c *APIClient) GetUsers(ctx context.Context) ([]api.User, error) {
	var users []api.User
	err := c.request(ctx, call{method: http.MethodGet, base: c.BaseURL, path: "/users", auth: authOptional}, &users)
	return users, err
}

func (c *APIClient) GetPublicUsers(ctx context.Context) ([]api.PublicUser, error) {
	var users []api.PublicUser
	err := c.request(ctx, call{method: http.MethodGet, base: c.BaseURL, path: "/public-users"}, &users)
	return users, err
}

func (c *APIClient) GetCurrentUser(ctx context.Context) (api.User, error) {
	var user api.User
	err := c.request(ctx, call{method: http.MethodGet, base: c.BaseURL, path: "/me", auth: authRequired, nestedKey: "user"}, &user)
	return user, err
}

// DeleteUser returns the server's confirmation message.
// Whether the caller is an admin is left to the server.
func (c *APIClient) DeleteUser(ctx context.Context, id domain.UserId) (string, error) {
	var res api.MessageResponse
	err := c.request(ctx, call{
		method: http.MethodDelete,
		base:   c.BaseURL,
		path:   fmt.Sprintf("/users/%d", id),
		auth:   authRequired,
	}, &res)
	return res.Message, err
}

func (c *APIClient) Health(ctx context.Context) (api.HealthResponse, error) {
	var res api.HealthResponse
	err := c.request(ctx, call{method: http.MethodGet, base: c.BaseURL, path: "/health"}, &res)
	return res, err
}

func (c *APIClient) Info(ctx context.Context) (api.InfoResponse, error) {
	var res api.InfoResponse
	err := c.request(ctx, call{method: http.MethodGet, base: c.BaseURL, path: "/"}, &res)
	return res, err
}
