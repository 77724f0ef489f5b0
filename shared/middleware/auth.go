package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/varlopecar/react-form/shared/domain"
	"github.com/varlopecar/react-form/shared/errors"
	jwt_internal "github.com/varlopecar/react-form/shared/jwt"
	"github.com/varlopecar/react-form/shared/logger"
	"github.com/varlopecar/react-form/shared/utils"
)

// Key to store the user claims in the request context
type key int

const UserClaimsKey key = 0

type Auth struct {
	jwtService jwt_internal.JwtService
}

func NewAuth(jwtService jwt_internal.JwtService) *Auth {
	return &Auth{jwtService: jwtService}
}

// NeedAuth requires a valid bearer token.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.auth(false)
}

// AdminOnly requires a valid bearer token of an admin.
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.auth(true)
}

func (a *Auth) extractUser(r *http.Request) (*domain.User, error) {
	tokenString, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !found || tokenString == "" {
		return nil, errNoToken
	}

	token, err := a.jwtService.DecodeToken(tokenString)
	if err != nil {
		return nil, err
	}

	return jwt_internal.UserFromClaims(token)
}

var (
	errNoToken = &errors.ErrorWithStatusCode{Message: "Not authenticated", StatusCode: http.StatusUnauthorized}
	errNoAdmin = &errors.ErrorWithStatusCode{Message: "Not authorized", StatusCode: http.StatusForbidden}
)

func (a *Auth) auth(adminOnly bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := a.extractUser(r)
			if err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			if adminOnly && !user.Admin {
				logger.Log.Warn("non-admin tried admin route", "user_id", user.Id, "path", r.URL.Path)
				utils.WriteErrorAndStatusCode(w, errNoAdmin)
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the authenticated user or nil.
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(UserClaimsKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
