package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/varlopecar/react-form/backend/internal/setup"
	"github.com/varlopecar/react-form/backend/internal/storage/memory"
	"github.com/varlopecar/react-form/shared/api"
	"github.com/varlopecar/react-form/shared/config"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin-password"
)

func newTestServer(t *testing.T, loginPerMinute int) *httptest.Server {
	t.Helper()
	cfg := config.New(
		config.Public{
			Storage:        "memory",
			CorsOrigins:    []string{"http://localhost:3000"},
			JwtTTL:         30 * time.Minute,
			LoginPerMinute: loginPerMinute,
		},
		config.Private{JwtKey: "test-secret", AdminEmail: adminEmail, AdminPassword: adminPassword},
	)
	deps, err := setup.WithStorage(context.Background(), cfg, memory.New())
	require.NoError(t, err)

	srv := httptest.NewServer(New(deps))
	t.Cleanup(func() {
		srv.Close()
		deps.Cleanup()
	})
	return srv
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func registration(email string) map[string]string {
	return map[string]string{
		"first_name":  "Jean",
		"last_name":   "Dupont",
		"email":       email,
		"birth_date":  "1990-01-01",
		"city":        "Paris",
		"postal_code": "75001",
		"password":    "secret123",
	}
}

func login(t *testing.T, srv *httptest.Server, email, password string) string {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var res api.LoginResponse
	require.NoError(t, json.Unmarshal(body, &res))
	return res.AccessToken
}

func TestRegisterLoginListFlow(t *testing.T) {
	srv := newTestServer(t, 100)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/register", "", registration("Jean@Example.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var reg api.RegisterResponse
	require.NoError(t, json.Unmarshal(body, &reg))
	require.NotNil(t, reg.User)
	assert.Equal(t, "jean@example.com", reg.User.Email)
	assert.False(t, reg.User.IsAdmin)

	token := login(t, srv, "jean@example.com", "secret123")
	require.NotEmpty(t, token)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/users", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []api.User
	require.NoError(t, json.Unmarshal(body, &users))
	count := 0
	for _, u := range users {
		if u.Email == "jean@example.com" {
			count++
			assert.False(t, u.IsAdmin)
			assert.Equal(t, "1990-01-01", u.BirthDate.String())
		}
	}
	assert.Equal(t, 1, count)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me api.User
	require.NoError(t, json.Unmarshal(body, &me))
	assert.Equal(t, reg.User.Id, me.Id)
}

func TestDuplicateRegistration(t *testing.T) {
	srv := newTestServer(t, 100)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/register", "", registration("dup@example.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var first api.RegisterResponse
	require.NoError(t, json.Unmarshal(body, &first))

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/register", "", registration("dup@example.com"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.JSONEq(t, `{"success":false,"error":"Email already registered"}`, string(body))

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/register", "", registration("next@example.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var next api.RegisterResponse
	require.NoError(t, json.Unmarshal(body, &next))
	assert.Equal(t, first.User.Id+1, next.User.Id)
}

func TestRegisterRejectsMinor(t *testing.T) {
	srv := newTestServer(t, 100)

	in := registration("kid@example.com")
	in["birth_date"] = "2020-01-01"
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/register", "", in)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var res api.RegisterResponse
	require.NoError(t, json.Unmarshal(body, &res))
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "birth")
}

func TestAuthorization(t *testing.T) {
	srv := newTestServer(t, 100)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/register", "", registration("user@example.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var reg api.RegisterResponse
	require.NoError(t, json.Unmarshal(body, &reg))
	userToken := login(t, srv, "user@example.com", "secret123")
	adminToken := login(t, srv, adminEmail, adminPassword)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/users", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/public-users", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	userPath := fmt.Sprintf("%s/users/%d", srv.URL, reg.User.Id)
	resp, body = doJSON(t, http.MethodDelete, userPath, userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.JSONEq(t, `{"detail":"Not authorized"}`, string(body))

	resp, body = doJSON(t, http.MethodDelete, srv.URL+"/users/1", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"detail":"Cannot delete admin user"}`, string(body))

	resp, body = doJSON(t, http.MethodDelete, userPath, adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"User deleted successfully"}`, string(body))

	resp, _ = doJSON(t, http.MethodDelete, userPath, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLoginRateLimit(t *testing.T) {
	srv := newTestServer(t, 2)
	creds := map[string]string{"email": "nobody@example.com", "password": "wrong"}

	for i := 0; i < 2; i++ {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/login", "", creds)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/login", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	// other endpoints are not limited
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServiceEndpoints(t *testing.T) {
	srv := newTestServer(t, 100)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health api.HealthResponse
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "connected", health.Database)
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "React Form API")

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), "reactform_http_requests_total"))
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, 100)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/register", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}
