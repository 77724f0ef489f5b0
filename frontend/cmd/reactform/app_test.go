package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, storePath string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"-store", storePath}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRegisterValidatesLocally(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()
	store := filepath.Join(t.TempDir(), "store.json")

	code, _, stderr := runCLI(t, store, "-api", srv.URL, "register",
		"-first-name", "J", "-last-name", "Dupont", "-email", "not-an-email",
		"-birth-date", "1990-01-01", "-city", "Paris", "-postal-code", "7500")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "firstName")
	assert.Contains(t, stderr, "email")
	assert.Contains(t, stderr, "postalCode")
	assert.Zero(t, requests)
}

func TestLoginThenMe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			_, _ = io.WriteString(w, `{"success":true,"access_token":"tok","token_type":"bearer","user":{"id":1,"email":"a@example.com"}}`)
		case "/me":
			if r.Header.Get("Authorization") != "Bearer tok" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = io.WriteString(w, `{"detail":"Not authenticated"}`)
				return
			}
			_, _ = io.WriteString(w, `{"id":1,"email":"a@example.com"}`)
		}
	}))
	defer srv.Close()
	store := filepath.Join(t.TempDir(), "store.json")

	code, stdout, _ := runCLI(t, store, "-api", srv.URL, "login", "-email", "a@example.com", "-password", "pw")
	require.Equal(t, 0, code)
	assert.NotContains(t, stdout, "tok\"", "the token is not printed")

	code, stdout, _ = runCLI(t, store, "-api", srv.URL, "me")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, `"email": "a@example.com"`)

	code, _, _ = runCLI(t, store, "-api", srv.URL, "logout")
	require.Equal(t, 0, code)

	code, _, stderr := runCLI(t, store, "-api", srv.URL, "me")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "no authentication token")
}

func TestUsageErrors(t *testing.T) {
	store := filepath.Join(t.TempDir(), "store.json")

	code, _, _ := runCLI(t, store)
	assert.Equal(t, 2, code)

	code, _, stderr := runCLI(t, store, "-api", "http://127.0.0.1:1", "bogus")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown command")

	code, _, stderr = runCLI(t, store, "-api", "http://127.0.0.1:1", "delete", "abc")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid user id")
}
