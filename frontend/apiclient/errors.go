package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrAuthenticationRequired is returned before any request is sent when a
	// call needs a token and the store has none.
	ErrAuthenticationRequired = errors.New("no authentication token")
	// ErrInvalidCredentials classifies failed logins and rejected tokens.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateResource classifies a registration for an email that is already taken.
	ErrDuplicateResource = errors.New("resource already exists")
)

// APIError is a failure reported by the server, either by status code or by
// an envelope with success:false. Message is the most specific text the
// server gave.
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap exposes the classification, so errors.Is(err, ErrDuplicateResource) works.
func (e *APIError) Unwrap() error {
	return e.kind
}

func httpErrorMessage(statusCode int) string {
	return fmt.Sprintf("HTTP error! status: %d", statusCode)
}

// classify tags err with kind when it is an APIError; other errors pass through.
func classify(err error, kind error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		apiErr.kind = kind
	}
	return err
}

func isDuplicate(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusConflict ||
		strings.Contains(strings.ToLower(apiErr.Message), "already registered")
}
