package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/varlopecar/react-form/shared/logger"
)

type authMode int

const (
	authNone authMode = iota
	// authOptional sends the token when there is one.
	authOptional
	// authRequired fails locally without a token.
	authRequired
)

// APIClient struct handles all communication with the backend API and the blog service.
type APIClient struct {
	BaseURL     string
	BlogBaseURL string
	HttpClient  *http.Client
	tokens      TokenStore
}

type Option func(*APIClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *APIClient) { c.HttpClient = hc }
}

// WithBlogURL sets the blog origin; empty means resolve it from the environment.
func WithBlogURL(url string) Option {
	return func(c *APIClient) { c.BlogBaseURL = url }
}

// New creates a client. An empty baseURL is resolved from env, see APIURL.
func New(baseURL string, tokens TokenStore, env Environment, opts ...Option) *APIClient {
	c := &APIClient{
		HttpClient: &http.Client{},
		tokens:     tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tokens == nil {
		c.tokens = NewMemoryStore()
	}
	c.BaseURL = APIURL(baseURL, env)
	c.BlogBaseURL = BlogAPIURL(c.BlogBaseURL, env)
	return c
}

// call is one request/response round trip: build, send, interpret, decode into out.
type call struct {
	method    string
	base      string
	path      string
	body      any
	auth      authMode
	nestedKey string
}

func (c *APIClient) request(ctx context.Context, rc call, out any) error {
	var token string
	if rc.auth != authNone {
		var err error
		token, err = c.tokens.Get(TokenKey)
		if err != nil {
			return fmt.Errorf("failed to read auth token: %w", err)
		}
		if rc.auth == authRequired && token == "" {
			return ErrAuthenticationRequired
		}
	}

	var body io.Reader
	if rc.body != nil {
		jsonBody, err := json.Marshal(rc.body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewBuffer(jsonBody)
	}

	resp, err := c.do(ctx, rc.method, rc.base+rc.path, body, token)
	if err != nil {
		logger.Log.Error("API request failed", "method", rc.method, "path", rc.path, "error", err)
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Log.Error("failed to read API response", "method", rc.method, "path", rc.path, "error", err)
		return err
	}

	payload, err := interpret(resp.StatusCode, raw, rc.nestedKey)
	if err != nil {
		logger.Log.Warn("API request rejected", "method", rc.method, "path", rc.path, "status", resp.StatusCode, "error", err)
		if token != "" && resp.StatusCode == http.StatusUnauthorized {
			if delErr := c.tokens.Delete(TokenKey); delErr != nil {
				logger.Log.Error("failed to clear rejected token", "error", delErr)
			}
			return classify(err, ErrInvalidCredentials)
		}
		return err
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("cannot decode %s %s response: %w", rc.method, rc.path, err)
	}
	return nil
}

// do is the single, unified helper for making HTTP requests.
func (c *APIClient) do(ctx context.Context, method, url string, body io.Reader, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.HttpClient.Do(req)
}
