package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrSessionExpired marks an authorization-expiry rejection. Callers must
// not retry; the page is told to reload because the session is presumed
// invalid.
var ErrSessionExpired = errors.New("session expired")

// APIError is a business-rule rejection reported by the backend. The
// message is surfaced to the user verbatim and no local state changes.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Config for the backend REST client. The CSRF pair comes from the hosting
// page; when either half is empty the header is simply omitted.
type Config struct {
	BaseURL    string
	CSRFHeader string
	CSRFToken  string
	HTTPClient *http.Client
}

// Client is the typed contract against the ordering backend. It holds no
// order or cart state of its own; every call round-trips to the server.
type Client struct {
	baseURL    string
	csrfHeader string
	csrfToken  string
	http       *http.Client
}

func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		csrfHeader: cfg.CSRFHeader,
		csrfToken:  cfg.CSRFToken,
		http:       hc,
	}
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func mutating(method string) bool {
	return method != http.MethodGet && method != http.MethodHead
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Anti-forgery pair rides on every mutating request when present.
	if mutating(method) && c.csrfHeader != "" && c.csrfToken != "" {
		req.Header.Set(c.csrfHeader, c.csrfToken)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return fmt.Errorf("backend sent malformed response (%d): %w", res.StatusCode, err)
	}

	if !env.Success {
		if sessionExpired(res.StatusCode, env.Message) {
			return fmt.Errorf("%w: %s", ErrSessionExpired, env.Message)
		}
		return &APIError{Status: res.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}

// sessionExpired matches the backend's authorization-expiry signature:
// a 401, or a 403 whose message mentions the CSRF token or session.
func sessionExpired(status int, message string) bool {
	if status == http.StatusUnauthorized {
		return true
	}
	if status != http.StatusForbidden {
		return false
	}
	m := strings.ToLower(message)
	return strings.Contains(m, "csrf") || strings.Contains(m, "session")
}
