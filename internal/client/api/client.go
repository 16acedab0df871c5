// Package api provides the typed HTTP client for the onboarding REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nstepanova/onboard/internal/models"
)

// ErrConflict is returned when the server answers 409: the email belongs
// to a user who already advanced past the first step.
var ErrConflict = errors.New("user already exists")

// StatusError reports a non-success response with the server's message.
type StatusError struct {
	Code    int
	Message string
}

// Error formats the status code and server message.
func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}

// Client calls the onboarding API over HTTP.
type Client struct {
	// BaseURL is the server root, e.g. "http://localhost:8080".
	BaseURL string
	// HTTP is the underlying HTTP client.
	HTTP *http.Client
}

// New constructs a Client for the given base URL with a request timeout.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// errorMessage extracts the {"error": ...} body if present.
func errorMessage(resp *http.Response) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return http.StatusText(resp.StatusCode)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, errorMessage(resp))
	case resp.StatusCode >= 400:
		return &StatusError{Code: resp.StatusCode, Message: errorMessage(resp)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// CreateUser submits the step-1 credentials. The server answers with the
// created or existing user; a user already past step 1 surfaces as
// ErrConflict.
func (c *Client) CreateUser(ctx context.Context, email, password string) (*models.User, error) {
	payload := map[string]any{"email": email, "password": password, "step": 2}
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/api/users", payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser sends a merge-patch for the given user id. Only the keys
// present in payload are modified server-side.
func (c *Client) UpdateUser(ctx context.Context, id int64, payload map[string]any) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d", id), payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Users fetches the read-only user listing.
func (c *Client) Users(ctx context.Context) ([]models.UserSummary, error) {
	var users []models.UserSummary
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Config fetches all component configuration entries, ordered by page.
func (c *Client) Config(ctx context.Context) ([]models.ComponentConfig, error) {
	var configs []models.ComponentConfig
	if err := c.do(ctx, http.MethodGet, "/api/admin/config", nil, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}

// BatchEntryResult mirrors the server's per-entry outcome for a batch
// config update.
type BatchEntryResult struct {
	Name  string `json:"name"`
	Page  int    `json:"page,omitempty"`
	Error string `json:"error,omitempty"`
}

// BatchResponse mirrors the server's aggregate answer for a batch update.
type BatchResponse struct {
	Message string             `json:"message"`
	Updated int                `json:"updated"`
	Failed  int                `json:"failed"`
	Data    []BatchEntryResult `json:"data"`
}

// SaveConfig submits the full entry list for batch upsert and returns
// the per-entry outcomes.
func (c *Client) SaveConfig(ctx context.Context, entries []models.ComponentConfig) (*BatchResponse, error) {
	payload := map[string]any{"components": entries}
	var resp BatchResponse
	if err := c.do(ctx, http.MethodPost, "/api/admin/config", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
