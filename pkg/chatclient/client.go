// Package chatclient is the client side of the query chat: an HTTP client for
// the API and the session state machine the terminal UI drives.
package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Message struct {
	Sender    string  `json:"sender"`
	Text      string  `json:"text"`
	Database  *string `json:"database"`
	Schema    *string `json:"schema"`
	Timestamp string  `json:"timestamp"`
}

type PreviousMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

type GenerateRequest struct {
	Database         string            `json:"database"`
	Schema           string            `json:"schema"`
	Prompt           string            `json:"prompt"`
	PreviousMessages []PreviousMessage `json:"previousMessages,omitempty"`
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// API is what the session needs from the server.
type API interface {
	Signup(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
	Verify(ctx context.Context, token string) (bool, error)
	Logout(ctx context.Context, token string) error
	ListMessages(ctx context.Context, token string) ([]Message, error)
	SaveMessage(ctx context.Context, token string, msg Message) error
	ClearMessages(ctx context.Context, token string) error
	GenerateQuery(ctx context.Context, token string, req GenerateRequest) (string, error)
}

type Client struct {
	baseURL string
	http    *http.Client
}

var _ API = &Client{}

// NewClient targets baseURL, e.g. http://localhost:5005. A zero timeout
// means 90s, enough for the server side generation timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		_ = json.Unmarshal(data, &errBody)
		msg := errBody.Message
		if msg == "" {
			msg = errBody.Error
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) Signup(ctx context.Context, username, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, nil)
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var res struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &res)
	if err != nil {
		return "", err
	}
	if res.Token == "" {
		return "", errors.New("login response carried no token")
	}
	return res.Token, nil
}

func (c *Client) Verify(ctx context.Context, token string) (bool, error) {
	var res struct {
		Valid bool `json:"valid"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/verify", token, nil, &res); err != nil {
		if IsUnauthorized(err) {
			return false, nil
		}
		return false, err
	}
	return res.Valid, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", token, nil, nil)
}

func (c *Client) ListMessages(ctx context.Context, token string) ([]Message, error) {
	var res []Message
	if err := c.do(ctx, http.MethodGet, "/api/messages", token, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) SaveMessage(ctx context.Context, token string, msg Message) error {
	return c.do(ctx, http.MethodPost, "/api/messages", token, msg, nil)
}

func (c *Client) ClearMessages(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, "/api/messages", token, nil, nil)
}

func (c *Client) GenerateQuery(ctx context.Context, token string, req GenerateRequest) (string, error) {
	var res struct {
		Response string `json:"response"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/generate-query", token, req, &res); err != nil {
		return "", err
	}
	return res.Response, nil
}
