package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type userData struct {
	User User `json:"user"`
}

// Client calls the account API rooted at baseURL.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	body := map[string]string{"name": name, "email": email, "password": password}

	var res AuthResult
	if _, err := c.do(ctx, http.MethodPost, "/api/auth/register", "", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}

	var res AuthResult
	if _, err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/auth/logout", token, nil, nil)
	return err
}

func (c *Client) Verify(ctx context.Context, token string) (*User, error) {
	var res userData
	if _, err := c.do(ctx, http.MethodGet, "/api/auth/verify", token, nil, &res); err != nil {
		return nil, err
	}
	return &res.User, nil
}

func (c *Client) Profile(ctx context.Context, token string) (*User, error) {
	var res userData
	if _, err := c.do(ctx, http.MethodGet, "/api/auth/profile", token, nil, &res); err != nil {
		return nil, err
	}
	return &res.User, nil
}

// UpdateProfile sends only the non-nil fields.
func (c *Client) UpdateProfile(ctx context.Context, token string, name, email *string) (*User, error) {
	body := map[string]string{}
	if name != nil {
		body["name"] = *name
	}
	if email != nil {
		body["email"] = *email
	}

	var res userData
	if _, err := c.do(ctx, http.MethodPut, "/api/auth/profile", token, body, &res); err != nil {
		return nil, err
	}
	return &res.User, nil
}

// Ping calls the health endpoint and returns the server message.
func (c *Client) Ping(ctx context.Context) (string, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/health", "", nil, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body any, out any) (*envelope, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, &APIError{Status: resp.StatusCode}
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode response data: %w", err)
		}
	}

	return &env, nil
}
