// Package client is a Go client for the user registration HTTP API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// User is a registered user as returned by the API.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type errorBody struct {
	Error string `json:"error"`
}

type registerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Client calls the service over HTTP.
type Client struct {
	http *resty.Client
}

// New returns a client for the service at baseURL, e.g. http://localhost:3000.
func New(baseURL string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(10 * time.Second)

	return &Client{http: c}
}

// Register creates a user.
func (c *Client) Register(ctx context.Context, name, email string) (*User, error) {
	var u User
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(registerRequest{Name: name, Email: email}).
		SetResult(&u).
		SetError(&errorBody{}).
		Post("/api/")
	if err != nil {
		return nil, fmt.Errorf("register request: %w", err)
	}
	if resp.StatusCode() != http.StatusCreated {
		return nil, apiError(resp)
	}

	return &u, nil
}

// List returns every user ordered by name.
func (c *Client) List(ctx context.Context) ([]User, error) {
	users := []User{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&users).
		SetError(&errorBody{}).
		Get("/api/")
	if err != nil {
		return nil, fmt.Errorf("list request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, apiError(resp)
	}

	return users, nil
}

func apiError(resp *resty.Response) *APIError {
	msg := resp.String()
	if body, ok := resp.Error().(*errorBody); ok && body.Error != "" {
		msg = body.Error
	}
	return &APIError{StatusCode: resp.StatusCode(), Message: msg}
}
