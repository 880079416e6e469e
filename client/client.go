// Package client talks to the ClassDesk API and keeps the sign-in state of a user agent.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/classdesk/core/user"
)

var (
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrNotFound           = errors.New("user not found")
	ErrUnauthenticated    = errors.New("user not authenticated")
)

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client of the API served at baseURL. httpClient may be nil.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type (
	loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	loginResponse struct {
		User  *user.User `json:"user"`
		Token string     `json:"token"`
		Error string     `json:"error"`
	}

	userResponse struct {
		User *user.User `json:"user"`
	}
)

func (c *Client) do(ctx context.Context, method, path, token string, body, dst interface{}) (int, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return 0, errors.Wrap(err, "encoding request")
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return 0, errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, errors.Wrapf(err, "%s %s", method, path)
	}
	defer func() { _ = resp.Body.Close() }()

	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil && resp.StatusCode < http.StatusInternalServerError {
			return resp.StatusCode, errors.Wrap(err, "decoding response")
		}
	}
	return resp.StatusCode, nil
}

// Login exchanges credentials for the user and a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (user.User, string, error) {
	var res loginResponse
	code, err := c.do(ctx, http.MethodPost, "/api/login", "", loginRequest{Email: email, Password: password}, &res)
	if err != nil {
		return user.User{}, "", err
	}
	switch {
	case code == http.StatusUnauthorized:
		return user.User{}, "", ErrInvalidCredentials
	case code != http.StatusOK || res.User == nil || res.Token == "":
		return user.User{}, "", errors.Errorf("login: unexpected response (status %d)", code)
	}
	return *res.User, res.Token, nil
}

// GetUser returns the user `id` as visible with token.
func (c *Client) GetUser(ctx context.Context, id, token string) (user.User, error) {
	var res userResponse
	code, err := c.do(ctx, http.MethodGet, "/api/user/"+url.PathEscape(id), token, nil, &res)
	if err != nil {
		return user.User{}, err
	}
	switch code {
	case http.StatusOK:
		if res.User == nil {
			return user.User{}, ErrNotFound
		}
		return *res.User, nil
	case http.StatusNotFound:
		return user.User{}, ErrNotFound
	case http.StatusUnauthorized:
		return user.User{}, ErrUnauthenticated
	default:
		return user.User{}, errors.Errorf("get user: unexpected response (status %d)", code)
	}
}
