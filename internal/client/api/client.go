// Package api is a typed HTTP client for the resource platform API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/OscarDom1/community-resource-platform/internal/common"
	"github.com/OscarDom1/community-resource-platform/internal/server/models"
)

// Error is a non-2xx response. It unwraps to the matching sentinel in
// package common so callers can use errors.Is.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return common.ErrTokenInvalid
	case http.StatusForbidden:
		return common.ErrOwnershipDenied
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusConflict:
		return common.ErrAlreadyExists
	case http.StatusBadRequest:
		return common.ErrValidation
	default:
		return nil
	}
}

// LoginResult is the login response body.
type LoginResult struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	User      *models.PublicUser `json:"user"`
}

// UserUpdate is a partial profile update; nil fields are omitted.
type UserUpdate struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// NewResource is the create payload.
type NewResource struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Available   *bool  `json:"available,omitempty"`
}

// ResourceUpdate is a partial resource update; nil fields are omitted.
type ResourceUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

// ListOptions filters a resource listing.
type ListOptions struct {
	OwnerID   string
	Available *bool
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// New builds a client for the server at baseURL.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url must be http or https, got %q", baseURL)
	}
	return &Client{baseURL: u, http: &http.Client{Timeout: timeout}}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/ping", nil, "", nil, nil)
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*models.PublicUser, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var out models.PublicUser
	if err := c.do(ctx, http.MethodPost, "/users/register", nil, "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/users/login", nil, "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context, token string) (*models.PublicUser, error) {
	var out models.PublicUser
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, token, id string, upd UserUpdate) (*models.PublicUser, error) {
	var out models.PublicUser
	if err := c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(id), nil, token, upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListResources(ctx context.Context, opts ListOptions) ([]*models.Resource, error) {
	q := url.Values{}
	if opts.OwnerID != "" {
		q.Set("owner_id", opts.OwnerID)
	}
	if opts.Available != nil {
		q.Set("available", strconv.FormatBool(*opts.Available))
	}
	var out []*models.Resource
	if err := c.do(ctx, http.MethodGet, "/resources", q, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetResource(ctx context.Context, id string) (*models.Resource, error) {
	var out models.Resource
	if err := c.do(ctx, http.MethodGet, "/resources/"+url.PathEscape(id), nil, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateResource(ctx context.Context, token string, in NewResource) (*models.Resource, error) {
	var out models.Resource
	if err := c.do(ctx, http.MethodPost, "/resources", nil, token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateResource(ctx context.Context, token, id string, upd ResourceUpdate) (*models.Resource, error) {
	var out models.Resource
	if err := c.do(ctx, http.MethodPatch, "/resources/"+url.PathEscape(id), nil, token, upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteResource(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/resources/"+url.PathEscape(id), nil, token, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, in, out any) error {
	u := *c.baseURL
	u.Path += path
	u.RawQuery = query.Encode()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&eb); err != nil || eb.Error == "" {
			eb.Error = http.StatusText(resp.StatusCode)
		}
		return &Error{Status: resp.StatusCode, Message: eb.Error}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
