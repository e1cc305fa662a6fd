// SPDX-License-Identifier: Apache-2.0

package client

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client talks to one bookclub server. It is safe for concurrent use after
// construction; SetToken is the only mutating call and is expected during
// the auth handshake, not mid-flight.
type Client struct {
	http  *resty.Client
	token string
}

// Option customises a Client at construction time.
type Option func(*Client)

// WithTimeout bounds every request issued by the client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(timeout)
	}
}

// WithToken seeds the bearer token, skipping the register/login handshake.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// New constructs a client for the server at baseURL. A bare "host:port" is
// accepted and assumed to be http.
func New(baseURL string, opts ...Option) (*Client, error) {
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	c := &Client{http: resty.New().SetBaseURL(normalized)}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// SetToken stores the bearer token used on authenticated requests.
func (c *Client) SetToken(token string) {
	c.token = strings.TrimSpace(token)
}

// Token returns the bearer token currently held by the client, or an empty
// string if none has been set.
func (c *Client) Token() string {
	return c.token
}

// authorized returns a request carrying the bearer token.
func (c *Client) authorized() *resty.Request {
	return c.http.R().SetHeader("Authorization", "Bearer "+c.token)
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
