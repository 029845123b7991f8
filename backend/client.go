// Package backend is the HTTP client for the Meruem backend API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/meruem/meruem-web/internal/config"
	"github.com/meruem/meruem-web/internal/errors"
	"github.com/meruem/meruem-web/internal/metrics"
	"golang.org/x/oauth2"
)

const (
	EndpointAuthGoogle         = "/auth/google"
	EndpointAuthGoogleCallback = "/auth/google/callback"
	EndpointWorkspaceData      = "/workspace/data"
	EndpointConnections        = "/connections/workspace/"
	EndpointLogout             = "/auth/logout"

	maxErrorBody = 64 << 10
)

// Client is the set of backend operations the web tier depends on.
type Client interface {
	AuthorizationURL(ctx context.Context) (string, error)
	ExchangeCode(ctx context.Context, code string) (*TokenResponse, error)
	WorkspaceData(ctx context.Context, token string) (*WorkspaceData, error)
	Connections(ctx context.Context, token, workspaceID string) ([]Connection, error)
	LogoutURL() string
}

// HTTPClient talks to the backend over HTTP. Authenticated calls carry the
// session token as a bearer credential.
type HTTPClient struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	metrics *metrics.Metrics
}

var _ Client = (*HTTPClient)(nil)

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) {
		h.http = c
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(h *HTTPClient) {
		h.metrics = m
	}
}

func New(cfg config.BackendConfig, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: cfg.GetAPIBaseURL(),
		timeout: cfg.GetBackendTimeout(),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AuthorizationURL asks the backend for the identity provider's consent URL.
func (c *HTTPClient) AuthorizationURL(ctx context.Context) (string, error) {
	var out authorizationURLResponse
	if err := c.do(ctx, c.http, http.MethodGet, EndpointAuthGoogle, nil, &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", errors.ErrMissingAuthorizationURL
	}
	return out.URL, nil
}

// ExchangeCode trades an authorization code for a Meruem access token. A
// response without a token is reported as ErrTokenAcquisitionFailure.
func (c *HTTPClient) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.do(ctx, c.http, http.MethodPost, EndpointAuthGoogleCallback, exchangeRequest{Code: code}, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrCodeExchangeFailure, err)
	}
	if out.AccessToken == "" {
		return nil, errors.ErrTokenAcquisitionFailure
	}
	return &out, nil
}

func (c *HTTPClient) WorkspaceData(ctx context.Context, token string) (*WorkspaceData, error) {
	var out WorkspaceData
	if err := c.do(ctx, c.bearer(ctx, token), http.MethodGet, EndpointWorkspaceData, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Connections(ctx context.Context, token, workspaceID string) ([]Connection, error) {
	var out []Connection
	path := EndpointConnections + url.PathEscape(workspaceID)
	if err := c.do(ctx, c.bearer(ctx, token), http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) LogoutURL() string {
	return c.baseURL + EndpointLogout
}

// bearer returns an http.Client that sets "Authorization: Bearer <token>" on
// every request. An empty token is still sent so the backend decides.
func (c *HTTPClient) bearer(ctx context.Context, token string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}))
}

func (c *HTTPClient) do(ctx context.Context, hc *http.Client, method, path string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return errors.Wrapf(err, "encode %s body", path)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrapf(err, "build %s request", path)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		c.metrics.ObserveBackend(metricEndpoint(path), "error", time.Since(start))
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()
	c.metrics.ObserveBackend(metricEndpoint(path), strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newStatusError(path, resp.StatusCode, b)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s response", path)
	}
	return nil
}

// metricEndpoint collapses per-workspace paths so the label stays bounded.
func metricEndpoint(path string) string {
	if strings.HasPrefix(path, EndpointConnections) {
		return EndpointConnections + "{id}"
	}
	return path
}
