package fakebackend

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/meruem/meruem-web/backend"
	"github.com/meruem/meruem-web/internal/errors"
)

var _ backend.Client = (*FakeBackend)(nil)

// FakeBackend is an in-memory backend.Client. Fields are read under lock on
// every call, so tests may change them between requests.
type FakeBackend struct {
	lock sync.RWMutex

	AuthURL     string
	AuthURLErr  error
	Tokens      map[string]string // authorization code -> access token
	ExchangeErr error
	Data        map[string]*backend.WorkspaceData // access token -> snapshot
	DataErr     error
	Conns       map[string][]backend.Connection // workspace id -> connections
	ConnsErr    error
	Logout      string

	calls map[string]int
	codes []string
}

func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		Tokens: make(map[string]string),
		Data:   make(map[string]*backend.WorkspaceData),
		Conns:  make(map[string][]backend.Connection),
		Logout: "http://backend.test/auth/logout",
		calls:  make(map[string]int),
	}
}

func (f *FakeBackend) record(endpoint string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.calls[endpoint]++
}

// Calls returns how many times the given backend endpoint was hit.
func (f *FakeBackend) Calls(endpoint string) int {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return f.calls[endpoint]
}

// ExchangedCodes returns the codes passed to ExchangeCode, in order.
func (f *FakeBackend) ExchangedCodes() []string {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return append([]string(nil), f.codes...)
}

func (f *FakeBackend) AuthorizationURL(_ context.Context) (string, error) {
	f.record(backend.EndpointAuthGoogle)
	f.lock.RLock()
	defer f.lock.RUnlock()
	if f.AuthURLErr != nil {
		return "", f.AuthURLErr
	}
	if f.AuthURL == "" {
		return "", errors.ErrMissingAuthorizationURL
	}
	return f.AuthURL, nil
}

func (f *FakeBackend) ExchangeCode(_ context.Context, code string) (*backend.TokenResponse, error) {
	f.record(backend.EndpointAuthGoogleCallback)
	f.lock.Lock()
	f.codes = append(f.codes, code)
	f.lock.Unlock()

	f.lock.RLock()
	defer f.lock.RUnlock()
	if f.ExchangeErr != nil {
		return nil, f.ExchangeErr
	}
	token, ok := f.Tokens[code]
	if !ok {
		return nil, fmt.Errorf("%w: %w", errors.ErrCodeExchangeFailure, &backend.StatusError{
			Endpoint:   backend.EndpointAuthGoogleCallback,
			StatusCode: http.StatusBadRequest,
			Cause:      "Failed to exchange code for token",
		})
	}
	if token == "" {
		return nil, errors.ErrTokenAcquisitionFailure
	}
	return &backend.TokenResponse{AccessToken: token, ExpiresIn: 7200}, nil
}

func (f *FakeBackend) WorkspaceData(_ context.Context, token string) (*backend.WorkspaceData, error) {
	f.record(backend.EndpointWorkspaceData)
	f.lock.RLock()
	defer f.lock.RUnlock()
	if f.DataErr != nil {
		return nil, f.DataErr
	}
	data, ok := f.Data[token]
	if !ok {
		return nil, &backend.StatusError{
			Endpoint:   backend.EndpointWorkspaceData,
			StatusCode: http.StatusUnauthorized,
			Cause:      "Unauthenticated: Token missing",
		}
	}
	cp := *data
	cp.Workspaces = append([]backend.Workspace(nil), data.Workspaces...)
	return &cp, nil
}

func (f *FakeBackend) Connections(_ context.Context, token, workspaceID string) ([]backend.Connection, error) {
	f.record(backend.EndpointConnections)
	f.lock.RLock()
	defer f.lock.RUnlock()
	if f.ConnsErr != nil {
		return nil, f.ConnsErr
	}
	if _, ok := f.Data[token]; !ok {
		return nil, &backend.StatusError{
			Endpoint:   backend.EndpointConnections + workspaceID,
			StatusCode: http.StatusUnauthorized,
		}
	}
	return append([]backend.Connection(nil), f.Conns[workspaceID]...), nil
}

func (f *FakeBackend) LogoutURL() string {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return f.Logout
}
