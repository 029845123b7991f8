package bootstrap_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/meruem/meruem-web/backend"
	"github.com/meruem/meruem-web/backend/fakebackend"
	"github.com/meruem/meruem-web/bootstrap"
	"github.com/meruem/meruem-web/internal/config"
	"github.com/meruem/meruem-web/internal/errors"
	"github.com/meruem/meruem-web/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

const testToken = "eyJhbGciOiJIUzI1NiJ9.bootstrap.sig"

func testSnapshot() *backend.WorkspaceData {
	ws := []backend.Workspace{
		{ID: "68c2b0e15b976448616305a0", Name: "Analytics"},
		{ID: "68c2b0e15b976448616305a1", Name: "Finance"},
	}
	return &backend.WorkspaceData{
		Workspaces:       ws,
		User:             &backend.User{ID: "u-1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		CurrentWorkspace: &ws[1],
	}
}

// countingBackend serves /workspace/data and counts hits.
func countingBackend(t *testing.T, status int, body any) (*backend.HTTPClient, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return backend.New(config.Backend{APIBaseURL: srv.URL, Timeout: 2 * time.Second}), &hits
}

// nilDataClient answers the workspace fetch with neither data nor error.
type nilDataClient struct {
	backend.Client
}

func (nilDataClient) WorkspaceData(context.Context, string) (*backend.WorkspaceData, error) {
	return nil, nil
}

func TestLoader_Load(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		fake := fakebackend.NewFakeBackend()
		fake.Data[testToken] = testSnapshot()
		m := metrics.New()
		l := bootstrap.NewLoader(fake, time.Second, m)

		res := l.Load(t.Context(), testToken)
		require.True(t, res.OK())
		require.NoError(t, res.Err)
		require.Len(t, res.Data.Workspaces, 2)
		require.Equal(t, "Ada Lovelace", res.Data.User.DisplayName())
		require.Equal(t, "Finance", res.Data.CurrentWorkspace.Name)

		n, err := testutil.GatherAndCount(m.Registry(), "meruem_bootstrap_total")
		require.NoError(t, err)
		require.Equal(t, 1, n)
	})

	t.Run("nil workspace list normalised", func(t *testing.T) {
		fake := fakebackend.NewFakeBackend()
		fake.Data[testToken] = &backend.WorkspaceData{}
		res := bootstrap.NewLoader(fake, time.Second, nil).Load(t.Context(), testToken)
		require.True(t, res.OK())
		require.NotNil(t, res.Data.Workspaces)
		require.Empty(t, res.Data.Workspaces)
	})

	t.Run("unauthorized token", func(t *testing.T) {
		fake := fakebackend.NewFakeBackend()
		res := bootstrap.NewLoader(fake, time.Second, nil).Load(t.Context(), "stale")
		require.Equal(t, bootstrap.Unauthorized, res.Outcome)
		require.ErrorIs(t, res.Err, errors.ErrUnauthorized)
		require.ErrorIs(t, res.Err, errors.ErrBootstrapFetchFailure)
		require.Equal(t, bootstrap.Fallback(), res.Data)
	})

	t.Run("server error yields fallback", func(t *testing.T) {
		client, hits := countingBackend(t, http.StatusInternalServerError, map[string]string{"detail": "boom"})
		res := bootstrap.NewLoader(client, time.Second, nil).Load(t.Context(), testToken)

		require.Equal(t, bootstrap.Failed, res.Outcome)
		require.ErrorIs(t, res.Err, errors.ErrBootstrapFetchFailure)
		require.NotNil(t, res.Data.Workspaces)
		require.Empty(t, res.Data.Workspaces)
		require.Nil(t, res.Data.User)
		require.Nil(t, res.Data.CurrentWorkspace)
		require.EqualValues(t, 1, hits.Load())
	})

	t.Run("malformed json yields fallback", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"workspaces": [{"id": "ws-1",`))
		}))
		t.Cleanup(srv.Close)
		client := backend.New(config.Backend{APIBaseURL: srv.URL, Timeout: 2 * time.Second})

		res := bootstrap.NewLoader(client, time.Second, nil).Load(t.Context(), testToken)
		require.Equal(t, bootstrap.Failed, res.Outcome)
		require.ErrorIs(t, res.Err, errors.ErrBootstrapFetchFailure)
		require.Equal(t, bootstrap.Fallback(), res.Data)
		require.EqualValues(t, 1, hits.Load())
	})

	t.Run("nil snapshot yields fallback", func(t *testing.T) {
		res := bootstrap.NewLoader(nilDataClient{}, time.Second, nil).Load(t.Context(), testToken)
		require.Equal(t, bootstrap.Failed, res.Outcome)
		require.ErrorIs(t, res.Err, errors.ErrBootstrapFetchFailure)
		require.Contains(t, res.Err.Error(), "empty workspace data")
		require.Equal(t, bootstrap.Fallback(), res.Data)
	})

	t.Run("timeout yields fallback", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		t.Cleanup(srv.Close)
		client := backend.New(config.Backend{APIBaseURL: srv.URL, Timeout: time.Minute})

		start := time.Now()
		res := bootstrap.NewLoader(client, 50*time.Millisecond, nil).Load(t.Context(), testToken)
		require.Equal(t, bootstrap.Failed, res.Outcome)
		require.Less(t, time.Since(start), 5*time.Second)
		require.Empty(t, res.Data.Workspaces)
	})
}

func TestLoader_PassMemoisation(t *testing.T) {
	t.Run("two consumers one fetch", func(t *testing.T) {
		client, hits := countingBackend(t, http.StatusOK, testSnapshot())
		l := bootstrap.NewLoader(client, time.Second, nil)
		ctx := bootstrap.WithPass(t.Context(), bootstrap.NewPass())

		first := l.Load(ctx, testToken)
		second := l.Load(ctx, testToken)
		require.True(t, first.OK())
		require.Equal(t, first, second)
		require.EqualValues(t, 1, hits.Load())
	})

	t.Run("concurrent consumers one fetch", func(t *testing.T) {
		client, hits := countingBackend(t, http.StatusOK, testSnapshot())
		l := bootstrap.NewLoader(client, time.Second, nil)
		ctx := bootstrap.WithPass(t.Context(), bootstrap.NewPass())

		var wg sync.WaitGroup
		results := make([]bootstrap.Result, 8)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i] = l.Load(ctx, testToken)
			}()
		}
		wg.Wait()

		require.EqualValues(t, 1, hits.Load())
		for _, r := range results {
			require.True(t, r.OK())
			require.Len(t, r.Data.Workspaces, 2)
		}
	})

	t.Run("failure memoised too", func(t *testing.T) {
		client, hits := countingBackend(t, http.StatusInternalServerError, map[string]string{})
		l := bootstrap.NewLoader(client, time.Second, nil)
		ctx := bootstrap.WithPass(t.Context(), bootstrap.NewPass())

		require.Equal(t, bootstrap.Failed, l.Load(ctx, testToken).Outcome)
		require.Equal(t, bootstrap.Failed, l.Load(ctx, testToken).Outcome)
		require.EqualValues(t, 1, hits.Load())
	})

	t.Run("separate passes fetch separately", func(t *testing.T) {
		client, hits := countingBackend(t, http.StatusOK, testSnapshot())
		l := bootstrap.NewLoader(client, time.Second, nil)

		l.Load(bootstrap.WithPass(t.Context(), bootstrap.NewPass()), testToken)
		l.Load(bootstrap.WithPass(t.Context(), bootstrap.NewPass()), testToken)
		require.EqualValues(t, 2, hits.Load())
	})

	t.Run("no pass is not cached", func(t *testing.T) {
		client, hits := countingBackend(t, http.StatusOK, testSnapshot())
		l := bootstrap.NewLoader(client, time.Second, nil)

		l.Load(t.Context(), testToken)
		l.Load(t.Context(), testToken)
		require.EqualValues(t, 2, hits.Load())
	})

	t.Run("different tokens not shared", func(t *testing.T) {
		fake := fakebackend.NewFakeBackend()
		fake.Data["a"] = testSnapshot()
		l := bootstrap.NewLoader(fake, time.Second, nil)
		ctx := bootstrap.WithPass(t.Context(), bootstrap.NewPass())

		require.True(t, l.Load(ctx, "a").OK())
		require.Equal(t, bootstrap.Unauthorized, l.Load(ctx, "b").Outcome)
		require.Equal(t, 2, fake.Calls(backend.EndpointWorkspaceData))
	})
}

func TestLoader_Connections(t *testing.T) {
	const wsID = "68c2b0e15b976448616305a0"

	fake := fakebackend.NewFakeBackend()
	fake.Data[testToken] = testSnapshot()
	fake.Conns[wsID] = []backend.Connection{{ID: "c-1", Name: "warehouse", Driver: "postgres", WorkspaceID: wsID}}
	l := bootstrap.NewLoader(fake, time.Second, nil)

	t.Run("memoised per pass", func(t *testing.T) {
		ctx := bootstrap.WithPass(t.Context(), bootstrap.NewPass())
		a := l.Connections(ctx, testToken, wsID)
		b := l.Connections(ctx, testToken, wsID)
		require.Equal(t, bootstrap.OK, a.Outcome)
		require.Len(t, a.Connections, 1)
		require.Equal(t, a, b)
		require.Equal(t, 1, fake.Calls(backend.EndpointConnections))
	})

	t.Run("empty workspace", func(t *testing.T) {
		res := l.Connections(t.Context(), testToken, "unknown")
		require.Equal(t, bootstrap.OK, res.Outcome)
		require.NotNil(t, res.Connections)
		require.Empty(t, res.Connections)
	})

	t.Run("unauthorized", func(t *testing.T) {
		res := l.Connections(t.Context(), "stale", wsID)
		require.Equal(t, bootstrap.Unauthorized, res.Outcome)
		require.Empty(t, res.Connections)
	})
}

func TestPass(t *testing.T) {
	t.Run("context round trip", func(t *testing.T) {
		require.Nil(t, bootstrap.PassFrom(context.Background()))
		p := bootstrap.NewPass()
		require.NotEmpty(t, p.ID)
		require.Same(t, p, bootstrap.PassFrom(bootstrap.WithPass(t.Context(), p)))
	})

	t.Run("do runs once per key", func(t *testing.T) {
		p := bootstrap.NewPass()
		var n int
		fn := func() any { n++; return n }
		require.Equal(t, 1, p.Do("k", fn))
		require.Equal(t, 1, p.Do("k", fn))
		require.Equal(t, 2, p.Do("other", fn))
	})
}
