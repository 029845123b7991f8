package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/meruem/meruem-web/bootstrap"
	"github.com/meruem/meruem-web/server"
	"github.com/stretchr/testify/require"
)

func TestChainMiddleware(t *testing.T) {
	var order []string
	mw := func(name string) func(http.HandlerFunc) http.HandlerFunc {
		return func(next http.HandlerFunc) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next(w, r)
			}
		}
	}
	h := server.ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}, mw("first"), mw("second"))

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestRequestIDMiddleware(t *testing.T) {
	env := newTestEnv(t)

	t.Run("generated", func(t *testing.T) {
		rec := serve(env.srv, httptest.NewRequest(http.MethodGet, "/landing", nil))
		_, err := uuid.Parse(rec.Header().Get("X-Request-ID"))
		require.NoError(t, err)
	})

	t.Run("inbound id kept", func(t *testing.T) {
		id := uuid.New().String()
		req := httptest.NewRequest(http.MethodGet, "/landing", nil)
		req.Header.Set("X-Request-ID", id)
		rec := serve(env.srv, req)
		require.Equal(t, id, rec.Header().Get("X-Request-ID"))
	})

	t.Run("junk id replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/landing", nil)
		req.Header.Set("X-Request-ID", "<script>")
		rec := serve(env.srv, req)
		require.NotEqual(t, "<script>", rec.Header().Get("X-Request-ID"))
	})
}

func TestFrameSecurityMiddleware(t *testing.T) {
	env := newTestEnv(t)
	rec := serve(env.srv, httptest.NewRequest(http.MethodGet, "/about", nil))
	require.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
	require.Equal(t, "frame-ancestors 'self'", rec.Header().Get("Content-Security-Policy"))
}

func TestRecoverMiddleware(t *testing.T) {
	env := newTestEnv(t)
	h := env.srv.RecoverMiddleware(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h(rec, httptest.NewRequest(http.MethodGet, "/home", nil))
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRenderPassMiddleware(t *testing.T) {
	env := newTestEnv(t)
	var passes []*bootstrap.Pass
	h := env.srv.RenderPassMiddleware(func(w http.ResponseWriter, r *http.Request) {
		passes = append(passes, bootstrap.PassFrom(r.Context()))
	})
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/home", nil))
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/home", nil))

	require.Len(t, passes, 2)
	require.NotNil(t, passes[0])
	require.NotNil(t, passes[1])
	require.NotSame(t, passes[0], passes[1])
}

func TestCorsMiddleware(t *testing.T) {
	env := newTestEnv(t)

	t.Run("allowed preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/sidebar", nil)
		req.Header.Set("Origin", "https://app.meruem.test")
		rec := serve(env.srv, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "https://app.meruem.test", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
		require.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("unknown origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/sidebar", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := serve(env.srv, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("actual request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/oauth-callback", nil)
		req.Header.Set("Origin", "https://app.meruem.test")
		rec := serve(env.srv, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "https://app.meruem.test", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
