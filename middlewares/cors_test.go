package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenithgo/zenith/internal"
	"github.com/zenithgo/zenith/middlewares"
)

func TestCORS(t *testing.T) {
	t.Parallel()

	t.Run("no origin is left alone", func(t *testing.T) {
		t.Parallel()

		r := serve(t, httptest.NewRequest(http.MethodGet, "/api", nil), sendOK,
			internal.Use(middlewares.CORS()),
		)

		require.NoError(t, r.err)
		assert.Empty(t, r.rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "ok", r.rec.Body.String())
	})

	t.Run("wildcard simple request", func(t *testing.T) {
		t.Parallel()

		hr := httptest.NewRequest(http.MethodGet, "/api", nil)
		hr.Header.Set("Origin", "https://a.example")
		r := serve(t, hr, sendOK, internal.Use(middlewares.CORS()))

		assert.Equal(t, internal.Handled, r.outcome)
		assert.Equal(t, "*", r.rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, r.rec.Header().Values("Vary"), "Origin")
	})

	t.Run("preflight is answered and stops the chain", func(t *testing.T) {
		t.Parallel()

		hr := httptest.NewRequest(http.MethodOptions, "/api", nil)
		hr.Header.Set("Origin", "https://a.example")
		hr.Header.Set("Access-Control-Request-Method", http.MethodPost)

		called := false
		r := serve(t, hr, func(res *internal.Response, _ ...string) error {
			called = true
			return nil
		}, internal.Use(middlewares.CORS(middlewares.WithMaxAge(time.Hour))))

		assert.False(t, called)
		assert.Equal(t, internal.Rejected, r.outcome)
		require.NoError(t, r.err)
		assert.Equal(t, http.StatusNoContent, r.rec.Code)
		assert.Equal(t, "3600", r.rec.Header().Get("Access-Control-Max-Age"))
		assert.Contains(t, r.rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
		assert.Equal(t, "Content-Type, Authorization", r.rec.Header().Get("Access-Control-Allow-Headers"))
	})

	t.Run("credentials echo the origin", func(t *testing.T) {
		t.Parallel()

		hr := httptest.NewRequest(http.MethodGet, "/api", nil)
		hr.Header.Set("Origin", "https://a.example")
		r := serve(t, hr, sendOK, internal.Use(middlewares.CORS(
			middlewares.WithAllowOrigins("https://a.example"),
			middlewares.WithAllowCredentials(),
			middlewares.WithExposeHeaders("X-Request-ID"),
		)))

		assert.Equal(t, "https://a.example", r.rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", r.rec.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "X-Request-ID", r.rec.Header().Get("Access-Control-Expose-Headers"))
	})

	t.Run("disallowed origin gets no headers", func(t *testing.T) {
		t.Parallel()

		hr := httptest.NewRequest(http.MethodGet, "/api", nil)
		hr.Header.Set("Origin", "https://evil.example")
		r := serve(t, hr, sendOK, internal.Use(middlewares.CORS(
			middlewares.WithAllowOriginFunc(func(o string) bool { return o == "https://a.example" }),
		)))

		assert.Empty(t, r.rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "ok", r.rec.Body.String())
	})
}
