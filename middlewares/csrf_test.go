package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenithgo/zenith/internal"
	"github.com/zenithgo/zenith/middlewares"
)

func csrfCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "csrf_token" {
			return c
		}
	}
	t.Fatal("csrf_token cookie not set")
	return nil
}

func TestCSRF(t *testing.T) {
	t.Parallel()

	t.Run("safe request issues a token", func(t *testing.T) {
		t.Parallel()

		var seen *internal.Request
		r := serve(t, httptest.NewRequest(http.MethodGet, "/form", nil), sendOK,
			internal.Use(middlewares.CSRF()), capture(&seen),
		)

		require.NoError(t, r.err)
		c := csrfCookie(t, r.rec)
		assert.Len(t, c.Value, 64)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, c.Value, middlewares.CSRFToken(seen))
	})

	t.Run("existing cookie is reused", func(t *testing.T) {
		t.Parallel()

		hr := httptest.NewRequest(http.MethodGet, "/form", nil)
		hr.AddCookie(&http.Cookie{Name: "csrf_token", Value: "known"})

		var seen *internal.Request
		r := serve(t, hr, sendOK, internal.Use(middlewares.CSRF()), capture(&seen))

		assert.Empty(t, r.rec.Result().Cookies())
		assert.Equal(t, "known", middlewares.CSRFToken(seen))
	})

	t.Run("unsafe request with matching header passes", func(t *testing.T) {
		t.Parallel()

		hr := httptest.NewRequest(http.MethodPost, "/form", nil)
		hr.AddCookie(&http.Cookie{Name: "csrf_token", Value: "tok"})
		hr.Header.Set("X-CSRF-Token", "tok")

		r := serve(t, hr, sendOK, internal.Use(middlewares.CSRF()))
		require.NoError(t, r.err)
		assert.Equal(t, internal.Handled, r.outcome)
	})

	t.Run("unsafe request with matching form field passes", func(t *testing.T) {
		t.Parallel()

		form := url.Values{"_token": {"tok"}}
		hr := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(form.Encode()))
		hr.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		hr.AddCookie(&http.Cookie{Name: "csrf_token", Value: "tok"})

		r := serve(t, hr, sendOK, internal.Use(middlewares.CSRF()))
		require.NoError(t, r.err)
		assert.Equal(t, "ok", r.rec.Body.String())
	})

	t.Run("mismatch is rejected with 403", func(t *testing.T) {
		t.Parallel()

		hr := httptest.NewRequest(http.MethodPost, "/form", nil)
		hr.AddCookie(&http.Cookie{Name: "csrf_token", Value: "tok"})
		hr.Header.Set("X-CSRF-Token", "other")

		r := serve(t, hr, sendOK, internal.Use(middlewares.CSRF()))
		assert.Equal(t, internal.Rejected, r.outcome)
		require.ErrorIs(t, r.err, middlewares.ErrInvalidCSRFToken)
		assert.Equal(t, http.StatusForbidden, internal.AsHTTPError(r.err).Code)
	})

	t.Run("missing cookie is rejected", func(t *testing.T) {
		t.Parallel()

		hr := httptest.NewRequest(http.MethodPost, "/form", nil)
		hr.Header.Set("X-CSRF-Token", "anything")

		r := serve(t, hr, sendOK, internal.Use(middlewares.CSRF()))
		assert.Equal(t, internal.Rejected, r.outcome)
		require.ErrorIs(t, r.err, middlewares.ErrInvalidCSRFToken)
	})

	t.Run("custom names", func(t *testing.T) {
		t.Parallel()

		hr := httptest.NewRequest(http.MethodDelete, "/form", nil)
		hr.AddCookie(&http.Cookie{Name: "xsrf", Value: "tok"})
		hr.Header.Set("X-XSRF-Token", "tok")

		r := serve(t, hr, sendOK, internal.Use(middlewares.CSRF(
			middlewares.WithCSRFCookieName("xsrf"),
			middlewares.WithCSRFHeaderName("X-XSRF-Token"),
			middlewares.WithCSRFFormField("csrf"),
			middlewares.WithCSRFSecureCookie(),
		)))
		require.NoError(t, r.err)
	})
}

func TestCSRFToken_WithoutMiddleware(t *testing.T) {
	t.Parallel()

	req := internal.NewRequest(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, middlewares.CSRFToken(req))
}
