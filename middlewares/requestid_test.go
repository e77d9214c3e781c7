package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenithgo/zenith/internal"
	"github.com/zenithgo/zenith/middlewares"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates a uuid", func(t *testing.T) {
		t.Parallel()

		var seen *internal.Request
		r := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), sendOK,
			internal.Use(middlewares.RequestID()), capture(&seen),
		)

		require.NoError(t, r.err)
		id := r.rec.Header().Get("X-Request-ID")
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, middlewares.GetRequestID(seen))
	})

	t.Run("reuses upstream header in order", func(t *testing.T) {
		t.Parallel()

		hr := httptest.NewRequest(http.MethodGet, "/", nil)
		hr.Header.Set("X-Correlation-ID", "corr-1")

		var seen *internal.Request
		r := serve(t, hr, sendOK, internal.Use(middlewares.RequestID()), capture(&seen))

		assert.Equal(t, "corr-1", r.rec.Header().Get("X-Request-ID"))
		assert.Equal(t, "corr-1", middlewares.RequestIDFromContext(seen.Context()))
	})

	t.Run("custom generator and header", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.RequestID(
			middlewares.WithRequestIDGenerator(func() string { return "fixed" }),
			middlewares.WithRequestIDResponseHeader("X-Trace"),
			middlewares.WithRequestIDHeaders("X-Trace"),
		)
		r := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), sendOK, internal.Use(mw))

		assert.Equal(t, "fixed", r.rec.Header().Get("X-Trace"))
		assert.Empty(t, r.rec.Header().Get("X-Request-ID"))
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	extract := middlewares.RequestIDExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	var seen *internal.Request
	hr := httptest.NewRequest(http.MethodGet, "/", nil)
	hr.Header.Set("X-Request-ID", "abc")
	serve(t, hr, sendOK, internal.Use(middlewares.RequestID()), capture(&seen))

	attr, ok := extract(seen.Context())
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.String())
}
