package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zenithgo/zenith/internal"
)

func TestIsHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("direct HTTPError", func(t *testing.T) {
		t.Parallel()
		err := internal.NewHTTPError(http.StatusNotFound, "not found")
		require.True(t, internal.IsHTTPError(err))
	})

	t.Run("wrapped HTTPError", func(t *testing.T) {
		t.Parallel()
		httpErr := internal.NewHTTPError(http.StatusBadRequest, "bad request")
		err := fmt.Errorf("handler failed: %w", httpErr)
		require.True(t, internal.IsHTTPError(err))
	})

	t.Run("double-wrapped HTTPError", func(t *testing.T) {
		t.Parallel()
		httpErr := internal.NewHTTPError(http.StatusConflict, "conflict")
		err := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", httpErr))
		require.True(t, internal.IsHTTPError(err))
	})

	t.Run("unrelated error", func(t *testing.T) {
		t.Parallel()
		err := errors.New("something went wrong")
		require.False(t, internal.IsHTTPError(err))
	})

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		require.False(t, internal.IsHTTPError(nil))
	})
}

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("direct HTTPError", func(t *testing.T) {
		t.Parallel()
		httpErr := internal.NewHTTPError(http.StatusNotFound, "not found")
		got := internal.AsHTTPError(httpErr)
		require.NotNil(t, got)
		require.Equal(t, http.StatusNotFound, got.Code)
		require.Equal(t, "not found", got.Message)
	})

	t.Run("wrapped HTTPError preserves fields", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("token mismatch")
		httpErr := internal.NewHTTPError(http.StatusForbidden, "forbidden", internal.WithError(cause))
		err := fmt.Errorf("middleware: %w", httpErr)

		got := internal.AsHTTPError(err)
		require.NotNil(t, got)
		require.Equal(t, http.StatusForbidden, got.Code)
		require.Equal(t, "forbidden", got.Message)
		require.Same(t, cause, got.Err)
		require.ErrorIs(t, err, cause)
	})

	t.Run("unrelated error returns nil", func(t *testing.T) {
		t.Parallel()
		err := errors.New("plain error")
		require.Nil(t, internal.AsHTTPError(err))
	})

	t.Run("nil returns nil", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, internal.AsHTTPError(nil))
	})
}

func TestNewHTTPError(t *testing.T) {
	t.Parallel()

	cause := errors.New("row missing")
	err := internal.NewHTTPError(http.StatusNotFound, "", internal.WithError(cause))
	require.Equal(t, "Not Found", err.Message)
	require.Equal(t, http.StatusNotFound, err.StatusCode())
	require.Equal(t, "Not Found", err.StatusText())
	require.ErrorIs(t, err, cause)

	require.Equal(t, "Unauthorized access", internal.ErrUnauthorized("").Message)
	require.Equal(t, "Resource not found", internal.ErrNotFound("").Message)
	require.Equal(t, "email taken", internal.ErrUnprocessable("email taken").Message)
	require.Equal(t, http.StatusForbidden, internal.ErrForbidden("").Code)
}

func TestConfigurationError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *internal.ConfigurationError
		want string
	}{
		{
			name: "controller",
			err:  &internal.ConfigurationError{Controller: "Ghost", Reason: "is not registered"},
			want: `zenith: configuration error: controller "Ghost" is not registered`,
		},
		{
			name: "action",
			err:  &internal.ConfigurationError{Controller: "User", Action: "edit", Reason: "does not exist"},
			want: `zenith: configuration error: action "edit" on controller "User" does not exist`,
		},
		{
			name: "middleware",
			err:  &internal.ConfigurationError{Middleware: "auth", Reason: "is not registered"},
			want: `zenith: configuration error: middleware "auth" is not registered`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.err.Error())

			wrapped := fmt.Errorf("GET /x: %w", tt.err)
			require.True(t, internal.IsConfigurationError(wrapped))
			got, ok := internal.AsConfigurationError(wrapped)
			require.True(t, ok)
			require.Same(t, tt.err, got)
			require.False(t, internal.IsUnresolvedDependencyError(wrapped))
		})
	}
}

func TestUnresolvedDependencyError(t *testing.T) {
	t.Parallel()

	err := &internal.UnresolvedDependencyError{Controller: "User", Action: "show", Param: "db", Type: "*sql.DB"}
	require.Contains(t, err.Error(), `"db"`)
	require.Contains(t, err.Error(), "*sql.DB")
	require.True(t, internal.IsUnresolvedDependencyError(fmt.Errorf("wrap: %w", err)))
	_, ok := internal.AsConfigurationError(err)
	require.False(t, ok)
}

func TestOutcomeString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "unhandled", internal.Unhandled.String())
	require.Equal(t, "rejected", internal.Rejected.String())
	require.Equal(t, "handled", internal.Handled.String())
	require.Equal(t, "outcome(9)", internal.Outcome(9).String())
}
