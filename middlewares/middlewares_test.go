package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zenithgo/zenith/internal"
)

type result struct {
	outcome internal.Outcome
	err     error
	rec     *httptest.ResponseRecorder
}

// serve registers h at method target behind mw and dispatches r to it.
func serve(t *testing.T, r *http.Request, h internal.InlineFunc, mw ...internal.MiddlewareRef) result {
	t.Helper()
	router := internal.NewRouter()
	router.Handle(r.Method, r.URL.Path, internal.Inline(h), mw...)

	rec := httptest.NewRecorder()
	outcome, err := router.Dispatch(internal.NewRequest(r), internal.NewResponse(rec))
	return result{outcome: outcome, err: err, rec: rec}
}

func sendOK(res *internal.Response, _ ...string) error {
	return res.Send(http.StatusOK, "ok")
}

// capture stores the request seen by the rest of the chain.
func capture(dst **internal.Request) internal.MiddlewareRef {
	return internal.UseFunc(func(req *internal.Request, _ *internal.Response, next internal.Next) bool {
		*dst = req
		return next()
	})
}
