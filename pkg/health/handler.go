package health

import (
	"encoding/json"
	"net/http"
	"strings"
)

// LivenessHandler returns an http.HandlerFunc that always responds OK.
// Use for Kubernetes liveness probes to indicate the process is running.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		write(w, r, http.StatusOK, &Response{Status: StatusHealthy})
	}
}

// ReadinessHandler returns an http.HandlerFunc that runs all provided checks.
// Use for Kubernetes readiness probes to indicate the service can accept traffic.
func ReadinessHandler(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := newConfig(opts...)

	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := runChecks(r.Context(), checks, cfg)

		status := http.StatusOK
		if err != nil {
			status = http.StatusServiceUnavailable
		}
		write(w, r, status, resp)
	}
}

// write renders resp as JSON when the client asks for it, plain text otherwise.
func write(w http.ResponseWriter, r *http.Request, status int, resp *Response) {
	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if resp.Healthy() {
		_, _ = w.Write([]byte("OK"))
	} else {
		_, _ = w.Write([]byte("Service Unavailable"))
	}
}

// wantsJSON checks if the client wants JSON response.
func wantsJSON(r *http.Request) bool {
	// Query parameter first (easier for debugging)
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
