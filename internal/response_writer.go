package internal

import (
	"bufio"
	"net"
	"net/http"
)

// ResponseWriter records what a handler chain sent: the status line, the
// number of body bytes and whether the response is committed. Informational
// 1xx statuses are passed through without committing.
//
// A ResponseWriter belongs to one request and is not safe for concurrent use.
type ResponseWriter struct {
	http.ResponseWriter
	status    int
	size      int64
	committed bool
}

// NewResponseWriter wraps w. If w is already a *ResponseWriter it is returned as is.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader sends the status line. Calls after the response is committed
// are ignored.
func (w *ResponseWriter) WriteHeader(code int) {
	if w.committed {
		return
	}
	if code >= 100 && code < 200 && code != http.StatusSwitchingProtocols {
		w.ResponseWriter.WriteHeader(code)
		return
	}
	w.committed = true
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Write sends b as part of the body, committing a 200 status first if
// nothing was sent yet.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.committed {
		w.WriteHeader(w.status)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}

// Status returns the committed status code, or 200 before anything was sent.
func (w *ResponseWriter) Status() int { return w.status }

// Size returns the number of body bytes written.
func (w *ResponseWriter) Size() int64 { return w.size }

// Written reports whether the status line has been sent.
func (w *ResponseWriter) Written() bool { return w.committed }

// Flush sends buffered data to the client. It commits the response.
func (w *ResponseWriter) Flush() {
	if !w.committed {
		w.WriteHeader(w.status)
	}
	_ = http.NewResponseController(w.ResponseWriter).Flush()
}

// Hijack hands the connection to the caller, for example to upgrade
// to WebSocket. The response counts as committed afterwards.
func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	conn, rw, err := http.NewResponseController(w.ResponseWriter).Hijack()
	if err == nil {
		w.committed = true
	}
	return conn, rw, err
}

// Unwrap returns the underlying writer for http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
