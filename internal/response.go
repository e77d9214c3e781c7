package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// Component is the interface for renderable templates.
// This is compatible with templ.Component.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Response is the per-call response sink.
// Every writing method completes the response; later writes return
// ErrResponseCommitted instead of appending to it.
type Response struct {
	w   *ResponseWriter
	ctx func() context.Context
}

// NewResponse wraps an http.ResponseWriter.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: NewResponseWriter(w), ctx: context.Background}
}

// Writer returns the wrapped writer for handlers that stream.
func (r *Response) Writer() http.ResponseWriter {
	return r.w
}

// Header returns the response header map.
func (r *Response) Header() http.Header {
	return r.w.Header()
}

// SetHeader sets a response header.
func (r *Response) SetHeader(name, value string) {
	r.w.Header().Set(name, value)
}

// SetStatus writes the status line without a body.
func (r *Response) SetStatus(code int) {
	r.w.WriteHeader(code)
}

// Written reports whether the response has been completed.
func (r *Response) Written() bool {
	return r.w.Written()
}

// Status returns the status code sent (200 if nothing was sent yet).
func (r *Response) Status() int {
	return r.w.Status()
}

// Size returns the number of body bytes written.
func (r *Response) Size() int64 {
	return r.w.Size()
}

// JSON writes v as JSON with the given status code.
func (r *Response) JSON(code int, v any) error {
	if r.w.Written() {
		return ErrResponseCommitted
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	r.w.Header().Set("Content-Type", "application/json")
	r.w.WriteHeader(code)
	_, err = r.w.Write(b)
	return err
}

// Send writes content as the response body with the given status code.
func (r *Response) Send(code int, content string) error {
	if r.w.Written() {
		return ErrResponseCommitted
	}
	if r.w.Header().Get("Content-Type") == "" {
		r.w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	r.w.WriteHeader(code)
	_, err := io.WriteString(r.w, content)
	return err
}

// HTML writes content as an HTML body with the given status code.
func (r *Response) HTML(code int, content string) error {
	if r.w.Written() {
		return ErrResponseCommitted
	}
	r.w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return r.Send(code, content)
}

// NoContent writes a response with no body.
func (r *Response) NoContent(code int) error {
	if r.w.Written() {
		return ErrResponseCommitted
	}
	r.w.WriteHeader(code)
	return nil
}

// Redirect redirects to url with the given status code.
func (r *Response) Redirect(code int, url string) error {
	if r.w.Written() {
		return ErrResponseCommitted
	}
	r.w.Header().Set("Location", url)
	r.w.WriteHeader(code)
	return nil
}

// Render renders a component with the given status code.
// The component is rendered into a buffer first so a render error leaves
// the response untouched for the error handler.
func (r *Response) Render(code int, c Component) error {
	if r.w.Written() {
		return ErrResponseCommitted
	}
	var buf bytes.Buffer
	if err := c.Render(r.ctx(), &buf); err != nil {
		return err
	}
	r.w.Header().Set("Content-Type", "text/html; charset=utf-8")
	r.w.WriteHeader(code)
	_, err := buf.WriteTo(r.w)
	return err
}

// bindRequest makes Render use req's context as it stands at render time,
// including values and deadlines added by middleware.
func (r *Response) bindRequest(req *Request) *Response {
	r.ctx = req.Context
	return r
}
