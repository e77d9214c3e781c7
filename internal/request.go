package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

// defaultMaxBodySize bounds Body() reads.
const defaultMaxBodySize = 10 << 20 // 10MB

// Request is the per-call request context handed to middleware and handlers.
// It is owned by a single dispatch and must not be retained after it returns.
type Request struct {
	r      *http.Request
	names  []string
	params []string
	body   []byte
	read   bool
	err    error
}

// NewRequest wraps an *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{r: r}
}

// HTTP returns the underlying *http.Request.
func (r *Request) HTTP() *http.Request {
	return r.r
}

// Context returns the request's context.Context.
func (r *Request) Context() context.Context {
	return r.r.Context()
}

// Method returns the HTTP method.
func (r *Request) Method() string {
	return r.r.Method
}

// URI returns the origin-form request URI including the query string.
// Absolute-form targets ("GET http://host/path") are reduced to path and query.
func (r *Request) URI() string {
	if strings.HasPrefix(r.r.RequestURI, "/") {
		return r.r.RequestURI
	}
	return r.r.URL.RequestURI()
}

// Path returns the request path without the query string.
func (r *Request) Path() string {
	return r.r.URL.Path
}

// Header returns the request header value by name.
func (r *Request) Header(name string) string {
	return r.r.Header.Get(name)
}

// Headers returns all request headers, joining repeated values with ", ".
func (r *Request) Headers() map[string]string {
	out := make(map[string]string, len(r.r.Header))
	for k, v := range r.r.Header {
		out[k] = strings.Join(v, ", ")
	}
	return out
}

// Query returns the query parameter value by name.
func (r *Request) Query(name string) string {
	return r.r.URL.Query().Get(name)
}

// QueryParams returns all query parameters.
func (r *Request) QueryParams() url.Values {
	return r.r.URL.Query()
}

// Param returns the path parameter captured for the named placeholder.
// Returns empty string if the route declares no such placeholder.
func (r *Request) Param(name string) string {
	for i, n := range r.names {
		if strings.EqualFold(n, name) && i < len(r.params) {
			return r.params[i]
		}
	}
	return ""
}

// Params returns the path parameters in pattern order.
func (r *Request) Params() []string {
	return r.params
}

// Body returns the raw request body. The body is read once and cached,
// and the underlying reader is replaced so it can be read again downstream.
func (r *Request) Body() ([]byte, error) {
	if r.read {
		return r.body, nil
	}
	r.read = true
	if r.r.Body == nil || r.r.Body == http.NoBody {
		return nil, nil
	}
	b, err := io.ReadAll(io.LimitReader(r.r.Body, defaultMaxBodySize))
	_ = r.r.Body.Close()
	if err != nil {
		return nil, err
	}
	r.body = b
	r.r.Body = io.NopCloser(bytes.NewReader(b))
	return b, nil
}

// BindJSON decodes the JSON body into v.
func (r *Request) BindJSON(v any) error {
	b, err := r.Body()
	if err != nil {
		return err
	}
	if len(b) == 0 {
		return errors.Join(ErrUnsupportedBody, io.EOF)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return errors.Join(ErrUnsupportedBody, err)
	}
	return nil
}

// Input returns the parsed body: the decoded JSON object for
// application/json requests, the form values otherwise.
func (r *Request) Input() (map[string]any, error) {
	if r.isJSON() {
		out := map[string]any{}
		b, err := r.Body()
		if err != nil {
			return nil, err
		}
		if len(b) == 0 {
			return out, nil
		}
		if err := json.Unmarshal(b, &out); err != nil {
			return nil, errors.Join(ErrUnsupportedBody, err)
		}
		return out, nil
	}

	if err := r.r.ParseForm(); err != nil {
		return nil, errors.Join(ErrUnsupportedBody, err)
	}
	out := make(map[string]any, len(r.r.PostForm))
	for k, v := range r.r.PostForm {
		if len(v) == 1 {
			out[k] = v[0]
		} else {
			out[k] = v
		}
	}
	return out, nil
}

// Form returns the form value by name.
func (r *Request) Form(name string) string {
	return r.r.FormValue(name)
}

// Set stores a request-scoped value.
// The value is visible to later middleware and the handler.
func (r *Request) Set(key, value any) {
	r.r = r.r.WithContext(context.WithValue(r.r.Context(), key, value))
}

// Get retrieves a request-scoped value stored with Set.
func (r *Request) Get(key any) any {
	return r.r.Context().Value(key)
}

// SetContext replaces the request's context, for example to add a deadline.
func (r *Request) SetContext(ctx context.Context) {
	r.r = r.r.WithContext(ctx)
}

// Abort records err as the request's failure. Middleware uses it to hand an
// error to the App's error handler instead of writing a response itself.
// The first recorded error wins; a handler error takes precedence.
func (r *Request) Abort(err error) {
	if r.err == nil {
		r.err = err
	}
}

// Err returns the error recorded with Abort.
func (r *Request) Err() error {
	return r.err
}

func (r *Request) isJSON() bool {
	mt, _, err := mime.ParseMediaType(r.r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

// withParams binds the matched route's parameters.
func (r *Request) withParams(names, values []string) {
	r.names = names
	r.params = values
}
