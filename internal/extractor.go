package internal

import "strings"

// ExtractorSource extracts a value from the request.
// Returns the value and true if found, or ("", false) if not present.
type ExtractorSource = func(*Request) (string, bool)

// Extractor tries multiple sources in order and returns the first match.
type Extractor struct {
	sources []ExtractorSource
}

// NewExtractor creates an Extractor that tries the given sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

// Extract iterates sources in order and returns the first non-empty value.
// Returns ("", false) if all sources miss.
func (e Extractor) Extract(req *Request) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(req); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func nonEmpty(v string) (string, bool) {
	return v, v != ""
}

// FromHeader returns a source that reads from a request header.
func FromHeader(name string) ExtractorSource {
	return func(req *Request) (string, bool) {
		return nonEmpty(req.Header(name))
	}
}

// FromQuery returns a source that reads from a query parameter.
func FromQuery(name string) ExtractorSource {
	return func(req *Request) (string, bool) {
		return nonEmpty(req.Query(name))
	}
}

// FromCookie returns a source that reads from a plain cookie.
func FromCookie(name string) ExtractorSource {
	return func(req *Request) (string, bool) {
		c, err := req.HTTP().Cookie(name)
		if err != nil {
			return "", false
		}
		return nonEmpty(c.Value)
	}
}

// FromParam returns a source that reads from a path parameter.
func FromParam(name string) ExtractorSource {
	return func(req *Request) (string, bool) {
		return nonEmpty(req.Param(name))
	}
}

// FromForm returns a source that reads from a form field.
func FromForm(name string) ExtractorSource {
	return func(req *Request) (string, bool) {
		return nonEmpty(req.Form(name))
	}
}

// FromBearerToken returns a source that reads a Bearer token from the Authorization header.
// Uses case-insensitive comparison on the "Bearer " prefix.
func FromBearerToken() ExtractorSource {
	return func(req *Request) (string, bool) {
		auth := req.Header("Authorization")
		if len(auth) < 7 || !strings.EqualFold(auth[:7], "bearer ") {
			return "", false
		}
		return nonEmpty(auth[7:])
	}
}
