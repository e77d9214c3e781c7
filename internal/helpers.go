package internal

import "strconv"

// Scalar is the set of types path and query values convert to.
type Scalar interface {
	~string | ~int | ~int64 | ~float64 | ~bool
}

// ContextValue returns the request-scoped value stored under key, or the
// zero value of T when it is missing or of another type.
func ContextValue[T any](req *Request, key any) T {
	if v, ok := req.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// PathValue returns the named path parameter converted to T.
// Returns the zero value if the parameter is missing or cannot be parsed.
func PathValue[T Scalar](req *Request, name string) T {
	v, _ := convertParam[T](req.Param(name))
	return v
}

// Query returns the named query parameter converted to T.
func Query[T Scalar](req *Request, name string) T {
	v, _ := convertParam[T](req.Query(name))
	return v
}

// QueryDefault retrieves a typed query parameter with a default value.
// Returns defaultValue if the parameter is empty or cannot be parsed.
func QueryDefault[T Scalar](req *Request, name string, defaultValue T) T {
	raw := req.Query(name)
	if raw == "" {
		return defaultValue
	}
	v, ok := convertParam[T](raw)
	if !ok {
		return defaultValue
	}
	return v
}

// convertParam converts a raw string to the target type T.
func convertParam[T Scalar](raw string) (T, bool) {
	var zero T
	switch p := any(&zero).(type) {
	case *string:
		*p = raw
		return zero, true
	case *int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return zero, false
		}
		*p = v
		return zero, true
	case *int64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return zero, false
		}
		*p = v
		return zero, true
	case *float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return zero, false
		}
		*p = v
		return zero, true
	case *bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return zero, false
		}
		*p = v
		return zero, true
	}
	return zero, false
}
