package middlewares

import (
	"net/http"
	"slices"
	"time"

	"github.com/zenithgo/zenith/internal"
	"github.com/zenithgo/zenith/pkg/security"
)

type csrfTokenKey struct{}

// CSRFConfig configures the CSRF middleware.
type CSRFConfig struct {
	CookieName string
	HeaderName string
	FormField  string
	CookiePath string
	MaxAge     time.Duration
	Secure     bool
	SameSite   http.SameSite
	// Methods that never need a token.
	SafeMethods []string
}

// CSRFOption configures CSRFConfig.
type CSRFOption func(*CSRFConfig)

// WithCSRFCookieName sets the cookie holding the token.
func WithCSRFCookieName(name string) CSRFOption {
	return func(cfg *CSRFConfig) {
		cfg.CookieName = name
	}
}

// WithCSRFHeaderName sets the request header checked for the token.
func WithCSRFHeaderName(name string) CSRFOption {
	return func(cfg *CSRFConfig) {
		cfg.HeaderName = name
	}
}

// WithCSRFFormField sets the form field checked for the token.
func WithCSRFFormField(name string) CSRFOption {
	return func(cfg *CSRFConfig) {
		cfg.FormField = name
	}
}

// WithCSRFSecureCookie marks the cookie Secure. Enable behind HTTPS.
func WithCSRFSecureCookie() CSRFOption {
	return func(cfg *CSRFConfig) {
		cfg.Secure = true
	}
}

// CSRF returns double-submit cookie protection. Every request gets a token
// cookie; unsafe methods must echo it in the X-CSRF-Token header or the
// _token form field. Mismatches fail with 403 wrapping ErrInvalidCSRFToken.
//
// Views read the token with CSRFToken:
//
//	<input type="hidden" name="_token" value="<< $csrf >>">
func CSRF(opts ...CSRFOption) internal.Middleware {
	cfg := &CSRFConfig{
		CookieName:  "csrf_token",
		HeaderName:  "X-CSRF-Token",
		FormField:   "_token",
		CookiePath:  "/",
		MaxAge:      12 * time.Hour,
		SameSite:    http.SameSiteLaxMode,
		SafeMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	stored := internal.NewExtractor(internal.FromCookie(cfg.CookieName))
	submitted := internal.NewExtractor(
		internal.FromHeader(cfg.HeaderName),
		internal.FromForm(cfg.FormField),
	)

	return internal.MiddlewareFunc(func(req *internal.Request, res *internal.Response, next internal.Next) bool {
		token, ok := stored.Extract(req)
		if !ok {
			fresh, err := security.NewCSRFToken()
			if err != nil {
				req.Abort(internal.ErrInternal("", internal.WithError(err)))
				return false
			}
			token = fresh
			http.SetCookie(res.Writer(), &http.Cookie{
				Name:     cfg.CookieName,
				Value:    token,
				Path:     cfg.CookiePath,
				MaxAge:   int(cfg.MaxAge.Seconds()),
				Secure:   cfg.Secure,
				HttpOnly: true,
				SameSite: cfg.SameSite,
			})
		}
		req.Set(csrfTokenKey{}, token)

		if slices.Contains(cfg.SafeMethods, req.Method()) {
			return next()
		}

		// A freshly issued token cannot have been submitted yet.
		got, _ := submitted.Extract(req)
		if !ok || !security.ValidateCSRFToken(token, got) {
			req.Abort(internal.ErrForbidden("Invalid CSRF token", internal.WithError(ErrInvalidCSRFToken)))
			return false
		}
		return next()
	})
}

// CSRFToken returns the token for the current request, or "" when CSRF did not run.
func CSRFToken(req *internal.Request) string {
	if v, ok := req.Get(csrfTokenKey{}).(string); ok {
		return v
	}
	return ""
}
