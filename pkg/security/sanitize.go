package security

import (
	"html"
	"net/mail"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	safePolicy   *bluemonday.Policy
	policiesOnce sync.Once
)

func policies() {
	policiesOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		// Basic formatting for user-generated content.
		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements(
			"p", "br",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
		safePolicy.AllowAttrs("href").OnElements("a")
		safePolicy.RequireNoFollowOnLinks(true)
	})
}

// SanitizeInput strips all markup from s, leaving plain text.
func SanitizeInput(s string) string {
	policies()
	return strictPolicy.Sanitize(s)
}

// SanitizeHTML keeps simple formatting (paragraphs, emphasis, lists, code,
// links) and removes scripts, event handlers and unsafe URLs.
func SanitizeHTML(s string) string {
	policies()
	return safePolicy.Sanitize(s)
}

// SanitizeHTMLWith applies policy. A nil policy returns s unchanged.
func SanitizeHTMLWith(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}

// EscapeOutput escapes s for inclusion in HTML text or quoted attributes.
func EscapeOutput(s string) string {
	return html.EscapeString(s)
}

// ValidEmail reports whether s is a bare address like user@example.com.
// Display names and angle brackets are rejected.
func ValidEmail(s string) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	_, domain, _ := strings.Cut(s, "@")
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}
