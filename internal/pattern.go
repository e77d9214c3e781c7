package internal

import (
	"fmt"
	"regexp"
	"strings"
)

// Placeholder constraints. A placeholder without a constraint uses DefaultConstraint.
const (
	ConstraintInt   = "int"
	ConstraintSlug  = "slug"
	ConstraintAlpha = "alpha"
	ConstraintAny   = "any"

	DefaultConstraint = ConstraintInt
)

var constraintExprs = map[string]string{
	ConstraintInt:   `[0-9]+`,
	ConstraintSlug:  `[a-z0-9]+(?:-[a-z0-9]+)*`,
	ConstraintAlpha: `[a-z]+`,
	ConstraintAny:   `[^/]+`,
}

// placeholderRe matches {name} and {name:constraint}.
var placeholderRe = regexp.MustCompile(`\{(\w+)(?::(\w+))?\}`)

// Pattern is a compiled route path.
type Pattern struct {
	re    *regexp.Regexp
	raw   string
	names []string
}

// CompilePattern parses a route path such as "/users/{id}/posts/{slug:slug}".
// Literal text is matched verbatim, placeholders become capture groups.
// The resulting matcher is anchored and case-insensitive.
func CompilePattern(path string) (*Pattern, error) {
	p := &Pattern{raw: path}

	var expr strings.Builder
	expr.WriteString(`(?i)^`)

	last := 0
	for _, loc := range placeholderRe.FindAllStringSubmatchIndex(path, -1) {
		if loc[0] > last {
			lit := path[last:loc[0]]
			if strings.ContainsAny(lit, "{}") {
				return nil, fmt.Errorf("%w: malformed placeholder in %q", ErrInvalidPattern, path)
			}
			expr.WriteString(regexp.QuoteMeta(lit))
		}

		name := path[loc[2]:loc[3]]
		constraint := DefaultConstraint
		if loc[4] >= 0 {
			constraint = strings.ToLower(path[loc[4]:loc[5]])
		}
		ce, ok := constraintExprs[constraint]
		if !ok {
			return nil, fmt.Errorf("%w: unknown constraint %q for {%s} in %q", ErrInvalidPattern, constraint, name, path)
		}

		p.names = append(p.names, name)
		expr.WriteString("(" + ce + ")")
		last = loc[1]
	}
	if last < len(path) {
		lit := path[last:]
		if strings.ContainsAny(lit, "{}") {
			return nil, fmt.Errorf("%w: malformed placeholder in %q", ErrInvalidPattern, path)
		}
		expr.WriteString(regexp.QuoteMeta(lit))
	}
	expr.WriteString(`$`)

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	if re.NumSubexp() != len(p.names) {
		return nil, fmt.Errorf("%w: %q compiled to %d groups for %d placeholders", ErrInvalidPattern, path, re.NumSubexp(), len(p.names))
	}
	p.re = re
	return p, nil
}

// MustCompilePattern is like CompilePattern but panics on error.
func MustCompilePattern(path string) *Pattern {
	p, err := CompilePattern(path)
	if err != nil {
		panic(err)
	}
	return p
}

// Match tests uri against the pattern. Any query string is ignored.
// On success it returns the captured values in left-to-right order.
func (p *Pattern) Match(uri string) ([]string, bool) {
	if i := strings.IndexByte(uri, '?'); i >= 0 {
		uri = uri[:i]
	}
	m := p.re.FindStringSubmatch(uri)
	if m == nil {
		return nil, false
	}
	return m[1:], true
}

// Names returns the placeholder names in declaration order.
func (p *Pattern) Names() []string {
	return p.names
}

// String returns the original path.
func (p *Pattern) String() string {
	return p.raw
}
