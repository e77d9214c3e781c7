package view

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	extendsRe = regexp.MustCompile(`@extends\s*\(\s*['"](.+?)['"]\s*\)`)
	sectionRe = regexp.MustCompile(`(?s)@section\s*\(\s*['"](.+?)['"]\s*\)(.*?)@endsection`)
	yieldRe   = regexp.MustCompile(`@yield\s*\(\s*['"](.+?)['"]\s*\)`)
	foreachRe = regexp.MustCompile(`^\$(\w+(?:\.\w+)*)\s+as\s+\$(\w+)$`)
	refRe     = regexp.MustCompile(`^\$(\w+)((?:\.\w+)*)$`)
)

// Translate converts view directives in src into html/template syntax.
// Layout directives (@extends, @section, @yield) must already be resolved.
func Translate(src string) (string, error) {
	t := translator{src: src}
	return t.run()
}

type block struct {
	kind    string
	loopVar string
	hasElse bool
}

type translator struct {
	src   string
	out   strings.Builder
	stack []block
}

func (t *translator) run() (string, error) {
	s := t.src
	for len(s) > 0 {
		i := strings.IndexAny(s, "<@{")
		if i < 0 {
			t.out.WriteString(s)
			break
		}
		t.out.WriteString(s[:i])
		s = s[i:]

		var (
			n   int
			err error
		)
		switch {
		case strings.HasPrefix(s, "{{"):
			t.out.WriteString(`{{"{{"}}`)
			n = 2
		case strings.HasPrefix(s, "<<"):
			n, err = t.echo(s)
		case s[0] == '@':
			n, err = t.directive(s)
		default:
			t.out.WriteByte(s[0])
			n = 1
		}
		if err != nil {
			return "", err
		}
		s = s[n:]
	}

	if len(t.stack) > 0 {
		return "", fmt.Errorf("%w: unclosed @%s", ErrSyntax, t.stack[len(t.stack)-1].kind)
	}
	return t.out.String(), nil
}

func (t *translator) echo(s string) (int, error) {
	end := strings.Index(s, ">>")
	if end < 0 {
		return 0, fmt.Errorf("%w: unterminated <<", ErrSyntax)
	}
	ref, err := t.ref(strings.TrimSpace(s[2:end]))
	if err != nil {
		return 0, err
	}
	t.out.WriteString("{{" + ref + "}}")
	return end + 2, nil
}

func (t *translator) directive(s string) (int, error) {
	word := directiveName(s)
	switch word {
	case "php", "endphp":
		return 0, ErrPHPDirective
	case "if":
		arg, n, err := parenArg(s, len(word)+1)
		if err != nil {
			return 0, err
		}
		cond, err := t.cond(arg)
		if err != nil {
			return 0, err
		}
		t.stack = append(t.stack, block{kind: "if"})
		t.out.WriteString("{{if " + cond + "}}")
		return n, nil
	case "else":
		top := t.top()
		if top == nil || top.kind != "if" || top.hasElse {
			return 0, fmt.Errorf("%w: @else without @if", ErrSyntax)
		}
		top.hasElse = true
		t.out.WriteString("{{else}}")
		return len(word) + 1, nil
	case "endif":
		if err := t.pop("if"); err != nil {
			return 0, err
		}
		t.out.WriteString("{{end}}")
		return len(word) + 1, nil
	case "foreach":
		arg, n, err := parenArg(s, len(word)+1)
		if err != nil {
			return 0, err
		}
		m := foreachRe.FindStringSubmatch(strings.TrimSpace(arg))
		if m == nil {
			return 0, fmt.Errorf("%w: @foreach(%s)", ErrSyntax, arg)
		}
		list, err := t.ref("$" + m[1])
		if err != nil {
			return 0, err
		}
		t.stack = append(t.stack, block{kind: "foreach", loopVar: m[2]})
		t.out.WriteString("{{range $" + m[2] + " := " + list + "}}")
		return n, nil
	case "endforeach":
		if err := t.pop("foreach"); err != nil {
			return 0, err
		}
		t.out.WriteString("{{end}}")
		return len(word) + 1, nil
	case "extends", "section", "endsection", "yield":
		return 0, fmt.Errorf("%w: unresolved @%s", ErrSyntax, word)
	}

	// Not a directive, e.g. an e-mail address.
	t.out.WriteByte('@')
	return 1, nil
}

func (t *translator) top() *block {
	if len(t.stack) == 0 {
		return nil
	}
	return &t.stack[len(t.stack)-1]
}

func (t *translator) pop(kind string) error {
	top := t.top()
	if top == nil || top.kind != kind {
		return fmt.Errorf("%w: @end%s without @%s", ErrSyntax, kind, kind)
	}
	t.stack = t.stack[:len(t.stack)-1]
	return nil
}

// ref maps $name.path to a loop variable when one is in scope and to the
// root data otherwise.
func (t *translator) ref(expr string) (string, error) {
	m := refRe.FindStringSubmatch(expr)
	if m == nil {
		return "", fmt.Errorf("%w: %q is not a variable", ErrSyntax, expr)
	}
	for i := len(t.stack) - 1; i >= 0; i-- {
		if t.stack[i].loopVar == m[1] {
			return "$" + m[1] + m[2], nil
		}
	}
	return "$." + m[1] + m[2], nil
}

// cond supports a variable, its negation and == / != comparisons with a
// variable or a literal.
func (t *translator) cond(expr string) (string, error) {
	expr = strings.TrimSpace(expr)
	if rest, ok := strings.CutPrefix(expr, "!"); ok {
		inner, err := t.cond(rest)
		if err != nil {
			return "", err
		}
		return "not (" + inner + ")", nil
	}
	for op, fn := range map[string]string{"==": "eq", "!=": "ne"} {
		if l, r, ok := strings.Cut(expr, op); ok {
			left, err := t.operand(l)
			if err != nil {
				return "", err
			}
			right, err := t.operand(r)
			if err != nil {
				return "", err
			}
			return fn + " " + left + " " + right, nil
		}
	}
	return t.ref(expr)
}

func (t *translator) operand(s string) (string, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "$"):
		return t.ref(s)
	case len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0]:
		return strconv.Quote(s[1 : len(s)-1]), nil
	case s == "true" || s == "false":
		return s, nil
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return s, nil
	}
	return "", fmt.Errorf("%w: unsupported operand %q", ErrSyntax, s)
}

func directiveName(s string) string {
	i := 1
	for i < len(s) && isWordByte(s[i]) {
		i++
	}
	return s[1:i]
}

func isWordByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// parenArg returns the balanced (...) argument starting at or after off,
// and the total length consumed from s.
func parenArg(s string, off int) (string, int, error) {
	i := off
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	if i >= len(s) || s[i] != '(' {
		return "", 0, fmt.Errorf("%w: @%s requires an argument", ErrSyntax, directiveName(s))
	}
	depth := 0
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[i+1 : j], j + 1, nil
			}
		}
	}
	return "", 0, fmt.Errorf("%w: unbalanced parentheses in @%s", ErrSyntax, directiveName(s))
}

// extractSections removes @section blocks from src and returns them by name.
func extractSections(src string) (string, map[string]string) {
	sections := make(map[string]string)
	for _, m := range sectionRe.FindAllStringSubmatch(src, -1) {
		if _, ok := sections[m[1]]; !ok {
			sections[m[1]] = strings.TrimSpace(m[2])
		}
	}
	return sectionRe.ReplaceAllString(src, ""), sections
}

func fillYields(src string, sections map[string]string) string {
	return yieldRe.ReplaceAllStringFunc(src, func(y string) string {
		return sections[yieldRe.FindStringSubmatch(y)[1]]
	})
}
