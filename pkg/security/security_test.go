package security_test

import (
	"strings"
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenithgo/zenith/pkg/security"
)

func TestPassword(t *testing.T) {
	t.Parallel()

	hash, err := security.HashPassword("s3cret", 4)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$2a$04$"))
	require.True(t, security.VerifyPassword("s3cret", hash))
	require.False(t, security.VerifyPassword("wrong", hash))
	require.False(t, security.VerifyPassword("s3cret", "not a hash"))

	t.Run("out of range cost uses default", func(t *testing.T) {
		t.Parallel()

		hash, err := security.HashPassword("pw", 99)
		require.NoError(t, err)
		require.Contains(t, hash, "$10$")
	})

	t.Run("too long", func(t *testing.T) {
		t.Parallel()

		_, err := security.HashPassword(strings.Repeat("x", 73), 4)
		require.ErrorIs(t, err, security.ErrHashPassword)
	})
}

func TestTokens(t *testing.T) {
	t.Parallel()

	tok, err := security.GenerateToken(16)
	require.NoError(t, err)
	require.Len(t, tok, 32)

	other, err := security.GenerateToken(16)
	require.NoError(t, err)
	require.NotEqual(t, tok, other)

	_, err = security.GenerateToken(0)
	require.ErrorIs(t, err, security.ErrTokenLength)

	csrf, err := security.NewCSRFToken()
	require.NoError(t, err)
	require.Len(t, csrf, 64)
	require.True(t, security.ValidateCSRFToken(csrf, csrf))
	require.False(t, security.ValidateCSRFToken(csrf, other))
	require.False(t, security.ValidateCSRFToken(csrf, ""))
	require.False(t, security.ValidateCSRFToken("", ""))
}

func TestEncryptDecrypt(t *testing.T) {
	t.Parallel()

	key, err := security.KeyFromSecret("base64:app-secret")
	require.NoError(t, err)
	require.Len(t, key, security.KeySize)

	again, err := security.KeyFromSecret("base64:app-secret")
	require.NoError(t, err)
	require.Equal(t, key, again)

	sealed, err := security.Encrypt("card 4111", key)
	require.NoError(t, err)
	require.NotContains(t, sealed, "4111")

	plain, err := security.Decrypt(sealed, key)
	require.NoError(t, err)
	require.Equal(t, "card 4111", plain)

	t.Run("fresh nonce per call", func(t *testing.T) {
		t.Parallel()

		again, err := security.Encrypt("card 4111", key)
		require.NoError(t, err)
		require.NotEqual(t, sealed, again)
	})

	t.Run("wrong key", func(t *testing.T) {
		t.Parallel()

		other, err := security.KeyFromSecret("another")
		require.NoError(t, err)
		_, err = security.Decrypt(sealed, other)
		require.ErrorIs(t, err, security.ErrDecrypt)
	})

	t.Run("tampered", func(t *testing.T) {
		t.Parallel()

		b := []byte(sealed)
		if b[20] == 'A' {
			b[20] = 'B'
		} else {
			b[20] = 'A'
		}
		_, err := security.Decrypt(string(b), key)
		require.ErrorIs(t, err, security.ErrDecrypt)
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()

		_, err := security.Decrypt("!!", key)
		require.ErrorIs(t, err, security.ErrDecrypt)
		_, err = security.Decrypt("AAAA", key)
		require.ErrorIs(t, err, security.ErrDecrypt)
	})

	t.Run("short key", func(t *testing.T) {
		t.Parallel()

		_, err := security.Encrypt("x", []byte("short"))
		require.ErrorIs(t, err, security.ErrInvalidKey)
		_, err = security.Decrypt(sealed, []byte("short"))
		require.ErrorIs(t, err, security.ErrInvalidKey)
	})
}

func TestSanitizeInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"strips script injection", `<p>Hello</p><script>alert('xss')</script>`, "Hello"},
		{"strips all HTML tags", `<p>Hello <strong>world</strong></p>`, "Hello world"},
		{"strips event handlers", `<img src="x" onerror="alert('xss')">`, ""},
		{"strips javascript URLs", `<a href="javascript:alert('xss')">click</a>`, "click"},
		{"strips iframes", `<iframe src="https://evil.com"></iframe>content`, "content"},
		{"plain text", "normal text without HTML", "normal text without HTML"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, security.SanitizeInput(tt.input))
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"keeps paragraphs", `<p>Hello</p><script>alert('xss')</script>`, "<p>Hello</p>"},
		{"keeps emphasis", `<p><em>italic</em> and <strong>bold</strong></p>`, "<p><em>italic</em> and <strong>bold</strong></p>"},
		{"keeps lists", `<ul><li>item 1</li><li>item 2</li></ul>`, "<ul><li>item 1</li><li>item 2</li></ul>"},
		{"keeps code", `<pre><code>func main() {}</code></pre>`, "<pre><code>func main() {}</code></pre>"},
		{"nofollow links", `<a href="https://example.com">link</a>`, `<a href="https://example.com" rel="nofollow">link</a>`},
		{"strips javascript URLs", `<a href="javascript:alert('xss')">click</a>`, "click"},
		{"strips event handlers", `<p onclick="alert('xss')">content</p>`, "<p>content</p>"},
		{"strips unknown elements", `<div>content</div>`, "content"},
		{"strips class and id", `<p class="xss" id="attack">content</p>`, "<p>content</p>"},
		{"keeps line breaks", `line1<br>line2`, `line1<br>line2`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, security.SanitizeHTML(tt.input))
		})
	}
}

func TestSanitizeHTMLWith(t *testing.T) {
	t.Parallel()

	input := `<script>alert('xss')</script>`
	assert.Equal(t, input, security.SanitizeHTMLWith(input, nil))

	policy := bluemonday.NewPolicy()
	policy.AllowElements("b")
	assert.Equal(t, "<b>x</b>y", security.SanitizeHTMLWith(`<b>x</b><i>y</i>`, policy))
}

func TestEscapeOutput(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "&lt;a href=&#34;x&#34;&gt;Tom &amp; Jerry&#39;s&lt;/a&gt;",
		security.EscapeOutput(`<a href="x">Tom & Jerry's</a>`))
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"user@example.com", "first.last+tag@sub.example.org"}
	invalid := []string{
		"", "plain", "user@", "@example.com", "user@localhost",
		"John <john@example.com>", " user@example.com", "user@example.", "user@.com",
	}

	for _, s := range valid {
		assert.True(t, security.ValidEmail(s), s)
	}
	for _, s := range invalid {
		assert.False(t, security.ValidEmail(s), s)
	}
}
