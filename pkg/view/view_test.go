package view_test

import (
	"bytes"
	"context"
	"html/template"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/zenithgo/zenith/pkg/view"
)

type item struct {
	Name string
}

func render(t *testing.T, e *view.Engine, name string, data any) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, e.Render(&buf, name, data))
	return buf.String()
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "echo",
			src:  "<h1><< $title >></h1>",
			want: "<h1>{{$.title}}</h1>",
		},
		{
			name: "if else",
			src:  "@if($admin)<b>admin</b>@else<i>guest</i>@endif",
			want: "{{if $.admin}}<b>admin</b>{{else}}<i>guest</i>{{end}}",
		},
		{
			name: "foreach binds loop variable",
			src:  "@foreach($items as $item)<li><< $item.Name >> of << $owner >></li>@endforeach",
			want: "{{range $item := $.items}}<li>{{$item.Name}} of {{$.owner}}</li>{{end}}",
		},
		{
			name: "comparison",
			src:  "@if($role == 'admin')x@endif",
			want: `{{if eq $.role "admin"}}x{{end}}`,
		},
		{
			name: "negation",
			src:  "@if(!$items)empty@endif",
			want: "{{if not ($.items)}}empty{{end}}",
		},
		{
			name: "literal braces",
			src:  "{{ raw }}",
			want: `{{"{{"}} raw }}`,
		},
		{
			name: "email is not a directive",
			src:  "mail me@example.com <3",
			want: "mail me@example.com <3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := view.Translate(tt.src)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestTranslate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		err  error
	}{
		{"php", "@php echo 1; @endphp", view.ErrPHPDirective},
		{"unclosed if", "@if($a)x", view.ErrSyntax},
		{"stray endforeach", "@endforeach", view.ErrSyntax},
		{"else outside if", "@foreach($a as $b)@else@endforeach", view.ErrSyntax},
		{"double else", "@if($a)@else@else@endif", view.ErrSyntax},
		{"unterminated echo", "<< $a", view.ErrSyntax},
		{"echo expression", "<< 1 + 2 >>", view.ErrSyntax},
		{"bad foreach", "@foreach($items)@endforeach", view.ErrSyntax},
		{"unbalanced parens", "@if(($a)", view.ErrSyntax},
		{"unresolved yield", "@yield('x')", view.ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := view.Translate(tt.src)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestEngine_Render(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"layouts/app.pluto.html": {Data: []byte(
			"<html><title>@yield('title')</title><body>@yield('content')</body></html>",
		)},
		"home.pluto.html": {Data: []byte(
			"@extends('layouts/app')\n" +
				"@section('title')Home@endsection\n" +
				"@section('content')<p>Hi << $name >></p>@endsection\n",
		)},
		"list.pluto.html": {Data: []byte(
			"<ul>@foreach($items as $item)<li><< $item.Name >></li>@endforeach</ul>",
		)},
	}
	e := view.New(fsys)

	t.Run("layout and escaping", func(t *testing.T) {
		t.Parallel()

		got := render(t, e, "home", map[string]any{"name": "<b>Ann</b>"})
		require.Equal(t, "<html><title>Home</title><body><p>Hi &lt;b&gt;Ann&lt;/b&gt;</p></body></html>", got)
	})

	t.Run("foreach over structs", func(t *testing.T) {
		t.Parallel()

		got := render(t, e, "list", map[string]any{"items": []item{{"a"}, {"b"}}})
		require.Equal(t, "<ul><li>a</li><li>b</li></ul>", got)
	})

	t.Run("component", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := e.Component("list", map[string]any{"items": []item{{"x"}}}).Render(context.Background(), &buf)
		require.NoError(t, err)
		require.Equal(t, "<ul><li>x</li></ul>", buf.String())
	})

	t.Run("missing view", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.ErrorIs(t, e.Render(&buf, "nope", nil), view.ErrTemplateNotFound)
		require.Empty(t, buf.String())
	})
}

func TestEngine_Sections(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"base.pluto.html":  {Data: []byte("[@yield('title')|@yield('footer')]")},
		"inner.pluto.html": {Data: []byte("@extends('base')@section('title')Inner@endsection@section('footer')inner footer@endsection")},
		"page.pluto.html":  {Data: []byte("@extends('inner')@section('title')Page@endsection")},
		"self.pluto.html":  {Data: []byte("@section('a')A@endsection<< $x >>:@yield('a')")},
	}
	e := view.New(fsys)

	require.Equal(t, "[Page|inner footer]", render(t, e, "page", nil))
	require.Equal(t, "1:A", render(t, e, "self", map[string]any{"x": 1}))
}

func TestEngine_Errors(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"loop.pluto.html":   {Data: []byte("@extends('loop')")},
		"php.pluto.html":    {Data: []byte("<p>@php echo 'x'; @endphp</p>")},
		"broken.pluto.html": {Data: []byte("@if($a)")},
		"exec.pluto.html":   {Data: []byte("<< $a.Missing >>")},
	}
	e := view.New(fsys)

	require.ErrorIs(t, e.Compile("loop"), view.ErrExtendsDepth)
	require.ErrorIs(t, e.Compile("php"), view.ErrPHPDirective)
	require.ErrorIs(t, e.Compile("broken"), view.ErrSyntax)

	var buf bytes.Buffer
	err := e.Render(&buf, "exec", map[string]any{"a": item{"x"}})
	require.ErrorIs(t, err, view.ErrRenderFailed)
	require.Empty(t, buf.String())
}

func TestEngine_Cache(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"v.pluto.html": {Data: []byte("one")}}
	cached := view.New(fsys)
	reloading := view.New(fsys, view.WithReload(true))

	require.Equal(t, "one", render(t, cached, "v", nil))
	require.Equal(t, "one", render(t, reloading, "v", nil))

	fsys["v.pluto.html"] = &fstest.MapFile{Data: []byte("two")}

	require.Equal(t, "one", render(t, cached, "v", nil))
	require.Equal(t, "two", render(t, reloading, "v", nil))
}

func TestEngine_Options(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"shout.tmpl": {Data: []byte(`<< $word >>!`)}}
	e := view.New(fsys,
		view.WithExtension(".tmpl"),
		view.WithFuncs(template.FuncMap{"upper": strings.ToUpper}),
	)

	require.Equal(t, "hey!", render(t, e, "shout", map[string]any{"word": "hey"}))
}
