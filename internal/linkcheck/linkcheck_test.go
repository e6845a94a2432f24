package linkcheck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pagewright/internal/foundation/errors"
)

func TestExtractLinksFromReader(t *testing.T) {
	doc := `<html><head><link rel="stylesheet" href="/public/site.css"><script src="app.js"></script></head>
<body><a href="about.html">About <b>us</b></a><img src="img/logo.png" alt="Logo"><a name="top"></a></body></html>`

	links, err := ExtractLinksFromReader(strings.NewReader(doc))
	require.NoError(t, err)

	require.Len(t, links, 4)
	assert.Equal(t, Link{URL: "/public/site.css", Text: "stylesheet", Tag: "link", Attribute: "href"}, links[0])
	assert.Equal(t, Link{URL: "app.js", Tag: "script", Attribute: "src"}, links[1])
	assert.Equal(t, Link{URL: "about.html", Text: "Aboutus", Tag: "a", Attribute: "href"}, links[2])
	assert.Equal(t, Link{URL: "img/logo.png", Text: "Logo", Tag: "img", Attribute: "src"}, links[3])
}

func TestResolve(t *testing.T) {
	root := filepath.FromSlash("/site")
	src := filepath.Join(root, "posts", "a.html")

	tests := []struct {
		ref      string
		target   string
		internal bool
	}{
		{"b.html", filepath.Join(root, "posts", "b.html"), true},
		{"../index.html#top", filepath.Join(root, "index.html"), true},
		{"/public/site.css?v=2", filepath.Join(root, "public", "site.css"), true},
		{"#section", "", false},
		{"https://example.com/", "", false},
		{"//cdn.example.com/x.js", "", false},
		{"mailto:me@example.com", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			target, internal := resolve(root, src, tt.ref)
			assert.Equal(t, tt.internal, internal)
			assert.Equal(t, tt.target, target)
		})
	}
}

func TestCheck(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	write("index.html", `<a href="posts/">Posts</a><a href="missing.html">x</a><img src="/public/logo.png">`)
	write("posts/index.html", `<a href="../index.html">home</a><a href="https://example.com">ext</a>`)
	write("public/logo.png", "png")

	report, err := Check(t.Context(), root)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Files)
	assert.Equal(t, 4, report.Links)
	require.Len(t, report.Broken, 1)
	assert.Equal(t, "missing.html", report.Broken[0].Link.URL)
	assert.True(t, errors.HasCategory(report.Err(), errors.CategoryBuild))
}

func TestCheckMissingRoot(t *testing.T) {
	_, err := Check(t.Context(), filepath.Join(t.TempDir(), "nope"))
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}
