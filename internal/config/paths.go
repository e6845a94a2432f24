package config

import (
	"net"
	"path/filepath"
	"strconv"
)

// Fixed input names under the project root.
const (
	LayoutDir  = "layout"
	HeadFile   = "head.html"
	HeaderFile = "header.html"
	FooterFile = "footer.html"
	FootFile   = "foot.html"
	PagesDir   = "pages"
	PostsDir   = "posts"
	PublicDir  = "public"
)

// Paths is the resolved filesystem layout of a project.
type Paths struct {
	Root        string
	Head        string
	Header      string
	Footer      string
	Foot        string
	Pages       string
	Posts       string
	Public      string
	Output      string
	PostsSubdir string
}

// Paths resolves input and output locations. A relative output directory is
// taken relative to the project root.
func (c *Config) Paths() Paths {
	root := c.Project.Root
	layout := filepath.Join(root, LayoutDir)
	out := c.Output.Directory
	if !filepath.IsAbs(out) {
		out = filepath.Join(root, out)
	}
	return Paths{
		Root:        root,
		Head:        filepath.Join(layout, HeadFile),
		Header:      filepath.Join(layout, HeaderFile),
		Footer:      filepath.Join(layout, FooterFile),
		Foot:        filepath.Join(layout, FootFile),
		Pages:       filepath.Join(root, PagesDir),
		Posts:       filepath.Join(root, PostsDir),
		Public:      filepath.Join(root, PublicDir),
		Output:      out,
		PostsSubdir: c.Output.PostsSubdir,
	}
}

// Addr is the host:port the dev server binds to.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
