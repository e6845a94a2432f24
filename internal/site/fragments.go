package site

import (
	"log/slog"
	"os"
	"unicode/utf8"

	"git.home.luguber.info/inful/pagewright/internal/logfields"
)

// FragmentRole names one of the four layout fragments.
type FragmentRole string

const (
	FragmentHead   FragmentRole = "head"
	FragmentHeader FragmentRole = "header"
	FragmentFooter FragmentRole = "footer"
	FragmentFoot   FragmentRole = "foot"
)

// LayoutPaths maps each fragment role to its file.
type LayoutPaths struct {
	Head   string
	Header string
	Footer string
	Foot   string
}

// Fragment is the outcome of loading one layout file: its text, or empty text
// plus the load error.
type Fragment struct {
	Role FragmentRole
	Path string
	Text string
	Err  error
}

// Missing reports whether the fragment could not be read.
func (f Fragment) Missing() bool { return f.Err != nil }

// Empty reports whether the fragment has no content, for whatever reason.
func (f Fragment) Empty() bool { return f.Text == "" }

// Fragments holds the loaded layout for one build.
type Fragments struct {
	Head   Fragment
	Header Fragment
	Footer Fragment
	Foot   Fragment
}

// LoadFragments reads all four layout files. A file that cannot be read yields
// an empty fragment and an error log; loading never aborts, the caller decides
// which empty fragments are fatal.
func LoadFragments(paths LayoutPaths) Fragments {
	return Fragments{
		Head:   loadFragment(FragmentHead, paths.Head),
		Header: loadFragment(FragmentHeader, paths.Header),
		Footer: loadFragment(FragmentFooter, paths.Footer),
		Foot:   loadFragment(FragmentFoot, paths.Foot),
	}
}

func loadFragment(role FragmentRole, path string) Fragment {
	f := Fragment{Role: role, Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("Failed to read layout fragment", "fragment", string(role), logfields.Path(path), logfields.Error(err))
		f.Err = err
		return f
	}
	if !utf8.Valid(data) {
		slog.Warn("Layout fragment is not valid UTF-8; using raw bytes", "fragment", string(role), logfields.Path(path))
	}
	f.Text = string(data)
	return f
}

// All returns the fragments in composition order.
func (fs Fragments) All() []Fragment {
	return []Fragment{fs.Head, fs.Header, fs.Footer, fs.Foot}
}

// Compose wraps body with the layout. The order is fixed.
func (fs Fragments) Compose(body string) string {
	return fs.Head.Text + "\n" + fs.Header.Text + "\n" + body + "\n" + fs.Footer.Text + "\n" + fs.Foot.Text
}
