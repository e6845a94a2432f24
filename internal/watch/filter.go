package watch

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	ferrors "git.home.luguber.info/inful/pagewright/internal/foundation/errors"
	"git.home.luguber.info/inful/pagewright/internal/logfields"
)

// Filter discards change events that must not trigger a build.
type Filter interface {
	Name() string
	Discard(ev ChangeEvent) bool
}

// Chain applies filters in order; the first match wins.
type Chain []Filter

// Match returns the name of the first filter that discards ev.
func (c Chain) Match(ev ChangeEvent) (string, bool) {
	for _, f := range c {
		if f.Discard(ev) {
			return f.Name(), true
		}
	}
	return "", false
}

// DirFilter discards events that target directories.
type DirFilter struct{}

func (DirFilter) Name() string                { return "directory" }
func (DirFilter) Discard(ev ChangeEvent) bool { return ev.IsDir }

// SelfFilter discards events on the watcher's own files.
type SelfFilter struct {
	Paths []string
}

func (SelfFilter) Name() string { return "self" }

func (f SelfFilter) Discard(ev ChangeEvent) bool {
	p := absClean(ev.Path)
	for _, self := range f.Paths {
		if self != "" && absClean(self) == p {
			return true
		}
	}
	return false
}

// UnderFilter discards events at or below Dir.
type UnderFilter struct {
	Dir string
}

func (UnderFilter) Name() string { return "output" }

func (f UnderFilter) Discard(ev ChangeEvent) bool {
	return f.Dir != "" && within(absClean(ev.Path), absClean(f.Dir))
}

// HiddenFilter discards events whose path has a segment starting with a dot.
// Segments are taken relative to Root so that a dotted parent of the project
// does not silence every event.
type HiddenFilter struct {
	Root string
}

func (HiddenFilter) Name() string { return "hidden" }

func (f HiddenFilter) Discard(ev ChangeEvent) bool {
	p := absClean(ev.Path)
	if f.Root != "" {
		if rel, err := filepath.Rel(absClean(f.Root), p); err == nil && !escapes(rel) {
			p = rel
		}
	}
	return hasHiddenSegment(p)
}

func hasHiddenSegment(p string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(p), "/") {
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

// GitignoreFilter discards events matched by the .gitignore files below Root.
type GitignoreFilter struct {
	root    string
	matcher gitignore.Matcher
}

// NewGitignoreFilter reads every .gitignore under root (and .git/info/exclude).
func NewGitignoreFilter(root string) (*GitignoreFilter, error) {
	root = absClean(root)
	patterns, err := gitignore.ReadPatterns(osfs.New(root), nil)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryWatch, "read gitignore patterns").
			WithContext("root", root).Build()
	}
	slog.Debug("Loaded gitignore patterns", logfields.Path(root), slog.Int("patterns", len(patterns)))
	return &GitignoreFilter{root: root, matcher: gitignore.NewMatcher(patterns)}, nil
}

func (*GitignoreFilter) Name() string { return "gitignore" }

func (f *GitignoreFilter) Discard(ev ChangeEvent) bool {
	rel, err := filepath.Rel(f.root, absClean(ev.Path))
	if err != nil || escapes(rel) || rel == "." {
		return false
	}
	return f.matcher.Match(strings.Split(filepath.ToSlash(rel), "/"), ev.IsDir)
}

// DefaultChain builds the mandated filters in their fixed order.
func DefaultChain(root, output string, self ...string) Chain {
	return Chain{
		DirFilter{},
		SelfFilter{Paths: self},
		UnderFilter{Dir: output},
		HiddenFilter{Root: root},
	}
}

func absClean(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && !escapes(rel)
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel)
}
