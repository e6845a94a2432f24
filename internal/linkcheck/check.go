package linkcheck

import (
	"context"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/pagewright/internal/foundation/errors"
	"git.home.luguber.info/inful/pagewright/internal/logfields"
)

// BrokenLink is an internal reference that does not resolve under the root.
type BrokenLink struct {
	Source string // HTML file containing the link
	Link   Link
	Target string // resolved filesystem path
}

// Report summarizes a link check.
type Report struct {
	Files  int
	Links  int
	Broken []BrokenLink
}

// Err returns a build-category error when broken links were found.
func (r *Report) Err() error {
	if len(r.Broken) == 0 {
		return nil
	}
	return errors.NewError(errors.CategoryBuild, "broken internal links").
		WithContext("broken", len(r.Broken)).
		WithContext("files", r.Files).
		Build()
}

// Check parses every .html file under root and resolves its internal links.
func Check(ctx context.Context, root string) (*Report, error) {
	root = filepath.Clean(root)
	if st, err := os.Stat(root); err != nil || !st.IsDir() {
		return nil, errors.NewError(errors.CategoryNotFound, "output root not found").
			WithContext("path", root).Build()
	}

	report := &Report{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".html") {
			return nil
		}

		links, err := ExtractLinks(path)
		if err != nil {
			slog.Warn("Skipping unparsable HTML", logfields.Path(path), logfields.Error(err))
			return nil
		}
		report.Files++
		for _, l := range links {
			target, internal := resolve(root, path, l.URL)
			if !internal {
				continue
			}
			report.Links++
			if !exists(target) {
				slog.Warn("Broken link", logfields.Source(path), slog.String("href", l.URL), logfields.Destination(target))
				report.Broken = append(report.Broken, BrokenLink{Source: path, Link: l, Target: target})
			}
		}
		return nil
	})
	if err != nil {
		return report, errors.WrapError(err, errors.CategoryFileSystem, "walk output root").
			WithContext("path", root).Build()
	}
	return report, nil
}

// resolve maps a reference to a path under root. References with a scheme or
// host, and fragment-only references, are not internal.
func resolve(root, source, ref string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil || u.Scheme != "" || u.Host != "" || u.Opaque != "" || u.Path == "" {
		return "", false
	}
	if strings.HasPrefix(u.Path, "/") {
		return filepath.Join(root, filepath.FromSlash(u.Path)), true
	}
	return filepath.Join(filepath.Dir(source), filepath.FromSlash(u.Path)), true
}

func exists(target string) bool {
	st, err := os.Stat(target)
	if err != nil {
		return false
	}
	if !st.IsDir() {
		return true
	}
	_, err = os.Stat(filepath.Join(target, "index.html"))
	return err == nil
}
