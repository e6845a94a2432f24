package site

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"git.home.luguber.info/inful/pagewright/internal/logfields"
	"git.home.luguber.info/inful/pagewright/internal/metrics"
)

// Role identifies a content tree.
type Role string

const (
	RolePages Role = "pages"
	RolePosts Role = "posts"
)

// EntryFailure records a content entry that could not be rendered or copied.
type EntryFailure struct {
	Source      string
	Destination string
	Err         error
}

// TreeReport summarizes one content tree.
type TreeReport struct {
	Role     Role
	Root     string
	Rendered int
	Copied   int
	Failures []EntryFailure
}

// Renderer writes the entries of a content tree into the output root.
type Renderer struct {
	outputRoot  string
	postsSubdir string
	fragments   Fragments
	recorder    metrics.Recorder
}

// NewRenderer creates a renderer for one build.
func NewRenderer(outputRoot, postsSubdir string, fragments Fragments, recorder metrics.Recorder) *Renderer {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Renderer{outputRoot: outputRoot, postsSubdir: postsSubdir, fragments: fragments, recorder: recorder}
}

// Destination maps a path relative to a content tree onto the output root.
func (r *Renderer) Destination(role Role, rel string) string {
	if role == RolePosts {
		return filepath.Join(r.outputRoot, r.postsSubdir, rel)
	}
	return filepath.Join(r.outputRoot, rel)
}

// IsHTML reports whether name carries the .html extension, ignoring case.
func IsHTML(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".html")
}

// RenderTree processes every file under srcRoot. Entries are independent: a
// failing entry is logged and recorded, and the walk continues. A missing
// tree renders nothing.
func (r *Renderer) RenderTree(srcRoot string, role Role) TreeReport {
	report := TreeReport{Role: role, Root: srcRoot}

	walkErr := filepath.WalkDir(srcRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == srcRoot && errors.Is(err, fs.ErrNotExist) {
				slog.Warn("Content tree not found; nothing to render", logfields.Role(string(role)), logfields.Path(srcRoot))
				return fs.SkipAll
			}
			r.fail(&report, path, "", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if path == srcRoot {
			r.fail(&report, path, "", errors.New("content tree is not a directory"))
			return fs.SkipAll
		}
		if d.Type()&fs.ModeSymlink != 0 {
			// Symlinked directories are not followed.
			if st, statErr := os.Stat(path); statErr == nil && st.IsDir() {
				return nil
			}
		}

		rel, err := filepath.Rel(srcRoot, path)
		if err != nil {
			r.fail(&report, path, "", err)
			return nil
		}
		dst := r.Destination(role, rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			r.fail(&report, path, dst, err)
			return nil
		}

		if IsHTML(d.Name()) {
			if err := r.renderHTML(path, dst); err != nil {
				r.fail(&report, path, dst, err)
				return nil
			}
			report.Rendered++
			r.recorder.IncEntryResult(string(role), metrics.EntryRendered)
			slog.Debug("Processed", logfields.Source(path), logfields.Destination(dst))
			return nil
		}

		if err := copyFile(path, dst); err != nil {
			r.fail(&report, path, dst, err)
			return nil
		}
		report.Copied++
		r.recorder.IncEntryResult(string(role), metrics.EntryCopied)
		slog.Debug("Copied (no change)", logfields.Source(path), logfields.Destination(dst))
		return nil
	})
	if walkErr != nil {
		r.fail(&report, srcRoot, "", walkErr)
	}
	return report
}

func (r *Renderer) renderHTML(src, dst string) error {
	body, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if !utf8.Valid(body) {
		slog.Warn("Page is not valid UTF-8; wrapping raw bytes", logfields.Source(src))
	}
	return os.WriteFile(dst, []byte(r.fragments.Compose(string(body))), 0o644)
}

func (r *Renderer) fail(report *TreeReport, src, dst string, err error) {
	slog.Error("Failed to process content entry",
		logfields.Role(string(report.Role)), logfields.Source(src), logfields.Destination(dst), logfields.Error(err))
	report.Failures = append(report.Failures, EntryFailure{Source: src, Destination: dst, Err: err})
	r.recorder.IncEntryResult(string(report.Role), metrics.EntryFailed)
}
