package site

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/pagewright/internal/foundation/errors"
)

// ResetOutput removes root and everything below it, then recreates root and
// root/postsSubdir. Any failure is fatal: a half-removed tree must never be
// reported as a clean output root.
func ResetOutput(root, postsSubdir string) error {
	info, err := os.Lstat(root)
	switch {
	case err == nil && !info.IsDir():
		return ferrors.FileSystemError("output root exists and is not a directory").
			Fatal().WithContext("path", root).Build()
	case err == nil:
		if err := os.RemoveAll(root); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "remove output root").
				Fatal().WithContext("path", root).Build()
		}
	case !errors.Is(err, fs.ErrNotExist):
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "inspect output root").
			Fatal().WithContext("path", root).Build()
	}

	posts := filepath.Join(root, postsSubdir)
	if err := os.MkdirAll(posts, 0o755); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "create output root").
			Fatal().WithContext("path", posts).Build()
	}
	return nil
}
