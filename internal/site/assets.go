package site

import (
	"io"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/pagewright/internal/foundation/errors"
)

// CopyPublic copies the src tree to outputRoot/<base of src>. The copy fails as
// a unit when the destination already exists.
func CopyPublic(src, outputRoot string) (string, error) {
	dst := filepath.Join(outputRoot, filepath.Base(filepath.Clean(src)))
	if _, err := os.Lstat(dst); err == nil {
		return dst, ferrors.FileSystemError("public destination already exists").
			WithContext("path", dst).Build()
	}
	if err := CopyDir(src, dst); err != nil {
		return dst, ferrors.WrapError(err, ferrors.CategoryFileSystem, "copy public tree").
			WithContext("source", src).WithContext("destination", dst).Build()
	}
	return dst, nil
}

// CopyDir recursively copies a directory tree, preserving file modes.
func CopyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		info, err := os.Stat(srcPath)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if err := CopyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}

// copyFile copies the bytes of src to dst and carries over the permission bits.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return err
	}
	if err := dstFile.Close(); err != nil {
		return err
	}
	return os.Chmod(dst, info.Mode().Perm())
}
