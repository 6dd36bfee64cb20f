package utils

import (
	"errors"
	"io/fs"
	"os"

	"github.com/otiai10/copy"
)

func copyOptions() copy.Options {
	return copy.Options{
		OnSymlink: func(string) copy.SymlinkAction {
			return copy.Deep
		},
		PreserveTimes: true,
	}
}

// CopyFile copies src to dst, following symlinks and preserving the mode and
// modification time of src.
func CopyFile(src, dst string) error {
	// Replace instead of writing through an existing link or read-only file
	if err := os.Remove(dst); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return copy.Copy(src, dst, copyOptions())
}

// CopyTree copies the contents of src into dst, creating directories as
// needed. Symlinked files and directories are copied as their targets.
func CopyTree(src, dst string) error {
	if _, err := os.Stat(src); err != nil {
		return err
	}

	return copy.Copy(src, dst, copyOptions())
}

// ExtractFS writes the contents of an embedded tree into dir. The copies are
// left writable so that dir can be removed again.
func ExtractFS(fsys fs.FS, dir string) error {
	return copy.Copy(".", dir, copy.Options{
		FS:                fsys,
		PermissionControl: copy.AddPermission(0o200),
	})
}
