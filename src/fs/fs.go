// Package fs contains filesystem helpers.
package fs

import (
	"os"
	"path/filepath"
)

// DirPermissions are the default permission bits we apply to directories.
const DirPermissions = os.ModeDir | 0775

// EnsureDir ensures that the directory of the given file has been created.
func EnsureDir(filename string) error {
	return os.MkdirAll(filepath.Dir(filename), DirPermissions)
}

// PathExists returns true if the given path exists, as a file or a directory.
func PathExists(filename string) bool {
	_, err := os.Lstat(filename)
	return err == nil
}

// FindAncestor walks upwards from dir and returns the first directory containing any of the given
// names, or false if there isn't one. dir should be absolute.
func FindAncestor(dir string, names ...string) (string, bool) {
	for {
		for _, name := range names {
			if PathExists(filepath.Join(dir, name)) {
				return dir, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
