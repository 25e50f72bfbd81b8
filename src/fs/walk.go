// Package fs contains filesystem helpers.
package fs

import (
	"os"

	"github.com/karrick/godirwalk"
)

// SkipDir can be returned from a Walk callback on a directory to skip its contents.
var SkipDir = godirwalk.SkipThis

// Walk implements an equivalent to filepath.Walk.
// It's implemented over github.com/karrick/godirwalk but the provided interface doesn't use that
// to make it a little easier to handle. Symlinks are not followed.
func Walk(rootPath string, callback func(name string, isDir bool) error) error {
	// Compatibility with filepath.Walk which allows passing a file as the root argument.
	if info, err := os.Lstat(rootPath); err != nil {
		return err
	} else if !info.IsDir() {
		return callback(rootPath, false)
	}
	return godirwalk.Walk(rootPath, &godirwalk.Options{
		Callback: func(name string, info *godirwalk.Dirent) error {
			return callback(name, info.IsDir())
		},
		Unsorted: true,
	})
}
