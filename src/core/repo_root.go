package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JetBrains/android-sub097/src/fs"
)

// repoRootMarkers are the files that identify the root of a repo, in addition to the config file.
var repoRootMarkers = []string{ConfigFileName, "WORKSPACE", "WORKSPACE.bazel", "MODULE.bazel"}

// FindRepoRoot walks upwards from the given directory looking for the root of the repo.
// It returns the root and the package the directory corresponds to within it.
func FindRepoRoot(dir string) (string, string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", "", err
	}
	root, found := fs.FindAncestor(dir, repoRootMarkers...)
	if !found {
		return "", "", fmt.Errorf("couldn't locate the repo root above %s; expected one of %s", dir, strings.Join(repoRootMarkers, ", "))
	}
	rel, _ := filepath.Rel(root, dir)
	if rel == "." {
		rel = ""
	}
	log.Debug("Found repo root at %s", root)
	return root, filepath.ToSlash(rel), nil
}

// FindRepoRootFromWorkingDir is like FindRepoRoot but starts from the current directory.
func FindRepoRootFromWorkingDir() (string, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", "", err
	}
	return FindRepoRoot(dir)
}
