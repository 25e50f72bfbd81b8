package fs

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(name), 0755))
	require.NoError(t, os.WriteFile(name, nil, 0644))
}

func TestWalk(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "BUILD"))
	writeFile(t, filepath.Join(root, "a", "b", "Foo.java"))
	writeFile(t, filepath.Join(root, ".git", "config"))
	var files []string
	err := Walk(root, func(name string, isDir bool) error {
		if isDir && filepath.Base(name) == ".git" {
			return SkipDir
		}
		if !isDir {
			rel, _ := filepath.Rel(root, name)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	assert.NoError(t, err)
	sort.Strings(files)
	assert.Equal(t, []string{"a/BUILD", "a/b/Foo.java"}, files)
}

func TestWalkFile(t *testing.T) {
	root := t.TempDir()
	name := filepath.Join(root, "BUILD")
	writeFile(t, name)
	var called []string
	assert.NoError(t, Walk(name, func(name string, isDir bool) error {
		assert.False(t, isDir)
		called = append(called, name)
		return nil
	}))
	assert.Equal(t, []string{name}, called)
}

func TestWalkMissing(t *testing.T) {
	assert.Error(t, Walk(filepath.Join(t.TempDir(), "nope"), func(string, bool) error { return nil }))
}
