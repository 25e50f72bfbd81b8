package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRepoRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "java/com/foo"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), nil, 0644))
	root, pkg, err := FindRepoRoot(filepath.Join(dir, "java/com/foo"))
	require.NoError(t, err)
	assert.Equal(t, dir, root)
	assert.Equal(t, "java/com/foo", pkg)

	root, pkg, err = FindRepoRoot(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, root)
	assert.Equal(t, "", pkg)
}
