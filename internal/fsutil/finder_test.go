package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFilesByExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.xml", "a.xml", "notes.txt", "c.xml.bak"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested.xml"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested.xml", "d.xml"), nil, 0o644))

	files, err := ListFilesByExtension(dir, ".xml")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.xml"), filepath.Join(dir, "b.xml")}, files)
}

func TestListFilesByExtension_MissingDir(t *testing.T) {
	files, err := ListFilesByExtension(filepath.Join(t.TempDir(), "absent"), ".xml")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestListFilesByExtension_EmptyExtensionPanics(t *testing.T) {
	assert.Panics(t, func() { _, _ = ListFilesByExtension(t.TempDir(), "") })
}
