package hash

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesEqual(t *testing.T) {
	dir := t.TempDir()
	f1 := filepath.Join(dir, "f1")
	f2 := filepath.Join(dir, "f2")
	f3 := filepath.Join(dir, "f3")
	require.NoError(t, os.WriteFile(f1, []byte("Same content"), 0o644))
	require.NoError(t, os.WriteFile(f2, []byte("Same content"), 0o644))
	require.NoError(t, os.WriteFile(f3, []byte("Different content"), 0o644))

	var d Default
	eq12, err := d.FilesEqual(f1, f2)
	require.NoError(t, err)
	assert.True(t, eq12)

	eq13, err := d.FilesEqual(f1, f3)
	require.NoError(t, err)
	assert.False(t, eq13)
}

func TestQuickHashDeterministic(t *testing.T) {
	dir := t.TempDir()
	f1 := filepath.Join(dir, "f1")
	require.NoError(t, os.WriteFile(f1, []byte("hello"), 0o644))

	var d Default
	h1, err := d.QuickHash(f1)
	require.NoError(t, err)
	h2, err := d.QuickHash(f1)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}
