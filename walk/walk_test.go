package walk

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkVisitsAllEntries(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b.log"), []byte("yy"), 0o644))

	w := New(nil, 4, nil)
	entries, err := w.Walk(context.Background(), root)
	require.NoError(t, err)

	byName := map[string]bool{}
	for _, e := range entries {
		byName[e.Name] = true
		if e.Name == "b.log" {
			assert.Equal(t, "log", e.Extension)
			assert.Equal(t, uint64(2), e.Size)
		}
	}
	assert.True(t, byName["a.txt"])
	assert.True(t, byName["sub"])
	assert.True(t, byName["b.log"])
}

func TestExtensionOfLowercases(t *testing.T) {
	assert.Equal(t, "pdf", extensionOf("Report.PDF"))
	assert.Equal(t, "", extensionOf("noext"))
	assert.Equal(t, "", extensionOf(".hidden"))
}
