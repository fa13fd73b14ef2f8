//go:build !windows

package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nexusfs/nexuscore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsCreate(t *testing.T) {
	dir := t.TempDir()

	w, err := New(nil)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(dir))

	newFile := filepath.Join(dir, "new.txt")
	require.NoError(t, os.WriteFile(newFile, []byte("x"), 0o644))

	select {
	case change := <-w.Changes:
		assert.Equal(t, nexuscore.ChangeCreated, change.ChangeType)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a create event within the poll interval")
	}
}

func TestRawKindToChangeType(t *testing.T) {
	assert.Equal(t, nexuscore.ChangeCreated, rawKindToChangeType(rawCreate))
	assert.Equal(t, nexuscore.ChangeModified, rawKindToChangeType(rawWrite))
	assert.Equal(t, nexuscore.ChangeDeleted, rawKindToChangeType(rawRemove))
	assert.Equal(t, nexuscore.ChangeRenamed, rawKindToChangeType(rawRename))
}
