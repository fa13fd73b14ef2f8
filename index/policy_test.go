package index

import (
	"context"
	"testing"

	"github.com/nexusfs/nexuscore"
	"github.com/nexusfs/nexuscore/store"
	"github.com/stretchr/testify/assert"
)

func TestInclusionPolicyExcludeDirs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExcludeDirs = []string{"Windows"}
	e := nexuscore.FileEntry{Path: `C:\Windows\x`, IsHidden: false, IsSystem: false}
	assert.False(t, cfg.include(e))
}

func TestInclusionPolicyMonotoneHidden(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExcludeDirs = nil
	cfg.IncludeHidden = false
	hidden := nexuscore.FileEntry{Path: `C:\a`, IsHidden: true}
	assert.False(t, cfg.include(hidden))
	cfg.IncludeHidden = true
	assert.True(t, cfg.include(hidden))
}

func TestInclusionPolicyExtensionFilterBypassesDirs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExcludeDirs = nil
	cfg.Extensions = []string{"txt"}
	dir := nexuscore.FileEntry{Path: `C:\docs`, IsDir: true}
	assert.True(t, cfg.include(dir))
	file := nexuscore.FileEntry{Path: `C:\docs\a.pdf`, Extension: "pdf"}
	assert.False(t, cfg.include(file))
}

func TestIndexAllEmptyDriveSet(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Drives = nil
	o := New(cfg, store.New(), nil)
	entries, stats := o.IndexAll(context.Background())
	assert.Empty(t, entries)
	assert.Equal(t, uint64(0), stats.TotalFiles)
	assert.GreaterOrEqual(t, stats.IndexTimeMs, int64(0))
}
