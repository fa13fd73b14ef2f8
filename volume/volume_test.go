package volume

import (
	"testing"

	"github.com/nexusfs/nexuscore"
	"github.com/nexusfs/nexuscore/usn"
	"github.com/stretchr/testify/assert"
)

func TestRecordToPendingExtractsExtension(t *testing.T) {
	r := usn.Record{FileName: "Report.PDF", FileAttributes: 0}
	p := recordToPending(r, "C")
	assert.Equal(t, "pdf", p.entry.Extension)
	assert.False(t, p.entry.IsDir)
}

func TestRecordToPendingDirHasNoExtension(t *testing.T) {
	r := usn.Record{FileName: "Documents", FileAttributes: 0x10}
	p := recordToPending(r, "C")
	assert.Equal(t, "", p.entry.Extension)
	assert.True(t, p.entry.IsDir)
}

func TestBuildEntriesDropsUnresolvable(t *testing.T) {
	table := nexuscore.ReferenceTable{
		10: {Name: "dir1", Parent: nexuscore.RootReference},
	}
	items := []pending{
		{ref: 10, parent: nexuscore.RootReference, entry: nexuscore.FileEntry{Name: "dir1", IsDir: true}},
		{ref: 999, parent: 10, entry: nexuscore.FileEntry{Name: "orphan.txt"}},
	}
	out := buildEntries(table, "C", items)
	assert.Len(t, out, 1)
	assert.Equal(t, `C:\dir1`, out[0].Path)
}
