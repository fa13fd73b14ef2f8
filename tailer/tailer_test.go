package tailer

import (
	"testing"

	"github.com/nexusfs/nexuscore"
	"github.com/nexusfs/nexuscore/usn"
	"github.com/stretchr/testify/assert"
)

func TestRecordToChangeSynthesizesProvisionalPath(t *testing.T) {
	r := usn.Record{FileName: "report.docx", Reason: 0x00000100, FileAttributes: 0}
	c := recordToChange(r, "D")
	assert.Equal(t, `D:\...\report.docx`, c.Path)
	assert.Equal(t, nexuscore.ChangeCreated, c.ChangeType)
	assert.False(t, c.IsDirectory)
}

func TestSynthesizePath(t *testing.T) {
	assert.Equal(t, `C:\...\x.txt`, synthesizePath("C", "x.txt"))
}
