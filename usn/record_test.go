package usn

import (
	"encoding/binary"
	"testing"

	"github.com/nexusfs/nexuscore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReasonToChangeType(t *testing.T) {
	cases := []struct {
		reason uint32
		want   nexuscore.ChangeType
	}{
		{0x00000100, nexuscore.ChangeCreated},
		{0x00000200, nexuscore.ChangeDeleted},
		{0x00000006, nexuscore.ChangeModified},
		{0x00001000, nexuscore.ChangeRenamed},
		{0x00000000, nexuscore.ChangeUnknown},
	}
	for _, c := range cases {
		r := Record{Reason: c.reason}
		assert.Equal(t, c.want, r.ChangeType())
	}
}

func TestRecordAttributes(t *testing.T) {
	r := Record{FileAttributes: attrDirectory | attrHidden}
	assert.True(t, r.IsDir())
	assert.True(t, r.IsHidden())
	assert.False(t, r.IsSystem())
}

// buildRecord packs one record matching the fixed header layout described by
// the Journal Record Parser, with name appended after the header.
func buildRecord(t *testing.T, fileRef, parentRef uint64, reason uint32, name string) []byte {
	t.Helper()
	nameUTF16 := utf16Encode(name)
	recordLen := uint32(headerSize + len(nameUTF16))
	buf := make([]byte, recordLen)
	binary.LittleEndian.PutUint32(buf[0:], recordLen)
	binary.LittleEndian.PutUint64(buf[8:], fileRef)
	binary.LittleEndian.PutUint64(buf[16:], parentRef)
	binary.LittleEndian.PutUint32(buf[40:], reason)
	binary.LittleEndian.PutUint16(buf[56:], uint16(len(nameUTF16)))
	binary.LittleEndian.PutUint16(buf[58:], uint16(headerSize))
	copy(buf[headerSize:], nameUTF16)
	return buf
}

func utf16Encode(s string) []byte {
	out := make([]byte, 0, len(s)*2)
	for _, r := range s {
		out = binary.LittleEndian.AppendUint16(out, uint16(r))
	}
	return out
}

func TestParseRecordsWellFormed(t *testing.T) {
	rec1 := buildRecord(t, 100, 5, 0x00000100, "foo.txt")
	rec2 := buildRecord(t, 101, 5, 0x00000200, "bar.txt")
	buf := append(rec1, rec2...)

	got := ParseRecords(buf)
	require.Len(t, got, 2)
	assert.Equal(t, "foo.txt", got[0].FileName)
	assert.Equal(t, nexuscore.ChangeCreated, got[0].ChangeType())
	assert.Equal(t, "bar.txt", got[1].FileName)
	assert.Equal(t, nexuscore.ChangeDeleted, got[1].ChangeType())
}

func TestParseRecordsStopsOnZeroLength(t *testing.T) {
	buf := make([]byte, headerSize+8)
	got := ParseRecords(buf)
	assert.Empty(t, got)
}

func TestParseRecordsSkipsBadNameBounds(t *testing.T) {
	rec := buildRecord(t, 1, 5, 0x00000100, "ok.txt")
	// Corrupt the name length so it overruns the record.
	binary.LittleEndian.PutUint16(rec[56:], 0xFFFF)
	good := buildRecord(t, 2, 5, 0x00000200, "next.txt")
	buf := append(rec, good...)

	got := ParseRecords(buf)
	require.Len(t, got, 1)
	assert.Equal(t, "next.txt", got[0].FileName)
}

func TestParseRecordsNeverReadsPastBuffer(t *testing.T) {
	// Truncated buffer: shorter than one fixed record header.
	buf := make([]byte, headerSize-1)
	assert.NotPanics(t, func() {
		got := ParseRecords(buf)
		assert.Empty(t, got)
	})
}
