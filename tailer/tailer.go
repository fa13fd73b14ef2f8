// Package tailer implements the USN Change Tailer: it opens a volume's
// change journal, tails new records from the last-seen USN, and delivers
// typed UsnChange events on a bounded channel.
package tailer

import (
	"github.com/nexusfs/nexuscore"
	"github.com/nexusfs/nexuscore/usn"
)

// ChannelBufferSize is the capacity of the channel returned by Tail.
const ChannelBufferSize = 256

func recordToChange(r usn.Record, drive string) nexuscore.UsnChange {
	return nexuscore.UsnChange{
		Path:        synthesizePath(drive, r.FileName),
		ChangeType:  r.ChangeType(),
		IsDirectory: r.IsDir(),
		Timestamp:   usn.TimestampToTime(r.TimestampWindows),
	}
}

// synthesizePath builds the provisional "<drive>:\...\<name>" path noted in
// the tailer's known path limitation: without a live reference table, only
// the filename is known, not the full ancestry.
func synthesizePath(drive, name string) string {
	return drive + `:\...\` + name
}
