package usn

import "time"

// windowsEpochOffset is the number of 100ns ticks between the Windows
// FILETIME epoch (1601-01-01) and the Unix epoch (1970-01-01).
const windowsEpochOffset = 116444736000000000

// TimestampToTime converts a FILETIME-style tick count, as found in
// Record.TimestampWindows, to a UTC time.Time. A zero or negative tick count
// yields the zero time.
func TimestampToTime(ticks int64) time.Time {
	if ticks <= 0 {
		return time.Time{}
	}
	unixTicks := ticks - windowsEpochOffset
	return time.Unix(0, unixTicks*100).UTC()
}
