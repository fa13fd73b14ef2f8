// Package nexuscore holds the data model shared by every subsystem: file
// entries, file references, and USN change events.
package nexuscore

import "time"

// FileReference is an NTFS 64-bit file reference. The low 48 bits identify a
// file record; the high 16 bits are a reuse/sequence counter. Callers almost
// always want the masked form for table lookups, see Masked.
type FileReference uint64

const fileReferenceMask = 0x0000FFFFFFFFFFFF

// RootReference is the well-known file reference of a volume's root directory.
const RootReference FileReference = 5

// Masked returns the low 48 bits of the reference, which is what the Path
// Resolver and ReferenceTable key on.
func (r FileReference) Masked() FileReference {
	return r & fileReferenceMask
}

// ReferenceEntry is one row of a ReferenceTable: a record's name and the
// masked reference of its parent.
type ReferenceEntry struct {
	Name   string
	Parent FileReference
}

// ReferenceTable maps a masked file reference to its name and parent
// reference. It is populated during one enumeration pass and may be dropped
// once every entry's path has been resolved.
type ReferenceTable map[FileReference]ReferenceEntry

// FileEntry is the canonical observable unit produced by every enumeration
// path (MFT, fallback walk) and stored in the Shared Entry Map.
type FileEntry struct {
	Path      string
	Name      string
	Extension string
	Parent    string
	Drive     string

	Size uint64

	Created  time.Time
	Modified time.Time
	Accessed time.Time

	IsDir    bool
	IsHidden bool
	IsSystem bool

	ContentHash string
}

// ChangeType classifies a UsnChange.
type ChangeType int

const (
	ChangeUnknown ChangeType = iota
	ChangeCreated
	ChangeDeleted
	ChangeModified
	ChangeRenamed
	ChangeSecurity
)

func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeDeleted:
		return "deleted"
	case ChangeModified:
		return "modified"
	case ChangeRenamed:
		return "renamed"
	case ChangeSecurity:
		return "security_change"
	default:
		return "unknown"
	}
}

// UsnChange is one typed, provisional change event delivered by the USN
// Change Tailer or the fallback watch façade.
type UsnChange struct {
	Path        string
	ChangeType  ChangeType
	OldName     string // reserved for ChangeRenamed; left empty, since rename pairs are not correlated
	IsDirectory bool
	Timestamp   time.Time
}
