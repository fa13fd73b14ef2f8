// Package volume implements the Volume Enumerator: opening a raw NTFS
// volume handle, driving the MFT enumeration IOCTL loop, and resolving the
// accumulated reference table into FileEntry values.
package volume

import (
	"github.com/nexusfs/nexuscore"
	"github.com/nexusfs/nexuscore/pathresolve"
	"github.com/nexusfs/nexuscore/usn"
)

// pending is one accumulated (reference, parent, partial entry) tuple from
// the enumeration loop, awaiting path resolution.
type pending struct {
	ref    nexuscore.FileReference
	parent nexuscore.FileReference
	entry  nexuscore.FileEntry
}

// buildEntries drives path resolution over every pending tuple, in the
// shape shared by the Windows implementation and any test double: resolve
// each tuple's absolute path and parent path via the Path Resolver, and drop
// entries whose resolved path is empty.
func buildEntries(table nexuscore.ReferenceTable, drive string, items []pending) []nexuscore.FileEntry {
	resolver := pathresolve.New(table, drive)
	out := make([]nexuscore.FileEntry, 0, len(items))
	for _, it := range items {
		path := resolver.Resolve(it.ref)
		if path == "" {
			continue
		}
		parentPath := resolver.Resolve(it.parent)

		e := it.entry
		e.Path = path
		e.Parent = parentPath
		out = append(out, e)
	}
	return out
}

// recordToPending converts one parsed USN record from the MFT-enumeration
// IOCTL into a pending tuple and its ReferenceTable entry. size is always 0:
// the enumeration IOCTL does not report it.
func recordToPending(r usn.Record, drive string) pending {
	name := r.FileName
	ext := extensionOf(name, r.IsDir())

	return pending{
		ref:    r.FileReference,
		parent: r.ParentFileReference,
		entry: nexuscore.FileEntry{
			Name:      name,
			Extension: ext,
			Drive:     drive,
			Size:      0,
			IsDir:     r.IsDir(),
			IsHidden:  r.IsHidden(),
			IsSystem:  r.IsSystem(),
		},
	}
}

func extensionOf(name string, isDir bool) string {
	if isDir {
		return ""
	}
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			if i == 0 {
				return ""
			}
			return toLower(name[i+1:])
		}
		if name[i] == '\\' || name[i] == '/' {
			break
		}
	}
	return ""
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
