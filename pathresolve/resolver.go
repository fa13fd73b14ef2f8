// Package pathresolve turns a ReferenceTable plus a target FileReference
// into an absolute path, via iterative ancestor-chain traversal with
// memoization and cycle protection.
package pathresolve

import (
	"strings"

	"github.com/nexusfs/nexuscore"
)

// Separator is the path separator used when joining resolved names. NTFS
// volumes always use backslash regardless of host OS.
const Separator = `\`

// inProgress is a sentinel stored in the memo cache while a reference is
// being resolved, so a cycle resolves to the empty string instead of
// recursing forever.
const inProgress = "\x00in-progress\x00"

// Resolver resolves FileReferences to absolute paths against one
// ReferenceTable, memoizing completed paths for the lifetime of one
// enumeration pass.
type Resolver struct {
	table nexuscore.ReferenceTable
	cache map[nexuscore.FileReference]string
}

// New builds a Resolver over table, after seeding the root reference with
// the synthesized volume-root name "<drive>:" and sentinel parent 0, per the
// root-directory tie-break.
func New(table nexuscore.ReferenceTable, drive string) *Resolver {
	if table == nil {
		table = make(nexuscore.ReferenceTable)
	}
	table[nexuscore.RootReference] = nexuscore.ReferenceEntry{
		Name:   drive + ":",
		Parent: 0,
	}
	return &Resolver{
		table: table,
		cache: make(map[nexuscore.FileReference]string),
	}
}

// Resolve returns the absolute path for ref, or "" if the reference is
// unknown, mid-resolution (a cycle), or the chain never reaches the root.
func (r *Resolver) Resolve(ref nexuscore.FileReference) string {
	ref = ref.Masked()
	if p, ok := r.cache[ref]; ok {
		if p == inProgress {
			return ""
		}
		return p
	}

	var names []string                 // nearest-to-target first; reversed before joining
	var chain []nexuscore.FileReference // chain[i] is the node names[i] belongs to
	base := ""
	resolved := false
	visited := make(map[nexuscore.FileReference]bool)
	cur := ref

	for {
		if cur != ref {
			if cached, ok := r.cache[cur]; ok {
				if cached == inProgress || cached == "" {
					break // cycle, or an ancestor already known to be unresolved
				}
				base = cached
				resolved = true
				break
			}
		}
		if visited[cur] {
			break // cycle among uncached references: unresolved
		}
		visited[cur] = true
		r.cache[cur] = inProgress

		entry, ok := r.table[cur]
		if !ok {
			break // dangling reference: unresolved
		}
		names = append(names, entry.Name)
		chain = append(chain, cur)

		if cur == nexuscore.RootReference || entry.Parent == 0 || entry.Parent == cur {
			resolved = true
			break
		}
		cur = entry.Parent
	}

	if !resolved {
		// Every visited node was an in-progress dead end; release them all
		// so a later, independent resolution can retry from scratch.
		for c := range visited {
			delete(r.cache, c)
		}
		r.cache[ref] = ""
		return ""
	}

	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
		chain[i], chain[j] = chain[j], chain[i]
	}

	// Cache the resolved path for every ancestor visited this pass, not just
	// ref, so a sibling sharing a prefix hits the cache instead of redoing
	// the upward walk.
	path := base
	for i, name := range names {
		switch {
		case path == "":
			path = name
		case strings.HasSuffix(path, Separator):
			path += name
		default:
			path += Separator + name
		}
		r.cache[chain[i]] = path
	}

	return path
}
