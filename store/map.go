// Package store implements the Shared Entry Map: a concurrent, deduplicated
// mapping from path to FileEntry used by the orchestrator, the search
// index, duplicate-group discovery, and the foreign boundary.
package store

import (
	"sort"
	"sync"

	"github.com/nexusfs/nexuscore"
)

// Map is a concurrent path -> FileEntry store. Insertion of a duplicate
// path replaces the prior entry but keeps its original position; iteration
// is safe during insertion and walks entries in first-inserted order.
type Map struct {
	mu      sync.RWMutex
	entries map[string]nexuscore.FileEntry
	order   []string // insertion order, first-seen path wins its slot
}

func New() *Map {
	return &Map{entries: make(map[string]nexuscore.FileEntry)}
}

// Insert replaces (or creates) the entry for e.Path.
func (m *Map) Insert(e nexuscore.FileEntry) {
	m.mu.Lock()
	if _, exists := m.entries[e.Path]; !exists {
		m.order = append(m.order, e.Path)
	}
	m.entries[e.Path] = e
	m.mu.Unlock()
}

// InsertAll inserts every entry in one critical section.
func (m *Map) InsertAll(entries []nexuscore.FileEntry) {
	m.mu.Lock()
	for _, e := range entries {
		if _, exists := m.entries[e.Path]; !exists {
			m.order = append(m.order, e.Path)
		}
		m.entries[e.Path] = e
	}
	m.mu.Unlock()
}

func (m *Map) Get(path string) (nexuscore.FileEntry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[path]
	return e, ok
}

func (m *Map) Delete(path string) {
	m.mu.Lock()
	if _, exists := m.entries[path]; exists {
		delete(m.entries, path)
		for i, p := range m.order {
			if p == path {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	}
	m.mu.Unlock()
}

func (m *Map) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Clear removes every entry.
func (m *Map) Clear() {
	m.mu.Lock()
	m.entries = make(map[string]nexuscore.FileEntry)
	m.order = nil
	m.mu.Unlock()
}

// Snapshot returns a stable copy of every entry in insertion order, safe to
// range over without holding the map's lock.
func (m *Map) Snapshot() []nexuscore.FileEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]nexuscore.FileEntry, 0, len(m.order))
	for _, p := range m.order {
		if e, ok := m.entries[p]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Each calls fn for every entry, in insertion order, under a read lock. fn
// must not call back into the Map.
func (m *Map) Each(fn func(nexuscore.FileEntry)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.order {
		if e, ok := m.entries[p]; ok {
			fn(e)
		}
	}
}

// DuplicateGroups buckets files (directories excluded) by size, restricted
// to entries with size >= minSize, and returns the buckets that contain two
// or more entries.
func (m *Map) DuplicateGroups(minSize uint64) [][]nexuscore.FileEntry {
	m.mu.RLock()
	buckets := make(map[uint64][]nexuscore.FileEntry)
	for _, e := range m.entries {
		if e.IsDir || e.Size < minSize {
			continue
		}
		buckets[e.Size] = append(buckets[e.Size], e)
	}
	m.mu.RUnlock()

	sizes := make([]uint64, 0, len(buckets))
	for size, group := range buckets {
		if len(group) >= 2 {
			sizes = append(sizes, size)
		}
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })

	out := make([][]nexuscore.FileEntry, 0, len(sizes))
	for _, size := range sizes {
		out = append(out, buckets[size])
	}
	return out
}

// Stats computes aggregate statistics from the current contents.
func (m *Map) Stats() nexuscore.IndexStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var s nexuscore.IndexStats
	for _, e := range m.entries {
		if e.IsDir {
			s.TotalDirs++
		} else {
			s.TotalFiles++
			s.TotalSize += e.Size
		}
	}
	return s
}
