// Package ffi exposes nexuscore across a synchronous, thread-safe foreign
// boundary for host-language callers: sentinel return values instead of
// panics, a process-wide last-error slot, a cached search-result buffer,
// and progress counters readable without a callback.
package ffi

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/nexusfs/nexuscore"
	"github.com/nexusfs/nexuscore/hash"
	"github.com/nexusfs/nexuscore/index"
	"github.com/nexusfs/nexuscore/store"
)

// ProgressCallback is invoked with (current, total, phase) from the
// orchestrator's own goroutine tree, never from a destructor/finalizer.
type ProgressCallback func(current, total uint64, phase string)

var (
	mu               sync.RWMutex
	sharedMap        = store.New()
	orchestrator     *index.Orchestrator
	lastError        string
	hasLastError     bool
	searchResults    []nexuscore.FileEntry
	progressCallback ProgressCallback
	hasher           hash.Hasher = hash.Default{}

	progressCurrent atomic.Uint64
	progressTotal   atomic.Uint64
	indexing        atomic.Bool
	stats           nexuscore.IndexStats
	sessionID       string
)

func setError(err error) {
	mu.Lock()
	defer mu.Unlock()
	lastError = err.Error()
	hasLastError = true
}

func clearError() {
	mu.Lock()
	hasLastError = false
	lastError = ""
	mu.Unlock()
}

// Init is an idempotent readiness check: it allocates the process-wide
// orchestrator on first call and returns true on success.
func Init() bool {
	mu.Lock()
	defer mu.Unlock()
	if orchestrator == nil {
		cfg := index.DefaultConfig()
		orchestrator = index.New(cfg, sharedMap, nil)
		sessionID = uuid.NewString()
	}
	return true
}

// IndexAll runs index_all() and caches results in the Shared Entry Map.
// Returns the entry count, or -1 on error.
func IndexAll() int64 {
	if !Init() {
		return -1
	}
	indexing.Store(true)
	defer indexing.Store(false)

	reportProgress(0, 0, "enumerate")
	entries, s := orchestrator.IndexAll(context.Background())
	mu.Lock()
	stats = s
	mu.Unlock()
	reportProgress(uint64(len(entries)), uint64(len(entries)), "done")
	clearError()
	return int64(len(entries))
}

// IndexDirectory runs a fallback-walk-only index over path.
func IndexDirectory(path string) int64 {
	if !Init() {
		return -1
	}
	indexing.Store(true)
	defer indexing.Store(false)

	entries, err := orchestrator.IndexDirectory(context.Background(), path)
	if err != nil {
		setError(err)
		return -1
	}
	clearError()
	return int64(len(entries))
}

// Search performs a case-insensitive substring match on name against the
// Shared Entry Map, keeping the top max results by insertion order, and
// stashes them in the process-wide result buffer.
func Search(query string, max uint32) int64 {
	clean := sanitize(query)
	needle := strings.ToLower(clean)

	var results []nexuscore.FileEntry
	sharedMap.Each(func(e nexuscore.FileEntry) {
		if uint32(len(results)) >= max {
			return
		}
		if strings.Contains(strings.ToLower(e.Name), needle) {
			results = append(results, e)
		}
	})

	mu.Lock()
	searchResults = results
	mu.Unlock()
	if clean == query {
		clearError()
	}
	return int64(len(results))
}

// GetSearchResult returns the Nth cached result, or nil if idx is out of
// range.
func GetSearchResult(idx uint32) *nexuscore.FileEntry {
	mu.RLock()
	defer mu.RUnlock()
	if int(idx) >= len(searchResults) {
		return nil
	}
	e := searchResults[idx]
	return &e
}

// ClearSearchResults releases the result-buffer memory.
func ClearSearchResults() {
	mu.Lock()
	searchResults = nil
	mu.Unlock()
}

// HashFileQuick delegates to the external hasher for a non-cryptographic
// 64-bit digest, returning 0 on error.
func HashFileQuick(path string) uint64 {
	v, err := hasher.QuickHash(path)
	if err != nil {
		setError(err)
		return 0
	}
	clearError()
	return v
}

// HashFileFull delegates to the external hasher for a cryptographic digest.
func HashFileFull(path string) string {
	v, err := hasher.SHA256(path)
	if err != nil {
		setError(err)
		return ""
	}
	clearError()
	return v
}

// FindDuplicates buckets the Shared Entry Map by size (files only, size >=
// minSize) and counts buckets with two or more entries.
func FindDuplicates(minSize uint64) int64 {
	return int64(len(sharedMap.DuplicateGroups(minSize)))
}

// GetStats computes aggregate statistics from the Shared Entry Map.
func GetStats() nexuscore.IndexStats {
	s := sharedMap.Stats()
	mu.RLock()
	s.IndexTimeMs = stats.IndexTimeMs
	mu.RUnlock()
	return s
}

// GetFileCount returns the size of the Shared Entry Map.
func GetFileCount() uint64 {
	return uint64(sharedMap.Len())
}

// SetProgressCallback stores a process-global callback invoked with
// (current, total, phase).
func SetProgressCallback(cb ProgressCallback) {
	mu.Lock()
	progressCallback = cb
	mu.Unlock()
}

// ClearProgressCallback removes any previously set callback.
func ClearProgressCallback() {
	mu.Lock()
	progressCallback = nil
	mu.Unlock()
}

func reportProgress(current, total uint64, phase string) {
	progressCurrent.Store(current)
	progressTotal.Store(total)
	mu.RLock()
	cb := progressCallback
	mu.RUnlock()
	if cb != nil {
		cb(current, total, phase)
	}
}

func GetProgressCurrent() uint64 { return progressCurrent.Load() }
func GetProgressTotal() uint64   { return progressTotal.Load() }
func IsIndexing() bool           { return indexing.Load() }

// GetLastError returns the last recorded error message, or nil if none is
// set.
func GetLastError() *string {
	mu.RLock()
	defer mu.RUnlock()
	if !hasLastError {
		return nil
	}
	msg := lastError
	return &msg
}

// sanitize replaces null bytes in names crossing the boundary with "_",
// logging the replacement as an error per the path convention.
func sanitize(s string) string {
	if !strings.ContainsRune(s, 0) {
		return s
	}
	setError(nexuscore.NewError(nexuscore.KindInvalidPath, "null byte replaced in boundary string"))
	return strings.ReplaceAll(s, "\x00", "_")
}
