// Package search implements the Search Index: a persistent store of
// per-entry documents, backed by goleveldb (following perkeep's
// pkg/sorted/leveldb wrapper), queried with exact/fuzzy/glob/regex/
// full-text matching and post-filters.
package search

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/nexusfs/nexuscore"
)

// fuzzyMaxDistance is the bounded Damerau-Levenshtein distance the Fuzzy
// search type tolerates (transpositions count as a single edit).
const fuzzyMaxDistance = 2

// Engine persists documents in a goleveldb database keyed by path, and
// keeps an in-memory mirror for query-time scanning (goleveldb has no
// built-in text-search capability, so matching happens over this mirror,
// refreshed on every commit per the reader-reloads-on-commit policy).
type Engine struct {
	db *leveldb.DB

	mu      sync.RWMutex
	mirror  map[string]Document
	order   []string // tie-break order: path order for documents loaded on open, then insertion order
}

// OpenOrCreate opens an existing persistent index at path, or creates one.
// The writer buffer is sized to roughly 50 MB, matching an index engine's
// typical initial memtable budget.
func OpenOrCreate(path string) (*Engine, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{
		Filter:     filter.NewBloomFilter(10),
		WriteBuffer: 50 * opt.MiB,
	})
	if err != nil {
		return nil, nexuscore.WrapError(nexuscore.KindIndex, "open search index at "+path, err)
	}

	e := &Engine{db: db, mirror: make(map[string]Document)}
	if err := e.loadMirror(); err != nil {
		db.Close()
		return nil, err
	}
	return e, nil
}

func (e *Engine) loadMirror() error {
	iter := e.db.NewIterator(nil, nil)
	defer iter.Release()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.mirror = make(map[string]Document)
	e.order = e.order[:0]
	for iter.Next() {
		var d Document
		if err := json.Unmarshal(iter.Value(), &d); err != nil {
			continue
		}
		e.mirror[d.Path] = d
		e.order = append(e.order, d.Path)
	}
	return iter.Error()
}

// IndexEntries adds every entry as a document and commits once. The commit
// is atomic: if any document fails to marshal, the whole batch is aborted
// and nothing becomes visible.
func (e *Engine) IndexEntries(entries []nexuscore.FileEntry) error {
	batch := new(leveldb.Batch)
	docs := make([]Document, 0, len(entries))

	for _, ent := range entries {
		d := documentFromEntry(ent)
		raw, err := json.Marshal(d)
		if err != nil {
			return nexuscore.WrapError(nexuscore.KindIndex, "marshal document "+ent.Path, err)
		}
		batch.Put([]byte(d.Path), raw)
		docs = append(docs, d)
	}

	if err := e.db.Write(batch, &opt.WriteOptions{Sync: false}); err != nil {
		return nexuscore.WrapError(nexuscore.KindIndex, "commit index batch", err)
	}

	e.mu.Lock()
	for _, d := range docs {
		if _, exists := e.mirror[d.Path]; !exists {
			e.order = append(e.order, d.Path)
		}
		e.mirror[d.Path] = d
	}
	e.mu.Unlock()
	return nil
}

// Clear deletes every document and commits.
func (e *Engine) Clear() error {
	e.mu.Lock()
	paths := make([]string, 0, len(e.mirror))
	for p := range e.mirror {
		paths = append(paths, p)
	}
	e.mu.Unlock()

	batch := new(leveldb.Batch)
	for _, p := range paths {
		batch.Delete([]byte(p))
	}
	if err := e.db.Write(batch, &opt.WriteOptions{Sync: false}); err != nil {
		return nexuscore.WrapError(nexuscore.KindIndex, "clear search index", err)
	}

	e.mu.Lock()
	e.mirror = make(map[string]Document)
	e.order = nil
	e.mu.Unlock()
	return nil
}

// Stats returns the number of documents and the number of on-disk
// segments (goleveldb calls them tables).
func (e *Engine) Stats() (numDocs int, numSegments int) {
	e.mu.RLock()
	numDocs = len(e.mirror)
	e.mu.RUnlock()

	stats := &leveldb.DBStats{}
	if err := e.db.Stats(stats); err == nil {
		for _, n := range stats.LevelTablesCounts {
			numSegments += n
		}
	}
	return numDocs, numSegments
}

// Close releases the underlying database handle.
func (e *Engine) Close() error {
	return e.db.Close()
}

// Search compiles q per its Type, scans the in-memory mirror, applies
// post-filters, and returns results ranked by descending score with ties
// broken by document order. Documents indexed since the engine was opened
// keep their insertion order; documents loaded from disk on open are ordered
// by path, since the database does not record when they were inserted.
func (e *Engine) Search(q Query) ([]Result, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var matcher func(Document) (bool, float64)

	switch q.Type {
	case TypeExact:
		matcher = func(d Document) (bool, float64) {
			if d.Name == q.Text {
				return true, 1
			}
			return false, 0
		}
	case TypeFuzzy:
		matcher = func(d Document) (bool, float64) {
			dist := damerauLevenshtein(strings.ToLower(d.Name), strings.ToLower(q.Text))
			if dist <= fuzzyMaxDistance {
				return true, 1 / float64(1+dist)
			}
			return false, 0
		}
	case TypeGlob:
		re, err := CompileGlob(q.Text)
		if err != nil {
			return nil, nexuscore.WrapError(nexuscore.KindSearch, "compile glob "+q.Text, err)
		}
		matcher = regexMatcher(re)
	case TypeRegex:
		re, err := regexp.Compile(q.Text)
		if err != nil {
			return nil, nexuscore.WrapError(nexuscore.KindSearch, "compile regex "+q.Text, err)
		}
		matcher = regexMatcher(re)
	case TypeSemantic:
		needle := strings.ToLower(q.Text)
		matcher = func(d Document) (bool, float64) {
			inName := strings.Contains(strings.ToLower(d.Name), needle)
			inPath := strings.Contains(strings.ToLower(d.Path), needle)
			if inName {
				return true, 2
			}
			if inPath {
				return true, 1
			}
			return false, 0
		}
	default:
		matcher = func(Document) (bool, float64) { return false, 0 }
	}

	type scored struct {
		res Result
		pos int
	}
	var hits []scored
	for pos, path := range e.order {
		d, ok := e.mirror[path]
		if !ok {
			continue
		}
		if ok, score := matcher(d); ok {
			if !q.Filter.matches(d) {
				continue
			}
			hits = append(hits, scored{Result{Entry: d, Score: score}, pos})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].res.Score != hits[j].res.Score {
			return hits[i].res.Score > hits[j].res.Score
		}
		return hits[i].pos < hits[j].pos
	})

	limit := q.Limit
	if limit <= 0 || limit > len(hits) {
		limit = len(hits)
	}
	out := make([]Result, limit)
	for i := 0; i < limit; i++ {
		out[i] = hits[i].res
	}
	return out, nil
}

func regexMatcher(re *regexp.Regexp) func(Document) (bool, float64) {
	return func(d Document) (bool, float64) {
		if re.MatchString(d.Name) || re.MatchString(d.Path) {
			return true, 1
		}
		return false, 0
	}
}
