package search

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nexusfs/nexuscore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := OpenOrCreate(filepath.Join(t.TempDir(), "index"))
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

func sampleEntries() []nexuscore.FileEntry {
	return []nexuscore.FileEntry{
		{Path: `C:\docs\report.txt`, Name: "report.txt", Extension: "txt", Drive: "C", Parent: `C:\docs`, Size: 1024, Modified: time.Now()},
		{Path: `C:\docs\summary.pdf`, Name: "summary.pdf", Extension: "pdf", Drive: "C", Parent: `C:\docs`, Size: 2048, Modified: time.Now()},
		{Path: `C:\docs`, Name: "docs", IsDir: true, Drive: "C", Parent: `C:\`, Modified: time.Now()},
	}
}

func TestIndexThenExactSearchRoundTrip(t *testing.T) {
	e := openTestEngine(t)
	require.NoError(t, e.IndexEntries(sampleEntries()))

	results, err := e.Search(Query{Type: TypeExact, Text: "report.txt"})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, `C:\docs\report.txt`, results[0].Entry.Path)
}

func TestClearEmptiesIndex(t *testing.T) {
	e := openTestEngine(t)
	require.NoError(t, e.IndexEntries(sampleEntries()))
	require.NoError(t, e.Clear())

	n, _ := e.Stats()
	assert.Equal(t, 0, n)

	results, err := e.Search(Query{Type: TypeSemantic, Text: "report"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGlobSearch(t *testing.T) {
	e := openTestEngine(t)
	require.NoError(t, e.IndexEntries(sampleEntries()))

	results, err := e.Search(Query{Type: TypeGlob, Text: "*.pdf"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "summary.pdf", results[0].Entry.Name)
}

func TestFuzzySearchToleratesEditDistance(t *testing.T) {
	e := openTestEngine(t)
	require.NoError(t, e.IndexEntries(sampleEntries()))

	results, err := e.Search(Query{Type: TypeFuzzy, Text: "report.tx"})
	require.NoError(t, err)
	assert.NotEmpty(t, results)
}

func TestFuzzySearchToleratesTransposition(t *testing.T) {
	e := openTestEngine(t)
	require.NoError(t, e.IndexEntries(sampleEntries()))

	// "usmmary.pkf" is one adjacent transposition ("su"->"us") plus one
	// substitution ("d"->"k") away from "summary.pdf": a Damerau-Levenshtein
	// distance of 2, but a classic (no-transposition) Levenshtein distance
	// of 3 that would fall outside the fuzzy tolerance.
	results, err := e.Search(Query{Type: TypeFuzzy, Text: "usmmary.pkf"})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "summary.pdf", results[0].Entry.Name)
}

func TestPostFilterFilesOnly(t *testing.T) {
	e := openTestEngine(t)
	require.NoError(t, e.IndexEntries(sampleEntries()))

	results, err := e.Search(Query{Type: TypeSemantic, Text: "docs", Filter: PostFilter{FilesOnly: true}})
	require.NoError(t, err)
	for _, r := range results {
		assert.False(t, r.Entry.IsDir)
	}
}
