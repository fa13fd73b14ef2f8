package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/nexusfs/nexuscore"
	"github.com/stretchr/testify/assert"
)

func TestInsertReplacesOnDuplicatePath(t *testing.T) {
	m := New()
	m.Insert(nexuscore.FileEntry{Path: `C:\a.txt`, Size: 1})
	m.Insert(nexuscore.FileEntry{Path: `C:\a.txt`, Size: 2})
	assert.Equal(t, 1, m.Len())
	e, ok := m.Get(`C:\a.txt`)
	assert.True(t, ok)
	assert.Equal(t, uint64(2), e.Size)
}

func TestEachWalksInsertionOrder(t *testing.T) {
	m := New()
	m.Insert(nexuscore.FileEntry{Path: `C:\c.txt`})
	m.Insert(nexuscore.FileEntry{Path: `C:\a.txt`})
	m.Insert(nexuscore.FileEntry{Path: `C:\b.txt`})
	// Re-inserting an existing path must not move it to the back.
	m.Insert(nexuscore.FileEntry{Path: `C:\c.txt`, Size: 9})

	var got []string
	m.Each(func(e nexuscore.FileEntry) { got = append(got, e.Path) })
	assert.Equal(t, []string{`C:\c.txt`, `C:\a.txt`, `C:\b.txt`}, got)

	var snap []string
	for _, e := range m.Snapshot() {
		snap = append(snap, e.Path)
	}
	assert.Equal(t, got, snap)
}

func TestDeleteRemovesFromOrder(t *testing.T) {
	m := New()
	m.Insert(nexuscore.FileEntry{Path: `C:\a.txt`})
	m.Insert(nexuscore.FileEntry{Path: `C:\b.txt`})
	m.Delete(`C:\a.txt`)

	var got []string
	m.Each(func(e nexuscore.FileEntry) { got = append(got, e.Path) })
	assert.Equal(t, []string{`C:\b.txt`}, got)
}

func TestDuplicateGroups(t *testing.T) {
	m := New()
	sizes := []uint64{100, 100, 200, 200, 200, 300}
	for i, sz := range sizes {
		m.Insert(nexuscore.FileEntry{Path: fmt.Sprintf(`C:\f%d`, i), Size: sz})
	}
	groups := m.DuplicateGroups(0)
	assert.Len(t, groups, 2)
}

func TestIterationSafeDuringInsertion(t *testing.T) {
	m := New()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			m.Insert(nexuscore.FileEntry{Path: fmt.Sprintf(`C:\f%d`, i)})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			m.Snapshot()
		}
	}()
	wg.Wait()
	assert.Equal(t, 1000, m.Len())
}
