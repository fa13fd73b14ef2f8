package pathresolve

import (
	"testing"
	"time"

	"github.com/nexusfs/nexuscore"
	"github.com/stretchr/testify/assert"
)

func TestResolveSimpleChain(t *testing.T) {
	table := nexuscore.ReferenceTable{
		10: {Name: "dir1", Parent: nexuscore.RootReference},
		11: {Name: "file.txt", Parent: 10},
	}
	r := New(table, "C")
	assert.Equal(t, `C:\dir1\file.txt`, r.Resolve(11))
	assert.Equal(t, `C:\dir1`, r.Resolve(10))
	assert.Equal(t, `C:`, r.Resolve(nexuscore.RootReference))
}

func TestResolveMemoizesAncestors(t *testing.T) {
	table := nexuscore.ReferenceTable{
		10: {Name: "dir1", Parent: nexuscore.RootReference},
		11: {Name: "a.txt", Parent: 10},
		12: {Name: "b.txt", Parent: 10},
	}
	r := New(table, "C")
	assert.Equal(t, `C:\dir1\a.txt`, r.Resolve(11))

	// The ancestor walk for ref 11 passes through 10; that sub-path must be
	// memoized directly, not just ref 11's own full path.
	cached, ok := r.cache[10]
	assert.True(t, ok)
	assert.Equal(t, `C:\dir1`, cached)

	assert.Equal(t, `C:\dir1\b.txt`, r.Resolve(12))
}

func TestResolveUnknownReference(t *testing.T) {
	table := nexuscore.ReferenceTable{}
	r := New(table, "C")
	assert.Equal(t, "", r.Resolve(999))
}

func TestResolveCycleDoesNotHang(t *testing.T) {
	table := nexuscore.ReferenceTable{
		10: {Name: "a", Parent: 11},
		11: {Name: "b", Parent: 10},
	}
	r := New(table, "C")

	done := make(chan string, 1)
	go func() { done <- r.Resolve(10) }()
	select {
	case got := <-done:
		assert.Equal(t, "", got)
	case <-time.After(time.Second):
		t.Fatal("Resolve did not terminate on a cyclic reference table")
	}
}
