package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGlobToRegexConcreteScenarios(t *testing.T) {
	assert.Equal(t, `^.*\.txt$`, GlobToRegex("*.txt"))
	assert.Equal(t, `^file.\.txt$`, GlobToRegex("file?.txt"))
	assert.Equal(t, `^test$`, GlobToRegex("test"))
}

func TestGlobToRegexIdempotentOnLiterals(t *testing.T) {
	for _, s := range []string{"readme", "data_2024", "notes"} {
		assert.Equal(t, "^"+s+"$", GlobToRegex(s))
	}
}

func TestPostFilterMatches(t *testing.T) {
	f := PostFilter{FilesOnly: true, MinSize: 100}
	assert.True(t, f.matches(Document{IsDir: false, Size: 150}))
	assert.False(t, f.matches(Document{IsDir: true, Size: 150}))
	assert.False(t, f.matches(Document{IsDir: false, Size: 50}))
}
