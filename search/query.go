package search

import (
	"regexp"
	"strings"
)

// Type selects how a Query's Text is interpreted.
type Type int

const (
	TypeExact Type = iota
	TypeFuzzy
	TypeGlob
	TypeRegex
	TypeSemantic
)

// Query describes one search request.
type Query struct {
	Type   Type
	Text   string
	Limit  int
	Filter PostFilter
}

// PostFilter narrows results while the mirror is scanned, before ranking and
// before the Limit cut.
type PostFilter struct {
	FilesOnly bool
	DirsOnly  bool
	MinSize   uint64
	MaxSize   uint64 // 0 means unbounded
	FileTypes []string
	Drives    []string
}

func (f PostFilter) matches(d Document) bool {
	if f.FilesOnly && d.IsDir {
		return false
	}
	if f.DirsOnly && !d.IsDir {
		return false
	}
	if d.Size < f.MinSize {
		return false
	}
	if f.MaxSize > 0 && d.Size > f.MaxSize {
		return false
	}
	if len(f.FileTypes) > 0 && !containsFold(f.FileTypes, d.Extension) {
		return false
	}
	if len(f.Drives) > 0 && !containsFold(f.Drives, d.Drive) {
		return false
	}
	return true
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

var globEscaper = strings.NewReplacer(
	`.`, `\.`, `+`, `\+`, `(`, `\(`, `)`, `\)`,
	`[`, `\[`, `]`, `\]`, `{`, `\{`, `}`, `\}`,
	`^`, `\^`, `$`, `\$`, `|`, `\|`, `\`, `\\`,
)

// GlobToRegex translates a shell-style glob into an anchored regular
// expression: '*' becomes '.*', '?' becomes '.', and every regex
// metacharacter the glob doesn't itself use (".+()[]{}^$|\\") is escaped.
// It is idempotent with respect to literal strings: a pattern with no glob
// metacharacters maps to "^" + escape(pattern) + "$".
func GlobToRegex(pattern string) string {
	var b strings.Builder
	b.WriteByte('^')
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteByte('.')
		default:
			b.WriteString(globEscaper.Replace(string(r)))
		}
	}
	b.WriteByte('$')
	return b.String()
}

// CompileGlob is a convenience wrapper compiling GlobToRegex's output.
func CompileGlob(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(GlobToRegex(pattern))
}
