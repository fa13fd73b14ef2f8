package index

import (
	"strings"

	"github.com/nexusfs/nexuscore"
)

// include applies the inclusion policy in order; the first failing check
// rejects the entry. The policy is monotone: enabling IncludeHidden or
// IncludeSystem can only add entries, and adding ExcludeDirs substrings can
// only remove entries.
func (c Config) include(e nexuscore.FileEntry) bool {
	if e.IsHidden && !c.IncludeHidden {
		return false
	}
	if e.IsSystem && !c.IncludeSystem {
		return false
	}
	for _, sub := range c.ExcludeDirs {
		if sub != "" && strings.Contains(e.Path, sub) {
			return false
		}
	}
	if len(c.Extensions) > 0 && !e.IsDir {
		if !containsFold(c.Extensions, e.Extension) {
			return false
		}
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
