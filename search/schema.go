package search

import "github.com/nexusfs/nexuscore"

// Document is the per-entry record persisted by the engine:
// path/name/extension/drive/parent are stored as whole strings (queries match
// them by equality, substring, edit distance or regex; nothing is
// tokenized); size/is_dir/modified are stored as plain values for fast
// filtering.
type Document struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Extension string `json:"extension"`
	Size      uint64 `json:"size"`
	IsDir     bool   `json:"is_dir"`
	Drive     string `json:"drive"`
	Parent    string `json:"parent"`
	Modified  int64  `json:"modified"` // UNIX seconds
}

func documentFromEntry(e nexuscore.FileEntry) Document {
	return Document{
		Path:      e.Path,
		Name:      e.Name,
		Extension: e.Extension,
		Size:      e.Size,
		IsDir:     e.IsDir,
		Drive:     e.Drive,
		Parent:    e.Parent,
		Modified:  e.Modified.Unix(),
	}
}

// Result is one ranked search hit.
type Result struct {
	Entry Document
	Score float64
}
