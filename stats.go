package nexuscore

// IndexStats summarizes one index_all run.
type IndexStats struct {
	TotalFiles    uint64
	TotalDirs     uint64
	TotalSize     uint64
	IndexTimeMs   int64
	DrivesIndexed []string
}
