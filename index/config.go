package index

import "runtime"

// Config is the indexing orchestrator's configuration.
type Config struct {
	Drives        []string `mapstructure:"drives"`
	IncludeHidden bool     `mapstructure:"include_hidden"`
	IncludeSystem bool     `mapstructure:"include_system"`
	ComputeHashes bool     `mapstructure:"compute_hashes"`
	MaxHashSize   uint64   `mapstructure:"max_hash_size"`
	Extensions    []string `mapstructure:"extensions"`
	ExcludeDirs   []string `mapstructure:"exclude_dirs"`
	UseMFT        bool     `mapstructure:"use_mft"`
	Threads       int      `mapstructure:"threads"`
}

// DefaultConfig returns the default indexing configuration.
func DefaultConfig() Config {
	return Config{
		Drives:        []string{"C", "D", "E", "F", "G"},
		IncludeHidden: true,
		IncludeSystem: false,
		ComputeHashes: false,
		MaxHashSize:   100 * 1024 * 1024,
		Extensions:    nil,
		ExcludeDirs: []string{
			"$Recycle.Bin",
			"System Volume Information",
			"Windows",
			"Program Files",
			"Program Files (x86)",
			"ProgramData",
		},
		UseMFT:  true,
		Threads: runtime.NumCPU(),
	}
}
