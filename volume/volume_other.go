//go:build !windows

package volume

import (
	"log/slog"

	"github.com/nexusfs/nexuscore"
)

// Enumerator is the non-Windows stub: the MFT is a Windows-only concept, so
// Open, Probe and Enumerate report ErrUnsupportedPlatform (Close is a no-op)
// and the Indexer Orchestrator falls through to the Fallback Walker.
type Enumerator struct {
	Drive string
}

func Open(drive string, log *slog.Logger) (*Enumerator, error) {
	return nil, nexuscore.ErrUnsupportedPlatform
}

func (e *Enumerator) Probe() error { return nexuscore.ErrUnsupportedPlatform }

func (e *Enumerator) Enumerate() ([]nexuscore.FileEntry, error) {
	return nil, nexuscore.ErrUnsupportedPlatform
}

func (e *Enumerator) Close() error { return nil }
