//go:build !windows

package tailer

import (
	"log/slog"

	"github.com/nexusfs/nexuscore"
)

// Tailer is the non-Windows stub: there is no USN journal outside NTFS, so
// callers fall back to the watch façade.
type Tailer struct{ Drive string }

func Start(drive string, log *slog.Logger) (*Tailer, error) {
	return nil, nexuscore.ErrUnsupportedPlatform
}

func (t *Tailer) Cancel() {}
func (t *Tailer) Close() error { return nil }

func (t *Tailer) Tail() <-chan nexuscore.UsnChange {
	ch := make(chan nexuscore.UsnChange)
	close(ch)
	return ch
}
