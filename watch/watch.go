// Package watch is a supplemental, path-rooted cross-platform watcher
// façade for platforms or paths the USN Change Tailer doesn't cover. It
// wraps a per-platform backend (ReadDirectoryChangesW on Windows, polling
// elsewhere) and emits events shaped like the core's UsnChange rather than
// raw OS events.
package watch

import (
	"log/slog"

	"github.com/nexusfs/nexuscore"
)

// backend is the minimal per-platform notification source a Watcher wraps.
type backend interface {
	Add(path string) error
	Remove(path string) error
	Close() error
	Events() <-chan rawEvent
	Errors() <-chan error
}

// rawEvent is a backend-level event, translated to a nexuscore.UsnChange by
// the façade.
type rawEvent struct {
	Path  string
	IsDir bool
	Kind  rawKind
}

type rawKind int

const (
	rawCreate rawKind = iota
	rawWrite
	rawRemove
	rawRename
)

// Watcher emits typed, nexuscore-shaped change events for one or more
// watched paths.
type Watcher struct {
	b       backend
	Changes chan nexuscore.UsnChange
	Errors  chan error
	log     *slog.Logger
	done    chan struct{}
}

// New constructs a Watcher using the platform's default backend.
func New(log *slog.Logger) (*Watcher, error) {
	if log == nil {
		log = slog.Default()
	}
	b, err := newPlatformBackend()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		b:       b,
		Changes: make(chan nexuscore.UsnChange, 256),
		Errors:  make(chan error, 16),
		log:     log,
		done:    make(chan struct{}),
	}
	go w.pump()
	return w, nil
}

// Add starts watching path. On Windows the backend reports changes anywhere
// in the subtree under path; the polling backend used elsewhere reports only
// path itself and its direct children, so subdirectories must be added
// individually there.
func (w *Watcher) Add(path string) error { return w.b.Add(path) }

// Remove stops watching path.
func (w *Watcher) Remove(path string) error { return w.b.Remove(path) }

// Close releases the backend and stops delivering events.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
		close(w.done)
	}
	return w.b.Close()
}

func (w *Watcher) pump() {
	defer close(w.Changes)
	defer close(w.Errors)
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.b.Events():
			if !ok {
				return
			}
			change := nexuscore.UsnChange{
				Path:        ev.Path,
				ChangeType:  rawKindToChangeType(ev.Kind),
				IsDirectory: ev.IsDir,
			}
			select {
			case w.Changes <- change:
			case <-w.done:
				return
			}
		case err, ok := <-w.b.Errors():
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.done:
				return
			}
		}
	}
}

func rawKindToChangeType(k rawKind) nexuscore.ChangeType {
	switch k {
	case rawCreate:
		return nexuscore.ChangeCreated
	case rawWrite:
		return nexuscore.ChangeModified
	case rawRemove:
		return nexuscore.ChangeDeleted
	case rawRename:
		return nexuscore.ChangeRenamed
	default:
		return nexuscore.ChangeUnknown
	}
}
