//go:build windows

package tailer

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/nexusfs/nexuscore"
	"github.com/nexusfs/nexuscore/usn"
)

const (
	fsctlQueryUsnJournal = 0x000900F4
	fsctlReadUsnJournal  = 0x000900BB

	readBufferSize = 65536
	backoff        = 100 * time.Millisecond
)

type queryUsnJournalData struct {
	UsnJournalID    uint64
	FirstUsn        int64
	NextUsn         int64
	LowestValidUsn  int64
	MaxUsn          int64
	MaximumSize     uint64
	AllocationDelta uint64
}

type readUsnJournalData struct {
	StartUsn          int64
	ReasonMask        uint32
	ReturnOnlyOnClose uint32
	Timeout           uint64
	BytesToWaitFor    uint64
	UsnJournalID      uint64
}

// Tailer tails one volume's USN journal.
type Tailer struct {
	Drive   string
	log     *slog.Logger
	handle  windows.Handle
	journal queryUsnJournalData
	cancel  atomic.Bool
	done    chan struct{}
}

// Start opens the volume and queries its journal identity. Changes begin
// flowing once Tail is called.
func Start(drive string, log *slog.Logger) (*Tailer, error) {
	if log == nil {
		log = slog.Default()
	}
	path := fmt.Sprintf(`\\.\%s:`, drive)
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, nexuscore.WrapError(nexuscore.KindInvalidPath, "invalid volume path", err)
	}

	handle, err := windows.CreateFile(
		pathPtr,
		windows.GENERIC_READ,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS,
		0,
	)
	if err != nil {
		return nil, nexuscore.WrapError(nexuscore.KindPermissionDenied,
			fmt.Sprintf("open volume %s", drive), err)
	}

	t := &Tailer{Drive: drive, log: log, handle: handle, done: make(chan struct{})}

	var bytesReturned uint32
	err = windows.DeviceIoControl(
		handle, fsctlQueryUsnJournal, nil, 0,
		(*byte)(unsafe.Pointer(&t.journal)), uint32(unsafe.Sizeof(t.journal)),
		&bytesReturned, nil,
	)
	if err != nil {
		windows.CloseHandle(handle)
		return nil, fmt.Errorf("%w: %s: %w", nexuscore.ErrJournalUnavailable, drive, err)
	}

	return t, nil
}

// Cancel sets the shared atomic flag the tail loop observes at the next
// iteration boundary, and closes done so a blocked send on Tail's channel
// also terminates the loop.
func (t *Tailer) Cancel() {
	if t.cancel.CompareAndSwap(false, true) {
		close(t.done)
	}
}

// Close releases the volume handle. Safe to call after Cancel.
func (t *Tailer) Close() error {
	if t.handle == 0 || t.handle == windows.InvalidHandle {
		return nil
	}
	err := windows.CloseHandle(t.handle)
	t.handle = 0
	return err
}

// Tail runs the read-journal loop, delivering typed changes on the returned
// channel until Cancel is called or the channel's consumer stops receiving
// and the send blocks against cancellation.
func (t *Tailer) Tail() <-chan nexuscore.UsnChange {
	out := make(chan nexuscore.UsnChange, ChannelBufferSize)
	go t.run(out)
	return out
}

func (t *Tailer) run(out chan<- nexuscore.UsnChange) {
	defer close(out)
	defer t.Close()

	startUsn := t.journal.NextUsn
	buf := make([]byte, readBufferSize)

	for {
		if t.cancel.Load() {
			return
		}

		read := readUsnJournalData{
			StartUsn:          startUsn,
			ReasonMask:        0xFFFFFFFF,
			ReturnOnlyOnClose: 0,
			Timeout:           0,
			BytesToWaitFor:    0,
			UsnJournalID:      t.journal.UsnJournalID,
		}

		var bytesReturned uint32
		err := windows.DeviceIoControl(
			t.handle, fsctlReadUsnJournal,
			(*byte)(unsafe.Pointer(&read)), uint32(unsafe.Sizeof(read)),
			&buf[0], uint32(len(buf)), &bytesReturned, nil,
		)
		if err != nil || bytesReturned <= 8 {
			if err != nil {
				t.log.Debug("usn journal read failed, retrying", "drive", t.Drive, "error", err)
			}
			time.Sleep(backoff)
			continue
		}

		startUsn = int64(*(*uint64)(unsafe.Pointer(&buf[0])))

		for _, r := range usn.ParseRecords(buf[8:bytesReturned]) {
			select {
			case out <- recordToChange(r, t.Drive):
			case <-t.done:
				return
			}
		}
	}
}
