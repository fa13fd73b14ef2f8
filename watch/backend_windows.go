//go:build windows

package watch

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

const bufferSize = 65536

func newPlatformBackend() (backend, error) {
	port, err := windows.CreateIoCompletionPort(windows.InvalidHandle, 0, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("watch: create IO completion port: %w", err)
	}
	b := &windowsBackend{
		port:    port,
		watches: make(map[string]*dirWatch),
		events:  make(chan rawEvent, 256),
		errors:  make(chan error, 16),
		quit:    make(chan struct{}),
	}
	go b.loop()
	return b, nil
}

type dirWatch struct {
	handle windows.Handle
	path   string
	buf    [bufferSize]byte
	ov     windows.Overlapped
}

// windowsBackend watches directories via ReadDirectoryChangesW over one
// shared I/O completion port.
type windowsBackend struct {
	port windows.Handle

	mu      sync.Mutex
	watches map[string]*dirWatch

	events chan rawEvent
	errors chan error
	quit   chan struct{}
}

func (b *windowsBackend) Events() <-chan rawEvent { return b.events }
func (b *windowsBackend) Errors() <-chan error    { return b.errors }

func (b *windowsBackend) Add(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	b.mu.Lock()
	if _, ok := b.watches[absPath]; ok {
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()

	pathPtr, err := windows.UTF16PtrFromString(absPath)
	if err != nil {
		return err
	}
	handle, err := windows.CreateFile(
		pathPtr,
		windows.FILE_LIST_DIRECTORY,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS|windows.FILE_FLAG_OVERLAPPED,
		0,
	)
	if err != nil {
		return fmt.Errorf("watch: open %s: %w", absPath, err)
	}

	dw := &dirWatch{handle: handle, path: absPath}

	if _, err := windows.CreateIoCompletionPort(handle, b.port, 0, 0); err != nil {
		windows.CloseHandle(handle)
		return fmt.Errorf("watch: associate completion port: %w", err)
	}

	b.mu.Lock()
	b.watches[absPath] = dw
	b.mu.Unlock()

	return b.startRead(dw)
}

func (b *windowsBackend) startRead(dw *dirWatch) error {
	const mask = windows.FILE_NOTIFY_CHANGE_FILE_NAME |
		windows.FILE_NOTIFY_CHANGE_DIR_NAME |
		windows.FILE_NOTIFY_CHANGE_ATTRIBUTES |
		windows.FILE_NOTIFY_CHANGE_SIZE |
		windows.FILE_NOTIFY_CHANGE_LAST_WRITE |
		windows.FILE_NOTIFY_CHANGE_CREATION

	var bytesReturned uint32
	return windows.ReadDirectoryChanges(
		dw.handle, &dw.buf[0], uint32(len(dw.buf)), true,
		mask, &bytesReturned, &dw.ov, 0,
	)
}

func (b *windowsBackend) loop() {
	for {
		var bytesTransferred uint32
		var key uintptr
		var ov *windows.Overlapped

		err := windows.GetQueuedCompletionStatus(b.port, &bytesTransferred, &key, &ov, windows.INFINITE)
		select {
		case <-b.quit:
			return
		default:
		}
		if err != nil {
			if !errors.Is(err, windows.ERROR_OPERATION_ABORTED) {
				b.sendError(fmt.Errorf("watch: completion status: %w", err))
			}
			continue
		}

		dw := b.findByOverlapped(ov)
		if dw == nil {
			continue
		}
		b.decode(dw, bytesTransferred)
		b.startRead(dw)
	}
}

func (b *windowsBackend) findByOverlapped(ov *windows.Overlapped) *dirWatch {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, dw := range b.watches {
		if &dw.ov == ov {
			return dw
		}
	}
	return nil
}

func (b *windowsBackend) decode(dw *dirWatch, n uint32) {
	if n == 0 {
		return
	}
	offset := uint32(0)
	for {
		raw := (*windows.FileNotifyInformation)(unsafe.Pointer(&dw.buf[offset]))
		name := windows.UTF16ToString((*[1 << 15]uint16)(unsafe.Pointer(&raw.FileName))[:raw.FileNameLength/2])
		fullPath := filepath.Join(dw.path, name)

		b.sendEvent(rawEvent{Path: fullPath, Kind: toRawKind(raw.Action)})

		if raw.NextEntryOffset == 0 {
			break
		}
		offset += raw.NextEntryOffset
	}
}

func toRawKind(action uint32) rawKind {
	switch action {
	case windows.FILE_ACTION_ADDED:
		return rawCreate
	case windows.FILE_ACTION_REMOVED:
		return rawRemove
	case windows.FILE_ACTION_MODIFIED:
		return rawWrite
	case windows.FILE_ACTION_RENAMED_OLD_NAME, windows.FILE_ACTION_RENAMED_NEW_NAME:
		return rawRename
	default:
		return rawWrite
	}
}

func (b *windowsBackend) sendEvent(e rawEvent) {
	select {
	case b.events <- e:
	case <-b.quit:
	}
}

func (b *windowsBackend) sendError(err error) {
	select {
	case b.errors <- err:
	case <-b.quit:
	}
}

func (b *windowsBackend) Remove(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	b.mu.Lock()
	dw, ok := b.watches[absPath]
	if ok {
		delete(b.watches, absPath)
	}
	b.mu.Unlock()
	if !ok {
		return nil
	}
	return windows.CloseHandle(dw.handle)
}

func (b *windowsBackend) Close() error {
	select {
	case <-b.quit:
		return nil
	default:
		close(b.quit)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for path, dw := range b.watches {
		windows.CloseHandle(dw.handle)
		delete(b.watches, path)
	}
	return windows.CloseHandle(b.port)
}
