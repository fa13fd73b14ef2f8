//go:build windows

package volume

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/nexusfs/nexuscore"
	"github.com/nexusfs/nexuscore/usn"
)

// IOCTL codes and buffer size, per winioctl.h.
const (
	fsctlEnumUsnData    = 0x000900B3
	fsctlQueryUsnJournal = 0x000900F4
	fsctlGetNtfsVolumeData = 0x00090064

	outputBufferSize = 65536
)

// mftEnumDataV0 mirrors MFT_ENUM_DATA_V0.
type mftEnumDataV0 struct {
	StartFileReferenceNumber uint64
	LowUsn                   int64
	HighUsn                  int64
}

// Enumerator drives one volume's MFT enumeration.
type Enumerator struct {
	Drive  string
	log    *slog.Logger
	handle windows.Handle
}

// Open acquires a read handle on the raw volume device, with
// share-read/write/delete and backup-semantics, as required to read a
// volume's MFT without holding individual file locks. Failure maps to a
// PermissionDenied error carrying the drive letter.
func Open(drive string, log *slog.Logger) (*Enumerator, error) {
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
			fmt.Sprintf("open volume %s: requires administrative privileges", drive), err)
	}

	return &Enumerator{Drive: drive, log: log, handle: handle}, nil
}

// Close releases the volume handle. Safe to call multiple times.
func (e *Enumerator) Close() error {
	if e.handle == 0 || e.handle == windows.InvalidHandle {
		return nil
	}
	err := windows.CloseHandle(e.handle)
	e.handle = 0
	return err
}

// Probe issues the volume-data IOCTL to confirm the volume is usable and
// log its cluster geometry. A probe failure is fatal to this volume's
// enumeration.
func (e *Enumerator) Probe() error {
	var buf [128]byte
	var bytesReturned uint32
	err := windows.DeviceIoControl(
		e.handle, fsctlGetNtfsVolumeData, nil, 0,
		&buf[0], uint32(len(buf)), &bytesReturned, nil,
	)
	if err != nil {
		return nexuscore.WrapError(nexuscore.KindPlatformAPI,
			fmt.Sprintf("probe volume %s", e.Drive), err)
	}
	if bytesReturned >= 48 {
		// NTFS_VOLUME_DATA_BUFFER: TotalClusters at 16, BytesPerSector at 40,
		// BytesPerCluster at 44.
		e.log.Debug("volume probed", "drive", e.Drive,
			"total_clusters", binary.LittleEndian.Uint64(buf[16:]),
			"bytes_per_sector", binary.LittleEndian.Uint32(buf[40:]),
			"bytes_per_cluster", binary.LittleEndian.Uint32(buf[44:]))
	} else {
		e.log.Debug("volume probed", "drive", e.Drive, "bytes_returned", bytesReturned)
	}
	return nil
}

// Enumerate drives the MFT-enumeration IOCTL loop to completion, resolving
// every accumulated reference into a FileEntry.
func (e *Enumerator) Enumerate() ([]nexuscore.FileEntry, error) {
	input := mftEnumDataV0{StartFileReferenceNumber: 0, LowUsn: 0, HighUsn: 1<<63 - 1}
	table := make(nexuscore.ReferenceTable)
	var items []pending

	buf := make([]byte, outputBufferSize)
	for {
		var bytesReturned uint32
		err := windows.DeviceIoControl(
			e.handle, fsctlEnumUsnData,
			(*byte)(unsafe.Pointer(&input)), uint32(unsafe.Sizeof(input)),
			&buf[0], uint32(len(buf)), &bytesReturned, nil,
		)
		if err != nil {
			if err == windows.ERROR_HANDLE_EOF {
				break
			}
			return nil, nexuscore.WrapError(nexuscore.KindPlatformAPI,
				fmt.Sprintf("enumerate MFT on %s", e.Drive), err)
		}
		if bytesReturned == 0 {
			break
		}

		nextRef := *(*uint64)(unsafe.Pointer(&buf[0]))
		records := usn.ParseRecords(buf[8:bytesReturned])
		for _, r := range records {
			table[r.FileReference] = nexuscore.ReferenceEntry{
				Name:   r.FileName,
				Parent: r.ParentFileReference,
			}
			items = append(items, recordToPending(r, e.Drive))
		}

		if nextRef == input.StartFileReferenceNumber {
			break
		}
		input.StartFileReferenceNumber = nextRef
	}

	return buildEntries(table, e.Drive, items), nil
}
