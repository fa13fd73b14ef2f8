// Package usn decodes USN_RECORD-shaped buffers returned by the MFT
// enumeration and read-journal IOCTLs, and maps journal reason bits onto the
// nexuscore change-type vocabulary.
package usn

import (
	"encoding/binary"
	"unicode/utf16"

	"github.com/nexusfs/nexuscore"
)

// headerSize is the size of the fixed portion of a USN_RECORD_V2/V4 header
// this package understands: record_length, major/minor version, file
// reference, parent file reference, usn, timestamp, reason, source_info,
// security_id, file_attributes, file_name_length, file_name_offset.
const headerSize = 4 + 2 + 2 + 8 + 8 + 8 + 8 + 4 + 4 + 4 + 4 + 2 + 2

// Reason bits, per winioctl.h.
const (
	ReasonDataOverwrite = 0x00000001
	ReasonDataExtend    = 0x00000002
	ReasonDataTruncate  = 0x00000004
	ReasonSecurityChg   = 0x00000800
	ReasonFileCreate    = 0x00000100
	ReasonFileDelete    = 0x00000200
	ReasonRenameOldName = 0x00001000
	ReasonRenameNewName = 0x00002000
)

// Attribute bits, per winnt.h FILE_ATTRIBUTE_*.
const (
	attrDirectory = 0x10
	attrHidden    = 0x02
	attrSystem    = 0x04
)

// Record is one decoded USN record.
type Record struct {
	FileReference       nexuscore.FileReference
	ParentFileReference nexuscore.FileReference
	Usn                 int64
	TimestampWindows    int64 // FILETIME, 100ns ticks since 1601-01-01
	Reason              uint32
	FileAttributes      uint32
	FileName            string
}

func (r Record) IsDir() bool    { return r.FileAttributes&attrDirectory != 0 }
func (r Record) IsHidden() bool { return r.FileAttributes&attrHidden != 0 }
func (r Record) IsSystem() bool { return r.FileAttributes&attrSystem != 0 }

// ChangeType maps the record's reason bitmask onto a nexuscore.ChangeType,
// per the fixed bitwise-AND precedence: create, then delete, then any data
// modification bit, then either rename bit, then security change, else
// unknown.
func (r Record) ChangeType() nexuscore.ChangeType {
	switch {
	case r.Reason&ReasonFileCreate != 0:
		return nexuscore.ChangeCreated
	case r.Reason&ReasonFileDelete != 0:
		return nexuscore.ChangeDeleted
	case r.Reason&(ReasonDataOverwrite|ReasonDataExtend|ReasonDataTruncate) != 0:
		return nexuscore.ChangeModified
	case r.Reason&(ReasonRenameOldName|ReasonRenameNewName) != 0:
		return nexuscore.ChangeRenamed
	case r.Reason&ReasonSecurityChg != 0:
		return nexuscore.ChangeSecurity
	default:
		return nexuscore.ChangeUnknown
	}
}

// ParseRecords decodes every well-formed record packed into buf, per the
// validation contract: a record is skipped (and the cursor still advances by
// its declared length) when its filename bounds don't fit, and decoding
// stops entirely the moment a record's length is zero or doesn't fit in the
// remaining buffer.
func ParseRecords(buf []byte) []Record {
	var out []Record
	var offset uint32
	total := uint32(len(buf))

	for {
		if total-offset < headerSize {
			break
		}
		recordLength := binary.LittleEndian.Uint32(buf[offset:])
		if recordLength == 0 || recordLength > total {
			break
		}
		if offset+recordLength > total {
			break
		}

		fileNameLength := binary.LittleEndian.Uint16(buf[offset+56:])
		fileNameOffset := binary.LittleEndian.Uint16(buf[offset+58:])

		nameEnd := offset + uint32(fileNameOffset) + uint32(fileNameLength)
		if uint32(fileNameOffset) < headerSize ||
			uint32(fileNameOffset)+uint32(fileNameLength) > recordLength ||
			nameEnd > total {
			offset += recordLength
			continue
		}

		rec := Record{
			FileReference:       nexuscore.FileReference(binary.LittleEndian.Uint64(buf[offset+8:])).Masked(),
			ParentFileReference: nexuscore.FileReference(binary.LittleEndian.Uint64(buf[offset+16:])).Masked(),
			Usn:                 int64(binary.LittleEndian.Uint64(buf[offset+24:])),
			TimestampWindows:    int64(binary.LittleEndian.Uint64(buf[offset+32:])),
			Reason:              binary.LittleEndian.Uint32(buf[offset+40:]),
			FileAttributes:      binary.LittleEndian.Uint32(buf[offset+52:]),
			FileName:            decodeUTF16(buf[offset+uint32(fileNameOffset) : nameEnd]),
		}
		out = append(out, rec)

		offset += recordLength
	}

	return out
}

// decodeUTF16 decodes little-endian UTF-16 bytes, substituting the Unicode
// replacement character for any malformed code unit rather than failing.
func decodeUTF16(b []byte) string {
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return string(utf16.Decode(units))
}
