// Package snapshot persists a netlist between pipeline stages.
//
// A snapshot is a self-describing blob: a fixed header records the
// format version, the codec that encoded the payload, the compression
// algorithm, and a CRC32-Castagnoli checksum of the stored payload.
// The payload is a portable document of the live netlist contents, so
// loading behaves like an implicit Compress: only live entities are
// restored and IDs are freshly assigned.
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// MagicNumber identifies a netlist snapshot ("ANL1").
	MagicNumber = 0x414e4c31
	// Version is the current snapshot format version.
	Version = 1

	// maxCodecName bounds the codec name length stored in the header.
	maxCodecName = 255
)

var (
	// ErrInvalidMagic is returned when the blob is not a netlist snapshot.
	ErrInvalidMagic = errors.New("snapshot: invalid magic number")
	// ErrInvalidVersion is returned for snapshots from an unknown format
	// version.
	ErrInvalidVersion = errors.New("snapshot: unsupported version")
	// ErrChecksum is returned when the payload does not match its stored
	// checksum.
	ErrChecksum = errors.New("snapshot: payload checksum mismatch")
	// ErrUnknownCodec is returned when the codec named in the header is
	// not registered.
	ErrUnknownCodec = errors.New("snapshot: unknown codec")
	// ErrUnknownModel is returned by Load when the snapshot references a
	// model the supplied library does not contain.
	ErrUnknownModel = errors.New("snapshot: model not in library")
)

// Compression selects how the payload is compressed.
type Compression uint8

const (
	// CompressionNone stores the payload as-is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 frames (fast, moderate ratio).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses zstd (better ratio, still fast to decode).
	CompressionZSTD Compression = 2
)

// String returns the compression name.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// header is the fixed-size prelude of a snapshot blob, followed by the
// codec name and the (possibly compressed) payload.
type header struct {
	Magic       uint32
	Version     uint16
	Compression Compression
	CodecName   string
	PayloadLen  uint64
	Checksum    uint32 // CRC32C of the stored (compressed) payload
}

// headerFixedSize is the encoded size before the variable codec name.
// magic(4) + version(2) + compression(1) + nameLen(1) + payloadLen(8) + crc(4)
const headerFixedSize = 4 + 2 + 1 + 1 + 8 + 4

func (h *header) encode() ([]byte, error) {
	if len(h.CodecName) > maxCodecName {
		return nil, fmt.Errorf("snapshot: codec name too long: %d bytes", len(h.CodecName))
	}
	buf := make([]byte, headerFixedSize+len(h.CodecName))
	binary.LittleEndian.PutUint32(buf[0:], h.Magic)
	binary.LittleEndian.PutUint16(buf[4:], h.Version)
	buf[6] = uint8(h.Compression)
	buf[7] = uint8(len(h.CodecName))
	binary.LittleEndian.PutUint64(buf[8:], h.PayloadLen)
	binary.LittleEndian.PutUint32(buf[16:], h.Checksum)
	copy(buf[headerFixedSize:], h.CodecName)
	return buf, nil
}

// decodeHeader parses the header and returns it together with the
// offset of the payload within buf.
func decodeHeader(buf []byte) (*header, int, error) {
	if len(buf) < headerFixedSize {
		return nil, 0, fmt.Errorf("snapshot: blob too small for header: %d bytes", len(buf))
	}
	h := &header{}
	h.Magic = binary.LittleEndian.Uint32(buf[0:])
	if h.Magic != MagicNumber {
		return nil, 0, ErrInvalidMagic
	}
	h.Version = binary.LittleEndian.Uint16(buf[4:])
	if h.Version != Version {
		return nil, 0, fmt.Errorf("%w: %d", ErrInvalidVersion, h.Version)
	}
	h.Compression = Compression(buf[6])
	nameLen := int(buf[7])
	h.PayloadLen = binary.LittleEndian.Uint64(buf[8:])
	h.Checksum = binary.LittleEndian.Uint32(buf[16:])

	end := headerFixedSize + nameLen
	if len(buf) < end {
		return nil, 0, fmt.Errorf("snapshot: blob too small for codec name: %d bytes", len(buf))
	}
	h.CodecName = string(buf[headerFixedSize:end])
	return h, end, nil
}
