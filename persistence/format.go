package persistence

import (
	"encoding/binary"

	"github.com/hupe1980/arkiv/wire"
)

const (
	// Magic identifies an archive container ("ARKV" big-endian).
	Magic uint32 = 0x41524B56

	// Version is the container format version this build reads and writes.
	Version uint32 = 1

	// HeaderSize is the fixed size of the container header in bytes.
	HeaderSize = 32
)

// Header flags.
const (
	// FlagNoPadding marks a payload written with packed layouts.
	FlagNoPadding uint16 = 1 << 0
)

// Compression identifies the codec applied to the stored payload.
type Compression uint8

const (
	// CompressionNone stores the payload verbatim. Required for
	// zero-copy mapped access.
	CompressionNone Compression = 0
	// CompressionZstd stores the payload as a zstd block.
	CompressionZstd Compression = 1
	// CompressionLZ4 stores the payload as an LZ4 block.
	CompressionLZ4 Compression = 2
)

// String implements the fmt.Stringer interface.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// Byte order identifiers stored in the header.
const (
	orderLittleEndian uint8 = 0
	orderBigEndian    uint8 = 1
)

// Header is the decoded form of the 32-byte container header.
//
// Layout (all multi-byte fields little-endian, regardless of the
// payload's byte order):
//
//	[0:4]   Magic
//	[4:8]   Version
//	[8:10]  Flags
//	[10]    Width (offset width in bytes: 2, 4 or 8)
//	[11]    Order (0 = little-endian, 1 = big-endian)
//	[12]    Compression
//	[13:16] reserved
//	[16:24] PayloadLen (uncompressed archive length)
//	[24:28] Checksum (CRC32-IEEE of the stored payload)
//	[28:32] reserved
type Header struct {
	Flags       uint16
	Width       wire.Width
	Order       binary.ByteOrder
	Compression Compression
	PayloadLen  uint64
	Checksum    uint32
}

// NewHeader builds a header describing an archive in the given wire
// format. PayloadLen and Checksum are filled in by Encode.
func NewHeader(f wire.Format, compression Compression) Header {
	h := Header{
		Width:       f.Width,
		Order:       f.Order,
		Compression: compression,
	}

	if f.NoPadding {
		h.Flags |= FlagNoPadding
	}

	return h
}

// Format returns the wire format the payload was written with.
func (h Header) Format() wire.Format {
	return wire.Format{
		Width:     h.Width,
		Order:     h.Order,
		NoPadding: h.Flags&FlagNoPadding != 0,
	}
}

// Marshal renders the header into its fixed 32-byte encoding.
func (h Header) Marshal() ([]byte, error) {
	if !h.Width.Valid() {
		return nil, &ErrBadHeader{Field: "Width", Reason: "not one of 2, 4, 8"}
	}

	order, err := orderID(h.Order)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], Magic)
	binary.LittleEndian.PutUint32(buf[4:8], Version)
	binary.LittleEndian.PutUint16(buf[8:10], h.Flags)
	buf[10] = uint8(h.Width)
	buf[11] = order
	buf[12] = uint8(h.Compression)
	binary.LittleEndian.PutUint64(buf[16:24], h.PayloadLen)
	binary.LittleEndian.PutUint32(buf[24:28], h.Checksum)

	return buf, nil
}

// UnmarshalHeader decodes and validates a container header.
func UnmarshalHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, &ErrTruncated{Len: len(buf), Need: HeaderSize}
	}

	if magic := binary.LittleEndian.Uint32(buf[0:4]); magic != Magic {
		return Header{}, &ErrBadMagic{Got: magic}
	}

	if version := binary.LittleEndian.Uint32(buf[4:8]); version != Version {
		return Header{}, &ErrUnsupportedVersion{Got: version}
	}

	h := Header{
		Flags:       binary.LittleEndian.Uint16(buf[8:10]),
		Width:       wire.Width(buf[10]),
		Compression: Compression(buf[12]),
		PayloadLen:  binary.LittleEndian.Uint64(buf[16:24]),
		Checksum:    binary.LittleEndian.Uint32(buf[24:28]),
	}

	if !h.Width.Valid() {
		return Header{}, &ErrBadHeader{Field: "Width", Reason: "not one of 2, 4, 8"}
	}

	switch buf[11] {
	case orderLittleEndian:
		h.Order = binary.LittleEndian
	case orderBigEndian:
		h.Order = binary.BigEndian
	default:
		return Header{}, &ErrBadHeader{Field: "Order", Reason: "not 0 (LE) or 1 (BE)"}
	}

	if h.Compression > CompressionLZ4 {
		return Header{}, &ErrUnknownCompression{ID: uint8(h.Compression)}
	}

	return h, nil
}

func orderID(o binary.ByteOrder) (uint8, error) {
	switch o {
	case binary.ByteOrder(binary.LittleEndian):
		return orderLittleEndian, nil
	case binary.ByteOrder(binary.BigEndian):
		return orderBigEndian, nil
	default:
		return 0, &ErrBadHeader{Field: "Order", Reason: "must be binary.LittleEndian or binary.BigEndian"}
	}
}
