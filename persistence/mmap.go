package persistence

import (
	"github.com/hupe1980/arkiv/internal/mmap"
	"github.com/hupe1980/arkiv/wire"
)

// MappedArchive is a container opened via memory mapping. For
// CompressionNone containers the payload aliases the mapping directly;
// compressed payloads are decompressed on open and the mapping released,
// so the zero-copy path is only available for uncompressed containers.
type MappedArchive struct {
	mapping *mmap.Mapping
	payload []byte
	format  wire.Format
}

// OpenMapped memory-maps the container at path. The checksum is
// verified once at open time.
func OpenMapped(path string) (*MappedArchive, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	buf := m.Bytes()

	h, err := UnmarshalHeader(buf)
	if err != nil {
		_ = m.Close()

		return nil, err
	}

	stored := buf[HeaderSize:]

	if got := Checksum(stored); got != h.Checksum {
		_ = m.Close()

		return nil, &ErrChecksumMismatch{Want: h.Checksum, Got: got}
	}

	payload, err := decompress(stored, h.Compression, h.PayloadLen)
	if err != nil {
		_ = m.Close()

		return nil, err
	}

	a := &MappedArchive{
		payload: payload,
		format:  h.Format(),
	}

	if h.Compression == CompressionNone {
		// Zero-copy: the payload aliases the mapping, keep it open.
		a.mapping = m
	} else {
		_ = m.Close()
	}

	return a, nil
}

// Mapped reports whether the payload aliases the file mapping.
func (a *MappedArchive) Mapped() bool {
	return a.mapping != nil
}

// Bytes returns the archive payload. For mapped archives the slice
// aliases the mapping and must not be used after Close.
func (a *MappedArchive) Bytes() []byte {
	return a.payload
}

// Format returns the wire format the payload was written with.
func (a *MappedArchive) Format() wire.Format {
	return a.format
}

// Advise hints the kernel about the expected access pattern. It is a
// no-op for archives that are not mapped.
func (a *MappedArchive) Advise(pattern mmap.AccessPattern) error {
	if a.mapping == nil {
		return nil
	}

	return a.mapping.Advise(pattern)
}

// Close unmaps the file. Views derived from Bytes become invalid for
// mapped archives.
func (a *MappedArchive) Close() error {
	if a.mapping == nil {
		return nil
	}

	return a.mapping.Close()
}
